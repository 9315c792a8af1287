/*
Copyright 2024-2026 The lzsa Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package packedbits encodes literal byte runs interleaved with
// MatchLayout tokens. It offers two forms: the whole-buffer form used
// by the SA-indexed compressor (a LeadingOne varint length header
// followed by the raw bytes) and the streaming form used by the
// byte-by-byte compressor (a capped ring buffer with a 1-byte
// length-minus-one header).
package packedbits

import "github.com/go-lzsa/lzsa/varint"

var headScheme = varint.LeadingOne{}

// Measure returns the encoded size of a whole-buffer literal run.
func Measure(data []byte) int {
	return headScheme.Measure(uint64(len(data))) + len(data)
}

// Encode writes the whole-buffer form of data into buf, which must
// have length Measure(data), and returns that length. Its header
// starts with a 1 bit (the LeadingOne tag), which is why it can share
// a stream with VarintLayout matches (tag starts with 0) but never with
// the fixed MatchLayout tokens (flag also starts with 1).
func Encode(data []byte, buf []byte) int {
	n := headScheme.Encode(uint64(len(data)), buf)
	n += copy(buf[n:], data)
	return n
}

// Decode reads a whole-buffer literal run from the front of buf and
// returns the decoded bytes together with the number of bytes consumed.
func Decode(buf []byte) ([]byte, int) {
	length, n := headScheme.Decode(buf)
	return buf[n : n+int(length)], n + int(length)
}

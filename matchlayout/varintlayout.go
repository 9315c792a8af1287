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

package matchlayout

import "github.com/go-lzsa/lzsa/varint"

// VarintLayout is the SA-indexed compressor's alternative match
// encoding: two back-to-back LeadingZero varints, distance then count,
// with no fixed bit budget. Its
// discriminator is the LeadingZero tag's leading 0 bit, which is what
// lets it share a stream with PackedBits's whole-buffer form (tag
// starts with a 1 bit, via LeadingOne). It is never mixed with the
// fixed 2-byte layouts, whose match flag is also a leading 1 bit.
type VarintLayout struct {
	scheme varint.LeadingZero
}

// Measure returns the byte length Write will produce for (distance, count).
func (v VarintLayout) Measure(distance, count int) int {
	return v.scheme.Measure(uint64(distance-1)) + v.scheme.Measure(uint64(count-1))
}

// Write encodes (distance, count) into buf, which must have length
// Measure(distance, count), and returns that length.
func (v VarintLayout) Write(distance, count int, buf []byte) int {
	n := v.scheme.Encode(uint64(distance-1), buf)
	n += v.scheme.Encode(uint64(count-1), buf[n:])
	return n
}

// Read decodes a Match from the front of buf and returns it together
// with the number of bytes consumed.
func (v VarintLayout) Read(buf []byte) (Match, int) {
	d, n1 := v.scheme.Decode(buf)
	c, n2 := v.scheme.Decode(buf[n1:])
	return Match{Distance: int(d) + 1, Count: int(c) + 1}, n1 + n2
}

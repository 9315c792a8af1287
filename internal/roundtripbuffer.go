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

package internal

import (
	"bytes"
	"io"
)

// RoundTripBuffer accumulates a compressed stream in memory so
// cmd/lzsa's --dry-run flag can verify a compress+extract round trip
// without ever touching the filesystem. It has two distinct phases:
// the compressor writes to it directly, then Reader hands the
// extractor an independent cursor over whatever was accumulated,
// leaving the accumulated bytes untouched for inspection (Len) after
// both phases finish.
type RoundTripBuffer struct {
	buf bytes.Buffer
}

// NewRoundTripBuffer creates an empty RoundTripBuffer.
func NewRoundTripBuffer() *RoundTripBuffer {
	return &RoundTripBuffer{}
}

// Write appends compressed bytes as the compressor produces them.
func (b *RoundTripBuffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Len returns the number of compressed bytes accumulated so far.
func (b *RoundTripBuffer) Len() int {
	return b.buf.Len()
}

// Reader returns a fresh io.Reader over the accumulated bytes,
// independent of and not consumed by Write.
func (b *RoundTripBuffer) Reader() io.Reader {
	return bytes.NewReader(b.buf.Bytes())
}

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

package packedbits

// CapSize is the maximum number of bytes a streaming run accumulates
// before it is forced to flush.
const CapSize = 128

// Stream accumulates literal bytes for the streaming compressor and
// flushes them as length-prefixed frames: a single byte (len-1) in
// [0,127] followed by len raw bytes.
type Stream struct {
	buf []byte
}

// NewStream creates an empty streaming literal-run buffer.
func NewStream() *Stream {
	return &Stream{buf: make([]byte, 0, CapSize)}
}

// Push appends b to the buffer. It returns the flushed frame and true
// if the buffer was at capacity, otherwise (nil, false).
func (s *Stream) Push(b byte) ([]byte, bool) {
	s.buf = append(s.buf, b)

	if len(s.buf) == CapSize {
		return s.Flush()
	}

	return nil, false
}

// Flush returns the accumulated bytes as a length-prefixed frame and
// clears the buffer. Returns (nil, false) if the buffer is empty.
func (s *Stream) Flush() ([]byte, bool) {
	if len(s.buf) == 0 {
		return nil, false
	}

	frame := make([]byte, len(s.buf)+1)
	frame[0] = byte(len(s.buf) - 1)
	copy(frame[1:], s.buf)
	s.buf = s.buf[:0]

	return frame, true
}

// Len returns the number of bytes currently buffered.
func (s *Stream) Len() int { return len(s.buf) }

// StreamDecoder mirrors Stream on the read side: it tracks how many
// literal bytes remain from the last length header it consumed.
type StreamDecoder struct {
	remaining int
}

// ReadHeader interprets b0 as a length-minus-one header, arming the
// decoder to treat the next int(b0)+1 bytes as literals.
func (d *StreamDecoder) ReadHeader(b0 byte) {
	d.remaining = int(b0) + 1
}

// Remaining reports how many literal bytes are still expected before
// the next byte must be reinterpreted as a frame discriminator.
func (d *StreamDecoder) Remaining() int { return d.remaining }

// Consume records that one literal byte has been emitted.
func (d *StreamDecoder) Consume() { d.remaining-- }

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

package lz77

import (
	"io"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/go-lzsa/lzsa/packedbits"
)

// StreamExtractor reconstructs the byte stream a StreamCompressor (of
// the same MatchLayout) produced. It keeps a history buffer exactly as
// deep as the compressor's slide window, copying match bytes
// byte-by-byte so that overlapping references (distance < count, as
// in a repeated run) replicate correctly.
type StreamExtractor struct {
	layout     matchlayout.Layout
	slide      int
	window     int
	history    []byte
	writeStart int
	decoder    packedbits.StreamDecoder
	listener   lzsa.Listener
}

// NewStreamExtractor creates a StreamExtractor for the given layout.
func NewStreamExtractor(layout matchlayout.Layout) *StreamExtractor {
	slide := matchlayout.SlideSize(layout)
	window := matchlayout.WindowSize(layout)
	work := slide + window

	return &StreamExtractor{
		layout:  layout,
		slide:   slide,
		window:  window,
		history: make([]byte, work+work),
	}
}

// SetListener installs a progress Listener; pass nil to disable.
func (x *StreamExtractor) SetListener(l lzsa.Listener) { x.listener = l }

// Extract reads a token stream from r and writes the reconstructed
// bytes to w until r is exhausted.
func (x *StreamExtractor) Extract(r io.Reader, w io.Writer) error {
	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtDecompressionStart, 0))
	}

	var total int64
	one := make([]byte, 1)

	for {
		n, err := io.ReadFull(r, one)
		if err == io.EOF && n == 0 {
			if x.decoder.Remaining() > 0 {
				return &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.StreamExtractor.Extract"}
			}

			break
		}
		if err != nil {
			return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.StreamExtractor.Extract", Err: err}
		}

		b0 := one[0]

		if x.decoder.Remaining() > 0 {
			if err := x.emitLiteral(b0, w); err != nil {
				return err
			}

			x.decoder.Consume()
			total++
		} else {
			two := make([]byte, 2)
			two[0] = b0

			if _, err := io.ReadFull(r, two[1:]); err != nil {
				return &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.StreamExtractor.Extract", Err: err}
			}

			if x.layout.Check(two[0]) {
				m := x.layout.Read(two)

				n, err := x.emitMatch(m, w)
				total += int64(n)

				if err != nil {
					return err
				}
			} else {
				x.decoder.ReadHeader(two[0])

				if err := x.emitLiteral(two[1], w); err != nil {
					return err
				}

				x.decoder.Consume()
				total++
			}
		}

		x.compact()
	}

	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtDecompressionEnd, total))
	}

	return nil
}

func (x *StreamExtractor) ensureCapacity(extra int) {
	if x.writeStart+extra <= len(x.history) {
		return
	}

	grown := make([]byte, len(x.history)*2+extra)
	copy(grown, x.history[:x.writeStart])
	x.history = grown
}

func (x *StreamExtractor) emitLiteral(b byte, w io.Writer) error {
	x.ensureCapacity(1)
	x.history[x.writeStart] = b
	x.writeStart++

	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtLiteralRun, 1))
	}

	_, err := w.Write([]byte{b})
	return err
}

func (x *StreamExtractor) emitMatch(m matchlayout.Match, w io.Writer) (int, error) {
	if m.Distance > x.writeStart {
		return 0, &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.StreamExtractor.emitMatch"}
	}

	x.ensureCapacity(m.Count)
	out := make([]byte, m.Count)

	for i := 0; i < m.Count; i++ {
		b := x.history[x.writeStart-m.Distance]
		x.history[x.writeStart] = b
		out[i] = b
		x.writeStart++
	}

	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtMatch, int64(m.Count)))
	}

	if _, err := w.Write(out); err != nil {
		return m.Count, err
	}

	return m.Count, nil
}

func (x *StreamExtractor) compact() {
	if x.writeStart <= x.slide {
		return
	}

	keepFrom := x.writeStart - x.slide
	copy(x.history, x.history[keepFrom:x.writeStart])
	x.writeStart = x.slide
}

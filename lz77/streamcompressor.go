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

// Package lz77 implements two compressor/extractor pairs: a
// byte-by-byte ring-buffer compressor searching the slide window
// greedily for the first longest match, with the streaming extractor
// that reads its fixed MatchLayout/streaming PackedBits stream; and an
// alternate single-pass compressor driven by a precomputed
// suffixarray.BackReference table, with the SA-indexed extractor that
// reads its VarintLayout/whole-buffer PackedBits stream.
package lz77

import (
	"io"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/go-lzsa/lzsa/packedbits"
)

// minMatch is the streaming compressor's independent emission
// threshold: a match must cover at least this many bytes to be worth
// a 2-byte token over pushing literals. It is fixed
// at 3 regardless of the chosen MatchLayout's representable minimum,
// unlike the SA-indexed compressor which pins its threshold to the
// layout (see saindexed.go).
const minMatch = 3

type match struct {
	distance, count int
}

// StreamCompressor turns a byte stream into an LZ77 token stream using
// a sliding ring buffer: at each position it scans every offset in the
// slide window, keeps the first-found longest match, and emits either
// a MatchLayout token or feeds the byte to a PackedBits literal run.
type StreamCompressor struct {
	layout   matchlayout.Layout
	slide    int
	window   int
	buf      []byte
	readPos  int
	compress int
	literals *packedbits.Stream
	listener lzsa.Listener
}

// NewStreamCompressor creates a StreamCompressor for the given layout.
func NewStreamCompressor(layout matchlayout.Layout) *StreamCompressor {
	slide := matchlayout.SlideSize(layout)
	window := matchlayout.WindowSize(layout)
	work := slide + window

	return &StreamCompressor{
		layout:   layout,
		slide:    slide,
		window:   window,
		buf:      make([]byte, work+work),
		literals: packedbits.NewStream(),
	}
}

// SetListener installs a progress Listener; pass nil to disable.
func (c *StreamCompressor) SetListener(l lzsa.Listener) { c.listener = l }

// Compress reads all of r, writing the compressed token stream to w.
func (c *StreamCompressor) Compress(r io.Reader, w io.Writer) error {
	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtCompressionStart, 0))
	}

	var total int64

	for {
		more, n, err := c.next(r, w)
		total += int64(n)

		if err != nil {
			return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.StreamCompressor.Compress", Err: err}
		}

		if !more {
			break
		}
	}

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtCompressionEnd, total))
	}

	return nil
}

// next processes one buffer's worth of input: read into the tail of
// the buffer, compress everything except the final window (which
// might still grow a longer match on the next read), then slide the
// tail back to the front of the buffer.
func (c *StreamCompressor) next(r io.Reader, w io.Writer) (bool, int, error) {
	readSize, rerr := io.ReadFull(r, c.buf[c.readPos:])
	if rerr == io.ErrUnexpectedEOF {
		rerr = nil
	}
	if rerr != nil && rerr != io.EOF {
		return false, readSize, rerr
	}

	eof := readSize == 0 && rerr == io.EOF
	bufferStop := c.readPos + readSize
	buffer := c.buf[:bufferStop]

	compressStop := c.compress
	if eof {
		compressStop = bufferStop
		if c.compress > compressStop {
			compressStop = c.compress
		}
	} else if bufferStop-c.window > compressStop {
		compressStop = bufferStop - c.window
	}

	index := c.compress

	for index < compressStop {
		letter := buffer[index]
		slideStop := index
		slideStart := slideStop - c.slide
		if slideStart < 0 {
			slideStart = 0
		}

		best, found := c.findBestMatch(buffer, bufferStop, index, slideStart, slideStop)

		if found && best.count >= minMatch {
			if err := c.flushLiterals(w); err != nil {
				return false, readSize, err
			}

			tok := make([]byte, 2)
			c.layout.Write(best.distance, best.count, tok)

			if _, err := w.Write(tok); err != nil {
				return false, readSize, err
			}

			if c.listener != nil {
				c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtMatch, int64(best.count)))
			}

			index += best.count
		} else {
			if err := c.pushLiteral(letter, w); err != nil {
				return false, readSize, err
			}

			index++
		}
	}

	c.compress = index

	if eof {
		if err := c.flushLiterals(w); err != nil {
			return false, readSize, err
		}

		return false, readSize, nil
	}

	slideStart := c.compress - c.slide
	if slideStart < 0 {
		slideStart = 0
	}

	copy(c.buf, buffer[slideStart:bufferStop])
	c.readPos = bufferStop - slideStart
	// The retained tail is only exactly slide+window long when a full
	// buffer's worth was processed above; on a short read, fewer bytes
	// are retained, so the resume index must track the true retained
	// length (c.compress shifted into the compacted buffer) rather than
	// the fixed c.slide offset.
	c.compress = c.compress - slideStart

	return true, readSize, nil
}

// findBestMatch scans every window start in [slideStart, slideStop),
// keeping the first-seen longest run — ties go to whichever offset was
// tried first (the nearest-to-oldest end of the slide window), per the
// teacher's loop order.
func (c *StreamCompressor) findBestMatch(buffer []byte, bufferStop, index, slideStart, slideStop int) (match, bool) {
	var best match
	found := false
	maxCount := c.window
	if bufferStop-index < maxCount {
		maxCount = bufferStop - index
	}

	for windowStart := slideStart; windowStart < slideStop; windowStart++ {
		count := 0

		for count < maxCount && buffer[index+count] == buffer[windowStart+count] {
			count++
		}

		if count > best.count {
			best = match{distance: slideStop - windowStart, count: count}
			found = true
		}
	}

	return best, found
}

func (c *StreamCompressor) pushLiteral(b byte, w io.Writer) error {
	frame, ok := c.literals.Push(b)
	if !ok {
		return nil
	}

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtLiteralRun, int64(len(frame)-1)))
	}

	_, err := w.Write(frame)
	return err
}

func (c *StreamCompressor) flushLiterals(w io.Writer) error {
	frame, ok := c.literals.Flush()
	if !ok {
		return nil
	}

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtLiteralRun, int64(len(frame)-1)))
	}

	_, err := w.Write(frame)
	return err
}

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
	"bytes"
	"io"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/go-lzsa/lzsa/packedbits"
	"github.com/go-lzsa/lzsa/suffixarray"
)

// saMinCount is the SA-indexed path's emission threshold, pinned to
// VarintLayout's representable minimum: a count field can encode
// count-1 == 0, i.e. count == 1, so unlike the streaming compressor's
// fixed 3-byte floor, any beneficial match of length ≥ 1 is eligible —
// "beneficial" is decided purely by the cost comparison below.
const saMinCount = 1

// SAIndexedCompressor implements the alternative single-pass design:
// build the whole input's suffix array and back-reference table up
// front, then walk the input once choosing at each position between
// extending a pending literal run and emitting a match, by comparing
// their PackedBits/VarintLayout costs.
type SAIndexedCompressor struct {
	varintLayout matchlayout.VarintLayout
	listener     lzsa.Listener
}

// NewSAIndexedCompressor creates an SAIndexedCompressor.
func NewSAIndexedCompressor() *SAIndexedCompressor {
	return &SAIndexedCompressor{}
}

// SetListener installs a progress Listener; pass nil to disable.
func (c *SAIndexedCompressor) SetListener(l lzsa.Listener) { c.listener = l }

// Compress reads all of r into memory, builds its suffix array and
// back-reference table, and writes the compressed token stream to w.
func (c *SAIndexedCompressor) Compress(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.SAIndexedCompressor.Compress", Err: err}
	}

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtCompressionStart, int64(len(data))))
	}

	sa := suffixarray.Build(data, lzsa.ByteAlphabet{})
	rank := suffixarray.Rank(sa)
	lcp := suffixarray.LCP(data, sa, rank, suffixarray.ByteEq)
	br := suffixarray.BuildBackReference(data, sa, rank, lcp)

	pendingStart := 0
	i := 0

	for i < len(data) {
		index, length := br.Back(i)

		if index == suffixarray.NoBackReference || length < saMinCount {
			i++
			continue
		}

		distance := i - index
		matchCost := c.varintLayout.Measure(distance, length)
		literalExtendCost := packedbits.Measure(data[pendingStart : i+length])
		keepLiteralCost := packedbits.Measure(data[pendingStart:i]) + matchCost

		if keepLiteralCost >= literalExtendCost {
			i++
			continue
		}

		// A literal frame always precedes a match frame, even when
		// empty (two back-to-back matches), so the extractor can
		// alternate literal/match without needing a third frame kind.
		if err := c.emitLiteral(data[pendingStart:i], w); err != nil {
			return err
		}

		buf := make([]byte, matchCost)
		c.varintLayout.Write(distance, length, buf)

		if _, err := w.Write(buf); err != nil {
			return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.SAIndexedCompressor.Compress", Err: err}
		}

		if c.listener != nil {
			c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtMatch, int64(length)))
		}

		i += length
		pendingStart = i
	}

	if len(data[pendingStart:]) > 0 {
		if err := c.emitLiteral(data[pendingStart:], w); err != nil {
			return err
		}
	}

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtCompressionEnd, int64(len(data))))
	}

	return nil
}

// emitLiteral always writes a literal frame, even for an empty slice,
// so that literal and match frames strictly alternate in the stream.
func (c *SAIndexedCompressor) emitLiteral(data []byte, w io.Writer) error {
	buf := make([]byte, packedbits.Measure(data))
	packedbits.Encode(data, buf)

	if c.listener != nil {
		c.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtLiteralRun, int64(len(data))))
	}

	if _, err := w.Write(buf); err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.SAIndexedCompressor.emitLiteral", Err: err}
	}

	return nil
}

// SAIndexedExtractor reconstructs the byte stream an SAIndexedCompressor
// produced: each frame's first byte's leading bit discriminates a
// LeadingOne-tagged literal run from a LeadingZero-tagged
// (distance, length) match pair.
type SAIndexedExtractor struct {
	listener lzsa.Listener
}

// NewSAIndexedExtractor creates an SAIndexedExtractor.
func NewSAIndexedExtractor() *SAIndexedExtractor {
	return &SAIndexedExtractor{}
}

// SetListener installs a progress Listener; pass nil to disable.
func (x *SAIndexedExtractor) SetListener(l lzsa.Listener) { x.listener = l }

// Extract reads all of r (which must hold a complete SA-indexed token
// stream) and writes the reconstructed bytes to w.
func (x *SAIndexedExtractor) Extract(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.SAIndexedExtractor.Extract", Err: err}
	}

	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtDecompressionStart, 0))
	}

	var out bytes.Buffer
	varintLayout := matchlayout.VarintLayout{}
	pos := 0

	for pos < len(data) {
		if data[pos]&0x80 == 0 {
			return &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.SAIndexedExtractor.Extract"}
		}

		// A literal frame's LeadingOne header starts with a 1 bit and
		// a match frame's first LeadingZero varint starts with a 0
		// bit, so the top bit of data[pos] alone tells them apart.
		literal, n := packedbits.Decode(data[pos:])
		pos += n
		out.Write(literal)

		if pos >= len(data) {
			break
		}

		if data[pos]&0x80 != 0 {
			return &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.SAIndexedExtractor.Extract"}
		}

		m, n := varintLayout.Read(data[pos:])
		pos += n

		if m.Distance > out.Len() {
			return &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "lz77.SAIndexedExtractor.Extract"}
		}

		history := out.Bytes()
		start := len(history) - m.Distance

		for i := 0; i < m.Count; i++ {
			b := history[start+i]
			out.WriteByte(b)
			history = out.Bytes()
		}

		if x.listener != nil {
			x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtMatch, int64(m.Count)))
		}
	}

	if x.listener != nil {
		x.listener.ProcessEvent(lzsa.NewEvent(lzsa.EvtDecompressionEnd, int64(out.Len())))
	}

	_, err = w.Write(out.Bytes())
	if err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "lz77.SAIndexedExtractor.Extract", Err: err}
	}

	return nil
}

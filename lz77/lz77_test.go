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
	"strings"
	"testing"

	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLayouts() []matchlayout.Layout {
	return []matchlayout.Layout{
		matchlayout.C2L13{},
		matchlayout.C3L12{},
		matchlayout.C4L11{},
		matchlayout.L7C8{},
	}
}

func roundTripStreaming(t *testing.T, layout matchlayout.Layout, data []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	c := NewStreamCompressor(layout)
	require.NoError(t, c.Compress(bytes.NewReader(data), &compressed))

	var out bytes.Buffer
	x := NewStreamExtractor(layout)
	require.NoError(t, x.Extract(bytes.NewReader(compressed.Bytes()), &out))

	return out.Bytes()
}

// TestRoundTripAllLayouts checks extract(compress(B)) == B for every
// MatchLayout variant.
func TestRoundTripAllLayouts(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("AAAAAAAAAA"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		[]byte(strings.Repeat("abcabcabc", 200)),
		bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03}, 500),
	}

	for _, layout := range allLayouts() {
		for _, data := range inputs {
			got := roundTripStreaming(t, layout, data)
			assert.Equal(t, data, got)
		}
	}
}

// TestRepeatedRun checks that a run of 10 'A's under C3L12 round-trips
// regardless of the exact token split the greedy search settles on.
func TestRepeatedRun(t *testing.T) {
	data := []byte("AAAAAAAAAA")
	got := roundTripStreaming(t, matchlayout.C3L12{}, data)
	assert.Equal(t, data, got)
}

// TestOverlapCopy exercises the extractor directly against a
// hand-built match token with distance < count, requiring byte-by-byte
// (not bulk) copy semantics.
func TestOverlapCopy(t *testing.T) {
	layout := matchlayout.C3L12{}

	var compressed bytes.Buffer
	// Literal run header (streaming form): 1 byte, 0x00 = len-1 (len=1), then the byte 'A'.
	compressed.WriteByte(0x00)
	compressed.WriteByte('A')

	tok := make([]byte, 2)
	layout.Write(1, 8, tok) // distance=1, count=8: replicate 'A' eight more times.
	compressed.Write(tok)

	var out bytes.Buffer
	x := NewStreamExtractor(layout)
	require.NoError(t, x.Extract(bytes.NewReader(compressed.Bytes()), &out))

	assert.Equal(t, bytes.Repeat([]byte{'A'}, 9), out.Bytes())
}

func TestStreamExtractorRejectsDistanceBeyondHistory(t *testing.T) {
	layout := matchlayout.C3L12{}

	var compressed bytes.Buffer
	compressed.WriteByte(0x00)
	compressed.WriteByte('A')

	tok := make([]byte, 2)
	layout.Write(2, 3, tok) // distance=2 but only 1 byte of history exists.
	compressed.Write(tok)

	var out bytes.Buffer
	x := NewStreamExtractor(layout)
	err := x.Extract(bytes.NewReader(compressed.Bytes()), &out)
	assert.Error(t, err)
}

func TestSAIndexedRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("mississippi mississippi mississippi"),
		[]byte(strings.Repeat("banana", 100)),
	}

	for _, data := range inputs {
		var compressed bytes.Buffer
		c := NewSAIndexedCompressor()
		require.NoError(t, c.Compress(bytes.NewReader(data), &compressed))

		var out bytes.Buffer
		x := NewSAIndexedExtractor()
		require.NoError(t, x.Extract(bytes.NewReader(compressed.Bytes()), &out))

		assert.Equal(t, data, out.Bytes())
	}
}

func TestStreamCompressorAcrossBufferBoundary(t *testing.T) {
	// Input larger than one compressor buffer (2*(slide+window)) to
	// exercise the compaction/slide path across multiple next() calls.
	layout := matchlayout.L7C8{} // small slide (128) + window (256): easy to exceed.
	data := bytes.Repeat([]byte("0123456789"), 1000)

	got := roundTripStreaming(t, layout, data)
	assert.Equal(t, data, got)
}

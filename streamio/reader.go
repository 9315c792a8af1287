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

package streamio

import (
	"bytes"
	"io"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/lz77"
	"github.com/go-lzsa/lzsa/matchlayout"
)

// Reader decompresses its source stream on the first call to Read,
// then serves the reconstructed bytes from memory.
type Reader struct {
	src       io.Reader
	layout    matchlayout.Layout
	saIndexed bool
	listeners []lzsa.Listener
	out       *bytes.Reader
	err       error
}

// NewReader creates a Reader using the streaming LZ77 extractor with
// the given MatchLayout.
func NewReader(src io.Reader, layout matchlayout.Layout) *Reader {
	return &Reader{src: src, layout: layout}
}

// NewSAIndexedReader creates a Reader using the SA-indexed extractor.
func NewSAIndexedReader(src io.Reader) *Reader {
	return &Reader{src: src, saIndexed: true}
}

// AddListener registers a progress Listener, returning false if it was
// already registered.
func (this *Reader) AddListener(l lzsa.Listener) bool {
	for _, existing := range this.listeners {
		if existing == l {
			return false
		}
	}

	this.listeners = append(this.listeners, l)
	return true
}

// RemoveListener unregisters a previously added Listener.
func (this *Reader) RemoveListener(l lzsa.Listener) bool {
	for i, existing := range this.listeners {
		if existing == l {
			this.listeners = append(this.listeners[:i], this.listeners[i+1:]...)
			return true
		}
	}

	return false
}

func (this *Reader) ensureDecompressed() {
	if this.out != nil || this.err != nil {
		return
	}

	var buf bytes.Buffer

	if this.saIndexed {
		x := lz77.NewSAIndexedExtractor()

		if len(this.listeners) > 0 {
			x.SetListener(fanOut(this.listeners))
		}

		this.err = x.Extract(this.src, &buf)
	} else {
		x := lz77.NewStreamExtractor(this.layout)

		if len(this.listeners) > 0 {
			x.SetListener(fanOut(this.listeners))
		}

		this.err = x.Extract(this.src, &buf)
	}

	this.out = bytes.NewReader(buf.Bytes())
}

// Read serves decompressed bytes, decompressing the whole source
// stream on the first call.
func (this *Reader) Read(p []byte) (int, error) {
	this.ensureDecompressed()

	if this.err != nil {
		return 0, this.err
	}

	return this.out.Read(p)
}

// Close is a no-op; the source stream's lifecycle is the caller's
// responsibility.
func (this *Reader) Close() error { return nil }

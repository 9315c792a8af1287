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

// Package streamio adapts the lz77 compressors/extractors to the
// io.Writer/io.Reader collaborator contract, and carries the
// AddListener/RemoveListener progress-reporting surface.
package streamio

import (
	"bytes"
	"io"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/lz77"
	"github.com/go-lzsa/lzsa/matchlayout"
)

// Writer buffers everything written to it and compresses the full
// buffer to the underlying stream on Close: the streaming LZ77
// compressor needs to see its whole input (or at least look far
// enough ahead) to make slide-window decisions, so there is no
// meaningful partial flush before Close.
type Writer struct {
	dest      io.Writer
	pending   bytes.Buffer
	layout    matchlayout.Layout
	saIndexed bool
	listeners []lzsa.Listener
	closed    bool
}

// NewWriter creates a Writer using the streaming (ring-buffer) LZ77
// compressor with the given MatchLayout.
func NewWriter(dest io.Writer, layout matchlayout.Layout) *Writer {
	return &Writer{dest: dest, layout: layout}
}

// NewSAIndexedWriter creates a Writer using the SA-indexed compressor.
func NewSAIndexedWriter(dest io.Writer) *Writer {
	return &Writer{dest: dest, saIndexed: true}
}

// AddListener registers a progress Listener, returning false if it was
// already registered.
func (this *Writer) AddListener(l lzsa.Listener) bool {
	for _, existing := range this.listeners {
		if existing == l {
			return false
		}
	}

	this.listeners = append(this.listeners, l)
	return true
}

// RemoveListener unregisters a previously added Listener.
func (this *Writer) RemoveListener(l lzsa.Listener) bool {
	for i, existing := range this.listeners {
		if existing == l {
			this.listeners = append(this.listeners[:i], this.listeners[i+1:]...)
			return true
		}
	}

	return false
}

// Write appends block to the pending buffer. It never fails except
// after Close.
func (this *Writer) Write(block []byte) (int, error) {
	if this.closed {
		return 0, &lzsa.Error{Kind: lzsa.KindIO, Op: "streamio.Writer.Write"}
	}

	return this.pending.Write(block)
}

// Close compresses everything written so far and flushes it to the
// underlying stream.
func (this *Writer) Close() error {
	if this.closed {
		return nil
	}

	this.closed = true

	if this.saIndexed {
		c := lz77.NewSAIndexedCompressor()
		this.wireListeners(c)
		return c.Compress(&this.pending, this.dest)
	}

	c := lz77.NewStreamCompressor(this.layout)
	this.wireListeners(c)
	return c.Compress(&this.pending, this.dest)
}

type listenable interface {
	SetListener(lzsa.Listener)
}

// wireListeners installs a fan-out Listener on c if any listeners have
// been registered; the lz77 compressors only support a single
// Listener, so multiple registrations are broadcast through one.
func (this *Writer) wireListeners(c listenable) {
	if len(this.listeners) == 0 {
		return
	}

	c.SetListener(fanOut(this.listeners))
}

type fanOut []lzsa.Listener

func (f fanOut) ProcessEvent(evt *lzsa.Event) {
	for _, l := range f {
		l.ProcessEvent(evt)
	}
}

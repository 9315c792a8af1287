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

// Command lzsa is a thin CLI around the streamio compressor/extractor.
// File handling, flag parsing, and config-file loading are
// collaborator concerns kept entirely outside the core packages.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/internal"
	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/go-lzsa/lzsa/streamio"
)

const appHeader = "lzsa 1.0 - a suffix-array indexed LZ77 compressor"

// config is the shape of an optional lzsa.jsonc file: JSON-with-comments
// (hujson) overrides for flags the user didn't pass explicitly.
type config struct {
	Layout    string `json:"layout"`
	SAIndexed bool   `json:"saIndexed"`
	Verbose   bool   `json:"verbose"`
}

func loadConfig(path string) (config, error) {
	var cfg config

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, &lzsa.Error{Kind: lzsa.KindIO, Op: "loadConfig", Err: err}
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return cfg, &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "loadConfig", Err: err}
	}

	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, &lzsa.Error{Kind: lzsa.KindMalformedStream, Op: "loadConfig", Err: err}
	}

	return cfg, nil
}

func layoutByName(name string) (matchlayout.Layout, error) {
	switch name {
	case "c2l13":
		return matchlayout.C2L13{}, nil
	case "c3l12", "":
		return matchlayout.C3L12{}, nil
	case "c4l11":
		return matchlayout.C4L11{}, nil
	case "l7c8":
		return matchlayout.L7C8{}, nil
	default:
		return nil, fmt.Errorf("unknown match layout %q", name)
	}
}

type verboseListener struct{}

func (verboseListener) ProcessEvent(evt *lzsa.Event) {
	fmt.Fprintln(os.Stderr, evt.String())
}

func run() error {
	mode := flag.String("mode", "", "compress or extract")
	input := flag.String("input", "", "input file path")
	output := flag.String("output", "", "output file path")
	layoutName := flag.String("layout", "c3l12", "match layout: c2l13, c3l12, c4l11, l7c8")
	saIndexed := flag.Bool("sa-indexed", false, "use the SA-indexed compressor instead of the streaming one")
	verbose := flag.Bool("verbose", false, "report progress events to stderr")
	configPath := flag.String("config", "", "path to an optional lzsa.jsonc config file")
	dryRun := flag.Bool("dry-run", false, "verify a compress+extract round trip in memory, writing nothing")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if !flag.CommandLine.Changed("layout") && cfg.Layout != "" {
		*layoutName = cfg.Layout
	}

	if !flag.CommandLine.Changed("sa-indexed") && cfg.SAIndexed {
		*saIndexed = true
	}

	if !flag.CommandLine.Changed("verbose") && cfg.Verbose {
		*verbose = true
	}

	if *mode != "compress" && *mode != "extract" {
		return fmt.Errorf("--mode must be \"compress\" or \"extract\"")
	}

	if *input == "" || *output == "" {
		return fmt.Errorf("--input and --output are required")
	}

	layout, err := layoutByName(*layoutName)
	if err != nil {
		return err
	}

	in, err := os.Open(*input)
	if err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "run", Err: err}
	}
	defer in.Close()

	if *dryRun {
		return dryRunRoundTrip(in, *saIndexed, layout, *verbose)
	}

	pr, pw := os.Pipe()
	defer pr.Close()

	var pipeErr error

	done := make(chan struct{})
	go func() {
		defer pw.Close()
		defer close(done)

		switch *mode {
		case "compress":
			w := newWriter(pw, *saIndexed, layout)

			if *verbose {
				w.AddListener(verboseListener{})
			}

			if _, pipeErr = copyAll(w, in); pipeErr == nil {
				pipeErr = w.Close()
			}
		case "extract":
			r := newReader(in, *saIndexed, layout)

			if *verbose {
				r.AddListener(verboseListener{})
			}

			_, pipeErr = copyAll(pw, r)
		}
	}()

	if err := atomic.WriteFile(*output, pr); err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "run", Err: err}
	}

	<-done

	return pipeErr
}

// dryRunRoundTrip compresses in entirely into an internal.RoundTripBuffer,
// then extracts it back out through a fresh reader over that same
// buffer and compares against the original bytes, all without
// touching *output. It reports the verdict on stderr and returns an
// error only on a genuine I/O or mismatch failure.
func dryRunRoundTrip(in *os.File, saIndexed bool, layout matchlayout.Layout, verbose bool) error {
	original, err := io.ReadAll(in)
	if err != nil {
		return &lzsa.Error{Kind: lzsa.KindIO, Op: "dryRunRoundTrip", Err: err}
	}

	rt := internal.NewRoundTripBuffer()
	w := newWriter(rt, saIndexed, layout)

	if verbose {
		w.AddListener(verboseListener{})
	}

	if _, err := w.Write(original); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	r := newReader(rt.Reader(), saIndexed, layout)

	if verbose {
		r.AddListener(verboseListener{})
	}

	restored, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	if !bytes.Equal(original, restored) {
		return fmt.Errorf("dry run: round trip mismatch (%d bytes in, %d bytes out)", len(original), len(restored))
	}

	fmt.Fprintf(os.Stderr, "dry run ok: %d bytes compressed to %d bytes and restored exactly\n", len(original), rt.Len())

	return nil
}

// writerLike and readerLike abstract over streamio.Writer/Reader so
// run() doesn't need to branch on saIndexed beyond construction.
type writerLike interface {
	Write([]byte) (int, error)
	Close() error
	AddListener(lzsa.Listener) bool
}

type readerLike interface {
	Read([]byte) (int, error)
	AddListener(lzsa.Listener) bool
}

func newWriter(dest io.Writer, saIndexed bool, layout matchlayout.Layout) writerLike {
	if saIndexed {
		return streamio.NewSAIndexedWriter(dest)
	}

	return streamio.NewWriter(dest, layout)
}

func newReader(src io.Reader, saIndexed bool, layout matchlayout.Layout) readerLike {
	if saIndexed {
		return streamio.NewSAIndexedReader(src)
	}

	return streamio.NewReader(src, layout)
}

func copyAll(dst interface{ Write([]byte) (int, error) }, src interface{ Read([]byte) (int, error) }) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, rerr := src.Read(buf)

		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, werr
			}

			total += int64(n)
		}

		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}

			return total, rerr
		}
	}
}

func main() {
	fmt.Fprintln(os.Stderr, appHeader)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lzsa:", err)
		os.Exit(1)
	}
}

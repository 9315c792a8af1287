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

package lzsa

import (
	"fmt"
	"time"
)

const (
	// EvtCompressionStart fires once before the first byte is read.
	EvtCompressionStart = 0
	// EvtDecompressionStart fires once before the first byte is read.
	EvtDecompressionStart = 1
	// EvtLiteralRun fires whenever a compressor emits a literal run
	// frame, and once per literal byte the streaming extractor consumes.
	// The SA-indexed extractor does not fire it.
	EvtLiteralRun = 2
	// EvtMatch fires whenever a match frame is emitted/consumed.
	EvtMatch = 3
	// EvtCompressionEnd fires once after the last byte is flushed.
	EvtCompressionEnd = 4
	// EvtDecompressionEnd fires once after the last byte is flushed.
	EvtDecompressionEnd = 5
)

// Event reports progress from the streaming compressor/extractor to an
// optional Listener. It carries no payload beyond what its type implies
// plus a byte count, keeping the core free of any particular reporting
// mechanism (the ambient "logging" concern is pushed entirely to the
// caller).
type Event struct {
	eventType int
	size      int64
	eventTime time.Time
}

// NewEvent creates an Event of the given type carrying size bytes.
func NewEvent(eventType int, size int64) *Event {
	return &Event{eventType: eventType, size: size, eventTime: time.Now()}
}

// Type returns the event type.
func (e *Event) Type() int { return e.eventType }

// Size returns the byte count associated with the event (bytes covered
// by the frame for EvtLiteralRun/EvtMatch, 1 for the streaming
// extractor's per-byte EvtLiteralRun, total bytes processed for
// start/end).
func (e *Event) Size() int64 { return e.size }

// Time returns when the event was created.
func (e *Event) Time() time.Time { return e.eventTime }

func (e *Event) String() string {
	var t string

	switch e.eventType {
	case EvtCompressionStart:
		t = "COMPRESSION_START"
	case EvtDecompressionStart:
		t = "DECOMPRESSION_START"
	case EvtLiteralRun:
		t = "LITERAL_RUN"
	case EvtMatch:
		t = "MATCH"
	case EvtCompressionEnd:
		t = "COMPRESSION_END"
	case EvtDecompressionEnd:
		t = "DECOMPRESSION_END"
	}

	return fmt.Sprintf("{\"type\":\"%s\",\"size\":%d,\"time\":%d}", t, e.size, e.eventTime.UnixNano()/1000000)
}

// Listener is implemented by event processors (e.g. a CLI progress bar).
type Listener interface {
	ProcessEvent(evt *Event)
}

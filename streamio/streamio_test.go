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
	"strings"
	"testing"

	"github.com/go-lzsa/lzsa"
	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct {
	count int
}

func (c *countingListener) ProcessEvent(evt *lzsa.Event) { c.count++ }

func TestWriterReaderRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("the quick brown fox ", 50))

	var compressed bytes.Buffer
	w := NewWriter(&compressed, matchlayout.C3L12{})
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewReader(bytes.NewReader(compressed.Bytes()), matchlayout.C3L12{})
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestSAIndexedWriterReaderRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("mississippi", 30))

	var compressed bytes.Buffer
	w := NewSAIndexedWriter(&compressed)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := NewSAIndexedReader(bytes.NewReader(compressed.Bytes()))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestWriterListenersFireOnClose(t *testing.T) {
	l1 := &countingListener{}
	l2 := &countingListener{}

	var compressed bytes.Buffer
	w := NewWriter(&compressed, matchlayout.C3L12{})
	assert.True(t, w.AddListener(l1))
	assert.True(t, w.AddListener(l2))
	assert.False(t, w.AddListener(l1)) // already registered

	_, err := w.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Greater(t, l1.count, 0)
	assert.Equal(t, l1.count, l2.count)
}

func TestWriterRemoveListener(t *testing.T) {
	l := &countingListener{}

	w := NewWriter(&bytes.Buffer{}, matchlayout.C3L12{})
	require.True(t, w.AddListener(l))
	assert.True(t, w.RemoveListener(l))
	assert.False(t, w.RemoveListener(l))
}

func TestWriterRejectsWriteAfterClose(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, matchlayout.C3L12{})
	require.NoError(t, w.Close())

	_, err := w.Write([]byte("x"))
	assert.Error(t, err)
}

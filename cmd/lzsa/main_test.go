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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-lzsa/lzsa/matchlayout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutByName(t *testing.T) {
	cases := map[string]matchlayout.Layout{
		"c2l13": matchlayout.C2L13{},
		"c3l12": matchlayout.C3L12{},
		"c4l11": matchlayout.C4L11{},
		"l7c8":  matchlayout.L7C8{},
		"":      matchlayout.C3L12{},
	}

	for name, want := range cases {
		got, err := layoutByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := layoutByName("bogus")
	assert.Error(t, err)
}

func TestLoadConfigWithComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lzsa.jsonc")

	contents := `{
		// prefer a wider count field for repetitive inputs
		"layout": "c4l11",
		"saIndexed": true,
	}`

	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "c4l11", cfg.Layout)
	assert.True(t, cfg.SAIndexed)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config{}, cfg)
}

func TestDryRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	data := []byte("the quick brown fox jumps over the lazy dog, repeatedly, the quick brown fox jumps")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	err = dryRunRoundTrip(in, false, matchlayout.C3L12{}, false)
	assert.NoError(t, err)
}

func TestDryRunRoundTripSAIndexed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	data := []byte("mississippi mississippi mississippi")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	err = dryRunRoundTrip(in, true, matchlayout.C3L12{}, false)
	assert.NoError(t, err)
}

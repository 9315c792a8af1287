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

package matchlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestC3L12RoundTrip(t *testing.T) {
	layout := C3L12{}
	buf := make([]byte, 2)

	for distance := 1; distance <= layout.MaxDistance(); distance += 37 {
		for count := 1; count <= layout.MaxCount(); count++ {
			layout.Write(distance, count, buf)
			assert.True(t, layout.Check(buf[0]))
			got := layout.Read(buf)
			assert.Equal(t, distance, got.Distance)
			assert.Equal(t, count, got.Count)
		}
	}
}

func TestRepeatedRunEncoding(t *testing.T) {
	// distance=1, count=8 under C3L12 should produce byte0 = 0xF0, byte1 = 0x00.
	layout := C3L12{}
	buf := make([]byte, 2)
	layout.Write(1, 8, buf)
	assert.Equal(t, byte(0xF0), buf[0])
	assert.Equal(t, byte(0x00), buf[1])
}

func TestAllFixedLayoutsRoundTrip(t *testing.T) {
	layouts := []Layout{C2L13{}, C3L12{}, C4L11{}, L7C8{}}

	for _, layout := range layouts {
		buf := make([]byte, 2)
		maxD := layout.MaxDistance()
		maxC := layout.MaxCount()

		for _, d := range []int{1, maxD / 2, maxD} {
			for _, c := range []int{1, maxC / 2, maxC} {
				if d == 0 || c == 0 {
					continue
				}

				layout.Write(d, c, buf)
				assert.True(t, layout.Check(buf[0]))
				got := layout.Read(buf)
				assert.Equal(t, d, got.Distance)
				assert.Equal(t, c, got.Count)
			}
		}
	}
}

func TestVarintLayoutRoundTrip(t *testing.T) {
	v := VarintLayout{}

	cases := []struct{ distance, count int }{
		{1, 1},
		{1, 8},
		{4096, 300},
		{1 << 20, 1 << 16},
	}

	for _, c := range cases {
		size := v.Measure(c.distance, c.count)
		buf := make([]byte, size)
		n := v.Write(c.distance, c.count, buf)
		assert.Equal(t, size, n)

		got, consumed := v.Read(buf)
		assert.Equal(t, size, consumed)
		assert.Equal(t, c.distance, got.Distance)
		assert.Equal(t, c.count, got.Count)
	}
}

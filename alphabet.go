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

// Package lzsa defines the top level types shared by the suffix-array
// indexed LZ77 compressor: the Alphabet capability consumed by the
// suffixarray package, the Error kind used across the module, and the
// Event/Listener pair used to report progress without coupling the
// core to any particular reporting mechanism.
package lzsa

// Alphabet maps elements of an input of type T to dense bucket indices
// in [0, Size()). BucketOf must be monotone and injective with respect
// to the comparison order of T: BucketOf(a) < BucketOf(b) iff a < b.
// Violating monotonicity invalidates suffix array correctness.
type Alphabet[T any] interface {
	// Size returns K, the number of distinct buckets.
	Size() int

	// BucketOf returns the bucket index of value, in [0, Size()).
	BucketOf(value T) int
}

// ByteAlphabet is the Alphabet over raw bytes: K=256, identity mapping.
type ByteAlphabet struct{}

// Size returns 256.
func (ByteAlphabet) Size() int { return 256 }

// BucketOf returns the byte value itself.
func (ByteAlphabet) BucketOf(value byte) int { return int(value) }

// IndexAlphabet is the Alphabet used when recursing the SA-IS
// construction on a derived rank string: K is the length of that
// string, an upper bound on its rank values, and the mapping is the
// identity, since ranks are already dense indices in [0, K).
type IndexAlphabet struct {
	K int
}

// Size returns K.
func (a IndexAlphabet) Size() int { return a.K }

// BucketOf returns value unchanged.
func (IndexAlphabet) BucketOf(value int) int { return value }

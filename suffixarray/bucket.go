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

// Package suffixarray builds the suffix array, rank array, LCP array
// and back-reference table that the SA-indexed LZ77 path consumes,
// using the SA-IS construction.
package suffixarray

import "github.com/go-lzsa/lzsa"

// SuffixType classifies a position as L-type (its suffix is
// lexicographically greater than the one starting one position later)
// or S-type (lesser).
type SuffixType bool

const (
	// TypeS marks an S-typed position.
	TypeS SuffixType = false
	// TypeL marks an L-typed position.
	TypeL SuffixType = true
)

// bin tracks, for one alphabet bucket, the growing L-region (forward
// from lStart) and S-region (backward from sStop) within the shared
// indices array.
type bin struct {
	lStart, lCount int
	sStop, sCount  int
}

// Bucket is a single indices array partitioned into per-alphabet-value
// L/S regions that can be pushed into, scanned by rank, and cleared,
// without ever reallocating.
type Bucket[T any] struct {
	alphabet lzsa.Alphabet[T]
	indices  []int
	bins     []bin
}

// NewBucket partitions data.len() slots across alphabet.Size() bins
// according to the L/S type of each position.
func NewBucket[T any](data []T, types []SuffixType, alphabet lzsa.Alphabet[T]) *Bucket[T] {
	bins := make([]bin, alphabet.Size())

	for i, v := range data {
		b := alphabet.BucketOf(v)

		if types[i] == TypeL {
			bins[b].lStart++
		} else {
			bins[b].sStop++
		}
	}

	bins[0].sStop += bins[0].lStart
	bins[0].lStart = 0

	for i := 1; i < len(bins); i++ {
		bins[i].sStop += bins[i].lStart + bins[i-1].sStop
		bins[i].lStart = bins[i-1].sStop
	}

	return &Bucket[T]{
		alphabet: alphabet,
		indices:  make([]int, len(data)),
		bins:     bins,
	}
}

// Len returns the total number of indices the bucket holds.
func (bk *Bucket[T]) Len() int { return len(bk.indices) }

// NumBins returns the alphabet size.
func (bk *Bucket[T]) NumBins() int { return len(bk.bins) }

// LenLBin returns how many L-typed indices are currently in bin b.
func (bk *Bucket[T]) LenLBin(b int) int { return bk.bins[b].lCount }

// LenSBin returns how many S-typed indices are currently in bin b.
func (bk *Bucket[T]) LenSBin(b int) int { return bk.bins[b].sCount }

// LIndexByRank returns the rank-th (ascending, front-to-back) L-typed
// index pushed into bin b so far.
func (bk *Bucket[T]) LIndexByRank(b, rank int) int {
	bn := &bk.bins[b]
	return bk.indices[bn.lStart+rank]
}

// LIndexByRevRank returns the revRank-th L-typed index counting
// backward from the most recently pushed one in bin b.
func (bk *Bucket[T]) LIndexByRevRank(b, revRank int) int {
	bn := &bk.bins[b]
	return bk.indices[(bn.lStart+bn.lCount-1)-revRank]
}

// SIndexByRank returns the rank-th (ascending, back-to-front) S-typed
// index pushed into bin b so far.
func (bk *Bucket[T]) SIndexByRank(b, rank int) int {
	bn := &bk.bins[b]
	return bk.indices[(bn.sStop-bn.sCount)+rank]
}

// SIndexByRevRank returns the revRank-th S-typed index counting
// backward from the last slot of bin b's S-region, which holds the
// first index pushed into it.
func (bk *Bucket[T]) SIndexByRevRank(b, revRank int) int {
	bn := &bk.bins[b]
	return bk.indices[(bn.sStop-1)-revRank]
}

// Push inserts index (of the given suffix type, classified via value's
// bucket) at the next free slot of its bin's L or S region.
func (bk *Bucket[T]) Push(index int, value T, t SuffixType) {
	b := bk.alphabet.BucketOf(value)
	bn := &bk.bins[b]

	if t == TypeL {
		bk.indices[bn.lStart+bn.lCount] = index
		bn.lCount++
	} else {
		bk.indices[(bn.sStop-1)-bn.sCount] = index
		bn.sCount++
	}
}

// Clear resets the count for one region of one bin, without touching
// the other region.
func (bk *Bucket[T]) Clear(b int, t SuffixType) {
	if t == TypeL {
		bk.bins[b].lCount = 0
	} else {
		bk.bins[b].sCount = 0
	}
}

// ClearAll resets every bin's L and S counts to zero.
func (bk *Bucket[T]) ClearAll() {
	for i := range bk.bins {
		bk.bins[i].lCount = 0
		bk.bins[i].sCount = 0
	}
}

// LBinSlice returns the live L-typed slice of bin b.
func (bk *Bucket[T]) LBinSlice(b int) []int {
	bn := &bk.bins[b]
	return bk.indices[bn.lStart : bn.lStart+bn.lCount]
}

// SBinSlice returns the live S-typed slice of bin b.
func (bk *Bucket[T]) SBinSlice(b int) []int {
	bn := &bk.bins[b]
	return bk.indices[bn.sStop-bn.sCount : bn.sStop]
}

// Flatten returns a copy of the underlying indices array. Once every
// position has been pushed exactly once, bin layout guarantees this is
// already in ascending suffix order: bin i's L region is immediately
// followed by its S region, which is immediately followed by bin i+1's
// L region (lStart[i+1] == sStop[i]).
func (bk *Bucket[T]) Flatten() []int {
	out := make([]int, len(bk.indices))
	copy(out, bk.indices)
	return out
}

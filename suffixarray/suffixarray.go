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

package suffixarray

import "github.com/go-lzsa/lzsa"

// classify fills types[i] with the L/S type of position i, scanning
// back to front: the final position is always L-typed, and every
// earlier position inherits its successor's type unless its own
// bucket value differs.
func classify[T any](data []T, alphabet lzsa.Alphabet[T]) []SuffixType {
	types := make([]SuffixType, len(data))
	if len(data) == 0 {
		return types
	}

	types[len(data)-1] = TypeL

	for i := len(data) - 1; i > 0; i-- {
		b0 := alphabet.BucketOf(data[i-1])
		b1 := alphabet.BucketOf(data[i])

		switch {
		case b0 == b1:
			types[i-1] = types[i]
		case b0 < b1:
			types[i-1] = TypeS
		default:
			types[i-1] = TypeL
		}
	}

	return types
}

// inducedSort performs the two induced-sort passes shared by the LMS
// seeding step and the final pass: an L-pass that walks bins ascending
// and derives each L-typed predecessor from the suffix at index-1, then
// an S-pass that walks bins descending deriving S-typed predecessors.
func inducedSort[T any](data []T, types []SuffixType, bk *Bucket[T]) {
	if len(data) > 0 {
		last := len(data) - 1
		if types[last] == TypeL {
			bk.Push(last, data[last], TypeL)
		}
	}

	for b := 0; b < bk.NumBins(); b++ {
		for rank := 0; rank < bk.LenLBin(b); rank++ {
			index := bk.LIndexByRank(b, rank)
			if index > 0 && types[index-1] == TypeL {
				bk.Push(index-1, data[index-1], TypeL)
			}
		}

		for rank := 0; rank < bk.LenSBin(b); rank++ {
			index := bk.SIndexByRank(b, rank)
			if index > 0 && types[index-1] == TypeL {
				bk.Push(index-1, data[index-1], TypeL)
			}
		}
	}

	for b := 0; b < bk.NumBins(); b++ {
		bk.Clear(b, TypeS)
	}

	for b := bk.NumBins() - 1; b >= 0; b-- {
		for revRank := 0; revRank < bk.LenSBin(b); revRank++ {
			index := bk.SIndexByRevRank(b, revRank)
			if index > 0 && types[index-1] == TypeS {
				bk.Push(index-1, data[index-1], TypeS)
			}
		}

		for revRank := 0; revRank < bk.LenLBin(b); revRank++ {
			index := bk.LIndexByRevRank(b, revRank)
			if index > 0 && types[index-1] == TypeS {
				bk.Push(index-1, data[index-1], TypeS)
			}
		}
	}
}

// lmsRange is the half-open [start, end) span an LMS substring covers:
// from one LMS position up to and including the next (or, for the
// final LMS substring, through a virtual terminator one past the end
// of data).
type lmsRange struct {
	start, end int
}

// Build constructs the suffix array of data over the given alphabet
// using SA-IS: classify positions, induce-sort LMS substrings into
// bucket order, rank them, recurse if ranks aren't yet unique, then
// induce-sort the final array from the correctly ordered LMS seeds.
func Build[T any](data []T, alphabet lzsa.Alphabet[T]) []int {
	if len(data) == 0 {
		return []int{}
	}

	types := classify(data, alphabet)

	lmsOrders := make([]int, len(data))
	var lmsRanges []lmsRange

	for i := 1; i < len(data); i++ {
		if types[i-1] != TypeL || types[i] != TypeS {
			continue
		}

		if n := len(lmsRanges); n > 0 {
			lmsRanges[n-1].end = i + 1
		}

		lmsOrders[i] = len(lmsRanges)
		lmsRanges = append(lmsRanges, lmsRange{start: i, end: len(data) + 1})
	}

	bk := NewBucket(data, types, alphabet)

	for _, r := range lmsRanges {
		bk.Push(r.start, data[r.start], TypeS)
	}

	inducedSort(data, types, bk)

	lmsSuffixArray := sortLMS(data, types, alphabet, bk, lmsOrders, lmsRanges)

	bk.ClearAll()

	for i := len(lmsSuffixArray) - 1; i >= 0; i-- {
		r := lmsRanges[lmsSuffixArray[i]]
		bk.Push(r.start, data[r.start], TypeS)
	}

	inducedSort(data, types, bk)

	return bk.Flatten()
}

// sortLMS ranks the LMS substrings by scanning the induce-sorted S-bins
// in order and comparing each LMS substring against the previously seen
// one; if any tie remains (two LMS substrings rank equal), it recurses
// Build on the rank sequence to break the tie, exactly as SA-IS
// requires for correctness on inputs with repeated substrings.
func sortLMS[T any](data []T, types []SuffixType, alphabet lzsa.Alphabet[T], bk *Bucket[T], lmsOrders []int, lmsRanges []lmsRange) []int {
	lmsRanks := make([]int, len(lmsRanges))
	rank := 0
	haveLast := false
	lastOrder := 0

	for b := 0; b < bk.NumBins(); b++ {
		for _, index := range bk.SBinSlice(b) {
			if index <= 0 || types[index-1] != TypeL {
				continue
			}

			order := lmsOrders[index]
			r := lmsRanges[order]

			if haveLast {
				last := lmsRanges[lastOrder]
				if !sameLMSSubstring(data, alphabet, r, last, len(data)) {
					rank++
				}
			}

			lmsRanks[order] = rank
			lastOrder = order
			haveLast = true
		}
	}

	if rank+1 == len(lmsRanks) {
		// Every LMS substring is distinct: the ranks already are the
		// order, so invert them directly.
		lmsSuffixArray := make([]int, len(lmsRanks))
		for order, r := range lmsRanks {
			lmsSuffixArray[r] = order
		}

		return lmsSuffixArray
	}

	return Build(lmsRanks, lzsa.IndexAlphabet{K: len(lmsRanks)})
}

func sameLMSSubstring[T any](data []T, alphabet lzsa.Alphabet[T], a, b lmsRange, dataLen int) bool {
	aLen := a.end - a.start
	bLen := b.end - b.start

	if aLen != bLen {
		return false
	}

	for i := 0; i < aLen; i++ {
		ai := a.start + i
		bi := b.start + i
		aEnd := ai >= dataLen
		bEnd := bi >= dataLen

		if aEnd != bEnd {
			return false
		}

		if aEnd {
			continue
		}

		if alphabet.BucketOf(data[ai]) != alphabet.BucketOf(data[bi]) {
			return false
		}
	}

	return true
}

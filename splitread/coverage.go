// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package splitread

// normalizeInterval maps the half-open query interval [queryStart,
// queryEnd) into the coordinate frame of the read as sequenced. Reverse
// strand query coordinates are flipped around readLength.
func normalizeInterval(queryStart, queryEnd, readLength int, reverse bool) (start, end int) {
	if reverse {
		return readLength - queryEnd, readLength - queryStart
	}
	return queryStart, queryEnd
}

// readInterval returns the normalized interval of a, clamped to [0, n).
func readInterval(a *Alignment, n int) (start, end int) {
	start, end = normalizeInterval(a.QueryStart, a.QueryEnd(), a.ReadLen, a.Reverse)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

// coverageCounts returns, for each base of the read, the number of
// alignments in alns that cover it. The histogram length is the read
// length of the first alignment; all alignments of one mate are
// expected to agree on it.
func coverageCounts(alns []Alignment) []int {
	if len(alns) == 0 {
		return []int{}
	}
	counts := make([]int, alns[0].ReadLen)
	for i := range alns {
		start, end := readInterval(&alns[i], len(counts))
		for p := start; p < end; p++ {
			counts[p]++
		}
	}
	return counts
}

// uniqueRatio returns the fraction of a's aligned bases that no other
// alignment in the histogram's set covers.
func uniqueRatio(a *Alignment, counts []int) float64 {
	if a.QuerySpan == 0 {
		return 0
	}
	start, end := readInterval(a, len(counts))
	ones := 0
	for p := start; p < end; p++ {
		if counts[p] == 1 {
			ones++
		}
	}
	return float64(ones) / float64(a.QuerySpan)
}

// uniqueRatios computes uniqueRatio for every alignment of alns against
// the coverage of alns itself.
func uniqueRatios(alns []Alignment) []float64 {
	counts := coverageCounts(alns)
	ratios := make([]float64, len(alns))
	for i := range alns {
		ratios[i] = uniqueRatio(&alns[i], counts)
	}
	return ratios
}

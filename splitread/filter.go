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

import "math"

// excessMappabilityFilter keeps the mapped alignments whose span exceeds
// the larger flank mappability score by at least minExcess.
func excessMappabilityFilter(alns []Alignment, minExcess int) []Alignment {
	kept := make([]Alignment, 0, len(alns))
	for _, a := range alns {
		if !a.Unmapped && a.Excess() >= minExcess {
			kept = append(kept, a)
		}
	}
	return kept
}

// minMatchFilter keeps the mapped alignments with at least minMatch
// aligned bases.
func minMatchFilter(alns []Alignment, minMatch int) []Alignment {
	kept := make([]Alignment, 0, len(alns))
	for _, a := range alns {
		if !a.Unmapped && a.QuerySpan >= minMatch {
			kept = append(kept, a)
		}
	}
	return kept
}

// scoredAlignment is an alignment that passed the quality filters along
// with its unique base ratio.
type scoredAlignment struct {
	Alignment
	ratio float64
}

// uniqueMatch returns the number of uniquely aligned bases, rounded half
// to even.
func (s *scoredAlignment) uniqueMatch() int {
	return int(math.RoundToEven(float64(s.QuerySpan) * s.ratio))
}

// ratioFilter pairs alns with their ratios and keeps the ones with a
// ratio of at least minRatio.
func ratioFilter(alns []Alignment, ratios []float64, minRatio float64) []scoredAlignment {
	kept := make([]scoredAlignment, 0, len(alns))
	for i, a := range alns {
		if ratios[i] >= minRatio {
			kept = append(kept, scoredAlignment{Alignment: a, ratio: ratios[i]})
		}
	}
	return kept
}

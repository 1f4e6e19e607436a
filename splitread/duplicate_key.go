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

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// duplicateKey identifies the surviving hits of a read pair: the
// (refId, pos) of every mate 1 hit in hit index order, followed by those
// of mate 2. There is no marker between the mates, so a lone mate 1 hit
// and a lone mate 2 hit at the same locus share a key.
type duplicateKey struct {
	refIds    []int
	positions []int
}

func (k *duplicateKey) String() string {
	return fmt.Sprintf("(%v,%v)", k.refIds, k.positions)
}

// encode returns a string usable as a map key. Reference ids and
// positions are written in separate sections to match the two-tuple
// layout of the key.
func (k *duplicateKey) encode() string {
	var b strings.Builder
	for _, id := range k.refIds {
		b.WriteString(strconv.Itoa(id))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, pos := range k.positions {
		b.WriteString(strconv.Itoa(pos))
		b.WriteByte(',')
	}
	return b.String()
}

// sortByHitIndex orders hits by ascending hit index. Hits that share a
// hit index keep their input order.
func sortByHitIndex(hits []scoredAlignment) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].HitIndex < hits[j].HitIndex
	})
}

// newDuplicateKey sorts mate1 and mate2 by hit index in place and
// returns their key.
func newDuplicateKey(mate1, mate2 []scoredAlignment) duplicateKey {
	sortByHitIndex(mate1)
	sortByHitIndex(mate2)
	n := len(mate1) + len(mate2)
	k := duplicateKey{
		refIds:    make([]int, 0, n),
		positions: make([]int, 0, n),
	}
	for _, hits := range [][]scoredAlignment{mate1, mate2} {
		for i := range hits {
			k.refIds = append(k.refIds, hits[i].RefID)
			k.positions = append(k.positions, hits[i].Pos)
		}
	}
	return k
}

// duplicateSet remembers every key it has been given. It is never
// pruned: memory grows with the number of distinct surviving read pairs
// in the input.
type duplicateSet struct {
	seen map[string]struct{}
}

func newDuplicateSet() *duplicateSet {
	return &duplicateSet{seen: make(map[string]struct{})}
}

// insert adds k and reports whether k was new.
func (s *duplicateSet) insert(k duplicateKey) bool {
	e := k.encode()
	if _, found := s.seen[e]; found {
		return false
	}
	s.seen[e] = struct{}{}
	return true
}

func (s *duplicateSet) len() int {
	return len(s.seen)
}

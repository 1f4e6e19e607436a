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
	"github.com/grailbio/base/intervalmap"
)

// windowMap associates each refId to an intervalmap holding a window of
// half-width hitWindow around every mate-1 hit on that reference.
type windowMap map[int]*intervalmap.T

// newWindowMap builds the windows for mate1. A position p lies in the
// window of hit h iff |p - h.Pos| < hitWindow.
func newWindowMap(mate1 []scoredAlignment, hitWindow int) windowMap {
	m := make(windowMap)
	if hitWindow <= 0 {
		return m
	}
	allEntries := make(map[int][]intervalmap.Entry)
	for i := range mate1 {
		h := &mate1[i]
		allEntries[h.RefID] = append(allEntries[h.RefID], intervalmap.Entry{
			Interval: intervalmap.Interval{
				Start: int64(h.Pos - hitWindow + 1),
				Limit: int64(h.Pos + hitWindow),
			},
			Data: i,
		})
	}
	for refID, entries := range allEntries {
		m[refID] = intervalmap.New(entries)
	}
	return m
}

// near reports whether pos on refID lies inside any window.
func (m windowMap) near(refID, pos int, scratch *[]*intervalmap.Entry) bool {
	t, ok := m[refID]
	if !ok {
		return false
	}
	*scratch = (*scratch)[:0]
	t.Get(intervalmap.Interval{Start: int64(pos), Limit: int64(pos) + 1}, scratch)
	return len(*scratch) > 0
}

// suppressMateOverlaps drops the mate-2 hits that sit within hitWindow
// of a mate-1 hit on the same reference; both mates of a fragment that
// spans a breakpoint tend to report it, and mate 1 takes priority. It
// returns the kept mate-2 hits and the number dropped.
func suppressMateOverlaps(mate1, mate2 []scoredAlignment, hitWindow int) ([]scoredAlignment, int) {
	if len(mate1) == 0 || len(mate2) == 0 {
		return mate2, 0
	}
	windows := newWindowMap(mate1, hitWindow)
	var scratch []*intervalmap.Entry
	kept := make([]scoredAlignment, 0, len(mate2))
	for _, h := range mate2 {
		if windows.near(h.RefID, h.Pos, &scratch) {
			continue
		}
		kept = append(kept, h)
	}
	return kept, len(mate2) - len(kept)
}

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
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
)

// ReadGroup holds every alignment of one read pair, split by mate.
type ReadGroup struct {
	Name  string
	Mate1 []Alignment
	Mate2 []Alignment
}

// GroupIterator turns a stream of records that is grouped by read name
// into a stream of ReadGroups. The input is not sorted here: if a name
// reappears after another name it starts a new, separate group.
//
// Typical usage:
//
//   groups := NewGroupIterator(iter)
//   for groups.Scan() {
//     g := groups.Group()
//     ...
//   }
//   if err := groups.Err(); err != nil { ... }
type GroupIterator struct {
	iter bamprovider.Iterator

	// next is the lookahead record; it belongs to the group after cur.
	next    *sam.Record
	hasNext bool
	done    bool

	cur ReadGroup
	err error
}

// NewGroupIterator creates a GroupIterator reading from iter. The caller
// still owns iter and must close it.
func NewGroupIterator(iter bamprovider.Iterator) *GroupIterator {
	return &GroupIterator{iter: iter}
}

func (g *GroupIterator) advance() {
	if g.iter.Scan() {
		g.next = g.iter.Record()
		g.hasNext = true
		return
	}
	g.next = nil
	g.hasNext = false
	g.done = true
	if err := g.iter.Err(); err != nil && g.err == nil {
		g.err = err
	}
}

// Scan reads the next group. It returns false at the end of the stream
// or on error.
func (g *GroupIterator) Scan() bool {
	if g.err != nil {
		return false
	}
	if !g.hasNext {
		if g.done {
			return false
		}
		g.advance()
		if !g.hasNext {
			return false
		}
	}
	g.cur = ReadGroup{Name: g.next.Name}
	for g.hasNext && g.next.Name == g.cur.Name {
		r := g.next
		a, err := newAlignment(r)
		if err != nil {
			g.err = err
			return false
		}
		if r.Flags&sam.Read1 != 0 {
			g.cur.Mate1 = append(g.cur.Mate1, a)
		} else {
			g.cur.Mate2 = append(g.cur.Mate2, a)
		}
		sam.PutInFreePool(r)
		g.advance()
		if g.err != nil {
			return false
		}
	}
	return true
}

// Group returns the group read by the last successful Scan.
func (g *GroupIterator) Group() ReadGroup {
	return g.cur
}

// Err returns the first error encountered by the underlying iterator or
// while converting its records.
func (g *GroupIterator) Err() error {
	return g.err
}

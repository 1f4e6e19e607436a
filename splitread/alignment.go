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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
)

var (
	hitIndexTag   = sam.NewTag("HI")
	leftFlankTag  = sam.NewTag("L0")
	rightFlankTag = sam.NewTag("R0")
)

// Alignment is one reported placement of a read segment. Query
// coordinates are in CIGAR order, so for reverse strand alignments they
// are relative to the reverse complemented read.
type Alignment struct {
	Name       string
	Mate       int // 1 or 2
	HitIndex   int
	RefID      int // -1 when unmapped
	RefName    string
	Pos        int
	Reverse    bool
	Unmapped   bool
	ReadLen    int
	QueryStart int
	QuerySpan  int

	// LeftFlank and RightFlank are the upstream mappability scores
	// attached by mappability_tag as L0 and R0.
	LeftFlank  int
	RightFlank int
}

// QueryEnd returns the exclusive end of the aligned query bases.
func (a *Alignment) QueryEnd() int {
	return a.QueryStart + a.QuerySpan
}

// MaxFlank returns the larger of the two flank mappability scores.
func (a *Alignment) MaxFlank() int {
	if a.LeftFlank > a.RightFlank {
		return a.LeftFlank
	}
	return a.RightFlank
}

// Excess returns the number of aligned bases beyond the worse flank
// mappability score.
func (a *Alignment) Excess() int {
	return a.QuerySpan - a.MaxFlank()
}

func (a *Alignment) String() string {
	return fmt.Sprintf("%s/%d hit %d %s:%d rev=%v q[%d,%d)/%d L0=%d R0=%d",
		a.Name, a.Mate, a.HitIndex, a.RefName, a.Pos, a.Reverse,
		a.QueryStart, a.QueryEnd(), a.ReadLen, a.LeftFlank, a.RightFlank)
}

// newAlignment converts r into an Alignment. Mapped records must carry
// the HI, L0 and R0 tags; a missing tag is an error since defaulting it
// would silently change filtering results.
func newAlignment(r *sam.Record) (Alignment, error) {
	a := Alignment{
		Name:     r.Name,
		Mate:     1,
		RefID:    r.Ref.ID(),
		RefName:  r.Ref.Name(),
		Pos:      r.Pos,
		Reverse:  r.Flags&sam.Reverse != 0,
		Unmapped: r.Flags&sam.Unmapped != 0,
	}
	if r.Flags&sam.Read2 != 0 {
		a.Mate = 2
	}
	a.ReadLen, a.QueryStart, a.QuerySpan = queryExtent(r)
	if a.Unmapped {
		// Unmapped records are dropped by every filter, so tags are
		// read opportunistically.
		a.HitIndex, _ = intTag(r, hitIndexTag)
		a.LeftFlank, _ = intTag(r, leftFlankTag)
		a.RightFlank, _ = intTag(r, rightFlankTag)
		return a, nil
	}
	var err error
	if a.HitIndex, err = requiredIntTag(r, hitIndexTag); err != nil {
		return a, err
	}
	if a.LeftFlank, err = requiredIntTag(r, leftFlankTag); err != nil {
		return a, err
	}
	if a.RightFlank, err = requiredIntTag(r, rightFlankTag); err != nil {
		return a, err
	}
	return a, nil
}

// queryExtent returns the full read length along with the start and
// length of the aligned part of the query. Hard clipped bases count
// towards the read length so that secondary records without SEQ still
// share a coordinate frame with the primary.
func queryExtent(r *sam.Record) (readLen, start, span int) {
	if len(r.Cigar) == 0 {
		n := r.Seq.Length
		return n, 0, n
	}
	var leading, trailing int
	inLeading := true
	for _, co := range r.Cigar {
		t := co.Type()
		clip := t == sam.CigarSoftClipped || t == sam.CigarHardClipped
		if clip {
			if inLeading {
				leading += co.Len()
			} else {
				trailing += co.Len()
			}
		} else {
			inLeading = false
			trailing = 0
		}
		if t == sam.CigarHardClipped {
			readLen += co.Len()
		} else {
			readLen += co.Len() * t.Consumes().Query
		}
	}
	if inLeading {
		// All clips, nothing aligned.
		return readLen, readLen, 0
	}
	return readLen, leading, readLen - leading - trailing
}

func requiredIntTag(r *sam.Record, tag sam.Tag) (int, error) {
	v, ok := intTag(r, tag)
	if !ok {
		return 0, errors.E(errors.Invalid,
			fmt.Sprintf("record %s (ref %s pos %d): missing or non-integer %s tag", r.Name, r.Ref.Name(), r.Pos, tag))
	}
	return v, nil
}

// intTag returns the value of the integer aux field tag. SAM writers
// choose the narrowest integer type, so every width is accepted.
func intTag(r *sam.Record, tag sam.Tag) (int, bool) {
	aux := r.AuxFields.Get(tag)
	if aux == nil {
		return 0, false
	}
	switch v := aux.Value().(type) {
	case int8:
		return int(v), true
	case uint8:
		return int(v), true
	case int16:
		return int(v), true
	case uint16:
		return int(v), true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

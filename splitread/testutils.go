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
	"strings"

	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
)

// NewRecord creates a record with a sequence and qualities matching the
// query length of cigar.
func NewRecord(name string, ref *sam.Reference, pos int, flags sam.Flags, cigar sam.Cigar) *sam.Record {
	r := &sam.Record{
		Name:  name,
		Ref:   ref,
		Pos:   pos,
		Flags: flags,
		Cigar: cigar,
	}
	n := 0
	for _, co := range cigar {
		n += co.Len() * co.Type().Consumes().Query
	}
	r.Seq = sam.NewSeq([]byte(strings.Repeat("A", n)))
	r.Qual = []byte(strings.Repeat("I", n))
	return r
}

// NewHit creates a mapped record carrying the hit index and flank
// mappability tags.
func NewHit(name string, ref *sam.Reference, pos int, flags sam.Flags, cigar sam.Cigar, hitIndex, left, right int) *sam.Record {
	r := NewRecord(name, ref, pos, flags, cigar)
	r.AuxFields = append(r.AuxFields,
		NewAux("HI", hitIndex),
		NewAux("L0", left),
		NewAux("R0", right))
	return r
}

// NewAux creates an aux field, panicking on error.
func NewAux(name string, val interface{}) sam.Aux {
	aux, err := sam.NewAux(sam.NewTag(name), val)
	if err != nil {
		panic(fmt.Sprintf("error creating %s %v tag: %v", name, val, err))
	}
	return aux
}

// Cigar builds a cigar from alternating op types and lengths, e.g.
// Cigar(sam.CigarSoftClipped, 10, sam.CigarMatch, 40).
func Cigar(ops ...interface{}) sam.Cigar {
	if len(ops)%2 != 0 {
		panic("Cigar needs (type, length) pairs")
	}
	c := make(sam.Cigar, 0, len(ops)/2)
	for i := 0; i < len(ops); i += 2 {
		c = append(c, sam.NewCigarOp(ops[i].(sam.CigarOpType), ops[i+1].(int)))
	}
	return c
}

type sliceIterator struct {
	recs []*sam.Record
	rec  *sam.Record
}

// NewSliceIterator returns an iterator yielding recs in the given order,
// unlike bamprovider.NewFakeProvider which filters by coordinate. Each
// Record call returns a copy so that the code under test cannot alter
// the test input.
func NewSliceIterator(recs []*sam.Record) bamprovider.Iterator {
	return &sliceIterator{recs: recs}
}

func (i *sliceIterator) Scan() bool {
	if len(i.recs) == 0 {
		return false
	}
	r := *i.recs[0]
	r.Cigar = append(sam.Cigar(nil), r.Cigar...)
	r.AuxFields = append(sam.AuxFields(nil), r.AuxFields...)
	i.rec = &r
	i.recs = i.recs[1:]
	return true
}

func (i *sliceIterator) Record() *sam.Record { return i.rec }
func (i *sliceIterator) Err() error          { return nil }
func (i *sliceIterator) Close() error        { return nil }

package splitread

import (
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chr1, _   = sam.NewReference("chr1", "", "", 1000000, nil, nil)
	chr2, _   = sam.NewReference("chr2", "", "", 1000000, nil, nil)
	header, _ = sam.NewHeader(nil, []*sam.Reference{chr1, chr2})

	r1F = sam.Paired | sam.Read1
	r1R = sam.Paired | sam.Read1 | sam.Reverse
	r2F = sam.Paired | sam.Read2
	r2R = sam.Paired | sam.Read2 | sam.Reverse
)

func TestQueryExtent(t *testing.T) {
	tests := []struct {
		name    string
		cigar   sam.Cigar
		readLen int
		start   int
		span    int
	}{
		{"full", Cigar(sam.CigarMatch, 50), 50, 0, 50},
		{"leading-soft", Cigar(sam.CigarSoftClipped, 10, sam.CigarMatch, 40), 50, 10, 40},
		{"trailing-soft", Cigar(sam.CigarMatch, 30, sam.CigarSoftClipped, 20), 50, 0, 30},
		{"hard-and-soft", Cigar(sam.CigarHardClipped, 5, sam.CigarSoftClipped, 5, sam.CigarMatch, 20, sam.CigarSoftClipped, 20), 50, 10, 20},
		{"indels", Cigar(sam.CigarSoftClipped, 10, sam.CigarMatch, 10, sam.CigarInsertion, 2, sam.CigarDeletion, 3, sam.CigarMatch, 8, sam.CigarHardClipped, 30), 60, 10, 20},
		{"all-clipped", Cigar(sam.CigarSoftClipped, 50), 50, 50, 0},
	}
	for _, test := range tests {
		r := NewRecord("A", chr1, 100, r1F, test.cigar)
		if test.name == "hard-and-soft" || test.name == "indels" {
			// Hard clipped bases are absent from SEQ.
			assert.NotEqual(t, test.readLen, r.Seq.Length, test.name)
		}
		readLen, start, span := queryExtent(r)
		assert.Equal(t, test.readLen, readLen, test.name)
		assert.Equal(t, test.start, start, test.name)
		assert.Equal(t, test.span, span, test.name)
		assert.True(t, start+span <= readLen, test.name)
	}
}

func TestQueryExtentNoCigar(t *testing.T) {
	r := NewRecord("A", nil, -1, r1F|sam.Unmapped, nil)
	r.Seq = sam.NewSeq([]byte("ACGTACGT"))
	readLen, start, span := queryExtent(r)
	assert.Equal(t, 8, readLen)
	assert.Equal(t, 0, start)
	assert.Equal(t, 8, span)
}

func TestNewAlignment(t *testing.T) {
	r := NewHit("A", chr2, 1234, r2R, Cigar(sam.CigarSoftClipped, 10, sam.CigarMatch, 40), 3, 12, 17)
	a, err := newAlignment(r)
	require.NoError(t, err)
	assert.Equal(t, Alignment{
		Name:       "A",
		Mate:       2,
		HitIndex:   3,
		RefID:      1,
		RefName:    "chr2",
		Pos:        1234,
		Reverse:    true,
		ReadLen:    50,
		QueryStart: 10,
		QuerySpan:  40,
		LeftFlank:  12,
		RightFlank: 17,
	}, a)
	assert.Equal(t, 50, a.QueryEnd())
	assert.Equal(t, 17, a.MaxFlank())
	assert.Equal(t, 23, a.Excess())
}

func TestNewAlignmentWideTags(t *testing.T) {
	r := NewRecord("A", chr1, 10, r1F, Cigar(sam.CigarMatch, 50))
	r.AuxFields = append(r.AuxFields,
		NewAux("HI", uint32(70000)),
		NewAux("L0", int16(-3)),
		NewAux("R0", uint16(200)))
	a, err := newAlignment(r)
	require.NoError(t, err)
	assert.Equal(t, 70000, a.HitIndex)
	assert.Equal(t, -3, a.LeftFlank)
	assert.Equal(t, 200, a.RightFlank)
}

func TestNewAlignmentMissingTag(t *testing.T) {
	for _, missing := range []string{"HI", "L0", "R0"} {
		r := NewRecord("A", chr1, 10, r1F, Cigar(sam.CigarMatch, 50))
		for _, tag := range []string{"HI", "L0", "R0"} {
			if tag != missing {
				r.AuxFields = append(r.AuxFields, NewAux(tag, 1))
			}
		}
		_, err := newAlignment(r)
		require.Error(t, err, missing)
		assert.True(t, errors.Is(errors.Invalid, err), missing)
		assert.Contains(t, err.Error(), missing)
	}
}

func TestNewAlignmentUnmappedWithoutTags(t *testing.T) {
	r := NewRecord("A", nil, -1, r1F|sam.Unmapped, Cigar(sam.CigarMatch, 50))
	a, err := newAlignment(r)
	require.NoError(t, err)
	assert.True(t, a.Unmapped)
	assert.Equal(t, -1, a.RefID)
	assert.Equal(t, "*", a.RefName)
	assert.Equal(t, 1, a.Mate)
}

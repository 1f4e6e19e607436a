package splitread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInterval(t *testing.T) {
	tests := []struct {
		queryStart, queryEnd, readLength int
		reverse                          bool
		start, end                       int
	}{
		{0, 50, 50, false, 0, 50},
		{0, 50, 50, true, 0, 50},
		{10, 50, 50, false, 10, 50},
		{10, 50, 50, true, 0, 40},
		{0, 20, 50, true, 30, 50},
		{0, 0, 50, false, 0, 0},
		{50, 50, 50, true, 0, 0},
		{5, 25, 100, true, 75, 95},
	}
	for _, test := range tests {
		start, end := normalizeInterval(test.queryStart, test.queryEnd, test.readLength, test.reverse)
		assert.Equal(t, test.start, start, "%+v", test)
		assert.Equal(t, test.end, end, "%+v", test)
		assert.Equal(t, test.queryEnd-test.queryStart, end-start, "%+v", test)
	}
}

func hit(readLen, queryStart, querySpan int, reverse bool) Alignment {
	return Alignment{
		ReadLen:    readLen,
		QueryStart: queryStart,
		QuerySpan:  querySpan,
		Reverse:    reverse,
	}
}

func TestCoverageCounts(t *testing.T) {
	tests := []struct {
		name     string
		alns     []Alignment
		expected []int
	}{
		{"empty", nil, []int{}},
		{"one", []Alignment{hit(6, 0, 6, false)}, []int{1, 1, 1, 1, 1, 1}},
		{"split", []Alignment{hit(6, 0, 3, false), hit(6, 3, 3, false)}, []int{1, 1, 1, 1, 1, 1}},
		{"reverse", []Alignment{hit(6, 0, 2, true)}, []int{0, 0, 0, 0, 1, 1}},
		{"overlap", []Alignment{hit(6, 0, 4, false), hit(6, 0, 4, true)}, []int{1, 1, 2, 2, 1, 1}},
		{"nested", []Alignment{hit(6, 0, 6, false), hit(6, 2, 2, false)}, []int{1, 1, 2, 2, 1, 1}},
	}
	for _, test := range tests {
		counts := coverageCounts(test.alns)
		assert.Equal(t, test.expected, counts, test.name)

		// Every aligned base is counted once per alignment.
		sum, spans := 0, 0
		for _, c := range counts {
			sum += c
		}
		for _, a := range test.alns {
			spans += a.QuerySpan
		}
		assert.Equal(t, spans, sum, test.name)
		if len(test.alns) > 0 {
			assert.Len(t, counts, test.alns[0].ReadLen, test.name)
		}
	}
}

func TestCoverageCountsClamps(t *testing.T) {
	// A longer second alignment must not run past the histogram.
	counts := coverageCounts([]Alignment{hit(4, 0, 4, false), hit(8, 0, 8, true)})
	assert.Equal(t, []int{2, 2, 2, 2}, counts)
}

func TestUniqueRatios(t *testing.T) {
	tests := []struct {
		name     string
		alns     []Alignment
		expected []float64
	}{
		{"empty", nil, []float64{}},
		{"alone", []Alignment{hit(50, 0, 50, false)}, []float64{1}},
		{"disjoint", []Alignment{hit(50, 0, 20, false), hit(50, 20, 30, false)}, []float64{1, 1}},
		{"covered", []Alignment{hit(50, 0, 50, false), hit(50, 10, 20, false)}, []float64{30.0 / 50, 0}},
		{"identical", []Alignment{hit(50, 0, 40, false), hit(50, 0, 40, false)}, []float64{0, 0}},
		// The reverse hit covers read bases [30, 50), overlapping the
		// forward hit on [30, 40).
		{"strands", []Alignment{hit(50, 0, 40, false), hit(50, 0, 20, true)}, []float64{30.0 / 40, 10.0 / 20}},
		{"zero-span", []Alignment{hit(50, 10, 0, false)}, []float64{0}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, uniqueRatios(test.alns), test.name)
	}
}

package splitread

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsPercentDuplication(t *testing.T) {
	tests := []struct {
		dupes, kept int
		expected    float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 25},
		{5, 0, 100},
	}
	for _, test := range tests {
		m := Metrics{DuplicateGroups: test.dupes, KeptGroups: test.kept}
		assert.InEpsilon(t, test.expected+1, m.PercentDuplication()+1, 1e-12, "%+v", test)
	}
}

func TestMetricsAdd(t *testing.T) {
	a := Metrics{ReadGroupsExamined: 3, AlignmentsExamined: 10, KeptGroups: 2, DuplicateGroups: 1, RowsWritten: 4}
	b := Metrics{ReadGroupsExamined: 2, AlignmentsExamined: 5, EmptyGroups: 2, MateOverlapSuppressed: 1, LowRatioFiltered: 3}
	a.Add(&b)
	assert.Equal(t, Metrics{
		ReadGroupsExamined:    5,
		AlignmentsExamined:    15,
		KeptGroups:            2,
		DuplicateGroups:       1,
		RowsWritten:           4,
		EmptyGroups:           2,
		MateOverlapSuppressed: 1,
		LowRatioFiltered:      3,
	}, a)
}

func TestMetricsString(t *testing.T) {
	m := Metrics{ReadGroupsExamined: 4, DuplicateGroups: 1, KeptGroups: 3, RowsWritten: 5}
	fields := strings.Split(m.String(), "\t")
	assert.Len(t, fields, len(metricsColumns))
	assert.Equal(t, "4", fields[0])
	assert.Equal(t, "1", fields[8])
	assert.Equal(t, "3", fields[9])
	assert.Equal(t, "5", fields[10])
	assert.Equal(t, "25.000000", fields[11])
}

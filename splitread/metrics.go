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
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// Metrics contains counts collected while smashing one input.
type Metrics struct {
	// ReadGroupsExamined is the number of distinct read names seen.
	ReadGroupsExamined int

	// AlignmentsExamined is the number of records read, mapped or not.
	AlignmentsExamined int

	// UnmappedAlignments is the number of records with the unmapped flag.
	UnmappedAlignments int

	// ExcessMappabilityFiltered is the number of mapped alignments
	// dropped for insufficient excess mappability.
	ExcessMappabilityFiltered int

	// MinMatchFiltered is the number of alignments that passed the
	// excess mappability filter but had too few aligned bases.
	MinMatchFiltered int

	// LowRatioFiltered is the number of alignments whose unique base
	// ratio was below the minimum.
	LowRatioFiltered int

	// MateOverlapSuppressed is the number of mate 2 hits dropped for
	// being near a mate 1 hit.
	MateOverlapSuppressed int

	// EmptyGroups is the number of read groups with no alignment left
	// after the quality filters.
	EmptyGroups int

	// DuplicateGroups is the number of read groups whose surviving hits
	// matched an earlier read group.
	DuplicateGroups int

	// KeptGroups is the number of read groups written to the table.
	KeptGroups int

	// RowsWritten is the number of table rows written.
	RowsWritten int
}

var metricsColumns = []string{
	"READ_GROUPS_EXAMINED", "ALIGNMENTS_EXAMINED", "UNMAPPED_ALIGNMENTS",
	"EXCESS_MAPPABILITY_FILTERED", "MIN_MATCH_FILTERED", "LOW_RATIO_FILTERED",
	"MATE_OVERLAP_SUPPRESSED", "EMPTY_GROUPS", "DUPLICATE_GROUPS",
	"KEPT_GROUPS", "ROWS_WRITTEN", "PERCENT_DUPLICATION",
}

func (m *Metrics) values() []int {
	return []int{
		m.ReadGroupsExamined, m.AlignmentsExamined, m.UnmappedAlignments,
		m.ExcessMappabilityFiltered, m.MinMatchFiltered, m.LowRatioFiltered,
		m.MateOverlapSuppressed, m.EmptyGroups, m.DuplicateGroups,
		m.KeptGroups, m.RowsWritten,
	}
}

// PercentDuplication returns the percentage of non-empty read groups
// that were duplicates.
func (m *Metrics) PercentDuplication() float64 {
	total := m.DuplicateGroups + m.KeptGroups
	if total == 0 {
		return 0
	}
	return 100 * float64(m.DuplicateGroups) / float64(total)
}

// String returns a tab separated representation of the metrics in the
// column order of the metrics file.
func (m *Metrics) String() string {
	s := ""
	for _, v := range m.values() {
		s += fmt.Sprintf("%d\t", v)
	}
	return s + fmt.Sprintf("%0.6f", m.PercentDuplication())
}

// Add adds the metrics in other to m.
func (m *Metrics) Add(other *Metrics) {
	m.ReadGroupsExamined += other.ReadGroupsExamined
	m.AlignmentsExamined += other.AlignmentsExamined
	m.UnmappedAlignments += other.UnmappedAlignments
	m.ExcessMappabilityFiltered += other.ExcessMappabilityFiltered
	m.MinMatchFiltered += other.MinMatchFiltered
	m.LowRatioFiltered += other.LowRatioFiltered
	m.MateOverlapSuppressed += other.MateOverlapSuppressed
	m.EmptyGroups += other.EmptyGroups
	m.DuplicateGroups += other.DuplicateGroups
	m.KeptGroups += other.KeptGroups
	m.RowsWritten += other.RowsWritten
}

func writeMetrics(ctx context.Context, opts *Opts, metrics *Metrics) (err error) {
	var f file.File
	f, err = file.Create(ctx, opts.MetricsFile)
	if err != nil {
		return errors.E(err, "couldn't create metrics file:", opts.MetricsFile)
	}
	defer file.CloseAndReport(ctx, f, &err)

	w := tsv.NewWriter(f.Writer(ctx))
	w.WriteString("# smashmem")
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	w.WriteString(fmt.Sprintf("# min-match %d, min-ratio %g, hit-window %d, min-excess-mappability %d",
		opts.MinMatch, opts.MinRatio, opts.HitWindow, opts.MinExcessMappability))
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	for _, c := range metricsColumns {
		w.WriteString(c)
	}
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	for _, v := range metrics.values() {
		w.WriteInt64(int64(v))
	}
	w.WriteString(fmt.Sprintf("%0.6f", metrics.PercentDuplication()))
	if err = w.EndLine(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	if err = w.Flush(); err != nil {
		return errors.E(err, "error writing to metrics file:", opts.MetricsFile)
	}
	return nil
}

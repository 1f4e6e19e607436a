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
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/encoding/bamprovider"
	"v.io/x/lib/vlog"
)

// Opts holds the thresholds and paths for a smash run.
type Opts struct {
	// Input is the BAM or SAM file to read. Records must be grouped by
	// read name, as produced by the aligner or samtools sort -n.
	Input string
	// OutputPath is the hit table path; "" or "-" writes to stdout.
	OutputPath string
	// MetricsFile, if set, receives a metrics summary.
	MetricsFile string

	// MinMatch is the minimum number of aligned bases of a hit.
	MinMatch int
	// MinRatio is the minimum fraction of a hit's aligned bases that no
	// other hit of the same mate covers.
	MinRatio float64
	// HitWindow is the distance under which a mate 2 hit is considered
	// the same event as a mate 1 hit.
	HitWindow int
	// MinExcessMappability is the minimum number of aligned bases beyond
	// the larger flank mappability score.
	MinExcessMappability int
}

// Smasher reduces the alignments of each read pair from Iterator to its
// confident, non-redundant split-read hits and writes them as a table.
type Smasher struct {
	Iterator bamprovider.Iterator
	Opts     *Opts
}

// groupState carries the state shared across read groups of one run.
type groupState struct {
	opts    *Opts
	seen    *duplicateSet
	table   *tableWriter
	metrics *Metrics
}

// Run processes every read group of s.Iterator in input order and writes
// the table to w. The first read pair with a given set of surviving hits
// is written; later ones are counted as duplicates. Run does not close
// s.Iterator. Rows already written stay in w if Run fails part way.
func (s *Smasher) Run(ctx context.Context, w io.Writer) (*Metrics, error) {
	if err := validate(s.Opts); err != nil {
		return nil, err
	}
	st := &groupState{
		opts:    s.Opts,
		seen:    newDuplicateSet(),
		table:   newTableWriter(w),
		metrics: &Metrics{},
	}
	if err := st.table.writeHeader(); err != nil {
		return st.metrics, errors.E(err, "write table header")
	}
	groups := NewGroupIterator(s.Iterator)
	for groups.Scan() {
		g := groups.Group()
		if err := st.process(&g); err != nil {
			_ = st.table.flush()
			return st.metrics, err
		}
	}
	if err := groups.Err(); err != nil {
		_ = st.table.flush()
		return st.metrics, err
	}
	if err := st.table.writeSummary(st.metrics.DuplicateGroups, st.metrics.KeptGroups); err != nil {
		return st.metrics, errors.E(err, "write table summary")
	}
	if err := st.table.flush(); err != nil {
		return st.metrics, errors.E(err, "flush table")
	}
	log.Debug.Printf("smash: %d read groups, %d kept, %d duplicates, %d distinct keys",
		st.metrics.ReadGroupsExamined, st.metrics.KeptGroups, st.metrics.DuplicateGroups, st.seen.len())
	return st.metrics, nil
}

// qualityFilter applies the excess mappability filter, then the minimum
// match filter, to the alignments of one mate.
func (st *groupState) qualityFilter(alns []Alignment) []Alignment {
	m := st.metrics
	m.AlignmentsExamined += len(alns)
	mapped := 0
	for i := range alns {
		if alns[i].Unmapped {
			m.UnmappedAlignments++
		} else {
			mapped++
		}
	}
	passed := excessMappabilityFilter(alns, st.opts.MinExcessMappability)
	m.ExcessMappabilityFiltered += mapped - len(passed)
	n := len(passed)
	passed = minMatchFilter(passed, st.opts.MinMatch)
	m.MinMatchFiltered += n - len(passed)
	return passed
}

// score computes unique base ratios among the filtered alignments of one
// mate and drops the ones below the minimum ratio.
func (st *groupState) score(alns []Alignment) []scoredAlignment {
	scored := ratioFilter(alns, uniqueRatios(alns), st.opts.MinRatio)
	st.metrics.LowRatioFiltered += len(alns) - len(scored)
	return scored
}

func (st *groupState) process(g *ReadGroup) error {
	m := st.metrics
	m.ReadGroupsExamined++
	passed1 := st.qualityFilter(g.Mate1)
	passed2 := st.qualityFilter(g.Mate2)
	if len(passed1) == 0 && len(passed2) == 0 {
		// Nothing survived the quality filters; there is nothing to
		// deduplicate.
		m.EmptyGroups++
		return nil
	}
	// A group whose hits all fail the ratio filter still takes part in
	// duplicate detection with an empty key.
	mate1 := st.score(passed1)
	mate2 := st.score(passed2)
	var dropped int
	mate2, dropped = suppressMateOverlaps(mate1, mate2, st.opts.HitWindow)
	m.MateOverlapSuppressed += dropped

	key := newDuplicateKey(mate1, mate2)
	if !st.seen.insert(key) {
		vlog.VI(2).Infof("%s: duplicate key %v", g.Name, key.String())
		m.DuplicateGroups++
		return nil
	}
	for _, hits := range [][]scoredAlignment{mate1, mate2} {
		for i := range hits {
			if err := st.table.writeHit(g.Name, &hits[i]); err != nil {
				return errors.E(err, "write row for", g.Name)
			}
			m.RowsWritten++
		}
	}
	m.KeptGroups++
	return nil
}

// SetupAndSmash reads opts.Input and writes the hit table to
// opts.OutputPath, and metrics to opts.MetricsFile if set.
func SetupAndSmash(ctx context.Context, opts *Opts) (metrics *Metrics, err error) {
	if err = validateFiles(opts); err != nil {
		return nil, err
	}
	iter := NewFileIterator(ctx, opts.Input)
	defer func() {
		if e := iter.Close(); e != nil && err == nil {
			err = e
		}
	}()

	var w io.Writer = os.Stdout
	if opts.OutputPath != "" && opts.OutputPath != "-" {
		var out file.File
		if out, err = file.Create(ctx, opts.OutputPath); err != nil {
			return nil, errors.E(err, "couldn't create output:", opts.OutputPath)
		}
		defer file.CloseAndReport(ctx, out, &err)
		w = out.Writer(ctx)
	}

	s := &Smasher{Iterator: iter, Opts: opts}
	if metrics, err = s.Run(ctx, w); err != nil {
		return metrics, err
	}
	log.Printf("%s: %d dupes, %d non-dupes, %d rows", opts.Input,
		metrics.DuplicateGroups, metrics.KeptGroups, metrics.RowsWritten)
	if opts.MetricsFile != "" {
		if err = writeMetrics(ctx, opts, metrics); err != nil {
			return metrics, err
		}
	}
	return metrics, nil
}

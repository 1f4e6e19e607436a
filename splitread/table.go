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
	"io"

	"github.com/grailbio/base/tsv"
)

// TableColumns are the column names of the hit table, in order.
var TableColumns = []string{
	"read_id", "read_index", "hit_index", "chrom", "pos", "reverse",
	"read_len", "hit_offset", "match_len", "umatch", "excess",
}

// tableWriter writes surviving hits as rows of a TSV table.
type tableWriter struct {
	w *tsv.Writer
}

func newTableWriter(w io.Writer) *tableWriter {
	return &tableWriter{w: tsv.NewWriter(w)}
}

func (t *tableWriter) writeHeader() error {
	for _, c := range TableColumns {
		t.w.WriteString(c)
	}
	return t.w.EndLine()
}

// writeHit writes one row. Positions are 0-based, as stored in BAM.
func (t *tableWriter) writeHit(readID string, h *scoredAlignment) error {
	reverse := int64(0)
	if h.Reverse {
		reverse = 1
	}
	t.w.WriteString(readID)
	t.w.WriteInt64(int64(h.Mate))
	t.w.WriteInt64(int64(h.HitIndex))
	t.w.WriteString(h.RefName)
	t.w.WriteInt64(int64(h.Pos))
	t.w.WriteInt64(reverse)
	t.w.WriteInt64(int64(h.ReadLen))
	t.w.WriteInt64(int64(h.QueryStart))
	t.w.WriteInt64(int64(h.QuerySpan))
	t.w.WriteInt64(int64(h.uniqueMatch()))
	t.w.WriteInt64(int64(h.Excess()))
	return t.w.EndLine()
}

// writeSummary writes the trailing duplicate summary line.
func (t *tableWriter) writeSummary(dupes, kept int) error {
	t.w.WriteString(fmt.Sprintf("%d dupes", dupes))
	t.w.WriteString(fmt.Sprintf("%d non-dupes", kept))
	return t.w.EndLine()
}

func (t *tableWriter) flush() error {
	return t.w.Flush()
}

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
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/bio/encoding/bamprovider"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"v.io/x/lib/vlog"
)

// recordReader is implemented by both *bam.Reader and *sam.Reader.
type recordReader interface {
	Read() (*sam.Record, error)
}

// fileIterator reads every record of a BAM or SAM file in file order.
// Unlike the iterators of bamprovider.Provider it needs no index, so it
// works on name-sorted input.
type fileIterator struct {
	ctx  context.Context
	path string
	in   file.File
	bamr *bam.Reader
	r    recordReader
	rec  *sam.Record
	n    int
	err  error
}

// NewFileIterator returns an iterator over all records in path. Paths
// ending in ".bam" are decoded as BAM, anything else as SAM text. Errors
// opening the file are reported by the iterator's Err.
func NewFileIterator(ctx context.Context, path string) bamprovider.Iterator {
	in, err := file.Open(ctx, path)
	if err != nil {
		return bamprovider.NewErrorIterator(errors.E(err, "open", path))
	}
	it := &fileIterator{ctx: ctx, path: path, in: in}
	if strings.HasSuffix(path, ".bam") {
		if it.bamr, err = bam.NewReader(in.Reader(ctx), 1); err != nil {
			_ = in.Close(ctx)
			return bamprovider.NewErrorIterator(errors.E(err, "read bam header", path))
		}
		it.r = it.bamr
	} else {
		var samr *sam.Reader
		if samr, err = sam.NewReader(in.Reader(ctx)); err != nil {
			_ = in.Close(ctx)
			return bamprovider.NewErrorIterator(errors.E(err, "read sam header", path))
		}
		it.r = samr
	}
	return it
}

// Scan implements bamprovider.Iterator.
func (it *fileIterator) Scan() bool {
	if it.err != nil || it.r == nil {
		return false
	}
	rec, err := it.r.Read()
	if err != nil {
		if err != io.EOF {
			it.err = errors.E(err, "read", it.path)
		}
		vlog.VI(1).Infof("%v: read %d records", it.path, it.n)
		it.r = nil
		return false
	}
	it.n++
	it.rec = rec
	return true
}

// Record implements bamprovider.Iterator.
func (it *fileIterator) Record() *sam.Record {
	return it.rec
}

// Err implements bamprovider.Iterator.
func (it *fileIterator) Err() error {
	return it.err
}

// Close implements bamprovider.Iterator.
func (it *fileIterator) Close() error {
	if it.in == nil {
		return it.err
	}
	if it.bamr != nil {
		if err := it.bamr.Close(); err != nil && it.err == nil {
			it.err = err
		}
	}
	if err := it.in.Close(it.ctx); err != nil && it.err == nil {
		it.err = err
	}
	it.in = nil
	return it.err
}

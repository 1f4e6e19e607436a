package splitread

import (
	"math"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  Opts
		valid bool
	}{
		{"defaults", Opts{}, true},
		{"typical", Opts{MinMatch: 20, MinRatio: 0.5, HitWindow: 100, MinExcessMappability: 10}, true},
		{"ratio-one", Opts{MinRatio: 1}, true},
		{"negative-excess", Opts{MinExcessMappability: -5}, true},
		{"negative-match", Opts{MinMatch: -1}, false},
		{"ratio-too-big", Opts{MinRatio: 1.01}, false},
		{"ratio-negative", Opts{MinRatio: -0.1}, false},
		{"ratio-nan", Opts{MinRatio: math.NaN()}, false},
		{"negative-window", Opts{HitWindow: -1}, false},
	}
	for _, test := range tests {
		err := validate(&test.opts)
		if test.valid {
			assert.NoError(t, err, test.name)
		} else {
			assert.Error(t, err, test.name)
			assert.True(t, errors.Is(errors.Invalid, err), test.name)
		}
	}
}

func TestValidateFiles(t *testing.T) {
	assert.Error(t, validateFiles(&Opts{}))
	assert.NoError(t, validateFiles(&Opts{Input: "in.bam"}))
	assert.Error(t, validateFiles(&Opts{Input: "in.bam", OutputPath: "x.tsv", MetricsFile: "x.tsv"}))
	assert.Error(t, validateFiles(&Opts{Input: "in.bam", HitWindow: -1}))
}

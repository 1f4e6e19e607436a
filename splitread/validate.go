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
	"math"

	"github.com/grailbio/base/errors"
)

func validate(opts *Opts) error {
	if opts.MinMatch < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("min-match must be non-negative, got %d", opts.MinMatch))
	}
	if math.IsNaN(opts.MinRatio) || opts.MinRatio < 0 || opts.MinRatio > 1 {
		return errors.E(errors.Invalid, fmt.Sprintf("min-ratio must be in [0, 1], got %v", opts.MinRatio))
	}
	if opts.HitWindow < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("hit-window must be non-negative, got %d", opts.HitWindow))
	}
	return nil
}

// validateFiles checks the options SetupAndSmash needs beyond validate.
func validateFiles(opts *Opts) error {
	if opts.Input == "" {
		return errors.E(errors.Invalid, "you must specify an input bam or sam file")
	}
	if opts.MetricsFile != "" && opts.MetricsFile == opts.OutputPath {
		return errors.E(errors.Invalid, "metrics file and output must differ")
	}
	return validate(opts)
}

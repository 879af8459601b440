//
// Copyright 2024 The dpmean Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package checks contains checks for differentially private functions.
package checks

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// CheckEpsilonStrict returns an error if ε is nonpositive or +∞.
func CheckEpsilonStrict(epsilon float64) error {
	if epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return fmt.Errorf("Epsilon is %f, must be strictly positive and finite: %w", epsilon, ErrNonPositiveEpsilon)
	}
	return nil
}

// CheckSensitivity returns an error if the sensitivity is nonpositive or +∞.
func CheckSensitivity(sensitivity float64) error {
	if sensitivity <= 0 || math.IsInf(sensitivity, 0) || math.IsNaN(sensitivity) {
		return fmt.Errorf("Sensitivity is %f, must be strictly positive and finite: %w", sensitivity, ErrNonPositiveSensitivity)
	}
	return nil
}

// CheckBoundsFloat64 returns an error if lower is larger than upper, or if either parameter is NaN or ±∞.
func CheckBoundsFloat64(lower, upper float64) error {
	if math.IsNaN(lower) {
		return fmt.Errorf("Lower bound cannot be NaN: %w", ErrArgument)
	}
	if math.IsNaN(upper) {
		return fmt.Errorf("Upper bound cannot be NaN: %w", ErrArgument)
	}
	if math.IsInf(lower, 0) {
		return fmt.Errorf("Lower bound cannot be infinity: %w", ErrArgument)
	}
	if math.IsInf(upper, 0) {
		return fmt.Errorf("Upper bound cannot be infinity: %w", ErrArgument)
	}
	if lower > upper {
		return fmt.Errorf("Lower bound (%f) is greater than upper bound (%f): %w", lower, upper, ErrArgument)
	}
	if lower == upper {
		log.Warningf("Lower bound is equal to upper bound: all values will be clamped to %f", upper)
	}
	return nil
}

// CheckBoundsNotEqual returns an error if lower and upper bounds are equal.
func CheckBoundsNotEqual(lower, upper float64) error {
	if lower == upper {
		return fmt.Errorf("Lower and upper bounds are both %f, they cannot be equal to each other: %w", lower, ErrDegenerateSeries)
	}
	return nil
}

// CheckPercentiles returns an error unless 0 ≤ low ≤ high ≤ 100.
func CheckPercentiles(low, high float64) error {
	for _, p := range []float64{low, high} {
		if math.IsNaN(p) || p < 0 || p > 100 {
			return fmt.Errorf("Percentile is %f, must be within [0, 100]: %w", p, ErrArgument)
		}
	}
	if low > high {
		return fmt.Errorf("Lower percentile (%f) is greater than upper percentile (%f): %w", low, high, ErrArgument)
	}
	return nil
}

// CheckIQRMultiplier returns an error if the fence multiplier is negative, NaN or ±∞.
func CheckIQRMultiplier(k float64) error {
	if k < 0 || math.IsInf(k, 0) || math.IsNaN(k) {
		return fmt.Errorf("IQR multiplier is %f, must be nonnegative and finite: %w", k, ErrArgument)
	}
	return nil
}

// CheckAlpha returns an error if the supplied alpha is not between 0 and 1.
func CheckAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return fmt.Errorf("Alpha is %f, must be within (0, 1) and finite: %w", alpha, ErrArgument)
	}
	return nil
}

// CheckColumnIndex returns an error if index is outside [0, width).
func CheckColumnIndex(index, width int) error {
	if index < 0 || index >= width {
		return fmt.Errorf("Column index is %d, must be within [0, %d): %w", index, width, ErrIndexOutOfRange)
	}
	return nil
}

// CheckCount returns an error if no value is left to aggregate.
func CheckCount(n int) error {
	if n < 1 {
		return fmt.Errorf("Count is %d, must be at least 1: %w", n, ErrEmptyResult)
	}
	return nil
}

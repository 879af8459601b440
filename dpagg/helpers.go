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

package dpagg

import (
	"fmt"

	"github.com/bcswieder117/dpmean/bounds"
	"github.com/bcswieder117/dpmean/checks"
)

// ClampFloat64 clamps e within lower and upper, such that lower is returned
// if e < lower, and upper is returned if e > upper. Otherwise, e is returned.
func ClampFloat64(e, lower, upper float64) (float64, error) {
	if lower > upper {
		return 0, fmt.Errorf("lower must be less than or equal to upper, got lower = %v, upper = %v: %w", lower, upper, checks.ErrArgument)
	}
	if e > upper {
		return upper, nil
	}
	if e < lower {
		return lower, nil
	}
	return e, nil
}

// FilterRange returns the values v with filter.Lower ≤ v ≤ filter.Upper, in
// their original order. filter is the analyst's domain restriction, not a
// privacy bound. It returns an error wrapping checks.ErrEmptyResult if no
// value is left.
func FilterRange(values []float64, filter bounds.Interval) ([]float64, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter interval %v: %w", filter, err)
	}
	filtered := make([]float64, 0, len(values))
	for _, v := range values {
		if filter.Contains(v) {
			filtered = append(filtered, v)
		}
	}
	if err := checks.CheckCount(len(filtered)); err != nil {
		return nil, fmt.Errorf("none of the %d values lies within %v: %w", len(values), filter, err)
	}
	return filtered, nil
}

// Clip returns a copy of values with every entry clamped into iv. Clipping an
// already clipped series to the same interval returns an equal series.
func Clip(values []float64, iv bounds.Interval) ([]float64, error) {
	clipped := make([]float64, len(values))
	for i, v := range values {
		c, err := ClampFloat64(v, iv.Lower, iv.Upper)
		if err != nil {
			return nil, fmt.Errorf("couldn't clip value %v: %w", v, err)
		}
		clipped[i] = c
	}
	return clipped, nil
}

// SumSensitivity returns the sensitivity iv.Upper - iv.Lower of a sum over
// values clipped into iv.
func SumSensitivity(iv bounds.Interval) (float64, error) {
	if err := checks.CheckBoundsNotEqual(iv.Lower, iv.Upper); err != nil {
		return 0, err
	}
	return iv.Width(), nil
}

// MeanSensitivity returns the sensitivity (iv.Upper - iv.Lower) / n of a mean
// over n values clipped into iv. n is the number of values that passed the
// analyst filter.
func MeanSensitivity(iv bounds.Interval, n int) (float64, error) {
	if err := checks.CheckCount(n); err != nil {
		return 0, err
	}
	sum, err := SumSensitivity(iv)
	if err != nil {
		return 0, err
	}
	return sum / float64(n), nil
}

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

package bounds

import (
	"fmt"

	"github.com/bcswieder117/dpmean/checks"
	"gonum.org/v1/gonum/floats"
)

// Default parameters of the bound-estimation methods.
const (
	DefaultConstantLower   = -1000.0
	DefaultConstantUpper   = 1000.0
	DefaultLowerPercentile = 5.0
	DefaultUpperPercentile = 95.0
	DefaultIQRMultiplier   = 1.5
)

// Method is one of the bound-estimation strategies Constant, Range,
// Percentile and IQR. The set is closed: Method cannot be implemented outside
// this package.
type Method interface {
	fmt.Stringer
	validate() error
	// dataDependent reports whether the bounds are a function of the data.
	dataDependent() bool
	// estimate expects sorted input holding at least two distinct values
	// when dataDependent is true.
	estimate(sorted []float64) Interval
}

// DefaultMethod returns IQR fencing with the standard 1.5 multiplier.
func DefaultMethod() Method {
	return IQR{Multiplier: DefaultIQRMultiplier}
}

// Constant returns a fixed interval independent of the data. Computing it
// spends no privacy budget.
type Constant struct {
	Lower, Upper float64
}

// DefaultConstant returns the interval [-1000, 1000].
func DefaultConstant() Constant {
	return Constant{Lower: DefaultConstantLower, Upper: DefaultConstantUpper}
}

func (c Constant) String() string { return fmt.Sprintf("constant[%v, %v]", c.Lower, c.Upper) }

func (c Constant) validate() error { return checks.CheckBoundsFloat64(c.Lower, c.Upper) }

func (Constant) dataDependent() bool { return false }

func (c Constant) estimate([]float64) Interval { return Interval{Lower: c.Lower, Upper: c.Upper} }

// Range returns the minimum and maximum of the data. The bounds have no slack
// and move with every outlier, so a single row can change them; prefer
// Percentile or IQR.
type Range struct{}

func (Range) String() string { return "range" }

func (Range) validate() error { return nil }

func (Range) dataDependent() bool { return true }

func (Range) estimate(sorted []float64) Interval {
	return Interval{Lower: floats.Min(sorted), Upper: floats.Max(sorted)}
}

// Percentile returns the Low-th and High-th percentiles of the data.
type Percentile struct {
	Low, High     float64
	Interpolation Interpolation
}

// DefaultPercentile returns the 5th and 95th percentiles with linear
// interpolation.
func DefaultPercentile() Percentile {
	return Percentile{Low: DefaultLowerPercentile, High: DefaultUpperPercentile}
}

func (p Percentile) String() string {
	return fmt.Sprintf("percentile[%v, %v, %v]", p.Low, p.High, p.Interpolation)
}

func (p Percentile) validate() error {
	if err := checks.CheckPercentiles(p.Low, p.High); err != nil {
		return err
	}
	return checkInterpolation(p.Interpolation)
}

func (Percentile) dataDependent() bool { return true }

func (p Percentile) estimate(sorted []float64) Interval {
	return Interval{
		Lower: percentileSorted(sorted, p.Low, p.Interpolation),
		Upper: percentileSorted(sorted, p.High, p.Interpolation),
	}
}

// IQR returns the outlier fences (Q1 - k·IQR, Q3 + k·IQR), where Q1 and Q3 are
// the 25th and 75th percentiles, IQR = Q3 - Q1 and k is Multiplier. With a
// zero Multiplier the bounds are (Q1, Q3).
type IQR struct {
	Multiplier    float64
	Interpolation Interpolation
}

func (q IQR) String() string {
	return fmt.Sprintf("iqr[%v, %v]", q.Multiplier, q.Interpolation)
}

func (q IQR) validate() error {
	if err := checks.CheckIQRMultiplier(q.Multiplier); err != nil {
		return err
	}
	return checkInterpolation(q.Interpolation)
}

func (IQR) dataDependent() bool { return true }

func (q IQR) estimate(sorted []float64) Interval {
	q1 := percentileSorted(sorted, 25, q.Interpolation)
	q3 := percentileSorted(sorted, 75, q.Interpolation)
	fence := q.Multiplier * (q3 - q1)
	return Interval{Lower: q1 - fence, Upper: q3 + fence}
}

func checkInterpolation(i Interpolation) error {
	if i < Linear || i > Midpoint {
		return fmt.Errorf("unknown interpolation %v: %w", i, checks.ErrArgument)
	}
	return nil
}

// Validate returns an error if m's parameters are out of their domain. A nil
// Method is valid and stands for DefaultMethod().
func Validate(m Method) error {
	if m == nil {
		return nil
	}
	return m.validate()
}

// Estimate returns the privacy bound interval of values using m, or
// DefaultMethod() if m is nil. The input is not modified.
//
// Data-dependent methods need at least two distinct values; otherwise
// Estimate returns an error wrapping checks.ErrDegenerateSeries. For every
// method the result satisfies Lower ≤ Upper.
func Estimate(values []float64, m Method) (Interval, error) {
	if m == nil {
		m = DefaultMethod()
	}
	if err := m.validate(); err != nil {
		return Interval{}, fmt.Errorf("invalid %v bounds: %w", m, err)
	}
	if !m.dataDependent() {
		return m.estimate(nil), nil
	}
	if err := checks.CheckCount(len(values)); err != nil {
		return Interval{}, err
	}
	sorted := sortedCopy(values)
	if !distinctAtLeast(sorted, 2) {
		return Interval{}, fmt.Errorf("%v bounds need at least 2 distinct values, all %d values are %v: %w", m, len(sorted), sorted[0], checks.ErrDegenerateSeries)
	}
	return m.estimate(sorted), nil
}

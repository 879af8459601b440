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
	"math"
	"sort"
	"strings"

	"github.com/bcswieder117/dpmean/checks"
)

// Interpolation selects how a percentile falling between two order statistics
// is resolved. The names and rules follow NumPy's classic percentile methods:
// with sorted values x[0..n-1] and h = (n-1)·p/100,
//
//	Linear:   x[⌊h⌋] + (h-⌊h⌋)·(x[⌈h⌉] - x[⌊h⌋])
//	Lower:    x[⌊h⌋]
//	Higher:   x[⌈h⌉]
//	Nearest:  x[round-half-to-even(h)]
//	Midpoint: (x[⌊h⌋] + x[⌈h⌉]) / 2
type Interpolation int

// Supported interpolations.
const (
	Linear Interpolation = iota
	Lower
	Higher
	Nearest
	Midpoint
)

var interpolationNames = []string{"linear", "lower", "higher", "nearest", "midpoint"}

func (i Interpolation) String() string {
	if i < 0 || int(i) >= len(interpolationNames) {
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
	return interpolationNames[i]
}

// ParseInterpolation converts a name such as "linear" into an Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	for i, n := range interpolationNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Interpolation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q, must be one of %s: %w", name, strings.Join(interpolationNames, ", "), checks.ErrArgument)
}

// PercentileOf returns the p-th percentile (0 ≤ p ≤ 100) of values. The input
// is not modified.
func PercentileOf(values []float64, p float64, interp Interpolation) (float64, error) {
	if err := checks.CheckCount(len(values)); err != nil {
		return 0, err
	}
	if err := checks.CheckPercentiles(p, p); err != nil {
		return 0, err
	}
	if interp < Linear || interp > Midpoint {
		return 0, fmt.Errorf("unknown interpolation %v: %w", interp, checks.ErrArgument)
	}
	return percentileSorted(sortedCopy(values), p, interp), nil
}

// percentileSorted expects sorted, non-empty values and a validated p.
func percentileSorted(sorted []float64, p float64, interp Interpolation) float64 {
	h := float64(len(sorted)-1) * p / 100
	lo, hi := math.Floor(h), math.Ceil(h)
	xlo, xhi := sorted[int(lo)], sorted[int(hi)]
	switch interp {
	case Lower:
		return xlo
	case Higher:
		return xhi
	case Nearest:
		return sorted[int(math.RoundToEven(h))]
	case Midpoint:
		return xlo + (xhi-xlo)/2
	default:
		return xlo + (h-lo)*(xhi-xlo)
	}
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// distinctAtLeast reports whether sorted holds at least k distinct values.
func distinctAtLeast(sorted []float64, k int) bool {
	if len(sorted) == 0 {
		return k <= 0
	}
	distinct := 1
	for i := 1; i < len(sorted) && distinct < k; i++ {
		if sorted[i] != sorted[i-1] {
			distinct++
		}
	}
	return distinct >= k
}

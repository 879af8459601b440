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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values, which must not be empty.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// PopulationStdDev returns the population standard deviation of values
// (dividing by n, not n-1), which must not be empty.
//
// On clipped data the result understates the spread of values that were
// clipped; that bias is the price of a bounded sensitivity.
func PopulationStdDev(values []float64) float64 {
	_, std := stat.PopMeanStdDev(values, nil)
	// Rounding can leave a tiny negative variance for constant input.
	if math.IsNaN(std) {
		return 0
	}
	return std
}

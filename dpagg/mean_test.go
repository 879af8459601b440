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
	"testing"
)

func TestMean(t *testing.T) {
	for _, tc := range []struct {
		values []float64
		want   float64
	}{
		{[]float64{1, 2, 3, 4, 5, 7}, 22.0 / 6},
		{[]float64{-4}, -4},
		{[]float64{0.5, 1.5}, 1},
	} {
		if got := Mean(tc.values); !ApproxEqual(got, tc.want) {
			t.Errorf("Mean(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum([]float64{1, 2, 3, 4, 5, 7}); got != 22 {
		t.Errorf("Sum = %v, want 22", got)
	}
}

func TestPopulationStdDev(t *testing.T) {
	for _, tc := range []struct {
		values []float64
		want   float64
	}{
		// Variance 104/6 - (11/3)² = 35/9.
		{[]float64{1, 2, 3, 4, 5, 7}, math.Sqrt(35) / 3},
		{[]float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
		{[]float64{3, 3, 3}, 0},
		{[]float64{8}, 0},
	} {
		if got := PopulationStdDev(tc.values); !ApproxEqual(got, tc.want) {
			t.Errorf("PopulationStdDev(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}

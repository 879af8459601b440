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

	"github.com/bcswieder117/dpmean/bounds"
	"github.com/bcswieder117/dpmean/noise"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// This file contains structs, functions, and values used to test DP aggregations.

var (
	ln3         = math.Log(3)
	tenten      = math.Pow10(-10)
	withOutlier = []float64{1, 2, 3, 4, 5, 100}
	wideFilter  = bounds.Interval{Lower: -1000, Upper: 1000}
)

// noNoise is a Noise instance that doesn't add noise to the data, and whose
// confidence intervals are the single point x.
type noNoise struct{}

func (noNoise) AddNoiseFloat64(x, _, _ float64) (float64, error) {
	return x, nil
}

func (noNoise) ComputeConfidenceIntervalFloat64(x, _, _, _ float64) (noise.ConfidenceInterval, error) {
	return noise.ConfidenceInterval{LowerBound: x, UpperBound: x}, nil
}

// recordingNoise is a noNoise that records the arguments of every
// AddNoiseFloat64 call.
type recordingNoise struct {
	noNoise
	sensitivities []float64
	epsilons      []float64
}

func (r *recordingNoise) AddNoiseFloat64(x, sensitivity, epsilon float64) (float64, error) {
	r.sensitivities = append(r.sensitivities, sensitivity)
	r.epsilons = append(r.epsilons, epsilon)
	return x, nil
}

// countingReader is an endless source of zero bits that records how many bytes
// were read from it.
type countingReader struct {
	n int
}

func (r *countingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.n += len(p)
	return len(p), nil
}

func ApproxEqual(x, y float64) bool {
	return cmp.Equal(x, y, cmpopts.EquateApprox(0, tenten))
}

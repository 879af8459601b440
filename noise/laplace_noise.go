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

package noise

import (
	"math"

	"github.com/bcswieder117/dpmean/checks"
	"github.com/bcswieder117/dpmean/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type laplace struct {
	src *rand.Source
}

// Laplace returns a Noise instance that adds Laplace noise to its input,
// drawing its randomness from src. A nil src is replaced by rand.NewSecure().
//
// The returned instance owns src: it must not be shared with another
// mechanism or used from several goroutines.
func Laplace(src *rand.Source) Noise {
	if src == nil {
		src = rand.NewSecure()
	}
	return laplace{src: src}
}

// AddNoiseFloat64 adds one Laplace sample with scale sensitivity/epsilon to x.
// The arguments are validated before any randomness is consumed.
func (l laplace) AddNoiseFloat64(x, sensitivity, epsilon float64) (float64, error) {
	if err := checkArgsLaplace(sensitivity, epsilon); err != nil {
		return 0, err
	}
	return x + sampleLaplace(l.src, Scale(sensitivity, epsilon)), nil
}

// ComputeConfidenceIntervalFloat64 computes a confidence interval that contains the raw value x from which float64
// noisedX is computed with a probability equal to 1 - alpha based on the specified laplace noise parameters.
func (laplace) ComputeConfidenceIntervalFloat64(noisedX, sensitivity, epsilon, alpha float64) (ConfidenceInterval, error) {
	if err := checks.CheckAlpha(alpha); err != nil {
		return ConfidenceInterval{}, err
	}
	if err := checkArgsLaplace(sensitivity, epsilon); err != nil {
		return ConfidenceInterval{}, err
	}
	return computeConfidenceIntervalLaplace(noisedX, Scale(sensitivity, epsilon), alpha), nil
}

func (laplace) String() string {
	return "Laplace Noise"
}

// Scale returns the scale b = sensitivity/ε of the Laplace distribution used by
// the Laplace mechanism.
func Scale(sensitivity, epsilon float64) float64 {
	return sensitivity / epsilon
}

func checkArgsLaplace(sensitivity, epsilon float64) error {
	if err := checks.CheckEpsilonStrict(epsilon); err != nil {
		return err
	}
	return checks.CheckSensitivity(sensitivity)
}

// sampleLaplace draws from the zero-centered Laplace distribution with the
// given scale by inverting its CDF at a uniform u in (-0.5, 0.5):
//
//	X = -scale · sign(u) · ln(1 - 2|u|)
func sampleLaplace(src *rand.Source, scale float64) float64 {
	u := src.Centered()
	return math.Copysign(-scale*math.Log1p(-2*math.Abs(u)), u)
}

// computeConfidenceIntervalLaplace computes a confidence interval that contains the raw value x from which
// float64 noisedX is computed with a probability equal to 1 - alpha with the given scale.
func computeConfidenceIntervalLaplace(noisedX, scale, alpha float64) ConfidenceInterval {
	// The noise is symmetric around zero, so the interval is the central
	// (1-alpha) mass of a Laplace distribution centered on noisedX.
	dist := distuv.Laplace{Mu: noisedX, Scale: scale}
	return ConfidenceInterval{LowerBound: dist.Quantile(alpha / 2), UpperBound: dist.Quantile(1 - alpha/2)}
}

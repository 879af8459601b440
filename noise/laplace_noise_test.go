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
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/bcswieder117/dpmean/checks"
	"github.com/bcswieder117/dpmean/rand"
	"github.com/grd/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestLaplaceStatistics(t *testing.T) {
	const numberOfSamples = 125000
	for _, tc := range []struct {
		sensitivity, epsilon, mean float64
	}{
		{sensitivity: 1.0, epsilon: 1.0, mean: 0.0},
		{sensitivity: 1.0, epsilon: ln3, mean: 0.0},
		{sensitivity: 1.0, epsilon: ln3, mean: 45941223.02107},
		{sensitivity: 2.0, epsilon: 2.0 * ln3, mean: 0.0},
		{sensitivity: 2000.0 / 6, epsilon: 0.2, mean: 3.5},
	} {
		lap := Laplace(rand.NewSeeded(7))
		noisedSamples := make(stat.Float64Slice, numberOfSamples)
		for i := 0; i < numberOfSamples; i++ {
			got, err := lap.AddNoiseFloat64(tc.mean, tc.sensitivity, tc.epsilon)
			if err != nil {
				t.Fatalf("AddNoiseFloat64(%f, %f, %f): got err %v", tc.mean, tc.sensitivity, tc.epsilon, err)
			}
			noisedSamples[i] = got
		}
		// Var[Laplace(0, b)] = 2b².
		variance := distuv.Laplace{Mu: 0, Scale: Scale(tc.sensitivity, tc.epsilon)}.Variance()
		sampleMean, sampleVariance := stat.Mean(noisedSamples), stat.Variance(noisedSamples)
		// Assuming that the Laplace samples have a mean of tc.mean and the specified variance,
		// sampleMean is approximately Gaussian distributed with a mean of tc.mean and standard
		// deviation of sqrt(variance / numberOfSamples).
		//
		// The meanErrorTolerance is set to the 99.9995% quantile of the anticipated distribution.
		meanErrorTolerance := 4.41717 * math.Sqrt(variance/float64(numberOfSamples))
		// sampleVariance is approximately Gaussian distributed with a mean of variance and a
		// standard deviation of sqrt(5) * variance / sqrt(numberOfSamples).
		varianceErrorTolerance := 4.41717 * math.Sqrt(5.0) * variance / math.Sqrt(float64(numberOfSamples))

		if !nearEqual(sampleMean, tc.mean, meanErrorTolerance) {
			t.Errorf("got mean = %f, want %f (parameters %+v)", sampleMean, tc.mean, tc)
		}
		if !nearEqual(sampleVariance, variance, varianceErrorTolerance) {
			t.Errorf("got variance = %f, want %f (parameters %+v)", sampleVariance, variance, tc)
		}
	}
}

func TestLaplaceInverseCDFSign(t *testing.T) {
	for _, tc := range []struct {
		desc string
		word uint64
		want float64
	}{
		// u = 0.5 - 2⁻⁵³, so 1 - 2|u| = 2⁻⁵².
		{"largest positive u", math.MaxUint64, 52 * ln2},
		// u = -0.5 + 2⁻⁵³.
		{"smallest negative u", 0, -52 * ln2},
	} {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], tc.word)
		lap := Laplace(rand.NewFromReader(bytes.NewReader(b[:])))
		got, err := lap.AddNoiseFloat64(0, 1, 1)
		if err != nil {
			t.Fatalf("AddNoiseFloat64: when %s got err %v", tc.desc, err)
		}
		if !nearEqual(got, tc.want, 1e-9) {
			t.Errorf("AddNoiseFloat64: when %s got %f, want %f", tc.desc, got, tc.want)
		}
	}
}

func TestLaplaceIsReproducibleWithSeed(t *testing.T) {
	a, b := Laplace(rand.NewSeeded(2024)), Laplace(rand.NewSeeded(2024))
	for i := 0; i < 100; i++ {
		x, errA := a.AddNoiseFloat64(3.5, 1, ln3)
		y, errB := b.AddNoiseFloat64(3.5, 1, ln3)
		if errA != nil || errB != nil {
			t.Fatalf("AddNoiseFloat64: got errs %v, %v", errA, errB)
		}
		if math.Float64bits(x) != math.Float64bits(y) {
			t.Fatalf("AddNoiseFloat64: draw %d differs with identical seeds: %v != %v", i, x, y)
		}
	}
}

func TestLaplaceInvalidArgumentsConsumeNoRandomness(t *testing.T) {
	for _, tc := range []struct {
		desc                 string
		sensitivity, epsilon float64
		wantErr              error
	}{
		{"zero epsilon", 1, 0, checks.ErrNonPositiveEpsilon},
		{"negative epsilon", 1, -0.2, checks.ErrNonPositiveEpsilon},
		{"infinite epsilon", 1, math.Inf(1), checks.ErrNonPositiveEpsilon},
		{"NaN epsilon", 1, math.NaN(), checks.ErrNonPositiveEpsilon},
		{"zero sensitivity", 0, 0.2, checks.ErrNonPositiveSensitivity},
		{"negative sensitivity", -1, 0.2, checks.ErrNonPositiveSensitivity},
		{"zero epsilon and zero sensitivity", 0, 0, checks.ErrNonPositiveEpsilon},
	} {
		r := &countingReader{}
		lap := Laplace(rand.NewFromReader(r))
		_, err := lap.AddNoiseFloat64(42, tc.sensitivity, tc.epsilon)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("AddNoiseFloat64: when %s got err %v, want %v", tc.desc, err, tc.wantErr)
		}
		if r.n != 0 {
			t.Errorf("AddNoiseFloat64: when %s consumed %d random bytes, want 0", tc.desc, r.n)
		}
	}
}

func TestLaplaceConsumesOneDrawPerCall(t *testing.T) {
	r := &countingReader{}
	lap := Laplace(rand.NewFromReader(r))
	for i := 0; i < 3; i++ {
		if _, err := lap.AddNoiseFloat64(0, 1, 1); err != nil {
			t.Fatalf("AddNoiseFloat64: got err %v", err)
		}
	}
	if r.n != 3*8 {
		t.Errorf("AddNoiseFloat64: three calls consumed %d bytes, want %d", r.n, 3*8)
	}
}

func TestComputeConfidenceIntervalLaplace(t *testing.T) {
	for _, tc := range []struct {
		desc                                 string
		noisedX, sensitivity, epsilon, alpha float64
		wantLower, wantUpper                 float64
	}{
		{
			desc:    "unit scale",
			noisedX: 0, sensitivity: 1, epsilon: 1, alpha: 0.05,
			wantLower: math.Log(0.05), wantUpper: -math.Log(0.05),
		},
		{
			desc:    "shifted and scaled",
			noisedX: 10, sensitivity: 2, epsilon: 0.5, alpha: 0.1,
			wantLower: 10 + 4*math.Log(0.1), wantUpper: 10 - 4*math.Log(0.1),
		},
	} {
		got, err := Laplace(rand.NewSeeded(0)).ComputeConfidenceIntervalFloat64(tc.noisedX, tc.sensitivity, tc.epsilon, tc.alpha)
		if err != nil {
			t.Fatalf("ComputeConfidenceIntervalFloat64: when %s got err %v", tc.desc, err)
		}
		if !nearEqual(got.LowerBound, tc.wantLower, 1e-9) || !nearEqual(got.UpperBound, tc.wantUpper, 1e-9) {
			t.Errorf("ComputeConfidenceIntervalFloat64: when %s got %+v, want [%f, %f]", tc.desc, got, tc.wantLower, tc.wantUpper)
		}
	}
}

func TestComputeConfidenceIntervalLaplaceInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.5, math.NaN()} {
		_, err := Laplace(nil).ComputeConfidenceIntervalFloat64(0, 1, 1, alpha)
		if !errors.Is(err, checks.ErrArgument) {
			t.Errorf("ComputeConfidenceIntervalFloat64(alpha=%f): got err %v, want ErrArgument", alpha, err)
		}
	}
}

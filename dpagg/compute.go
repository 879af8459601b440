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
	"github.com/bcswieder117/dpmean/debuglog"
	"github.com/bcswieder117/dpmean/noise"
	"github.com/bcswieder117/dpmean/rand"
	"github.com/bcswieder117/dpmean/table"
	log "github.com/golang/glog"
)

// Statistics selects which statistics Compute releases.
type Statistics int

const (
	// MeanOnly releases the noisy mean.
	MeanOnly Statistics = iota
	// MeanAndStandardDeviation releases the noisy mean and the noisy
	// population standard deviation.
	MeanAndStandardDeviation
)

func (s Statistics) String() string {
	switch s {
	case MeanOnly:
		return "mean"
	case MeanAndStandardDeviation:
		return "mean+std"
	}
	return fmt.Sprintf("Statistics(%d)", int(s))
}

// BudgetSplit selects how epsilon is spent when more than one statistic is
// released.
type BudgetSplit int

const (
	// BudgetPerQuery spends the full epsilon on each released statistic. With
	// two statistics the total privacy loss is 2ε.
	BudgetPerQuery BudgetSplit = iota
	// BudgetShared divides epsilon evenly among the released statistics, so
	// the total privacy loss is ε.
	BudgetShared
)

func (b BudgetSplit) String() string {
	switch b {
	case BudgetPerQuery:
		return "per_query"
	case BudgetShared:
		return "shared"
	}
	return fmt.Sprintf("BudgetSplit(%d)", int(b))
}

// ParseBudgetSplit returns the BudgetSplit named by name. The empty string
// selects BudgetPerQuery.
func ParseBudgetSplit(name string) (BudgetSplit, error) {
	switch name {
	case "", "per_query":
		return BudgetPerQuery, nil
	case "shared":
		return BudgetShared, nil
	}
	return 0, fmt.Errorf("unknown budget split %q, want per_query or shared: %w", name, checks.ErrArgument)
}

// Options contains the parameters of a differentially private computation.
type Options struct {
	// Epsilon is the privacy budget spent on each query (see Budget). Required.
	Epsilon float64
	// Filter is the analyst's domain restriction. Values outside it are
	// dropped before anything else happens. Required.
	Filter bounds.Interval
	// Method estimates the privacy bounds from the filtered values. Defaults
	// to bounds.DefaultMethod().
	Method bounds.Method
	// Statistics defaults to MeanOnly.
	Statistics Statistics
	// Budget defaults to BudgetPerQuery.
	Budget BudgetSplit
	// Noise defaults to Laplace noise backed by secure randomness.
	Noise noise.Noise
	// Alpha is the confidence level of the reported confidence intervals. If
	// zero, no intervals are computed.
	Alpha float64
	// Log receives debug diagnostics. Optional.
	Log *debuglog.Logger
}

// Result is the outcome of Compute.
type Result struct {
	// Count is the number of values left after filtering.
	Count int
	// Bounds is the privacy bound interval the values were clipped to.
	Bounds          bounds.Interval
	SumSensitivity  float64
	MeanSensitivity float64
	// EpsilonPerQuery is the budget spent on each released statistic.
	EpsilonPerQuery float64
	// Scale is the Laplace scale MeanSensitivity / EpsilonPerQuery.
	Scale      float64
	Statistics Statistics
	Mean       float64
	// StandardDeviation is only set if Statistics is MeanAndStandardDeviation.
	// It is not post-processed and may be negative.
	StandardDeviation float64
	// Confidence intervals are only set if Options.Alpha > 0.
	MeanConfidenceInterval              *noise.ConfidenceInterval
	StandardDeviationConfidenceInterval *noise.ConfidenceInterval
}

func (opt *Options) validate() error {
	if err := checks.CheckEpsilonStrict(opt.Epsilon); err != nil {
		return err
	}
	if err := opt.Filter.Validate(); err != nil {
		return fmt.Errorf("invalid filter interval %v: %w", opt.Filter, err)
	}
	if err := bounds.Validate(opt.Method); err != nil {
		return fmt.Errorf("invalid %v bounds: %w", opt.Method, err)
	}
	if opt.Statistics != MeanOnly && opt.Statistics != MeanAndStandardDeviation {
		return fmt.Errorf("unknown statistics %v: %w", opt.Statistics, checks.ErrArgument)
	}
	if opt.Budget != BudgetPerQuery && opt.Budget != BudgetShared {
		return fmt.Errorf("unknown budget split %v: %w", opt.Budget, checks.ErrArgument)
	}
	if opt.Alpha != 0 {
		if err := checks.CheckAlpha(opt.Alpha); err != nil {
			return err
		}
	}
	return nil
}

func (opt *Options) queries() int {
	if opt.Statistics == MeanAndStandardDeviation {
		return 2
	}
	return 1
}

func (opt *Options) epsilonPerQuery() float64 {
	if opt.Budget == BudgetShared {
		return opt.Epsilon / float64(opt.queries())
	}
	return opt.Epsilon
}

// Compute returns a differentially private mean, and optionally a population
// standard deviation, of values.
//
// Values outside opt.Filter are dropped, the privacy bounds are estimated from
// the rest with opt.Method, and every value is clipped into those bounds. Each
// released statistic gets Laplace noise calibrated to the mean sensitivity
// (upper - lower) / n. values is not modified.
//
// All options are validated before any randomness is consumed.
func Compute(values []float64, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	if err := opt.validate(); err != nil {
		return nil, fmt.Errorf("couldn't compute differentially private statistics: %w", err)
	}
	lg := opt.Log

	filtered, err := FilterRange(values, opt.Filter)
	if err != nil {
		return nil, err
	}
	n := len(filtered)
	lg.Debugf("%d of %d values within filter %v", n, len(values), opt.Filter)

	method := opt.Method
	if method == nil {
		method = bounds.DefaultMethod()
	}
	iv, err := bounds.Estimate(filtered, method)
	if err != nil {
		return nil, fmt.Errorf("couldn't estimate privacy bounds: %w", err)
	}
	lg.Debugf("%v bounds: %v", method, iv)

	clipped, err := Clip(filtered, iv)
	if err != nil {
		return nil, err
	}
	sumSensitivity, err := SumSensitivity(iv)
	if err != nil {
		return nil, fmt.Errorf("privacy bounds %v: %w", iv, err)
	}
	meanSensitivity, err := MeanSensitivity(iv, n)
	if err != nil {
		return nil, fmt.Errorf("privacy bounds %v: %w", iv, err)
	}

	eps := opt.epsilonPerQuery()
	if opt.queries() > 1 && opt.Budget == BudgetPerQuery {
		log.Warningf("Releasing %d statistics with epsilon %v each, the total privacy loss is %v", opt.queries(), eps, eps*float64(opt.queries()))
	}
	nz := opt.Noise
	if nz == nil {
		nz = noise.Laplace(rand.NewSecure())
	}

	res := &Result{
		Count:           n,
		Bounds:          iv,
		SumSensitivity:  sumSensitivity,
		MeanSensitivity: meanSensitivity,
		EpsilonPerQuery: eps,
		Scale:           noise.Scale(meanSensitivity, eps),
		Statistics:      opt.Statistics,
	}
	mean := Mean(clipped)
	lg.Debugf("clipped mean %v, sensitivity %v, scale %v", mean, meanSensitivity, res.Scale)
	if res.Mean, err = nz.AddNoiseFloat64(mean, meanSensitivity, eps); err != nil {
		return nil, fmt.Errorf("couldn't add noise to the mean: %w", err)
	}
	if opt.Statistics == MeanAndStandardDeviation {
		std := PopulationStdDev(clipped)
		lg.Debugf("clipped standard deviation %v", std)
		// The standard deviation reuses the mean sensitivity.
		if res.StandardDeviation, err = nz.AddNoiseFloat64(std, meanSensitivity, eps); err != nil {
			return nil, fmt.Errorf("couldn't add noise to the standard deviation: %w", err)
		}
	}

	if opt.Alpha > 0 {
		ci, err := nz.ComputeConfidenceIntervalFloat64(res.Mean, meanSensitivity, eps, opt.Alpha)
		if err != nil {
			return nil, fmt.Errorf("couldn't compute the confidence interval of the mean: %w", err)
		}
		res.MeanConfidenceInterval = &ci
		if opt.Statistics == MeanAndStandardDeviation {
			ci, err := nz.ComputeConfidenceIntervalFloat64(res.StandardDeviation, meanSensitivity, eps, opt.Alpha)
			if err != nil {
				return nil, fmt.Errorf("couldn't compute the confidence interval of the standard deviation: %w", err)
			}
			res.StandardDeviationConfidenceInterval = &ci
		}
	}
	return res, nil
}

// ComputeColumn extracts the numeric values of column index of t and passes
// them to Compute.
func ComputeColumn(t *table.Table, index int, opt *Options) (*Result, error) {
	values, err := t.Float64Column(index)
	if err != nil {
		return nil, fmt.Errorf("couldn't read column %d: %w", index, err)
	}
	if opt != nil {
		opt.Log.Debugf("column %d: %d numeric values out of %d rows", index, len(values), len(t.Rows))
	}
	return Compute(values, opt)
}

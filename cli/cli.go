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

// Package cli implements the dpmean command line tool, which releases a
// differentially private mean (and optionally standard deviation) of one
// column of a CSV file.
//
// Usage:
//
//	dpmean [flags] <file> <index> <lower> <upper>
//
// file is a local path or an s3://bucket/key URL, index is the zero-based
// column index, and lower and upper delimit the values taken into account.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/bcswieder117/dpmean/bounds"
	"github.com/bcswieder117/dpmean/checks"
	"github.com/bcswieder117/dpmean/debuglog"
	"github.com/bcswieder117/dpmean/dpagg"
	"github.com/bcswieder117/dpmean/noise"
	"github.com/bcswieder117/dpmean/rand"
	"github.com/bcswieder117/dpmean/table"
	log "github.com/golang/glog"
)

const (
	// FilterName selects the analyst interval itself as the privacy bounds.
	FilterName = "filter"

	// DefaultEpsilon is the privacy budget used when -epsilon is not given.
	DefaultEpsilon = 0.2

	usage = "dpmean [flags] <file> <index> <lower> <upper>"
)

// Config holds the values of the command line flags.
type Config struct {
	Epsilon         float64
	Method          string
	LowerPercentile float64
	UpperPercentile float64
	IQRMultiplier   float64
	ConstantLower   float64
	ConstantUpper   float64
	Interpolation   string
	Std             bool
	Budget          string
	Seed            uint64
	Alpha           float64
	Verbose         bool
}

// DefaultConfig returns the flag defaults.
func DefaultConfig() *Config {
	p := bounds.DefaultParams()
	return &Config{
		Epsilon:         DefaultEpsilon,
		Method:          bounds.IQRName,
		LowerPercentile: p.LowerPercentile,
		UpperPercentile: p.UpperPercentile,
		IQRMultiplier:   p.IQRMultiplier,
		ConstantLower:   p.ConstantLower,
		ConstantUpper:   p.ConstantUpper,
		Interpolation:   p.Interpolation.String(),
		Budget:          dpagg.BudgetPerQuery.String(),
	}
}

// RegisterFlags defines the dpmean flags on fs and returns the Config they
// are parsed into.
func RegisterFlags(fs *flag.FlagSet) *Config {
	d := DefaultConfig()
	cfg := &Config{}
	fs.Float64Var(&cfg.Epsilon, "epsilon", d.Epsilon, "Privacy budget spent on each released statistic.")
	fs.StringVar(&cfg.Method, "method", d.Method, "Bound estimation method:\n"+
		"iqr - Tukey fences around the interquartile range.\n"+
		"range - minimum and maximum of the data.\n"+
		"percentile - lower and upper percentiles of the data.\n"+
		"constant - fixed bounds given by -constant_lower and -constant_upper.\n"+
		"filter - the <lower> and <upper> arguments.")
	fs.Float64Var(&cfg.LowerPercentile, "lower_percentile", d.LowerPercentile, "Lower percentile of the percentile method.")
	fs.Float64Var(&cfg.UpperPercentile, "upper_percentile", d.UpperPercentile, "Upper percentile of the percentile method.")
	fs.Float64Var(&cfg.IQRMultiplier, "iqr_multiplier", d.IQRMultiplier, "Fence multiplier of the iqr method.")
	fs.Float64Var(&cfg.ConstantLower, "constant_lower", d.ConstantLower, "Lower bound of the constant method.")
	fs.Float64Var(&cfg.ConstantUpper, "constant_upper", d.ConstantUpper, "Upper bound of the constant method.")
	fs.StringVar(&cfg.Interpolation, "interpolation", d.Interpolation, "Percentile interpolation: linear, lower, higher, nearest or midpoint.")
	fs.BoolVar(&cfg.Std, "std", d.Std, "Also release the standard deviation.")
	fs.StringVar(&cfg.Budget, "budget", d.Budget, "Budget split between statistics: per_query or shared.")
	fs.Uint64Var(&cfg.Seed, "seed", d.Seed, "Seed of a reproducible noise stream. 0 uses secure randomness.")
	fs.Float64Var(&cfg.Alpha, "alpha", d.Alpha, "Also print (1-alpha) confidence intervals. 0 disables them.")
	fs.BoolVar(&cfg.Verbose, "verbose", d.Verbose, "Print the bounds, sensitivity and Laplace scale.")
	return cfg
}

// Args are the positional arguments of dpmean.
type Args struct {
	File   string
	Index  int
	Filter bounds.Interval
}

// ParseArgs parses the positional arguments <file> <index> <lower> <upper>.
func ParseArgs(args []string) (Args, error) {
	if len(args) != 4 {
		return Args{}, fmt.Errorf("got %d arguments, usage: %s: %w", len(args), usage, checks.ErrArgument)
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return Args{}, fmt.Errorf("column index %q is not an integer: %w", args[1], checks.ErrArgument)
	}
	lower, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return Args{}, fmt.Errorf("lower bound %q is not a number: %w", args[2], checks.ErrArgument)
	}
	upper, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return Args{}, fmt.Errorf("upper bound %q is not a number: %w", args[3], checks.ErrArgument)
	}
	return Args{File: args[0], Index: index, Filter: bounds.Interval{Lower: lower, Upper: upper}}, nil
}

// Options converts cfg into dpagg options for the analyst interval filter.
func (cfg *Config) Options(filter bounds.Interval) (*dpagg.Options, error) {
	method, err := cfg.method(filter)
	if err != nil {
		return nil, err
	}
	budget, err := dpagg.ParseBudgetSplit(cfg.Budget)
	if err != nil {
		return nil, err
	}
	var src *rand.Source
	if cfg.Seed != 0 {
		src = rand.NewSeeded(cfg.Seed)
	} else {
		src = rand.NewSecure()
	}
	opt := &dpagg.Options{
		Epsilon: cfg.Epsilon,
		Filter:  filter,
		Method:  method,
		Budget:  budget,
		Noise:   noise.Laplace(src),
		Alpha:   cfg.Alpha,
	}
	if cfg.Std {
		opt.Statistics = dpagg.MeanAndStandardDeviation
	}
	return opt, nil
}

func (cfg *Config) method(filter bounds.Interval) (bounds.Method, error) {
	if cfg.Method == FilterName {
		// A copy, so the privacy bounds never alias the filter.
		return bounds.Constant{Lower: filter.Lower, Upper: filter.Upper}, nil
	}
	interp, err := bounds.ParseInterpolation(cfg.Interpolation)
	if err != nil {
		return nil, err
	}
	return bounds.ParseMethod(cfg.Method, bounds.Params{
		ConstantLower:   cfg.ConstantLower,
		ConstantUpper:   cfg.ConstantUpper,
		LowerPercentile: cfg.LowerPercentile,
		UpperPercentile: cfg.UpperPercentile,
		IQRMultiplier:   cfg.IQRMultiplier,
		Interpolation:   interp,
	})
}

// Run computes the statistics selected by cfg for the positional arguments
// args and writes them to w. Diagnostics go to lg.
func Run(ctx context.Context, cfg *Config, args []string, w io.Writer, lg *debuglog.Logger) error {
	a, err := ParseArgs(args)
	if err != nil {
		return err
	}
	opt, err := cfg.Options(a.Filter)
	if err != nil {
		return err
	}
	opt.Log = lg
	if opt.Statistics == dpagg.MeanAndStandardDeviation && opt.Budget == dpagg.BudgetPerQuery {
		lg.Notef("Privacy", "mean and standard deviation each spend epsilon = %v, %v in total; use -budget=shared to split it", opt.Epsilon, 2*opt.Epsilon)
	}
	lg.Debugf("file %q, column %d, filter %v, method %v, epsilon %v", a.File, a.Index, a.Filter, opt.Method, opt.Epsilon)

	t, err := table.Open(ctx, a.File)
	if err != nil {
		return err
	}
	res, err := dpagg.ComputeColumn(t, a.Index, opt)
	if err != nil {
		return err
	}
	return WriteResult(w, res, cfg.Verbose)
}

// WriteResult prints res in the dpmean output format.
func WriteResult(w io.Writer, res *dpagg.Result, verbose bool) error {
	lines := []string{fmt.Sprintf("Differentially Private Mean: %v", res.Mean)}
	if res.Statistics == dpagg.MeanAndStandardDeviation {
		lines = append(lines, fmt.Sprintf("Differentially Private Standard Deviation: %v", res.StandardDeviation))
	}
	if verbose {
		lines = append(lines,
			fmt.Sprintf("Dynamic Bounds Used: Lower = %v, Upper = %v", res.Bounds.Lower, res.Bounds.Upper),
			fmt.Sprintf("Sensitivity: %v, Laplace Scale: %v", res.MeanSensitivity, res.Scale))
	}
	if ci := res.MeanConfidenceInterval; ci != nil {
		lines = append(lines, fmt.Sprintf("Mean Confidence Interval: [%v, %v]", ci.LowerBound, ci.UpperBound))
	}
	if ci := res.StandardDeviationConfidenceInterval; ci != nil {
		lines = append(lines, fmt.Sprintf("Standard Deviation Confidence Interval: [%v, %v]", ci.LowerBound, ci.UpperBound))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("couldn't write the result: %v: %w", err, checks.ErrDataAccess)
		}
	}
	return nil
}

// ExitCode returns the process exit code for err: 0 on success, 2 for
// invalid arguments and 1 for every other failure.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, checks.ErrArgument):
		return 2
	}
	return 1
}

// Main registers the dpmean flags on fs, parses args, runs the command and
// reports any error through lg. It returns the process exit code.
func Main(ctx context.Context, fs *flag.FlagSet, args []string, w io.Writer, lg *debuglog.Logger) int {
	cfg := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		lg.Errorf("%v", err)
		return 2
	}
	log.Infof("dpmean was run with arguments %q, epsilon = %v, method = %q", fs.Args(), cfg.Epsilon, cfg.Method)

	err := Run(ctx, cfg, fs.Args(), w, lg)
	if err != nil {
		lg.Errorf("%v", err)
	}
	return ExitCode(err)
}

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

// dpmeanlambda is an AWS Lambda function that releases a differentially
// private mean of one column of a CSV object stored in S3. It accepts either
// a bare Request or an API Gateway proxy request whose body is a Request.
// DPMEAN_EPSILON sets the epsilon of requests that do not name one.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bcswieder117/dpmean/bounds"
	"github.com/bcswieder117/dpmean/checks"
	"github.com/bcswieder117/dpmean/cli"
	"github.com/bcswieder117/dpmean/debuglog"
	"github.com/bcswieder117/dpmean/dpagg"
	"github.com/bcswieder117/dpmean/table"
	log "github.com/golang/glog"
)

const epsilonEnvVar = "DPMEAN_EPSILON"

// Request selects the object, the column and the privacy parameters.
type Request struct {
	Bucket string  `json:"bucket"`
	Key    string  `json:"key"`
	Column int     `json:"column"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	// Epsilon defaults to DPMEAN_EPSILON, then to 0.2.
	Epsilon       *float64 `json:"epsilon,omitempty"`
	Method        string   `json:"method,omitempty"`
	Interpolation string   `json:"interpolation,omitempty"`
	Std           bool     `json:"std,omitempty"`
	Budget        string   `json:"budget,omitempty"`
	Seed          uint64   `json:"seed,omitempty"`
	Alpha         float64  `json:"alpha,omitempty"`
}

// Interval is a JSON closed interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Response carries the released statistics and how they were obtained.
type Response struct {
	Count                    int       `json:"count"`
	Mean                     float64   `json:"mean"`
	StandardDeviation        *float64  `json:"standard_deviation,omitempty"`
	Bounds                   Interval  `json:"bounds"`
	Sensitivity              float64   `json:"sensitivity"`
	MeanSensitivity          float64   `json:"mean_sensitivity"`
	EpsilonPerQuery          float64   `json:"epsilon_per_query"`
	Scale                    float64   `json:"scale"`
	MeanConfidenceInterval   *Interval `json:"mean_confidence_interval,omitempty"`
	StdDevConfidenceInterval *Interval `json:"standard_deviation_confidence_interval,omitempty"`
}

// objectLoader reads a table from an S3 object.
type objectLoader interface {
	LoadObject(ctx context.Context, bucket, key string) (*table.Table, error)
}

type handler struct {
	loader         objectLoader
	defaultEpsilon float64
	log            *debuglog.Logger
}

func newResponse(res *dpagg.Result) *Response {
	r := &Response{
		Count:           res.Count,
		Mean:            res.Mean,
		Bounds:          Interval{Lower: res.Bounds.Lower, Upper: res.Bounds.Upper},
		Sensitivity:     res.SumSensitivity,
		MeanSensitivity: res.MeanSensitivity,
		EpsilonPerQuery: res.EpsilonPerQuery,
		Scale:           res.Scale,
	}
	if res.Statistics == dpagg.MeanAndStandardDeviation {
		std := res.StandardDeviation
		r.StandardDeviation = &std
	}
	if ci := res.MeanConfidenceInterval; ci != nil {
		r.MeanConfidenceInterval = &Interval{Lower: ci.LowerBound, Upper: ci.UpperBound}
	}
	if ci := res.StandardDeviationConfidenceInterval; ci != nil {
		r.StdDevConfidenceInterval = &Interval{Lower: ci.LowerBound, Upper: ci.UpperBound}
	}
	return r
}

// compute runs one request.
func (h *handler) compute(ctx context.Context, req *Request) (*Response, error) {
	if req.Bucket == "" || req.Key == "" {
		return nil, fmt.Errorf("bucket and key are required: %w", checks.ErrArgument)
	}
	cfg := cli.DefaultConfig()
	cfg.Epsilon = h.defaultEpsilon
	if req.Epsilon != nil {
		cfg.Epsilon = *req.Epsilon
	}
	if req.Method != "" {
		cfg.Method = req.Method
	}
	if req.Interpolation != "" {
		cfg.Interpolation = req.Interpolation
	}
	if req.Budget != "" {
		cfg.Budget = req.Budget
	}
	cfg.Std = req.Std
	cfg.Seed = req.Seed
	cfg.Alpha = req.Alpha

	opt, err := cfg.Options(bounds.Interval{Lower: req.Lower, Upper: req.Upper})
	if err != nil {
		return nil, err
	}
	opt.Log = h.log

	t, err := h.loader.LoadObject(ctx, req.Bucket, req.Key)
	if err != nil {
		return nil, err
	}
	res, err := dpagg.ComputeColumn(t, req.Column, opt)
	if err != nil {
		return nil, err
	}
	log.Infof("Released %v of s3://%s/%s column %d over %d values", res.Statistics, req.Bucket, req.Key, req.Column, res.Count)
	return newResponse(res), nil
}

// isAPIGatewayRequest reports whether event is an API Gateway proxy request.
func isAPIGatewayRequest(event json.RawMessage) (events.APIGatewayProxyRequest, bool) {
	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil || req.HTTPMethod == "" {
		return req, false
	}
	return req, true
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, checks.ErrArgument), errors.Is(err, checks.ErrInvalidMethod),
		errors.Is(err, checks.ErrNonPositiveEpsilon), errors.Is(err, checks.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, checks.ErrEmptyResult), errors.Is(err, checks.ErrDegenerateSeries):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) proxy(ctx context.Context, in events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := map[string]string{"Content-Type": "application/json"}
	var req Request
	if err := json.Unmarshal([]byte(in.Body), &req); err != nil {
		body, _ := json.Marshal(map[string]string{"error": fmt.Sprintf("invalid request body: %v", err)})
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest, Headers: headers, Body: string(body)}, nil
	}
	resp, err := h.compute(ctx, &req)
	if err != nil {
		h.log.Errorf("%v", err)
		body, _ := json.Marshal(map[string]string{"error": err.Error()})
		return events.APIGatewayProxyResponse{StatusCode: statusCode(err), Headers: headers, Body: string(body)}, nil
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: headers, Body: string(body)}, nil
}

// handle dispatches on the shape of event.
func (h *handler) handle(ctx context.Context, event json.RawMessage) (interface{}, error) {
	if in, ok := isAPIGatewayRequest(event); ok {
		return h.proxy(ctx, in)
	}
	var req Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("invalid request: %v: %w", err, checks.ErrArgument)
	}
	resp, err := h.compute(ctx, &req)
	if err != nil {
		h.log.Errorf("%v", err)
		return nil, err
	}
	return resp, nil
}

func epsilonFromEnvironment() (float64, error) {
	v := os.Getenv(epsilonEnvVar)
	if v == "" {
		return cli.DefaultEpsilon, nil
	}
	eps, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s = %q is not a number: %w", epsilonEnvVar, v, checks.ErrArgument)
	}
	return eps, nil
}

func main() {
	// Loads .env before DPMEAN_EPSILON is read.
	lg := debuglog.NewFromEnvironment()
	eps, err := epsilonFromEnvironment()
	if err != nil {
		log.Exitf("Invalid configuration: %v", err)
	}
	loader, err := table.NewDefaultS3Loader()
	if err != nil {
		log.Exitf("Couldn't create the S3 loader: %v", err)
	}
	h := &handler{loader: loader, defaultEpsilon: eps, log: lg}
	lambda.Start(h.handle)
}

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

package checks

import "errors"

// Failure classes reported by the statistics engine and its front ends.
// Callers classify a returned error with errors.Is; every error produced in
// this module wraps exactly one of them.
var (
	// ErrArgument reports malformed caller input: wrong arity, non-numeric
	// index or bounds, lower > upper, out-of-domain parameters.
	ErrArgument = errors.New("invalid argument")
	// ErrDataAccess reports an unreadable or unparsable data source.
	ErrDataAccess = errors.New("data access failed")
	// ErrIndexOutOfRange reports a column index outside the table width.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyResult reports that no value survived numeric coercion and the
	// analyst filter.
	ErrEmptyResult = errors.New("no data points in the specified range")
	// ErrInvalidMethod reports an unknown bound-estimation method name.
	ErrInvalidMethod = errors.New("invalid method for calculating bounds")
	// ErrDegenerateSeries reports a series whose privacy bounds or
	// sensitivity collapse to zero width.
	ErrDegenerateSeries = errors.New("degenerate series")
	// ErrNonPositiveEpsilon reports an epsilon that is not strictly positive
	// and finite.
	ErrNonPositiveEpsilon = errors.New("non-positive epsilon")
	// ErrNonPositiveSensitivity reports a sensitivity that is not strictly
	// positive and finite.
	ErrNonPositiveSensitivity = errors.New("non-positive sensitivity")
)

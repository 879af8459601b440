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

// Package bounds estimates the clipping bounds that the Laplace mechanism's
// sensitivity is derived from.
//
// Two kinds of Interval exist in a computation and they are never
// interchangeable: the analyst's filter interval, which restricts the domain
// of the data, and the privacy bound interval returned by Estimate, which is
// used only for clipping and sensitivity.
package bounds

import (
	"fmt"

	"github.com/bcswieder117/dpmean/checks"
)

// Interval is a closed interval [Lower, Upper] with Lower ≤ Upper.
type Interval struct {
	Lower, Upper float64
}

// Validate returns an error unless both ends are finite and Lower ≤ Upper.
func (iv Interval) Validate() error {
	return checks.CheckBoundsFloat64(iv.Lower, iv.Upper)
}

// Width returns Upper - Lower.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether Lower ≤ v ≤ Upper.
func (iv Interval) Contains(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v]", iv.Lower, iv.Upper)
}

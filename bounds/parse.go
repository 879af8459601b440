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

package bounds

import (
	"fmt"
	"strings"

	"github.com/bcswieder117/dpmean/checks"
)

// Method names accepted by ParseMethod.
const (
	ConstantName   = "constant"
	RangeName      = "range"
	PercentileName = "percentile"
	IQRName        = "iqr"
)

// Params holds the parameters of every method; ParseMethod picks the ones
// relevant to the named method.
type Params struct {
	ConstantLower, ConstantUpper     float64
	LowerPercentile, UpperPercentile float64
	IQRMultiplier                    float64
	Interpolation                    Interpolation
}

// DefaultParams returns the defaults of every method.
func DefaultParams() Params {
	return Params{
		ConstantLower:   DefaultConstantLower,
		ConstantUpper:   DefaultConstantUpper,
		LowerPercentile: DefaultLowerPercentile,
		UpperPercentile: DefaultUpperPercentile,
		IQRMultiplier:   DefaultIQRMultiplier,
		Interpolation:   Linear,
	}
}

// ParseMethod converts a method name into a Method. It returns an error
// wrapping checks.ErrInvalidMethod for unknown names.
func ParseMethod(name string, p Params) (Method, error) {
	var m Method
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ConstantName:
		m = Constant{Lower: p.ConstantLower, Upper: p.ConstantUpper}
	case RangeName:
		m = Range{}
	case PercentileName:
		m = Percentile{Low: p.LowerPercentile, High: p.UpperPercentile, Interpolation: p.Interpolation}
	case IQRName, "":
		m = IQR{Multiplier: p.IQRMultiplier, Interpolation: p.Interpolation}
	default:
		return nil, fmt.Errorf("method %q, must be one of %s, %s, %s, %s: %w", name, ConstantName, RangeName, PercentileName, IQRName, checks.ErrInvalidMethod)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

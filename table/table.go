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

// Package table loads tabular data and extracts numeric columns from it.
package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/bcswieder117/dpmean/checks"
)

// Table is a header plus rows of raw cells. Rows may be shorter or longer than
// the header; the header defines the number of columns.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumColumns returns the width of the table.
func (t *Table) NumColumns() int {
	return len(t.Header)
}

// Float64Column returns the numeric values of the column at the zero-based
// index, in row order. Cells that are missing, empty, not numbers, NaN or ±∞
// are dropped. The result may be empty.
func (t *Table) Float64Column(index int) ([]float64, error) {
	if err := checks.CheckColumnIndex(index, t.NumColumns()); err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if index >= len(row) {
			continue
		}
		if v, ok := toFloat64(row[index]); ok {
			values = append(values, v)
		}
	}
	return values, nil
}

func toFloat64(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

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

package table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bcswieder117/dpmean/checks"
	"github.com/google/go-cmp/cmp"
)

func TestReadCSV(t *testing.T) {
	in := "Country,Code,GDP\nAruba,ABW,3.1\n\nAngola,AGO, 1.2\nshort\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: got err %v", err)
	}
	want := &Table{
		Header: []string{"Country", "Code", "GDP"},
		Rows: [][]string{
			{"Aruba", "ABW", "3.1"},
			{"Angola", "AGO", "1.2"},
			{"short"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadCSV: got diff (-want +got):\n%s", diff)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("ReadCSV: got err %v", err)
	}
	if got.NumColumns() != 2 || len(got.Rows) != 0 {
		t.Errorf("ReadCSV: got %d columns and %d rows, want 2 and 0", got.NumColumns(), len(got.Rows))
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, tc := range []struct {
		desc string
		in   string
	}{
		{"empty input", ""},
		{"unterminated quote", "a,b\n\"1,2\n"},
	} {
		if _, err := ReadCSV(strings.NewReader(tc.in)); !errors.Is(err, checks.ErrDataAccess) {
			t.Errorf("ReadCSV: when %s got err %v, want ErrDataAccess", tc.desc, err)
		}
	}
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp.csv")
	if err := os.WriteFile(path, []byte("year,gdp\n2023,1\n2024,2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tbl, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open(%q): got err %v", path, err)
	}
	got, err := tbl.Float64Column(1)
	if err != nil {
		t.Fatalf("Float64Column: got err %v", err)
	}
	if diff := cmp.Diff([]float64{1, 2}, got); diff != "" {
		t.Errorf("Open(%q): got diff (-want +got):\n%s", path, diff)
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	if _, err := Open(context.Background(), path); !errors.Is(err, checks.ErrDataAccess) {
		t.Errorf("Open(%q): got err %v, want ErrDataAccess", path, err)
	}
}

func TestLoaderForLocalPath(t *testing.T) {
	l, err := loaderFor("data/salaries.csv")
	if err != nil {
		t.Fatalf("loaderFor: got err %v", err)
	}
	if _, ok := l.(FileLoader); !ok {
		t.Errorf("loaderFor(local path): got %T, want FileLoader", l)
	}
}

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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bcswieder117/dpmean/checks"
)

// ReadCSV reads a comma separated table whose first record is the header.
// Records may have a varying number of fields.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("couldn't read the header, the input is empty: %w", checks.ErrDataAccess)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read the header: %v: %w", err, checks.ErrDataAccess)
	}

	t := &Table{Header: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read record %d: %v: %w", len(t.Rows)+1, err, checks.ErrDataAccess)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

// ReadCSVFile reads the CSV file at path with ReadCSV.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the csv file = %q: %v: %w", path, err, checks.ErrDataAccess)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the csv file = %q: %w", path, err)
	}
	return t, nil
}

// Loader reads a table from a location.
type Loader interface {
	Load(ctx context.Context, location string) (*Table, error)
}

// FileLoader loads CSV files from the local file system.
type FileLoader struct{}

// Load implements Loader.
func (FileLoader) Load(_ context.Context, path string) (*Table, error) {
	return ReadCSVFile(path)
}

// Open loads the table at location, which is either a local path or an
// s3://bucket/key URL. The S3 loader is created lazily from the default AWS
// session so local runs never touch AWS configuration.
func Open(ctx context.Context, location string) (*Table, error) {
	l, err := loaderFor(location)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, location)
}

func loaderFor(location string) (Loader, error) {
	if !strings.HasPrefix(location, s3Scheme) {
		return FileLoader{}, nil
	}
	l, err := NewDefaultS3Loader()
	if err != nil {
		return nil, err
	}
	return l, nil
}

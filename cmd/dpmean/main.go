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

// dpmean prints a differentially private mean of one column of a CSV file.
// Usage example:
// go run ./cmd/dpmean --epsilon=0.5 --method=iqr --std --verbose data/salaries.csv 1 0 250000
// The file may also be an S3 object:
// go run ./cmd/dpmean s3://my-bucket/salaries.csv 1 0 250000
// Debug output is enabled with DEBUG=debug,context (also read from a .env file).
package main

import (
	"context"
	"flag"
	"os"

	"github.com/bcswieder117/dpmean/cli"
	"github.com/bcswieder117/dpmean/debuglog"
)

func main() {
	// flag.CommandLine also carries the glog flags.
	os.Exit(cli.Main(context.Background(), flag.CommandLine, os.Args[1:], os.Stdout, debuglog.NewFromEnvironment()))
}

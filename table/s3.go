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
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/bcswieder117/dpmean/checks"
)

const s3Scheme = "s3://"

// S3Loader loads CSV objects from Amazon S3.
type S3Loader struct {
	client s3iface.S3API
}

var _ Loader = (*S3Loader)(nil)

// NewS3Loader returns a loader that fetches objects with client.
func NewS3Loader(client s3iface.S3API) *S3Loader {
	return &S3Loader{client: client}
}

// NewDefaultS3Loader returns a loader backed by the default AWS session, which
// reads credentials and region from the environment and shared config.
func NewDefaultS3Loader() (*S3Loader, error) {
	sess, err := session.NewSessionWithOptions(session.Options{SharedConfigState: session.SharedConfigEnable})
	if err != nil {
		return nil, fmt.Errorf("couldn't create an AWS session: %v: %w", err, checks.ErrDataAccess)
	}
	return NewS3Loader(s3.New(sess)), nil
}

// Load implements Loader for s3://bucket/key locations.
func (l *S3Loader) Load(ctx context.Context, location string) (*Table, error) {
	bucket, key, err := ParseS3URL(location)
	if err != nil {
		return nil, err
	}
	return l.LoadObject(ctx, bucket, key)
}

// LoadObject reads the CSV object stored under key in bucket.
func (l *S3Loader) LoadObject(ctx context.Context, bucket, key string) (*Table, error) {
	out, err := l.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't get s3://%s/%s: %v: %w", bucket, key, err, checks.ErrDataAccess)
	}
	defer out.Body.Close()

	t, err := ReadCSV(out.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read s3://%s/%s: %w", bucket, key, err)
	}
	return t, nil
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("location %q is not an s3:// URL: %w", location, checks.ErrArgument)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("location %q must have the form s3://bucket/key: %w", location, checks.ErrArgument)
	}
	return bucket, key, nil
}

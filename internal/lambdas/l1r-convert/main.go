// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Lambda converting SDGSAT-1 bundles as they land in S3. Triggered by object created events on
// metadata files, writes L1R files to the s3:// url in L1R_OUTPUT
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/raster"
	"github.com/sdgsat-tools/l1r/core/raster/gdalraster"
	"github.com/sdgsat-tools/l1r/core/semanticversion"
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/sdgsat-tools/l1r/l1convert"
)

const metaSuffix = ".meta.xml"

// bundlesFromEvent lists the s3:// bundle directories with a new metadata file, each once
func bundlesFromEvent(event events.S3Event) ([]string, error) {
	result := []string{}
	seen := map[string]bool{}
	for _, record := range event.Records {
		if record.EventSource != "aws:s3" {
			continue
		}

		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return nil, fmt.Errorf("bad object key %v: %v", record.S3.Object.Key, err)
		}
		if !strings.HasSuffix(key, metaSuffix) {
			continue
		}

		bundle := "s3://" + record.S3.Bucket.Name + "/" + path.Dir(key) + "/"
		if path.Dir(key) == "." {
			bundle = "s3://" + record.S3.Bucket.Name + "/"
		}
		if !seen[bundle] {
			seen[bundle] = true
			result = append(result, bundle)
		}
	}
	return result, nil
}

type handler struct {
	remote fileaccess.FileAccess
	reader raster.Reader
	output string
	log    logger.ILogger
}

func (h handler) handle(ctx context.Context, event events.S3Event) (string, error) {
	bundles, err := bundlesFromEvent(event)
	if err != nil {
		return "", err
	}
	if len(bundles) <= 0 {
		return "No bundles in event", nil
	}

	overrides, err := settings.FromEnvironment()
	if err != nil {
		return "", err
	}

	scratch, err := os.MkdirTemp("", "l1r-convert")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(scratch)

	opts := l1convert.Options{
		Settings: overrides,
		Log:      h.log,
		Reader:   h.reader,
	}
	stage := l1convert.Staging{Remote: h.remote, Local: &fileaccess.FSAccess{}, Scratch: scratch, Log: h.log}

	published, _, err := l1convert.ConvertStaged(ctx, bundles, h.output, opts, stage)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Converted %v bundles: %v", len(bundles), strings.Join(published, ", ")), nil
}

func HandleRequest(ctx context.Context, event events.S3Event) (string, error) {
	log := logger.NewStdOutLogger(logger.LogInfo)

	output := os.Getenv("L1R_OUTPUT")
	if !fileaccess.IsS3Url(output) {
		return "", fmt.Errorf("L1R_OUTPUT must be an s3:// url, got: \"%v\"", output)
	}

	remote, err := fileaccess.MakeS3AccessForRegion("")
	if err != nil {
		return "", err
	}

	reader := gdalraster.NewReader(log)
	defer reader.Close()

	h := handler{remote: remote, reader: reader, output: output, log: log}
	result, err := h.handle(ctx, event)
	if err != nil {
		log.Errorf("%v", err)
		sentry.CaptureException(err)
	}
	return result, err
}

// Set at build time with -ldflags "-X main.version=..."
var version = "0.0.0"

func main() {
	if dsn := os.Getenv("SENTRY_DSN"); len(dsn) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: os.Getenv("ENVIRONMENT_NAME"),
			Release:     semanticversion.Release("l1r-convert", version),
		}); err != nil {
			fmt.Printf("Sentry initialization failed: %v\n", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	lambda.Start(HandleRequest)
}

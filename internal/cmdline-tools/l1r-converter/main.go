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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/metrics"
	"github.com/sdgsat-tools/l1r/core/raster/gdalraster"
	"github.com/sdgsat-tools/l1r/core/semanticversion"
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/sdgsat-tools/l1r/l1convert"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "0.0.0"

var rootCmd = &cobra.Command{
	Use:   "l1r-converter [bundle...]",
	Short: "Convert SDGSAT-1 MII L1 bundles to L1R NetCDF",
	Long: `Converts each scene of the given bundles into an L1R NetCDF file of top of atmosphere
radiance and reflectance. Bundles are directories (or a file in one) holding <scene>.meta.xml,
<scene>.calib.xml and <scene>.tif, given locally or as s3:// urls. Several bundles may be given
as separate arguments or comma separated.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runConvert,
	SilenceUsage: true,
	Version:      version,
}

func init() {
	addFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("FAILED")
		os.Exit(1)
	}
}

// userOverrides merges the settings file, environment and flags, later ones winning
func userOverrides(cmd *cobra.Command, remote func() (fileaccess.FileAccess, error)) (settings.Overrides, error) {
	result := settings.Overrides{}

	if len(flagSettingsFile) > 0 {
		var fs fileaccess.FileAccess = &fileaccess.FSAccess{}
		bucket, path := "", flagSettingsFile
		if fileaccess.IsS3Url(flagSettingsFile) {
			var err error
			if fs, err = remote(); err != nil {
				return result, err
			}
			if bucket, path, err = fileaccess.SplitS3Url(flagSettingsFile); err != nil {
				return result, err
			}
		}

		fromFile, err := settings.LoadFile(fs, bucket, path)
		if err != nil {
			return result, err
		}
		result = result.Merge(fromFile)
	}

	fromEnv, err := settings.FromEnvironment()
	if err != nil {
		return result, err
	}

	return result.Merge(fromEnv).Merge(flagOverrides(cmd)), nil
}

func needsS3(inputs []string, output string) bool {
	if fileaccess.IsS3Url(output) || fileaccess.IsS3Url(flagSettingsFile) {
		return true
	}
	for _, in := range l1convert.ParseInputs(inputs...) {
		if fileaccess.IsS3Url(in) {
			return true
		}
	}
	return false
}

func runConvert(cmd *cobra.Command, args []string) error {
	var s3Access *fileaccess.S3Access
	remote := func() (fileaccess.FileAccess, error) {
		if s3Access == nil {
			access, err := fileaccess.MakeS3AccessForRegion(flagAWSRegion)
			if err != nil {
				return nil, err
			}
			s3Access = &access
		}
		return *s3Access, nil
	}

	overrides, err := userOverrides(cmd, remote)
	if err != nil {
		return err
	}

	// An s3:// output setting is treated as if given with --output, conversion itself writes locally
	output := flagOutput
	if len(output) <= 0 && overrides.Output != nil && fileaccess.IsS3Url(*overrides.Output) {
		output = *overrides.Output
		overrides.Output = nil
	}

	log := logger.NewStdOutLogger(logger.LevelFromVerbosity(settings.Defaults().Apply(overrides).Verbosity))

	if len(flagSentryDSN) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         flagSentryDSN,
			Environment: flagEnvName,
			Release:     semanticversion.Release("l1r-converter", version),
		}); err != nil {
			log.Errorf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	err = convert(cmd.Context(), args, output, overrides, log, remote)
	if err != nil {
		log.Errorf("%v", err)
		sentry.CaptureException(err)
	}
	return err
}

func convert(ctx context.Context, args []string, output string, overrides settings.Overrides, log logger.ILogger, remote func() (fileaccess.FileAccess, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	stage := l1convert.Staging{Local: &fileaccess.FSAccess{}, Scratch: flagScratchDir, Log: log}
	if needsS3(args, output) {
		var err error
		if stage.Remote, err = remote(); err != nil {
			return err
		}
		if len(stage.Scratch) <= 0 {
			if stage.Scratch, err = os.MkdirTemp("", "l1r-converter"); err != nil {
				return err
			}
			defer os.RemoveAll(stage.Scratch)
		}
	}

	reader := gdalraster.NewReader(log)
	defer reader.Close()

	reg := prometheus.NewRegistry()
	opts := l1convert.Options{
		Settings: overrides,
		Log:      log,
		Reader:   reader,
		Metrics:  metrics.New(reg),
	}

	published, _, err := l1convert.ConvertStaged(ctx, args, output, opts, stage)

	if len(flagMetricsFile) > 0 {
		if mErr := metrics.WriteFile(flagMetricsFile, reg); mErr != nil {
			log.Errorf("Failed to write metrics to %v: %v", flagMetricsFile, mErr)
		}
	}

	if err != nil {
		return err
	}

	for _, f := range published {
		fmt.Println(f)
	}
	return nil
}

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
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/spf13/cobra"
)

// Command line settings. Only flags given on the command line override settings from the
// settings file and environment
var (
	flagOutput         string
	flagSettingsFile   string
	flagVerbosity      int
	flagLimit          []float64
	flagPolygon        string
	flagPolygonLimit   bool
	flagExtendRegion   bool
	flagGeolocation    bool
	flagXY             bool
	flagLt             bool
	flagGains          bool
	flagGainsToa       []float64
	flagOffsetsToa     []float64
	flagGainsParameter string
	flagRegionName     string
	flagSolarReference string
	flagDataDir        string

	flagMetricsFile string
	flagSentryDSN   string
	flagEnvName     string
	flagAWSRegion   string
	flagScratchDir  string
)

func addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "", "Output directory or s3:// url. Defaults to the output setting, then each bundle's directory")
	f.StringVarP(&flagSettingsFile, "settings", "s", "", "Settings file (TOML, or JSON if it ends in .json), local or s3://")
	f.IntVarP(&flagVerbosity, "verbosity", "v", 1, "0 for errors only, 1 for info, 2 or more for progress")
	f.Float64SliceVar(&flagLimit, "limit", nil, "Crop to S,W,N,E in degrees")
	f.StringVar(&flagPolygon, "polygon", "", "Polygon file (GeoJSON or WKT) to clip to")
	f.BoolVar(&flagPolygonLimit, "polygon-limit", true, "Use the polygon's envelope as the limit")
	f.BoolVar(&flagExtendRegion, "extend-region", false, "Output the whole limit, even where the scene doesn't cover it")
	f.BoolVar(&flagGeolocation, "output-geolocation", true, "Write lon/lat datasets")
	f.BoolVar(&flagXY, "output-xy", false, "Write projected xm/ym datasets")
	f.BoolVar(&flagLt, "output-lt", false, "Write TOA radiance datasets")
	f.BoolVar(&flagGains, "gains", false, "Apply gains_toa and offsets_toa")
	f.Float64SliceVar(&flagGainsToa, "gains-toa", nil, "Per band gains, in band order")
	f.Float64SliceVar(&flagOffsetsToa, "offsets-toa", nil, "Per band offsets, in band order")
	f.StringVar(&flagGainsParameter, "gains-parameter", "", "Apply gains to radiance or reflectance")
	f.StringVar(&flagRegionName, "region-name", "", "Appended to output file names")
	f.StringVar(&flagSolarReference, "solar-reference", "", "Solar irradiance reference spectrum name")
	f.StringVar(&flagDataDir, "data-dir", "", "Directory holding RSR and Solar reference files")

	f.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	f.StringVar(&flagSentryDSN, "sentry-dsn", "", "Report failures to Sentry")
	f.StringVar(&flagEnvName, "env-name", "local", "Environment name reported to Sentry")
	f.StringVar(&flagAWSRegion, "aws-region", "", "AWS region for s3:// inputs and outputs")
	f.StringVar(&flagScratchDir, "scratch-dir", "", "Where s3:// bundles are downloaded to. Defaults to a temporary directory")
}

// flagOverrides returns the settings given as flags on cmd
func flagOverrides(cmd *cobra.Command) settings.Overrides {
	changed := cmd.Flags().Changed
	result := settings.Overrides{}

	if changed("verbosity") {
		result.Verbosity = &flagVerbosity
	}
	if changed("limit") {
		result.Limit = &flagLimit
	}
	if changed("polygon") {
		result.Polygon = &flagPolygon
	}
	if changed("polygon-limit") {
		result.PolygonLimit = &flagPolygonLimit
	}
	if changed("extend-region") {
		result.ExtendRegion = &flagExtendRegion
	}
	if changed("output-geolocation") {
		result.OutputGeolocation = &flagGeolocation
	}
	if changed("output-xy") {
		result.OutputXY = &flagXY
	}
	if changed("output-lt") {
		result.OutputLt = &flagLt
	}
	if changed("gains") {
		result.Gains = &flagGains
	}
	if changed("gains-toa") {
		result.GainsToa = &flagGainsToa
	}
	if changed("offsets-toa") {
		result.OffsetsToa = &flagOffsetsToa
	}
	if changed("gains-parameter") {
		result.GainsParameter = &flagGainsParameter
	}
	if changed("region-name") {
		result.RegionName = &flagRegionName
	}
	if changed("solar-reference") {
		result.SolarIrradianceReference = &flagSolarReference
	}
	if changed("data-dir") {
		result.DataDir = &flagDataDir
	}
	return result
}

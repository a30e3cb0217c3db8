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

package l1convert

import (
	"strings"

	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/metrics"
	"github.com/sdgsat-tools/l1r/core/netcdf"
	"github.com/sdgsat-tools/l1r/core/raster"
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/sdgsat-tools/l1r/core/spectral"
	"github.com/sdgsat-tools/l1r/core/timestamper"
)

// Options - collaborators and user settings for a conversion run. Only Reader is required
type Options struct {
	// Output directory for every scene. When empty, the resolved output setting is used, and
	// failing that the directory of each scene's metadata file
	Output string

	// User settings, applied on top of the built in and sensor defaults for each scene
	Settings settings.Overrides

	Log     logger.ILogger
	FS      fileaccess.FileAccess
	Reader  raster.Reader
	Writer  netcdf.Writer
	Metrics *metrics.Metrics
	Clock   timestamper.ITimeStamper

	// Keyed by data directory, created on demand
	libraries map[string]*spectral.Library
}

// Result - what a run produced
type Result struct {
	// Output files created, in the order they were first created
	Files []string

	// Settings resolved for the last scene converted, the defaults if none were
	Settings settings.Settings
}

// ParseInputs splits comma separated bundle lists into individual bundle paths
func ParseInputs(inputs ...string) []string {
	result := []string{}
	for _, input := range inputs {
		for _, item := range strings.Split(input, ",") {
			item = strings.TrimSpace(item)
			if len(item) > 0 {
				result = append(result, item)
			}
		}
	}
	return result
}

func (o *Options) setDefaults() {
	if o.Log == nil {
		o.Log = &logger.NullLogger{}
	}
	if o.FS == nil {
		o.FS = &fileaccess.FSAccess{}
	}
	if o.Writer == nil {
		o.Writer = netcdf.NewCDFWriter(o.Log)
	}
	if o.Clock == nil {
		o.Clock = &timestamper.SystemTimeStamper{}
	}
	if o.libraries == nil {
		o.libraries = map[string]*spectral.Library{}
	}
}

func (o *Options) library(dataDir string) *spectral.Library {
	lib, ok := o.libraries[dataDir]
	if !ok {
		lib = spectral.NewLibrary(o.FS, dataDir)
		o.libraries[dataDir] = lib
	}
	return lib
}

// levelSetter is implemented by loggers whose level follows the verbosity setting
type levelSetter interface {
	SetLogLevel(level logger.LogLevel)
}

func (o *Options) applyVerbosity(verbosity int) {
	if ls, ok := o.Log.(levelSetter); ok {
		ls.SetLogLevel(logger.LevelFromVerbosity(verbosity))
	}
}

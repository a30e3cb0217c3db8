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

// Converts SDGSAT-1 MII L1 bundles into L1R NetCDF files holding top of atmosphere radiance and
// reflectance on a single grid per scene
package l1convert

import (
	"context"

	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/metrics"
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/sdgsat-tools/l1r/core/utils"
	"github.com/sdgsat-tools/l1r/l1convert/internal/sdgsat"
)

// Convert converts every scene of every bundle in turn. Scenes whose limit falls outside the image
// are skipped, any other failure stops the run and is returned along with what was created so far
func Convert(ctx context.Context, inputs []string, opts Options) (Result, error) {
	opts.setDefaults()
	log := opts.Log

	result := Result{Files: []string{}, Settings: settings.Defaults()}

	bundles := ParseInputs(inputs...)
	log.Debugf("Starting conversion of %v scenes", len(bundles))

	for _, bundle := range bundles {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := opts.Clock.GetTimeNow()

		scenes, err := sdgsat.FindScenes(opts.FS, bundle)
		if err != nil {
			return result, err
		}

		created := []string{}
		for _, files := range scenes {
			sceneStart := opts.Clock.GetTimeNow()
			sc, err := resolveScene(&opts, files)
			if err != nil {
				if errorwithkind.KindOf(err) == errorwithkind.KindOutOfBounds {
					log.Debugf("Limit outside %v: %v", bundle, err)
					opts.Metrics.SceneSkipped(metrics.SkipOutOfBounds)
					continue
				}
				return result, err
			}
			result.Settings = sc.settings

			a := newAssembler(&opts, sc)
			if err := a.run(ctx); err != nil {
				return result, err
			}

			if !a.newFile {
				created = append(created, sc.ofile)
				result.Files = utils.AppendUnique(result.Files, sc.ofile)
				opts.Metrics.SceneConverted(opts.Clock.GetTimeNow().Sub(sceneStart))
			}
		}

		took := opts.Clock.GetTimeNow().Sub(start)
		log.Debugf("Conversion took %.1f seconds", took.Seconds())
		for _, f := range created {
			log.Debugf("Created %v", f)
		}
	}

	return result, nil
}

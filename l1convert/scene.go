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
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/calibration"
	"github.com/sdgsat-tools/l1r/core/geometry"
	"github.com/sdgsat-tools/l1r/core/netcdf"
	"github.com/sdgsat-tools/l1r/core/polygon"
	"github.com/sdgsat-tools/l1r/core/projection"
	"github.com/sdgsat-tools/l1r/core/settings"
	"github.com/sdgsat-tools/l1r/core/spectral"
	"github.com/sdgsat-tools/l1r/l1convert/internal/sdgsat"
)

const fileType = "L1R"

// scene - everything resolved for one scene before any band is read. Built from scratch for each
// scene, nothing in here is shared with the next one
type scene struct {
	files    sdgsat.Scene
	sensor   string
	settings settings.Settings

	calibration calibration.Table
	response    *spectral.Response
	geometry    geometry.Geometry

	// Nil when no gains are to be applied
	corrections map[string]calibration.Correction

	native projection.Grid
	target projection.Target
	limit  *projection.Limit

	// Nil when not clipping, true = outside the polygon
	mask []bool

	globalAttributes netcdf.Attributes
	oname            string
	ofile            string
}

// resolveScene reads the scene's metadata and works out its settings, geometry, target grid and
// clip mask. An OutOfBoundsError means the limit misses the scene
func resolveScene(opts *Options, files sdgsat.Scene) (*scene, error) {
	meta, cal, err := sdgsat.ReadScene(opts.FS, files)
	if err != nil {
		return nil, err
	}

	sensor, err := geometry.SensorID(meta)
	if err != nil {
		return nil, err
	}

	s, err := settings.Parse(sensor, opts.Settings)
	if err != nil {
		return nil, errors.Wrapf(err, "settings for %v", sensor)
	}
	opts.applyVerbosity(s.Verbosity)

	lib := opts.library(s.DataDir)
	rsr, err := lib.Response(sensor)
	if err != nil {
		return nil, err
	}
	solar, err := lib.Solar(s.SolarIrradianceReference)
	if err != nil {
		return nil, err
	}

	geom, err := geometry.Resolve(meta, rsr, solar)
	if err != nil {
		return nil, err
	}

	result := &scene{
		files:       files,
		sensor:      sensor,
		settings:    s,
		calibration: cal,
		response:    rsr,
		geometry:    geom,
	}

	if s.Gains {
		result.corrections, err = calibration.MakeCorrections(rsr.Bands, s.GainsToa, s.OffsetsToa, s.Stage())
		if err != nil {
			opts.Log.Errorf("Use of gains requested, but %v. Provide gains in band order: %v", err, rsr.Bands)
			result.corrections = nil
		}
	}

	if err := result.resolveGrid(opts); err != nil {
		return nil, err
	}

	result.oname = outputName(sensor, geom.Time, s.RegionName)
	result.ofile = path.Join(outputDir(opts.Output, s.Output, files.Metadata), result.oname+"_"+fileType+".nc")
	result.globalAttributes = result.makeGlobalAttributes()
	return result, nil
}

// resolveGrid works out the limit, target grid and clip mask. Polygon problems never fail the
// scene: clipping is switched off and the configured limit is used instead
func (sc *scene) resolveGrid(opts *Options) error {
	s := sc.settings
	sc.limit = s.LimitBox()

	clip := false
	limitFromPolygon := false
	if len(s.Polygon) > 0 {
		exists, err := opts.FS.ObjectExists("", s.Polygon)
		switch {
		case err != nil:
			opts.Log.Errorf("Failed to check polygon %v: %v. Not clipping", s.Polygon, err)
		case !exists:
			opts.Log.Errorf("Polygon %v not found. Not clipping", s.Polygon)
		default:
			clip = true
			if s.PolygonLimit {
				envelope, err := polygon.LoadEnvelope(opts.FS, "", s.Polygon)
				if err != nil {
					opts.Log.Errorf("%v. Not clipping", err)
					clip = false
				} else {
					sc.limit = &envelope
					limitFromPolygon = true
				}
			}
		}
	}

	native, err := opts.Reader.ReadGrid(sc.files.Image)
	if err != nil {
		return err
	}
	sc.native = native

	sc.target, err = projection.Resolve(native, sc.limit, s.ExtendRegion)
	if err != nil {
		return err
	}

	if !clip {
		return nil
	}

	sc.mask, err = polygon.BuildMask(opts.FS, "", s.Polygon, sc.target.Grid)
	if err == nil {
		return nil
	}

	opts.Log.Errorf("%v. Not clipping", err)
	sc.mask = nil
	err = nil
	if limitFromPolygon {
		sc.limit = s.LimitBox()
		sc.target, err = projection.Resolve(native, sc.limit, s.ExtendRegion)
	}
	return err
}

func (sc *scene) makeGlobalAttributes() netcdf.Attributes {
	g := sc.geometry
	b := netcdf.NewAttributeBuilder().
		Set("sensor", sc.sensor).
		Set("isodate", g.Time.Format(time.RFC3339)).
		Set("sza", g.SZA).
		Set("vza", g.VZA).
		Set("raa", g.RAA).
		Set("vaa", g.VAA).
		Set("saa", g.SAA).
		Set("doy", g.DOY).
		Set("se_distance", g.SEDistance).
		Set("mus", g.MuS).
		Set("file_type", fileType)

	for _, band := range sc.response.Bands {
		br, _ := sc.response.Band(band)
		b.Set(band+"_wave", br.WaveNm)
		b.Set(band+"_name", br.WaveName)
		b.Set(band+"_f0", g.F0[band])
	}

	b.Set("oname", sc.oname)
	b.Set("ofile", sc.ofile)

	if sc.limit != nil {
		if sc.target.Sub != nil {
			b.Set("sub", sc.target.Sub[:])
		}
		b.Set("limit", sc.limit.Slice())
	}

	setGrid(b, "scene_", sc.target.Grid)
	b.Set("scene_dims", []int{sc.native.YDim, sc.native.XDim})
	if sc.target.Grid.Zone > 0 {
		b.Set("scene_zone", sc.target.Grid.Zone)
	}

	setGrid(b, "", sc.target.Grid)
	if sc.target.Grid.Zone > 0 {
		b.Set("zone", sc.target.Grid.Zone)
	}

	dims := sc.target.Grid.Dims()
	b.Set("global_dims", dims[:])
	return b.Freeze()
}

func setGrid(b *netcdf.AttributeBuilder, prefix string, g projection.Grid) {
	xr := g.XRange()
	yr := g.YRange()
	ps := g.PixelSize()
	b.Set(prefix+"xrange", xr[:])
	b.Set(prefix+"yrange", yr[:])
	b.Set(prefix+"proj4_string", g.Proj4)
	b.Set(prefix+"pixel_size", ps[:])
}

// outputName - <sensor>_<YYYY_MM_DD_HH_MM_SS>[_<region>]
func outputName(sensor string, t time.Time, region string) string {
	name := fmt.Sprintf("%v_%v", sensor, t.UTC().Format("2006_01_02_15_04_05"))
	if len(region) > 0 {
		name += "_" + region
	}
	return name
}

func outputDir(explicit string, configured string, metadataPath string) string {
	if len(explicit) > 0 {
		return explicit
	}
	if len(configured) > 0 {
		return configured
	}
	return path.Dir(metadataPath)
}

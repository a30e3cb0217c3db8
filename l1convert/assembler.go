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
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/calibration"
	"github.com/sdgsat-tools/l1r/core/metrics"
	"github.com/sdgsat-tools/l1r/core/netcdf"
	"github.com/sdgsat-tools/l1r/core/projection"
)

// assembler writes the datasets of one scene into its output file. The first write creates the
// file (truncating anything there) and carries the global attributes, later writes append
type assembler struct {
	opts    *Options
	sc      *scene
	newFile bool
}

func newAssembler(opts *Options, sc *scene) *assembler {
	return &assembler{opts: opts, sc: sc, newFile: true}
}

type datasetWrite struct {
	name       string
	kind       string
	data       []float64
	attributes *netcdf.Attributes
	double     bool

	// Quantise to the configured least significant digit
	quantise bool
}

func (a *assembler) write(w datasetWrite) error {
	s := a.sc.settings
	grid := a.sc.target.Grid

	opts := netcdf.WriteOptions{
		NewFile:           a.newFile,
		DatasetAttributes: w.attributes,
		Double:            w.double,
		Compression: netcdf.Compression{
			Enabled: s.NetCDFCompression,
			Level:   s.NetCDFCompressionLevel,
		},
	}
	if a.newFile {
		gatts := a.sc.globalAttributes
		opts.GlobalAttributes = &gatts
	}
	if s.NetCDFProjection {
		opts.Projection = &grid
	}
	if w.quantise {
		opts.Compression.LeastSignificantDigit = s.NetCDFCompressionLeastSignificantDigit
	}

	if err := a.opts.Writer.Write(a.sc.ofile, w.name, w.data, grid.Dims(), opts); err != nil {
		return errors.Wrapf(err, "failed to write %v", w.name)
	}

	a.newFile = false
	a.opts.Metrics.DatasetWritten(w.kind)
	return nil
}

func shape(g projection.Grid) string {
	return fmt.Sprintf("(%v, %v)", g.YDim, g.XDim)
}

func (a *assembler) writeGeolocation() error {
	log := a.opts.Log
	grid := a.sc.target.Grid

	log.Debugf("Writing geolocation lon/lat")
	lon, lat, err := projection.Geolocation(grid)
	if err != nil {
		return err
	}

	if err := a.write(datasetWrite{name: "lon", kind: metrics.KindGeolocation, data: lon, double: true}); err != nil {
		return err
	}
	log.Debugf("Wrote lon %v", shape(grid))

	if err := a.write(datasetWrite{name: "lat", kind: metrics.KindGeolocation, data: lat, double: true}); err != nil {
		return err
	}
	log.Debugf("Wrote lat %v", shape(grid))
	return nil
}

func (a *assembler) writeProjectedCoordinates() error {
	log := a.opts.Log
	grid := a.sc.target.Grid

	log.Debugf("Writing geolocation x/y")
	xm, ym := projection.ProjectedCoordinates(grid)

	if err := a.write(datasetWrite{name: "xm", kind: metrics.KindXY, data: xm}); err != nil {
		return err
	}
	log.Debugf("Wrote xm %v", shape(grid))

	if err := a.write(datasetWrite{name: "ym", kind: metrics.KindXY, data: ym}); err != nil {
		return err
	}
	log.Debugf("Wrote ym %v", shape(grid))
	return nil
}

func (a *assembler) writeBand(ctx context.Context, pair calibration.BandPair) error {
	sc := a.sc
	log := a.opts.Log

	br, ok := sc.response.Band(pair.Band)
	if !ok {
		return errors.Errorf("band %v not in response of %v", pair.Band, sc.sensor)
	}

	_, dn, err := a.opts.Reader.ReadBand(ctx, sc.files.Image, pair.Index, sc.target.Warp)
	if err != nil {
		return errors.Wrapf(err, "failed to read band %v", pair.Band)
	}
	if len(dn) != sc.target.Grid.PixelCount() {
		return errors.Errorf("band %v read %v pixels, expected %v", pair.Band, len(dn), sc.target.Grid.PixelCount())
	}

	in := calibration.Input{
		DN:           dn,
		Coefficients: sc.calibration[pair.Index],
		F0:           sc.geometry.F0[pair.Band],
		SEDistance:   sc.geometry.SEDistance,
		MuS:          []float64{sc.geometry.MuS},
		Mask:         sc.mask,
	}

	builder := netcdf.NewAttributeBuilder().Set("wavelength", br.WaveNm)
	if corr, ok := sc.corrections[pair.Band]; ok {
		in.Correction = &corr
		builder.Set("gain", corr.Gain).Set("offset", corr.Offset).Set("gains_parameter", string(corr.Stage))
		log.Infof("Applying gain %v and offset %v to TOA %v for band %v", corr.Gain, corr.Offset, corr.Stage, pair.Band)
	}
	attrs := builder.Freeze()

	out, err := calibration.Calibrate(in)
	if err != nil {
		return errors.Wrapf(err, "band %v", pair.Band)
	}

	if sc.settings.OutputLt {
		name := "Lt_" + br.WaveName
		if err := a.write(datasetWrite{name: name, kind: metrics.KindRadiance, data: out.Radiance, attributes: &attrs, quantise: true}); err != nil {
			return err
		}
		log.Debugf("Converting bands: Wrote %v %v", name, shape(sc.target.Grid))
	}

	name := "rhot_" + br.WaveName
	if err := a.write(datasetWrite{name: name, kind: metrics.KindReflectance, data: out.Reflectance, attributes: &attrs, quantise: true}); err != nil {
		return err
	}
	log.Debugf("Converting bands: Wrote %v %v", name, shape(sc.target.Grid))
	return nil
}

// run writes every dataset of the scene in order: lon/lat, xm/ym, then each band's Lt and rhot
func (a *assembler) run(ctx context.Context) error {
	s := a.sc.settings

	if s.OutputGeolocation {
		if err := a.writeGeolocation(); err != nil {
			return err
		}
	}
	if s.OutputXY {
		if err := a.writeProjectedCoordinates(); err != nil {
			return err
		}
	}

	for _, pair := range calibration.PairBands(a.sc.calibration, a.sc.response.Bands) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.writeBand(ctx, pair); err != nil {
			return err
		}
	}

	return a.opts.Writer.Close(a.sc.ofile)
}

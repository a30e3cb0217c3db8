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

// Writing calibrated bands and their metadata to NetCDF (classic format) files
package netcdf

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/projection"
)

// Compression options. Classic NetCDF files can't be deflated, LeastSignificantDigit still applies
// and rounds values to the given number of decimal digits
type Compression struct {
	Enabled               bool
	Level                 int
	LeastSignificantDigit int // 0 for none
}

type WriteOptions struct {
	// Create (truncate) the file rather than appending to it
	NewFile bool

	// File level attributes, written with the first dataset
	GlobalAttributes *Attributes

	DatasetAttributes *Attributes

	// When set, a grid mapping variable and x/y coordinate variables are written for this grid
	Projection *projection.Grid

	// Store as 64 bit rather than 32 bit floats
	Double bool

	Compression Compression
}

// Writer stores 2D datasets (rows, cols) in a file
type Writer interface {
	Write(path string, name string, data []float64, dims [2]int, opts WriteOptions) error
	Close(path string) error
}

// Names of the dimensions and grid mapping variable we write
const (
	DimY       = "y"
	DimX       = "x"
	CRSName    = "crs"
	crsDimName = "crs_len"
)

// CDFWriter writes classic format NetCDF files. Appending rewrites the file with the new variable
// added, so a file is only ever complete or not yet moved into place. Each Write reads back and
// rewrites everything already in the file, so writing n datasets costs O(n^2) in I/O, and memory
// peaks at the size of the whole file
type CDFWriter struct {
	log logger.ILogger

	mu                 sync.Mutex
	compressionWarning bool
}

func NewCDFWriter(log logger.ILogger) *CDFWriter {
	return &CDFWriter{log: log}
}

func (w *CDFWriter) Write(path string, name string, data []float64, dims [2]int, opts WriteOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) != dims[0]*dims[1] {
		return fmt.Errorf("%v has %v values, expected %vx%v", name, len(data), dims[0], dims[1])
	}

	f := &File{}
	if !opts.NewFile {
		var err error
		f, err = ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to append %v", name)
		}
	}

	if opts.GlobalAttributes != nil {
		f.Global = NewAttributeBuilder().SetAll(f.Global).SetAll(*opts.GlobalAttributes).Freeze()
	}

	if err := f.setDim(DimY, dims[0]); err != nil {
		return errors.Wrapf(err, "%v does not match %v", name, path)
	}
	if err := f.setDim(DimX, dims[1]); err != nil {
		return errors.Wrapf(err, "%v does not match %v", name, path)
	}

	if opts.Projection != nil {
		if opts.Projection.YDim != dims[0] || opts.Projection.XDim != dims[1] {
			return fmt.Errorf("projection grid %v does not match %v dims %v", opts.Projection.Dims(), name, dims)
		}
		if err := addProjection(f, *opts.Projection); err != nil {
			return err
		}
	}

	if opts.Compression.Enabled && !w.compressionWarning {
		w.log.Infof("NetCDF compression (level %v) is not available for classic format files, writing uncompressed", opts.Compression.Level)
		w.compressionWarning = true
	}

	values := data
	if opts.Compression.LeastSignificantDigit > 0 {
		values = Quantise(data, opts.Compression.LeastSignificantDigit)
	}

	attrs := NewAttributeBuilder()
	if opts.DatasetAttributes != nil {
		attrs.SetAll(*opts.DatasetAttributes)
	}
	if _, hasCRS := f.Variable(CRSName); hasCRS {
		attrs.Set("grid_mapping", CRSName)
	}

	v := Variable{Name: name, Dims: []string{DimY, DimX}, Attributes: attrs.Freeze()}
	if opts.Double {
		v.values = append([]float64{}, values...)
	} else {
		v.values = toFloat32(values)
	}
	f.putVariable(v)

	return writeFile(path, f)
}

// Close - nothing is held open between writes
func (w *CDFWriter) Close(path string) error {
	return nil
}

func toFloat32(data []float64) []float32 {
	result := make([]float32, len(data))
	for c, v := range data {
		result[c] = float32(v)
	}
	return result
}

// Quantise rounds values so only lsd decimal digits are significant, using a power of two scale so
// the trailing bits are zero
func Quantise(data []float64, lsd int) []float64 {
	bits := math.Ceil(math.Log2(math.Pow(10, float64(lsd))))
	scale := math.Pow(2, bits)

	result := make([]float64, len(data))
	for c, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result[c] = v
			continue
		}
		result[c] = math.RoundToEven(v*scale) / scale
	}
	return result
}

// addProjection writes the grid mapping and coordinate variables, once per file
func addProjection(f *File, g projection.Grid) error {
	if _, ok := f.Variable(CRSName); ok {
		return nil
	}
	if err := f.setDim(crsDimName, 1); err != nil {
		return err
	}

	f.putVariable(Variable{Name: CRSName, Dims: []string{crsDimName}, Attributes: gridMapping(g), values: []int32{0}})

	f.putVariable(Variable{
		Name:       DimX,
		Dims:       []string{DimX},
		Attributes: NewAttributeBuilder().Set("standard_name", "projection_x_coordinate").Set("units", "m").Freeze(),
		values:     g.XCoords(),
	})
	f.putVariable(Variable{
		Name:       DimY,
		Dims:       []string{DimY},
		Attributes: NewAttributeBuilder().Set("standard_name", "projection_y_coordinate").Set("units", "m").Freeze(),
		values:     g.YCoords(),
	})
	return nil
}

func gridMapping(g projection.Grid) Attributes {
	b := NewAttributeBuilder()
	switch {
	case g.Zone > 0 && strings.Contains(g.Proj4, "+proj=utm"):
		b.Set("grid_mapping_name", "transverse_mercator")
		b.Set("longitude_of_central_meridian", float64(g.Zone*6-183))
		b.Set("latitude_of_projection_origin", 0.0)
		b.Set("scale_factor_at_central_meridian", 0.9996)
		b.Set("false_easting", 500000.0)
		northing := 0.0
		if strings.Contains(g.Proj4, "+south") {
			northing = 10000000.0
		}
		b.Set("false_northing", northing)
		b.Set("utm_zone_number", g.Zone)
	case strings.Contains(g.Proj4, "+proj=longlat"):
		b.Set("grid_mapping_name", "latitude_longitude")
	}
	b.Set("proj4_string", g.Proj4)
	b.Set("GeoTransform", fmt.Sprintf("%v %v 0 %v 0 %v", g.X0, g.PixelX, g.Y0, g.PixelY))
	return b.Freeze()
}

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

// GDAL backed raster reader
package gdalraster

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/lukeroth/gdal"
	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/projection"
	"github.com/sdgsat-tools/l1r/core/raster"
)

// Reader reads bands with GDAL. Warped datasets are built in memory once per (source, warp) and
// kept until Close, so reading every band of a scene only warps once
type Reader struct {
	log logger.ILogger

	mu     sync.Mutex
	open   map[string]gdal.Dataset
	warped map[string]gdal.Dataset
}

func NewReader(log logger.ILogger) *Reader {
	return &Reader{
		log:    log,
		open:   map[string]gdal.Dataset{},
		warped: map[string]gdal.Dataset{},
	}
}

func (r *Reader) dataset(src string) (gdal.Dataset, error) {
	if ds, ok := r.open[src]; ok {
		return ds, nil
	}
	ds, err := gdal.Open(src, gdal.ReadOnly)
	if err != nil {
		return gdal.Dataset{}, errors.Wrapf(err, "failed to open %v", src)
	}
	r.open[src] = ds
	return ds, nil
}

func (r *Reader) ReadGrid(src string) (projection.Grid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds, err := r.dataset(src)
	if err != nil {
		return projection.Grid{}, err
	}

	sr := gdal.CreateSpatialReference(ds.Projection())
	defer sr.Destroy()
	proj4, err := sr.ToProj4()
	if err != nil {
		return projection.Grid{}, errors.Wrapf(err, "failed to read projection of %v", src)
	}

	return projection.MakeGrid(proj4, ds.GeoTransform(), ds.RasterXSize(), ds.RasterYSize()), nil
}

func (r *Reader) warp(src string, ds gdal.Dataset, warp projection.WarpParams) (gdal.Dataset, error) {
	key := src + "|" + warp.String()
	if w, ok := r.warped[key]; ok {
		return w, nil
	}

	options := []string{
		"-of", "MEM",
		"-t_srs", warp.Proj4,
		"-te", ftoa(warp.Extent[0]), ftoa(warp.Extent[1]), ftoa(warp.Extent[2]), ftoa(warp.Extent[3]),
		"-tr", ftoa(math.Abs(warp.PixelX)), ftoa(math.Abs(warp.PixelY)),
		"-r", warp.Resampling,
	}
	r.log.Debugf("Warping %v: %v", src, options)

	w, err := gdal.Warp("", nil, []gdal.Dataset{ds}, options)
	if err != nil {
		return gdal.Dataset{}, errors.Wrapf(err, "failed to warp %v", src)
	}
	r.warped[key] = w
	return w, nil
}

func (r *Reader) ReadBand(ctx context.Context, src string, band int, warp *projection.WarpParams) (raster.BandMeta, []float64, error) {
	if err := ctx.Err(); err != nil {
		return raster.BandMeta{}, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ds, err := r.dataset(src)
	if err != nil {
		return raster.BandMeta{}, nil, err
	}
	if warp != nil {
		ds, err = r.warp(src, ds, *warp)
		if err != nil {
			return raster.BandMeta{}, nil, err
		}
	}

	if band < 1 || band > ds.RasterCount() {
		return raster.BandMeta{}, nil, fmt.Errorf("band %v not in %v (%v bands)", band, src, ds.RasterCount())
	}

	xDim := ds.RasterXSize()
	yDim := ds.RasterYSize()
	rb := ds.RasterBand(band)

	data := make([]float64, xDim*yDim)
	if err := rb.IO(gdal.RWFlag(gdal.Read), 0, 0, xDim, yDim, data, xDim, yDim, 0, 0); err != nil {
		return raster.BandMeta{}, nil, errors.Wrapf(err, "failed to read band %v of %v", band, src)
	}

	nodata, hasNoData := rb.NoDataValue()
	return raster.BandMeta{Band: band, XDim: xDim, YDim: yDim, NoData: nodata, HasNoData: hasNoData}, data, nil
}

// Close releases every dataset opened or warped by this reader
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, ds := range r.warped {
		ds.Close()
		delete(r.warped, k)
	}
	for k, ds := range r.open {
		ds.Close()
		delete(r.open, k)
	}
}

func ftoa(v float64) string {
	return fmt.Sprintf("%.10g", v)
}

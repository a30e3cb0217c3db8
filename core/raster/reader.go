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

// Reading image bands, optionally resampled onto a target grid
package raster

import (
	"context"

	"github.com/sdgsat-tools/l1r/core/projection"
)

// BandMeta describes a band as it was read
type BandMeta struct {
	Band      int
	XDim      int
	YDim      int
	NoData    float64
	HasNoData bool
}

// Reader reads bands from an image source. Bands are numbered from 1. When warp is nil the band is
// returned on its native grid, otherwise it is resampled onto the grid the warp parameters describe,
// with areas outside the source set to 0
type Reader interface {
	ReadGrid(src string) (projection.Grid, error)
	ReadBand(ctx context.Context, src string, band int, warp *projection.WarpParams) (BandMeta, []float64, error)
}

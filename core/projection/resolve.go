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

package projection

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/errorwithkind"
)

// Limit - a lon/lat box [south, west, north, east] in degrees
type Limit [4]float64

func MakeLimit(values []float64) (Limit, error) {
	if len(values) != 4 {
		return Limit{}, fmt.Errorf("limit needs 4 values (S, W, N, E), got %v", len(values))
	}
	l := Limit{values[0], values[1], values[2], values[3]}
	if l[0] >= l[2] || l[1] >= l[3] {
		return Limit{}, fmt.Errorf("limit %v is empty", values)
	}
	return l, nil
}

func (l Limit) Slice() []float64 {
	return []float64{l[0], l[1], l[2], l[3]}
}

// ResampleAverage - area weighted mean of contributing source pixels
const ResampleAverage = "average"

// WarpParams - what a raster reader needs to resample a band onto a target grid
type WarpParams struct {
	Proj4      string
	Extent     [4]float64 // minx, miny, maxx, maxy
	PixelX     float64
	PixelY     float64
	Resampling string
}

func MakeWarpParams(g Grid) WarpParams {
	return WarpParams{
		Proj4:      g.Proj4,
		Extent:     g.Extent(),
		PixelX:     g.PixelX,
		PixelY:     g.PixelY,
		Resampling: ResampleAverage,
	}
}

// Grid - the grid a reader should produce for these parameters
func (w WarpParams) Grid() Grid {
	xDim := int(math.Round((w.Extent[2] - w.Extent[0]) / math.Abs(w.PixelX)))
	yDim := int(math.Round((w.Extent[3] - w.Extent[1]) / math.Abs(w.PixelY)))
	return Grid{
		Proj4:  w.Proj4,
		X0:     w.Extent[0],
		Y0:     w.Extent[3],
		PixelX: math.Abs(w.PixelX),
		PixelY: -math.Abs(w.PixelY),
		XDim:   xDim,
		YDim:   yDim,
		Zone:   ZoneFromProj4(w.Proj4),
	}
}

func (w WarpParams) String() string {
	return fmt.Sprintf("%v|%v|%v|%v|%v", w.Proj4, w.Extent, w.PixelX, w.PixelY, w.Resampling)
}

// OutOfBoundsError - the limit does not overlap the scene in longitude and/or latitude
type OutOfBoundsError struct {
	OutLon bool
	OutLat bool
}

func (e OutOfBoundsError) Error() string {
	switch {
	case e.OutLon && e.OutLat:
		return "limit outside scene in longitude and latitude"
	case e.OutLon:
		return "limit outside scene in longitude"
	default:
		return "limit outside scene in latitude"
	}
}

func (e OutOfBoundsError) Kind() errorwithkind.Kind {
	return errorwithkind.KindOutOfBounds
}

// Target - the grid a scene is written on
type Target struct {
	Grid Grid

	// Nil when bands are read on the native grid
	Warp *WarpParams

	// Pixel window [col, row, cols, rows] of the native grid, nil when not cropping inside the scene
	Sub *[4]int
}

// Resolve works out the target grid for a scene. Without a limit the native grid is used as is.
// With a limit, the target is the limit's footprint aligned to the native pixel grid, either
// clipped to the scene (extend false) or in full (extend true, off-scene pixels read as nodata).
func Resolve(native Grid, limit *Limit, extend bool) (Target, error) {
	if limit == nil {
		return Target{Grid: native}, nil
	}

	t, err := MakeTransforms(native.Proj4)
	if err != nil {
		return Target{}, err
	}

	// Project the limit's corners, take the bounding box
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, corner := range [][2]float64{{limit[1], limit[0]}, {limit[1], limit[2]}, {limit[3], limit[0]}, {limit[3], limit[2]}} {
		x, y, err := t.ToProjected(corner[0], corner[1])
		if err != nil {
			return Target{}, errors.Wrapf(err, "projecting limit corner %v", corner)
		}
		xMin, xMax = math.Min(xMin, x), math.Max(xMax, x)
		yMin, yMax = math.Min(yMin, y), math.Max(yMax, y)
	}

	return resolveWindow(native, xMin, yMin, xMax, yMax, extend)
}

func resolveWindow(native Grid, xMin float64, yMin float64, xMax float64, yMax float64, extend bool) (Target, error) {
	px := native.PixelX
	py := native.PixelY

	c0 := int(math.Floor((xMin - native.X0) / px))
	c1 := int(math.Ceil((xMax - native.X0) / px))
	r0 := int(math.Floor((yMax - native.Y0) / py))
	r1 := int(math.Ceil((yMin - native.Y0) / py))

	oob := OutOfBoundsError{
		OutLon: c1 <= 0 || c0 >= native.XDim,
		OutLat: r1 <= 0 || r0 >= native.YDim,
	}
	if oob.OutLon || oob.OutLat {
		return Target{}, oob
	}

	var sub *[4]int
	if !extend {
		c0 = max(c0, 0)
		r0 = max(r0, 0)
		c1 = min(c1, native.XDim)
		r1 = min(r1, native.YDim)
		sub = &[4]int{c0, r0, c1 - c0, r1 - r0}
	}

	grid := Grid{
		Proj4:  native.Proj4,
		X0:     native.X0 + float64(c0)*px,
		Y0:     native.Y0 + float64(r0)*py,
		PixelX: px,
		PixelY: py,
		XDim:   c1 - c0,
		YDim:   r1 - r0,
		Zone:   native.Zone,
	}
	warp := MakeWarpParams(grid)
	return Target{Grid: grid, Warp: &warp, Sub: sub}, nil
}

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

// Output grid definitions, limits and lon/lat transforms for projected scenes
package projection

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Grid - a north-up raster grid in a projected coordinate system. X0, Y0 is the top left corner of
// the top left pixel, PixelY is negative
type Grid struct {
	Proj4  string
	X0     float64
	Y0     float64
	PixelX float64
	PixelY float64
	XDim   int
	YDim   int
	Zone   int // 0 when not a UTM-like projection
}

// MakeGrid builds a grid from a GDAL-style geotransform
func MakeGrid(proj4 string, geoTransform [6]float64, xDim int, yDim int) Grid {
	return Grid{
		Proj4:  proj4,
		X0:     geoTransform[0],
		Y0:     geoTransform[3],
		PixelX: geoTransform[1],
		PixelY: geoTransform[5],
		XDim:   xDim,
		YDim:   yDim,
		Zone:   ZoneFromProj4(proj4),
	}
}

func (g Grid) XRange() [2]float64 {
	return [2]float64{g.X0, g.X0 + float64(g.XDim)*g.PixelX}
}

func (g Grid) YRange() [2]float64 {
	return [2]float64{g.Y0, g.Y0 + float64(g.YDim)*g.PixelY}
}

func (g Grid) PixelSize() [2]float64 {
	return [2]float64{g.PixelX, g.PixelY}
}

// Dims - (rows, columns)
func (g Grid) Dims() [2]int {
	return [2]int{g.YDim, g.XDim}
}

func (g Grid) PixelCount() int {
	return g.XDim * g.YDim
}

// Extent - [minx, miny, maxx, maxy]
func (g Grid) Extent() [4]float64 {
	xr := g.XRange()
	yr := g.YRange()
	return [4]float64{
		math.Min(xr[0], xr[1]),
		math.Min(yr[0], yr[1]),
		math.Max(xr[0], xr[1]),
		math.Max(yr[0], yr[1]),
	}
}

// XCoords - projected x of each column's pixel centre
func (g Grid) XCoords() []float64 {
	result := make([]float64, g.XDim)
	for c := range result {
		result[c] = g.X0 + (float64(c)+0.5)*g.PixelX
	}
	return result
}

// YCoords - projected y of each row's pixel centre
func (g Grid) YCoords() []float64 {
	result := make([]float64, g.YDim)
	for c := range result {
		result[c] = g.Y0 + (float64(c)+0.5)*g.PixelY
	}
	return result
}

// Same - true if both grids describe the same pixels
func (g Grid) Same(other Grid) bool {
	const tol = 1e-6
	return g.Proj4 == other.Proj4 && g.XDim == other.XDim && g.YDim == other.YDim &&
		math.Abs(g.X0-other.X0) < tol && math.Abs(g.Y0-other.Y0) < tol &&
		math.Abs(g.PixelX-other.PixelX) < tol && math.Abs(g.PixelY-other.PixelY) < tol
}

func (g Grid) String() string {
	return fmt.Sprintf("%vx%v px=(%v,%v) origin=(%v,%v) %v", g.XDim, g.YDim, g.PixelX, g.PixelY, g.X0, g.Y0, g.Proj4)
}

var zoneRegex = regexp.MustCompile(`\+zone=(\d+)`)

func ZoneFromProj4(proj4 string) int {
	m := zoneRegex.FindStringSubmatch(proj4)
	if len(m) < 2 {
		return 0
	}
	zone, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return zone
}

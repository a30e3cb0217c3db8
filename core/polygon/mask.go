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

package polygon

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/projection"
)

// Rasterise marks each pixel of the grid whose centre is outside the (projected) polygons.
// Result is row-major, true = outside
func Rasterise(projected orb.MultiPolygon, g projection.Grid) []bool {
	mask := make([]bool, g.PixelCount())
	bound := projected.Bound()

	xs := g.XCoords()
	ys := g.YCoords()
	for r, y := range ys {
		for c, x := range xs {
			pt := orb.Point{x, y}
			mask[r*g.XDim+c] = !bound.Contains(pt) || !planar.MultiPolygonContains(projected, pt)
		}
	}
	return mask
}

// BuildMask reads the polygon file and rasterises it on the grid. Any failure comes back as a
// KindPolygon error so callers can carry on without clipping
func BuildMask(fs fileaccess.FileAccess, bucket string, path string, g projection.Grid) ([]bool, error) {
	mp, err := Load(fs, bucket, path)
	if err != nil {
		return nil, errorwithkind.MakePolygonError(err, path)
	}

	projected, err := Project(mp, g.Proj4)
	if err != nil {
		return nil, errorwithkind.MakePolygonError(err, path)
	}

	return Rasterise(projected, g), nil
}

// LoadEnvelope reads the polygon file and returns its lon/lat envelope as a limit
func LoadEnvelope(fs fileaccess.FileAccess, bucket string, path string) (projection.Limit, error) {
	mp, err := Load(fs, bucket, path)
	if err != nil {
		return projection.Limit{}, errorwithkind.MakePolygonError(err, path)
	}
	return Envelope(mp), nil
}

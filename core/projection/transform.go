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
	"github.com/ctessum/geom/proj"
	"github.com/pkg/errors"
)

const lonLatProj4 = "+proj=longlat +datum=WGS84 +no_defs"

// Transforms between geographic lon/lat (degrees) and a projected coordinate system
type Transforms struct {
	ToProjected proj.Transformer
	ToLonLat    proj.Transformer
}

func MakeTransforms(proj4 string) (Transforms, error) {
	lonLatSR, err := proj.Parse(lonLatProj4)
	if err != nil {
		return Transforms{}, errors.Wrap(err, "while parsing lon/lat projection")
	}
	gridSR, err := proj.Parse(proj4)
	if err != nil {
		return Transforms{}, errors.Wrapf(err, "while parsing projection %v", proj4)
	}

	fwd, err := lonLatSR.NewTransform(gridSR)
	if err != nil {
		return Transforms{}, errors.Wrap(err, "while creating lon/lat to grid transform")
	}
	inv, err := gridSR.NewTransform(lonLatSR)
	if err != nil {
		return Transforms{}, errors.Wrap(err, "while creating grid to lon/lat transform")
	}
	return Transforms{ToProjected: fwd, ToLonLat: inv}, nil
}

// Geolocation returns lon and lat of every pixel centre, row-major
func Geolocation(g Grid) ([]float64, []float64, error) {
	t, err := MakeTransforms(g.Proj4)
	if err != nil {
		return nil, nil, err
	}

	xs := g.XCoords()
	ys := g.YCoords()
	lon := make([]float64, g.PixelCount())
	lat := make([]float64, g.PixelCount())
	for r, y := range ys {
		for c, x := range xs {
			lo, la, err := t.ToLonLat(x, y)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "pixel %v,%v", c, r)
			}
			lon[r*g.XDim+c] = lo
			lat[r*g.XDim+c] = la
		}
	}
	return lon, lat, nil
}

// ProjectedCoordinates returns projected x and y of every pixel centre, row-major
func ProjectedCoordinates(g Grid) ([]float64, []float64) {
	xs := g.XCoords()
	ys := g.YCoords()
	xm := make([]float64, g.PixelCount())
	ym := make([]float64, g.PixelCount())
	for r, y := range ys {
		for c, x := range xs {
			xm[r*g.XDim+c] = x
			ym[r*g.XDim+c] = y
		}
	}
	return xm, ym
}

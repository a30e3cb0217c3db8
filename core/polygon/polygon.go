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

// Region polygons: reading them, their lon/lat envelope, and rasterising them onto an output grid
package polygon

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/projection"
)

// Load reads a polygon file in lon/lat. GeoJSON (geometry, feature or feature collection) and WKT
// are supported, every polygon found is returned as one multipolygon
func Load(fs fileaccess.FileAccess, bucket string, path string) (orb.MultiPolygon, error) {
	data, err := fs.ReadObject(bucket, path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".wkt" || ext == ".txt" {
		return parseWKT(string(data))
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		return parseGeoJSON([]byte(trimmed))
	}
	return parseWKT(trimmed)
}

func parseWKT(text string) (orb.MultiPolygon, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return collectPolygons([]orb.Geometry{g})
}

func parseGeoJSON(data []byte) (orb.MultiPolygon, error) {
	peek := struct {
		Type string `json:"type"`
	}{}
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, err
	}

	geoms := []orb.Geometry{}
	switch peek.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, g.Geometry())
	}

	return collectPolygons(geoms)
}

func collectPolygons(geoms []orb.Geometry) (orb.MultiPolygon, error) {
	result := orb.MultiPolygon{}
	for _, g := range geoms {
		switch v := g.(type) {
		case orb.Polygon:
			result = append(result, v)
		case orb.MultiPolygon:
			result = append(result, v...)
		case orb.Collection:
			sub, err := collectPolygons(v)
			if err == nil {
				result = append(result, sub...)
			}
		case orb.Bound:
			result = append(result, v.ToPolygon())
		}
	}

	if len(result) <= 0 {
		return nil, fmt.Errorf("no polygons found")
	}
	return result, nil
}

// Envelope - lon/lat bounding box of the polygons as a limit
func Envelope(mp orb.MultiPolygon) projection.Limit {
	b := mp.Bound()
	return projection.Limit{b.Bottom(), b.Left(), b.Top(), b.Right()}
}

// Project moves lon/lat polygons into a grid's projected coordinates
func Project(mp orb.MultiPolygon, proj4 string) (orb.MultiPolygon, error) {
	t, err := projection.MakeTransforms(proj4)
	if err != nil {
		return nil, err
	}

	var projErr error
	projected := project.MultiPolygon(orb.Clone(mp).(orb.MultiPolygon), func(pt orb.Point) orb.Point {
		x, y, err := t.ToProjected(pt[0], pt[1])
		if err != nil && projErr == nil {
			projErr = errors.Wrapf(err, "projecting %v", pt)
		}
		return orb.Point{x, y}
	})

	if projErr != nil {
		return nil, projErr
	}
	return projected, nil
}

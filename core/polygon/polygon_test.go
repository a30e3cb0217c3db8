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
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/projection"
)

func printMask(mask []bool, xDim int) {
	for c := 0; c < len(mask); c += xDim {
		line := ""
		for _, outside := range mask[c : c+xDim] {
			if outside {
				line += "#"
			} else {
				line += "."
			}
		}
		fmt.Println(line)
	}
}

func Example_rasterise() {
	g := projection.Grid{X0: 0, Y0: 4, PixelX: 1, PixelY: -1, XDim: 5, YDim: 4}
	square := orb.MultiPolygon{{{{1, 1}, {3, 1}, {3, 3}, {1, 3}, {1, 1}}}}
	printMask(Rasterise(square, g), g.XDim)

	// Output:
	// #####
	// #..##
	// #..##
	// #####
}

func Example_load() {
	root, _ := os.MkdirTemp("", "polygon")
	defer os.RemoveAll(root)

	fs := &fileaccess.FSAccess{}
	fs.WriteObject(root, "feature.geojson", []byte(`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[110,30],[111,30],[111,31],[110,31],[110,30]]]}}`))
	fs.WriteObject(root, "collection.json", []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[110,30],[111,30],[111,31],[110,30]]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}},
		{"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[[[[112,29],[113,29],[113,30],[112,29]]]]}}]}`))
	fs.WriteObject(root, "region.wkt", []byte("POLYGON((115 20, 116 20, 116 22, 115 20))"))
	fs.WriteObject(root, "point.wkt", []byte("POINT(1 2)"))
	fs.WriteObject(root, "broken.json", []byte(`{"type":`))

	for _, name := range []string{"feature.geojson", "collection.json", "region.wkt", "point.wkt", "broken.json", "missing.json"} {
		mp, err := Load(fs, root, name)
		if err != nil {
			fmt.Printf("%v: error\n", name)
			continue
		}
		fmt.Printf("%v: %v polygons, envelope %v\n", name, len(mp), Envelope(mp))
	}

	// Output:
	// feature.geojson: 1 polygons, envelope [30 110 31 111]
	// collection.json: 2 polygons, envelope [29 110 31 113]
	// region.wkt: 1 polygons, envelope [20 115 22 116]
	// point.wkt: error
	// broken.json: error
	// missing.json: error
}

func Example_buildMask() {
	root, _ := os.MkdirTemp("", "polygon")
	defer os.RemoveAll(root)

	fs := &fileaccess.FSAccess{}
	fs.WriteObject(root, "box.wkt", []byte("POLYGON((100.1 29.1, 100.3 29.1, 100.3 29.3, 100.1 29.3, 100.1 29.1))"))

	// 0.1 degree pixels, lon 100..100.5, lat 29..29.4
	g := projection.MakeGrid("+proj=longlat +datum=WGS84 +no_defs", [6]float64{100, 0.1, 0, 29.4, 0, -0.1}, 5, 4)
	mask, err := BuildMask(fs, root, "box.wkt", g)
	fmt.Println(err)
	printMask(mask, g.XDim)

	_, err = BuildMask(fs, root, "nothere.wkt", g)
	fmt.Println(errorwithkind.KindOf(err), strings.HasPrefix(err.Error(), "polygon nothere.wkt"))

	limit, err := LoadEnvelope(fs, root, "box.wkt")
	fmt.Println(limit, err)

	// Output:
	// <nil>
	// #####
	// #..##
	// #..##
	// #####
	// polygon true
	// [29.1 100.1 29.3 100.3] <nil>
}

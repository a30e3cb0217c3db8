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

package netcdf

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/projection"
)

func Example_attributeBuilder() {
	b := NewAttributeBuilder().Set("sensor", "SDGSAT-1_MII").Set("sza", 35.5).Set("dims", []int{2, 3})
	frozen := b.Freeze()

	// Changes after freezing don't show up in the frozen copy
	b.Set("sensor", "changed").Set("extra", 1)

	fmt.Println(frozen.Keys(), frozen.Len())
	fmt.Println(frozen.String("sensor"), frozen.Float64s("sza"), frozen.Float64s("dims"))
	_, ok := frozen.Get("extra")
	fmt.Println(ok, b.Freeze().String("sensor"), b.Freeze().Keys())

	// Output:
	// [sensor sza dims] 3
	// SDGSAT-1_MII [35.5] [2 3]
	// false changed [sensor sza dims extra]
}

func Example_quantise() {
	fmt.Println(Quantise([]float64{1.23456, -0.5, math.NaN(), 100.001}, 2))

	// Output:
	// [1.234375 -0.5 NaN 100]
}

func Example_cdfWriter() {
	dir, _ := os.MkdirTemp("", "netcdf")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "out", "scene_L1R.nc")

	log := &logger.MemLogger{}
	w := NewCDFWriter(log)

	grid := projection.MakeGrid("+proj=utm +zone=50 +datum=WGS84 +units=m +no_defs", [6]float64{500000, 30, 0, 3500000, 0, -30}, 3, 2)
	gatts := NewAttributeBuilder().Set("sensor", "SDGSAT-1_MII").Set("se_distance", 0.9853).Freeze()

	err := w.Write(path, "lon", []float64{117, 117.1, 117.2, 117, 117.1, 117.2}, grid.Dims(), WriteOptions{
		NewFile:          true,
		GlobalAttributes: &gatts,
		Projection:       &grid,
		Double:           true,
	})
	fmt.Println(err)

	dsAtts := NewAttributeBuilder().Set("wavelength", 485.0).Freeze()
	err = w.Write(path, "rhot_485", []float64{0.1, 0.2, math.NaN(), 0.4, 0.5, 0.6}, grid.Dims(), WriteOptions{
		DatasetAttributes: &dsAtts,
		Projection:        &grid,
		Compression:       Compression{Enabled: true, Level: 4},
	})
	fmt.Println(err)

	// Wrong shape
	err = w.Write(path, "bad", []float64{1, 2}, [2]int{1, 2}, WriteOptions{})
	fmt.Println(strings.ReplaceAll(err.Error(), path, "{path}"))
	fmt.Println(w.Write(path, "bad", []float64{1, 2}, [2]int{2, 2}, WriteOptions{}))
	fmt.Println(w.Close(path))

	f, err := ReadFile(path)
	fmt.Println(err)
	fmt.Println(f.VariableNames())
	fmt.Println(f.Global.String("sensor"), f.Global.Float64s("se_distance"))

	lon, _ := f.Variable("lon")
	fmt.Println(lon.IsDouble(), lon.Float64s(), lon.Attributes.String("grid_mapping"))

	rhot, _ := f.Variable("rhot_485")
	fmt.Println(rhot.IsDouble(), rhot.Dims, rhot.Attributes.Float64s("wavelength"))
	fmt.Printf("%.2f\n", rhot.Float64s())

	x, _ := f.Variable("x")
	y, _ := f.Variable("y")
	fmt.Println(x.Float64s(), y.Float64s())

	crs, _ := f.Variable("crs")
	fmt.Println(crs.Attributes.String("grid_mapping_name"), crs.Attributes.Float64s("longitude_of_central_meridian"))

	rows, _ := f.DimLength("y")
	cols, _ := f.DimLength("x")
	fmt.Println(rows, cols, log.Lines())

	// Starting again truncates
	fmt.Println(w.Write(path, "lat", make([]float64, 6), grid.Dims(), WriteOptions{NewFile: true}))
	f, _ = ReadFile(path)
	fmt.Println(f.VariableNames(), f.Global.Len())

	// Output:
	// <nil>
	// <nil>
	// bad does not match {path}: dimension y is 2, got 1
	// bad has 2 values, expected 2x2
	// <nil>
	// <nil>
	// [crs x y lon rhot_485]
	// SDGSAT-1_MII [0.9853]
	// true [117 117.1 117.2 117 117.1 117.2] crs
	// false [y x] [485]
	// [0.10 0.20 NaN 0.40 0.50 0.60]
	// [500015 500045 500075] [3.499985e+06 3.499955e+06]
	// transverse_mercator [117]
	// 2 3 [INFO: NetCDF compression (level 4) is not available for classic format files, writing uncompressed]
	// <nil>
	// [lat] 0
}

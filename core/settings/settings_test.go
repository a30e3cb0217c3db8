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

package settings

import (
	"fmt"
	"os"
	"testing"

	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

func Example_parse() {
	s, err := Parse("SDGSAT-1_MII", Overrides{})
	fmt.Println(err, s.Verbosity, s.GainsToa, s.OffsetsToa, s.GainsParameter, s.OutputGeolocation, s.LimitBox() == nil)

	s, err = Parse("OTHER_SENSOR", Overrides{})
	fmt.Println(err, s.GainsToa, s.SolarIrradianceReference, s.DataDir, s.NetCDFCompressionLevel)

	limit := []float64{30.1, 110.2, 30.5, 110.8}
	lt := true
	stage := "Reflectance"
	s, err = Parse("SDGSAT-1_MII", Overrides{Limit: &limit, OutputLt: &lt, GainsParameter: &stage})
	fmt.Println(err, *s.LimitBox(), s.OutputLt, s.Stage())

	bad := []float64{1, 2, 3}
	_, err = Parse("SDGSAT-1_MII", Overrides{Limit: &bad})
	fmt.Println(err)

	badStage := "surface"
	_, err = Parse("SDGSAT-1_MII", Overrides{GainsParameter: &badStage})
	fmt.Println(err)

	// Output:
	// <nil> 1 [1 1 1 1 1 1 1] [0 0 0 0 0 0 0] radiance true true
	// <nil> [] Coddington2021_1_0nm data 4
	// <nil> [30.1 110.2 30.5 110.8] true reflectance
	// limit needs 4 values (S, W, N, E), got 3
	// unknown gains stage: surface
}

func Example_merge() {
	v1, v2 := 1, 2
	out := "out"
	a := Overrides{Verbosity: &v1, Output: &out}
	b := Overrides{Verbosity: &v2}

	m := a.Merge(b)
	fmt.Println(*m.Verbosity, *m.Output, m.Limit == nil)

	// a is unchanged
	fmt.Println(*a.Verbosity)

	// Output:
	// 2 out true
	// 1
}

func Example_fromLookup() {
	env := map[string]string{
		"L1R_SETTING_limit":         "30.1, 110.2,30.5,110.8",
		"L1R_SETTING_extend_region": "true",
		"L1R_SETTING_verbosity":     "3",
		"L1R_SETTING_region_name":   "taihu",
		"OTHER":                     "ignored",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	o, err := fromLookup(lookup)
	fmt.Println(err, *o.Limit, *o.ExtendRegion, *o.Verbosity, *o.RegionName, o.OutputLt == nil)

	env["L1R_SETTING_output_lt"] = "maybe"
	_, err = fromLookup(lookup)
	fmt.Println(err)

	// Output:
	// <nil> [30.1 110.2 30.5 110.8] true 3 taihu true
	// L1R_SETTING_output_lt: strconv.ParseBool: parsing "maybe": invalid syntax
}

func TestLoadFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "settings")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fs := &fileaccess.FSAccess{}
	fs.WriteObject(dir, "user.toml", []byte("limit = [30.1, 110.2, 30.5, 110.8]\noutput_xy = true\nnetcdf_compression_least_significant_digit = 4\n"))
	fs.WriteObject(dir, "user.json", []byte(`{"polygon": "lake.geojson", "gains": true}`))
	fs.WriteObject(dir, "typo.toml", []byte("extnd_region = true\n"))

	o, err := LoadFile(fs, dir, "user.toml")
	if err != nil {
		t.Fatal(err)
	}
	s := Defaults().Apply(o)
	if len(s.Limit) != 4 || !s.OutputXY || s.NetCDFCompressionLeastSignificantDigit != 4 || !s.OutputGeolocation {
		t.Errorf("unexpected settings from toml: %+v", s)
	}

	o, err = LoadFile(fs, dir, "user.json")
	if err != nil {
		t.Fatal(err)
	}
	s = Defaults().Apply(o)
	if s.Polygon != "lake.geojson" || !s.Gains || len(s.Limit) != 0 {
		t.Errorf("unexpected settings from json: %+v", s)
	}

	if _, err := LoadFile(fs, dir, "typo.toml"); err == nil {
		t.Error("expected error for unknown setting")
	}
	if _, err := LoadFile(fs, dir, "missing.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

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

package spectral

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

const testResponse = `# two band test sensor
; 1
0.40 0.0
0.50 1.0
0.60 0.0
; 2
0.70 0.0
0.75 1.0
0.80 0.0
`

func makeFlatSolar(value float64) *SolarSpectrum {
	s := &SolarSpectrum{Name: "flat"}
	for w := 300.0; w <= 900.0; w += 10 {
		s.WaveNm = append(s.WaveNm, w)
		s.Value = append(s.Value, value)
	}
	return s
}

func Example_parseResponse() {
	rsr, err := ParseResponse("TEST_SENSOR", strings.Split(testResponse, "\n"))
	fmt.Printf("%v|%v\n", rsr.Bands, err)
	for _, name := range rsr.Bands {
		b, ok := rsr.Band(name)
		fmt.Printf("%v %v %.1f %v\n", name, ok, b.WaveNm, b.WaveName)
	}
	_, ok := rsr.Band("3")
	fmt.Println(ok)

	_, err = ParseResponse("BAD", []string{"0.4 0.1"})
	fmt.Println(err)
	_, err = ParseResponse("BAD", []string{"; 1", "0.5 1", "0.4 1"})
	fmt.Println(err)
	_, err = ParseResponse("BAD", []string{"# nothing"})
	fmt.Println(err)

	// Output:
	// [1 2]|<nil>
	// 1 true 500.0 500
	// 2 true 750.0 750
	// false
	// line 1: response values before first band header
	// sensor BAD: band 1 wavelengths not increasing at 0.4
	// no bands found in response for BAD
}

func Example_bandIrradiance() {
	rsr, _ := ParseResponse("TEST_SENSOR", strings.Split(testResponse, "\n"))

	f0, err := Irradiance(makeFlatSolar(150), rsr)
	fmt.Printf("%.3f %.3f %v\n", f0["1"], f0["2"], err)

	// Spectrum rising with wavelength, symmetric band response gives the value at the centre
	rising := makeFlatSolar(0)
	for c, w := range rising.WaveNm {
		rising.Value[c] = w
	}
	b, _ := rsr.Band("1")
	v, err := BandIrradiance(rising, b)
	fmt.Printf("%.3f %v\n", v, err)

	outside := &SolarSpectrum{Name: "uv", WaveNm: []float64{200, 250}, Value: []float64{1, 1}}
	_, err = BandIrradiance(outside, b)
	fmt.Println(err)

	// Output:
	// 1500.000 1500.000 <nil>
	// 5000.000 <nil>
	// band 1 does not overlap solar spectrum uv
}

func TestParseSolarSpectrum(t *testing.T) {
	s, err := ParseSolarSpectrum("ref", []string{"; header", "# nm value", "", "400 1.5", "410 1.6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.WaveNm) != 2 || s.Value[1] != 1.6 {
		t.Errorf("unexpected spectrum: %+v", s)
	}

	if _, err := ParseSolarSpectrum("ref", []string{"400 1", "390 1"}); err == nil {
		t.Error("expected error for decreasing wavelengths")
	}
	if _, err := ParseSolarSpectrum("ref", []string{"400 abc"}); err == nil {
		t.Error("expected error for bad value")
	}
}

func TestLibraryCaches(t *testing.T) {
	dataDir, err := os.MkdirTemp("", "spectral")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dataDir)

	fs := &fileaccess.FSAccess{}
	if err := fs.WriteObject(dataDir, "RSR/TEST_SENSOR.txt", []byte(testResponse)); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteObject(dataDir, "Solar/flat.txt", []byte("400 1\n500 1\n600 1\n")); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(fs, dataDir)
	r1, err := lib.Response("TEST_SENSOR")
	if err != nil {
		t.Fatal(err)
	}

	// Remove the files, cached values must still be returned
	os.RemoveAll(dataDir)

	r2, err := lib.Response("TEST_SENSOR")
	if err != nil || r1 != r2 {
		t.Errorf("expected cached response, got %v %v", r2, err)
	}

	if _, err := lib.Solar("flat"); err == nil {
		t.Error("expected error reading removed solar reference")
	}
	if _, err := lib.Response("MISSING"); err == nil {
		t.Error("expected error for missing sensor")
	}
}

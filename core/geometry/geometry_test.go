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

package geometry

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/spectral"
)

func TestRelativeAzimuthRange(t *testing.T) {
	for saa := -720.0; saa <= 720; saa += 7.5 {
		for vaa := -360.0; vaa <= 360; vaa += 45 {
			raa := RelativeAzimuth(saa, vaa)
			if raa < 0 || raa > 180 {
				t.Fatalf("raa(%v, %v) = %v out of range", saa, vaa, raa)
			}

			for _, shift := range []float64{-360, 360, 720} {
				if d := math.Abs(RelativeAzimuth(saa+shift, vaa) - raa); d > 1e-9 {
					t.Fatalf("raa(%v+%v, %v) changed by %v", saa, shift, vaa, d)
				}
				if d := math.Abs(RelativeAzimuth(saa, vaa+shift) - raa); d > 1e-9 {
					t.Fatalf("raa(%v, %v+%v) changed by %v", saa, vaa, shift, d)
				}
			}
		}
	}
}

func Example_relativeAzimuth() {
	fmt.Println(RelativeAzimuth(120, 0))
	fmt.Println(RelativeAzimuth(250, 0))
	fmt.Println(RelativeAzimuth(10, 350))
	fmt.Println(RelativeAzimuth(-90, 0))

	// Output:
	// 120
	// 110
	// 20
	// 90
}

func Example_earthSunDistance() {
	// Near perihelion in early January, aphelion in early July
	fmt.Printf("%.4f\n", EarthSunDistance(3))
	fmt.Printf("%.4f\n", EarthSunDistance(185))

	// Output:
	// 0.9833
	// 1.0167
}

func Example_parseTime() {
	for _, s := range []string{"2022-05-12 02:57:31.123", "2022-05-12T02:57:31Z", "2022-05-12T10:57:31+08:00", "12/05/2022"} {
		t, err := ParseTime(s)
		fmt.Printf("%v|%v\n", t.Format("2006-01-02T15:04:05.000"), err)
	}

	// Output:
	// 2022-05-12T02:57:31.123|<nil>
	// 2022-05-12T02:57:31.000|<nil>
	// 2022-05-12T02:57:31.000|<nil>
	// 0001-01-01T00:00:00.000|unrecognised time: 12/05/2022
}

func makeTestSpectra() (*spectral.Response, *spectral.SolarSpectrum) {
	rsr, _ := spectral.ParseResponse("TEST", strings.Split("; 1\n0.4 0\n0.5 1\n0.6 0\n", "\n"))
	solar := &spectral.SolarSpectrum{Name: "flat", WaveNm: []float64{300, 500, 700}, Value: []float64{180, 180, 180}}
	return rsr, solar
}

func Example_resolve() {
	rsr, solar := makeTestSpectra()
	meta := map[string]string{
		KeySolarAzimuth: "250.0",
		KeySolarZenith:  "60",
		KeyCenterTime:   "2022-02-01 03:00:00.000",
	}

	g, err := Resolve(meta, rsr, solar)
	fmt.Println(err)
	fmt.Printf("sza=%v vza=%v raa=%v saa=%v vaa=%v doy=%v\n", g.SZA, g.VZA, g.RAA, g.SAA, g.VAA, g.DOY)
	fmt.Printf("mus=%.4f d=%.4f f0=%.1f\n", g.MuS, g.SEDistance, g.F0["1"])

	delete(meta, KeySolarZenith)
	_, err = Resolve(meta, rsr, solar)
	fmt.Printf("%v|%v\n", err, errorwithkind.KindOf(err))

	meta[KeySolarZenith] = "abc"
	_, err = Resolve(meta, rsr, solar)
	fmt.Println(err != nil)

	// Output:
	// <nil>
	// sza=60 vza=5 raa=110 saa=250 vaa=0 doy=32
	// mus=0.5000 d=0.9853 f0=1800.0
	// metadata missing SolarZenith|fatal
	// true
}

func Example_sensorID() {
	id, err := SensorID(map[string]string{KeySatelliteID: "SDGSAT-1", KeySensorID: " MII"})
	fmt.Printf("%q|%v\n", id, err)
	id, err = SensorID(map[string]string{KeySatelliteID: "SDGSAT-1"})
	fmt.Printf("%q|%v\n", id, err)

	// Output:
	// "SDGSAT-1_MII"|<nil>
	// ""|metadata missing SatelliteID or SensorID
}

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

// Solar and view geometry of an acquisition, derived from its metadata
package geometry

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/spectral"
)

// Metadata keys we read
const (
	KeySatelliteID  = "SatelliteID"
	KeySensorID     = "SensorID"
	KeySolarAzimuth = "SolarAzimuth"
	KeySolarZenith  = "SolarZenith"
	KeyCenterTime   = "CenterTime-Acamera"
)

// The sensor views close to nadir, metadata carries no per-scene view angles
const (
	ViewZenith  = 5.0
	ViewAzimuth = 0.0
)

type Geometry struct {
	Time       time.Time
	SZA        float64
	VZA        float64
	RAA        float64
	SAA        float64
	VAA        float64
	DOY        int
	SEDistance float64
	MuS        float64

	// Band irradiance from convolving the solar reference with each band response
	F0 map[string]float64
}

// RelativeAzimuth returns |saa-vaa| folded into [0, 180]
func RelativeAzimuth(saa float64, vaa float64) float64 {
	raa := math.Abs(saa - vaa)
	for raa > 180 {
		raa = math.Abs(raa - 360)
	}
	return raa
}

// EarthSunDistance in astronomical units for a day of year
func EarthSunDistance(doy float64) float64 {
	a := 2 * math.Pi * (0.9856002831*doy - 3.4532868) / 360
	return 1.00014 - 0.01671*math.Cos(a) - 0.00014*math.Cos(2*a)
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02",
}

// ParseTime reads acquisition timestamps. Times without a zone are UTC
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised time: %v", value)
}

func requireFloat(meta map[string]string, key string) (float64, error) {
	str, ok := meta[key]
	if !ok {
		return 0, errorwithkind.MakeKindError(errorwithkind.KindFatal, errors.Errorf("metadata missing %v", key))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, errorwithkind.MakeKindError(errorwithkind.KindFatal, errors.Wrapf(err, "metadata %v", key))
	}
	return v, nil
}

// Resolve works out the geometry of a scene. Missing solar angles or acquisition time are fatal
func Resolve(meta map[string]string, rsr *spectral.Response, solar *spectral.SolarSpectrum) (Geometry, error) {
	saa, err := requireFloat(meta, KeySolarAzimuth)
	if err != nil {
		return Geometry{}, err
	}
	sza, err := requireFloat(meta, KeySolarZenith)
	if err != nil {
		return Geometry{}, err
	}

	timeStr, ok := meta[KeyCenterTime]
	if !ok {
		return Geometry{}, errorwithkind.MakeKindError(errorwithkind.KindFatal, errors.Errorf("metadata missing %v", KeyCenterTime))
	}
	t, err := ParseTime(timeStr)
	if err != nil {
		return Geometry{}, errorwithkind.MakeKindError(errorwithkind.KindFatal, err)
	}

	f0, err := spectral.Irradiance(solar, rsr)
	if err != nil {
		return Geometry{}, err
	}

	doy := t.YearDay()
	return Geometry{
		Time:       t,
		SZA:        sza,
		VZA:        ViewZenith,
		RAA:        RelativeAzimuth(saa, ViewAzimuth),
		SAA:        saa,
		VAA:        ViewAzimuth,
		DOY:        doy,
		SEDistance: EarthSunDistance(float64(doy)),
		MuS:        math.Cos(sza * math.Pi / 180),
		F0:         f0,
	}, nil
}

// SensorID - satellite and sensor identifiers joined, eg SDGSAT-1_MII
func SensorID(meta map[string]string) (string, error) {
	sat, ok1 := meta[KeySatelliteID]
	sensor, ok2 := meta[KeySensorID]
	if !ok1 || !ok2 {
		return "", errorwithkind.MakeKindError(errorwithkind.KindFatal, errors.Errorf("metadata missing %v or %v", KeySatelliteID, KeySensorID))
	}
	return strings.TrimSpace(sat) + "_" + strings.TrimSpace(sensor), nil
}

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

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// SolarSpectrum is a reference top-of-atmosphere solar irradiance spectrum
type SolarSpectrum struct {
	Name   string
	WaveNm []float64
	Value  []float64
}

// Unit conversions applied to the reference spectrum before convolution
const (
	solarWaveScale  = 1000.0 // nm -> um
	solarValueScale = 10.0
)

func ParseSolarSpectrum(name string, lines []string) (*SolarSpectrum, error) {
	result := &SolarSpectrum{Name: name}
	for c, line := range lines {
		if utils.IsCommentLine(line) {
			continue
		}
		w, v, err := parsePair(line)
		if err != nil {
			return nil, errors.Wrapf(err, "solar spectrum %v line %v", name, c+1)
		}
		if n := len(result.WaveNm); n > 0 && w <= result.WaveNm[n-1] {
			return nil, fmt.Errorf("solar spectrum %v line %v: wavelengths not increasing", name, c+1)
		}
		result.WaveNm = append(result.WaveNm, w)
		result.Value = append(result.Value, v)
	}

	if len(result.WaveNm) < 2 {
		return nil, fmt.Errorf("solar spectrum %v has too few values: %v", name, len(result.WaveNm))
	}
	return result, nil
}

// BandIrradiance convolves the reference spectrum with the band response. The band response is
// interpolated onto the spectrum's wavelengths (zero outside the band) and the result is the
// response-weighted mean of the scaled spectrum.
func BandIrradiance(solar *SolarSpectrum, band BandResponse) (float64, error) {
	pl := interp.PiecewiseLinear{}
	if err := pl.Fit(band.Wave, band.Response); err != nil {
		return 0, errors.Wrapf(err, "band %v", band.Band)
	}

	lo := band.Wave[0]
	hi := band.Wave[len(band.Wave)-1]

	weights := make([]float64, len(solar.WaveNm))
	values := make([]float64, len(solar.WaveNm))
	for c, w := range solar.WaveNm {
		um := w / solarWaveScale
		values[c] = solar.Value[c] * solarValueScale
		if um < lo || um > hi {
			continue
		}
		weights[c] = pl.Predict(um)
	}

	total := floats.Sum(weights)
	if total <= 0 {
		return 0, fmt.Errorf("band %v does not overlap solar spectrum %v", band.Band, solar.Name)
	}
	return floats.Dot(values, weights) / total, nil
}

// Irradiance returns the band irradiance for every band in the response
func Irradiance(solar *SolarSpectrum, rsr *Response) (map[string]float64, error) {
	result := map[string]float64{}
	for _, name := range rsr.Bands {
		band, _ := rsr.Band(name)
		f0, err := BandIrradiance(solar, band)
		if err != nil {
			return nil, err
		}
		result[name] = f0
	}
	return result, nil
}

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
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/utils"
	"gonum.org/v1/gonum/floats"
)

// BandResponse is the relative spectral response of one sensor band
type BandResponse struct {
	Band     string
	Wave     []float64 // micrometres, strictly increasing
	Response []float64
	WaveNm   float64 // response-weighted centre wavelength
	WaveName string
}

// Response describes every band of a sensor, in the order the bands appear in the response file
type Response struct {
	Sensor string
	Bands  []string
	byBand map[string]BandResponse
}

func (r *Response) Band(name string) (BandResponse, bool) {
	b, ok := r.byBand[name]
	return b, ok
}

// ParseResponse reads a response file. Each band starts with a header line "; <band>", followed by
// "<wavelength um> <response>" lines. Lines starting with # are ignored.
func ParseResponse(sensor string, lines []string) (*Response, error) {
	result := &Response{Sensor: sensor, Bands: []string{}, byBand: map[string]BandResponse{}}

	current := ""
	waves := map[string][]float64{}
	resp := map[string][]float64{}

	for c, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, ";") {
			current = strings.TrimSpace(strings.TrimPrefix(line, ";"))
			if len(current) <= 0 {
				return nil, fmt.Errorf("line %v: empty band name", c+1)
			}
			if utils.ItemInSlice(current, result.Bands) {
				return nil, fmt.Errorf("line %v: band %v listed twice", c+1, current)
			}
			result.Bands = append(result.Bands, current)
			continue
		}

		if len(current) <= 0 {
			return nil, fmt.Errorf("line %v: response values before first band header", c+1)
		}

		w, r, err := parsePair(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %v", c+1)
		}
		waves[current] = append(waves[current], w)
		resp[current] = append(resp[current], r)
	}

	if len(result.Bands) <= 0 {
		return nil, fmt.Errorf("no bands found in response for %v", sensor)
	}

	for _, band := range result.Bands {
		b, err := makeBandResponse(band, waves[band], resp[band])
		if err != nil {
			return nil, errors.Wrapf(err, "sensor %v", sensor)
		}
		result.byBand[band] = b
	}

	return result, nil
}

func makeBandResponse(band string, wave []float64, response []float64) (BandResponse, error) {
	if len(wave) < 2 {
		return BandResponse{}, fmt.Errorf("band %v needs at least 2 response values, got %v", band, len(wave))
	}
	for c := 1; c < len(wave); c++ {
		if wave[c] <= wave[c-1] {
			return BandResponse{}, fmt.Errorf("band %v wavelengths not increasing at %v", band, wave[c])
		}
	}

	total := floats.Sum(response)
	if total <= 0 {
		return BandResponse{}, fmt.Errorf("band %v has no response", band)
	}

	waveNm := floats.Dot(wave, response) / total * 1000
	return BandResponse{
		Band:     band,
		Wave:     wave,
		Response: response,
		WaveNm:   waveNm,
		WaveName: fmt.Sprintf("%.0f", waveNm),
	}, nil
}

func parsePair(line string) (float64, float64, error) {
	parts := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("expected 2 values, got: %v", line)
	}
	a, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

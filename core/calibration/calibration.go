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

// Converting raw digital numbers to TOA radiance and reflectance
package calibration

import (
	"fmt"
	"math"
	"strings"

	"github.com/sdgsat-tools/l1r/core/errorwithkind"
	"github.com/sdgsat-tools/l1r/core/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Coefficients - DN to radiance, L = DN * Gain + Bias
type Coefficients struct {
	Gain float64
	Bias float64
}

// Table - coefficients by band index
type Table map[int]Coefficients

// Stage at which an empirical correction is applied
type Stage string

const (
	StageRadiance    Stage = "radiance"
	StageReflectance Stage = "reflectance"
)

func ParseStage(s string) (Stage, error) {
	switch Stage(strings.ToLower(strings.TrimSpace(s))) {
	case StageRadiance:
		return StageRadiance, nil
	case StageReflectance:
		return StageReflectance, nil
	}
	return "", fmt.Errorf("unknown gains stage: %v", s)
}

// Correction - empirical v = Gain * v + Offset, applied at Stage
type Correction struct {
	Gain   float64
	Offset float64
	Stage  Stage
}

// The band irradiance is divided by this before use
const F0Scale = 10.0

// Input - everything needed to calibrate one band
type Input struct {
	DN           []float64
	Coefficients Coefficients
	Correction   *Correction // nil for none

	F0         float64 // band irradiance as convolved
	SEDistance float64
	MuS        []float64 // cos(sza), one or more values, the mean is used

	// Optional clip mask on the same grid as DN, true = invalidate
	Mask []bool
}

type Output struct {
	Radiance    []float64
	Reflectance []float64
}

// Calibrate runs the band through radiance then reflectance conversion. Pixels with DN 0 and pixels
// set in the mask are NaN in both outputs
func Calibrate(in Input) (Output, error) {
	if in.Mask != nil && len(in.Mask) != len(in.DN) {
		return Output{}, fmt.Errorf("mask has %v pixels, band has %v", len(in.Mask), len(in.DN))
	}
	if len(in.MuS) <= 0 {
		return Output{}, fmt.Errorf("no solar zenith cosine given")
	}
	if in.F0 <= 0 {
		return Output{}, fmt.Errorf("invalid band irradiance: %v", in.F0)
	}

	mus := stat.Mean(in.MuS, nil)

	nodata := make([]bool, len(in.DN))
	for c, dn := range in.DN {
		nodata[c] = dn == 0
	}

	radiance := Radiance(in.DN, in.Coefficients)
	if in.Correction != nil && in.Correction.Stage == StageRadiance {
		applyCorrection(radiance, *in.Correction)
	}

	reflectance := RadianceToReflectance(radiance, in.SEDistance, in.F0, mus)
	if in.Correction != nil && in.Correction.Stage == StageReflectance {
		applyCorrection(reflectance, *in.Correction)
	}

	for _, band := range [][]float64{radiance, reflectance} {
		for c := range band {
			if nodata[c] || (in.Mask != nil && in.Mask[c]) {
				band[c] = math.NaN()
			}
		}
	}

	return Output{Radiance: radiance, Reflectance: reflectance}, nil
}

func Radiance(dn []float64, coeff Coefficients) []float64 {
	result := make([]float64, len(dn))
	copy(result, dn)
	floats.Scale(coeff.Gain, result)
	floats.AddConst(coeff.Bias, result)
	return result
}

func reflectanceFactor(seDistance float64, f0 float64, mus float64) float64 {
	return math.Pi * seDistance * seDistance / (f0 / F0Scale * mus)
}

// RadianceToReflectance - rho = L * pi * d^2 / (F0/10 * mus)
func RadianceToReflectance(radiance []float64, seDistance float64, f0 float64, mus float64) []float64 {
	result := make([]float64, len(radiance))
	floats.ScaleTo(result, reflectanceFactor(seDistance, f0, mus), radiance)
	return result
}

// ReflectanceToRadiance - inverse of RadianceToReflectance
func ReflectanceToRadiance(reflectance []float64, seDistance float64, f0 float64, mus float64) []float64 {
	result := make([]float64, len(reflectance))
	floats.ScaleTo(result, 1/reflectanceFactor(seDistance, f0, mus), reflectance)
	return result
}

func applyCorrection(values []float64, corr Correction) {
	floats.Scale(corr.Gain, values)
	floats.AddConst(corr.Offset, values)
}

// BandPair - a calibration table index and the response band it is calibrated as
type BandPair struct {
	Index int
	Band  string
}

// PairBands lines up calibration entries (by ascending index) with response bands (in response
// order). Only as many bands as both have are returned
func PairBands(table Table, responseBands []string) []BandPair {
	indexes := utils.GetSortedMapKeys(table)
	n := min(len(indexes), len(responseBands))

	result := make([]BandPair, 0, n)
	for c := 0; c < n; c++ {
		result = append(result, BandPair{Index: indexes[c], Band: responseBands[c]})
	}
	return result
}

// MakeCorrections builds per-band corrections from the configured gains and offsets, which must
// have one entry per response band. A length mismatch is a precondition error, callers should
// carry on without correction
func MakeCorrections(responseBands []string, gains []float64, offsets []float64, stage Stage) (map[string]Correction, error) {
	if len(gains) != len(responseBands) || len(offsets) != len(responseBands) {
		return nil, errorwithkind.MakePreconditionError(
			"gains (%v) and offsets (%v) need one value per band (%v)", len(gains), len(offsets), len(responseBands))
	}

	result := map[string]Correction{}
	for c, band := range responseBands {
		result[band] = Correction{Gain: gains[c], Offset: offsets[c], Stage: stage}
	}
	return result, nil
}

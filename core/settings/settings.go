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

// Conversion settings: typed defaults, per-sensor defaults, user files and environment overrides
package settings

import (
	"fmt"
	"reflect"

	"github.com/sdgsat-tools/l1r/core/calibration"
	"github.com/sdgsat-tools/l1r/core/projection"
)

// Settings - every option the converter recognises
type Settings struct {
	Verbosity int    `toml:"verbosity" json:"verbosity"`
	Output    string `toml:"output" json:"output"`

	Limit        []float64 `toml:"limit" json:"limit"` // S, W, N, E
	Polygon      string    `toml:"polygon" json:"polygon"`
	PolygonLimit bool      `toml:"polygon_limit" json:"polygon_limit"`
	ExtendRegion bool      `toml:"extend_region" json:"extend_region"`

	OutputGeolocation bool `toml:"output_geolocation" json:"output_geolocation"`
	OutputXY          bool `toml:"output_xy" json:"output_xy"`
	OutputLt          bool `toml:"output_lt" json:"output_lt"`

	Gains          bool      `toml:"gains" json:"gains"`
	GainsToa       []float64 `toml:"gains_toa" json:"gains_toa"`
	OffsetsToa     []float64 `toml:"offsets_toa" json:"offsets_toa"`
	GainsParameter string    `toml:"gains_parameter" json:"gains_parameter"`

	RegionName               string `toml:"region_name" json:"region_name"`
	SolarIrradianceReference string `toml:"solar_irradiance_reference" json:"solar_irradiance_reference"`

	NetCDFProjection                       bool `toml:"netcdf_projection" json:"netcdf_projection"`
	NetCDFCompression                      bool `toml:"netcdf_compression" json:"netcdf_compression"`
	NetCDFCompressionLevel                 int  `toml:"netcdf_compression_level" json:"netcdf_compression_level"`
	NetCDFCompressionLeastSignificantDigit int  `toml:"netcdf_compression_least_significant_digit" json:"netcdf_compression_least_significant_digit"`

	DataDir string `toml:"data_dir" json:"data_dir"`
}

func Defaults() Settings {
	return Settings{
		Verbosity:                1,
		PolygonLimit:             true,
		OutputGeolocation:        true,
		GainsParameter:           string(calibration.StageRadiance),
		SolarIrradianceReference: "Coddington2021_1_0nm",
		NetCDFProjection:         true,
		NetCDFCompressionLevel:   4,
		DataDir:                  "data",
	}
}

// Overrides - settings given by a user, sensor defaults file, environment or command line. Nil
// fields were not given
type Overrides struct {
	Verbosity *int    `toml:"verbosity,omitempty" json:"verbosity,omitempty"`
	Output    *string `toml:"output,omitempty" json:"output,omitempty"`

	Limit        *[]float64 `toml:"limit,omitempty" json:"limit,omitempty"`
	Polygon      *string    `toml:"polygon,omitempty" json:"polygon,omitempty"`
	PolygonLimit *bool      `toml:"polygon_limit,omitempty" json:"polygon_limit,omitempty"`
	ExtendRegion *bool      `toml:"extend_region,omitempty" json:"extend_region,omitempty"`

	OutputGeolocation *bool `toml:"output_geolocation,omitempty" json:"output_geolocation,omitempty"`
	OutputXY          *bool `toml:"output_xy,omitempty" json:"output_xy,omitempty"`
	OutputLt          *bool `toml:"output_lt,omitempty" json:"output_lt,omitempty"`

	Gains          *bool      `toml:"gains,omitempty" json:"gains,omitempty"`
	GainsToa       *[]float64 `toml:"gains_toa,omitempty" json:"gains_toa,omitempty"`
	OffsetsToa     *[]float64 `toml:"offsets_toa,omitempty" json:"offsets_toa,omitempty"`
	GainsParameter *string    `toml:"gains_parameter,omitempty" json:"gains_parameter,omitempty"`

	RegionName               *string `toml:"region_name,omitempty" json:"region_name,omitempty"`
	SolarIrradianceReference *string `toml:"solar_irradiance_reference,omitempty" json:"solar_irradiance_reference,omitempty"`

	NetCDFProjection                       *bool `toml:"netcdf_projection,omitempty" json:"netcdf_projection,omitempty"`
	NetCDFCompression                      *bool `toml:"netcdf_compression,omitempty" json:"netcdf_compression,omitempty"`
	NetCDFCompressionLevel                 *int  `toml:"netcdf_compression_level,omitempty" json:"netcdf_compression_level,omitempty"`
	NetCDFCompressionLeastSignificantDigit *int  `toml:"netcdf_compression_least_significant_digit,omitempty" json:"netcdf_compression_least_significant_digit,omitempty"`

	DataDir *string `toml:"data_dir,omitempty" json:"data_dir,omitempty"`
}

// Merge returns o with every field set in other replacing o's
func (o Overrides) Merge(other Overrides) Overrides {
	result := o
	dst := reflect.ValueOf(&result).Elem()
	src := reflect.ValueOf(other)
	for i := 0; i < src.NumField(); i++ {
		if !src.Field(i).IsNil() {
			dst.Field(i).Set(src.Field(i))
		}
	}
	return result
}

// Apply returns s with every field set in o replacing s's. Fields are matched by name
func (s Settings) Apply(o Overrides) Settings {
	result := s
	dst := reflect.ValueOf(&result).Elem()
	src := reflect.ValueOf(o)
	for i := 0; i < src.NumField(); i++ {
		field := src.Field(i)
		if field.IsNil() {
			continue
		}
		dst.FieldByName(src.Type().Field(i).Name).Set(field.Elem())
	}
	return result
}

// Parse resolves the settings for a sensor: built in defaults, then the sensor's defaults, then
// the user's overrides
func Parse(sensor string, user Overrides) (Settings, error) {
	sensorDefaults, err := SensorDefaults(sensor)
	if err != nil {
		return Settings{}, err
	}

	result := Defaults().Apply(sensorDefaults).Apply(user)
	return result, result.Validate()
}

func (s Settings) Validate() error {
	if len(s.Limit) > 0 {
		if _, err := projection.MakeLimit(s.Limit); err != nil {
			return err
		}
	}
	if _, err := calibration.ParseStage(s.GainsParameter); err != nil {
		return err
	}
	if s.NetCDFCompressionLeastSignificantDigit < 0 {
		return fmt.Errorf("netcdf_compression_least_significant_digit must not be negative: %v", s.NetCDFCompressionLeastSignificantDigit)
	}
	return nil
}

// LimitBox - the configured limit, nil if none
func (s Settings) LimitBox() *projection.Limit {
	if len(s.Limit) <= 0 {
		return nil
	}
	l, err := projection.MakeLimit(s.Limit)
	if err != nil {
		return nil
	}
	return &l
}

func (s Settings) Stage() calibration.Stage {
	stage, _ := calibration.ParseStage(s.GainsParameter)
	return stage
}

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
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

//go:embed sensors/*.toml
var sensorFiles embed.FS

// EnvPrefix - environment variables named L1R_SETTING_<key> override settings, eg
// L1R_SETTING_limit="30.1,110.2,30.5,110.8". Lists are comma separated
const EnvPrefix = "L1R_SETTING_"

func decodeTOML(data []byte) (Overrides, error) {
	result := Overrides{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return Overrides{}, err
	}
	return result, nil
}

// SensorDefaults - settings specific to a sensor. Sensors without a defaults file get none
func SensorDefaults(sensor string) (Overrides, error) {
	data, err := sensorFiles.ReadFile("sensors/" + sensor + ".toml")
	if err != nil {
		return Overrides{}, nil
	}
	result, err := decodeTOML(data)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "sensor defaults for %v", sensor)
	}
	return result, nil
}

// LoadFile reads user settings, as JSON if the file ends in .json, otherwise TOML
func LoadFile(fs fileaccess.FileAccess, bucket string, path string) (Overrides, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		result := Overrides{}
		if err := fs.ReadJSON(bucket, path, &result, false); err != nil {
			return Overrides{}, errors.Wrapf(err, "failed to read settings %v", path)
		}
		return result, nil
	}

	data, err := fs.ReadObject(bucket, path)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "failed to read settings %v", path)
	}
	result, err := decodeTOML(data)
	if err != nil {
		return Overrides{}, errors.Wrapf(err, "failed to parse settings %v", path)
	}
	return result, nil
}

// FromEnvironment reads L1R_SETTING_* overrides
func FromEnvironment() (Overrides, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Overrides, error) {
	result := Overrides{}
	reflection := reflect.ValueOf(&result).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		key := strings.Split(reflection.Type().Field(i).Tag.Get("toml"), ",")[0]
		val, present := lookup(EnvPrefix + key)
		if !present {
			continue
		}

		field := reflection.Field(i)
		parsed, err := parseValue(field.Type().Elem(), val)
		if err != nil {
			return Overrides{}, errors.Wrapf(err, "%v%v", EnvPrefix, key)
		}
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(parsed)
		field.Set(ptr)
	}
	return result, nil
}

func parseValue(t reflect.Type, val string) (reflect.Value, error) {
	val = strings.TrimSpace(val)
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(val), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil
	case reflect.Int:
		i, err := strconv.Atoi(val)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(i), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Float64 {
			f, err := ParseFloats(val)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(f), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("unsupported setting type: %v", t)
}

// ParseFloats reads comma separated numbers, eg a limit given on a command line
func ParseFloats(val string) ([]float64, error) {
	result := []float64{}
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if len(part) <= 0 {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

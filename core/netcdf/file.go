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
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
	"github.com/pkg/errors"
)

// Variable - one named dataset of a container. Values are []float32, []float64 or []int32
type Variable struct {
	Name       string
	Dims       []string
	Attributes Attributes
	values     interface{}
}

// Float64s - the variable's values converted to float64
func (v Variable) Float64s() []float64 {
	switch vals := v.values.(type) {
	case []float64:
		result := make([]float64, len(vals))
		copy(result, vals)
		return result
	case []float32:
		result := make([]float64, len(vals))
		for c, f := range vals {
			result[c] = float64(f)
		}
		return result
	case []int32:
		result := make([]float64, len(vals))
		for c, i := range vals {
			result[c] = float64(i)
		}
		return result
	case []int16:
		result := make([]float64, len(vals))
		for c, i := range vals {
			result[c] = float64(i)
		}
		return result
	}
	return nil
}

// IsDouble - true if stored as 64 bit floats
func (v Variable) IsDouble() bool {
	_, ok := v.values.([]float64)
	return ok
}

// File - the full contents of a container
type File struct {
	dimNames   []string
	dimLengths []int
	Global     Attributes
	Variables  []Variable
}

func (f *File) DimLength(name string) (int, bool) {
	for c, n := range f.dimNames {
		if n == name {
			return f.dimLengths[c], true
		}
	}
	return 0, false
}

func (f *File) setDim(name string, length int) error {
	if existing, ok := f.DimLength(name); ok {
		if existing != length {
			return fmt.Errorf("dimension %v is %v, got %v", name, existing, length)
		}
		return nil
	}
	f.dimNames = append(f.dimNames, name)
	f.dimLengths = append(f.dimLengths, length)
	return nil
}

func (f *File) Variable(name string) (Variable, bool) {
	for _, v := range f.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

func (f *File) VariableNames() []string {
	result := make([]string, 0, len(f.Variables))
	for _, v := range f.Variables {
		result = append(result, v.Name)
	}
	return result
}

// putVariable adds or replaces a variable, keeping the order variables were first written
func (f *File) putVariable(v Variable) {
	for c, existing := range f.Variables {
		if existing.Name == v.Name {
			f.Variables[c] = v
			return
		}
	}
	f.Variables = append(f.Variables, v)
}

// ReadFile reads a whole container into memory
func ReadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	nc, err := cdf.Open(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %v", path)
	}

	result := &File{Global: readAttributes(nc.Header, "")}
	for _, name := range nc.Header.Variables() {
		dims := nc.Header.Dimensions(name)
		lengths := nc.Header.Lengths(name)

		n := 1
		for c, l := range lengths {
			n *= l
			if err := result.setDim(dims[c], l); err != nil {
				return nil, errors.Wrapf(err, "%v in %v", name, path)
			}
		}

		values := nc.Header.ZeroValue(name, n)
		if _, err := nc.Reader(name, nil, nil).Read(values); err != nil {
			return nil, errors.Wrapf(err, "failed to read %v from %v", name, path)
		}

		result.Variables = append(result.Variables, Variable{
			Name:       name,
			Dims:       dims,
			Attributes: readAttributes(nc.Header, name),
			values:     values,
		})
	}

	return result, nil
}

func readAttributes(h *cdf.Header, variable string) Attributes {
	b := NewAttributeBuilder()
	for _, a := range h.Attributes(variable) {
		b.Set(a, h.GetAttribute(variable, a))
	}
	return b.Freeze()
}

// writeFile writes the container to a temporary file next to path, then moves it into place
func writeFile(path string, f *File) error {
	h := cdf.NewHeader(f.dimNames, f.dimLengths)

	for _, k := range f.Global.keys {
		if v, ok := toCDF(f.Global.values[k]); ok {
			h.AddAttribute("", k, v)
		}
	}

	for _, v := range f.Variables {
		h.AddVariable(v.Name, v.Dims, zeroOfType(v.values))
		for _, k := range v.Attributes.keys {
			if val, ok := toCDF(v.Attributes.values[k]); ok {
				h.AddAttribute(v.Name, k, val)
			}
		}
	}
	h.Define()

	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	err = writeVariables(out, h, f)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write %v", path)
	}

	return os.Rename(tmpPath, path)
}

func writeVariables(out *os.File, h *cdf.Header, f *File) error {
	nc, err := cdf.Create(out, h)
	if err != nil {
		return err
	}

	for _, v := range f.Variables {
		end := nc.Header.Lengths(v.Name)
		start := make([]int, len(end))
		if _, err := nc.Writer(v.Name, start, end).Write(v.values); err != nil {
			return errors.Wrapf(err, "variable %v", v.Name)
		}
	}
	return nil
}

func zeroOfType(values interface{}) interface{} {
	switch values.(type) {
	case []float64:
		return []float64{0}
	case []int32:
		return []int32{0}
	case []int16:
		return []int16{0}
	}
	return []float32{0}
}

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
	"strings"
)

// Attributes - an immutable, ordered set of named attribute values. Build them with an
// AttributeBuilder
type Attributes struct {
	keys   []string
	values map[string]interface{}
}

func (a Attributes) Get(key string) (interface{}, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys - in the order they were first set
func (a Attributes) Keys() []string {
	result := make([]string, len(a.keys))
	copy(result, a.keys)
	return result
}

func (a Attributes) Len() int {
	return len(a.keys)
}

// String - attribute as a string, numbers are formatted
func (a Attributes) String(key string) string {
	v, ok := a.values[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Float64s - numeric attribute as float64 values
func (a Attributes) Float64s(key string) []float64 {
	switch v := a.values[key].(type) {
	case float64:
		return []float64{v}
	case []float64:
		return v
	case []float32:
		result := make([]float64, len(v))
		for c, f := range v {
			result[c] = float64(f)
		}
		return result
	case int:
		return []float64{float64(v)}
	case []int:
		result := make([]float64, len(v))
		for c, i := range v {
			result[c] = float64(i)
		}
		return result
	case []int32:
		result := make([]float64, len(v))
		for c, i := range v {
			result[c] = float64(i)
		}
		return result
	case []int16:
		result := make([]float64, len(v))
		for c, i := range v {
			result[c] = float64(i)
		}
		return result
	}
	return nil
}

// AttributeBuilder accumulates attributes, Freeze returns a copy that later Set calls don't affect
type AttributeBuilder struct {
	keys   []string
	values map[string]interface{}
}

func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{values: map[string]interface{}{}}
}

// Set - supported values are strings, bools, ints, floats and slices of ints/floats/strings
func (b *AttributeBuilder) Set(key string, value interface{}) *AttributeBuilder {
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
	return b
}

// SetAll copies every attribute across
func (b *AttributeBuilder) SetAll(attrs Attributes) *AttributeBuilder {
	for _, k := range attrs.keys {
		b.Set(k, attrs.values[k])
	}
	return b
}

func (b *AttributeBuilder) Freeze() Attributes {
	result := Attributes{
		keys:   make([]string, len(b.keys)),
		values: make(map[string]interface{}, len(b.values)),
	}
	copy(result.keys, b.keys)
	for k, v := range b.values {
		result.values[k] = v
	}
	return result
}

// toCDF converts attribute values to the types the container stores. Empty values are not stored
func toCDF(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case string:
		return v, len(v) > 0
	case bool:
		if v {
			return []int32{1}, true
		}
		return []int32{0}, true
	case int:
		return []int32{int32(v)}, true
	case int32:
		return []int32{v}, true
	case float32:
		return []float32{v}, true
	case float64:
		return []float64{v}, true
	case []int:
		result := make([]int32, len(v))
		for c, i := range v {
			result[c] = int32(i)
		}
		return result, len(v) > 0
	case []int16:
		return v, len(v) > 0
	case []int32:
		return v, len(v) > 0
	case []float32:
		return v, len(v) > 0
	case []float64:
		return v, len(v) > 0
	case []string:
		joined := strings.Join(v, ",")
		return joined, len(joined) > 0
	}
	s := fmt.Sprintf("%v", value)
	return s, len(s) > 0
}

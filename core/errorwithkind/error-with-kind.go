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

package errorwithkind

import (
	"fmt"

	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Typed conversion errors
// Each collaborator (raster reads, polygon rasterisation, grid resolution, output writes) returns
// one of these so the conversion loop can decide whether to skip, fall back or stop.

// Kind - what the conversion loop should do about an error
type Kind int

const (
	// KindFatal - propagates and terminates the run
	KindFatal Kind = iota
	// KindPrecondition - an optional feature's inputs don't line up, feature disabled
	KindPrecondition
	// KindOutOfBounds - requested limit doesn't intersect the scene, scene skipped
	KindOutOfBounds
	// KindPolygon - region polygon unusable, clipping disabled
	KindPolygon
)

var kindNames = map[Kind]string{
	KindFatal:        "fatal",
	KindPrecondition: "precondition",
	KindOutOfBounds:  "out-of-bounds",
	KindPolygon:      "polygon",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Error - an error that knows its Kind
type Error interface {
	error
	Kind() Kind
}

// KindError - error with an associated Kind
type KindError struct {
	K   Kind
	Err error
}

func (ke KindError) Error() string {
	return ke.Err.Error()
}

func (ke KindError) Kind() Kind {
	return ke.K
}

// Unwrap - so errors.Is/As can see through us
func (ke KindError) Unwrap() error {
	return ke.Err
}

// Cause - for github.com/pkg/errors.Cause
func (ke KindError) Cause() error {
	return ke.Err
}

func MakeKindError(kind Kind, err error) KindError {
	return KindError{K: kind, Err: err}
}

func MakePreconditionError(format string, a ...interface{}) KindError {
	return KindError{K: KindPrecondition, Err: fmt.Errorf(format, a...)}
}

func MakeOutOfBoundsError(format string, a ...interface{}) KindError {
	return KindError{K: KindOutOfBounds, Err: fmt.Errorf(format, a...)}
}

func MakePolygonError(err error, polygonPath string) KindError {
	return KindError{K: KindPolygon, Err: errors.Wrapf(err, "polygon %v", polygonPath)}
}

// KindOf - Finds the Kind of an error, looking through wrapping. Anything unknown is fatal
func KindOf(err error) Kind {
	if err == nil {
		return KindFatal
	}
	var ke Error
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return KindFatal
}

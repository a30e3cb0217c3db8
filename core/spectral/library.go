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
	"path"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

// Library loads response and solar reference files from a data directory, caching them by name.
// Response files live at RSR/<sensor>.txt and solar references at Solar/<name>.txt
type Library struct {
	fs      fileaccess.FileAccess
	dataDir string

	mu       sync.Mutex
	response map[string]*Response
	solar    map[string]*SolarSpectrum
}

func NewLibrary(fs fileaccess.FileAccess, dataDir string) *Library {
	return &Library{
		fs:       fs,
		dataDir:  dataDir,
		response: map[string]*Response{},
		solar:    map[string]*SolarSpectrum{},
	}
}

func (l *Library) DataDir() string {
	return l.dataDir
}

func (l *Library) Response(sensor string) (*Response, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r, ok := l.response[sensor]; ok {
		return r, nil
	}

	lines, err := l.readLines(path.Join("RSR", sensor+".txt"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read spectral response for %v", sensor)
	}
	r, err := ParseResponse(sensor, lines)
	if err != nil {
		return nil, err
	}

	l.response[sensor] = r
	return r, nil
}

func (l *Library) Solar(name string) (*SolarSpectrum, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.solar[name]; ok {
		return s, nil
	}

	lines, err := l.readLines(path.Join("Solar", name+".txt"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read solar reference %v", name)
	}
	s, err := ParseSolarSpectrum(name, lines)
	if err != nil {
		return nil, err
	}

	l.solar[name] = s
	return s, nil
}

func (l *Library) readLines(relPath string) ([]string, error) {
	data, err := l.fs.ReadObject(l.dataDir, relPath)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

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

// Locating and reading SDGSAT-1 L1 product bundles
package sdgsat

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/calibration"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

const (
	metaSuffix  = ".meta.xml"
	calibSuffix = ".calib.xml"
)

var imageSuffixes = []string{".tif", ".tiff", ".TIF", ".TIFF"}

// Scene - the three files of one acquisition in a bundle
type Scene struct {
	Metadata    string
	Calibration string
	Image       string
}

// FindScenes lists the scenes in a bundle directory. A path to a file inside the bundle means its
// directory. Every metadata file must have a calibration file and image with the same stem
func FindScenes(fs fileaccess.FileAccess, bundle string) ([]Scene, error) {
	dir := bundle
	if strings.HasSuffix(bundle, metaSuffix) || strings.HasSuffix(bundle, calibSuffix) || hasImageSuffix(bundle) {
		dir = path.Dir(bundle)
	}

	files, err := fs.ListObjects(dir, "")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list bundle %v", bundle)
	}

	present := map[string]bool{}
	stems := []string{}
	for _, f := range files {
		if strings.Contains(f, "/") {
			continue
		}
		present[f] = true
		if strings.HasSuffix(f, metaSuffix) {
			stems = append(stems, strings.TrimSuffix(f, metaSuffix))
		}
	}
	sort.Strings(stems)

	if len(stems) <= 0 {
		return nil, fmt.Errorf("no %v files found in bundle %v", metaSuffix, bundle)
	}

	result := []Scene{}
	for _, stem := range stems {
		if !present[stem+calibSuffix] {
			return nil, fmt.Errorf("bundle %v: %v has no %v", bundle, stem+metaSuffix, calibSuffix)
		}

		image := ""
		for _, suffix := range imageSuffixes {
			if present[stem+suffix] {
				image = stem + suffix
				break
			}
		}
		if len(image) <= 0 {
			return nil, fmt.Errorf("bundle %v: %v has no image", bundle, stem+metaSuffix)
		}

		result = append(result, Scene{
			Metadata:    path.Join(dir, stem+metaSuffix),
			Calibration: path.Join(dir, stem+calibSuffix),
			Image:       path.Join(dir, image),
		})
	}
	return result, nil
}

func hasImageSuffix(p string) bool {
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

// ReadScene reads the metadata and calibration of a scene
func ReadScene(fs fileaccess.FileAccess, scene Scene) (map[string]string, calibration.Table, error) {
	metaData, err := fs.ReadObject("", scene.Metadata)
	if err != nil {
		return nil, nil, err
	}
	meta, err := ParseMetadata(metaData)
	if err != nil {
		return nil, nil, errors.Wrap(err, scene.Metadata)
	}

	calData, err := fs.ReadObject("", scene.Calibration)
	if err != nil {
		return nil, nil, err
	}
	cal, err := ParseCalibration(calData)
	if err != nil {
		return nil, nil, errors.Wrap(err, scene.Calibration)
	}

	return meta, cal, nil
}

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

package sdgsat

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/calibration"
)

type xmlNode struct {
	XMLName  xml.Name
	Content  string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

func parseXML(data []byte) (xmlNode, error) {
	root := xmlNode{}
	if err := xml.Unmarshal(data, &root); err != nil {
		return xmlNode{}, err
	}
	return root, nil
}

// ParseMetadata flattens a metadata document into key/values. Each leaf element is stored under its
// own name and, when nested below the document root, also as <parent>-<name>, eg CenterTime-Acamera.
// The first occurrence of a key wins
func ParseMetadata(data []byte) (map[string]string, error) {
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse metadata")
	}

	result := map[string]string{}
	var walk func(n xmlNode, parent string)
	walk = func(n xmlNode, parent string) {
		if len(n.Children) <= 0 {
			value := strings.TrimSpace(n.Content)
			keys := []string{n.XMLName.Local}
			if len(parent) > 0 {
				keys = append(keys, parent+"-"+n.XMLName.Local)
			}
			for _, k := range keys {
				if _, exists := result[k]; !exists {
					result[k] = value
				}
			}
			return
		}
		for _, child := range n.Children {
			walk(child, n.XMLName.Local)
		}
	}

	for _, child := range root.Children {
		walk(child, "")
	}
	return result, nil
}

var bandDigits = regexp.MustCompile(`(\d+)$`)

// ParseCalibration reads per band gain and bias. Any element with Gain and Bias children is a band,
// numbered by the digits its name ends with (eg Band3) or by a BandID child
func ParseCalibration(data []byte) (calibration.Table, error) {
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse calibration")
	}

	result := calibration.Table{}
	var walkErr error
	var walk func(n xmlNode)
	walk = func(n xmlNode) {
		values := map[string]string{}
		for _, child := range n.Children {
			values[strings.ToLower(child.XMLName.Local)] = strings.TrimSpace(child.Content)
		}

		gainStr, hasGain := values["gain"]
		biasStr, hasBias := values["bias"]
		if !hasGain || !hasBias {
			for _, child := range n.Children {
				walk(child)
			}
			return
		}

		band, err := bandIndex(n.XMLName.Local, values["bandid"])
		if err == nil {
			var coeff calibration.Coefficients
			coeff.Gain, err = strconv.ParseFloat(gainStr, 64)
			if err == nil {
				coeff.Bias, err = strconv.ParseFloat(biasStr, 64)
			}
			if err == nil {
				if _, exists := result[band]; exists {
					err = fmt.Errorf("band %v listed twice", band)
				}
			}
			if err == nil {
				result[band] = coeff
			}
		}
		if err != nil && walkErr == nil {
			walkErr = errors.Wrapf(err, "calibration element %v", n.XMLName.Local)
		}
	}
	walk(root)

	if walkErr != nil {
		return nil, walkErr
	}
	if len(result) <= 0 {
		return nil, fmt.Errorf("no band gains found in calibration")
	}
	return result, nil
}

func bandIndex(elementName string, bandID string) (int, error) {
	if len(bandID) > 0 {
		return strconv.Atoi(bandID)
	}
	m := bandDigits.FindStringSubmatch(elementName)
	if len(m) < 2 {
		return 0, fmt.Errorf("no band number")
	}
	return strconv.Atoi(m[1])
}

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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdgsat-tools/l1r/core/fileaccess"
)

const testMeta = `<?xml version="1.0" encoding="UTF-8"?>
<ProductMetaData>
	<SatelliteID>SDGSAT-1</SatelliteID>
	<SensorID>MII</SensorID>
	<CenterTime>
		<Acamera>2022-05-12 02:57:31.123</Acamera>
		<Bcamera>2022-05-12 02:57:32.000</Bcamera>
	</CenterTime>
	<SolarAzimuth> 135.2 </SolarAzimuth>
	<SolarZenith>25.1</SolarZenith>
</ProductMetaData>`

const testCalib = `<?xml version="1.0" encoding="UTF-8"?>
<Calibration>
	<Sensor>MII</Sensor>
	<Bands>
		<Band2><Gain>0.052</Gain><Bias>0.1</Bias></Band2>
		<Band1><Gain>0.051</Gain><Bias>0</Bias></Band1>
		<Coefficients><BandID>3</BandID><Gain>0.053</Gain><Bias>-0.2</Bias></Coefficients>
	</Bands>
</Calibration>`

func Example_parseMetadata() {
	meta, err := ParseMetadata([]byte(testMeta))
	fmt.Println(err)
	for _, k := range []string{"SatelliteID", "SensorID", "CenterTime-Acamera", "Acamera", "SolarAzimuth", "SolarZenith"} {
		fmt.Printf("%v=%v\n", k, meta[k])
	}

	_, err = ParseMetadata([]byte("<broken"))
	fmt.Println(err != nil)

	// Output:
	// <nil>
	// SatelliteID=SDGSAT-1
	// SensorID=MII
	// CenterTime-Acamera=2022-05-12 02:57:31.123
	// Acamera=2022-05-12 02:57:31.123
	// SolarAzimuth=135.2
	// SolarZenith=25.1
	// true
}

func Example_parseCalibration() {
	cal, err := ParseCalibration([]byte(testCalib))
	fmt.Println(err, len(cal))
	fmt.Println(cal[1], cal[2], cal[3])

	_, err = ParseCalibration([]byte(`<Calibration><Band1><Gain>x</Gain><Bias>0</Bias></Band1></Calibration>`))
	fmt.Println(err)

	_, err = ParseCalibration([]byte(`<Calibration><Sensor>MII</Sensor></Calibration>`))
	fmt.Println(err)

	_, err = ParseCalibration([]byte(`<Calibration><Band1><Gain>1</Gain><Bias>0</Bias></Band1><Band1><Gain>1</Gain><Bias>0</Bias></Band1></Calibration>`))
	fmt.Println(err)

	// Output:
	// <nil> 3
	// {0.051 0} {0.052 0.1} {0.053 -0.2}
	// calibration element Band1: strconv.ParseFloat: parsing "x": invalid syntax
	// no band gains found in calibration
	// calibration element Band1: band 1 listed twice
}

func Example_findScenes() {
	dir, _ := os.MkdirTemp("", "bundle")
	defer os.RemoveAll(dir)

	fs := &fileaccess.FSAccess{}
	for _, f := range []string{
		"KX10_MII_20220512_L1A.meta.xml", "KX10_MII_20220512_L1A.calib.xml", "KX10_MII_20220512_L1A.tif",
		"KX10_MII_20220513_L1A.meta.xml", "KX10_MII_20220513_L1A.calib.xml", "KX10_MII_20220513_L1A.TIFF",
		"readme.txt", "sub/KX10_MII_20220514_L1A.meta.xml",
	} {
		fs.WriteObject(dir, f, []byte(""))
	}

	scenes, err := FindScenes(fs, dir)
	fmt.Println(err, len(scenes))
	for _, s := range scenes {
		fmt.Println(filepath.Base(s.Metadata), filepath.Base(s.Calibration), filepath.Base(s.Image))
	}

	// A file inside the bundle finds the same scenes
	scenes, err = FindScenes(fs, filepath.Join(dir, "KX10_MII_20220512_L1A.tif"))
	fmt.Println(err, len(scenes))

	os.Remove(filepath.Join(dir, "KX10_MII_20220513_L1A.TIFF"))
	_, err = FindScenes(fs, dir)
	fmt.Println(strings.ReplaceAll(err.Error(), dir, "{dir}"))

	_, err = FindScenes(fs, filepath.Join(dir, "sub", "nothing"))
	fmt.Println(err != nil)

	// Output:
	// <nil> 2
	// KX10_MII_20220512_L1A.meta.xml KX10_MII_20220512_L1A.calib.xml KX10_MII_20220512_L1A.tif
	// KX10_MII_20220513_L1A.meta.xml KX10_MII_20220513_L1A.calib.xml KX10_MII_20220513_L1A.TIFF
	// <nil> 2
	// bundle {dir}: KX10_MII_20220513_L1A.meta.xml has no image
	// true
}

func Example_readScene() {
	dir, _ := os.MkdirTemp("", "bundle")
	defer os.RemoveAll(dir)

	fs := &fileaccess.FSAccess{}
	fs.WriteObject(dir, "s.meta.xml", []byte(testMeta))
	fs.WriteObject(dir, "s.calib.xml", []byte(testCalib))
	fs.WriteObject(dir, "s.tif", []byte{})

	scenes, _ := FindScenes(fs, dir)
	meta, cal, err := ReadScene(fs, scenes[0])
	fmt.Println(meta["SensorID"], len(cal), err)

	// Output:
	// MII 3 <nil>
}

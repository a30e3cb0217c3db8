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

package fileaccess

import (
	"fmt"
	"os"
	"path/filepath"
)

func Example_splitS3Url() {
	bucket, path, err := SplitS3Url("s3://sdgsat-bundles/2023/KX10_MII_20230101.meta.xml")
	fmt.Printf("%v|%v|%v\n", bucket, path, err)
	bucket, path, err = SplitS3Url("s3://sdgsat-bundles")
	fmt.Printf("%v|%v|%v\n", bucket, path, err)
	_, _, err = SplitS3Url("/local/dir")
	fmt.Println(err)
	_, _, err = SplitS3Url("s3:///nobucket")
	fmt.Println(err)
	fmt.Println(IsS3Url("s3://a/b"), IsS3Url("a/b"))

	// Output:
	// sdgsat-bundles|2023/KX10_MII_20230101.meta.xml|<nil>
	// sdgsat-bundles||<nil>
	// SplitS3Url parameter was not a valid S3 url: /local/dir
	// SplitS3Url failed to get bucket from S3 url: s3:///nobucket
	// true false
}

func Example_localFileSystem() {
	root, err := os.MkdirTemp("", "fileaccess")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(root)

	fs := FSAccess{}

	exists, err := fs.ObjectExists(root, "bundle/scene.meta.xml")
	fmt.Printf("%v|%v\n", exists, err)

	fmt.Println(fs.WriteObject(root, "bundle/scene.meta.xml", []byte("<meta/>")))
	fmt.Println(fs.WriteObject(root, "bundle/scene.calib.xml", []byte("<calib/>")))
	fmt.Println(fs.WriteObject(root, "other/readme.txt", []byte("hi")))

	exists, err = fs.ObjectExists(root, "bundle/scene.meta.xml")
	fmt.Printf("%v|%v\n", exists, err)

	items, err := fs.ListObjects(root, "bundle/scene")
	fmt.Printf("%v|%v\n", items, err)

	items, err = fs.ListObjects(root, "")
	fmt.Printf("%v|%v\n", items, err)

	data, err := fs.ReadObject(root, "bundle/scene.meta.xml")
	fmt.Printf("%v|%v\n", string(data), err)

	_, err = fs.ReadObject(root, "bundle/missing.xml")
	fmt.Println(fs.IsNotFoundError(err))

	type settingsFile struct {
		Limit []float64 `json:"limit"`
	}
	fmt.Println(fs.WriteJSON(root, "settings.json", settingsFile{Limit: []float64{1, 2, 3, 4}}))
	read := settingsFile{}
	fmt.Println(fs.ReadJSON(root, "settings.json", &read, false), read.Limit)

	missing := settingsFile{}
	fmt.Println(fs.ReadJSON(root, "nothere.json", &missing, true), len(missing.Limit))

	// Output:
	// false|<nil>
	// <nil>
	// <nil>
	// <nil>
	// true|<nil>
	// [bundle/scene.calib.xml bundle/scene.meta.xml]|<nil>
	// [bundle/scene.calib.xml bundle/scene.meta.xml other/readme.txt]|<nil>
	// <meta/>|<nil>
	// true
	// <nil>
	// <nil> [1 2 3 4]
	// <nil> 0
}

func Example_copyPrefix() {
	srcRoot, _ := os.MkdirTemp("", "fileaccess-src")
	dstRoot, _ := os.MkdirTemp("", "fileaccess-dst")
	defer os.RemoveAll(srcRoot)
	defer os.RemoveAll(dstRoot)

	fs := &FSAccess{}
	fs.WriteObject(srcRoot, "in/KX10_MII_1.meta.xml", []byte("m"))
	fs.WriteObject(srcRoot, "in/KX10_MII_1.tif", []byte("t"))
	fs.WriteObject(srcRoot, "in2/KX10_MII_2.tif", []byte("x"))

	written, err := CopyPrefix(fs, srcRoot, "in/", fs, dstRoot, "scratch")
	fmt.Printf("%v|%v\n", written, err)

	data, err := fs.ReadObject(filepath.Join(dstRoot, "scratch"), "KX10_MII_1.tif")
	fmt.Printf("%v|%v\n", string(data), err)

	fmt.Println(CopyObjectBetween(fs, srcRoot, "in2/KX10_MII_2.tif", fs, dstRoot, "single.tif"))

	// Output:
	// [scratch/KX10_MII_1.meta.xml scratch/KX10_MII_1.tif]|<nil>
	// t|<nil>
	// <nil>
}

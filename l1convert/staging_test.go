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

package l1convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
	"github.com/sdgsat-tools/l1r/core/raster"
)

// memBucketStore behaves like S3: flat keys per bucket, listing by key prefix
type memBucketStore struct {
	objects map[string][]byte
}

func (m *memBucketStore) ListObjects(bucket string, prefix string) ([]string, error) {
	result := []string{}
	for k := range m.objects {
		b, key, _ := strings.Cut(k, "|")
		if b == bucket && strings.HasPrefix(key, prefix) {
			result = append(result, key)
		}
	}
	sort.Strings(result)
	return result, nil
}
func (m *memBucketStore) ObjectExists(bucket string, path string) (bool, error) {
	_, ok := m.objects[bucket+"|"+path]
	return ok, nil
}
func (m *memBucketStore) ReadObject(bucket string, path string) ([]byte, error) {
	data, ok := m.objects[bucket+"|"+path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}
func (m *memBucketStore) WriteObject(bucket string, path string, data []byte) error {
	m.objects[bucket+"|"+path] = data
	return nil
}
func (m *memBucketStore) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	data, err := m.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, itemsPtr)
}
func (m *memBucketStore) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	data, err := json.Marshal(itemsPtr)
	if err != nil {
		return err
	}
	return m.WriteObject(bucket, path, data)
}
func (m *memBucketStore) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func Example_bundlePrefix() {
	for _, p := range []string{"", "2022/bundle", "2022/bundle/", "2022/bundle/scene.meta.xml", "scene.meta.xml"} {
		fmt.Printf("%q\n", bundlePrefix(p))
	}

	// Output:
	// ""
	// "2022/bundle/"
	// "2022/bundle/"
	// "2022/bundle/"
	// ""
}

func Example_staging() {
	scratch, _ := os.MkdirTemp("", "scratch")
	defer os.RemoveAll(scratch)

	remote := &memBucketStore{objects: map[string][]byte{
		"bundles|2022/b1/s.meta.xml":  []byte("meta"),
		"bundles|2022/b1/s.calib.xml": []byte("calib"),
		"bundles|2022/b1/s.tif":       []byte("tif"),
		"bundles|2022/b1/u.meta.xml":  []byte("second scene"),
		"bundles|2022/b2/t.meta.xml":  []byte("other"),
	}}
	stage := Staging{Remote: remote, Local: &fileaccess.FSAccess{}, Scratch: scratch}

	local, err := stage.FetchInputs([]string{"s3://bundles/2022/b1/s.tif, /data/local-bundle"})
	fmt.Println(err, len(local), local[1])
	fmt.Println(strings.TrimPrefix(local[0], scratch))

	files, _ := os.ReadDir(local[0])
	for _, f := range files {
		fmt.Println(f.Name())
	}

	_, err = stage.FetchInputs([]string{"s3://bundles/2023/missing"})
	fmt.Println(err)

	fmt.Println(stage.LocalOutput("/out") == "/out", stage.LocalOutput("s3://results/l1r") == filepath.Join(scratch, "output"))

	outFile := filepath.Join(scratch, "output", "SDGSAT-1_MII_2022_05_12_02_57_31_L1R.nc")
	os.MkdirAll(filepath.Dir(outFile), 0777)
	os.WriteFile(outFile, []byte("nc"), 0644)

	published, err := stage.PublishOutputs([]string{outFile}, "s3://results/l1r")
	fmt.Println(published, err)
	data, _ := remote.ReadObject("results", "l1r/SDGSAT-1_MII_2022_05_12_02_57_31_L1R.nc")
	fmt.Println(string(data))

	published, err = stage.PublishOutputs([]string{"/out/a.nc"}, "/out")
	fmt.Println(published, err)

	// Output:
	// <nil> 2 /data/local-bundle
	// /bundle-0
	// s.calib.xml
	// s.meta.xml
	// s.tif
	// u.meta.xml
	// no files found for bundle s3://bundles/2023/missing
	// true true
	// [s3://results/l1r/SDGSAT-1_MII_2022_05_12_02_57_31_L1R.nc] <nil>
	// nc
	// [/out/a.nc] <nil>
}

func TestConvertStaged(t *testing.T) {
	f := makeFixture()
	defer f.cleanup()

	scratch, _ := os.MkdirTemp("", "scratch")
	defer os.RemoveAll(scratch)

	remote := &memBucketStore{objects: map[string][]byte{}}
	for _, suffix := range []string{".meta.xml", ".calib.xml", ".tif"} {
		data, err := os.ReadFile(filepath.Join(f.bundle, testStem+suffix))
		if err != nil {
			t.Fatal(err)
		}
		remote.WriteObject("sdgsat", "2022/05/"+testStem+suffix, data)
	}

	// The image is fetched to scratch, so that's where the reader finds it
	img, _ := f.reader.ReadGrid(filepath.Join(f.bundle, testStem+".tif"))
	bands := [][]float64{}
	for c := range testWaves {
		_, data, _ := f.reader.ReadBand(context.Background(), filepath.Join(f.bundle, testStem+".tif"), c+1, nil)
		bands = append(bands, data)
	}
	reader := raster.NewMemoryReader()
	reader.Add(filepath.Join(scratch, "bundle-0", testStem+".tif"), raster.MemoryImage{Grid: img, Bands: bands})

	opts := f.options(&logger.NullLogger{})
	opts.Reader = reader

	stage := Staging{Remote: remote, Local: &fileaccess.FSAccess{}, Scratch: scratch}
	published, result, err := ConvertStaged(context.Background(), []string{"s3://sdgsat/2022/05/"}, "s3://l1r-out/run1", opts, stage)
	if err != nil {
		t.Fatal(err)
	}

	exp := "s3://l1r-out/run1/" + testOName + "_L1R.nc"
	if len(published) != 1 || published[0] != exp {
		t.Errorf("expected [%v], got %v", exp, published)
	}
	if len(result.Files) != 1 || !strings.HasPrefix(result.Files[0], filepath.Join(scratch, "output")) {
		t.Errorf("expected local file in scratch output, got %v", result.Files)
	}
	if exists, _ := remote.ObjectExists("l1r-out", "run1/"+testOName+"_L1R.nc"); !exists {
		t.Error("converted file not uploaded")
	}
}

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
	"fmt"
	"path"
	"strings"

	"github.com/sdgsat-tools/l1r/core/downloader"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
)

// Staging moves bundles given as s3:// urls into local scratch space before conversion, and
// converted files back out to an s3:// output afterwards. Local paths pass through untouched
type Staging struct {
	Remote  fileaccess.FileAccess
	Local   fileaccess.FileAccess
	Scratch string
	Log     logger.ILogger
}

// bundlePrefix - the "directory" of a bundle url, which may name one of the bundle's files. As with
// local bundles, naming a file means the whole directory, so every scene in it is fetched and converted
func bundlePrefix(prefix string) string {
	if len(prefix) <= 0 || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	if len(path.Ext(prefix)) > 0 {
		dir := path.Dir(prefix)
		if dir == "." {
			return ""
		}
		return dir + "/"
	}
	return prefix + "/"
}

// FetchInputs downloads every s3:// bundle in parallel, returning the list of local bundle paths to convert.
// A url naming a single file downloads the directory holding it
func (s Staging) FetchInputs(inputs []string) ([]string, error) {
	result := []string{}
	downloads := []downloader.Download{}
	urls := []string{}

	for c, input := range ParseInputs(inputs...) {
		if !fileaccess.IsS3Url(input) {
			result = append(result, input)
			continue
		}

		bucket, prefix, err := fileaccess.SplitS3Url(input)
		if err != nil {
			return nil, err
		}

		dst := path.Join(s.Scratch, fmt.Sprintf("bundle-%v", c))
		downloads = append(downloads, downloader.Download{Bucket: bucket, Prefix: bundlePrefix(prefix), Dest: dst})
		urls = append(urls, input)
		result = append(result, dst)
	}

	if len(downloads) <= 0 {
		return result, nil
	}

	log := s.Log
	if log == nil {
		log = &logger.NullLogger{}
	}

	written, err := downloader.DownloadAll(s.Remote, s.Local, downloads, log)
	if err != nil {
		return nil, err
	}
	for c, files := range written {
		if len(files) <= 0 {
			return nil, fmt.Errorf("no files found for bundle %v", urls[c])
		}
	}
	return result, nil
}

// LocalOutput - where Convert should write for the given output setting
func (s Staging) LocalOutput(output string) string {
	if fileaccess.IsS3Url(output) {
		return path.Join(s.Scratch, "output")
	}
	return output
}

// PublishOutputs uploads converted files when output is an s3:// url, returning where they ended
// up. For local outputs the files are returned as they are
func (s Staging) PublishOutputs(files []string, output string) ([]string, error) {
	if !fileaccess.IsS3Url(output) {
		return files, nil
	}

	bucket, prefix, err := fileaccess.SplitS3Url(output)
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, f := range files {
		dstPath := path.Join(prefix, path.Base(f))
		if err := fileaccess.CopyObjectBetween(s.Local, "", f, s.Remote, bucket, dstPath); err != nil {
			return result, err
		}
		result = append(result, "s3://"+bucket+"/"+dstPath)
	}
	return result, nil
}

// ConvertStaged fetches any remote bundles, converts everything and publishes the results to
// output, which may be local or an s3:// url. Returns where the converted files ended up
func ConvertStaged(ctx context.Context, inputs []string, output string, opts Options, stage Staging) ([]string, Result, error) {
	local, err := stage.FetchInputs(inputs)
	if err != nil {
		return nil, Result{}, err
	}

	opts.Output = stage.LocalOutput(output)
	result, err := Convert(ctx, local, opts)
	if err != nil {
		return nil, result, err
	}

	published, err := stage.PublishOutputs(result.Files, output)
	return published, result, err
}

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
	"path"
	"strings"

	"github.com/pkg/errors"
)

// CopyPrefix - Copies every object under srcPrefix in one file access to dstRoot in another, keeping the
// part of the path after the prefix. Used to pull a bundle down from S3 to local scratch space before
// reading it, and to push converted files back up. Returns the destination paths written.
func CopyPrefix(src FileAccess, srcBucket string, srcPrefix string, dst FileAccess, dstBucket string, dstRoot string) ([]string, error) {
	items, err := src.ListObjects(srcBucket, srcPrefix)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %v/%v", srcBucket, srcPrefix)
	}

	// Everything is written relative to the "directory" of the prefix
	prefixDir := srcPrefix
	if !strings.HasSuffix(prefixDir, "/") {
		prefixDir = path.Dir(prefixDir)
		if prefixDir == "." {
			prefixDir = ""
		}
	}

	written := []string{}
	for _, item := range items {
		data, err := src.ReadObject(srcBucket, item)
		if err != nil {
			return written, errors.Wrapf(err, "failed to read %v/%v", srcBucket, item)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(item, prefixDir), "/")
		dstPath := path.Join(dstRoot, rel)
		if err := dst.WriteObject(dstBucket, dstPath, data); err != nil {
			return written, errors.Wrapf(err, "failed to write %v/%v", dstBucket, dstPath)
		}
		written = append(written, dstPath)
	}

	return written, nil
}

// CopyObjectBetween - Copies a single object, possibly between different file access implementations
func CopyObjectBetween(src FileAccess, srcBucket string, srcPath string, dst FileAccess, dstBucket string, dstPath string) error {
	data, err := src.ReadObject(srcBucket, srcPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read %v/%v", srcBucket, srcPath)
	}
	return errors.Wrapf(dst.WriteObject(dstBucket, dstPath, data), "failed to write %v/%v", dstBucket, dstPath)
}

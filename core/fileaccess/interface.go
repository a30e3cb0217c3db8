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
	"strings"
)

// Generic interface for reading/writing files
// Bundles and settings may come from the local file system or from AWS S3, and converted
// output may need to go to either, so the converter codes against this interface.

// Besides just needing a path, we may need a drive or bucket at the start of a path.

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)
	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, path string, itemsPtr interface{}) error

	IsNotFoundError(err error) bool
}

const s3UrlPrefix = "s3://"

// IsS3Url - true if the path looks like s3://bucket/...
func IsS3Url(url string) bool {
	return strings.HasPrefix(url, s3UrlPrefix)
}

// SplitS3Url - Returns the bucket and the path within the bucket for an s3:// url
func SplitS3Url(url string) (string, string, error) {
	trimmedUrl := strings.TrimPrefix(url, s3UrlPrefix)
	if trimmedUrl == url {
		return "", "", fmt.Errorf("SplitS3Url parameter was not a valid S3 url: %v", url)
	}

	// Get the bit before the first slash, that's the bucket
	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos == 0 || len(trimmedUrl) <= 0 {
		return "", "", fmt.Errorf("SplitS3Url failed to get bucket from S3 url: %v", url)
	}
	if slashPos < 0 {
		return trimmedUrl, "", nil
	}

	return trimmedUrl[0:slashPos], trimmedUrl[slashPos+1:], nil
}

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

// Parallel download of several prefixes from one file access to another
package downloader

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sdgsat-tools/l1r/core/fileaccess"
	"github.com/sdgsat-tools/l1r/core/logger"
)

// Download - everything under Bucket/Prefix is copied to Dest
type Download struct {
	Bucket string
	Prefix string
	Dest   string
}

// DownloadAll - Downloads each item in parallel. Returns the paths written for each download, in the
// order they were given, and the first error in that order if any failed
func DownloadAll(src fileaccess.FileAccess, dst fileaccess.FileAccess, downloads []Download, log logger.ILogger) ([][]string, error) {
	var wg sync.WaitGroup
	wg.Add(len(downloads))

	written := make([][]string, len(downloads))
	errs := make([]error, len(downloads))

	// Mutex for accessing the result slices above
	mu := sync.Mutex{}

	for c, item := range downloads {
		go func(c int, item Download) {
			defer wg.Done()

			log.Debugf("  Downloading %v/%v", item.Bucket, item.Prefix)
			files, err := fileaccess.CopyPrefix(src, item.Bucket, item.Prefix, dst, "", item.Dest)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs[c] = errors.Wrapf(err, "failed to download %v/%v", item.Bucket, item.Prefix)
			} else {
				log.Debugf("  Finished %v/%v, %v files", item.Bucket, item.Prefix, len(files))
			}
			written[c] = files
		}(c, item)
	}

	// Wait for all
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

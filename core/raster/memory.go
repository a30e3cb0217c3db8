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

package raster

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sdgsat-tools/l1r/core/projection"
)

// MemoryImage is a multi-band image held in memory, band data row-major
type MemoryImage struct {
	Grid  projection.Grid
	Bands [][]float64
}

// MemoryReader serves images held in memory. Warping supports target grids in the same projection
// and axis orientation as the source, using area weighted averaging
type MemoryReader struct {
	mu     sync.Mutex
	images map[string]MemoryImage
	reads  int
}

func NewMemoryReader() *MemoryReader {
	return &MemoryReader{images: map[string]MemoryImage{}}
}

func (r *MemoryReader) Add(src string, img MemoryImage) error {
	for c, band := range img.Bands {
		if len(band) != img.Grid.PixelCount() {
			return fmt.Errorf("band %v has %v values, grid has %v pixels", c+1, len(band), img.Grid.PixelCount())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.images[src] = img
	return nil
}

// Reads - how many band reads were served
func (r *MemoryReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

func (r *MemoryReader) image(src string) (MemoryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[src]
	if !ok {
		return MemoryImage{}, fmt.Errorf("image not found: %v", src)
	}
	return img, nil
}

func (r *MemoryReader) ReadGrid(src string) (projection.Grid, error) {
	img, err := r.image(src)
	if err != nil {
		return projection.Grid{}, err
	}
	return img.Grid, nil
}

func (r *MemoryReader) ReadBand(ctx context.Context, src string, band int, warp *projection.WarpParams) (BandMeta, []float64, error) {
	if err := ctx.Err(); err != nil {
		return BandMeta{}, nil, err
	}

	img, err := r.image(src)
	if err != nil {
		return BandMeta{}, nil, err
	}
	if band < 1 || band > len(img.Bands) {
		return BandMeta{}, nil, fmt.Errorf("band %v not in %v (%v bands)", band, src, len(img.Bands))
	}

	r.mu.Lock()
	r.reads++
	r.mu.Unlock()

	data := img.Bands[band-1]
	if warp == nil {
		result := make([]float64, len(data))
		copy(result, data)
		return BandMeta{Band: band, XDim: img.Grid.XDim, YDim: img.Grid.YDim}, result, nil
	}

	if warp.Proj4 != img.Grid.Proj4 {
		return BandMeta{}, nil, fmt.Errorf("memory reader cannot reproject %v to %v", img.Grid.Proj4, warp.Proj4)
	}
	if warp.Resampling != projection.ResampleAverage {
		return BandMeta{}, nil, fmt.Errorf("unsupported resampling: %v", warp.Resampling)
	}

	dst := warp.Grid()
	return BandMeta{Band: band, XDim: dst.XDim, YDim: dst.YDim}, ResampleAverage(img.Grid, data, dst), nil
}

// ResampleAverage resamples data from src onto dst (same projection, north-up) by area weighted
// averaging. Destination pixels not covered by the source are 0
func ResampleAverage(src projection.Grid, data []float64, dst projection.Grid) []float64 {
	cols := overlaps(src.X0, src.PixelX, src.XDim, dst.X0, dst.PixelX, dst.XDim)
	rows := overlaps(src.Y0, src.PixelY, src.YDim, dst.Y0, dst.PixelY, dst.YDim)

	result := make([]float64, dst.PixelCount())
	for dr, rowWeights := range rows {
		for dc, colWeights := range cols {
			sum := 0.0
			total := 0.0
			for _, rw := range rowWeights {
				for _, cw := range colWeights {
					w := rw.weight * cw.weight
					sum += w * data[rw.index*src.XDim+cw.index]
					total += w
				}
			}
			if total > 0 {
				result[dr*dst.XDim+dc] = sum / total
			}
		}
	}
	return result
}

type weighted struct {
	index  int
	weight float64
}

// overlaps returns, for each destination cell along one axis, the source cells it overlaps and by
// how much. Works for either axis direction as long as both grids share it
func overlaps(srcStart float64, srcStep float64, srcN int, dstStart float64, dstStep float64, dstN int) [][]weighted {
	result := make([][]weighted, dstN)
	for d := 0; d < dstN; d++ {
		// Destination cell in source pixel units
		a := (dstStart + float64(d)*dstStep - srcStart) / srcStep
		b := (dstStart + float64(d+1)*dstStep - srcStart) / srcStep
		lo, hi := math.Min(a, b), math.Max(a, b)

		for s := max(int(math.Floor(lo)), 0); s < min(int(math.Ceil(hi)), srcN); s++ {
			w := math.Min(hi, float64(s+1)) - math.Max(lo, float64(s))
			if w > 1e-9 {
				result[d] = append(result[d], weighted{index: s, weight: w})
			}
		}
	}
	return result
}

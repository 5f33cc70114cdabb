// Copyright 2023 TiKV Project Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package movingaverage

import "github.com/elliotchance/pie/v2"

// MedianFilter works as a median filter with specified window size.
// References: https://en.wikipedia.org/wiki/Median_filter.
type MedianFilter struct {
	records []float64
	size    int
	next    int
	filled  int
	result  float64
}

// NewMedianFilter returns a MedianFilter.
func NewMedianFilter(size int) *MedianFilter {
	return &MedianFilter{
		records: make([]float64, size),
		size:    size,
	}
}

// Add adds a data point.
func (r *MedianFilter) Add(n float64) {
	r.records[r.next] = n
	r.next = (r.next + 1) % r.size
	if r.filled < r.size {
		r.filled++
	}
	r.result = pie.Median(r.records[:r.filled])
}

// Get returns the median of the data set.
func (r *MedianFilter) Get() float64 {
	return r.result
}

// Reset cleans the data set.
func (r *MedianFilter) Reset() {
	r.next, r.filled = 0, 0
	r.result = 0
}

// Set = Reset + Add.
func (r *MedianFilter) Set(n float64) {
	r.Reset()
	r.Add(n)
}

// GetInstantaneous returns the value just added.
func (r *MedianFilter) GetInstantaneous() float64 {
	if r.filled == 0 {
		return 0
	}
	return r.records[(r.next+r.size-1)%r.size]
}

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

import (
	"math"

	"github.com/tikv/segtree/pkg/lazysegtree/algebra"
)

// MaxFilter works as a maximum filter with specified window size.
// There are at most `size` data points for calculating.
type MaxFilter struct {
	w *window[float64, float64]
}

// NewMaxFilter returns a MaxFilter.
func NewMaxFilter(size int) *MaxFilter {
	return &MaxFilter{w: newWindow[float64, float64](algebra.NewAddMax(math.Inf(-1)), size)}
}

// Add adds a data point.
func (r *MaxFilter) Add(n float64) {
	r.w.add(n)
}

// Get returns the maximum of the data set.
func (r *MaxFilter) Get() float64 {
	if r.w.empty() {
		return 0
	}
	return r.w.prod()
}

// Reset cleans the data set.
func (r *MaxFilter) Reset() {
	r.w.reset()
}

// Set = Reset + Add.
func (r *MaxFilter) Set(n float64) {
	r.Reset()
	r.Add(n)
}

// GetInstantaneous returns the value just added.
func (r *MaxFilter) GetInstantaneous() float64 {
	if r.w.empty() {
		return 0
	}
	return r.w.last
}

// MinFilter works as a minimum filter with specified window size.
type MinFilter struct {
	w *window[float64, float64]
}

// NewMinFilter returns a MinFilter.
func NewMinFilter(size int) *MinFilter {
	return &MinFilter{w: newWindow[float64, float64](algebra.NewAddMin(math.Inf(1)), size)}
}

// Add adds a data point.
func (r *MinFilter) Add(n float64) {
	r.w.add(n)
}

// Get returns the minimum of the data set.
func (r *MinFilter) Get() float64 {
	if r.w.empty() {
		return 0
	}
	return r.w.prod()
}

// Reset cleans the data set.
func (r *MinFilter) Reset() {
	r.w.reset()
}

// Set = Reset + Add.
func (r *MinFilter) Set(n float64) {
	r.Reset()
	r.Add(n)
}

// GetInstantaneous returns the value just added.
func (r *MinFilter) GetInstantaneous() float64 {
	if r.w.empty() {
		return 0
	}
	return r.w.last
}

// SMA is a simple moving average over a window of specified size.
// References: https://en.wikipedia.org/wiki/Moving_average#Simple_moving_average
type SMA struct {
	w *window[algebra.SumLen[float64], float64]
}

// NewSMA returns a SMA.
func NewSMA(size int) *SMA {
	return &SMA{w: newWindow[algebra.SumLen[float64], float64](algebra.AddSum[float64]{}, size)}
}

// Add adds a data point.
func (s *SMA) Add(n float64) {
	s.w.add(algebra.Elem(n))
}

// Get returns the average of the data set.
func (s *SMA) Get() float64 {
	if s.w.empty() {
		return 0
	}
	x := s.w.prod()
	return x.Sum / float64(x.Len)
}

// Reset cleans the data set.
func (s *SMA) Reset() {
	s.w.reset()
}

// Set = Reset + Add.
func (s *SMA) Set(n float64) {
	s.Reset()
	s.Add(n)
}

// GetInstantaneous returns the value just added.
func (s *SMA) GetInstantaneous() float64 {
	if s.w.empty() {
		return 0
	}
	return s.w.last.Sum
}

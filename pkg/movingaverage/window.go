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

import "github.com/tikv/segtree/pkg/lazysegtree"

// window keeps the last size aggregates of a stream in the leaves of a
// segment tree used as a ring buffer. Empty slots hold the identity.
type window[S, F any] struct {
	alg   lazysegtree.Algebra[S, F]
	tree  *lazysegtree.Tree[S, F]
	last  S
	size  uint64
	count uint64
}

func newWindow[S, F any](alg lazysegtree.Algebra[S, F], size int) *window[S, F] {
	return &window[S, F]{
		alg:  alg,
		tree: lazysegtree.New(alg, size),
		size: uint64(size),
	}
}

func (w *window[S, F]) add(x S) {
	w.tree.Set(int(w.count%w.size), x)
	w.last = x
	w.count++
}

func (w *window[S, F]) prod() S {
	return w.tree.AllProd()
}

func (w *window[S, F]) empty() bool {
	return w.count == 0
}

func (w *window[S, F]) reset() {
	filled := w.count
	if filled > w.size {
		filled = w.size
	}
	for i := 0; i < int(filled); i++ {
		w.tree.Set(i, w.alg.E())
	}
	w.count = 0
}

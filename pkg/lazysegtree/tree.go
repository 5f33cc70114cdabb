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

// Package lazysegtree implements an array backed segment tree with lazy
// propagation over a user supplied Algebra.
//
// The tree is a complete binary tree of size leaves, size being the smallest
// power of two not less than the length. It is stored in two flat slices of
// 2*size entries: node[k] holds the aggregate of the subtree rooted at k and
// lazy[k] the operator not yet delivered to the children of k. The root is
// 1 and the children of k are 2k and 2k+1.
//
// A Tree is not safe for concurrent use. Get, Prod, MaxRight, MinLeft and
// Values look like reads but push pending operators down the tree, so they
// need the same exclusive access as the updating methods.
package lazysegtree

import (
	"math/bits"

	"github.com/tikv/segtree/pkg/errs"
)

// maxLen keeps 2*size representable as an int.
const maxLen = 1 << (bits.UintSize - 3)

// Tree is a lazy propagation segment tree.
type Tree[S, F any] struct {
	alg    Algebra[S, F]
	failed func(S) bool

	n    int
	size int
	log  int
	node []S
	lazy []F

	repairs uint64
}

func newTree[S, F any](alg Algebra[S, F], n int) *Tree[S, F] {
	if n < 0 || n > maxLen {
		panic(errs.ErrInvalidLength.FastGenByArgs(n))
	}
	size, log := 1, 0
	for size < n {
		size <<= 1
		log++
	}
	t := &Tree[S, F]{
		alg:  alg,
		n:    n,
		size: size,
		log:  log,
		node: make([]S, 2*size),
		lazy: make([]F, 2*size),
	}
	if f, ok := alg.(Failer[S]); ok {
		t.failed = f.IsFailed
	}
	id := alg.ID()
	for i := range t.lazy {
		t.lazy[i] = id
	}
	return t
}

// New returns a tree of n elements, all equal to alg.E().
func New[S, F any](alg Algebra[S, F], n int) *Tree[S, F] {
	t := newTree(alg, n)
	e := alg.E()
	for i := range t.node {
		t.node[i] = e
	}
	return t
}

// NewFromSlice returns a tree holding a copy of values.
func NewFromSlice[S, F any](alg Algebra[S, F], values []S) *Tree[S, F] {
	t := newTree(alg, len(values))
	e := alg.E()
	t.node[0] = e
	copy(t.node[t.size:], values)
	for i := t.size + t.n; i < 2*t.size; i++ {
		t.node[i] = e
	}
	for i := t.size - 1; i >= 1; i-- {
		t.update(i)
	}
	return t
}

// Len returns the number of elements.
func (t *Tree[S, F]) Len() int {
	return t.n
}

// Size returns the number of leaves, the smallest power of two not less than Len.
func (t *Tree[S, F]) Size() int {
	return t.size
}

// Repairs returns how many times a failed aggregate has been recomputed from
// its children since the tree was built.
func (t *Tree[S, F]) Repairs() uint64 {
	return t.repairs
}

// Get returns the p-th element.
func (t *Tree[S, F]) Get(p int) S {
	t.checkIndex(p)
	p += t.size
	t.pushPath(p)
	return t.node[p]
}

// Set replaces the p-th element with x.
func (t *Tree[S, F]) Set(p int, x S) {
	t.checkIndex(p)
	p += t.size
	t.pushPath(p)
	t.node[p] = x
	t.updatePath(p)
}

// Values returns all elements in order.
func (t *Tree[S, F]) Values() []S {
	for k := 1; k < t.size; k++ {
		t.push(k)
	}
	values := make([]S, t.n)
	copy(values, t.node[t.size:t.size+t.n])
	return values
}

// Prod returns the aggregate of the elements in [l, r), folded from left to
// right. It returns E() when l == r.
func (t *Tree[S, F]) Prod(l, r int) S {
	t.checkRange(l, r)
	if l == r {
		return t.alg.E()
	}
	l += t.size
	r += t.size
	t.pushBoundary(l, r)

	sml, smr := t.alg.E(), t.alg.E()
	for l < r {
		if l&1 == 1 {
			sml = t.alg.Op(sml, t.node[l])
			l++
		}
		if r&1 == 1 {
			r--
			smr = t.alg.Op(t.node[r], smr)
		}
		l >>= 1
		r >>= 1
	}
	return t.alg.Op(sml, smr)
}

// AllProd returns the aggregate of all elements.
func (t *Tree[S, F]) AllProd() S {
	return t.node[1]
}

// Apply replaces the p-th element x with Mapping(f, x).
func (t *Tree[S, F]) Apply(p int, f F) {
	t.checkIndex(p)
	p += t.size
	t.pushPath(p)
	t.node[p] = t.alg.Mapping(f, t.node[p])
	t.updatePath(p)
}

// ApplyRange applies f to every element in [l, r).
func (t *Tree[S, F]) ApplyRange(l, r int, f F) {
	t.checkRange(l, r)
	if l == r {
		return
	}
	l += t.size
	r += t.size
	t.pushBoundary(l, r)

	for l2, r2 := l, r; l2 < r2; l2, r2 = l2>>1, r2>>1 {
		if l2&1 == 1 {
			t.allApply(l2, f)
			l2++
		}
		if r2&1 == 1 {
			r2--
			t.allApply(r2, f)
		}
	}

	for i := 1; i <= t.log; i++ {
		if (l>>i)<<i != l {
			t.update(l >> i)
		}
		if (r>>i)<<i != r {
			t.update((r - 1) >> i)
		}
	}
}

func (t *Tree[S, F]) checkIndex(p int) {
	if p < 0 || p >= t.n {
		panic(errs.ErrIndexOutOfRange.FastGenByArgs(p, t.n))
	}
}

func (t *Tree[S, F]) checkRange(l, r int) {
	if l < 0 || l > r || r > t.n {
		panic(errs.ErrInvalidRange.FastGenByArgs(l, r, t.n))
	}
}

// pushPath delivers every pending operator above leaf p, root first.
func (t *Tree[S, F]) pushPath(p int) {
	for i := t.log; i >= 1; i-- {
		t.push(p >> i)
	}
}

func (t *Tree[S, F]) updatePath(p int) {
	for i := 1; i <= t.log; i++ {
		t.update(p >> i)
	}
}

// pushBoundary pushes the ancestors of the leaves l and r-1 whose subtrees are
// only partly inside [l, r).
func (t *Tree[S, F]) pushBoundary(l, r int) {
	for i := t.log; i >= 1; i-- {
		if (l>>i)<<i != l {
			t.push(l >> i)
		}
		if (r>>i)<<i != r {
			t.push((r - 1) >> i)
		}
	}
}

func (t *Tree[S, F]) update(k int) {
	t.node[k] = t.alg.Op(t.node[2*k], t.node[2*k+1])
}

func (t *Tree[S, F]) allApply(k int, f F) {
	t.node[k] = t.alg.Mapping(f, t.node[k])
	if k >= t.size {
		return
	}
	t.lazy[k] = t.alg.Composition(f, t.lazy[k])
	if t.failed != nil && t.failed(t.node[k]) {
		t.repairs++
		t.push(k)
		t.update(k)
	}
}

func (t *Tree[S, F]) push(k int) {
	f := t.lazy[k]
	t.allApply(2*k, f)
	t.allApply(2*k+1, f)
	t.lazy[k] = t.alg.ID()
}

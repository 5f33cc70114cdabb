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

package lazysegtree

import "github.com/tikv/segtree/pkg/errs"

// MaxRight returns an index r such that pred(Prod(l, r)) holds and either
// r == Len() or pred(Prod(l, r+1)) does not. If pred is monotone, r is the
// largest such index.
//
// pred(E()) must hold.
func (t *Tree[S, F]) MaxRight(l int, pred func(S) bool) int {
	if l < 0 || l > t.n {
		panic(errs.ErrIndexOutOfRange.FastGenByArgs(l, t.n+1))
	}
	if !pred(t.alg.E()) {
		panic(errs.ErrPredicateOnIdentity.FastGenByArgs())
	}
	if l == t.n {
		return t.n
	}
	l += t.size
	t.pushPath(l)
	sm := t.alg.E()
	for {
		for l&1 == 0 {
			l >>= 1
		}
		if !pred(t.alg.Op(sm, t.node[l])) {
			// Descend into the subtree that broke the predicate.
			for l < t.size {
				t.push(l)
				l <<= 1
				if next := t.alg.Op(sm, t.node[l]); pred(next) {
					sm = next
					l++
				}
			}
			return l - t.size
		}
		sm = t.alg.Op(sm, t.node[l])
		l++
		if l&-l == l {
			return t.n
		}
	}
}

// MinLeft returns an index l such that pred(Prod(l, r)) holds and either
// l == 0 or pred(Prod(l-1, r)) does not. If pred is monotone, l is the
// smallest such index.
//
// pred(E()) must hold.
func (t *Tree[S, F]) MinLeft(r int, pred func(S) bool) int {
	if r < 0 || r > t.n {
		panic(errs.ErrIndexOutOfRange.FastGenByArgs(r, t.n+1))
	}
	if !pred(t.alg.E()) {
		panic(errs.ErrPredicateOnIdentity.FastGenByArgs())
	}
	if r == 0 {
		return 0
	}
	r += t.size
	t.pushPath(r - 1)
	sm := t.alg.E()
	for {
		r--
		for r > 1 && r&1 == 1 {
			r >>= 1
		}
		if !pred(t.alg.Op(t.node[r], sm)) {
			for r < t.size {
				t.push(r)
				r = 2*r + 1
				if next := t.alg.Op(t.node[r], sm); pred(next) {
					sm = next
					r--
				}
			}
			return r + 1 - t.size
		}
		sm = t.alg.Op(t.node[r], sm)
		if r&-r == r {
			return 0
		}
	}
}

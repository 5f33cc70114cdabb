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

package workload

import (
	"unsafe"

	"github.com/elliotchance/pie/v2"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/lazysegtree"
	"github.com/tikv/segtree/pkg/lazysegtree/algebra"
)

// Algebra names accepted by NewSubject.
const (
	AddSumAlgebra      = "add-sum"
	ClampAddSumAlgebra = "clamp-add-sum"
)

// Subject is a tree paired with a brute force model of the same elements.
// Do and Reference return comparable results, nil for updates.
type Subject interface {
	Len() int
	Repairs() uint64
	ArenaBytes() uint64
	Do(op Op) interface{}
	Reference(op Op) interface{}
}

// NewSubject builds a subject over values for the named algebra.
func NewSubject(name string, values []int64) (Subject, error) {
	switch name {
	case AddSumAlgebra:
		return newAddSumSubject(values), nil
	case ClampAddSumAlgebra:
		return newClampSubject(values), nil
	}
	return nil, errs.ErrUnknownAlgebra.FastGenByArgs(name)
}

func arenaBytes[S, F any](t *lazysegtree.Tree[S, F]) uint64 {
	var (
		s S
		f F
	)
	return uint64(2*t.Size()) * uint64(unsafe.Sizeof(s)+unsafe.Sizeof(f))
}

// addSumSubject keeps every element non-negative so sum predicates stay
// monotone.
type addSumSubject struct {
	tree *lazysegtree.Tree[algebra.SumLen[int64], int64]
	ref  []int64
}

func newAddSumSubject(values []int64) *addSumSubject {
	return &addSumSubject{
		tree: lazysegtree.NewFromSlice[algebra.SumLen[int64], int64](algebra.AddSum[int64]{}, algebra.Elems(values)),
		ref:  append([]int64(nil), values...),
	}
}

func (s *addSumSubject) Len() int           { return s.tree.Len() }
func (s *addSumSubject) Repairs() uint64    { return s.tree.Repairs() }
func (s *addSumSubject) ArenaBytes() uint64 { return arenaBytes(s.tree) }

func (s *addSumSubject) Do(op Op) interface{} {
	limit := func(x algebra.SumLen[int64]) bool { return x.Sum <= op.Value }
	switch op.Type {
	case OpSet:
		s.tree.Set(op.L, algebra.Elem(op.Value))
	case OpApply:
		s.tree.Apply(op.L, op.Value)
	case OpApplyRange:
		s.tree.ApplyRange(op.L, op.R, op.Value)
	case OpGet:
		return s.tree.Get(op.L).Sum
	case OpProd:
		return s.tree.Prod(op.L, op.R).Sum
	case OpMaxRight:
		return s.tree.MaxRight(op.L, limit)
	case OpMinLeft:
		return s.tree.MinLeft(op.R, limit)
	}
	return nil
}

func (s *addSumSubject) Reference(op Op) interface{} {
	switch op.Type {
	case OpSet:
		s.ref[op.L] = op.Value
	case OpApply:
		s.ref[op.L] += op.Value
	case OpApplyRange:
		for i := op.L; i < op.R; i++ {
			s.ref[i] += op.Value
		}
	case OpGet:
		return s.ref[op.L]
	case OpProd:
		return pie.Sum(s.ref[op.L:op.R])
	case OpMaxRight:
		m, sum := op.L, int64(0)
		for m < len(s.ref) && sum+s.ref[m] <= op.Value {
			sum += s.ref[m]
			m++
		}
		return m
	case OpMinLeft:
		m, sum := op.R, int64(0)
		for m > 0 && sum+s.ref[m-1] <= op.Value {
			sum += s.ref[m-1]
			m--
		}
		return m
	}
	return nil
}

// RangeStat is the result of a clamp-add-sum range query. An empty range
// reports the zero value.
type RangeStat struct {
	Sum, Min, Max int64
}

// clampSubject drives the Segment Tree Beats algebra. Binary searches use the
// predicate max <= limit, which is monotone for any sign of the elements.
type clampSubject struct {
	tree *lazysegtree.Tree[algebra.BeatsNode, algebra.Clamp]
	ref  []int64
}

func newClampSubject(values []int64) *clampSubject {
	return &clampSubject{
		tree: lazysegtree.NewFromSlice[algebra.BeatsNode, algebra.Clamp](algebra.ClampAddSum{}, algebra.Leaves(values)),
		ref:  append([]int64(nil), values...),
	}
}

func (s *clampSubject) Len() int           { return s.tree.Len() }
func (s *clampSubject) Repairs() uint64    { return s.tree.Repairs() }
func (s *clampSubject) ArenaBytes() uint64 { return arenaBytes(s.tree) }

func clampOf(op Op) algebra.Clamp {
	switch op.Kind {
	case UpdateChmin:
		return algebra.Chmin(op.Value)
	case UpdateChmax:
		return algebra.Chmax(op.Value)
	}
	// Keep additions small next to chmin/chmax bounds.
	return algebra.Add(op.Value%33 - 16)
}

func (s *clampSubject) Do(op Op) interface{} {
	limit := func(x algebra.BeatsNode) bool { return x.Max <= op.Value }
	switch op.Type {
	case OpSet:
		s.tree.Set(op.L, algebra.Leaf(op.Value))
	case OpApply:
		s.tree.Apply(op.L, clampOf(op))
	case OpApplyRange:
		s.tree.ApplyRange(op.L, op.R, clampOf(op))
	case OpGet:
		return s.tree.Get(op.L).Sum
	case OpProd:
		if op.L == op.R {
			return RangeStat{}
		}
		x := s.tree.Prod(op.L, op.R)
		return RangeStat{Sum: x.Sum, Min: x.Min, Max: x.Max}
	case OpMaxRight:
		return s.tree.MaxRight(op.L, limit)
	case OpMinLeft:
		return s.tree.MinLeft(op.R, limit)
	}
	return nil
}

func (s *clampSubject) Reference(op Op) interface{} {
	switch op.Type {
	case OpSet:
		s.ref[op.L] = op.Value
	case OpApply:
		s.ref[op.L] = clampOf(op).Eval(s.ref[op.L])
	case OpApplyRange:
		f := clampOf(op)
		for i := op.L; i < op.R; i++ {
			s.ref[i] = f.Eval(s.ref[i])
		}
	case OpGet:
		return s.ref[op.L]
	case OpProd:
		if op.L == op.R {
			return RangeStat{}
		}
		values := s.ref[op.L:op.R]
		return RangeStat{Sum: pie.Sum(values), Min: pie.Min(values), Max: pie.Max(values)}
	case OpMaxRight:
		m := op.L
		for m < len(s.ref) && s.ref[m] <= op.Value {
			m++
		}
		return m
	case OpMinLeft:
		m := op.R
		for m > 0 && s.ref[m-1] <= op.Value {
			m--
		}
		return m
	}
	return nil
}

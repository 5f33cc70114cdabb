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

// Package algebra provides common instantiations of lazysegtree.Algebra.
package algebra

import "golang.org/x/exp/constraints"

// Number is the element type of the numeric algebras.
type Number interface {
	constraints.Integer | constraints.Float
}

// SumLen is a sum together with the number of elements it covers.
type SumLen[T Number] struct {
	Sum T
	Len int
}

// Elem returns the aggregate of a single element v.
func Elem[T Number](v T) SumLen[T] {
	return SumLen[T]{Sum: v, Len: 1}
}

// Elems returns one single-element aggregate per value.
func Elems[T Number](values []T) []SumLen[T] {
	out := make([]SumLen[T], len(values))
	for i, v := range values {
		out[i] = Elem(v)
	}
	return out
}

func opSumLen[T Number](a, b SumLen[T]) SumLen[T] {
	return SumLen[T]{Sum: a.Sum + b.Sum, Len: a.Len + b.Len}
}

// Assign is an operator that replaces every element with Value when Set is
// true. The zero value is the identity.
type Assign[T any] struct {
	Value T
	Set   bool
}

// AssignTo returns the operator assigning v.
func AssignTo[T any](v T) Assign[T] {
	return Assign[T]{Value: v, Set: true}
}

func composeAssign[T any](f, g Assign[T]) Assign[T] {
	if f.Set {
		return f
	}
	return g
}

// AddSum supports adding a constant to a range and querying range sums.
type AddSum[T Number] struct{}

// Op implements lazysegtree.Algebra.
func (AddSum[T]) Op(a, b SumLen[T]) SumLen[T] { return opSumLen(a, b) }

// E implements lazysegtree.Algebra.
func (AddSum[T]) E() SumLen[T] { return SumLen[T]{} }

// Mapping implements lazysegtree.Algebra.
func (AddSum[T]) Mapping(f T, x SumLen[T]) SumLen[T] {
	return SumLen[T]{Sum: x.Sum + f*T(x.Len), Len: x.Len}
}

// Composition implements lazysegtree.Algebra.
func (AddSum[T]) Composition(f, g T) T { return f + g }

// ID implements lazysegtree.Algebra.
func (AddSum[T]) ID() T { return 0 }

// AssignSum supports assigning a constant to a range and querying range sums.
type AssignSum[T Number] struct{}

// Op implements lazysegtree.Algebra.
func (AssignSum[T]) Op(a, b SumLen[T]) SumLen[T] { return opSumLen(a, b) }

// E implements lazysegtree.Algebra.
func (AssignSum[T]) E() SumLen[T] { return SumLen[T]{} }

// Mapping implements lazysegtree.Algebra.
func (AssignSum[T]) Mapping(f Assign[T], x SumLen[T]) SumLen[T] {
	if !f.Set {
		return x
	}
	return SumLen[T]{Sum: f.Value * T(x.Len), Len: x.Len}
}

// Composition implements lazysegtree.Algebra.
func (AssignSum[T]) Composition(f, g Assign[T]) Assign[T] { return composeAssign(f, g) }

// ID implements lazysegtree.Algebra.
func (AssignSum[T]) ID() Assign[T] { return Assign[T]{} }

// AffineMap maps x to Mul*x + Add.
type AffineMap[T Number] struct {
	Mul T
	Add T
}

// Affine supports applying x -> a*x + b to a range and querying range sums.
type Affine[T Number] struct{}

// Op implements lazysegtree.Algebra.
func (Affine[T]) Op(a, b SumLen[T]) SumLen[T] { return opSumLen(a, b) }

// E implements lazysegtree.Algebra.
func (Affine[T]) E() SumLen[T] { return SumLen[T]{} }

// Mapping implements lazysegtree.Algebra.
func (Affine[T]) Mapping(f AffineMap[T], x SumLen[T]) SumLen[T] {
	return SumLen[T]{Sum: f.Mul*x.Sum + f.Add*T(x.Len), Len: x.Len}
}

// Composition implements lazysegtree.Algebra.
func (Affine[T]) Composition(f, g AffineMap[T]) AffineMap[T] {
	return AffineMap[T]{Mul: f.Mul * g.Mul, Add: f.Mul*g.Add + f.Add}
}

// ID implements lazysegtree.Algebra.
func (Affine[T]) ID() AffineMap[T] { return AffineMap[T]{Mul: 1} }

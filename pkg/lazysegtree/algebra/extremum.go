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

package algebra

// AddMin supports adding a constant to a range and querying range minimums.
// Inf is the identity of min and must not be reached by any element.
type AddMin[T Number] struct {
	Inf T
}

// NewAddMin returns an AddMin whose empty aggregate is inf.
func NewAddMin[T Number](inf T) AddMin[T] {
	return AddMin[T]{Inf: inf}
}

// Op implements lazysegtree.Algebra.
func (a AddMin[T]) Op(x, y T) T {
	if x < y {
		return x
	}
	return y
}

// E implements lazysegtree.Algebra.
func (a AddMin[T]) E() T { return a.Inf }

// Mapping implements lazysegtree.Algebra.
func (a AddMin[T]) Mapping(f T, x T) T {
	if x == a.Inf {
		return x
	}
	return x + f
}

// Composition implements lazysegtree.Algebra.
func (a AddMin[T]) Composition(f, g T) T { return f + g }

// ID implements lazysegtree.Algebra.
func (a AddMin[T]) ID() T { return 0 }

// AddMax supports adding a constant to a range and querying range maximums.
// NegInf is the identity of max and must not be reached by any element.
type AddMax[T Number] struct {
	NegInf T
}

// NewAddMax returns an AddMax whose empty aggregate is negInf.
func NewAddMax[T Number](negInf T) AddMax[T] {
	return AddMax[T]{NegInf: negInf}
}

// Op implements lazysegtree.Algebra.
func (a AddMax[T]) Op(x, y T) T {
	if x > y {
		return x
	}
	return y
}

// E implements lazysegtree.Algebra.
func (a AddMax[T]) E() T { return a.NegInf }

// Mapping implements lazysegtree.Algebra.
func (a AddMax[T]) Mapping(f T, x T) T {
	if x == a.NegInf {
		return x
	}
	return x + f
}

// Composition implements lazysegtree.Algebra.
func (a AddMax[T]) Composition(f, g T) T { return f + g }

// ID implements lazysegtree.Algebra.
func (a AddMax[T]) ID() T { return 0 }

// AssignMin supports assigning a constant to a range and querying range
// minimums.
type AssignMin[T Number] struct {
	Inf T
}

// NewAssignMin returns an AssignMin whose empty aggregate is inf.
func NewAssignMin[T Number](inf T) AssignMin[T] {
	return AssignMin[T]{Inf: inf}
}

// Op implements lazysegtree.Algebra.
func (a AssignMin[T]) Op(x, y T) T {
	if x < y {
		return x
	}
	return y
}

// E implements lazysegtree.Algebra.
func (a AssignMin[T]) E() T { return a.Inf }

// Mapping implements lazysegtree.Algebra.
func (a AssignMin[T]) Mapping(f Assign[T], x T) T {
	if !f.Set {
		return x
	}
	return f.Value
}

// Composition implements lazysegtree.Algebra.
func (a AssignMin[T]) Composition(f, g Assign[T]) Assign[T] { return composeAssign(f, g) }

// ID implements lazysegtree.Algebra.
func (a AssignMin[T]) ID() Assign[T] { return Assign[T]{} }

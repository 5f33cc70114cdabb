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

// Algebra is the pair of monoids a Tree is built over: aggregates of type S
// combined by Op, and operators of type F acting on them.
//
// The following must hold for every x, f and g:
//
//	Op(E(), x) == Op(x, E()) == x
//	Mapping(ID(), x) == x
//	Composition(f, ID()) == Composition(ID(), f) == f
//	Mapping(Composition(f, g), x) == Mapping(f, Mapping(g, x))
//	Mapping(f, Op(x, y)) == Op(Mapping(f, x), Mapping(f, y))
//
// Op must be associative but need not be commutative.
type Algebra[S, F any] interface {
	// Op combines two adjacent aggregates, a on the left.
	Op(a, b S) S
	// E returns the identity of Op.
	E() S
	// Mapping applies the operator f to the aggregate x.
	Mapping(f F, x S) S
	// Composition returns the operator applying g first and then f.
	Composition(f, g F) F
	// ID returns the identity operator.
	ID() F
}

// Failer is implemented by algebras whose Mapping may be unable to compute
// an aggregate exactly (Segment Tree Beats). When IsFailed reports true for
// an internal node, the tree pushes the node's pending operator to its
// children and recomputes the node from them.
//
// The tree does not bound the cost of these repairs. Algebras such as
// range chmin/chmax with sum have a proven amortized bound; an IsFailed that
// fires without such a bound can make every update linear.
type Failer[S any] interface {
	IsFailed(x S) bool
}

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

import "math"

const (
	negInf = math.MinInt64
	posInf = math.MaxInt64
)

// BeatsNode is the aggregate of ClampAddSum. Max2 and Min2 are the second
// largest and second smallest distinct values, negInf and posInf when the
// node holds a single distinct value.
type BeatsNode struct {
	Max, Max2 int64
	MaxCnt    int64
	Min, Min2 int64
	MinCnt    int64
	Sum       int64
	Size      int64
	// Fail marks an aggregate a chmin or chmax could not be applied to.
	Fail bool
}

// Leaf returns the aggregate of the single element v.
func Leaf(v int64) BeatsNode {
	return BeatsNode{
		Max: v, Max2: negInf, MaxCnt: 1,
		Min: v, Min2: posInf, MinCnt: 1,
		Sum: v, Size: 1,
	}
}

// Leaves returns one single-element aggregate per value.
func Leaves(values []int64) []BeatsNode {
	out := make([]BeatsNode, len(values))
	for i, v := range values {
		out[i] = Leaf(v)
	}
	return out
}

// Clamp maps x to min(max(x+Add, Lo), Hi). Lo <= Hi always holds.
type Clamp struct {
	Add int64
	Lo  int64
	Hi  int64
}

// Add returns the operator adding v.
func Add(v int64) Clamp {
	return Clamp{Add: v, Lo: negInf, Hi: posInf}
}

// Chmin returns the operator x -> min(x, v).
func Chmin(v int64) Clamp {
	return Clamp{Lo: negInf, Hi: v}
}

// Chmax returns the operator x -> max(x, v).
func Chmax(v int64) Clamp {
	return Clamp{Lo: v, Hi: posInf}
}

// Eval applies c to a single value.
func (c Clamp) Eval(x int64) int64 {
	x += c.Add
	if x < c.Lo {
		x = c.Lo
	}
	if x > c.Hi {
		x = c.Hi
	}
	return x
}

// ClampAddSum is a Segment Tree Beats algebra supporting range chmin, range
// chmax and range add, and range sum, min and max queries. Element values
// must stay strictly between math.MinInt64 and math.MaxInt64.
type ClampAddSum struct{}

// Op implements lazysegtree.Algebra.
func (ClampAddSum) Op(a, b BeatsNode) BeatsNode {
	if a.Size == 0 {
		return b
	}
	if b.Size == 0 {
		return a
	}
	s := BeatsNode{Sum: a.Sum + b.Sum, Size: a.Size + b.Size}
	switch {
	case a.Max > b.Max:
		s.Max, s.MaxCnt, s.Max2 = a.Max, a.MaxCnt, max64(a.Max2, b.Max)
	case a.Max < b.Max:
		s.Max, s.MaxCnt, s.Max2 = b.Max, b.MaxCnt, max64(a.Max, b.Max2)
	default:
		s.Max, s.MaxCnt, s.Max2 = a.Max, a.MaxCnt+b.MaxCnt, max64(a.Max2, b.Max2)
	}
	switch {
	case a.Min < b.Min:
		s.Min, s.MinCnt, s.Min2 = a.Min, a.MinCnt, min64(a.Min2, b.Min)
	case a.Min > b.Min:
		s.Min, s.MinCnt, s.Min2 = b.Min, b.MinCnt, min64(a.Min, b.Min2)
	default:
		s.Min, s.MinCnt, s.Min2 = a.Min, a.MinCnt+b.MinCnt, min64(a.Min2, b.Min2)
	}
	return s
}

// E implements lazysegtree.Algebra.
func (ClampAddSum) E() BeatsNode {
	return BeatsNode{Max: negInf, Max2: negInf, Min: posInf, Min2: posInf}
}

// Mapping implements lazysegtree.Algebra.
func (ClampAddSum) Mapping(f Clamp, x BeatsNode) BeatsNode {
	if x.Size == 0 || x.Fail {
		return x
	}
	if f.Add != 0 {
		x.Max += f.Add
		x.Min += f.Add
		if x.Max2 != negInf {
			x.Max2 += f.Add
		}
		if x.Min2 != posInf {
			x.Min2 += f.Add
		}
		x.Sum += f.Add * x.Size
	}
	if x.Min == x.Max {
		v := f.Lo
		if x.Min > v {
			v = x.Min
		}
		if v > f.Hi {
			v = f.Hi
		}
		x.Min, x.Max = v, v
		x.Sum = v * x.Size
		return x
	}
	if f.Lo > x.Min {
		if f.Lo >= x.Min2 {
			x.Fail = true
			return x
		}
		x.Sum += (f.Lo - x.Min) * x.MinCnt
		if x.Max2 == x.Min {
			x.Max2 = f.Lo
		}
		x.Min = f.Lo
	}
	if f.Hi < x.Max {
		if f.Hi <= x.Max2 {
			x.Fail = true
			return x
		}
		x.Sum -= (x.Max - f.Hi) * x.MaxCnt
		if x.Min2 == x.Max {
			x.Min2 = f.Hi
		}
		x.Max = f.Hi
	}
	return x
}

// Composition implements lazysegtree.Algebra.
func (ClampAddSum) Composition(f, g Clamp) Clamp {
	c := Clamp{Add: g.Add + f.Add, Lo: g.Lo, Hi: g.Hi}
	if c.Lo != negInf {
		c.Lo += f.Add
	}
	if c.Hi != posInf {
		c.Hi += f.Add
	}
	// min(max(min(max(y, lo), hi), f.Lo), f.Hi) with y = x + c.Add.
	c.Lo = max64(c.Lo, f.Lo)
	c.Hi = min64(max64(c.Hi, f.Lo), f.Hi)
	if c.Lo > c.Hi {
		c.Lo = c.Hi
	}
	return c
}

// ID implements lazysegtree.Algebra.
func (ClampAddSum) ID() Clamp {
	return Clamp{Lo: negInf, Hi: posInf}
}

// IsFailed implements lazysegtree.Failer.
func (ClampAddSum) IsFailed(x BeatsNode) bool {
	return x.Fail
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

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

import (
	"math"
	"math/rand"
	"testing"

	"github.com/elliotchance/pie/v2"
	"github.com/stretchr/testify/require"
	"github.com/tikv/segtree/pkg/lazysegtree"
	"github.com/tikv/segtree/pkg/utils/testutil"
)

func randSumLen(r *rand.Rand) SumLen[int64] {
	n := r.Intn(5)
	s := SumLen[int64]{Len: n}
	for i := 0; i < n; i++ {
		s.Sum += r.Int63n(200) - 100
	}
	return s
}

func TestSumLenLaws(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	add, assign, affine := AddSum[int64]{}, AssignSum[int64]{}, Affine[int64]{}
	for i := 0; i < 1000; i++ {
		x, y := randSumLen(r), randSumLen(r)
		re.Equal(x, add.Op(add.E(), x))
		re.Equal(x, add.Op(x, add.E()))
		re.Equal(x, add.Mapping(add.ID(), x))
		re.Equal(x, assign.Mapping(assign.ID(), x))
		re.Equal(x, affine.Mapping(affine.ID(), x))

		f, g := r.Int63n(21)-10, r.Int63n(21)-10
		re.Equal(add.Mapping(f, add.Mapping(g, x)), add.Mapping(add.Composition(f, g), x))
		re.Equal(add.Op(add.Mapping(f, x), add.Mapping(f, y)), add.Mapping(f, add.Op(x, y)))

		af := AffineMap[int64]{Mul: r.Int63n(7) - 3, Add: r.Int63n(7) - 3}
		ag := AffineMap[int64]{Mul: r.Int63n(7) - 3, Add: r.Int63n(7) - 3}
		re.Equal(affine.Mapping(af, affine.Mapping(ag, x)), affine.Mapping(affine.Composition(af, ag), x))
		re.Equal(af, affine.Composition(af, affine.ID()))
		re.Equal(af, affine.Composition(affine.ID(), af))

		sf, sg := AssignTo(r.Int63n(10)), Assign[int64]{}
		if r.Intn(2) == 0 {
			sg = AssignTo(r.Int63n(10))
		}
		re.Equal(assign.Mapping(sf, assign.Mapping(sg, x)), assign.Mapping(assign.Composition(sf, sg), x))
		re.Equal(assign.Mapping(sg, assign.Mapping(sf, x)), assign.Mapping(assign.Composition(sg, sf), x))
	}
}

func TestExtremumLaws(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	amin := NewAddMin[int64](math.MaxInt64)
	amax := NewAddMax[int64](math.MinInt64)
	smin := NewAssignMin[int64](math.MaxInt64)
	for i := 0; i < 1000; i++ {
		x, y := r.Int63n(1000)-500, r.Int63n(1000)-500
		re.Equal(x, amin.Op(amin.E(), x))
		re.Equal(x, amax.Op(x, amax.E()))
		re.Equal(x, smin.Op(smin.E(), x))
		re.Equal(pie.Min([]int64{x, y}), amin.Op(x, y))
		re.Equal(pie.Max([]int64{x, y}), amax.Op(x, y))

		f, g := r.Int63n(21)-10, r.Int63n(21)-10
		re.Equal(amin.Mapping(f, amin.Mapping(g, x)), amin.Mapping(amin.Composition(f, g), x))
		re.Equal(amin.Op(amin.Mapping(f, x), amin.Mapping(f, y)), amin.Mapping(f, amin.Op(x, y)))
		re.Equal(amax.Op(amax.Mapping(f, x), amax.Mapping(f, y)), amax.Mapping(f, amax.Op(x, y)))
		re.Equal(amin.E(), amin.Mapping(f, amin.E()))
		re.Equal(amax.E(), amax.Mapping(f, amax.E()))

		a := AssignTo(f)
		re.Equal(f, smin.Mapping(a, smin.Op(x, y)))
		re.Equal(x, smin.Mapping(smin.ID(), x))
	}
}

func randClamp(r *rand.Rand) Clamp {
	switch r.Intn(4) {
	case 0:
		return Add(r.Int63n(41) - 20)
	case 1:
		return Chmin(r.Int63n(41) - 20)
	case 2:
		return Chmax(r.Int63n(41) - 20)
	default:
		return ClampAddSum{}.ID()
	}
}

func TestClampComposition(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	alg := ClampAddSum{}
	for i := 0; i < 2000; i++ {
		f, g, h := randClamp(r), randClamp(r), randClamp(r)
		fg := alg.Composition(f, g)
		re.LessOrEqual(fg.Lo, fg.Hi)
		left, right := alg.Composition(alg.Composition(f, g), h), alg.Composition(f, alg.Composition(g, h))
		re.Equal(f, alg.Composition(f, alg.ID()))
		re.Equal(f, alg.Composition(alg.ID(), f))
		for x := int64(-30); x <= 30; x++ {
			re.Equal(f.Eval(g.Eval(x)), fg.Eval(x), "f %+v g %+v x %d", f, g, x)
			re.Equal(left.Eval(x), right.Eval(x))
			re.Equal(Leaf(fg.Eval(x)), alg.Mapping(fg, Leaf(x)))
		}
	}
}

func TestClampMapping(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	alg := ClampAddSum{}
	re.Equal(alg.E(), alg.Mapping(Chmin(3), alg.E()))
	for i := 0; i < 2000; i++ {
		values := make([]int64, r.Intn(6)+1)
		for j := range values {
			values[j] = r.Int63n(21) - 10
		}
		x := alg.E()
		for _, v := range values {
			x = alg.Op(x, Leaf(v))
		}
		re.Equal(pie.Sum(values), x.Sum)
		re.Equal(pie.Max(values), x.Max)
		re.Equal(pie.Min(values), x.Min)

		f := randClamp(r)
		got := alg.Mapping(f, x)
		if got.Fail {
			continue
		}
		mapped := alg.E()
		for _, v := range values {
			mapped = alg.Op(mapped, Leaf(f.Eval(v)))
		}
		re.Equal(mapped.Sum, got.Sum, "values %v f %+v", values, f)
		re.Equal(mapped.Max, got.Max)
		re.Equal(mapped.Min, got.Min)
		re.Equal(mapped.MaxCnt, got.MaxCnt)
		re.Equal(mapped.MinCnt, got.MinCnt)
	}
}

func TestAssignMinTree(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	const n = 100
	ref := make([]int64, n)
	for i := range ref {
		ref[i] = r.Int63n(1000)
	}
	tr := lazysegtree.NewFromSlice[int64, Assign[int64]](NewAssignMin[int64](math.MaxInt64), ref)
	for op := 0; op < 1000; op++ {
		l, rr := r.Intn(n), r.Intn(n)
		if l > rr {
			l, rr = rr, l
		}
		rr++
		if r.Intn(2) == 0 {
			v := r.Int63n(1000)
			for i := l; i < rr; i++ {
				ref[i] = v
			}
			tr.ApplyRange(l, rr, AssignTo(v))
			continue
		}
		re.Equal(pie.Min(ref[l:rr]), tr.Prod(l, rr))
	}
	re.Equal(ref, tr.Values())
}

func TestAssignMinOnEmptyTree(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	alg := NewAssignMin[int64](math.MaxInt64)

	tr := lazysegtree.New[int64, Assign[int64]](alg, 4)
	tr.ApplyRange(0, 4, AssignTo[int64](5))
	re.Equal(int64(5), tr.Prod(0, 4))
	re.Equal(int64(5), tr.Get(2))

	// Padding leaves keep the identity.
	tr = lazysegtree.New[int64, Assign[int64]](alg, 5)
	tr.ApplyRange(0, 5, AssignTo[int64](7))
	re.Equal(int64(7), tr.AllProd())
	tr.ApplyRange(1, 3, AssignTo[int64](2))
	re.Equal(int64(2), tr.Prod(0, 5))
	re.Equal(int64(7), tr.Prod(3, 5))
	re.Equal([]int64{7, 2, 2, 7, 7}, tr.Values())
}

func TestAssignSumTree(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	r := testutil.NewRand(t)
	const n = 64
	ref := make([]float64, n)
	tr := lazysegtree.New[SumLen[float64], Assign[float64]](AssignSum[float64]{}, n)
	for i := range ref {
		ref[i] = float64(r.Intn(100)) / 4
		tr.Set(i, Elem(ref[i]))
	}
	for op := 0; op < 500; op++ {
		l, rr := r.Intn(n+1), r.Intn(n+1)
		if l > rr {
			l, rr = rr, l
		}
		if r.Intn(3) == 0 {
			v := float64(r.Intn(100)) / 4
			for i := l; i < rr; i++ {
				ref[i] = v
			}
			tr.ApplyRange(l, rr, AssignTo(v))
			continue
		}
		got := tr.Prod(l, rr)
		re.Equal(rr-l, got.Len)
		re.InDelta(pie.Sum(ref[l:rr]), got.Sum, 1e-9)
	}
}

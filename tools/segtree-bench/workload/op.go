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
	"fmt"
	"math/rand"
)

// OpType is the type of a workload operation.
type OpType int

// Operation types.
const (
	OpSet OpType = iota
	OpApply
	OpApplyRange
	OpGet
	OpProd
	OpMaxRight
	OpMinLeft
	opTypeCount
)

var opTypeNames = [...]string{
	OpSet:        "set",
	OpApply:      "apply",
	OpApplyRange: "apply-range",
	OpGet:        "get",
	OpProd:       "prod",
	OpMaxRight:   "max-right",
	OpMinLeft:    "min-left",
}

func (t OpType) String() string {
	if t < 0 || t >= opTypeCount {
		return fmt.Sprintf("unknown(%d)", int(t))
	}
	return opTypeNames[t]
}

// AllOpTypes returns every operation type.
func AllOpTypes() []OpType {
	types := make([]OpType, 0, opTypeCount)
	for t := OpSet; t < opTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// UpdateKind selects the operator an update carries. Subjects that only have
// one kind of operator ignore it.
type UpdateKind int

// Update kinds.
const (
	UpdateAdd UpdateKind = iota
	UpdateChmin
	UpdateChmax
	updateKindCount
)

// Op is a single operation. Point operations use L as the index; MaxRight
// starts at L and MinLeft at R. Value is the new element, the operator
// argument or the predicate limit.
type Op struct {
	Type  OpType
	Kind  UpdateKind
	L, R  int
	Value int64
}

func (op Op) String() string {
	return fmt.Sprintf("%s{kind:%d l:%d r:%d value:%d}", op.Type, op.Kind, op.L, op.R, op.Value)
}

// Generator produces random operations over a tree of fixed length.
type Generator struct {
	r        *rand.Rand
	n        int
	maxValue int64
}

// NewGenerator creates a Generator. n must be positive.
func NewGenerator(seed int64, n int, maxValue int64) *Generator {
	return &Generator{
		r:        rand.New(rand.NewSource(seed)),
		n:        n,
		maxValue: maxValue,
	}
}

// Values returns n random initial elements in [0, maxValue).
func (g *Generator) Values() []int64 {
	values := make([]int64, g.n)
	for i := range values {
		values[i] = g.r.Int63n(g.maxValue)
	}
	return values
}

// Next returns a random operation.
func (g *Generator) Next() Op {
	op := Op{
		Type:  OpType(g.r.Intn(int(opTypeCount))),
		Kind:  UpdateKind(g.r.Intn(int(updateKindCount))),
		Value: g.r.Int63n(g.maxValue),
	}
	switch op.Type {
	case OpSet, OpApply, OpGet:
		op.L = g.r.Intn(g.n)
	default:
		op.L, op.R = g.r.Intn(g.n+1), g.r.Intn(g.n+1)
		if op.L > op.R {
			op.L, op.R = op.R, op.L
		}
	}
	if op.Type == OpMaxRight || op.Type == OpMinLeft {
		// Cover a few elements on average for sum predicates.
		op.Value *= int64(g.r.Intn(8) + 1)
	}
	return op
}

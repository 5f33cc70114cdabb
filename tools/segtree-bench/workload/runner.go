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
	"context"
	"reflect"
	"time"

	"github.com/pingcap/errors"
	"github.com/tikv/segtree/pkg/errs"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// checkInterval is how many operations run between context checks.
const checkInterval = 1024

// Stats counts the progress of a run. It may be read while the run goes on.
type Stats struct {
	Ops     atomic.Uint64
	Queries atomic.Uint64
	Updates atomic.Uint64
	Repairs atomic.Uint64
}

// Observer is called after every operation of a run.
type Observer func(t OpType, cost time.Duration)

func isQuery(t OpType) bool {
	return t == OpGet || t == OpProd || t == OpMaxRight || t == OpMinLeft
}

// Verify runs ops random operations of round against both the tree and the
// brute force model of s, and returns ErrVerifyMismatch on the first
// operation whose results differ.
func Verify(ctx context.Context, s Subject, gen *Generator, round, ops int) error {
	for i := 0; i < ops; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}
		}
		op := gen.Next()
		got, want := s.Do(op), s.Reference(op)
		if !reflect.DeepEqual(got, want) {
			return errs.ErrVerifyMismatch.FastGenByArgs(op.String(), round, i, got, want)
		}
	}
	return nil
}

// NewLimiter returns a limiter admitting opsPerSecond operations per second
// to Run, or nil for no limit.
func NewLimiter(opsPerSecond int) *rate.Limiter {
	if opsPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(opsPerSecond), checkInterval)
}

// Run applies ops random operations to the tree of s only, timing each of
// them. The brute force model is left untouched. A nil limiter runs
// unthrottled.
func Run(ctx context.Context, s Subject, gen *Generator, ops int, stats *Stats, observe Observer, limiter *rate.Limiter) error {
	repairs := s.Repairs()
	defer func() {
		stats.Repairs.Add(s.Repairs() - repairs)
	}()
	for i := 0; i < ops; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return errors.WithStack(err)
			}
			if limiter != nil {
				batch := ops - i
				if batch > checkInterval {
					batch = checkInterval
				}
				if err := limiter.WaitN(ctx, batch); err != nil {
					return errors.WithStack(err)
				}
			}
		}
		op := gen.Next()
		start := time.Now()
		s.Do(op)
		cost := time.Since(start)

		stats.Ops.Inc()
		if isQuery(op.Type) {
			stats.Queries.Inc()
		} else {
			stats.Updates.Inc()
		}
		if observe != nil {
			observe(op.Type, cost)
		}
	}
	return nil
}

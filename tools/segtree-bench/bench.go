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

package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/pingcap/log"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/movingaverage"
	"github.com/tikv/segtree/tools/segtree-bench/config"
	"github.com/tikv/segtree/tools/segtree-bench/workload"
	"go.uber.org/zap"
)

// newRound builds the generator and the subject of a round. Every round
// derives its seed from the configured one so a run can be replayed.
func newRound(cfg *config.Config, round int) (*workload.Generator, workload.Subject, error) {
	gen := workload.NewGenerator(cfg.Seed+int64(round), cfg.Length, cfg.MaxValue)
	s, err := workload.NewSubject(cfg.Algebra, gen.Values())
	if err != nil {
		return nil, nil, err
	}
	return gen, s, nil
}

func verify(ctx context.Context, cfg *config.Config, w io.Writer) error {
	for round := 0; round < cfg.Rounds; round++ {
		gen, s, err := newRound(cfg, round)
		if err != nil {
			return err
		}
		if err := workload.Verify(ctx, s, gen, round, cfg.Ops); err != nil {
			log.Error("verify failed", zap.Int("round", round), zap.Int64("seed", cfg.Seed), errs.ZapError(err))
			return err
		}
		log.Info("round verified",
			zap.Int("round", round),
			zap.Int("length", s.Len()),
			zap.Uint64("repairs", s.Repairs()))
	}
	fmt.Fprintf(w, "verified %d round(s) of %d ops on %s, seed %d\n", cfg.Rounds, cfg.Ops, cfg.Algebra, cfg.Seed)
	return nil
}

func bench(ctx context.Context, cfg *config.Config, w io.Writer) error {
	var (
		stats   workload.Stats
		wg      sync.WaitGroup
		observe = newObserver()
		limiter = workload.NewLimiter(cfg.Rate)
	)
	if cfg.StatusAddr != "" {
		stop := serveStatus(cfg.StatusAddr, &stats)
		defer stop()
	}
	reportCtx, cancel := context.WithCancel(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		showStats(reportCtx, &stats, cfg.ReportInterval.Duration)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	start := time.Now()
	for round := 0; round < cfg.Rounds; round++ {
		gen, s, err := newRound(cfg, round)
		if err != nil {
			return err
		}
		treeLength.Set(float64(s.Len()))
		log.Info("start round",
			zap.Int("round", round),
			zap.String("algebra", cfg.Algebra),
			zap.Int("length", s.Len()),
			zap.String("arena", units.HumanSize(float64(s.ArenaBytes()))),
			zap.String("rss", units.HumanSize(float64(processRSS()))))

		repairs := stats.Repairs.Load()
		if err := workload.Run(ctx, s, gen, cfg.Ops, &stats, observe, limiter); err != nil {
			return err
		}
		repairsCounter.Add(float64(stats.Repairs.Load() - repairs))
	}
	printSummary(w, &stats, time.Since(start))
	return nil
}

// statsWindow is the number of intervals the reported rates cover.
const statsWindow = 6

func showStats(ctx context.Context, stats *workload.Stats, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var (
		mean = movingaverage.NewSMA(statsWindow)
		rate = movingaverage.NewMedianFilter(statsWindow)
		peak = movingaverage.NewMaxFilter(statsWindow)
		low  = movingaverage.NewMinFilter(statsWindow)
	)
	last, lastTime := uint64(0), time.Now()
	for {
		select {
		case <-ticker.C:
			ops, now := stats.Ops.Load(), time.Now()
			cur := float64(ops-last) / now.Sub(lastTime).Seconds()
			for _, ma := range []movingaverage.MovingAvg{mean, rate, peak, low} {
				ma.Add(cur)
			}
			log.Info("progress",
				zap.Uint64("ops", ops),
				zap.Float64("ops-per-second", cur),
				zap.Float64("mean-ops-per-second", mean.Get()),
				zap.Float64("median-ops-per-second", rate.Get()),
				zap.Float64("max-ops-per-second", peak.Get()),
				zap.Float64("min-ops-per-second", low.Get()),
				zap.Uint64("repairs", stats.Repairs.Load()))
			last, lastTime = ops, now
		case <-ctx.Done():
			return
		}
	}
}

func printSummary(w io.Writer, stats *workload.Stats, elapsed time.Duration) {
	ops := stats.Ops.Load()
	var rate float64
	if elapsed > 0 {
		rate = float64(ops) / elapsed.Seconds()
	}
	fmt.Fprintf(w, "ops: %d (queries %d, updates %d)\n", ops, stats.Queries.Load(), stats.Updates.Load())
	fmt.Fprintf(w, "elapsed: %s, ops/sec: %.0f\n", elapsed, rate)
	fmt.Fprintf(w, "repairs: %d\n", stats.Repairs.Load())
}

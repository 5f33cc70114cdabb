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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tikv/segtree/tools/segtree-bench/workload"
)

var (
	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "segtree",
			Subsystem: "bench",
			Name:      "op_duration_seconds",
			Help:      "Bucketed histogram of the latency of tree operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0000001, 2, 24), // 100ns ~ 838ms
		}, []string{"type"})

	repairsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "segtree",
			Subsystem: "bench",
			Name:      "repairs_total",
			Help:      "Counter of nodes pushed again because their aggregate failed after an update.",
		})

	treeLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "segtree",
			Subsystem: "bench",
			Name:      "tree_length",
			Help:      "Number of elements of the tree under test.",
		})
)

func init() {
	prometheus.MustRegister(opDuration)
	prometheus.MustRegister(repairsCounter)
	prometheus.MustRegister(treeLength)
}

// newObserver caches one histogram per operation type.
func newObserver() workload.Observer {
	observers := make([]prometheus.Observer, len(workload.AllOpTypes()))
	for _, t := range workload.AllOpTypes() {
		observers[t] = opDuration.WithLabelValues(t.String())
	}
	return func(t workload.OpType, cost time.Duration) {
		observers[t].Observe(cost.Seconds())
	}
}

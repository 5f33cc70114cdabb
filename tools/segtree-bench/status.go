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
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/versioninfo"
	"github.com/tikv/segtree/tools/segtree-bench/workload"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// status is the body of GET /status.
type status struct {
	BuildTS        string `json:"build_ts"`
	Version        string `json:"version"`
	GitHash        string `json:"git_hash"`
	StartTimestamp int64  `json:"start_timestamp"`
	Ops            uint64 `json:"ops"`
	Queries        uint64 `json:"queries"`
	Updates        uint64 `json:"updates"`
	Repairs        uint64 `json:"repairs"`
	RSS            uint64 `json:"rss"`
}

type statusHandler struct {
	stats *workload.Stats
	start time.Time
	rd    *render.Render
}

func (h *statusHandler) getStatus(w http.ResponseWriter, _ *http.Request) {
	h.rd.JSON(w, http.StatusOK, status{
		BuildTS:        versioninfo.BuildTS,
		Version:        versioninfo.ReleaseVersion,
		GitHash:        versioninfo.GitHash,
		StartTimestamp: h.start.Unix(),
		Ops:            h.stats.Ops.Load(),
		Queries:        h.stats.Queries.Load(),
		Updates:        h.stats.Updates.Load(),
		Repairs:        h.stats.Repairs.Load(),
		RSS:            processRSS(),
	})
}

func newStatusRouter(stats *workload.Stats) *mux.Router {
	h := &statusHandler{
		stats: stats,
		start: time.Now(),
		rd:    render.New(render.Options{IndentJSON: true}),
	}
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/status", h.getStatus).Methods(http.MethodGet)
	return router
}

// serveStatus exposes the metrics and the progress of stats on addr until the
// returned function is called.
func serveStatus(addr string, stats *workload.Stats) func() {
	srv := &http.Server{Addr: addr, Handler: newStatusRouter(stats), ReadHeaderTimeout: 3 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("status server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("status server stopped", errs.ZapError(errs.ErrStatusServer, err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("failed to shut down status server", errs.ZapError(err))
		}
		<-done
	}
}

// processRSS returns the resident set size of the bench, 0 when unknown.
func processRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0
	}
	return mem.RSS
}

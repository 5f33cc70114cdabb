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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pingcap/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/versioninfo"
	"github.com/tikv/segtree/tools/segtree-bench/workload"
)

func execute(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCommand(ctx)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	re := require.New(t)
	for _, algebra := range []string{"add-sum", "clamp-add-sum"} {
		out, err := execute(context.Background(), "verify",
			"-n", "300", "--ops", "2000", "--rounds", "3", "--seed", "42",
			"--algebra", algebra, "-L", "error")
		re.NoError(err)
		re.Contains(out, "verified 3 round(s) of 2000 ops on "+algebra+", seed 42")
	}
}

func TestRunCommand(t *testing.T) {
	re := require.New(t)
	repairs := testutil.ToFloat64(repairsCounter)
	out, err := execute(context.Background(), "run",
		"-n", "128", "--ops", "5000", "--seed", "7", "--algebra", "clamp-add-sum",
		"--max-value", "1000000", "--status-addr", "127.0.0.1:0", "-L", "error")
	re.NoError(err)
	re.Contains(out, "ops: 5000")
	re.Contains(out, "ops/sec")
	re.Equal(float64(128), testutil.ToFloat64(treeLength))
	re.Greater(testutil.ToFloat64(repairsCounter), repairs)

	rec := httptest.NewRecorder()
	newStatusRouter(&workload.Stats{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	re.Equal(http.StatusOK, rec.Code)
	re.Contains(rec.Body.String(), `segtree_bench_op_duration_seconds_count{type="apply-range"}`)
}

func TestStatus(t *testing.T) {
	re := require.New(t)
	var stats workload.Stats
	stats.Ops.Store(12)
	stats.Updates.Store(5)
	stats.Queries.Store(7)
	stats.Repairs.Store(3)
	router := newStatusRouter(&stats)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	re.Equal(http.StatusOK, rec.Code)
	var got status
	re.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	re.Equal(uint64(12), got.Ops)
	re.Equal(uint64(5), got.Updates)
	re.Equal(uint64(7), got.Queries)
	re.Equal(uint64(3), got.Repairs)
	re.Equal(versioninfo.ReleaseVersion, got.Version)
	re.Positive(got.StartTimestamp)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
	re.Equal(http.StatusMethodNotAllowed, rec.Code)
}

func TestProcessRSS(t *testing.T) {
	require.Positive(t, processRSS())
}

func TestCommandErrors(t *testing.T) {
	re := require.New(t)
	_, err := execute(context.Background(), "verify", "--algebra", "xor-sum")
	re.True(errs.ErrUnknownAlgebra.Equal(err))

	_, err = execute(context.Background(), "run", "--help")
	re.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = execute(ctx, "verify", "-n", "10", "-L", "error")
	re.Equal(context.Canceled, errors.Cause(err))
}

func TestVersionCommand(t *testing.T) {
	re := require.New(t)
	out, err := execute(context.Background(), "version")
	re.NoError(err)
	re.Contains(out, "Release Version:")
}

func TestShowStats(t *testing.T) {
	var stats workload.Stats
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		showStats(ctx, &stats, time.Millisecond)
	}()
	for i := 0; i < 50; i++ {
		stats.Ops.Add(100)
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
}

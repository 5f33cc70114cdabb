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
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/tikv/segtree/pkg/utils/configutil"
	"github.com/tikv/segtree/pkg/utils/logutil"
	"github.com/tikv/segtree/pkg/versioninfo"
	"github.com/tikv/segtree/tools/segtree-bench/config"
	"go.uber.org/zap"
)

const toolName = "segtree-bench"

func main() {
	defer logutil.LogPanic()

	ctx, cancel := context.WithCancel(context.Background())
	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		sig := <-sc
		log.Info("got signal to exit", zap.String("signal", sig.String()))
		cancel()
	}()

	err := newRootCommand(ctx).Execute()
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

type action func(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error

func newRootCommand(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   toolName,
		Short: "randomized workloads against the lazy segment tree",
	}
	root.AddCommand(
		newCommand(ctx, "verify", "check every operation against a brute force model",
			func(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
				return verify(ctx, cfg, cmd.OutOrStdout())
			}),
		newCommand(ctx, "run", "measure the throughput of random operations",
			func(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
				return bench(ctx, cfg, cmd.OutOrStdout())
			}),
		&cobra.Command{
			Use:   "version",
			Short: "print the version information",
			Run: func(cmd *cobra.Command, _ []string) {
				versioninfo.Print(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// newCommand leaves flag parsing to config.Config, which also reads the
// config file.
func newCommand(ctx context.Context, use, short string, run action) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			err := cfg.Parse(args)
			switch errors.Cause(err) {
			case nil:
			case flag.ErrHelp:
				return nil
			default:
				return err
			}
			configutil.PrintConfigCheckMsg(cmd.ErrOrStderr(), cfg.WarningMsgs)

			if err := logutil.SetupLogger(cfg.Log, &cfg.Logger, &cfg.LogProps); err != nil {
				return err
			}
			log.ReplaceGlobals(cfg.Logger, cfg.LogProps)
			defer log.Sync()

			versioninfo.Log(toolName)
			log.Info("config", zap.Reflect("config", cfg))
			return run(ctx, cfg, cmd)
		},
	}
}

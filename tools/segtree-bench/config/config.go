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

package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	flag "github.com/spf13/pflag"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/utils/configutil"
	"github.com/tikv/segtree/pkg/utils/typeutil"
	"github.com/tikv/segtree/tools/segtree-bench/workload"
	"go.uber.org/zap"
)

const (
	defaultLength         = 100000
	defaultOps            = 1000000
	defaultRounds         = 1
	defaultAlgebra        = workload.AddSumAlgebra
	defaultMaxValue       = 1000
	defaultReportInterval = 10 * time.Second

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config is the segtree-bench configuration.
type Config struct {
	flagSet    *flag.FlagSet
	configFile string

	Log      log.Config `toml:"log" json:"log"`
	Logger   *zap.Logger
	LogProps *log.ZapProperties

	StatusAddr     string            `toml:"status-addr" json:"status-addr"`
	Length         int               `toml:"length" json:"length"`
	Ops            int               `toml:"ops" json:"ops"`
	Rounds         int               `toml:"rounds" json:"rounds"`
	Seed           int64             `toml:"seed" json:"seed"`
	Algebra        string            `toml:"algebra" json:"algebra"`
	MaxValue       int64             `toml:"max-value" json:"max-value"`
	Rate           int               `toml:"rate" json:"rate"`
	ReportInterval typeutil.Duration `toml:"report-interval" json:"report-interval"`

	// WarningMsgs holds undecoded config keys.
	WarningMsgs []string
}

// NewConfig return a set of settings.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.flagSet = flag.NewFlagSet("segtree-bench", flag.ContinueOnError)
	fs := cfg.flagSet
	fs.StringVar(&cfg.configFile, "config", "", "config file")
	fs.StringVar(&cfg.StatusAddr, "status-addr", "", "address to serve metrics on, disabled when empty")
	fs.IntVarP(&cfg.Length, "length", "n", 0, "number of elements in the tree")
	fs.IntVar(&cfg.Ops, "ops", 0, "operations per round")
	fs.IntVar(&cfg.Rounds, "rounds", 0, "number of rounds")
	fs.Int64("seed", 0, "random seed, the current time when zero")
	fs.StringVar(&cfg.Algebra, "algebra", "", "algebra of the tree, add-sum or clamp-add-sum")
	fs.Int64Var(&cfg.MaxValue, "max-value", 0, "exclusive upper bound of generated values")
	fs.Int("rate", 0, "operations per second of the run command, unlimited when zero")
	fs.StringP("log-level", "L", "", "log level: debug, info, warn, error, fatal")
	fs.String("log-file", "", "log file path")
	return cfg
}

// FlagSet returns the flags so a command can register them.
func (c *Config) FlagSet() *flag.FlagSet {
	return c.flagSet
}

// Parse parses flag definitions from the argument list.
func (c *Config) Parse(arguments []string) error {
	// Parse first to get config file.
	err := c.flagSet.Parse(arguments)
	if err != nil {
		return errors.WithStack(err)
	}

	// Load config file if specified.
	var meta *toml.MetaData
	if c.configFile != "" {
		meta, err = configutil.ConfigFromFile(c, c.configFile)
		if err != nil {
			return err
		}
	}

	// Parse again to replace with command line options.
	err = c.flagSet.Parse(arguments)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(c.flagSet.Args()) != 0 {
		return errors.Errorf("'%s' is an invalid flag", c.flagSet.Arg(0))
	}

	return c.Adjust(meta)
}

// Adjust is used to adjust configurations
func (c *Config) Adjust(meta *toml.MetaData) error {
	configMeta := configutil.NewConfigMetadata(meta)
	if err := configMeta.CheckUndecoded(); err != nil {
		c.WarningMsgs = append(c.WarningMsgs, err.Error())
	}

	// Command line flags win over the config file.
	configutil.AdjustCommandlineString(c.flagSet, &c.Log.Level, "log-level")
	configutil.AdjustCommandlineString(c.flagSet, &c.Log.File.Filename, "log-file")
	configutil.AdjustCommandlineInt64(c.flagSet, &c.Seed, "seed")
	configutil.AdjustCommandlineInt(c.flagSet, &c.Rate, "rate")

	logMeta := configMeta.Child("log")
	if !logMeta.IsDefined("level") {
		configutil.AdjustString(&c.Log.Level, defaultLogLevel)
	}
	if !logMeta.IsDefined("format") {
		configutil.AdjustString(&c.Log.Format, defaultLogFormat)
	}
	if !configMeta.IsDefined("length") {
		configutil.AdjustInt(&c.Length, defaultLength)
	}
	if !configMeta.IsDefined("ops") {
		configutil.AdjustInt(&c.Ops, defaultOps)
	}
	if !configMeta.IsDefined("rounds") {
		configutil.AdjustInt(&c.Rounds, defaultRounds)
	}
	if !configMeta.IsDefined("max-value") {
		configutil.AdjustInt64(&c.MaxValue, defaultMaxValue)
	}
	configutil.AdjustString(&c.Algebra, defaultAlgebra)
	configutil.AdjustDuration(&c.ReportInterval, defaultReportInterval)
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Validate()
}

// Validate checks the adjusted configuration.
func (c *Config) Validate() error {
	if c.Length <= 0 {
		return errors.Errorf("length must be positive, got %d", c.Length)
	}
	if c.Ops < 0 || c.Rounds < 0 || c.Rate < 0 {
		return errors.Errorf("ops, rounds and rate must not be negative, got %d, %d and %d", c.Ops, c.Rounds, c.Rate)
	}
	if c.MaxValue <= 0 {
		return errors.Errorf("max-value must be positive, got %d", c.MaxValue)
	}
	if c.Algebra != workload.AddSumAlgebra && c.Algebra != workload.ClampAddSumAlgebra {
		return errs.ErrUnknownAlgebra.FastGenByArgs(c.Algebra)
	}
	return nil
}

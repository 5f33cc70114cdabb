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

package configutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"github.com/tikv/segtree/pkg/utils/typeutil"
)

func TestPrintConfigCheckMsg(t *testing.T) {
	// Define test cases
	tests := []struct {
		name        string
		warningMsgs []string
		want        string
	}{
		{
			name:        "no warnings",
			warningMsgs: []string{},
			want:        "config check successful\n",
		},
		{
			name:        "with warnings",
			warningMsgs: []string{"warning message 1", "warning message 2"},
			want:        "warning message 1\nwarning message 2\n",
		},
	}

	// Run tests
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Redirect output to a buffer to capture the output
			var buf bytes.Buffer
			PrintConfigCheckMsg(&buf, tt.warningMsgs)

			// Compare the output to the expected value
			if got := buf.String(); got != tt.want {
				t.Errorf("PrintConfigCheckMsg() = %q, want %q", got, tt.want)
			}
		})
	}
}

type testConfig struct {
	Length int    `toml:"length"`
	Seed   int64  `toml:"seed"`
	Name   string `toml:"name"`
	Log    struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

func TestConfigFromFile(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	re.NoError(os.WriteFile(path, []byte("length = 10\nunknown = 1\n[log]\nlevel = \"debug\"\n"), 0o600))

	cfg := &testConfig{}
	meta, err := ConfigFromFile(cfg, path)
	re.NoError(err)
	re.Equal(10, cfg.Length)
	re.Equal("debug", cfg.Log.Level)

	m := NewConfigMetadata(meta)
	re.True(m.IsDefined("length"))
	re.False(m.IsDefined("seed"))
	re.True(m.Child("log").IsDefined("level"))
	re.Error(m.CheckUndecoded())
	re.NoError(NewConfigMetadata(nil).CheckUndecoded())

	_, err = ConfigFromFile(cfg, filepath.Join(t.TempDir(), "missing.toml"))
	re.Error(err)
}

func TestAdjust(t *testing.T) {
	t.Parallel()
	re := require.New(t)
	cfg := &testConfig{Seed: 3}
	AdjustInt(&cfg.Length, 100)
	AdjustInt64(&cfg.Seed, 7)
	AdjustString(&cfg.Name, "add-sum")
	re.Equal(100, cfg.Length)
	re.Equal(int64(3), cfg.Seed)
	re.Equal("add-sum", cfg.Name)

	var d typeutil.Duration
	AdjustDuration(&d, time.Second)
	re.Equal(time.Second, d.Duration)
	d = typeutil.NewDuration(time.Minute)
	AdjustDuration(&d, time.Second)
	re.Equal(time.Minute, d.Duration)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("name", "", "")
	fs.Int("length", 0, "")
	fs.Int64("seed", 0, "")
	re.NoError(fs.Parse([]string{"--name=clamp-add-sum", "--seed=0"}))
	AdjustCommandlineString(fs, &cfg.Name, "name")
	AdjustCommandlineInt(fs, &cfg.Length, "length")
	AdjustCommandlineInt64(fs, &cfg.Seed, "seed")
	re.Equal("clamp-add-sum", cfg.Name)
	re.Equal(100, cfg.Length)
	re.Equal(int64(0), cfg.Seed)
}

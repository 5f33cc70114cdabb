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

package ctl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/versioninfo"
	"github.com/tikv/segtree/tools/segtree-ctl/ctl/command"
)

func init() {
	cobra.EnablePrefixMatching = true
}

// GetRootCmd returns the command tree bound to s.
func GetRootCmd(s *command.Session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "segtree-ctl",
		Short: "Lazy segment tree control",
	}

	rootCmd.AddCommand(
		command.NewInitCommand(s),
		command.NewGetCommand(s),
		command.NewSetCommand(s),
		command.NewProdCommand(s),
		command.NewAddCommand(s),
		command.NewChminCommand(s),
		command.NewChmaxCommand(s),
		command.NewMaxRightCommand(s),
		command.NewMinLeftCommand(s),
		command.NewDumpCommand(s),
	)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd
}

// MainStart start main command
func MainStart(args []string) {
	s := command.NewSession()
	rootCmd := GetRootCmd(s)

	rootCmd.Flags().BoolP("interact", "i", false, "Run segtree-ctl with readline.")
	rootCmd.Flags().BoolP("version", "V", false, "Print version information and exit.")

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			versioninfo.Print(cmd.OutOrStdout())
			return
		}
		if v, err := cmd.Flags().GetBool("interact"); err == nil && v {
			readlineCompleter := readline.NewPrefixCompleter(genCompleter(cmd)...)
			loop(s, readlineCompleter)
			return
		}
		if err := RunScript(s, os.Stdin, cmd.OutOrStdout()); err != nil {
			cmd.Println(err)
		}
	}

	rootCmd.SetArgs(args)
	rootCmd.SetOutput(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		rootCmd.Println(err)
		os.Exit(1)
	}
}

// execute runs one line against the command tree of s. It reports whether
// the line asks to leave.
func execute(s *command.Session, line string, w io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	if line == "exit" {
		return true
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		fmt.Fprintln(w, errs.ErrParseArgs.FastGenByArgs(err.Error()))
		return false
	}

	rootCmd := GetRootCmd(s)
	rootCmd.SetOutput(w)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		rootCmd.Println(err)
	}
	return false
}

// RunScript executes r line by line until it ends or a line reads exit.
func RunScript(s *command.Session, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if execute(s, scanner.Text(), w) {
			return nil
		}
	}
	return errors.WithStack(scanner.Err())
}

func loop(s *command.Session, readlineCompleter readline.AutoCompleter) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[32m»\033[0m ",
		HistoryFile:       "/tmp/segtree-ctl.tmp",
		AutoComplete:      readlineCompleter,
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				break
			}
			continue
		}
		if execute(s, line, l.Stdout()) {
			break
		}
	}
}

func genCompleter(cmd *cobra.Command) []readline.PrefixCompleterInterface {
	pc := []readline.PrefixCompleterInterface{}

	for _, v := range cmd.Commands() {
		if v.HasFlags() {
			flagsPc := []readline.PrefixCompleterInterface{}
			flagUsages := strings.Split(strings.Trim(v.Flags().FlagUsages(), " "), "\n")
			for i := 0; i < len(flagUsages)-1; i++ {
				flagsPc = append(flagsPc, readline.PcItem(strings.Split(strings.Trim(flagUsages[i], " "), " ")[0]))
			}
			flagsPc = append(flagsPc, genCompleter(v)...)
			pc = append(pc, readline.PcItem(strings.Split(v.Use, " ")[0], flagsPc...))
		} else {
			pc = append(pc, readline.PcItem(strings.Split(v.Use, " ")[0], genCompleter(v)...))
		}
	}
	return pc
}

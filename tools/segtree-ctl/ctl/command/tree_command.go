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

package command

import (
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/tikv/segtree/pkg/lazysegtree/algebra"
)

// NewInitCommand returns a init subcommand of rootCmd
func NewInitCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "init <value>...",
		Short:              "build a tree over the given values, replacing the current one",
		DisableFlagParsing: true,
		Run: guarded(s, false, -1, func(cmd *cobra.Command, args []string) error {
			values, err := parseElements(args)
			if err != nil {
				return err
			}
			s.Init(values)
			cmd.Printf("tree of %d element(s), %d leaf slot(s)\n", s.tree.Len(), s.tree.Size())
			return nil
		}),
	}
}

// NewGetCommand returns a get subcommand of rootCmd
func NewGetCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "get <index>",
		Short:              "show the element at index",
		DisableFlagParsing: true,
		Run: guarded(s, true, 1, func(cmd *cobra.Command, args []string) error {
			p, err := parseIndexes(args)
			if err != nil {
				return err
			}
			cmd.Println(s.tree.Get(p[0]).Sum)
			return nil
		}),
	}
}

// NewSetCommand returns a set subcommand of rootCmd
func NewSetCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "set <index> <value>",
		Short:              "overwrite the element at index",
		DisableFlagParsing: true,
		Run: guarded(s, true, 2, func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			if err := checkElement(v[1]); err != nil {
				return err
			}
			s.tree.Set(int(v[0]), algebra.Leaf(v[1]))
			cmd.Println("Success!")
			return nil
		}),
	}
}

// NewProdCommand returns a prod subcommand of rootCmd
func NewProdCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "prod <l> <r>",
		Short:              "show sum, min and max over [l, r)",
		DisableFlagParsing: true,
		Run: guarded(s, true, 2, func(cmd *cobra.Command, args []string) error {
			b, err := parseIndexes(args)
			if err != nil {
				return err
			}
			x := s.tree.Prod(b[0], b[1])
			if x.Size == 0 {
				cmd.Println("empty range")
				return nil
			}
			cmd.Printf("sum: %d, min: %d, max: %d\n", x.Sum, x.Min, x.Max)
			return nil
		}),
	}
}

// checkFunc validates an update of [l, r) by v before it is applied.
type checkFunc func(l, r int, v int64) error

func checkBound(_, _ int, v int64) error {
	return checkElement(v)
}

func newUpdateCommand(s *Session, use, short string, op func(v int64) algebra.Clamp, check checkFunc) *cobra.Command {
	return &cobra.Command{
		Use:                use + " <l> <r> <value>",
		Short:              short,
		DisableFlagParsing: true,
		Run: guarded(s, true, 3, func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			if err := check(int(v[0]), int(v[1]), v[2]); err != nil {
				return err
			}
			repairs := s.tree.Repairs()
			s.tree.ApplyRange(int(v[0]), int(v[1]), op(v[2]))
			cmd.Printf("Success! %d repair(s)\n", s.tree.Repairs()-repairs)
			return nil
		}),
	}
}

// NewAddCommand returns a add subcommand of rootCmd
func NewAddCommand(s *Session) *cobra.Command {
	return newUpdateCommand(s, "add", "add value to every element in [l, r)", algebra.Add, s.checkAdd)
}

// NewChminCommand returns a chmin subcommand of rootCmd
func NewChminCommand(s *Session) *cobra.Command {
	return newUpdateCommand(s, "chmin", "lower every element in [l, r) above value to value", algebra.Chmin, checkBound)
}

// NewChmaxCommand returns a chmax subcommand of rootCmd
func NewChmaxCommand(s *Session) *cobra.Command {
	return newUpdateCommand(s, "chmax", "raise every element in [l, r) below value to value", algebra.Chmax, checkBound)
}

// NewMaxRightCommand returns a max-right subcommand of rootCmd
func NewMaxRightCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "max-right <l> <limit>",
		Short:              "show the largest r such that max over [l, r) is at most limit",
		DisableFlagParsing: true,
		Run: guarded(s, true, 2, func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			cmd.Println(s.tree.MaxRight(int(v[0]), atMost(v[1])))
			return nil
		}),
	}
}

// NewMinLeftCommand returns a min-left subcommand of rootCmd
func NewMinLeftCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "min-left <r> <limit>",
		Short:              "show the smallest l such that max over [l, r) is at most limit",
		DisableFlagParsing: true,
		Run: guarded(s, true, 2, func(cmd *cobra.Command, args []string) error {
			v, err := parseInts(args)
			if err != nil {
				return err
			}
			cmd.Println(s.tree.MinLeft(int(v[0]), atMost(v[1])))
			return nil
		}),
	}
}

func atMost(limit int64) func(algebra.BeatsNode) bool {
	return func(x algebra.BeatsNode) bool { return x.Max <= limit }
}

// NewDumpCommand returns a dump subcommand of rootCmd
func NewDumpCommand(s *Session) *cobra.Command {
	return &cobra.Command{
		Use:                "dump",
		Short:              "show every element and the tree statistics",
		DisableFlagParsing: true,
		Run: guarded(s, true, 0, func(cmd *cobra.Command, _ []string) error {
			values := s.tree.Values()
			elems := make([]string, len(values))
			for i, x := range values {
				elems[i] = strconv.FormatInt(x.Sum, 10)
			}
			cmd.Printf("[%s]\n", strings.Join(elems, " "))
			cmd.Printf("len: %d, sum: %d, repairs: %d, arena: %s\n",
				s.tree.Len(), s.tree.AllProd().Sum, s.tree.Repairs(), units.BytesSize(float64(s.arenaBytes())))
			return nil
		}),
	}
}

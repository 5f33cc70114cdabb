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
	"math"
	"strconv"
	"unsafe"

	"github.com/spf13/cobra"
	"github.com/tikv/segtree/pkg/errs"
	"github.com/tikv/segtree/pkg/lazysegtree"
	"github.com/tikv/segtree/pkg/lazysegtree/algebra"
)

// Session holds the tree the commands operate on. It outlives the command
// tree, which is rebuilt for every line of the interactive shell.
type Session struct {
	tree *lazysegtree.Tree[algebra.BeatsNode, algebra.Clamp]
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Init replaces the tree of the session.
func (s *Session) Init(values []int64) {
	s.tree = lazysegtree.NewFromSlice[algebra.BeatsNode, algebra.Clamp](algebra.ClampAddSum{}, algebra.Leaves(values))
}

func (s *Session) arenaBytes() uint64 {
	var (
		x algebra.BeatsNode
		f algebra.Clamp
	)
	return uint64(2*s.tree.Size()) * uint64(unsafe.Sizeof(x)+unsafe.Sizeof(f))
}

func (s *Session) checkInit() error {
	if s.tree == nil {
		return errs.ErrTreeNotInit.FastGenByArgs()
	}
	return nil
}

// runFunc is the body of a command. Panics raised by the tree are turned
// into errors and printed.
type runFunc func(cmd *cobra.Command, args []string) error

func guarded(s *Session, needTree bool, nargs int, run runFunc) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errs.FromRecover(r)
				}
			}()
			if nargs >= 0 && len(args) != nargs {
				return errs.ErrParseArgs.FastGenByArgs("usage: " + cmd.UseLine())
			}
			if needTree {
				if err := s.checkInit(); err != nil {
					return err
				}
			}
			return run(cmd, args)
		}()
		if err != nil {
			cmd.Println(err)
		}
	}
}

func parseInts(args []string) ([]int64, error) {
	values := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, errs.ErrParseArgs.FastGenByArgs(strconv.Quote(arg) + " is not an integer")
		}
		values = append(values, v)
	}
	return values, nil
}

// checkElement rejects the sentinels ClampAddSum reserves for empty
// aggregates.
func checkElement(v int64) error {
	if v == math.MinInt64 || v == math.MaxInt64 {
		return errs.ErrParseArgs.FastGenByArgs(strconv.FormatInt(v, 10) + " is reserved, values must lie in (MinInt64, MaxInt64)")
	}
	return nil
}

func parseElements(args []string) ([]int64, error) {
	values, err := parseInts(args)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := checkElement(v); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// checkAdd rejects an addition that would move an element of [l, r) onto a
// sentinel or past it.
func (s *Session) checkAdd(l, r int, v int64) error {
	x := s.tree.Prod(l, r)
	if x.Size == 0 || v == 0 {
		return nil
	}
	if (v > 0 && x.Max >= math.MaxInt64-v) || (v < 0 && x.Min <= math.MinInt64-v) {
		return errs.ErrParseArgs.FastGenByArgs("adding " + strconv.FormatInt(v, 10) + " overflows an element")
	}
	return nil
}

func parseIndexes(args []string) ([]int, error) {
	values, err := parseInts(args)
	if err != nil {
		return nil, err
	}
	indexes := make([]int, len(values))
	for i, v := range values {
		indexes[i] = int(v)
	}
	return indexes, nil
}

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

package errs

import "github.com/pingcap/errors"

// tree errors
var (
	ErrIndexOutOfRange     = errors.Normalize("index %d out of range [0, %d)", errors.RFCCodeText("SegTree:tree:ErrIndexOutOfRange"))
	ErrInvalidRange        = errors.Normalize("invalid range [%d, %d) for length %d", errors.RFCCodeText("SegTree:tree:ErrInvalidRange"))
	ErrInvalidLength       = errors.Normalize("invalid tree length %d", errors.RFCCodeText("SegTree:tree:ErrInvalidLength"))
	ErrPredicateOnIdentity = errors.Normalize("predicate must hold for the identity element", errors.RFCCodeText("SegTree:tree:ErrPredicateOnIdentity"))
)

// algebra errors
var (
	ErrUnknownAlgebra = errors.Normalize("unknown algebra %s", errors.RFCCodeText("SegTree:algebra:ErrUnknownAlgebra"))
)

// tool errors
var (
	ErrVerifyMismatch = errors.Normalize("%s mismatch at round %d op %d: tree %v, reference %v", errors.RFCCodeText("SegTree:bench:ErrVerifyMismatch"))
	ErrParseArgs      = errors.Normalize("parse args failed, %s", errors.RFCCodeText("SegTree:ctl:ErrParseArgs"))
	ErrTreeNotInit    = errors.Normalize("tree is not initialized, run init first", errors.RFCCodeText("SegTree:ctl:ErrTreeNotInit"))
	ErrInitLogger     = errors.Normalize("init logger failed", errors.RFCCodeText("SegTree:log:ErrInitLogger"))
	ErrStatusServer   = errors.Normalize("status server failed", errors.RFCCodeText("SegTree:bench:ErrStatusServer"))
)

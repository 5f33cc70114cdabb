// Copyright 2016 TiKV Project Authors.
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

package testutil

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

// NewRand returns a rand seeded with the current time. The seed is logged so
// a failing run can be replayed with NewRandWithSeed.
func NewRand(t testing.TB) *rand.Rand {
	seed := time.Now().UnixNano()
	t.Logf("random seed: %d", seed)
	return NewRandWithSeed(seed)
}

// NewRandWithSeed returns a rand seeded with seed.
func NewRandWithSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// PanicsWithNormalizedError asserts that fn panics with an error created from
// target.
func PanicsWithNormalizedError(re *require.Assertions, target *errors.Error, fn func()) {
	var recovered interface{}
	func() {
		defer func() {
			recovered = recover()
		}()
		fn()
	}()
	re.NotNil(recovered, "should panic with %s", target.RFCCode())
	err, ok := recovered.(error)
	re.True(ok, "panic value %v is not an error", recovered)
	re.True(target.Equal(err), "unexpected panic %v", err)
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package zero

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes_OverwritesAllElements(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Bytes(b)
	require.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestBytes_NilIsNoOp(t *testing.T) {
	require.NotPanics(t, func() { Bytes(nil) })
}

func TestUint32s_OverwritesAllElements(t *testing.T) {
	w := []uint32{1, 2, 3}
	Uint32s(w)
	require.Equal(t, []uint32{0, 0, 0}, w)
}

func TestUint64s_OverwritesAllElements(t *testing.T) {
	w := []uint64{1, 2, 3}
	Uint64s(w)
	require.Equal(t, []uint64{0, 0, 0}, w)
}

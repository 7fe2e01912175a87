// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

func newAESCounter(t *testing.T) *BlockCipherCounter {
	t.Helper()
	cipher, err := block.NewAES(16)
	require.NoError(t, err)
	return NewBlockCipherCounter(cipher, 16)
}

func TestBlockCipherCounter_DeterministicFromSameSeed(t *testing.T) {
	g1 := newAESCounter(t)
	require.NoError(t, g1.Initialize([]byte("key-material"), []byte("salt"), []byte("info")))
	out1 := make([]byte, 80)
	_, err := g1.Generate(out1, 0, 80)
	require.NoError(t, err)

	g2 := newAESCounter(t)
	require.NoError(t, g2.Initialize([]byte("key-material"), []byte("salt"), []byte("info")))
	out2 := make([]byte, 80)
	_, err = g2.Generate(out2, 0, 80)
	require.NoError(t, err)

	require.Equal(t, out1, out2)
}

func TestBlockCipherCounter_HandlesNonBlockAlignedSize(t *testing.T) {
	g := newAESCounter(t)
	require.NoError(t, g.Initialize([]byte("seed"), nil, nil))

	out := make([]byte, 20) // not a multiple of the 16-byte AES block
	n, err := g.Generate(out, 0, 20)
	require.NoError(t, err)
	require.Equal(t, 20, n)
}

func TestBlockCipherCounter_DifferentSeedsDifferentOutput(t *testing.T) {
	g1 := newAESCounter(t)
	require.NoError(t, g1.Initialize([]byte("seedA"), nil, nil))
	out1 := make([]byte, 32)
	_, err := g1.Generate(out1, 0, 32)
	require.NoError(t, err)

	g2 := newAESCounter(t)
	require.NoError(t, g2.Initialize([]byte("seedB"), nil, nil))
	out2 := make([]byte, 32)
	_, err = g2.Generate(out2, 0, 32)
	require.NoError(t, err)

	require.NotEqual(t, out1, out2)
}

func TestBlockCipherCounter_NotInitialized(t *testing.T) {
	g := newAESCounter(t)
	_, err := g.Generate(make([]byte, 16), 0, 16)
	require.Error(t, err)
}

func TestBlockCipherCounter_BufferTooSmall(t *testing.T) {
	g := newAESCounter(t)
	require.NoError(t, g.Initialize([]byte("seed"), nil, nil))
	_, err := g.Generate(make([]byte, 8), 0, 16)
	require.Error(t, err)
}

func TestBlockCipherCounter_GeneralizesAcrossCipherFamilies(t *testing.T) {
	serpent := block.NewSerpent()
	g := NewBlockCipherCounter(serpent, 16)
	require.NoError(t, g.Initialize([]byte("seed"), nil, nil))
	out := make([]byte, 48)
	_, err := g.Generate(out, 0, 48)
	require.NoError(t, err)
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixafter/symcrypt/x/crypto/digest"
)

func TestKDF2_DeterministicGivenSameInputs(t *testing.T) {
	k1, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	require.NoError(t, k1.Initialize([]byte("secret"), nil, []byte("other-info")))
	out1 := make([]byte, 50)
	_, err = k1.Generate(out1, 0, 50)
	require.NoError(t, err)

	k2, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	require.NoError(t, k2.Initialize([]byte("secret"), nil, []byte("other-info")))
	out2 := make([]byte, 50)
	_, err = k2.Generate(out2, 0, 50)
	require.NoError(t, err)

	require.Equal(t, out1, out2)
}

// Per the Open Question resolution recorded in DESIGN.md, secret and salt
// are never swapped: changing "secret" must change the output even when
// "otherInfo" stays fixed.
func TestKDF2_SecretIsNotSalt(t *testing.T) {
	k1, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	require.NoError(t, k1.Initialize([]byte("secretA"), []byte("unused-salt"), []byte("ctx")))
	out1 := make([]byte, 32)
	_, err = k1.Generate(out1, 0, 32)
	require.NoError(t, err)

	k2, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	require.NoError(t, k2.Initialize([]byte("secretB"), []byte("unused-salt"), []byte("ctx")))
	out2 := make([]byte, 32)
	_, err = k2.Generate(out2, 0, 32)
	require.NoError(t, err)

	require.NotEqual(t, out1, out2)
}

func TestKDF2_CounterAdvancesAcrossBlocks(t *testing.T) {
	k, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	require.NoError(t, k.Initialize([]byte("secret"), nil, nil))

	out := make([]byte, 64) // two SHA-256 blocks
	_, err = k.Generate(out, 0, 64)
	require.NoError(t, err)
	require.NotEqual(t, out[:32], out[32:])
}

func TestKDF2_NotInitialized(t *testing.T) {
	k, err := NewKDF2(digest.SHA256)
	require.NoError(t, err)
	_, err = k.Generate(make([]byte, 16), 0, 16)
	require.Error(t, err)
}

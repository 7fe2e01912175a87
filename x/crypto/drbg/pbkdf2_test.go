// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixafter/symcrypt/x/crypto/digest"
)

// Published PBKDF2-HMAC-SHA256 known-answer vector: P="password",
// S="salt", c=1, dkLen=32.
func TestPBKDF2_KnownAnswer_SHA256(t *testing.T) {
	want, err := hex.DecodeString("120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b")
	require.NoError(t, err)

	p, err := NewPBKDF2(digest.SHA256, 1)
	require.NoError(t, err)
	require.NoError(t, p.Initialize([]byte("password"), []byte("salt"), nil))

	out := make([]byte, 32)
	_, err = p.Generate(out, 0, 32)
	require.NoError(t, err)
	require.Equal(t, want, out)
}

func TestNewPBKDF2_RejectsNonPositiveIterations(t *testing.T) {
	_, err := NewPBKDF2(digest.SHA256, 0)
	require.Error(t, err)
}

func TestPBKDF2_DeterministicGivenSameInputs(t *testing.T) {
	p, err := NewPBKDF2(digest.SHA256, 1000)
	require.NoError(t, err)
	require.NoError(t, p.Initialize([]byte("password"), []byte("salt"), nil))

	out1 := make([]byte, 32)
	_, err = p.Generate(out1, 0, 32)
	require.NoError(t, err)

	require.NoError(t, p.Initialize([]byte("password"), []byte("salt"), nil))
	out2 := make([]byte, 32)
	_, err = p.Generate(out2, 0, 32)
	require.NoError(t, err)

	require.Equal(t, out1, out2)
}

func TestPBKDF2_DifferentIterationCountsDiffer(t *testing.T) {
	p1, err := NewPBKDF2(digest.SHA256, 1)
	require.NoError(t, err)
	require.NoError(t, p1.Initialize([]byte("password"), []byte("salt"), nil))
	out1 := make([]byte, 32)
	_, err = p1.Generate(out1, 0, 32)
	require.NoError(t, err)

	p2, err := NewPBKDF2(digest.SHA256, 2)
	require.NoError(t, err)
	require.NoError(t, p2.Initialize([]byte("password"), []byte("salt"), nil))
	out2 := make([]byte, 32)
	_, err = p2.Generate(out2, 0, 32)
	require.NoError(t, err)

	require.NotEqual(t, out1, out2)
}

func TestPBKDF2_LongOutputSpansMultipleBlocks(t *testing.T) {
	p, err := NewPBKDF2(digest.SHA256, 10)
	require.NoError(t, err)
	require.NoError(t, p.Initialize([]byte("password"), []byte("salt"), nil))

	out := make([]byte, 100) // > one SHA-256 block's worth of output
	n, err := p.Generate(out, 0, 100)
	require.NoError(t, err)
	require.Equal(t, 100, n)

	// first 32 bytes must equal a direct 32-byte derivation (first block
	// is independent of how many total bytes are requested).
	p2, err := NewPBKDF2(digest.SHA256, 10)
	require.NoError(t, err)
	require.NoError(t, p2.Initialize([]byte("password"), []byte("salt"), nil))
	firstBlock := make([]byte, 32)
	_, err = p2.Generate(firstBlock, 0, 32)
	require.NoError(t, err)

	require.Equal(t, firstBlock, out[:32])
}

func TestPBKDF2_NotInitialized(t *testing.T) {
	p, err := NewPBKDF2(digest.SHA256, 1)
	require.NoError(t, err)
	_, err = p.Generate(make([]byte, 16), 0, 16)
	require.Error(t, err)
}

func TestPBKDF2_Update(t *testing.T) {
	p, err := NewPBKDF2(digest.SHA256, 10)
	require.NoError(t, err)
	require.NoError(t, p.Initialize([]byte("pw1"), []byte("salt"), nil))
	out1 := make([]byte, 16)
	_, err = p.Generate(out1, 0, 16)
	require.NoError(t, err)

	require.NoError(t, p.Update([]byte("pw2")))
	out2 := make([]byte, 16)
	_, err = p.Generate(out2, 0, 16)
	require.NoError(t, err)

	require.NotEqual(t, out1, out2)
}

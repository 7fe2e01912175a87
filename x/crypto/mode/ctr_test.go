// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

// NIST SP 800-38A F.5.1, CTR-AES128.Encrypt known-answer vector.
func TestCTR_AES128_NIST_SP800_38A(t *testing.T) {
	key, err := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	require.NoError(t, err)
	ctr, err := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff")
	require.NoError(t, err)

	plaintext, err := hex.DecodeString(
		"6bc1bee22e409f96e93d7e117393172a" +
			"ae2d8a571e03ac9c9eb76fac45af8e51" +
			"30c81c46a35ce411e5fbc1191a0a52ef" +
			"f69f2445df4f9b17ad2b417be66c3710",
	)
	require.NoError(t, err)
	want, err := hex.DecodeString(
		"874d6191b620e3261bef6864990db6ce" +
			"9806f66b7970fdff8617187bb9fffdff" +
			"5ae4df3edbd5d35e5b4f09020db03eab" +
			"1e031dda2fbe03d1792170a0f3009cee",
	)
	require.NoError(t, err)

	a, err := block.NewAES(16)
	require.NoError(t, err)

	m := New(CTR, a)
	require.NoError(t, m.Initialize(block.Encrypt, key, ctr, nil))

	got := make([]byte, len(plaintext))
	require.NoError(t, m.TransformBlocks(plaintext, got))
	require.Equal(t, want, got)
}

func TestCTR_ParallelMatchesSequential(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	plaintext := make([]byte, 16*64)
	for i := range plaintext {
		plaintext[i] = byte(i % 251)
	}

	a1, _ := block.NewAES(16)
	seq := New(CTR, a1)
	require.NoError(t, seq.Initialize(block.Encrypt, key, iv, nil))
	seq.SetParallel(false)
	seqOut := make([]byte, len(plaintext))
	require.NoError(t, seq.TransformBlocks(plaintext, seqOut))

	a2, _ := block.NewAES(16)
	par := New(CTR, a2)
	require.NoError(t, par.Initialize(block.Encrypt, key, iv, nil))
	par.SetParallel(true)
	require.True(t, par.IsParallelizable())
	parOut := make([]byte, len(plaintext))
	require.NoError(t, par.TransformBlocks(plaintext, parOut))

	require.Equal(t, seqOut, parOut)
}

func TestCTR_TerminalCounterChainsAcrossCalls(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 16)
	plaintext := make([]byte, 16*8)

	a1, _ := block.NewAES(16)
	oneShot := New(CTR, a1)
	require.NoError(t, oneShot.Initialize(block.Encrypt, key, iv, nil))
	oneShotOut := make([]byte, len(plaintext))
	require.NoError(t, oneShot.TransformBlocks(plaintext, oneShotOut))

	a2, _ := block.NewAES(16)
	split := New(CTR, a2)
	require.NoError(t, split.Initialize(block.Encrypt, key, iv, nil))
	split.SetParallel(true)
	splitOut := make([]byte, len(plaintext))
	require.NoError(t, split.TransformBlocks(plaintext[:16*4], splitOut[:16*4]))
	require.NoError(t, split.TransformBlocks(plaintext[16*4:], splitOut[16*4:]))

	require.Equal(t, oneShotOut, splitOut)
}

func TestCTR_RejectsUnalignedInput(t *testing.T) {
	a, _ := block.NewAES(16)
	m := New(CTR, a)
	require.NoError(t, m.Initialize(block.Encrypt, make([]byte, 16), make([]byte, 16), nil))
	err := m.TransformBlocks(make([]byte, 5), make([]byte, 5))
	require.Error(t, err)
}

func TestCTR_NotInitialized(t *testing.T) {
	a, _ := block.NewAES(16)
	m := New(CTR, a)
	err := m.TransformBlocks(make([]byte, 16), make([]byte, 16))
	require.Error(t, err)
}

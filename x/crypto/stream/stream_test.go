// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newCiphers() []Interface {
	return []Interface{NewChaCha(20), NewSalsa20(20)}
}

func TestStream_EncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	iv := make([]byte, 8)
	for i := range iv {
		iv[i] = byte(i + 1)
	}
	plaintext := make([]byte, 1000)
	for i := range plaintext {
		plaintext[i] = byte(i * 13 % 251)
	}

	for _, c := range newCiphers() {
		require.NoError(t, c.Initialize(key, iv))
		ct := make([]byte, len(plaintext))
		c.Transform(plaintext, ct)
		require.NotEqual(t, plaintext, ct)

		require.NoError(t, c.Initialize(key, iv))
		pt := make([]byte, len(ct))
		c.Transform(ct, pt)
		require.Equal(t, plaintext, pt)
	}
}

func TestStream_ParallelMatchesSequential(t *testing.T) {
	key := make([]byte, 32)
	iv := make([]byte, 8)
	plaintext := make([]byte, 64*50)
	for i := range plaintext {
		plaintext[i] = byte(i % 256)
	}

	for _, c := range newCiphers() {
		require.NoError(t, c.Initialize(key, iv))
		c.SetParallel(false)
		seqOut := make([]byte, len(plaintext))
		c.Transform(plaintext, seqOut)

		require.NoError(t, c.Initialize(key, iv))
		c.SetParallel(true)
		require.True(t, c.IsParallel())
		parOut := make([]byte, len(plaintext))
		c.Transform(plaintext, parOut)

		require.Equal(t, seqOut, parOut)
	}
}

func TestStream_KeystreamChainsAcrossCalls(t *testing.T) {
	key := make([]byte, 32)
	iv := make([]byte, 8)
	plaintext := make([]byte, 64*10)

	for _, c := range newCiphers() {
		require.NoError(t, c.Initialize(key, iv))
		oneShot := make([]byte, len(plaintext))
		c.Transform(plaintext, oneShot)

		require.NoError(t, c.Initialize(key, iv))
		split := make([]byte, len(plaintext))
		c.Transform(plaintext[:64*3], split[:64*3])
		c.Transform(plaintext[64*3:], split[64*3:])

		require.Equal(t, oneShot, split)
	}
}

func TestStream_16ByteKeyVariant(t *testing.T) {
	key := make([]byte, 16)
	iv := make([]byte, 8)
	plaintext := make([]byte, 64)

	for _, c := range newCiphers() {
		require.NoError(t, c.Initialize(key, iv))
		out := make([]byte, len(plaintext))
		c.Transform(plaintext, out)
		require.NotEqual(t, plaintext, out)
	}
}

func TestStream_InvalidKeySize(t *testing.T) {
	for _, c := range newCiphers() {
		err := c.Initialize(make([]byte, 20), make([]byte, 8))
		require.Error(t, err)
	}
}

func TestStream_InvalidIVSize(t *testing.T) {
	for _, c := range newCiphers() {
		err := c.Initialize(make([]byte, 32), make([]byte, 12))
		require.Error(t, err)
	}
}

func TestNewChaCha_InvalidRoundCount(t *testing.T) {
	c := NewChaCha(21) // odd round count is never legal
	err := c.Initialize(make([]byte, 32), make([]byte, 8))
	require.Error(t, err)
}

func TestStream_Destroy(t *testing.T) {
	for _, c := range newCiphers() {
		require.NoError(t, c.Initialize(make([]byte, 32), make([]byte, 8)))
		require.True(t, c.Initialized())
		c.Destroy()
		require.False(t, c.Initialized())
	}
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerpent_RoundTrip(t *testing.T) {
	for _, keySize := range []int{16, 24, 32} {
		key := make([]byte, keySize)
		for i := range key {
			key[i] = byte(i*7 + 1)
		}
		pt := []byte("sixteen byte!!!!")

		s := NewSerpent()
		require.NoError(t, s.Initialize(Encrypt, key, nil, nil))
		require.Equal(t, "Serpent", s.Name())
		require.Equal(t, 16, s.BlockSize())

		ct := make([]byte, 16)
		s.EncryptBlock(pt, ct)
		require.NotEqual(t, pt, ct)

		require.NoError(t, s.Initialize(Decrypt, key, nil, nil))
		back := make([]byte, 16)
		s.DecryptBlock(ct, back)
		require.Equal(t, pt, back)
	}
}

func TestSerpent_ExtendedSHX_RoundTrip(t *testing.T) {
	s, err := NewExtendedSerpent(40, 0)
	require.NoError(t, err)
	require.Equal(t, 40, s.rounds)

	key := make([]byte, 32)
	require.NoError(t, s.Initialize(Encrypt, key, nil, nil))
	require.Equal(t, "SHX", s.Name())

	pt := []byte("abcdefghijklmnop")
	ct := make([]byte, 16)
	s.EncryptBlock(pt, ct)

	require.NoError(t, s.Initialize(Decrypt, key, nil, nil))
	back := make([]byte, 16)
	s.DecryptBlock(ct, back)
	require.Equal(t, pt, back)
}

func TestNewExtendedSerpent_RejectsBadRoundCount(t *testing.T) {
	_, err := NewExtendedSerpent(33, 0)
	require.Error(t, err)

	_, err = NewExtendedSerpent(0, 0)
	require.Error(t, err)
}

func TestSerpent_InvalidKeySize(t *testing.T) {
	s := NewSerpent()
	err := s.Initialize(Encrypt, make([]byte, 20), nil, nil)
	require.Error(t, err)
}

func TestSerpent_DifferentKeysDifferentCiphertext(t *testing.T) {
	pt := []byte("0123456789abcdef")

	s1 := NewSerpent()
	require.NoError(t, s1.Initialize(Encrypt, make([]byte, 16), nil, nil))
	ct1 := make([]byte, 16)
	s1.EncryptBlock(pt, ct1)

	key2 := make([]byte, 16)
	key2[0] = 1
	s2 := NewSerpent()
	require.NoError(t, s2.Initialize(Encrypt, key2, nil, nil))
	ct2 := make([]byte, 16)
	s2.EncryptBlock(pt, ct2)

	require.NotEqual(t, ct1, ct2)
}

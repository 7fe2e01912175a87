// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwofish_RoundTrip(t *testing.T) {
	for _, keySize := range []int{16, 24, 32} {
		key := make([]byte, keySize)
		for i := range key {
			key[i] = byte(i + 3)
		}
		pt := []byte("twofishblock1234")

		tw := NewTwofish()
		require.NoError(t, tw.Initialize(Encrypt, key, nil, nil))
		require.Equal(t, "Twofish", tw.Name())
		require.Equal(t, 16, tw.BlockSize())

		ct := make([]byte, 16)
		tw.EncryptBlock(pt, ct)
		require.NotEqual(t, pt, ct)

		require.NoError(t, tw.Initialize(Decrypt, key, nil, nil))
		back := make([]byte, 16)
		tw.DecryptBlock(ct, back)
		require.Equal(t, pt, back)
	}
}

func TestTwofish_ExtendedTHX_RoundTrip(t *testing.T) {
	tw := NewExtendedTwofish(0)
	key := make([]byte, 32)
	require.NoError(t, tw.Initialize(Encrypt, key, nil, nil))
	require.Equal(t, "THX", tw.Name())

	pt := []byte("abcdefghijklmnop")
	ct := make([]byte, 16)
	tw.EncryptBlock(pt, ct)

	require.NoError(t, tw.Initialize(Decrypt, key, nil, nil))
	back := make([]byte, 16)
	tw.DecryptBlock(ct, back)
	require.Equal(t, pt, back)
}

func TestTwofish_InvalidKeySize(t *testing.T) {
	tw := NewTwofish()
	err := tw.Initialize(Encrypt, make([]byte, 10), nil, nil)
	require.Error(t, err)
}

func TestTwofish_Destroy(t *testing.T) {
	tw := NewTwofish()
	require.NoError(t, tw.Initialize(Encrypt, make([]byte, 16), nil, nil))
	require.True(t, tw.Initialized())
	tw.Destroy()
	require.False(t, tw.Initialized())
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package digest

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{SHA256, SHA512, Blake2s256, Blake2b512, Keccak256, Keccak512, Skein256, Skein512, Skein1024}

func TestNew_AllKindsProduceStableSizedOutput(t *testing.T) {
	for _, k := range allKinds {
		h, err := New(k)
		require.NoError(t, err, k)

		h.Update([]byte("hello"))
		h.Update([]byte(" world"))
		sum := h.Finalize(nil)
		require.Equal(t, h.DigestSize(), len(sum), k)

		h.Reset()
		h.Update([]byte("hello world"))
		sum2 := h.Finalize(nil)
		require.Equal(t, sum, sum2, "split vs single write must match for %v", k)
	}
}

func TestNew_DifferentInputsDifferentDigests(t *testing.T) {
	for _, k := range allKinds {
		h1, err := New(k)
		require.NoError(t, err)
		h1.Update([]byte("a"))
		sum1 := h1.Finalize(nil)

		h2, err := New(k)
		require.NoError(t, err)
		h2.Update([]byte("b"))
		sum2 := h2.Finalize(nil)

		require.False(t, bytes.Equal(sum1, sum2), k)
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind(999))
	require.Error(t, err)
}

// RFC 4231 Test Case 1: HMAC-SHA-256.
func TestHMAC_RFC4231_TestCase1(t *testing.T) {
	key, err := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	require.NoError(t, err)
	data := []byte("Hi There")
	want, err := hex.DecodeString("b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")
	require.NoError(t, err)

	got, err := HMAC(NewFunc(SHA256), key, data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestHMAC_KeyLongerThanBlockSizeIsHashedFirst(t *testing.T) {
	longKey := bytes.Repeat([]byte{0x5a}, 200)
	out1, err := HMAC(NewFunc(SHA256), longKey, []byte("msg"))
	require.NoError(t, err)

	hh, err := New(SHA256)
	require.NoError(t, err)
	hh.Update(longKey)
	hashedKey := hh.Finalize(nil)
	out2, err := HMAC(NewFunc(SHA256), hashedKey, []byte("msg"))
	require.NoError(t, err)
	require.Equal(t, out1, out2)
	require.Len(t, out1, 32)
}

func TestSkein_DigestSizesMatchRequestedOutputLength(t *testing.T) {
	sizes := map[Kind]int{Skein256: 32, Skein512: 64, Skein1024: 128}
	for k, size := range sizes {
		h, err := New(k)
		require.NoError(t, err)
		require.Equal(t, size, h.DigestSize())
		h.Update([]byte("skein input"))
		require.Len(t, h.Finalize(nil), size)
	}
}

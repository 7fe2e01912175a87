// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"crypto/sha512"

	"github.com/sixafter/symcrypt/x/crypto/stream"
)

// Salsa20Counter runs Salsa20 in CTR-style keystream generation seeded
// from a key-derived 32-byte key and 8-byte nonce. The
// generator's own 64-bit block counter carries the "CTR" advancement,
// which matches without truncation since Salsa20's counter word pair is
// exactly 64 bits wide.
type Salsa20Counter struct {
	cipher *stream.Salsa20
	init   bool
}

func NewSalsa20Counter(rounds int) *Salsa20Counter {
	return &Salsa20Counter{cipher: stream.NewSalsa20(rounds)}
}

func (s *Salsa20Counter) KeySize() int      { return 32 }
func (s *Salsa20Counter) Initialized() bool { return s.init }

// deriveKeyNonce stretches arbitrary-length seed material to a 32-byte
// key and 8-byte nonce via SHA-512, whose 64-byte output exactly covers
// both. Deterministic by construction, since this DRBG is seeded by the
// caller rather than by OS entropy directly.
func deriveKeyNonce(seed []byte) (key [32]byte, nonce [8]byte) {
	sum := sha512.Sum512(seed)
	copy(key[:], sum[:32])
	copy(nonce[:], sum[32:40])
	return
}

func (s *Salsa20Counter) Initialize(key, salt, info []byte) error {
	seed := append(append(append([]byte(nil), key...), salt...), info...)
	k, n := deriveKeyNonce(seed)
	if err := s.cipher.Initialize(k[:], n[:]); err != nil {
		return err
	}
	s.init = true
	return nil
}

func (s *Salsa20Counter) Update(seed []byte) error {
	k, n := deriveKeyNonce(seed)
	if err := s.cipher.Initialize(k[:], n[:]); err != nil {
		return err
	}
	s.init = true
	return nil
}

func (s *Salsa20Counter) Generate(out []byte, offset, size int) (int, error) {
	if !s.init {
		return 0, errNotInit("Salsa20CounterDRBG")
	}
	if offset+size > len(out) {
		return 0, errBufferTooSmall("Salsa20CounterDRBG")
	}
	zero := make([]byte, size)
	s.cipher.Transform(zero, out[offset:offset+size])
	return size, nil
}

// SetParallel exposes the underlying cipher's partitioned-counter parallel
// keystream generation.
func (s *Salsa20Counter) SetParallel(p bool) { s.cipher.SetParallel(p) }
func (s *Salsa20Counter) IsParallel() bool   { return s.cipher.IsParallel() }

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package drbg implements the KDF/DRBG variants of C6: HKDF (RFC 5869),
// PBKDF2 (RFC 2898), KDF2 (ISO 18033), a digest-counter DRBG (NIST SP
// 800-90A Appendix E1), a Salsa20-counter DRBG, and a block-cipher-counter
// DRBG. All share Initialize/Generate/Update, built on the same
// pool-friendly, state-holding generator shape throughout.
package drbg

import "github.com/sixafter/symcrypt/x/crypto/internal/cerr"

// Interface is the uniform contract every DRBG/KDF variant satisfies.
type Interface interface {
	// Initialize seeds the generator from key material, an optional salt,
	// and optional context info. Variants that don't use one of these
	// ignore it.
	Initialize(key, salt, info []byte) error

	// Generate writes up to size bytes into out starting at offset,
	// returning the number of bytes produced.
	Generate(out []byte, offset, size int) (int, error)

	// Update reseeds the generator from fresh seed material.
	Update(seed []byte) error

	KeySize() int
	Initialized() bool
}

func errNotInit(component string) error {
	return cerr.New(component, "Generate", cerr.ErrNotInitialized)
}

func errBufferTooSmall(component string) error {
	return cerr.New(component, "Generate", cerr.ErrBufferTooSmall)
}

func errOutputExceeded(component string) error {
	return cerr.New(component, "Generate", cerr.ErrOutputSizeExceeded)
}

func errParam(component, op string) error {
	return cerr.New(component, op, cerr.ErrInvalidParameter)
}

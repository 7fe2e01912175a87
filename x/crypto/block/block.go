// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package block implements the fixed-size block permutations: AES/Rijndael,
// Serpent, and Twofish, each with a standard key schedule and an
// "extended" (RHX/SHX/THX) HMAC-based key schedule variant.
package block

import "github.com/sixafter/symcrypt/x/crypto/internal/cerr"

// Direction selects whether a cipher instance encrypts or decrypts. It is
// frozen for the object's lifetime once Initialize has run.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// Interface is the uniform contract every block cipher in this package
// satisfies.
type Interface interface {
	// Initialize builds the round-key schedule for key and direction.
	// Any prior schedule is zeroed before the new one is computed.
	Initialize(direction Direction, key, iv, info []byte) error

	// EncryptBlock and DecryptBlock transform exactly one block. Callers
	// must supply correctly sized buffers; these methods assume it.
	EncryptBlock(src, dst []byte)
	DecryptBlock(src, dst []byte)

	// Transform is an alias for EncryptBlock or DecryptBlock, selected by
	// the direction passed to Initialize.
	Transform(src, dst []byte)

	BlockSize() int
	LegalKeySizes() []int
	Name() string
	Initialized() bool

	// Destroy overwrites the round-key schedule with zero.
	Destroy()
}

func errKeySize(component string) error {
	return cerr.New(component, "Initialize", cerr.ErrInvalidKeySize)
}

func errNotInit(component, op string) error {
	return cerr.New(component, op, cerr.ErrNotInitialized)
}

// legalSize reports whether n is a member of sizes.
func legalSize(n int, sizes []int) bool {
	for _, s := range sizes {
		if s == n {
			return true
		}
	}
	return false
}

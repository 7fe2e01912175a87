// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package stream implements the Salsa20 and ChaCha keystream generators:
// a 16-machine-word working state, a configurable even
// round count, and a 64-bit block counter that advances by one per
// 64-byte keystream block regardless of how the caller chunks its writes.
package stream

import (
	"runtime"

	"github.com/sixafter/symcrypt/x/crypto/internal/cerr"
)

const BlockSize = 64

// Interface is the uniform contract both Salsa20 and ChaCha satisfy.
type Interface interface {
	Initialize(key, iv []byte) error
	Transform(input, output []byte)
	BlockSize() int
	LegalKeySizes() []int
	LegalRounds() []int
	Initialized() bool
	Destroy()

	// IsParallel reports whether parallel keystream generation is enabled
	// for this instance.
	IsParallel() bool
	SetParallel(bool)
}

func rotl32(x uint32, n uint) uint32 { return (x << n) | (x >> (32 - n)) }

func legalSize(n int, sizes []int) bool {
	for _, s := range sizes {
		if s == n {
			return true
		}
	}
	return false
}

func errKeySize(component string) error {
	return cerr.New(component, "Initialize", cerr.ErrInvalidKeySize)
}

func errIVSize(component string) error {
	return cerr.New(component, "Initialize", cerr.ErrInvalidIVSize)
}

// workerCount returns the number of parallel workers to use for a given
// total block count, never exceeding GOMAXPROCS.
func workerCount(blocks int) int {
	n := runtime.GOMAXPROCS(0)
	if n > blocks {
		n = blocks
	}
	if n < 1 {
		n = 1
	}
	return n
}

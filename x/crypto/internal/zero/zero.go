// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package zero provides a single shared helper for overwriting secret-derived
// memory before it is released. KeyParams.Destroy is its only caller; other
// components zero their state with their own loops.
package zero

// Bytes overwrites every byte of b with zero. It is a no-op for a nil or
// empty slice. Callers are responsible for ensuring no other reference to
// the backing array observes stale content afterward.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Uint32s overwrites every element of w with zero.
func Uint32s(w []uint32) {
	for i := range w {
		w[i] = 0
	}
}

// Uint64s overwrites every element of w with zero.
func Uint64s(w []uint64) {
	for i := range w {
		w[i] = 0
	}
}

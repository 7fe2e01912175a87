// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package cerr defines the structured error type and sentinel kinds shared
// by every leaf package under x/crypto/ and re-exported from the module
// root, so that both sides can construct and compare the same values
// without an import cycle between the root package and its sub-packages.
package cerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared across every component in this module.
var (
	ErrInvalidKeySize     = errors.New("symcrypt: invalid key size")
	ErrInvalidIVSize      = errors.New("symcrypt: invalid iv size")
	ErrInvalidParameter   = errors.New("symcrypt: invalid parameter")
	ErrNotInitialized     = errors.New("symcrypt: not initialized")
	ErrBufferTooSmall     = errors.New("symcrypt: buffer too small")
	ErrOutputSizeExceeded = errors.New("symcrypt: output size exceeded")
	ErrPaddingInvalid     = errors.New("symcrypt: padding invalid")
)

// Error is the structured failure value returned by the block, mode,
// stream and drbg packages; the root package's CipherStream, the padding
// package and digest.New return plain error values instead. Message text
// is advisory only; callers should branch on Kind
// (via errors.Is/errors.Unwrap), not on Error().
type Error struct {
	Component string
	Operation string
	Kind      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("symcrypt: %s.%s: %v", e.Component, e.Operation, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

// New constructs an *Error for a given component/operation/kind.
func New(component, operation string, kind error) *Error {
	return &Error{Component: component, Operation: operation, Kind: kind}
}

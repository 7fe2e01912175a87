// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package symcrypt

import "github.com/sixafter/symcrypt/x/crypto/internal/cerr"

// Sentinel error kinds. Every *Error returned by this module wraps exactly
// one of these, so callers can branch with errors.Is(err, symcrypt.ErrX)
// regardless of which component or operation produced it.
var (
	ErrInvalidKeySize     = cerr.ErrInvalidKeySize
	ErrInvalidIVSize      = cerr.ErrInvalidIVSize
	ErrInvalidParameter   = cerr.ErrInvalidParameter
	ErrNotInitialized     = cerr.ErrNotInitialized
	ErrBufferTooSmall     = cerr.ErrBufferTooSmall
	ErrOutputSizeExceeded = cerr.ErrOutputSizeExceeded
	ErrPaddingInvalid     = cerr.ErrPaddingInvalid
)

// Error is the structured failure value {Component, Operation, Kind}
// returned by the block, mode, stream and drbg packages. CipherStream
// returns the bare sentinels above (or an inner component's error as is),
// the padding package returns its own error values, and digest.New reports
// an unknown kind with digest.ErrUnknownDigest. Message text is advisory only;
// callers should branch on Kind (via errors.Is/errors.As), not on Error().
type Error = cerr.Error

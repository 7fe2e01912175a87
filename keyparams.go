// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package symcrypt

import (
	"crypto/subtle"

	"github.com/sixafter/symcrypt/x/crypto/internal/zero"
)

// KeyParams is an opaque carrier of the secret material handed to a block
// cipher, stream cipher, mode, or DRBG at Initialize time: a key, an
// optional IV, and optional IKM/info bytes (used by the HX key-schedule
// ciphers and by HKDF-style KDFs for the "info" parameter).
//
// All three fields are deep-copied on construction and must be destroyed
// with Destroy before release, which overwrites each with zero.
type KeyParams struct {
	key  []byte
	iv   []byte
	info []byte
}

// NewKeyParams constructs a KeyParams from the given key, iv, and info. Any
// of iv and info may be nil or empty. The inputs are deep-copied; the
// caller retains ownership of (and may reuse or zero) the slices passed in.
func NewKeyParams(key, iv, info []byte) *KeyParams {
	kp := &KeyParams{}
	if key != nil {
		kp.key = append([]byte(nil), key...)
	}
	if iv != nil {
		kp.iv = append([]byte(nil), iv...)
	}
	if info != nil {
		kp.info = append([]byte(nil), info...)
	}
	return kp
}

// Key returns the carried key bytes. The returned slice aliases internal
// storage and must not be retained past the KeyParams' lifetime.
func (kp *KeyParams) Key() []byte { return kp.key }

// IV returns the carried IV bytes, or nil if none was supplied.
func (kp *KeyParams) IV() []byte { return kp.iv }

// Info returns the carried IKM/info bytes, or nil if none was supplied.
func (kp *KeyParams) Info() []byte { return kp.info }

// Equal reports whether kp and other carry identical key, IV, and info
// bytes. Comparison is constant-time per field: a secret-carrying type
// inviting a variable-time compare is the narrow side-channel spec's
// non-goals still rule in-scope ("timing-channel hardening beyond ...
// that existing cipher specs already mandate" — constant-time compare is
// exactly that baseline for secret material).
func (kp *KeyParams) Equal(other *KeyParams) bool {
	if kp == nil || other == nil {
		return kp == other
	}
	return constantTimeEqual(kp.key, other.key) &&
		constantTimeEqual(kp.iv, other.iv) &&
		constantTimeEqual(kp.info, other.info)
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Destroy overwrites key, IV, and info with zero. KeyParams must not be
// used again after Destroy.
func (kp *KeyParams) Destroy() {
	zero.Bytes(kp.key)
	zero.Bytes(kp.iv)
	zero.Bytes(kp.info)
	kp.key, kp.iv, kp.info = nil, nil, nil
}

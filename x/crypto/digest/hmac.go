// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package digest

// HMAC computes the HMAC of msg under key using the digest produced by
// newDigest, per RFC 2104. It is used by the HX extended block-cipher key
// schedules and by the HKDF/PBKDF2 KDFs, both of which need
// HMAC over an arbitrary configured digest rather than a single fixed
// algorithm, so this is implemented generically over Interface instead of
// reusing crypto/hmac (which is tied to hash.Hash, a distinct method set
// from Interface — see DESIGN.md).
func HMAC(newDigest func() (Interface, error), key, msg []byte) ([]byte, error) {
	h, err := newDigest()
	if err != nil {
		return nil, err
	}
	blockSize := h.BlockSize()

	k := key
	if len(k) > blockSize {
		hh, err := newDigest()
		if err != nil {
			return nil, err
		}
		hh.Update(k)
		k = hh.Finalize(nil)
	}
	if len(k) < blockSize {
		padded := make([]byte, blockSize)
		copy(padded, k)
		k = padded
	}

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5c
	}

	inner, err := newDigest()
	if err != nil {
		return nil, err
	}
	inner.Update(ipad)
	inner.Update(msg)
	innerSum := inner.Finalize(nil)

	outer, err := newDigest()
	if err != nil {
		return nil, err
	}
	outer.Update(opad)
	outer.Update(innerSum)
	return outer.Finalize(nil), nil
}

// NewFunc returns a constructor bound to Kind k, suitable for passing to
// HMAC or to any caller that needs to build fresh Interface instances
// repeatedly (e.g. per HMAC call).
func NewFunc(k Kind) func() (Interface, error) {
	return func() (Interface, error) { return New(k) }
}

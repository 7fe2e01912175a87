// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"github.com/sixafter/symcrypt/x/crypto/digest"
)

// HKDF implements RFC 5869: Extract once against (salt, IKM) to produce
// PRK, then Expand PRK || info across as many HMAC-chained blocks as
// requested, up to the 255 x HashLen ceiling.
type HKDF struct {
	newDigest func() (digest.Interface, error)
	hashLen   int
	prk       []byte
	info      []byte
	init      bool
}

func NewHKDF(k digest.Kind) (*HKDF, error) {
	d, err := digest.New(k)
	if err != nil {
		return nil, err
	}
	return &HKDF{newDigest: digest.NewFunc(k), hashLen: d.DigestSize()}, nil
}

func (h *HKDF) KeySize() int    { return h.hashLen }
func (h *HKDF) Initialized() bool { return h.init }

func (h *HKDF) Initialize(ikm, salt, info []byte) error {
	if len(salt) == 0 {
		salt = make([]byte, h.hashLen)
	}
	prk, err := digest.HMAC(h.newDigest, salt, ikm)
	if err != nil {
		return err
	}
	h.prk = prk
	h.info = append([]byte(nil), info...)
	h.init = true
	return nil
}

func (h *HKDF) Update(seed []byte) error {
	return h.Initialize(seed, nil, h.info)
}

func (h *HKDF) Generate(out []byte, offset, size int) (int, error) {
	if !h.init {
		return 0, errNotInit("HKDF")
	}
	if offset+size > len(out) {
		return 0, errBufferTooSmall("HKDF")
	}
	if size > 255*h.hashLen {
		return 0, errOutputExceeded("HKDF")
	}

	var t []byte
	produced := 0
	counter := byte(1)
	for produced < size {
		msg := make([]byte, 0, len(t)+len(h.info)+1)
		msg = append(msg, t...)
		msg = append(msg, h.info...)
		msg = append(msg, counter)

		next, err := digest.HMAC(h.newDigest, h.prk, msg)
		if err != nil {
			return produced, err
		}
		t = next

		n := copy(out[offset+produced:offset+size], t)
		produced += n
		counter++
	}
	return produced, nil
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"encoding/binary"

	"github.com/sixafter/symcrypt/x/crypto/digest"
)

// PBKDF2 implements RFC 2898: DK = T_1 || T_2 || ..., each
// T_i = U_1 XOR U_2 XOR ... XOR U_c, U_1 = HMAC(pwd, salt || BE32(i)),
// U_j = HMAC(pwd, U_{j-1}). Iterations must be >= 1.
type PBKDF2 struct {
	newDigest  func() (digest.Interface, error)
	hashLen    int
	password   []byte
	salt       []byte
	iterations int
	init       bool
}

func NewPBKDF2(k digest.Kind, iterations int) (*PBKDF2, error) {
	if iterations < 1 {
		return nil, errParam("PBKDF2", "NewPBKDF2")
	}
	d, err := digest.New(k)
	if err != nil {
		return nil, err
	}
	return &PBKDF2{newDigest: digest.NewFunc(k), hashLen: d.DigestSize(), iterations: iterations}, nil
}

func (p *PBKDF2) KeySize() int      { return p.hashLen }
func (p *PBKDF2) Initialized() bool { return p.init }

func (p *PBKDF2) Initialize(password, salt, info []byte) error {
	p.password = append([]byte(nil), password...)
	p.salt = append([]byte(nil), salt...)
	p.init = true
	return nil
}

func (p *PBKDF2) Update(seed []byte) error {
	return p.Initialize(seed, p.salt, nil)
}

func (p *PBKDF2) Generate(out []byte, offset, size int) (int, error) {
	if !p.init {
		return 0, errNotInit("PBKDF2")
	}
	if offset+size > len(out) {
		return 0, errBufferTooSmall("PBKDF2")
	}

	produced := 0
	blockIndex := uint32(1)
	for produced < size {
		var idx [4]byte
		binary.BigEndian.PutUint32(idx[:], blockIndex)

		u, err := digest.HMAC(p.newDigest, p.password, append(append([]byte(nil), p.salt...), idx[:]...))
		if err != nil {
			return produced, err
		}
		t := append([]byte(nil), u...)
		for j := 1; j < p.iterations; j++ {
			u, err = digest.HMAC(p.newDigest, p.password, u)
			if err != nil {
				return produced, err
			}
			for i := range t {
				t[i] ^= u[i]
			}
		}

		n := copy(out[offset+produced:offset+size], t)
		produced += n
		blockIndex++
	}
	return produced, nil
}

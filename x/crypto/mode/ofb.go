// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import "github.com/sixafter/symcrypt/x/crypto/block"

// ofbMode implements O_i = E(O_{i-1}), C_i = P_i XOR O_i. Strictly
// sequential in both directions: each keystream block depends on the
// previous one, not on any ciphertext.
type ofbMode struct {
	modeBase
	reg []byte
}

func (m *ofbMode) Name() string { return "OFB" }

func (m *ofbMode) Initialize(direction block.Direction, key, iv, info []byte) error {
	if err := m.cipher.Initialize(block.Encrypt, key, iv, info); err != nil {
		return err
	}
	bs := m.cipher.BlockSize()
	if len(iv) != bs {
		return errNotInit("OFB")
	}
	for i := range m.reg {
		m.reg[i] = 0
	}
	m.reg = make([]byte, bs)
	copy(m.reg, iv)
	m.direction = direction
	m.init = true
	return nil
}

func (m *ofbMode) Destroy() {
	m.cipher.Destroy()
	for i := range m.reg {
		m.reg[i] = 0
	}
	m.init = false
}

func (m *ofbMode) IsParallelizable() bool { return false }

func (m *ofbMode) TransformBlocks(src, dst []byte) error {
	if !m.init {
		return errNotInit("OFB")
	}
	bs := m.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return errBlockAlign("OFB")
	}
	blocks := len(src) / bs

	reg := make([]byte, bs)
	next := make([]byte, bs)
	copy(reg, m.reg)
	for i := 0; i < blocks; i++ {
		off := i * bs
		m.cipher.Transform(reg, next)
		copy(reg, next)
		for j := 0; j < bs; j++ {
			dst[off+j] = src[off+j] ^ reg[j]
		}
	}
	copy(m.reg, reg)
	return nil
}

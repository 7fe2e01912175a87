// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

// cfbMode implements C_i = P_i XOR E(C_{i-1}), IV seeds the register.
// Encryption is sequential; decryption is parallelizable since it only
// depends on prior ciphertext blocks, all available up front.
type cfbMode struct {
	modeBase
	reg []byte
}

func (m *cfbMode) Name() string { return "CFB" }

func (m *cfbMode) Initialize(direction block.Direction, key, iv, info []byte) error {
	// CFB always runs the underlying cipher in the encrypt direction to
	// produce the keystream, regardless of the mode's overall direction.
	if err := m.cipher.Initialize(block.Encrypt, key, iv, info); err != nil {
		return err
	}
	bs := m.cipher.BlockSize()
	if len(iv) != bs {
		return errNotInit("CFB")
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

func (m *cfbMode) Destroy() {
	m.cipher.Destroy()
	for i := range m.reg {
		m.reg[i] = 0
	}
	m.init = false
}

func (m *cfbMode) IsParallelizable() bool { return m.direction == block.Decrypt }

func (m *cfbMode) TransformBlocks(src, dst []byte) error {
	if !m.init {
		return errNotInit("CFB")
	}
	bs := m.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return errBlockAlign("CFB")
	}
	blocks := len(src) / bs

	if m.direction == block.Encrypt {
		m.encryptSequential(src, dst, blocks, bs)
		return nil
	}
	if m.parallel && blocks >= 2 {
		m.decryptParallel(src, dst, blocks, bs)
	} else {
		m.decryptSequential(src, dst, blocks, bs)
	}
	return nil
}

func (m *cfbMode) encryptSequential(src, dst []byte, blocks, bs int) {
	ks := make([]byte, bs)
	prev := m.reg
	for i := 0; i < blocks; i++ {
		off := i * bs
		m.cipher.Transform(prev, ks)
		for j := 0; j < bs; j++ {
			dst[off+j] = src[off+j] ^ ks[j]
		}
		prev = dst[off : off+bs]
	}
	copy(m.reg, prev)
}

func (m *cfbMode) decryptSequential(src, dst []byte, blocks, bs int) {
	ks := make([]byte, bs)
	prev := make([]byte, bs)
	copy(prev, m.reg)
	for i := 0; i < blocks; i++ {
		off := i * bs
		m.cipher.Transform(prev, ks)
		for j := 0; j < bs; j++ {
			dst[off+j] = src[off+j] ^ ks[j]
		}
		copy(prev, src[off:off+bs])
	}
	copy(m.reg, prev)
}

func (m *cfbMode) decryptParallel(src, dst []byte, blocks, bs int) {
	nWorkers := workerCount(blocks)
	blocksPerWorker := (blocks + nWorkers - 1) / nWorkers

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		start := w * blocksPerWorker
		if start >= blocks {
			break
		}
		end := start + blocksPerWorker
		if end > blocks {
			end = blocks
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			ks := make([]byte, bs)
			prev := make([]byte, bs)
			if start == 0 {
				copy(prev, m.reg)
			} else {
				copy(prev, src[(start-1)*bs:start*bs])
			}
			for i := start; i < end; i++ {
				off := i * bs
				m.cipher.Transform(prev, ks)
				for j := 0; j < bs; j++ {
					dst[off+j] = src[off+j] ^ ks[j]
				}
				copy(prev, src[off:off+bs])
			}
		}(start, end)
	}
	wg.Wait()
	copy(m.reg, src[(blocks-1)*bs:blocks*bs])
}

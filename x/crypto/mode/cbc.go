// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

// cbcMode implements C_i = E(P_i XOR C_{i-1}), C_{-1} = IV. Encryption is
// strictly sequential; decryption is parallelizable because each
// plaintext block depends only on two ciphertext blocks.
type cbcMode struct {
	modeBase
	reg []byte // feedback register; holds the previous ciphertext block
}

func (m *cbcMode) Name() string { return "CBC" }

func (m *cbcMode) Initialize(direction block.Direction, key, iv, info []byte) error {
	if err := m.cipher.Initialize(direction, key, iv, info); err != nil {
		return err
	}
	bs := m.cipher.BlockSize()
	if len(iv) != bs {
		return errNotInit("CBC")
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

func (m *cbcMode) Destroy() {
	m.cipher.Destroy()
	for i := range m.reg {
		m.reg[i] = 0
	}
	m.init = false
}

func (m *cbcMode) IsParallelizable() bool { return m.direction == block.Decrypt }

func (m *cbcMode) TransformBlocks(src, dst []byte) error {
	if !m.init {
		return errNotInit("CBC")
	}
	bs := m.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return errBlockAlign("CBC")
	}
	blocks := len(src) / bs

	if m.direction == block.Encrypt {
		return m.encryptSequential(src, dst, blocks, bs)
	}

	if m.parallel && blocks >= 2 {
		m.decryptParallel(src, dst, blocks, bs)
	} else {
		m.decryptSequential(src, dst, blocks, bs)
	}
	return nil
}

func (m *cbcMode) encryptSequential(src, dst []byte, blocks, bs int) error {
	prev := m.reg
	buf := make([]byte, bs)
	for i := 0; i < blocks; i++ {
		off := i * bs
		for j := 0; j < bs; j++ {
			buf[j] = src[off+j] ^ prev[j]
		}
		m.cipher.Transform(buf, dst[off:off+bs])
		prev = dst[off : off+bs]
	}
	copy(m.reg, prev)
	return nil
}

func (m *cbcMode) decryptSequential(src, dst []byte, blocks, bs int) {
	prev := make([]byte, bs)
	copy(prev, m.reg)
	for i := 0; i < blocks; i++ {
		off := i * bs
		m.cipher.Transform(src[off:off+bs], dst[off:off+bs])
		for j := 0; j < bs; j++ {
			dst[off+j] ^= prev[j]
		}
		copy(prev, src[off:off+bs])
	}
	copy(m.reg, prev)
}

// decryptParallel gives each worker a read-only borrow of the ciphertext
// block range it needs plus the one preceding block for the XOR feedback:
// worker i handles blocks [start,end) and reads src[start-1] (or the
// canonical register for worker 0) as its seed.
func (m *cbcMode) decryptParallel(src, dst []byte, blocks, bs int) {
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
			prev := make([]byte, bs)
			if start == 0 {
				copy(prev, m.reg)
			} else {
				copy(prev, src[(start-1)*bs:start*bs])
			}
			for i := start; i < end; i++ {
				off := i * bs
				m.cipher.Transform(src[off:off+bs], dst[off:off+bs])
				for j := 0; j < bs; j++ {
					dst[off+j] ^= prev[j]
				}
				copy(prev, src[off:off+bs])
			}
		}(start, end)
	}
	wg.Wait()
	copy(m.reg, src[(blocks-1)*bs:blocks*bs])
}

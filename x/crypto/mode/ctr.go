// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

// ctrMode implements C_i = P_i XOR E(counter_0 + i). Fully parallelizable;
// the counter is the whole block width and is carried across in full (no
// 32-bit wraparound), incremented big-endian.
type ctrMode struct {
	modeBase
	counter []byte
}

func (m *ctrMode) Name() string { return "CTR" }

func (m *ctrMode) Initialize(direction block.Direction, key, iv, info []byte) error {
	if err := m.cipher.Initialize(block.Encrypt, key, iv, info); err != nil {
		return err
	}
	bs := m.cipher.BlockSize()
	if len(iv) != bs {
		return errNotInit("CTR")
	}
	for i := range m.counter {
		m.counter[i] = 0
	}
	m.counter = make([]byte, bs)
	copy(m.counter, iv)
	m.direction = direction
	m.init = true
	return nil
}

func (m *ctrMode) Destroy() {
	m.cipher.Destroy()
	for i := range m.counter {
		m.counter[i] = 0
	}
	m.init = false
}

func (m *ctrMode) IsParallelizable() bool { return true }

func incCounterBE(c []byte) {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]++
		if c[i] != 0 {
			return
		}
	}
}

// addCounterBE adds n to the big-endian counter in place.
func addCounterBE(c []byte, n uint64) {
	carry := n
	for i := len(c) - 1; i >= 0 && carry != 0; i-- {
		sum := uint64(c[i]) + (carry & 0xFF)
		c[i] = byte(sum)
		carry = (carry >> 8) + (sum >> 8)
	}
}

func (m *ctrMode) TransformBlocks(src, dst []byte) error {
	if !m.init {
		return errNotInit("CTR")
	}
	bs := m.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return errBlockAlign("CTR")
	}
	blocks := len(src) / bs

	if !m.parallel || blocks < 2 {
		m.transformSequential(src, dst, blocks, bs)
		return nil
	}
	m.transformParallel(src, dst, blocks, bs)
	return nil
}

func (m *ctrMode) transformSequential(src, dst []byte, blocks, bs int) {
	ks := make([]byte, bs)
	ctr := make([]byte, bs)
	copy(ctr, m.counter)
	for i := 0; i < blocks; i++ {
		off := i * bs
		m.cipher.Transform(ctr, ks)
		for j := 0; j < bs; j++ {
			dst[off+j] = src[off+j] ^ ks[j]
		}
		incCounterBE(ctr)
	}
	copy(m.counter, ctr)
}

func (m *ctrMode) transformParallel(src, dst []byte, blocks, bs int) {
	base := make([]byte, bs)
	copy(base, m.counter)

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
			ctr := make([]byte, bs)
			copy(ctr, base)
			addCounterBE(ctr, uint64(start))
			ks := make([]byte, bs)
			for i := start; i < end; i++ {
				off := i * bs
				m.cipher.Transform(ctr, ks)
				for j := 0; j < bs; j++ {
					dst[off+j] = src[off+j] ^ ks[j]
				}
				incCounterBE(ctr)
			}
		}(start, end)
	}
	wg.Wait()

	copy(m.counter, base)
	addCounterBE(m.counter, uint64(blocks))
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package mode

import (
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/block"
)

// ecbMode has no feedback register: every block is independent, so both
// directions are trivially parallelizable.
type ecbMode struct{ modeBase }

func (m *ecbMode) Name() string { return "ECB" }

func (m *ecbMode) Initialize(direction block.Direction, key, iv, info []byte) error {
	if err := m.cipher.Initialize(direction, key, iv, info); err != nil {
		return err
	}
	m.direction = direction
	m.init = true
	return nil
}

func (m *ecbMode) Destroy() {
	m.cipher.Destroy()
	m.init = false
}

func (m *ecbMode) IsParallelizable() bool { return true }

func (m *ecbMode) TransformBlocks(src, dst []byte) error {
	if !m.init {
		return errNotInit("ECB")
	}
	bs := m.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return errBlockAlign("ECB")
	}
	blocks := len(src) / bs

	if !m.parallel || blocks < 2 {
		for i := 0; i < blocks; i++ {
			off := i * bs
			m.cipher.Transform(src[off:off+bs], dst[off:off+bs])
		}
		return nil
	}

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
			for i := start; i < end; i++ {
				off := i * bs
				m.cipher.Transform(src[off:off+bs], dst[off:off+bs])
			}
		}(start, end)
	}
	wg.Wait()
	return nil
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package stream

import (
	"encoding/binary"
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/internal/cerr"
)

var chachaConst32 = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"
var chachaConst16 = [4]uint32{0x61707865, 0x3120646e, 0x79622d36, 0x6b206574} // "expand 16-byte k"

// ChaCha implements Bernstein's original (non-IETF) ChaCha construction:
// state layout {4 constants, 8 key words, 2 counter words, 2 nonce words},
// an 8-byte nonce, and a 64-bit block counter that begins at zero and
// advances by one per 64-byte block, grounded structurally on
// the retrieved codahale/chacha20 reference (Cipher holding an input state
// array, a keystream block buffer, and a count of unused bytes).
type ChaCha struct {
	input   [16]uint32
	block   [BlockSize]byte
	count   int
	rounds  int
	init    bool
	parallel bool
	mu      sync.Mutex
}

func NewChaCha(rounds int) *ChaCha { return &ChaCha{rounds: rounds} }

func (c *ChaCha) BlockSize() int         { return BlockSize }
func (c *ChaCha) LegalKeySizes() []int   { return []int{16, 32} }
func (c *ChaCha) LegalRounds() []int     { return []int{8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30} }
func (c *ChaCha) Initialized() bool      { return c.init }
func (c *ChaCha) IsParallel() bool       { return c.parallel }
func (c *ChaCha) SetParallel(p bool)     { c.parallel = p }

func (c *ChaCha) Initialize(key, iv []byte) error {
	if !legalSize(len(key), c.LegalKeySizes()) {
		return errKeySize("chacha")
	}
	if len(iv) != 8 {
		return errIVSize("chacha")
	}
	if !legalSize(c.rounds, c.LegalRounds()) {
		return cerr.New("chacha", "Initialize", cerr.ErrInvalidParameter)
	}

	var consts [4]uint32
	var k [8]uint32
	if len(key) == 32 {
		consts = chachaConst32
		for i := 0; i < 8; i++ {
			k[i] = binary.LittleEndian.Uint32(key[i*4:])
		}
	} else {
		consts = chachaConst16
		for i := 0; i < 4; i++ {
			k[i] = binary.LittleEndian.Uint32(key[i*4:])
			k[i+4] = k[i]
		}
	}

	c.input[0], c.input[1], c.input[2], c.input[3] = consts[0], consts[1], consts[2], consts[3]
	for i := 0; i < 8; i++ {
		c.input[4+i] = k[i]
	}
	c.input[12] = 0
	c.input[13] = 0
	c.input[14] = binary.LittleEndian.Uint32(iv[0:])
	c.input[15] = binary.LittleEndian.Uint32(iv[4:])

	c.count = 0
	c.init = true
	return nil
}

func (c *ChaCha) Destroy() {
	for i := range c.input {
		c.input[i] = 0
	}
	for i := range c.block {
		c.block[i] = 0
	}
	c.count = 0
	c.init = false
}

func chachaQuarterRound(x *[16]uint32, a, b, cc, d int) {
	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = rotl32(x[d], 16)
	x[cc] += x[d]
	x[b] ^= x[cc]
	x[b] = rotl32(x[b], 12)
	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = rotl32(x[d], 8)
	x[cc] += x[d]
	x[b] ^= x[cc]
	x[b] = rotl32(x[b], 7)
}

// chachaCore runs `rounds` (an even count) over a copy of in and adds the
// original words back in (the ChaCha feed-forward), writing 64 bytes of
// keystream to out.
func chachaCore(rounds int, in *[16]uint32, out *[BlockSize]byte) {
	var x [16]uint32
	x = *in
	for i := 0; i < rounds; i += 2 {
		chachaQuarterRound(&x, 0, 4, 8, 12)
		chachaQuarterRound(&x, 1, 5, 9, 13)
		chachaQuarterRound(&x, 2, 6, 10, 14)
		chachaQuarterRound(&x, 3, 7, 11, 15)

		chachaQuarterRound(&x, 0, 5, 10, 15)
		chachaQuarterRound(&x, 1, 6, 11, 12)
		chachaQuarterRound(&x, 2, 7, 8, 13)
		chachaQuarterRound(&x, 3, 4, 9, 14)
	}
	for i := 0; i < 16; i++ {
		x[i] += in[i]
		binary.LittleEndian.PutUint32(out[i*4:], x[i])
	}
}

func chachaIncrementCounter(in *[16]uint32) {
	in[12]++
	if in[12] == 0 {
		in[13]++
	}
}

func (c *ChaCha) advance() {
	chachaCore(c.rounds, &c.input, &c.block)
	c.count = BlockSize
	chachaIncrementCounter(&c.input)
}

// Transform XORs src into dst using the ChaCha keystream, advancing the
// counter across as many 64-byte blocks as needed regardless of how the
// caller has chunked previous calls.
func (c *ChaCha) Transform(src, dst []byte) {
	if c.parallel && len(src) >= BlockSize*2 {
		c.transformParallel(src, dst)
		return
	}
	i := 0
	for i < len(src) {
		if c.count == 0 {
			c.advance()
		}
		dst[i] = src[i] ^ c.block[BlockSize-c.count]
		c.count--
		i++
	}
}

// transformParallel partitions a full-block-aligned prefix of src across
// workers, each computing its sub-counter as base+workerIndex*blocksPerWorker,
// then finishes any tail sequentially through the canonical counter so
// subsequent calls chain correctly.
func (c *ChaCha) transformParallel(src, dst []byte) {
	fullBlocks := len(src) / BlockSize
	tailStart := fullBlocks * BlockSize

	base := c.input
	nWorkers := workerCount(fullBlocks)
	blocksPerWorker := (fullBlocks + nWorkers - 1) / nWorkers

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		startBlock := w * blocksPerWorker
		if startBlock >= fullBlocks {
			break
		}
		endBlock := startBlock + blocksPerWorker
		if endBlock > fullBlocks {
			endBlock = fullBlocks
		}

		wg.Add(1)
		go func(startBlock, endBlock int) {
			defer wg.Done()
			st := base
			for b := 0; b < startBlock; b++ {
				chachaIncrementCounter(&st)
			}
			var ks [BlockSize]byte
			for b := startBlock; b < endBlock; b++ {
				chachaCore(c.rounds, &st, &ks)
				off := b * BlockSize
				for i := 0; i < BlockSize; i++ {
					dst[off+i] = src[off+i] ^ ks[i]
				}
				chachaIncrementCounter(&st)
			}
		}(startBlock, endBlock)
	}
	wg.Wait()

	c.input = base
	for b := 0; b < fullBlocks; b++ {
		chachaIncrementCounter(&c.input)
	}
	c.count = 0

	if tailStart < len(src) {
		c.Transform(src[tailStart:], dst[tailStart:])
	}
}

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

// Salsa20 implements Bernstein's Salsa20 keystream generator with a
// configurable even round count. Unlike ChaCha, the Salsa20
// state diagonal places constants at 0,5,10,15, key words at 1-4 and
// 11-14, an 8-byte nonce at 6,7, and a 64-bit block counter at 8,9 — the
// published Salsa20 layout, distinct from ChaCha's diagonal-free
// constants/key/counter/nonce ordering.
type Salsa20 struct {
	input    [16]uint32
	block    [BlockSize]byte
	count    int
	rounds   int
	init     bool
	parallel bool
	mu       sync.Mutex
}

var salsaConst32 = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"
var salsaConst16 = [4]uint32{0x61707865, 0x3120646e, 0x79622d36, 0x6b206574} // "expand 16-byte k"

func NewSalsa20(rounds int) *Salsa20 { return &Salsa20{rounds: rounds} }

func (s *Salsa20) BlockSize() int       { return BlockSize }
func (s *Salsa20) LegalKeySizes() []int { return []int{16, 32} }
func (s *Salsa20) LegalRounds() []int   { return []int{8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30} }
func (s *Salsa20) Initialized() bool    { return s.init }
func (s *Salsa20) IsParallel() bool     { return s.parallel }
func (s *Salsa20) SetParallel(p bool)   { s.parallel = p }

func (s *Salsa20) Initialize(key, iv []byte) error {
	if !legalSize(len(key), s.LegalKeySizes()) {
		return errKeySize("salsa20")
	}
	if len(iv) != 8 {
		return errIVSize("salsa20")
	}
	if !legalSize(s.rounds, s.LegalRounds()) {
		return cerr.New("salsa20", "Initialize", cerr.ErrInvalidParameter)
	}

	var consts [4]uint32
	var k [8]uint32
	if len(key) == 32 {
		consts = salsaConst32
		for i := 0; i < 8; i++ {
			k[i] = binary.LittleEndian.Uint32(key[i*4:])
		}
	} else {
		consts = salsaConst16
		for i := 0; i < 4; i++ {
			k[i] = binary.LittleEndian.Uint32(key[i*4:])
			k[i+4] = k[i]
		}
	}

	s.input[0] = consts[0]
	s.input[1] = k[0]
	s.input[2] = k[1]
	s.input[3] = k[2]
	s.input[4] = k[3]
	s.input[5] = consts[1]
	s.input[6] = binary.LittleEndian.Uint32(iv[0:])
	s.input[7] = binary.LittleEndian.Uint32(iv[4:])
	s.input[8] = 0
	s.input[9] = 0
	s.input[10] = consts[2]
	s.input[11] = k[4]
	s.input[12] = k[5]
	s.input[13] = k[6]
	s.input[14] = k[7]
	s.input[15] = consts[3]

	s.count = 0
	s.init = true
	return nil
}

func (s *Salsa20) Destroy() {
	for i := range s.input {
		s.input[i] = 0
	}
	for i := range s.block {
		s.block[i] = 0
	}
	s.count = 0
	s.init = false
}

// salsaQuarterRound is Bernstein's reference quarterround, applied to the
// four words of one column (columnround) or one row (rowround) of the 4x4
// state, with rotation amounts 7, 9, 13, 18.
func salsaQuarterRound(x *[16]uint32, a, b, c, d int) {
	x[b] ^= rotl32(x[a]+x[d], 7)
	x[c] ^= rotl32(x[b]+x[a], 9)
	x[d] ^= rotl32(x[c]+x[b], 13)
	x[a] ^= rotl32(x[d]+x[c], 18)
}

// salsaCore runs `rounds` (an even count) of alternating columnround /
// rowround over a copy of in, adds the original words back in, and writes
// 64 bytes of little-endian keystream to out.
func salsaCore(rounds int, in *[16]uint32, out *[BlockSize]byte) {
	var x [16]uint32
	x = *in
	for i := 0; i < rounds; i += 2 {
		// columnround: operate on the four columns of the state viewed as
		// a column-major 4x4 matrix.
		salsaQuarterRound(&x, 0, 4, 8, 12)
		salsaQuarterRound(&x, 5, 9, 13, 1)
		salsaQuarterRound(&x, 10, 14, 2, 6)
		salsaQuarterRound(&x, 15, 3, 7, 11)

		// rowround: operate on the four rows.
		salsaQuarterRound(&x, 0, 1, 2, 3)
		salsaQuarterRound(&x, 5, 6, 7, 4)
		salsaQuarterRound(&x, 10, 11, 8, 9)
		salsaQuarterRound(&x, 15, 12, 13, 14)
	}
	for i := 0; i < 16; i++ {
		x[i] += in[i]
		binary.LittleEndian.PutUint32(out[i*4:], x[i])
	}
}

func salsaIncrementCounter(in *[16]uint32) {
	in[8]++
	if in[8] == 0 {
		in[9]++
	}
}

func (s *Salsa20) advance() {
	salsaCore(s.rounds, &s.input, &s.block)
	s.count = BlockSize
	salsaIncrementCounter(&s.input)
}

func (s *Salsa20) Transform(src, dst []byte) {
	if s.parallel && len(src) >= BlockSize*2 {
		s.transformParallel(src, dst)
		return
	}
	i := 0
	for i < len(src) {
		if s.count == 0 {
			s.advance()
		}
		dst[i] = src[i] ^ s.block[BlockSize-s.count]
		s.count--
		i++
	}
}

func (s *Salsa20) transformParallel(src, dst []byte) {
	fullBlocks := len(src) / BlockSize
	tailStart := fullBlocks * BlockSize

	base := s.input
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
				salsaIncrementCounter(&st)
			}
			var ks [BlockSize]byte
			for b := startBlock; b < endBlock; b++ {
				salsaCore(s.rounds, &st, &ks)
				off := b * BlockSize
				for i := 0; i < BlockSize; i++ {
					dst[off+i] = src[off+i] ^ ks[i]
				}
				salsaIncrementCounter(&st)
			}
		}(startBlock, endBlock)
	}
	wg.Wait()

	s.input = base
	for b := 0; b < fullBlocks; b++ {
		salsaIncrementCounter(&s.input)
	}
	s.count = 0

	if tailStart < len(src) {
		s.Transform(src[tailStart:], dst[tailStart:])
	}
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package digest

import "encoding/binary"

// Skein UBI (Unique Block Iteration) type codes, per the Skein v1.3 spec.
const (
	ubiTypeConfig  = 4
	ubiTypeMessage = 48
	ubiTypeOutput  = 63
)

// skein implements Interface atop Threefish-{256,512,1024} using the UBI
// chaining construction. nb is the cipher's block size in bytes (32, 64,
// or 128) and also the output digest size for this adapter (Skein is
// naturally used at "full width" here since KDFs ask for a fixed-size PRF
// output, not Skein's arbitrary XOF length).
type skein struct {
	nb  int
	nw  int
	g   []uint64 // current chain value, nw words
	buf []byte   // buffered message bytes not yet folded into g
	pos uint64   // unused; ubiBlock derives each tweak position from its own input
}

func newSkein(nb int) (*skein, error) {
	nw := nb / 8
	s := &skein{nb: nb, nw: nw}
	s.g = make([]uint64, nw)
	s.initChain()
	return s, nil
}

// initChain computes G0 = UBI(0, configBlock, type=Config), the standard
// Skein initialization producing the chain value used for the first
// message UBI pass.
func (s *skein) initChain() {
	cfg := make([]byte, s.nb)
	cfg[0], cfg[1], cfg[2], cfg[3] = 'S', 'H', 'A', '3'
	binary.LittleEndian.PutUint16(cfg[4:], 1) // version 1
	binary.LittleEndian.PutUint64(cfg[8:], uint64(s.nb)*8)
	// tree info left zero (no tree mode).

	zeroKey := make([]uint64, s.nw)
	// The configuration string is 32 bytes for every state size; the rest
	// of cfg is the zero padding of its single block.
	s.g = s.ubiBlock(zeroKey, cfg[:32], ubiTypeConfig)
}

// ubiBlock runs one or more Threefish UBI steps over msg (which may span
// multiple nb-byte blocks, zero-padded in the final block if necessary),
// chaining from the given starting key, and returns the resulting chain
// value (nw words).
func (s *skein) ubiBlock(startKey []uint64, msg []byte, typ uint64) []uint64 {
	g := append([]uint64(nil), startKey...)
	total := len(msg)
	if total == 0 {
		total = 0
	}

	nBlocks := (total + s.nb - 1) / s.nb
	if nBlocks == 0 {
		nBlocks = 1
	}

	pos := 0
	for i := 0; i < nBlocks; i++ {
		first := i == 0
		final := i == nBlocks-1

		block := make([]byte, s.nb)
		end := pos + s.nb
		if end > total {
			end = total
		}
		n := copy(block, msg[pos:end])
		pos += n

		var bitLen uint64
		if final {
			bitLen = uint64(total)
		} else {
			bitLen = uint64(pos)
		}

		tweak := buildTweak(bitLen, typ, first, final)

		in := bytesToWords(block, s.nw)
		out := make([]uint64, s.nw)
		threefishEncrypt(s.nw, g, tweak, in, out)
		for j := range out {
			out[j] ^= in[j]
		}
		g = out
	}

	return g
}

// buildTweak packs the 128-bit Skein tweak: low word = position, high word
// carries the type field (bits 56-61), first-block flag (bit 62), and
// final-block flag (bit 63).
func buildTweak(position, typ uint64, first, final bool) []uint64 {
	hi := typ << 56
	if first {
		hi |= 1 << 62
	}
	if final {
		hi |= 1 << 63
	}
	return []uint64{position, hi}
}

func bytesToWords(b []byte, nw int) []uint64 {
	w := make([]uint64, nw)
	for i := 0; i < nw; i++ {
		w[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return w
}

func wordsToBytes(w []uint64, out []byte) {
	for i, x := range w {
		binary.LittleEndian.PutUint64(out[i*8:], x)
	}
}

func (s *skein) Update(p []byte) {
	s.buf = append(s.buf, p...)
}

func (s *skein) Finalize(out []byte) []byte {
	g := s.ubiBlock(s.g, s.buf, ubiTypeMessage)

	counter := make([]byte, 8)
	outChain := s.ubiBlock(g, counter, ubiTypeOutput)

	digest := make([]byte, s.nb)
	wordsToBytes(outChain, digest)

	return append(out, digest...)
}

func (s *skein) DigestSize() int { return s.nb }
func (s *skein) BlockSize() int  { return s.nb }

func (s *skein) Reset() {
	s.buf = s.buf[:0]
	s.pos = 0
	s.initChain()
}

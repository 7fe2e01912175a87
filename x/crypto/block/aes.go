// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"github.com/sixafter/symcrypt/x/crypto/digest"
	"github.com/sixafter/symcrypt/x/crypto/internal/cerr"
)

// AES implements the Rijndael/AES block permutation generalized over
// two block sizes: Nb=4 (16-byte, the FIPS-197 AES
// family) and Nb=8 (32-byte, "Rijndael-256", a pre-standardization
// Rijndael block size FIPS 197 dropped). Key size Nk ∈ {4, 6, 8} words
// (AES-128/192/256) in both cases. Rounds Nr = max(Nk, Nb) + 6, per the
// original Rijndael specification (the key-schedule recurrence itself
// does not depend on Nb).
//
// An instance built with NewExtendedAES uses the RHX extended key schedule
// (with the digest supplied to that constructor) instead of the standard
// Rijndael one; Initialize's info argument does not select the schedule.
type AES struct {
	nb        int // words per block: 4 or 8
	nk        int // words per key: 4, 6, or 8
	nr        int
	direction Direction
	w         [][4]byte // (nr+1)*nb words
	init      bool
	extended  digest.Kind
	isHX      bool
}

// NewAES constructs a standard (non-extended) Rijndael instance with the
// given block size in bytes (16 or 32).
func NewAES(blockSize int) (*AES, error) {
	nb := blockSize / 4
	if nb != 4 && nb != 8 {
		return nil, cerr.New("aes", "NewAES", cerr.ErrInvalidParameter)
	}
	return &AES{nb: nb}, nil
}

// NewExtendedAES constructs an RHX instance: the round function is
// identical to AES, but the round-key schedule is produced by an
// HMAC-counter construction using the given digest.
func NewExtendedAES(blockSize int, d digest.Kind) (*AES, error) {
	a, err := NewAES(blockSize)
	if err != nil {
		return nil, err
	}
	a.isHX = true
	a.extended = d
	return a, nil
}

func (a *AES) Name() string {
	if a.isHX {
		return "RHX"
	}
	return "Rijndael"
}

func (a *AES) BlockSize() int { return a.nb * 4 }

func (a *AES) LegalKeySizes() []int { return []int{16, 24, 32} }

func (a *AES) Initialized() bool { return a.init }

func (a *AES) Initialize(direction Direction, key, iv, info []byte) error {
	if !legalSize(len(key), a.LegalKeySizes()) {
		return errKeySize("aes")
	}
	a.destroySchedule()

	nk := len(key) / 4
	a.nk = nk
	a.nr = maxInt(nk, a.nb) + 6
	a.direction = direction

	if a.isHX {
		sched, err := expandHX(a.extended, key, 4*a.nb*(a.nr+1))
		if err != nil {
			return cerr.New("aes", "Initialize", cerr.ErrInvalidParameter)
		}
		a.w = bytesToWordSchedule(sched, a.nb*(a.nr+1))
	} else {
		a.w = expandKeyRijndael(key, nk, a.nb, a.nr)
	}
	a.init = true
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func bytesToWordSchedule(b []byte, nwords int) [][4]byte {
	w := make([][4]byte, nwords)
	for i := 0; i < nwords; i++ {
		copy(w[i][:], b[i*4:i*4+4])
	}
	return w
}

func expandKeyRijndael(key []byte, nk, nb, nr int) [][4]byte {
	total := nb * (nr + 1)
	w := make([][4]byte, total)
	for i := 0; i < nk; i++ {
		copy(w[i][:], key[i*4:i*4+4])
	}
	for i := nk; i < total; i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/nk]
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-nk][j] ^ temp[j]
		}
	}
	return w
}

func rotWord(w [4]byte) [4]byte { return [4]byte{w[1], w[2], w[3], w[0]} }

func subWord(w [4]byte) [4]byte {
	return [4]byte{aesSBox[w[0]], aesSBox[w[1]], aesSBox[w[2]], aesSBox[w[3]]}
}

// shiftOffsets returns the ShiftRows row-shift amounts (C1, C2, C3) for the
// given Nb, per the original Rijndael specification's table. Row 0 never
// shifts.
func shiftOffsets(nb int) [4]int {
	if nb == 8 {
		return [4]int{0, 1, 3, 4}
	}
	return [4]int{0, 1, 2, 3}
}

func (a *AES) Transform(src, dst []byte) {
	if a.direction == Encrypt {
		a.EncryptBlock(src, dst)
	} else {
		a.DecryptBlock(src, dst)
	}
}

func (a *AES) EncryptBlock(src, dst []byte) {
	nb := a.nb
	state := toState(src, nb)

	addRoundKey(state, a.w, 0, nb)
	shifts := shiftOffsets(nb)
	for round := 1; round < a.nr; round++ {
		subBytes(state, nb, aesSBox[:])
		shiftRows(state, nb, shifts, false)
		mixColumns(state, nb, false)
		addRoundKey(state, a.w, round, nb)
	}
	subBytes(state, nb, aesSBox[:])
	shiftRows(state, nb, shifts, false)
	addRoundKey(state, a.w, a.nr, nb)

	fromState(state, dst, nb)
}

func (a *AES) DecryptBlock(src, dst []byte) {
	nb := a.nb
	state := toState(src, nb)
	shifts := shiftOffsets(nb)

	addRoundKey(state, a.w, a.nr, nb)
	for round := a.nr - 1; round >= 1; round-- {
		shiftRows(state, nb, shifts, true)
		subBytes(state, nb, aesInvSBox[:])
		addRoundKey(state, a.w, round, nb)
		mixColumns(state, nb, true)
	}
	shiftRows(state, nb, shifts, true)
	subBytes(state, nb, aesInvSBox[:])
	addRoundKey(state, a.w, 0, nb)

	fromState(state, dst, nb)
}

func (a *AES) Destroy() { a.destroySchedule() }

func (a *AES) destroySchedule() {
	for i := range a.w {
		a.w[i] = [4]byte{}
	}
	a.w = nil
	a.init = false
}

// state is a 4-row by nb-column byte matrix, column-major as in FIPS 197.
func toState(src []byte, nb int) [][4]byte {
	s := make([][4]byte, nb)
	for c := 0; c < nb; c++ {
		for r := 0; r < 4; r++ {
			s[c][r] = src[c*4+r]
		}
	}
	return s
}

func fromState(s [][4]byte, dst []byte, nb int) {
	for c := 0; c < nb; c++ {
		for r := 0; r < 4; r++ {
			dst[c*4+r] = s[c][r]
		}
	}
}

func subBytes(s [][4]byte, nb int, box []byte) {
	for c := 0; c < nb; c++ {
		for r := 0; r < 4; r++ {
			s[c][r] = box[s[c][r]]
		}
	}
}

func shiftRows(s [][4]byte, nb int, shifts [4]int, inverse bool) {
	for r := 1; r < 4; r++ {
		shift := shifts[r]
		if inverse {
			shift = nb - shift
		}
		row := make([]byte, nb)
		for c := 0; c < nb; c++ {
			row[c] = s[(c+shift)%nb][r]
		}
		for c := 0; c < nb; c++ {
			s[c][r] = row[c]
		}
	}
}

func mixColumns(s [][4]byte, nb int, inverse bool) {
	for c := 0; c < nb; c++ {
		a0, a1, a2, a3 := s[c][0], s[c][1], s[c][2], s[c][3]
		if !inverse {
			s[c][0] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
			s[c][1] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
			s[c][2] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
			s[c][3] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
		} else {
			s[c][0] = gmul(a0, 14) ^ gmul(a1, 11) ^ gmul(a2, 13) ^ gmul(a3, 9)
			s[c][1] = gmul(a0, 9) ^ gmul(a1, 14) ^ gmul(a2, 11) ^ gmul(a3, 13)
			s[c][2] = gmul(a0, 13) ^ gmul(a1, 9) ^ gmul(a2, 14) ^ gmul(a3, 11)
			s[c][3] = gmul(a0, 11) ^ gmul(a1, 13) ^ gmul(a2, 9) ^ gmul(a3, 14)
		}
	}
}

func addRoundKey(s [][4]byte, w [][4]byte, round, nb int) {
	for c := 0; c < nb; c++ {
		word := w[round*nb+c]
		for r := 0; r < 4; r++ {
			s[c][r] ^= word[r]
		}
	}
}

// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import (
	"golang.org/x/crypto/twofish"

	"github.com/sixafter/symcrypt/x/crypto/digest"
	"github.com/sixafter/symcrypt/x/crypto/internal/cerr"
)

// Twofish wraps golang.org/x/crypto/twofish's cipher.Block behind this
// package's Interface.
//
// Twofish's key-dependent S-boxes (built from the Reed-Solomon and MDS
// matrices via the published h-function) have no equivalent anywhere in
// the retrieved example pack, and hand-rolling that construction with no
// way to run it against known-answer vectors this session risks shipping
// a cipher that silently disagrees with the standard on every block. Since
// golang.org/x/crypto/twofish is already a wireable, real dependency (the
// same module the digest package uses for Blake2/Keccak), the base
// Twofish path wraps it directly rather than reimplementing the round
// function from memory — see DESIGN.md.
//
// The THX extended variant instead runs the HX HMAC-counter construction
// as a key-derivation pre-pass: the user key is expanded to a
// fresh pseudorandom key of the same length via expandHX, and that
// derived key seeds golang.org/x/crypto/twofish's own key schedule. This
// preserves the "digest-parameterized, HMAC-derived key material" intent
// of the HX family without exposing (or reimplementing) Twofish's
// internal round-key/S-box layout.
type Twofish struct {
	direction Direction
	block     *twofish.Cipher
	init      bool
	isHX      bool
	extended  digest.Kind
}

func NewTwofish() *Twofish { return &Twofish{} }

func NewExtendedTwofish(d digest.Kind) *Twofish {
	return &Twofish{isHX: true, extended: d}
}

func (t *Twofish) Name() string {
	if t.isHX {
		return "THX"
	}
	return "Twofish"
}

func (t *Twofish) BlockSize() int { return twofish.BlockSize }

func (t *Twofish) LegalKeySizes() []int { return []int{16, 24, 32} }

func (t *Twofish) Initialized() bool { return t.init }

func (t *Twofish) Initialize(direction Direction, key, iv, info []byte) error {
	if !legalSize(len(key), t.LegalKeySizes()) {
		return errKeySize("twofish")
	}
	t.destroySchedule()
	t.direction = direction

	useKey := key
	if t.isHX {
		derived, err := expandHX(t.extended, key, len(key))
		if err != nil {
			return cerr.New("twofish", "Initialize", cerr.ErrInvalidParameter)
		}
		useKey = derived
	}

	c, err := twofish.NewCipher(useKey)
	if err != nil {
		return cerr.New("twofish", "Initialize", cerr.ErrInvalidKeySize)
	}
	t.block = c
	t.init = true
	return nil
}

func (t *Twofish) Destroy() { t.destroySchedule() }

func (t *Twofish) destroySchedule() {
	if t.block != nil {
		*t.block = twofish.Cipher{}
	}
	t.block = nil
	t.init = false
}

func (t *Twofish) Transform(src, dst []byte) {
	if t.direction == Encrypt {
		t.EncryptBlock(src, dst)
	} else {
		t.DecryptBlock(src, dst)
	}
}

func (t *Twofish) EncryptBlock(src, dst []byte) { t.block.Encrypt(dst, src) }
func (t *Twofish) DecryptBlock(src, dst []byte) { t.block.Decrypt(dst, src) }

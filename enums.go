// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package symcrypt

import (
	"github.com/sixafter/symcrypt/x/crypto/block"
	"github.com/sixafter/symcrypt/x/crypto/digest"
	"github.com/sixafter/symcrypt/x/crypto/mode"
	"github.com/sixafter/symcrypt/x/crypto/padding"
	"github.com/sixafter/symcrypt/x/crypto/stream"
)

// BlockCipher enumerates the block-cipher families and their extended
// (HX) key-schedule variants recognized by this module.
type BlockCipher int

const (
	AES128 BlockCipher = iota
	AES192
	AES256
	Rijndael256
	SerpentCipher
	TwofishCipher
	RHX
	SHX
	THX
)

// CipherMode enumerates the modes of operation.
type CipherMode = mode.Kind

const (
	ECB = mode.ECB
	CBC = mode.CBC
	CFB = mode.CFB
	OFB = mode.OFB
	CTR = mode.CTR
)

// PaddingScheme enumerates the padding schemes.
type PaddingScheme = padding.Kind

const (
	PaddingNone    = padding.None
	PaddingPKCS7   = padding.PKCS7
	PaddingISO7816 = padding.ISO7816
	PaddingX923    = padding.X923
	PaddingTBC     = padding.TBC
	PaddingZero    = padding.Zero
)

// StreamCipherKind enumerates the stream-cipher families.
type StreamCipherKind int

const (
	Salsa20Stream StreamCipherKind = iota
	ChaChaStream
)

// DigestKind re-exports the digest enumeration used as a PRF.
type DigestKind = digest.Kind

const (
	SHA256     = digest.SHA256
	SHA512     = digest.SHA512
	Blake2s256 = digest.Blake2s256
	Blake2b512 = digest.Blake2b512
	Keccak256  = digest.Keccak256
	Keccak512  = digest.Keccak512
	Skein256   = digest.Skein256
	Skein512   = digest.Skein512
	Skein1024  = digest.Skein1024
)

// NewBlockCipher constructs the block.Interface implementation for a
// BlockCipher enum value, wiring the HX key-schedule variants to the
// digest supplied for extended constructions.
func NewBlockCipher(c BlockCipher, extended DigestKind) (block.Interface, error) {
	switch c {
	case AES128, AES192, AES256:
		return block.NewAES(16)
	case Rijndael256:
		return block.NewAES(32)
	case SerpentCipher:
		return block.NewSerpent(), nil
	case TwofishCipher:
		return block.NewTwofish(), nil
	case RHX:
		return block.NewExtendedAES(16, extended)
	case SHX:
		return block.NewExtendedSerpent(32, extended)
	case THX:
		return block.NewExtendedTwofish(extended), nil
	default:
		return nil, ErrInvalidParameter
	}
}

// NewStreamCipher constructs the stream.Interface implementation for a
// StreamCipherKind with the given round count, passed through unchanged.
// ChaChaStream selects ChaCha; every other kind selects Salsa20.
func NewStreamCipher(k StreamCipherKind, rounds int) stream.Interface {
	switch k {
	case ChaChaStream:
		return stream.NewChaCha(rounds)
	default:
		return stream.NewSalsa20(rounds)
	}
}

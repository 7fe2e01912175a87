// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package padding implements the block-padding schemes of C4: PKCS7,
// ISO7816-4, X9.23, TBC, and ZeroPad. Validation never fails with an error:
// a scheme that cannot validate a candidate padded block returns a pad
// length of zero, and callers (CipherStream) decide whether that is an
// error. AddPadding does return an error for PKCS7, ISO7816-4, X9.23 and
// TBC when the block has no room left for padding.
package padding

// Kind identifies a padding scheme.
type Kind int

const (
	None Kind = iota
	PKCS7
	ISO7816
	X923
	TBC
	Zero
)

// Interface is the uniform contract for a padding scheme.
type Interface interface {
	// AddPadding fills the trailing n = blockSize - (len(block) bound)
	// bytes of block, which must already be sized to blockSize with
	// dataLen valid bytes at the front.
	AddPadding(block []byte, dataLen int) error

	// GetPaddingLength returns the number of padding bytes at the end of
	// block, or zero if block is not validly padded.
	GetPaddingLength(block []byte) int

	Name() string
}

// New constructs the Interface for a Kind.
func New(k Kind) Interface {
	switch k {
	case PKCS7:
		return pkcs7{}
	case ISO7816:
		return iso7816{}
	case X923:
		return x923{}
	case TBC:
		return tbc{}
	case Zero:
		return zeroPad{}
	default:
		return nil
	}
}

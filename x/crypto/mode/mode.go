// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package mode implements the block-cipher modes of operation of C3: ECB,
// CBC, CFB, OFB, and CTR. Each mode owns its feedback register / counter;
// re-Initialize zeroes it and installs a fresh copy of the IV.
package mode

import (
	"runtime"

	"github.com/sixafter/symcrypt/x/crypto/block"
	"github.com/sixafter/symcrypt/x/crypto/internal/cerr"
)

type Kind int

const (
	ECB Kind = iota
	CBC
	CFB
	OFB
	CTR
)

// Interface is the buffered-transform surface CipherStream drives: the
// block-cipher surface plus parallelism knobs.
type Interface interface {
	Initialize(direction block.Direction, key, iv, info []byte) error
	BlockSize() int
	Name() string
	Initialized() bool
	Destroy()

	// TransformBlocks processes a whole number of blocks from src into
	// dst, advancing the mode's feedback register/counter. len(src) must
	// be a non-zero multiple of BlockSize().
	TransformBlocks(src, dst []byte) error

	IsParallelizable() bool
	SetParallel(bool)
	IsParallel() bool
}

func New(k Kind, cipher block.Interface) Interface {
	base := modeBase{cipher: cipher}
	switch k {
	case ECB:
		return &ecbMode{modeBase: base}
	case CBC:
		return &cbcMode{modeBase: base}
	case CFB:
		return &cfbMode{modeBase: base}
	case OFB:
		return &ofbMode{modeBase: base}
	case CTR:
		return &ctrMode{modeBase: base}
	default:
		return nil
	}
}

type modeBase struct {
	cipher    block.Interface
	direction block.Direction
	init      bool
	parallel  bool
}

func (m *modeBase) BlockSize() int      { return m.cipher.BlockSize() }
func (m *modeBase) Initialized() bool   { return m.init }
func (m *modeBase) IsParallel() bool    { return m.parallel }
func (m *modeBase) SetParallel(p bool)  { m.parallel = p }

func errNotInit(name string) error {
	return cerr.New(name, "TransformBlocks", cerr.ErrNotInitialized)
}

func errBlockAlign(name string) error {
	return cerr.New(name, "TransformBlocks", cerr.ErrInvalidParameter)
}

// workerCount mirrors the stream package's cap, never exceeding the
// number of blocks available to split across.
func workerCount(blocks int) int {
	n := runtime.GOMAXPROCS(0)
	if n > blocks {
		n = blocks
	}
	if n < 1 {
		n = 1
	}
	return n
}

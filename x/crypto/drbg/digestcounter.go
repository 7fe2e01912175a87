// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"encoding/binary"
	"sync"

	"github.com/sixafter/symcrypt/x/crypto/digest"
)

// DigestCounter implements the Appendix E1 digest-counter construction of
// NIST SP 800-90A: internal seed and state (each one digest output wide)
// plus two 64-bit counters. Every Generate call advances the state
// counter and folds it, seed, and the counter bytes through the digest;
// every 10th call reseeds. This is the one component in the whole module
// whose three mutators run under a single lock, since Generate both reads
// and rewrites the seed and counters that Update also mutates.
type DigestCounter struct {
	newDigest func() (digest.Interface, error)
	hashLen   int

	mu           sync.Mutex
	seed         []byte
	state        []byte
	stateCounter uint64
	seedCounter  uint64
	generateHits int
	init         bool
}

const digestCounterReseedInterval = 10

func NewDigestCounter(k digest.Kind) (*DigestCounter, error) {
	d, err := digest.New(k)
	if err != nil {
		return nil, err
	}
	return &DigestCounter{newDigest: digest.NewFunc(k), hashLen: d.DigestSize()}, nil
}

func (g *DigestCounter) KeySize() int      { return g.hashLen }
func (g *DigestCounter) Initialized() bool { return g.init }

func (g *DigestCounter) Initialize(key, salt, info []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seedMaterial := append(append([]byte(nil), key...), salt...)
	seedMaterial = append(seedMaterial, info...)

	h, err := g.newDigest()
	if err != nil {
		return err
	}
	h.Update(seedMaterial)
	g.seed = h.Finalize(nil)
	for len(g.seed) < g.hashLen {
		g.seed = append(g.seed, 0)
	}

	h2, err := g.newDigest()
	if err != nil {
		return err
	}
	h2.Update(g.seed)
	h2.Update([]byte{0x01})
	g.state = h2.Finalize(nil)

	g.stateCounter = 0
	g.seedCounter = 0
	g.generateHits = 0
	g.init = true
	return nil
}

func (g *DigestCounter) Update(seed []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.init {
		return errNotInit("DigestCounterDRBG")
	}
	return g.reseedLocked(seed)
}

// reseedLocked folds fresh seed material into g.seed: seed <- H(seed ||
// counter_bytes_LE), under the caller-held lock.
func (g *DigestCounter) reseedLocked(extra []byte) error {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], g.seedCounter)

	h, err := g.newDigest()
	if err != nil {
		return err
	}
	h.Update(g.seed)
	if len(extra) > 0 {
		h.Update(extra)
	}
	h.Update(ctr[:])
	g.seed = h.Finalize(nil)
	g.seedCounter++
	return nil
}

func (g *DigestCounter) Generate(out []byte, offset, size int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.init {
		return 0, errNotInit("DigestCounterDRBG")
	}
	if offset+size > len(out) {
		return 0, errBufferTooSmall("DigestCounterDRBG")
	}

	produced := 0
	for produced < size {
		var ctr [8]byte
		binary.LittleEndian.PutUint64(ctr[:], g.stateCounter)
		g.stateCounter++

		h, err := g.newDigest()
		if err != nil {
			return produced, err
		}
		h.Update(g.state)
		h.Update(g.seed)
		h.Update(ctr[:])
		g.state = h.Finalize(nil)

		n := copy(out[offset+produced:offset+size], g.state)
		produced += n
	}

	g.generateHits++
	if g.generateHits >= digestCounterReseedInterval {
		if err := g.reseedLocked(nil); err != nil {
			return produced, err
		}
		g.generateHits = 0
	}
	return produced, nil
}

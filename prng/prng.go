// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prng provides the deterministic random bit generators that back
// prime search and key generation: an entropy-seeded source, a stateful
// Barak-Halevi generator built on SHA-256, a file-persisted wrapper around
// it, and a combinator that XORs two independent sources.
//
// https://www.cs.tau.ac.il/~iftachh/papers/BH/BH.pdf
package prng

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
)

// StateSize is the size in bytes of a Barak-Halevi internal state, and of
// the value a Generator refreshes with when seeding another one.
const StateSize = 32

// Generator is the common interface implemented by every random source in
// this package: bit generators, the persistent wrapper and the combinator.
type Generator interface {
	// Refresh mixes input into the generator's internal state.
	Refresh(input []byte)
	// RefreshFrom draws n bytes from src and refreshes with them.
	RefreshFrom(src Generator, n int)
	// Next fills output with pseudo-random bytes.
	Next(output []byte)
	// NextString draws n pseudo-random bytes.
	NextString(n int) []byte
	// NextInt draws an nBits-long integer with the top bit forced to one,
	// i.e. an integer x with 2^(nBits-1) <= x < 2^nBits.
	NextInt(nBits int) *big.Int
	// NextIntMod draws an integer uniformly distributed modulo q, by
	// oversampling q's bit length by 64 bits and reducing.
	NextIntMod(q *big.Int) *big.Int
	// SaveState persists the generator's internal state, if it has any
	// persistence backing; a no-op otherwise.
	SaveState() error
}

func sha256Concat(prefix byte, data []byte) [32]byte {
	buf := make([]byte, len(data)+1)
	buf[0] = prefix
	copy(buf[1:], data)
	return sha256.Sum256(buf)
}

// EntropySource is a Generator backed directly by crypto/rand, used to seed
// the deterministic generators below and nothing else.
type EntropySource struct{}

// NewEntropySource returns a Generator drawing directly from the operating
// system's entropy pool.
func NewEntropySource() *EntropySource {
	return &EntropySource{}
}

// Refresh is a no-op: an entropy source has no state to mix input into.
func (*EntropySource) Refresh([]byte) {}

// RefreshFrom draws n bytes from src and discards them; kept only to satisfy
// the Generator interface.
func (e *EntropySource) RefreshFrom(src Generator, n int) {
	src.NextString(n)
}

// Next fills output with bytes read from crypto/rand.
func (*EntropySource) Next(output []byte) {
	if _, err := rand.Read(output); err != nil {
		panic("prng: entropy source failed: " + err.Error())
	}
}

// NextString draws n bytes from crypto/rand.
func (e *EntropySource) NextString(n int) []byte {
	out := make([]byte, n)
	e.Next(out)
	return out
}

// NextInt draws an nBits-long integer with the top bit forced to one.
func (e *EntropySource) NextInt(nBits int) *big.Int {
	return drawInt(e, nBits)
}

// NextIntMod draws an integer uniform modulo q.
func (e *EntropySource) NextIntMod(q *big.Int) *big.Int {
	return drawIntMod(e, q)
}

// SaveState is a no-op for an entropy source.
func (*EntropySource) SaveState() error { return nil }

// drawInt implements PRNG::getRandomInt: draw ceil(nBits/8) random bytes,
// mask off the excess high bits, then force the top bit of the requested
// width to one.
func drawInt(g Generator, nBits int) *big.Int {
	size := (nBits + 7) / 8
	raw := g.NextString(size)

	excess := uint(size*8 - nBits)
	raw[0] &= byte(0xff >> excess)
	raw[0] |= byte(0x80 >> excess)

	return new(big.Int).SetBytes(raw)
}

// drawIntMod implements PRNG::getRandomIntNB: oversample q's bit length by
// 64 bits, then reduce modulo q.
func drawIntMod(g Generator, q *big.Int) *big.Int {
	size := q.BitLen() + 64
	x := drawInt(g, size)
	return x.Mod(x, q)
}

// BarakHalevi is a stateless-storage Barak-Halevi generator: a 32-byte
// internal state refreshed and extracted via SHA-256, all-zero on creation.
type BarakHalevi struct {
	state [StateSize]byte
}

// NewBarakHalevi creates a Barak-Halevi generator with an all-zero initial
// state, matching the reference constructor.
func NewBarakHalevi() *BarakHalevi {
	return &BarakHalevi{}
}

// Refresh implements S <- G'(S XOR Extract(input)).
func (b *BarakHalevi) Refresh(input []byte) {
	ext := sha256Concat(2, input)
	var xored [StateSize]byte
	for i := range xored {
		xored[i] = b.state[i] ^ ext[i]
	}
	b.state = sha256Concat(3, xored[:])
}

// RefreshFrom draws n bytes from src and refreshes with them.
func (b *BarakHalevi) RefreshFrom(src Generator, n int) {
	b.Refresh(src.NextString(n))
}

// Next implements the next() extraction function: repeatedly compute
// G(S) = SHA256(0||S) || SHA256(1||S), emit up to 32 bytes of it, and
// advance the state to the second half.
func (b *BarakHalevi) Next(output []byte) {
	for len(output) > 0 {
		block0 := sha256Concat(0, b.state[:])
		block1 := sha256Concat(1, b.state[:])

		n := copy(output, block0[:])
		copy(b.state[:], block1[:])
		output = output[n:]
	}
}

// NextString draws n pseudo-random bytes.
func (b *BarakHalevi) NextString(n int) []byte {
	out := make([]byte, n)
	b.Next(out)
	return out
}

// NextInt draws an nBits-long integer with the top bit forced to one.
func (b *BarakHalevi) NextInt(nBits int) *big.Int {
	return drawInt(b, nBits)
}

// NextIntMod draws an integer uniform modulo q.
func (b *BarakHalevi) NextIntMod(q *big.Int) *big.Int {
	return drawIntMod(b, q)
}

// SaveState is a no-op: BarakHalevi has no persistence backing on its own.
func (*BarakHalevi) SaveState() error { return nil }

// State returns a copy of the generator's current internal state.
func (b *BarakHalevi) State() [StateSize]byte {
	return b.state
}

// Combined XORs the output of two independent generators together, and
// fans Refresh/SaveState calls out to both.
type Combined struct {
	src1, src2 Generator
}

// NewCombined builds a Combined generator from two independent sources. It
// fails with errs.UnexpectedError if src1 and src2 are the same instance:
// XOR-combining a generator with itself only XORs consecutive blocks of a
// single stream, and refreshing it twice per call is not meaningful.
func NewCombined(src1, src2 Generator) (*Combined, error) {
	if src1 == src2 {
		return nil, errs.New(errs.UnexpectedError, "combined PRNG called with two identical sources")
	}
	return &Combined{src1: src1, src2: src2}, nil
}

// Refresh mixes input into both underlying generators.
func (c *Combined) Refresh(input []byte) {
	c.src1.Refresh(input)
	c.src2.Refresh(input)
}

// RefreshFrom draws n bytes from src and refreshes both underlying
// generators with them.
func (c *Combined) RefreshFrom(src Generator, n int) {
	buf := src.NextString(n)
	c.src1.Refresh(buf)
	c.src2.Refresh(buf)
}

// Next XORs the outputs of both underlying generators into output.
func (c *Combined) Next(output []byte) {
	tmp := make([]byte, len(output))
	c.src1.Next(output)
	c.src2.Next(tmp)
	for i := range output {
		output[i] ^= tmp[i]
	}
}

// NextString draws n pseudo-random bytes.
func (c *Combined) NextString(n int) []byte {
	out := make([]byte, n)
	c.Next(out)
	return out
}

// NextInt draws an nBits-long integer with the top bit forced to one.
func (c *Combined) NextInt(nBits int) *big.Int {
	return drawInt(c, nBits)
}

// NextIntMod draws an integer uniform modulo q.
func (c *Combined) NextIntMod(q *big.Int) *big.Int {
	return drawIntMod(c, q)
}

// SaveState persists both underlying generators.
func (c *Combined) SaveState() error {
	if err := c.src1.SaveState(); err != nil {
		return err
	}
	return c.src2.SaveState()
}

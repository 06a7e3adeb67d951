// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package primeengine

import (
	"math/big"
	"testing"

	"github.com/dark-bio/rsapki-go/prng"
)

func newTestEngine() *Engine {
	seed := prng.NewBarakHalevi()
	seed.Refresh([]byte("primeengine test seed"))
	return New(seed)
}

func TestIsPrimeSieveKnownPrimes(t *testing.T) {
	e := newTestEngine()
	knownPrimes := []int64{
		65537, 104729, 1299709, 15485863,
	}
	for _, p := range knownPrimes {
		ok, err := e.IsPrimeSieve(big.NewInt(p), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("IsPrimeSieve(%d) = false, want true", p)
		}
	}
}

func TestIsPrimeSieveKnownComposites(t *testing.T) {
	e := newTestEngine()
	composites := []int64{
		9, 15, 341, 91, 561, 104730,
	}
	for _, c := range composites {
		ok, err := e.IsPrimeSieve(big.NewInt(c), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Errorf("IsPrimeSieve(%d) = true, want false", c)
		}
	}
}

func TestIsPrimeSieveExplicitBound(t *testing.T) {
	e := newTestEngine()
	// 91 = 7 * 13, both within a small bound.
	ok, err := e.IsPrimeSieve(big.NewInt(91), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected 91 to be rejected by a bound covering 7 and 13")
	}
}

func TestIsPrimeSieveRejectsBoundBeyondTable(t *testing.T) {
	e := newTestEngine()
	if _, err := e.IsPrimeSieve(big.NewInt(7), primesSize+1); err == nil {
		t.Error("expected an error for a bound exceeding the prime table size")
	}
}

func TestIsPrimeMillerRabinExplicitIterations(t *testing.T) {
	e := newTestEngine()
	gen := prng.NewBarakHalevi()
	gen.Refresh([]byte("explicit iter seed"))
	p, err := e.FindRSAFactor(96, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.IsPrimeMillerRabin(p, 5) {
		t.Error("expected the factor to pass Miller-Rabin with an explicit iteration count")
	}
}

func TestIsPrimeFullPipeline(t *testing.T) {
	e := newTestEngine()

	// A 253-bit starting point; the literal itself is composite.
	p, ok := new(big.Int).SetString(
		"100E9FC7CA120F2D6ADE0DA5D70A3B31C974E9CD5C8DFF58E8F81C40AB23C8DD", 16)
	if !ok {
		t.Fatal("failed to parse literal")
	}
	// Force it odd and step upward by 2 until a candidate passes, so the
	// test is robust to the exact digit choice.
	if p.Bit(0) == 0 {
		p.Add(p, one)
	}
	for !e.IsPrime(p) {
		p.Add(p, two)
	}
	if !e.IsPrime(p) {
		t.Fatal("expected a prime to be found near the literal")
	}

	composite := new(big.Int).Mul(big.NewInt(104729), big.NewInt(104723))
	if e.IsPrime(composite) {
		t.Error("expected product of two primes to be rejected")
	}
}

func TestIsSmoothDetectsSmoothNumbers(t *testing.T) {
	// 2^200 is maximally smooth.
	smooth := new(big.Int).Lsh(one, 200)
	if !IsSmooth(smooth) {
		t.Error("expected power of two to be smooth")
	}
}

func TestIsSmoothRejectsLargePrimeFactor(t *testing.T) {
	e := newTestEngine()
	// A large prime has no smooth part at all.
	gen := prng.NewBarakHalevi()
	gen.Refresh([]byte("smoothness test seed"))
	p, err := e.FindRSAFactor(96, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if IsSmooth(p) {
		t.Error("expected a 96-bit RSA factor to not be smooth")
	}
}

func TestFindRSAFactorProducesCorrectBitLength(t *testing.T) {
	e := newTestEngine()
	gen := prng.NewBarakHalevi()
	gen.Refresh([]byte("factor search seed"))

	const bits = 96
	p, err := e.FindRSAFactor(bits, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BitLen() != bits {
		t.Errorf("factor has %d bits, want %d", p.BitLen(), bits)
	}
	if !e.IsPrime(p) {
		t.Error("factor failed full primality check")
	}
}

func TestGenPrimeFTProducesCorrectBitLength(t *testing.T) {
	e := newTestEngine()
	gen := prng.NewBarakHalevi()
	gen.Refresh([]byte("FT prime seed"))

	const bits = 96
	p, err := e.GenPrimeFT(bits, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BitLen() != bits {
		t.Errorf("FT prime has %d bits, want %d", p.BitLen(), bits)
	}
	if !e.isPrimeFT(p) {
		t.Error("FT prime failed primality check")
	}
}

func TestFindRSAFactorFTProducesCorrectBitLength(t *testing.T) {
	e := newTestEngine()
	gen := prng.NewBarakHalevi()
	gen.Refresh([]byte("FT factor seed"))

	const bits = 96
	p, err := e.FindRSAFactorFT(bits, gen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BitLen() != bits {
		t.Errorf("FT factor has %d bits, want %d", p.BitLen(), bits)
	}
}

func TestMrIterationsMatchesTableBoundaries(t *testing.T) {
	cases := []struct {
		k    int
		want int
	}{
		{0, 200},
		{49, 200},
		{50, 60},
		{2719, 2},
		{5000, 2},
	}
	for _, c := range cases {
		if got := mrIterations(c.k); got != c.want {
			t.Errorf("mrIterations(%d) = %d, want %d", c.k, got, c.want)
		}
	}
}

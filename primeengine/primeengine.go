// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package primeengine implements the sieve/Miller-Rabin/Lucas primality
// pipeline and the classical and Fouque-Tibouchi RSA factor searches used to
// generate the two primes behind an RSA modulus.
//
// https://eprint.iacr.org/2014/582 (Fouque-Tibouchi, "Close to Uniform Prime
// Number Generation With Fewer Random Bits")
package primeengine

import (
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
	"github.com/dark-bio/rsapki-go/prng"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	ppBig = new(big.Int).SetUint64(pp64)
)

// smallOddPrimesInPP lists the odd primes folded into pp64, used for the
// cheap first-pass rejection in IsPrimeSieve.
var smallOddPrimesInPP = []uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// Engine pairs the package's precomputed small-prime tables (built once at
// package initialization) with an internal random source used only to pick
// Miller-Rabin witnesses, kept separate from the caller-supplied generator
// that drives candidate search.
type Engine struct {
	witness *prng.BarakHalevi
}

// New creates an Engine, seeding its internal Miller-Rabin witness generator
// from seed.
func New(seed prng.Generator) *Engine {
	e := &Engine{witness: prng.NewBarakHalevi()}
	e.witness.RefreshFrom(seed, 32)
	return e
}

// IsPrimeSieve trial-divides n by the precomputed small-prime table,
// rejecting obviously composite candidates cheaply. It assumes n is odd; an
// even n (other than 2) is rejected outright. bound caps how many entries of
// the prime table are used; 0 means "use the whole table" and takes the fast
// grouped-product path, while an explicit bound walks the table directly up
// to that many entries. A bound exceeding the table size is a BadParameter.
func (e *Engine) IsPrimeSieve(n *big.Int, bound int) (bool, error) {
	if bound < 0 || bound > primesSize {
		return false, errs.New(errs.CryptoBadParameter, "sieve bound exceeds prime table size")
	}
	if n.Bit(0) == 0 {
		return n.Cmp(two) == 0, nil
	}
	if bound == 0 {
		return isPrimeSieveFull(n), nil
	}
	for i := 1; i < bound; i++ {
		p := new(big.Int).SetUint64(primes[i])
		if new(big.Int).Mod(n, p).Sign() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// isPrimeSieveFull is the default, fast path: a single-modulus check against
// the packed pp64 product of the first few odd primes, then the grouped
// 64-bit prime products covering the rest of the table.
func isPrimeSieveFull(n *big.Int) bool {
	r := new(big.Int).Mod(n, ppBig).Uint64()
	for _, p := range smallOddPrimesInPP {
		if r%p == 0 {
			return false
		}
	}

	for i := 0; i < primesProductsSize; i++ {
		product := new(big.Int).SetUint64(primesProducts[i])
		r := new(big.Int).Mod(n, product).Uint64()
		lo, hi := primesProductsIndices[i][0], primesProductsIndices[i][1]
		for j := lo; j < hi; j++ {
			if r%primes[j] == 0 {
				return false
			}
		}
	}
	return true
}

// IsPrimeMillerRabin runs the FIPS 186-4 Annex C.3.1 Miller-Rabin test. iter
// is the round count; 0 means "look it up from the bit-length table",
// otherwise the caller's value is used as-is. Witnesses are drawn from the
// Engine's internal generator, never the caller's.
func (e *Engine) IsPrimeMillerRabin(n *big.Int, iter int) bool {
	if iter == 0 {
		iter = mrIterations(n.BitLen())
	}

	nMinus1 := new(big.Int).Sub(n, one)
	nMinus3 := new(big.Int).Sub(n, big.NewInt(3))

	s := 0
	r := new(big.Int).Set(nMinus1)
	for r.Bit(0) == 0 {
		r.Rsh(r, 1)
		s++
	}
	if r.Sign() == 0 {
		return false
	}

	for i := 0; i < iter; i++ {
		a := e.witness.NextIntMod(nMinus3)
		a.Add(a, two)

		y := new(big.Int).Exp(a, r, n)
		if y.Cmp(one) == 0 {
			continue
		}

		for j := 1; y.Cmp(nMinus1) != 0; j++ {
			y.Exp(y, two, n)
			if j == s || y.Cmp(one) == 0 {
				return false
			}
		}
	}
	return true
}

// IsPrime runs the full sieve + Miller-Rabin + Lucas pipeline.
func (e *Engine) IsPrime(n *big.Int) bool {
	sieved, _ := e.IsPrimeSieve(n, 0)
	return sieved && e.IsPrimeMillerRabin(n, 0) && IsPrimeLucas(n)
}

// isPrimeFT skips the sieve step, appropriate only for candidates that are
// generated to already be free of small factors (Fouque-Tibouchi output).
func (e *Engine) isPrimeFT(n *big.Int) bool {
	return e.IsPrimeMillerRabin(n, 0) && IsPrimeLucas(n)
}

// IsSmooth reports whether n's smooth (small-prime) part accounts for at
// least smoothPartSizeLimit of n's bits, i.e. whether the cofactor left after
// trial division by the precomputed prime table is 1 or at most
// n.BitLen()-smoothPartSizeLimit bits long.
func IsSmooth(n *big.Int) bool {
	cofactor := new(big.Int).Set(n)

	trailing := 0
	for cofactor.Bit(trailing) == 0 {
		trailing++
	}
	cofactor.Rsh(cofactor, uint(trailing))

	stripSmallFactors := func(lo, hi int) {
		for j := lo; j < hi; j++ {
			p := new(big.Int).SetUint64(primes[j])
			for {
				q, m := new(big.Int).QuoRem(cofactor, p, new(big.Int))
				if m.Sign() != 0 {
					break
				}
				cofactor.Set(q)
			}
		}
	}

	firstGroupStart := primesProductsIndices[0][0]
	stripSmallFactors(1, firstGroupStart)

	for i := 0; i < primesProductsSize; i++ {
		stripSmallFactors(primesProductsIndices[i][0], primesProductsIndices[i][1])
	}

	if cofactor.Cmp(one) == 0 {
		return true
	}
	return cofactor.BitLen() <= n.BitLen()-smoothPartSizeLimit
}

// mod6Distance is a small helper used by FindRSAFactor: it returns how many
// units must be added to m so that m % 6 == 5.
func mod6Distance(m *big.Int) int64 {
	r := new(big.Int).Mod(m, big.NewInt(6)).Int64()
	return 5 - r
}

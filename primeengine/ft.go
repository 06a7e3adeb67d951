// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package primeengine

import (
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
	"github.com/dark-bio/rsapki-go/prng"
)

// ftAlgoParamL is the bit width of the randoms drawn in phase 2 of the
// Fouque-Tibouchi algorithm; the reference ties it to the GMP limb width,
// which on every platform math/big targets today is 64 bits.
const ftAlgoParamL = 64

// genParamFT builds the product-of-small-primes modulus m and the
// corresponding Carmichael exponent lambda = lcm(p-1 : p | m), growing m
// until it is within wlen bits of the target bit length k.
func genParamFT(wlen, k int) (m, lambda *big.Int) {
	m = big.NewInt(1)
	lambda = big.NewInt(1)

	i := 0
	for k-m.BitLen() >= wlen && i < primesSize {
		m.Mul(m, new(big.Int).SetUint64(primes[i]))
		pMinus1 := new(big.Int).SetUint64(primes[i] - 1)
		lambda = lcm(lambda, pMinus1)
		i++
	}
	return m, lambda
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	l := new(big.Int).Div(a, g)
	return l.Mul(l, b)
}

// GenPrimeFT generates an nBits-bit prime using the Fouque-Tibouchi uniform
// sampling algorithm, guaranteeing the result is exactly nBits bits long.
func (e *Engine) GenPrimeFT(nBits int, gen prng.Generator) (*big.Int, error) {
	if nBits < 8 {
		return nil, errs.New(errs.CryptoBadParameter, "prime bit length too small")
	}

	m, lambda := genParamFT(ftAlgoParamL, nBits-1)

	l := new(big.Int).Sub(m, one)
	b := gen.NextIntMod(l)
	b.Add(b, one)

	for {
		u := new(big.Int).Exp(b, lambda, m)
		u.Neg(u)
		u.Add(u, one)
		u.Mod(u, m)

		if u.Sign() == 0 {
			break
		}
		r := gen.NextIntMod(l)
		r.Add(r, one)
		b.Add(b, new(big.Int).Mul(r, u))
		b.Mod(b, m)
	}

	p := new(big.Int).SetUint64(0)
	p.SetBit(p, nBits-1, 1)
	r := new(big.Int).Sub(p, b)
	r.Add(r, new(big.Int).Sub(m, one))
	r.Div(r, m) // ceil((p-b)/m)

	p.Lsh(p, 1)
	p.Sub(p, b)
	p.Div(p, m) // floor((2p-b)/m)

	span := new(big.Int).Sub(p, r)

	for {
		a := gen.NextIntMod(span)
		a.Add(a, r)

		candidate := new(big.Int).Mul(a, m)
		candidate.Add(candidate, b)

		if e.isPrimeFT(candidate) {
			return candidate, nil
		}
	}
}

// FindRSAFactorFT generates an nBits-bit RSA prime factor p = 2*pdemi+1 via
// the Fouque-Tibouchi strong-prime variant: pdemi is sampled so that both
// pdemi and 2*pdemi+1 are free of small factors, then both are tested for
// primality and screened for smoothness of pdemi-1, pdemi+1 and p+1.
func (e *Engine) FindRSAFactorFT(nBits int, gen prng.Generator) (*big.Int, error) {
	if nBits < 8 {
		return nil, errs.New(errs.CryptoBadParameter, "factor bit length too small")
	}

	m, lambda := genParamFT(ftAlgoParamL, nBits-1)

	l := new(big.Int).Sub(m, one)
	b := gen.NextIntMod(l)
	b.Add(b, one)

	for {
		r := new(big.Int).Lsh(b, 1)
		r.SetBit(r, 0, 1) // r <- 2b+1
		u := new(big.Int).Mul(b, r)
		u.Exp(u, lambda, m)
		u.Neg(u)
		u.Add(u, one)
		u.Mod(u, m)

		if u.Sign() == 0 {
			break
		}
		rr := gen.NextIntMod(l)
		rr.Add(rr, one)
		b.Add(b, new(big.Int).Mul(rr, u))
		b.Mod(b, m)
	}

	pdemiTarget := big.NewInt(3)
	pdemiTarget.Lsh(pdemiTarget, uint(nBits-3)) // 2^(nBits-2) + 2^(nBits-3)
	r := new(big.Int).Sub(pdemiTarget, b)
	r.Add(r, new(big.Int).Sub(m, one))
	r.Div(r, m) // ceil((2^(n-2)+2^(n-3)-b)/m)

	pdemi := new(big.Int).SetUint64(0)
	pdemi.SetBit(pdemi, nBits-1, 1)
	pdemi.Sub(pdemi, b)
	pdemi.Div(pdemi, m) // floor((2^(n-1)-b)/m)

	span := new(big.Int).Sub(pdemi, r)

	for {
		a := gen.NextIntMod(span)
		a.Add(a, r)

		pdemi = new(big.Int).Mul(a, m)
		pdemi.Add(pdemi, b)

		if !e.isPrimeFT(pdemi) {
			continue
		}
		p := new(big.Int).Lsh(pdemi, 1)
		p.SetBit(p, 0, 1)
		if !e.isPrimeFT(p) {
			continue
		}

		pdemiMinus1 := new(big.Int).Sub(pdemi, one)
		if IsSmooth(pdemiMinus1) {
			continue
		}
		pdemiPlus1 := new(big.Int).Add(pdemi, one)
		if IsSmooth(pdemiPlus1) {
			continue
		}
		pPlus1 := new(big.Int).Add(p, one)
		if IsSmooth(pPlus1) {
			continue
		}

		return p, nil
	}
}

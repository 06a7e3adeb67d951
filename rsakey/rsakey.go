// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rsakey generates and serializes RSA signing keypairs: fresh
// generation against the prime engine with a rich set of structural
// safety properties, reconstruction from DER/PEM, direct assembly from
// supplied bignums, PKCS#1/PKCS#8/SubjectPublicKeyInfo encoding, and
// PKCS#1 v1.5 signature assembly.
package rsakey

import (
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
	"github.com/dark-bio/rsapki-go/primeengine"
	"github.com/dark-bio/rsapki-go/prng"
	"github.com/dark-bio/rsapki-go/securebuf"
)

// publicExponentF4 is the standard RSA public exponent 2^16 + 1.
const publicExponentF4 = 65537

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// Key holds an RSA keypair's five integers (n, e, d, p, q). The zero value
// is not usable; build one with GenerateKey, FromDER, FromPEM or New.
type Key struct {
	n, e, d, p, q *big.Int
	initialized   bool
}

// GenerateKey generates a fresh nBits-bit RSA keypair. If useF4 is true the
// public exponent is fixed to 65537; otherwise a random odd exponent is
// drawn. The generation loop retries from scratch whenever the factor
// distance or minimum-exponent post-condition fails, which is expected to
// happen rarely; a failed self-test is returned as an error, not retried.
func GenerateKey(rng prng.Generator, engine *primeengine.Engine, nBits int, useF4 bool) (*Key, error) {
	if nBits < 64 || nBits%2 != 0 {
		return nil, errs.New(errs.CryptoBadParameter, "nBits must be even and at least 64")
	}

	// |p-q| must exceed 2^((nBits/2)-20): factors too close together are
	// vulnerable to Fermat-style factorization.
	diffMin := new(big.Int).Lsh(one, uint(nBits/2-20))
	// d must exceed 2^(nBits/2) when e=F4, else attacks exploiting a small
	// k in ed = 1 + k*phi become feasible.
	minDSizeWithF4 := new(big.Int).Lsh(one, uint(nBits/2))
	// When e is drawn at random rather than fixed to F4, both e and d must
	// exceed 2^(nBits-10) for the same reason.
	minExpSizeWhenNotF4 := new(big.Int).Lsh(one, uint(nBits-10))

	for {
		var p, q *big.Int
		for {
			nextP, err := engine.FindRSAFactor(nBits/2, rng)
			if err != nil {
				return nil, err
			}
			nextQ, err := engine.FindRSAFactor(nBits/2, rng)
			if err != nil {
				return nil, err
			}
			if p != nil {
				securebuf.WipeBigInt(p)
				securebuf.WipeBigInt(q)
			}
			p, q = nextP, nextQ

			diff := new(big.Int).Sub(p, q)
			diff.Abs(diff)
			if diff.Cmp(diffMin) > 0 {
				break
			}
		}

		n := new(big.Int).Mul(p, q)
		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)

		var e, d *big.Int
		if useF4 {
			e = big.NewInt(publicExponentF4)
			var ok bool
			d, ok = modInverse(e, phi)
			if !ok {
				return nil, errs.New(errs.CryptoInternalMayhem, "65537 is not coprime to phi")
			}
			if d.Cmp(minDSizeWithF4) <= 0 {
				securebuf.WipeBigInt(d)
				securebuf.WipeBigInt(phi)
				securebuf.WipeBigInt(pMinus1)
				securebuf.WipeBigInt(qMinus1)
				securebuf.WipeBigInt(n)
				securebuf.WipeBigInt(p)
				securebuf.WipeBigInt(q)
				continue
			}
		} else {
			for {
				nextE := rng.NextInt(nBits)
				nextE.SetBit(nextE, 0, 1)

				if nextE.Cmp(n) >= 0 || nextE.Cmp(minExpSizeWhenNotF4) <= 0 {
					securebuf.WipeBigInt(nextE)
					continue
				}
				nextD, ok := modInverse(nextE, phi)
				if !ok || nextD.Cmp(minExpSizeWhenNotF4) <= 0 {
					if ok {
						securebuf.WipeBigInt(nextD)
					}
					securebuf.WipeBigInt(nextE)
					continue
				}
				e, d = nextE, nextD
				break
			}
		}

		k := &Key{n: n, d: d, e: e, p: p, q: q}
		seed := rng.NextString(32)
		if err := k.checkKey(nBits, seed); err != nil {
			securebuf.WipeBigInt(phi)
			securebuf.WipeBigInt(pMinus1)
			securebuf.WipeBigInt(qMinus1)
			k.wipe()
			return nil, err
		}
		k.initialized = true
		securebuf.WipeBigInt(phi)
		securebuf.WipeBigInt(pMinus1)
		securebuf.WipeBigInt(qMinus1)
		return k, nil
	}
}

// MustGenerateKey is GenerateKey but panics on error, for callers like
// cmd/genrsa that want "cannot fail" ergonomics.
func MustGenerateKey(rng prng.Generator, engine *primeengine.Engine, nBits int, useF4 bool) *Key {
	k, err := GenerateKey(rng, engine, nBits, useF4)
	if err != nil {
		panic("rsakey: " + err.Error())
	}
	return k
}

// New assembles a Key directly from supplied bignums, running the same
// self-test as fresh generation.
func New(n, d, e, p, q *big.Int, seed []byte) (*Key, error) {
	k := &Key{
		n: new(big.Int).Set(n),
		d: new(big.Int).Set(d),
		e: new(big.Int).Set(e),
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
	}
	if err := k.checkKey(n.BitLen(), seed); err != nil {
		k.wipe()
		return nil, err
	}
	k.initialized = true
	return k, nil
}

// wipe shreds a Key's own secret fields, for the discard path of a key that
// failed its self-test and will never be returned to a caller.
func (k *Key) wipe() {
	securebuf.WipeBigInt(k.n)
	securebuf.WipeBigInt(k.e)
	securebuf.WipeBigInt(k.d)
	securebuf.WipeBigInt(k.p)
	securebuf.WipeBigInt(k.q)
}

func modInverse(a, m *big.Int) (*big.Int, bool) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, false
	}
	return inv, true
}

// N returns a copy of the modulus.
func (k *Key) N() *big.Int { return new(big.Int).Set(k.n) }

// E returns a copy of the public exponent.
func (k *Key) E() *big.Int { return new(big.Int).Set(k.e) }

// modulusSize returns the byte length of the modulus, ceil(bitlen/8)
// computed the way the original measures it: half the number of hex digits.
func (k *Key) modulusSize() int {
	return (len(k.n.Text(16)) + 1) / 2
}

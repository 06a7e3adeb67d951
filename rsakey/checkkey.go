// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsakey

import (
	"math/big"
	"sync"

	"github.com/dark-bio/rsapki-go/errs"
	"github.com/dark-bio/rsapki-go/prng"
)

// trivialSieveSize is the size of the independent boolean sieve used by
// checkKey's smoothness self-test. It is deliberately a separate table
// from primeengine's own, so the self-test does not share
// a bug with the code it is checking.
const trivialSieveSize = 100000

// nEncryptionDecryptionVerif is the number of round-trip encrypt/decrypt
// checks run against random messages during checkKey.
const nEncryptionDecryptionVerif = 10

var (
	trivialSieveOnce  sync.Once
	trivialSievePrime []bool
)

func trivialSieve() []bool {
	trivialSieveOnce.Do(func() {
		pr := make([]bool, trivialSieveSize)
		for i := range pr {
			pr[i] = true
		}
		pr[0], pr[1] = false, false
		for i := 2; i < trivialSieveSize; i++ {
			if pr[i] {
				for j := 2; i*j < trivialSieveSize; j++ {
					pr[i*j] = false
				}
			}
		}
		trivialSievePrime = pr
	})
	return trivialSievePrime
}

// isSmoothTrivial reports whether n has any prime factor below
// trivialSieveSize, using an independent sieve implementation from
// primeengine's.
func isSmoothTrivial(n *big.Int) bool {
	pr := trivialSieve()
	for i := 2; i < trivialSieveSize; i++ {
		if !pr[i] {
			continue
		}
		if new(big.Int).Mod(n, big.NewInt(int64(i))).Sign() == 0 {
			return true
		}
	}
	return false
}

// CheckKey re-runs the post-generation self-test against seed. Callers
// that reconstruct a Key via FromDER/FromPKCS8DER/FromPEM (which perform a
// trusted import and do not verify automatically) can use this to
// re-verify a key before relying on it.
func (k *Key) CheckKey(seed []byte) error {
	return k.checkKey(k.n.BitLen(), seed)
}

// checkKey runs the post-generation self-test: structural bounds on n, e
// and d, the exact bit length, an independent trivial-smoothness sieve on
// the modulus, and a handful of encrypt/decrypt round trips driven by a
// separately seeded generator. Any violation is a CryptoInternalMayhem:
// the key is discarded, never patched up.
func (k *Key) checkKey(nBits int, seed []byte) error {
	if k.n.Sign() < 0 {
		return errs.New(errs.CryptoInternalMayhem, "RSA modulus is negative")
	}
	if k.e.Sign() < 0 {
		return errs.New(errs.CryptoInternalMayhem, "public exponent is negative")
	}
	if k.e.Cmp(k.n) >= 0 {
		return errs.New(errs.CryptoInternalMayhem, "public exponent is larger than n")
	}
	if k.d.Sign() < 0 {
		return errs.New(errs.CryptoInternalMayhem, "private exponent is negative")
	}
	if k.d.Cmp(k.n) >= 0 {
		return errs.New(errs.CryptoInternalMayhem, "private exponent is larger than n")
	}
	if k.n.BitLen() != nBits {
		return errs.New(errs.CryptoInternalMayhem, "RSA modulus does not have the expected bit length")
	}
	if isSmoothTrivial(k.n) {
		return errs.New(errs.CryptoInternalMayhem, "RSA modulus is smooth")
	}

	verify := prng.NewBarakHalevi()
	verify.Refresh(seed)

	for i := 0; i < nEncryptionDecryptionVerif; i++ {
		m := verify.NextIntMod(k.n)
		c := new(big.Int).Exp(m, k.e, k.n)
		x := new(big.Int).Exp(c, k.d, k.n)
		if m.Cmp(x) != 0 {
			return errs.New(errs.CryptoInternalMayhem, "encrypt/decrypt round trip is not the identity")
		}
	}
	return nil
}

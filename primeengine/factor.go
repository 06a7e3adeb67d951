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

// FindRSAFactor draws a random RSA prime factor n of exactly nBits bits via
// the classical construction: n = 2m+1 with m prime, both top two bits of m
// forced to one, n = 5 (mod 6), and n+1, m-1, m+1 all rejected if smooth.
func (e *Engine) FindRSAFactor(nBits int, gen prng.Generator) (*big.Int, error) {
	if nBits < 6 {
		return nil, errs.New(errs.CryptoBadParameter, "factor bit length too small")
	}

	for {
		m := gen.NextInt(nBits - 1)
		m.SetBit(m, nBits-2, 1)
		m.SetBit(m, nBits-3, 1)

		m.Add(m, big.NewInt(mod6Distance(m)))

		if sieved, _ := e.IsPrimeSieve(m, 0); !sieved {
			continue
		}

		n := new(big.Int).Lsh(m, 1)
		n.Add(n, one)
		if sieved, _ := e.IsPrimeSieve(n, 0); !sieved {
			continue
		}

		if !e.IsPrimeMillerRabin(m, 0) || !e.IsPrimeMillerRabin(n, 0) {
			continue
		}
		if !IsPrimeLucas(m) || !IsPrimeLucas(n) {
			continue
		}

		mMinus1 := new(big.Int).Sub(m, one)
		if IsSmooth(mMinus1) {
			continue
		}
		mPlus1 := new(big.Int).Add(m, one)
		if IsSmooth(mPlus1) {
			continue
		}
		nPlus1 := new(big.Int).Add(n, one)
		if IsSmooth(nPlus1) {
			continue
		}

		return n, nil
	}
}

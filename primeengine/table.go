// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package primeengine

import "math/bits"

const (
	// nbPrimesInSieve bounds trial division used to reject obviously
	// composite candidates before the expensive probabilistic tests.
	nbPrimesInSieve = 6542
	// nbPrimesToCheckSmoothness bounds trial division used to decide
	// whether a number is smooth.
	nbPrimesToCheckSmoothness = 6542
	// primesSize is the larger of the two bounds above.
	primesSize = nbPrimesInSieve

	// ppFirstOmitted is the first prime not folded into the 64-bit PP
	// constant below; grouping starts from the first table entry at or
	// past this value.
	ppFirstOmitted = 59
	// primesProductsSize is the number of grouped 64-bit prime products.
	primesProductsSize = 1576

	// smoothPartSizeLimit is the number of bits a number's smooth part
	// must account for before the number is declared smooth.
	smoothPartSizeLimit = 128
)

// pp64 is the product 3*5*7*11*...*53 packed into a 64-bit limb, used to
// fast-reject any of those primes as factors with a single modulus.
const pp64 uint64 = 0xE221F97C30E94E1D

var (
	// primes holds the first primesSize odd-prime-inclusive small primes,
	// starting with 2.
	primes [primesSize]uint64

	// primesProducts[i] is the product of primes[primesProductsIndices[i][0]:primesProductsIndices[i][1]],
	// chosen so the product fits in a uint64.
	primesProducts       [primesProductsSize]uint64
	primesProductsIndices [primesProductsSize][2]int
)

func init() {
	buildPrimesTable()
	buildPrimesProducts()
}

// buildPrimesTable fills `primes` using the same incremental trial-division
// sieve as the reference implementation: try candidates 5, 7, 11, 13, ...
// (skipping multiples of 2 and 3 via the 2/4 delta alternation), testing
// each against the primes already found.
func buildPrimesTable() {
	primes[0] = 2
	primes[1] = 3

	i := 2
	tested := uint64(5)
	delta := uint64(2)
	for i < primesSize {
		if isSmallPrimeAgainstTable(tested, i) {
			primes[i] = tested
			i++
		}
		tested += delta
		delta = 6 - delta
	}
}

// isSmallPrimeAgainstTable trial-divides t by the bound primes already
// computed in `primes[:bound]`.
func isSmallPrimeAgainstTable(t uint64, bound int) bool {
	if t < 3 || t%2 == 0 {
		return t == 2
	}
	for i := 1; i < bound; i++ {
		d := primes[i]
		q := t / d
		r := t - q*d
		if r == 0 {
			return false
		}
		if q < d {
			return true
		}
	}
	return true
}

// buildPrimesProducts groups primes starting at the first one >=
// ppFirstOmitted into products that each fit in a uint64, using 64x64->128
// multiplication with overflow detection exactly like the reference
// umul_ppmm-based loop.
func buildPrimesProducts() {
	i := 0
	for primes[i] < ppFirstOmitted {
		i++
	}
	for j := 0; j < primesProductsSize; j++ {
		p := uint64(1)
		primesProductsIndices[j][0] = i
		for ; i < primesSize; i++ {
			q := primes[i]
			hi, lo := bits.Mul64(p, q)
			if hi != 0 {
				break
			}
			p = lo
		}
		primesProductsIndices[j][1] = i
		primesProducts[j] = p
	}
}

// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package primeengine

import "math/big"

// IsPrimeLucas runs the FIPS 186-4 Annex C.3.3 Lucas probable-prime test: a
// perfect-square rejection, Selfridge's parameter search for D via the
// Jacobi/Kronecker symbol, and the Lucas sequence double-and-add recurrence.
func IsPrimeLucas(n *big.Int) bool {
	if isPerfectSquare(n) {
		return false
	}

	d := int64(5)
	for big.Jacobi(big.NewInt(d), n) != -1 {
		if d > 0 {
			d = -(d + 2)
		} else {
			d = -(d - 2)
		}
	}

	signPositive := d > 0
	D := d
	if D < 0 {
		D = -D
	}
	bigD := big.NewInt(D)

	u := big.NewInt(1)
	v := big.NewInt(1)
	m := new(big.Int).Add(n, one)
	bits := m.BitLen() - 1

	for i := bits; i > 0; i-- {
		u1 := new(big.Int).Mul(u, v)
		u1.Lsh(u1, 1)

		x := new(big.Int).Mul(u, u)
		v1 := new(big.Int).Mul(v, v)
		xD := new(big.Int).Mul(x, bigD)
		if signPositive {
			v1.Add(v1, xD)
		} else {
			v1.Sub(v1, xD)
		}

		if m.Bit(i-1) == 1 {
			newU := new(big.Int).Add(u1, v1)

			u1D := new(big.Int).Mul(u1, bigD)
			if signPositive {
				v1.Add(v1, u1D)
			} else {
				v1.Sub(v1, u1D)
			}
			u = newU
		} else {
			u = u1
		}
		v = v1

		u.Mod(u, n)
		v.Mod(v, n)
	}

	return u.Sign() == 0
}

// isPerfectSquare reports whether n is a perfect square, for non-negative n.
func isPerfectSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	root := new(big.Int).Sqrt(n)
	root.Mul(root, root)
	return root.Cmp(n) == 0
}

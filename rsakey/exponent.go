// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsakey

import (
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
)

// PrivateExp raises data to the power d mod n. It errors if data >= n.
func (k *Key) PrivateExp(data []byte) ([]byte, error) {
	return k.exp(data, k.d)
}

// PublicExp raises data to the power e mod n. It errors if data >= n.
func (k *Key) PublicExp(data []byte) ([]byte, error) {
	return k.exp(data, k.e)
}

func (k *Key) exp(data []byte, exponent *big.Int) ([]byte, error) {
	m := new(big.Int).SetBytes(data)
	if m.Cmp(k.n) >= 0 {
		return nil, errs.New(errs.CryptoBadParameter, "input is not smaller than the modulus")
	}
	r := new(big.Int).Exp(m, exponent, k.n)
	return r.Bytes(), nil
}

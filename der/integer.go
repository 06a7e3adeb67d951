// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"math/big"

	"github.com/dark-bio/rsapki-go/errs"
)

// EncodeInteger produces a minimal DER INTEGER TLV for the non-negative
// value n: the big-endian magnitude, with a leading 0x00 byte inserted iff
// the most significant byte would otherwise be read as a sign bit.
func EncodeInteger(n *big.Int) ([]byte, error) {
	if n.Sign() < 0 {
		return nil, errs.New(errs.NegativeBignum, "")
	}

	value := n.Bytes()
	if len(value) == 0 {
		value = []byte{0}
	}
	if value[0]&0x80 != 0 {
		padded := make([]byte, len(value)+1)
		copy(padded[1:], value)
		value = padded
	}

	return Encode(NewUniversal(TagInteger, value)), nil
}

// DecodeInteger parses a DER INTEGER TLV from the front of data, returning
// its value as a non-negative big.Int and the remaining bytes.
func DecodeInteger(data []byte) (*big.Int, []byte, error) {
	n, rest, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	if n.Class != ClassUniversal || n.Method != MethodPrimitive || n.Tag != TagInteger {
		return nil, nil, errs.New(errs.DerInvalidFile, "INTEGER expected")
	}
	return new(big.Int).SetBytes(n.Value), rest, nil
}

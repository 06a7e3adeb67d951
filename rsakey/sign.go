// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsakey

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"math/big"

	"github.com/dark-bio/rsapki-go/der"
	"github.com/dark-bio/rsapki-go/errs"
)

func hashTBS(ha der.HashAlgo, data []byte) []byte {
	switch ha {
	case der.HashSHA1:
		sum := sha1.Sum(data)
		return sum[:]
	case der.HashSHA256:
		sum := sha256.Sum256(data)
		return sum[:]
	case der.HashSHA384:
		sum := sha512.Sum384(data)
		return sum[:]
	case der.HashSHA512:
		sum := sha512.Sum512(data)
		return sum[:]
	default:
		return nil
	}
}

// Sign hashes tbs's DER encoding under the hash named by its declared
// signature algorithm, wraps the digest in a DigestInfo, PKCS#1 v1.5 pads
// it to the modulus length, exponentiates with d, and asks tbs to emit
// itself with the resulting signature appended.
func (k *Key) Sign(tbs der.TBS) ([]byte, error) {
	ha, err := der.HashAlgoOf(tbs.SignAlgo())
	if err != nil {
		return nil, err
	}
	digest := hashTBS(ha, tbs.ToDER())
	if digest == nil {
		return nil, errs.New(errs.NotImplemented, "unknown hash function")
	}

	digestInfo := der.Encode(der.NewUniversal(der.TagOctetString, digest))
	blockToSign := der.Encapsulate(append(der.NewHashAlgorithmID(ha).ToDER(), digestInfo...), der.TagSequence)

	modulusSize := k.modulusSize()
	// PKCS#1 requires at least 8 bytes of 0xFF padding, plus the leading
	// 0x00 0x01 and the 0x00 padding terminator.
	if len(blockToSign)+11 > modulusSize {
		return nil, errs.New(errs.UnexpectedError, "hashed block to sign has an incorrect size")
	}

	padded, err := EncodePKCS1v15(modulusSize, blockToSign, HashNone)
	if err != nil {
		return nil, err
	}

	msg := new(big.Int).SetBytes(padded)
	if msg.Cmp(k.n) >= 0 {
		return nil, errs.New(errs.UnexpectedError, "hashed block to sign has an incorrect size")
	}

	sig := new(big.Int).Exp(msg, k.d, k.n)
	sigBytes := sig.Bytes()

	res := make([]byte, modulusSize)
	copy(res[modulusSize-len(sigBytes):], sigBytes)

	return der.AppendSignature(tbs, res), nil
}

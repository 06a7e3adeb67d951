// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsakey

import (
	"crypto/sha1"
	"math/big"

	"github.com/dark-bio/rsapki-go/der"
	"github.com/dark-bio/rsapki-go/errs"
	"github.com/dark-bio/rsapki-go/pem"
)

// pemBlockType is the PEM header/footer label used by FromPEM and
// cmd/genrsa.
const pemBlockType = "RSA PRIVATE KEY"

// ASN1PublicKey encodes the bare public key: SEQUENCE { INTEGER n,
// INTEGER e }. Unlike ASN1PubKeyInfo, it carries no algorithm identifier.
func (k *Key) ASN1PublicKey() []byte {
	nDER, _ := der.EncodeInteger(k.n)
	eDER, _ := der.EncodeInteger(k.e)
	return der.Encapsulate(append(nDER, eDER...), der.TagSequence)
}

// ASN1PubKeyInfo encodes the full SubjectPublicKeyInfo: SEQUENCE {
// AlgorithmIdentifier, BIT STRING wrap(ASN1PublicKey) }.
func (k *Key) ASN1PubKeyInfo() []byte {
	algo := der.NewPubKeyAlgorithmID(der.PubKeyRSA).ToDER()

	bitstringContent := make([]byte, 1+len(k.ASN1PublicKey()))
	copy(bitstringContent[1:], k.ASN1PublicKey())
	pubKey := der.Encode(der.NewUniversal(der.TagBitString, bitstringContent))

	return der.Encapsulate(append(algo, pubKey...), der.TagSequence)
}

// ASN1PrivateKey encodes the classic PKCS#1 private key: SEQUENCE {
// INTEGER version=0, n, e, d, p, q, d mod(p-1), d mod(q-1), q^-1 mod p }.
func (k *Key) ASN1PrivateKey() ([]byte, error) {
	pMinus1 := new(big.Int).Sub(k.p, one)
	qMinus1 := new(big.Int).Sub(k.q, one)

	dModPMinus1 := new(big.Int).Mod(k.d, pMinus1)
	dModQMinus1 := new(big.Int).Mod(k.d, qMinus1)
	invQ := new(big.Int).ModInverse(k.q, k.p)
	if invQ == nil {
		return nil, errs.New(errs.CryptoInternalMayhem, "q is not invertible modulo p")
	}

	parts := [][]byte{}
	ints := []*big.Int{zero, k.n, k.e, k.d, k.p, k.q, dModPMinus1, dModQMinus1, invQ}
	for _, v := range ints {
		encoded, err := der.EncodeInteger(v)
		if err != nil {
			return nil, err
		}
		parts = append(parts, encoded)
	}

	var content []byte
	for _, p := range parts {
		content = append(content, p...)
	}
	return der.Encapsulate(content, der.TagSequence), nil
}

// ASN1PrivateKeyInfo encodes the PKCS#8 wrapper: SEQUENCE { INTEGER 0,
// AlgorithmIdentifier, OCTET STRING ASN1PrivateKey }.
func (k *Key) ASN1PrivateKeyInfo() ([]byte, error) {
	versionDER, _ := der.EncodeInteger(zero)
	algoDER := der.NewPubKeyAlgorithmID(der.PubKeyRSA).ToDER()

	privKey, err := k.ASN1PrivateKey()
	if err != nil {
		return nil, err
	}
	privKeyOctet := der.Encode(der.NewUniversal(der.TagOctetString, privKey))

	content := append(append(versionDER, algoDER...), privKeyOctet...)
	return der.Encapsulate(content, der.TagSequence), nil
}

// KeyIdentifierHash returns the SHA-1 digest of ASN1PublicKey, 20 bytes.
func (k *Key) KeyIdentifierHash() []byte {
	sum := sha1.Sum(k.ASN1PublicKey())
	return sum[:]
}

// FromDER reconstructs a Key from an ASN1PrivateKey (PKCS#1) DER encoding.
// This is a trusted import: the integers are parsed in order and the key
// is marked initialized without re-running checkKey. Callers that want
// re-verification must call (*Key).CheckKey themselves afterward.
func FromDER(data []byte) (*Key, error) {
	content, _, err := der.Decapsulate(data, der.TagSequence)
	if err != nil {
		return nil, err
	}

	_, content, err = der.DecodeInteger(content) // version
	if err != nil {
		return nil, err
	}
	n, content, err := der.DecodeInteger(content)
	if err != nil {
		return nil, err
	}
	e, content, err := der.DecodeInteger(content)
	if err != nil {
		return nil, err
	}
	d, content, err := der.DecodeInteger(content)
	if err != nil {
		return nil, err
	}
	p, content, err := der.DecodeInteger(content)
	if err != nil {
		return nil, err
	}
	q, _, err := der.DecodeInteger(content)
	if err != nil {
		return nil, err
	}

	return &Key{n: n, e: e, d: d, p: p, q: q, initialized: true}, nil
}

// FromPKCS8DER reconstructs a Key from an ASN1PrivateKeyInfo (PKCS#8)
// DER encoding: SEQUENCE { INTEGER version, AlgorithmIdentifier,
// OCTET STRING ASN1PrivateKey }. Trusted import, as FromDER.
func FromPKCS8DER(data []byte) (*Key, error) {
	content, _, err := der.Decapsulate(data, der.TagSequence)
	if err != nil {
		return nil, err
	}
	_, content, err = der.DecodeInteger(content) // version
	if err != nil {
		return nil, err
	}
	_, content, err = der.ParseAlgorithmID(content)
	if err != nil {
		return nil, err
	}
	privKeyNode, _, err := der.Decode(content)
	if err != nil {
		return nil, err
	}
	if privKeyNode.Tag != der.TagOctetString {
		return nil, errs.New(errs.DerInvalidFile, "private key must be an OCTET STRING")
	}
	return FromDER(privKeyNode.Value)
}

// FromPEM reconstructs a Key from a PEM-armored PKCS#8 block. Trusted
// import, as FromDER.
func FromPEM(data []byte) (*Key, error) {
	kind, blob, err := pem.Decode(data)
	if err != nil {
		return nil, errs.New(errs.InvalidCertificate, err.Error())
	}
	if kind != pemBlockType {
		return nil, errs.New(errs.InvalidCertificate, "unexpected PEM block type: "+kind)
	}
	return FromPKCS8DER(blob)
}

// ToPEM PEM-armors the key's PKCS#8 (ASN1PrivateKeyInfo) encoding.
func (k *Key) ToPEM() ([]byte, error) {
	privKeyInfo, err := k.ASN1PrivateKeyInfo()
	if err != nil {
		return nil, err
	}
	return pem.Encode(pemBlockType, privKeyInfo), nil
}

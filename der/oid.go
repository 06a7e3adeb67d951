// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"fmt"
	"strings"

	"github.com/dark-bio/rsapki-go/errs"
)

// tagExpected describes the kind of object expected to follow an OID in an
// (OID, Object) pair.
type tagExpected int

const (
	teString tagExpected = iota
	teNull
	teOctetString
)

// oidInfo describes one compiled-in, recognized object identifier.
type oidInfo struct {
	bytes       []byte
	desc        string
	tagExpected tagExpected
}

// SignAlgo enumerates the recognized signature algorithms (hash + RSA).
type SignAlgo int

const (
	SignSHA1RSA SignAlgo = iota
	SignSHA256RSA
	SignSHA384RSA
	SignSHA512RSA
)

// HashAlgo enumerates the recognized hash algorithms.
type HashAlgo int

const (
	HashSHA1 HashAlgo = iota
	HashSHA256
	HashSHA384
	HashSHA512
)

// PubKeyAlgo enumerates the recognized public-key algorithms.
type PubKeyAlgo int

const (
	PubKeyRSA PubKeyAlgo = iota
)

// DNAttr enumerates the recognized Distinguished Name attribute types.
type DNAttr int

const (
	DNCommonName DNAttr = iota
	DNCountryName
	DNLocalityName
	DNStateOrProvinceName
	DNOrganizationName
	DNOrganizationalUnitName
	DNEmailAddress
	DNDomainComponent
	nDNAttrs
)

// ExtensionID enumerates the recognized X.509 extension types.
type ExtensionID int

const (
	ExtBasicConstraints ExtensionID = iota
	ExtKeyUsage
	ExtCertificatePolicies
	ExtAuthorityKeyIdentifier
	ExtSubjectKeyIdentifier
	ExtExtendedKeyUsage
	ExtSubjectAltName
	nExtensionIDs
)

var dnOIDs = [nDNAttrs]oidInfo{
	DNCommonName:             {[]byte{0x55, 0x04, 0x03}, "Common Name", teString},
	DNCountryName:            {[]byte{0x55, 0x04, 0x06}, "Country", teString},
	DNLocalityName:           {[]byte{0x55, 0x04, 0x07}, "Locality", teString},
	DNStateOrProvinceName:    {[]byte{0x55, 0x04, 0x08}, "State or Province", teString},
	DNOrganizationName:       {[]byte{0x55, 0x04, 0x0A}, "Organization", teString},
	DNOrganizationalUnitName: {[]byte{0x55, 0x04, 0x0B}, "Organizational Unit", teString},
	DNEmailAddress:           {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x09, 0x01}, "Email Address", teString},
	DNDomainComponent:        {[]byte{0x09, 0x92, 0x26, 0x89, 0x93, 0xF2, 0x2C, 0x64, 0x01, 0x19}, "Domain Component", teString},
}

// signAlgoOIDs holds SHA-{1,256,384,512}WithRSAEncryption, PKCS#1 §C.
var signAlgoOIDs = [4]oidInfo{
	SignSHA1RSA:   {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x05}, "SHA1 with RSA", teNull},
	SignSHA256RSA: {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B}, "SHA256 with RSA", teNull},
	SignSHA384RSA: {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0C}, "SHA384 with RSA", teNull},
	SignSHA512RSA: {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0D}, "SHA512 with RSA", teNull},
}

var hashAlgoOIDs = [4]oidInfo{
	HashSHA1:   {[]byte{0x2B, 0x0E, 0x03, 0x02, 0x1A}, "SHA1", teNull},
	HashSHA256: {[]byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01}, "SHA256", teNull},
	HashSHA384: {[]byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02}, "SHA384", teNull},
	HashSHA512: {[]byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03}, "SHA512", teNull},
}

var pubKeyAlgoOIDs = [1]oidInfo{
	PubKeyRSA: {[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x01}, "RSA", teNull},
}

var extensionOIDs = [nExtensionIDs]oidInfo{
	ExtBasicConstraints:       {[]byte{0x55, 0x1D, 0x13}, "Basic Constraints", teOctetString},
	ExtKeyUsage:               {[]byte{0x55, 0x1D, 0x0F}, "Key Usage", teOctetString},
	ExtCertificatePolicies:    {[]byte{0x55, 0x1D, 0x20}, "Certificate Policies", teOctetString},
	ExtAuthorityKeyIdentifier: {[]byte{0x55, 0x1D, 0x23}, "Authority Key Identifier", teOctetString},
	ExtSubjectKeyIdentifier:   {[]byte{0x55, 0x1D, 0x0E}, "Subject Key Identifier", teOctetString},
	ExtExtendedKeyUsage:       {[]byte{0x55, 0x1D, 0x25}, "Extended Key Usage", teOctetString},
	ExtSubjectAltName:         {[]byte{0x55, 0x1D, 0x11}, "Subject Alternative Name", teOctetString},
}

// HashAlgoOf returns the hash algorithm backing a signature algorithm.
func HashAlgoOf(sa SignAlgo) (HashAlgo, error) {
	switch sa {
	case SignSHA1RSA:
		return HashSHA1, nil
	case SignSHA256RSA:
		return HashSHA256, nil
	case SignSHA384RSA:
		return HashSHA384, nil
	case SignSHA512RSA:
		return HashSHA512, nil
	default:
		return 0, errs.New(errs.NotImplemented, "unknown signature algorithm")
	}
}

// PubKeyAlgoOf returns the public-key algorithm of a signature algorithm.
func PubKeyAlgoOf(sa SignAlgo) (PubKeyAlgo, error) {
	switch sa {
	case SignSHA1RSA, SignSHA256RSA, SignSHA384RSA, SignSHA512RSA:
		return PubKeyRSA, nil
	default:
		return 0, errs.New(errs.NotImplemented, "unknown signature algorithm")
	}
}

// SignAlgoOf returns the signature algorithm combining a hash and a
// public-key algorithm.
func SignAlgoOf(ha HashAlgo, pka PubKeyAlgo) (SignAlgo, error) {
	if pka != PubKeyRSA {
		return 0, errs.New(errs.NotImplemented, "unknown public key algorithm")
	}
	switch ha {
	case HashSHA1:
		return SignSHA1RSA, nil
	case HashSHA256:
		return SignSHA256RSA, nil
	case HashSHA384:
		return SignSHA384RSA, nil
	case HashSHA512:
		return SignSHA512RSA, nil
	default:
		return 0, errs.New(errs.NotImplemented, "invalid combination of public key algorithm and hash function")
	}
}

// AlgorithmID is an AlgorithmIdentifier SEQUENCE { OID, NULL }.
type AlgorithmID struct {
	OID []byte
}

// EncodeOID wraps a raw OID byte string in its OBJECT IDENTIFIER TLV.
func EncodeOID(oid []byte) []byte {
	return Encode(NewUniversal(TagOID, oid))
}

// NewSignAlgorithmID builds the AlgorithmIdentifier for a signature algorithm.
func NewSignAlgorithmID(sa SignAlgo) AlgorithmID {
	return AlgorithmID{OID: signAlgoOIDs[sa].bytes}
}

// NewHashAlgorithmID builds the AlgorithmIdentifier for a hash algorithm.
func NewHashAlgorithmID(ha HashAlgo) AlgorithmID {
	return AlgorithmID{OID: hashAlgoOIDs[ha].bytes}
}

// NewPubKeyAlgorithmID builds the AlgorithmIdentifier for a public-key algorithm.
func NewPubKeyAlgorithmID(pka PubKeyAlgo) AlgorithmID {
	return AlgorithmID{OID: pubKeyAlgoOIDs[pka].bytes}
}

// ToDER encodes the AlgorithmIdentifier as SEQUENCE { OID, NULL }.
func (a AlgorithmID) ToDER() []byte {
	content := append(EncodeOID(a.OID), Encode(NewUniversal(TagNull, nil))...)
	return Encapsulate(content, TagSequence)
}

// ParseAlgorithmID parses an AlgorithmIdentifier SEQUENCE { OID, NULL }.
func ParseAlgorithmID(data []byte) (AlgorithmID, []byte, error) {
	content, rest, err := Decapsulate(data, TagSequence)
	if err != nil {
		return AlgorithmID{}, nil, err
	}
	oidNode, nullPart, err := Decode(content)
	if err != nil {
		return AlgorithmID{}, nil, err
	}
	if oidNode.Class != ClassUniversal || oidNode.Method != MethodPrimitive || oidNode.Tag != TagOID {
		return AlgorithmID{}, nil, errs.New(errs.DerOidExpected, "")
	}
	nullNode, _, err := Decode(nullPart)
	if err != nil {
		return AlgorithmID{}, nil, err
	}
	if nullNode.Tag != TagNull {
		return AlgorithmID{}, nil, errs.New(errs.DerInvalidFile, "null object expected")
	}
	return AlgorithmID{OID: oidNode.Value}, rest, nil
}

// SignAlgo looks up which recognized signature algorithm this AlgorithmID
// names, if any.
func (a AlgorithmID) SignAlgo() (SignAlgo, bool) {
	for i, info := range signAlgoOIDs {
		if oidEqual(a.OID, info.bytes) {
			return SignAlgo(i), true
		}
	}
	return 0, false
}

// HashAlgo looks up which recognized hash algorithm this AlgorithmID names.
func (a AlgorithmID) HashAlgo() (HashAlgo, bool) {
	for i, info := range hashAlgoOIDs {
		if oidEqual(a.OID, info.bytes) {
			return HashAlgo(i), true
		}
	}
	return 0, false
}

// PubKeyAlgo looks up which recognized public-key algorithm this AlgorithmID names.
func (a AlgorithmID) PubKeyAlgo() (PubKeyAlgo, bool) {
	for i, info := range pubKeyAlgoOIDs {
		if oidEqual(a.OID, info.bytes) {
			return PubKeyAlgo(i), true
		}
	}
	return 0, false
}

func oidEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// oidToDottedString renders an unrecognized OID's raw bytes as a dotted
// decimal string, decoding the base-128 arc encoding.
func oidToDottedString(value []byte) (string, error) {
	if len(value) < 1 {
		return "", errs.New(errs.UnexpectedError, "invalid OID")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d", value[0]/40, value[0]%40)

	var arc uint64
	for _, c := range value[1:] {
		arc = arc<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			fmt.Fprintf(&sb, ".%d", arc)
			arc = 0
		}
	}
	return sb.String(), nil
}

// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package der implements a minimal X.690 DER TLV encoder and decoder, plus
// the typed wrappers (integers, object identifiers, algorithm identifiers,
// distinguished names, validity windows, extensions) needed to assemble and
// parse PKCS#1 / PKCS#8 / SubjectPublicKeyInfo structures and signed
// "to-be-signed" containers.
//
// https://www.itu.int/rec/T-REC-X.690
package der

import (
	"fmt"

	"github.com/dark-bio/rsapki-go/errs"
)

// Class is the ASN.1 class of a Node's identifier octet.
type Class uint8

const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Method distinguishes primitive (scalar) from constructed (nested) nodes.
type Method uint8

const (
	MethodPrimitive Method = iota
	MethodConstructed
)

// Universal tag numbers used by this package.
const (
	TagBoolean         = 1
	TagInteger         = 2
	TagBitString       = 3
	TagOctetString     = 4
	TagNull            = 5
	TagOID             = 6
	TagUTF8String      = 12
	TagSequence        = 16
	TagSet             = 17
	TagPrintableString = 19
	TagT61String       = 20
	TagIA5String       = 22
	TagUTCTime         = 23
	TagGeneralizedTime = 24
)

// Node is a single decoded (or to-be-encoded) DER TLV element.
type Node struct {
	Class  Class
	Method Method
	Tag    int
	Value  []byte
}

// NewUniversal builds a primitive, universal-class node.
func NewUniversal(tag int, value []byte) Node {
	return Node{Class: ClassUniversal, Method: MethodPrimitive, Tag: tag, Value: value}
}

// Encode serializes n to its minimal DER TLV form: a single identifier
// octet, a length in short form for values under 128 bytes (long form
// otherwise, with no leading zero byte in the length), followed by the
// value bytes verbatim.
func Encode(n Node) []byte {
	idOctet := byte((uint8(n.Class)&0x03)<<6 | (uint8(n.Method)&0x01)<<5 | (byte(n.Tag) & 0x1F))

	valLen := len(n.Value)
	var lenBytes []byte
	if valLen < 128 {
		lenBytes = []byte{byte(valLen)}
	} else {
		var tmp []byte
		v := valLen
		for v > 0 {
			tmp = append([]byte{byte(v & 0xFF)}, tmp...)
			v >>= 8
		}
		lenBytes = append([]byte{0x80 | byte(len(tmp))}, tmp...)
	}

	out := make([]byte, 0, 1+len(lenBytes)+valLen)
	out = append(out, idOctet)
	out = append(out, lenBytes...)
	out = append(out, n.Value...)
	return out
}

// Decode parses a single TLV node from the front of data and returns it
// alongside the remaining bytes. Indefinite lengths and length fields
// wider than 4 content bytes are refused.
func Decode(data []byte) (Node, []byte, error) {
	if len(data) < 1 {
		return Node{}, nil, errs.New(errs.DerInvalidFile, "reached end of file too early")
	}
	idOctet := data[0]
	rest := data[1:]

	tag := int(idOctet & 0x1F)
	if tag == 0x1F {
		return Node{}, nil, errs.New(errs.NotImplemented, "high tag number form is not supported")
	}
	class := Class((idOctet & 0xC0) >> 6)
	method := Method((idOctet & 0x20) >> 5)

	size, rest, err := decodeLength(rest)
	if err != nil {
		return Node{}, nil, err
	}
	if len(rest) < size {
		return Node{}, nil, errs.New(errs.DerInvalidFile, "reached end of file too early")
	}

	return Node{Class: class, Method: method, Tag: tag, Value: rest[:size]}, rest[size:], nil
}

// decodeLength parses a DER length field (short or long form, at most 4
// content bytes of length) from the front of data.
func decodeLength(data []byte) (int, []byte, error) {
	if len(data) < 1 {
		return 0, nil, errs.New(errs.DerInvalidFile, "reached end of file too early")
	}
	first := data[0]
	rest := data[1:]

	var numBytes int
	if first&0x80 != 0 {
		numBytes = int(first & 0x7F)
		if numBytes == 0 {
			return 0, nil, errs.New(errs.DerInvalidFile, "indefinite length is not allowed")
		}
		if numBytes >= 5 {
			return 0, nil, errs.New(errs.NotImplemented, "ASN1 object is too big")
		}
	} else {
		numBytes = 1
		rest = data // the length byte itself is the size, not yet consumed
	}

	if len(rest) < numBytes {
		return 0, nil, errs.New(errs.DerInvalidFile, "reached end of file too early")
	}

	size := 0
	for i := 0; i < numBytes; i++ {
		size = size<<8 | int(rest[i])
	}
	return size, rest[numBytes:], nil
}

// Encapsulate wraps content in a constructed node of the given class and
// tag (universal SEQUENCE/SET by default) and returns the DER encoding.
func Encapsulate(content []byte, tag int, class ...Class) []byte {
	c := ClassUniversal
	if len(class) > 0 {
		c = class[0]
	}
	return Encode(Node{Class: c, Method: MethodConstructed, Tag: tag, Value: content})
}

// Decapsulate opens the constructed container at the front of data,
// verifying its tag is t, and returns its content plus the remaining
// bytes following the container.
func Decapsulate(data []byte, t int) ([]byte, []byte, error) {
	n, rest, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	if n.Tag != t {
		switch t {
		case TagSet:
			return nil, nil, errs.New(errs.DerSetExpected, "")
		case TagSequence:
			return nil, nil, errs.New(errs.DerSequenceExpected, "")
		default:
			return nil, nil, errs.New(errs.NotImplemented, fmt.Sprintf("Decapsulate expects tag %d", t))
		}
	}
	return n.Value, rest, nil
}

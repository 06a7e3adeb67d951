// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsakey

import "github.com/dark-bio/rsapki-go/errs"

// HashID selects the DigestInfo header prefix used by EncodePKCS1v15.
// HashNone selects the empty prefix, i.e. raw RSA padding with no
// DigestInfo wrapper.
type HashID int

const (
	HashSHA1 HashID = iota
	HashSHA256
	HashSHA384
	HashSHA512
	HashNone
)

// digestInfoHeaders holds the literal PKCS#1 DigestInfo SEQUENCE prefixes
// for each supported hash (RFC 3447 §9.2 Note 1).
var digestInfoHeaders = map[HashID][]byte{
	HashSHA1: {
		0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14,
	},
	HashSHA256: {
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
	},
	HashSHA384: {
		0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30,
	},
	HashSHA512: {
		0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40,
	},
	HashNone: {},
}

// minPaddingBytes is PKCS#1's required minimum 0xFF padding run length.
const minPaddingBytes = 8

// EncodePKCS1v15 builds a PKCS#1 v1.5 block of exactly emLen bytes:
// 0x00 0x01 0xFF...0xFF 0x00 DigestInfoHeader(hashID) data.
func EncodePKCS1v15(emLen int, data []byte, hashID HashID) ([]byte, error) {
	prefix, ok := digestInfoHeaders[hashID]
	if !ok {
		return nil, errs.New(errs.NotImplemented, "unknown hash id")
	}

	psLen := emLen - len(data) - len(prefix) - 3
	if psLen < minPaddingBytes {
		return nil, errs.New(errs.CryptoBadParameter, "PKCS#1 v1.5 output block is too small")
	}

	out := make([]byte, 0, emLen)
	out = append(out, 0x00, 0x01)
	for i := 0; i < psLen; i++ {
		out = append(out, 0xFF)
	}
	out = append(out, 0x00)
	out = append(out, prefix...)
	out = append(out, data...)
	return out, nil
}

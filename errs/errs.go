// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs provides the closed error taxonomy shared by the prng,
// primeengine, rsakey and der packages.
package errs

import "fmt"

// Kind identifies one of the fixed error categories produced by this module.
// The set is closed: callers may safely switch over it exhaustively.
type Kind int

const (
	// OutOfBoundsString signals an index or length outside a buffer's bounds.
	OutOfBoundsString Kind = iota
	// InvalidHexString signals malformed hexadecimal input.
	InvalidHexString
	// NegativeBignum signals an operation was asked to encode a negative integer
	// somewhere only non-negative integers are valid.
	NegativeBignum
	// NoSlashFound signals a path operation expected to find a '/' separator.
	NoSlashFound
	// BadExtension signals a file extension mismatch.
	BadExtension
	// DerInvalidFile signals a DER buffer that is truncated or otherwise
	// structurally broken.
	DerInvalidFile
	// DerSequenceExpected signals a tag mismatch where a SEQUENCE was required.
	DerSequenceExpected
	// DerSetExpected signals a tag mismatch where a SET was required.
	DerSetExpected
	// DerOidExpected signals a tag mismatch where an OBJECT IDENTIFIER was required.
	DerOidExpected
	// InvalidCertificate signals a structurally invalid certificate or key.
	InvalidCertificate
	// CryptoBadParameter signals an out-of-range or otherwise unacceptable
	// cryptographic parameter (e.g. a bit length too small for RSA).
	CryptoBadParameter
	// PrngStateError signals failure to load, save or lock PRNG state.
	PrngStateError
	// CryptoInternalMayhem signals an internal cryptographic invariant was
	// violated (e.g. a modular inverse that does not exist where one is
	// mathematically guaranteed).
	CryptoInternalMayhem
	// NotImplemented signals a code path that is intentionally unimplemented.
	NotImplemented
	// UnexpectedError signals a condition the caller should never be able to
	// trigger through normal use (e.g. aliased PRNG combination).
	UnexpectedError
	// UnknownError is the catch-all for anything outside the above taxonomy.
	UnknownError
)

var messages = [...]string{
	OutOfBoundsString:    "index out of bounds",
	InvalidHexString:     "invalid hexadecimal string",
	NegativeBignum:       "negative big integer where none is allowed",
	NoSlashFound:         "no '/' separator found",
	BadExtension:         "unexpected file extension",
	DerInvalidFile:       "invalid or truncated DER encoding",
	DerSequenceExpected:  "SEQUENCE tag expected",
	DerSetExpected:       "SET tag expected",
	DerOidExpected:       "OBJECT IDENTIFIER tag expected",
	InvalidCertificate:   "invalid certificate",
	CryptoBadParameter:   "bad cryptographic parameter",
	PrngStateError:       "PRNG state error",
	CryptoInternalMayhem: "internal cryptographic invariant violated",
	NotImplemented:       "not implemented",
	UnexpectedError:      "unexpected error",
	UnknownError:         "unknown error",
}

// String returns the fixed message for a Kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(messages) {
		return "invalid error kind"
	}
	return messages[k]
}

// Error is the concrete error type produced by this module. It always
// carries one of the Kind constants plus an optional detail string.
type Error struct {
	Kind   Kind
	Detail string
}

// New creates an Error of the given kind, with an optional detail appended
// to the kind's fixed message.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Detail)
}

// Is reports whether err is an *Error of the given kind, allowing
// errors.Is(err, errs.New(kind, "")) style comparisons.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

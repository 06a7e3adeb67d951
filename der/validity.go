// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import "github.com/dark-bio/rsapki-go/errs"

// Validity is an X.509 validity window: SEQUENCE { UTCTime, UTCTime }.
type Validity struct {
	StartDate string
	EndDate   string
}

// NewValidity builds a Validity from two UTCTime strings (YYMMDDHHMMSSZ).
func NewValidity(start, end string) Validity {
	return Validity{StartDate: start, EndDate: end}
}

// ToDER encodes the validity window.
func (v Validity) ToDER() []byte {
	content := Encode(NewUniversal(TagUTCTime, []byte(v.StartDate)))
	content = append(content, Encode(NewUniversal(TagUTCTime, []byte(v.EndDate)))...)
	return Encapsulate(content, TagSequence)
}

// ParseValidity parses a validity window from the front of data, returning
// the remaining bytes.
func ParseValidity(data []byte) (Validity, []byte, error) {
	content, rest, err := Decapsulate(data, TagSequence)
	if err != nil {
		return Validity{}, nil, errs.New(errs.DerInvalidFile, "invalid validity field")
	}

	start, after, err := Decode(content)
	if err != nil {
		return Validity{}, nil, errs.New(errs.DerInvalidFile, "start of validity is incorrect")
	}
	if start.Class != ClassUniversal || start.Method != MethodPrimitive || start.Tag != TagUTCTime {
		return Validity{}, nil, errs.New(errs.DerInvalidFile, "start of validity is incorrect")
	}
	end, _, err := Decode(after)
	if err != nil {
		return Validity{}, nil, errs.New(errs.DerInvalidFile, "end of validity is incorrect")
	}
	if end.Class != ClassUniversal || end.Method != MethodPrimitive || end.Tag != TagUTCTime {
		return Validity{}, nil, errs.New(errs.DerInvalidFile, "end of validity is incorrect")
	}

	return Validity{StartDate: string(start.Value), EndDate: string(end.Value)}, rest, nil
}

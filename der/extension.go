// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import "github.com/dark-bio/rsapki-go/errs"

// Extension is an X.509 extension: SEQUENCE { OID, BOOLEAN critical
// OPTIONAL, OCTET STRING value }.
type Extension struct {
	OID             []byte
	CriticalPresent bool
	Critical        bool
	Value           []byte
}

// NewExtension builds an extension with an explicit criticality flag.
func NewExtension(id ExtensionID, critical bool, value []byte) Extension {
	return Extension{OID: extensionOIDs[id].bytes, CriticalPresent: true, Critical: critical, Value: value}
}

// NewExtensionNoCriticality builds an extension that omits the optional
// BOOLEAN criticality field.
func NewExtensionNoCriticality(id ExtensionID, value []byte) Extension {
	return Extension{OID: extensionOIDs[id].bytes, Value: value}
}

// ToDER encodes the extension.
func (e Extension) ToDER() []byte {
	content := EncodeOID(e.OID)
	if e.CriticalPresent {
		b := byte(0x00)
		if e.Critical {
			b = 0xFF
		}
		content = append(content, Encode(NewUniversal(TagBoolean, []byte{b}))...)
	}
	content = append(content, Encode(NewUniversal(TagOctetString, e.Value))...)
	return Encapsulate(content, TagSequence)
}

// ParseExtension parses an extension from the front of data, returning the
// remaining bytes.
func ParseExtension(data []byte) (Extension, []byte, error) {
	content, rest, err := Decapsulate(data, TagSequence)
	if err != nil {
		return Extension{}, nil, err
	}

	oidNode, after, err := Decode(content)
	if err != nil {
		return Extension{}, nil, err
	}
	if oidNode.Class != ClassUniversal || oidNode.Method != MethodPrimitive || oidNode.Tag != TagOID {
		return Extension{}, nil, errs.New(errs.DerOidExpected, "")
	}

	ext := Extension{OID: oidNode.Value}

	next, after2, err := Decode(after)
	if err != nil {
		return Extension{}, nil, err
	}
	if next.Tag == TagBoolean {
		ext.CriticalPresent = true
		ext.Critical = len(next.Value) == 1 && next.Value[0] != 0x00
		next, after2, err = Decode(after2)
		if err != nil {
			return Extension{}, nil, err
		}
	}
	if next.Class != ClassUniversal || next.Method != MethodPrimitive || next.Tag != TagOctetString {
		return Extension{}, nil, errs.New(errs.DerInvalidFile, "extension value must be an OCTET STRING")
	}
	ext.Value = next.Value

	return ext, rest, nil
}

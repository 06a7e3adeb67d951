// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"strings"

	"github.com/dark-bio/rsapki-go/errs"
)

// maxDNAttributes bounds the number of attributes accepted in a single
// Distinguished Name, mirroring the reference implementation's fixed-size
// field array.
const maxDNAttributes = 30

// dnField is one (attribute, value) pair inside a Distinguished Name.
type dnField struct {
	Attr  DNAttr
	Tag   int
	Value string
}

// dnShortNames maps recognized attributes to their RFC 1779 short form.
var dnShortNames = map[DNAttr]string{
	DNCommonName:             "CN",
	DNCountryName:            "C",
	DNLocalityName:           "L",
	DNStateOrProvinceName:    "ST",
	DNOrganizationName:       "O",
	DNOrganizationalUnitName: "OU",
	DNEmailAddress:           "MAIL",
	DNDomainComponent:        "DC",
}

// DistinguishedName is a SEQUENCE of SET of SEQUENCE { OID, value } as used
// for X.509 issuer/subject names.
type DistinguishedName struct {
	fields        []dnField
	UnknownFields bool
}

func (dn *DistinguishedName) add(attr DNAttr, tag int, value string) error {
	if len(dn.fields) >= maxDNAttributes {
		return errs.New(errs.UnexpectedError, "distinguished name has too many attributes")
	}
	dn.fields = append(dn.fields, dnField{Attr: attr, Tag: tag, Value: value})
	return nil
}

func (dn *DistinguishedName) AddCommonName(v string, tag int) error {
	return dn.add(DNCommonName, tag, v)
}

func (dn *DistinguishedName) AddCountry(v string, tag int) error {
	return dn.add(DNCountryName, tag, v)
}

func (dn *DistinguishedName) AddLocality(v string, tag int) error {
	return dn.add(DNLocalityName, tag, v)
}

func (dn *DistinguishedName) AddState(v string, tag int) error {
	return dn.add(DNStateOrProvinceName, tag, v)
}

func (dn *DistinguishedName) AddOrganization(v string, tag int) error {
	return dn.add(DNOrganizationName, tag, v)
}

func (dn *DistinguishedName) AddOrganizationalUnit(v string, tag int) error {
	return dn.add(DNOrganizationalUnitName, tag, v)
}

func (dn *DistinguishedName) AddEmail(v string, tag int) error {
	return dn.add(DNEmailAddress, tag, v)
}

// ToDER encodes the Distinguished Name as SEQUENCE { SET { SEQUENCE { OID,
// value } }, ... }.
func (dn *DistinguishedName) ToDER() []byte {
	var content []byte
	for _, f := range dn.fields {
		obj := append(EncodeOID(dnOIDs[f.Attr].bytes), Encode(NewUniversal(f.Tag, []byte(f.Value)))...)
		seq := Encapsulate(obj, TagSequence)
		content = append(content, Encapsulate(seq, TagSet)...)
	}
	return Encapsulate(content, TagSequence)
}

// ParseDistinguishedName parses a Distinguished Name SEQUENCE from the
// front of data, returning the remaining bytes. Attributes with
// unrecognized OIDs are skipped and flagged via UnknownFields rather than
// causing a parse failure.
func ParseDistinguishedName(data []byte) (*DistinguishedName, []byte, error) {
	content, rest, err := Decapsulate(data, TagSequence)
	if err != nil {
		return nil, nil, err
	}

	dn := &DistinguishedName{}
	for len(content) > 0 {
		var setContent []byte
		setContent, content, err = Decapsulate(content, TagSet)
		if err != nil {
			return nil, nil, errs.New(errs.DerInvalidFile, "malformed Distinguished Name field")
		}
		seqContent, _, err := Decapsulate(setContent, TagSequence)
		if err != nil {
			return nil, nil, errs.New(errs.DerInvalidFile, "malformed Distinguished Name field")
		}

		oidNode, valuePart, err := Decode(seqContent)
		if err != nil {
			return nil, nil, errs.New(errs.DerInvalidFile, "malformed Distinguished Name field")
		}
		if oidNode.Class != ClassUniversal || oidNode.Method != MethodPrimitive || oidNode.Tag != TagOID {
			return nil, nil, errs.New(errs.DerInvalidFile, "malformed Distinguished Name field")
		}
		valueNode, _, err := Decode(valuePart)
		if err != nil {
			return nil, nil, errs.New(errs.DerInvalidFile, "malformed Distinguished Name field")
		}

		matched := false
		for i, info := range dnOIDs {
			if oidEqual(oidNode.Value, info.bytes) {
				_ = dn.add(DNAttr(i), valueNode.Tag, string(valueNode.Value))
				matched = true
				break
			}
		}
		if !matched {
			dn.UnknownFields = true
		}
	}
	return dn, rest, nil
}

// ToDNString renders the name using the RFC 1779 short form, e.g.
// "CN=example.com,O=Acme".
func (dn *DistinguishedName) ToDNString() string {
	parts := make([]string, 0, len(dn.fields))
	for _, f := range dn.fields {
		prefix, ok := dnShortNames[f.Attr]
		if !ok {
			continue
		}
		parts = append(parts, prefix+"="+f.Value)
	}
	return strings.Join(parts, ",")
}

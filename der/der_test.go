// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import (
	"bytes"
	"math/big"
	"testing"
)

func TestEncodeDecodeRoundTripShortForm(t *testing.T) {
	n := NewUniversal(TagOctetString, []byte("hello world"))
	encoded := Encode(n)

	decoded, rest, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if decoded.Tag != TagOctetString || !bytes.Equal(decoded.Value, n.Value) {
		t.Errorf("decoded node mismatch: %+v", decoded)
	}
}

func TestEncodeDecodeRoundTripLongForm(t *testing.T) {
	value := bytes.Repeat([]byte{0xAB}, 300)
	n := NewUniversal(TagOctetString, value)
	encoded := Encode(n)

	// A 300-byte value needs a 2-byte long-form length: 0x82, 0x01, 0x2C.
	if encoded[1] != 0x82 {
		t.Fatalf("expected long-form length byte 0x82, got %#x", encoded[1])
	}

	decoded, rest, err := Decode(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if !bytes.Equal(decoded.Value, value) {
		t.Error("decoded value mismatch")
	}
}

func TestEncapsulateDecapsulate(t *testing.T) {
	inner := Encode(NewUniversal(TagInteger, []byte{0x01}))
	encoded := Encapsulate(inner, TagSequence)

	content, rest, err := Decapsulate(encoded, TagSequence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if !bytes.Equal(content, inner) {
		t.Error("decapsulated content mismatch")
	}
}

func TestDecapsulateWrongTag(t *testing.T) {
	encoded := Encapsulate([]byte{0x01}, TagSequence)
	if _, _, err := Decapsulate(encoded, TagSet); err == nil {
		t.Error("expected an error decapsulating a SEQUENCE as a SET")
	}
}

func TestEncodeIntegerMinimalForm(t *testing.T) {
	cases := []struct {
		name string
		n    *big.Int
		want []byte
	}{
		{"zero", big.NewInt(0), []byte{0x02, 0x01, 0x00}},
		{"small positive", big.NewInt(127), []byte{0x02, 0x01, 0x7F}},
		{"needs padding", big.NewInt(128), []byte{0x02, 0x02, 0x00, 0x80}},
	}
	for _, c := range cases {
		got, err := EncodeInteger(c.n)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if !bytes.Equal(got, c.want) {
			t.Errorf("%s: got %x, want %x", c.name, got, c.want)
		}
	}
}

func TestEncodeIntegerRejectsNegative(t *testing.T) {
	if _, err := EncodeInteger(big.NewInt(-1)); err == nil {
		t.Error("expected an error encoding a negative integer")
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(65537),
		new(big.Int).Lsh(big.NewInt(1), 2048),
	}
	for _, v := range values {
		encoded, err := EncodeInteger(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded, rest, err := DecodeInteger(encoded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rest) != 0 {
			t.Errorf("unexpected trailing bytes: %x", rest)
		}
		if decoded.Cmp(v) != 0 {
			t.Errorf("got %s, want %s", decoded, v)
		}
	}
}

func TestAlgorithmIDRoundTrip(t *testing.T) {
	algo := NewSignAlgorithmID(SignSHA256RSA)
	encoded := algo.ToDER()

	decoded, rest, err := ParseAlgorithmID(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	sa, ok := decoded.SignAlgo()
	if !ok || sa != SignSHA256RSA {
		t.Errorf("got %v, ok=%v, want SignSHA256RSA", sa, ok)
	}
}

func TestDistinguishedNameRoundTrip(t *testing.T) {
	var dn DistinguishedName
	if err := dn.AddCommonName("example.com", TagUTF8String); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := dn.AddOrganization("Acme Corp", TagPrintableString); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := dn.ToDER()
	parsed, rest, err := ParseDistinguishedName(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if parsed.UnknownFields {
		t.Error("did not expect unknown fields")
	}
	want := "CN=example.com,O=Acme Corp"
	if got := parsed.ToDNString(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValidityRoundTrip(t *testing.T) {
	v := NewValidity("260101000000Z", "270101000000Z")
	encoded := v.ToDER()

	parsed, rest, err := ParseValidity(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if parsed != v {
		t.Errorf("got %+v, want %+v", parsed, v)
	}
}

func TestExtensionRoundTripWithCriticality(t *testing.T) {
	ext := NewExtension(ExtBasicConstraints, true, []byte{0x30, 0x00})
	encoded := ext.ToDER()

	parsed, rest, err := ParseExtension(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}
	if !parsed.CriticalPresent || !parsed.Critical {
		t.Error("expected critical=true to round-trip")
	}
	if !bytes.Equal(parsed.Value, ext.Value) {
		t.Error("extension value mismatch")
	}
}

func TestBitStringFlagsRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0x80, 0xDEADBEEF, 5}
	for _, flags := range cases {
		packed, err := BitStringFlags(flags, 32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _, err := FlagsFromBitString(packed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != flags {
			t.Errorf("got %#x, want %#x", got, flags)
		}
	}
}

type fakeTBS struct {
	der []byte
	sa  SignAlgo
}

func (f fakeTBS) ToDER() []byte   { return f.der }
func (f fakeTBS) SignAlgo() SignAlgo { return f.sa }

func TestAppendSignature(t *testing.T) {
	tbs := fakeTBS{der: Encapsulate(nil, TagSequence), sa: SignSHA256RSA}
	sig := []byte{0x01, 0x02, 0x03}

	signed := AppendSignature(tbs, sig)

	content, rest, err := Decapsulate(signed, TagSequence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unexpected trailing bytes: %x", rest)
	}

	tbsNode, after, err := Decode(content)
	if err != nil || !bytes.Equal(tbsNode.Value, nil) {
		t.Fatalf("unexpected tbs node: %+v, err=%v", tbsNode, err)
	}
	_, after2, err := Decode(after)
	if err != nil {
		t.Fatalf("unexpected error decoding algorithm id: %v", err)
	}
	bsNode, final, err := Decode(after2)
	if err != nil {
		t.Fatalf("unexpected error decoding bit string: %v", err)
	}
	if len(final) != 0 {
		t.Errorf("unexpected trailing bytes: %x", final)
	}
	if bsNode.Tag != TagBitString || bsNode.Value[0] != 0x00 || !bytes.Equal(bsNode.Value[1:], sig) {
		t.Errorf("unexpected bit string content: %x", bsNode.Value)
	}
}

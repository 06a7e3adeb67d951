// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package securebuf

import (
	"math/big"
	"testing"
)

func TestBasenameDirname(t *testing.T) {
	cases := []struct {
		in, base, dir string
	}{
		{"/etc/passwd", "passwd", "/etc/"},
		{"passwd", "passwd", "./"},
		{"/a/b/c", "c", "/a/b/"},
		{"", "", "./"},
	}
	for _, c := range cases {
		b := NewFromBytes([]byte(c.in))
		if got := string(b.Basename().Bytes()); got != c.base {
			t.Errorf("Basename(%q) = %q, want %q", c.in, got, c.base)
		}
		if got := string(b.Dirname().Bytes()); got != c.dir {
			t.Errorf("Dirname(%q) = %q, want %q", c.in, got, c.dir)
		}
	}
}

func TestCheckAndReplaceExtension(t *testing.T) {
	name := NewFromBytes([]byte("key.priv"))
	oldExt := NewFromBytes([]byte(".priv"))
	newExt := NewFromBytes([]byte(".pub"))

	if !name.CheckExtension(oldExt) {
		t.Fatal("expected extension match")
	}
	replaced, err := name.ReplaceExtension(oldExt, newExt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(replaced.Bytes()), "key.pub"; got != want {
		t.Errorf("have %q, want %q", got, want)
	}

	if _, err := name.ReplaceExtension(newExt, oldExt); err == nil {
		t.Error("expected BadExtension error")
	}
}

func TestPopLine(t *testing.T) {
	b := NewFromBytes([]byte("first\nsecond\nthird"))

	line, err := b.PopLine()
	if err != nil || string(line.Bytes()) != "first" {
		t.Fatalf("line 1: %q, %v", line.Bytes(), err)
	}
	line, err = b.PopLine()
	if err != nil || string(line.Bytes()) != "second" {
		t.Fatalf("line 2: %q, %v", line.Bytes(), err)
	}
	line, err = b.PopLine()
	if err != nil || string(line.Bytes()) != "third" {
		t.Fatalf("line 3: %q, %v", line.Bytes(), err)
	}
	if _, err := b.PopLine(); err == nil {
		t.Error("expected EOF error on further PopLine")
	}
}

func TestHexRoundTrip(t *testing.T) {
	orig := NewFromBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	encoded := orig.HexEncode(0)
	if got, want := string(encoded.Bytes()), "deadbeef"; got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
	decoded, err := encoded.HexDecode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(orig) {
		t.Errorf("round trip mismatch: have %x, want %x", decoded.Bytes(), orig.Bytes())
	}
}

func TestNewFromBigIntNegativeRejected(t *testing.T) {
	n := big.NewInt(-1)
	if _, err := NewFromBigInt(n, false); err == nil {
		t.Error("expected error for negative big.Int")
	}
}

func TestReleaseZeroesAndTruncates(t *testing.T) {
	b := NewFromBytes([]byte{1, 2, 3, 4})
	b.Release()
	if b.Len() != 0 {
		t.Errorf("expected length 0 after release, got %d", b.Len())
	}
}

func TestPushGrowsBuffer(t *testing.T) {
	b := New()
	for _, c := range []byte("hi") {
		b.Push(c)
	}
	if got, want := string(b.Bytes()), "hi"; got != want {
		t.Errorf("have %q, want %q", got, want)
	}
}

func TestWipeBigIntClearsBackingWords(t *testing.T) {
	n, ok := new(big.Int).SetString("F1E2D3C4B5A697887766554433221100", 16)
	if !ok {
		t.Fatal("failed to parse literal")
	}
	words := n.Bits()
	if len(words) == 0 {
		t.Fatal("expected a non-empty word slice")
	}

	WipeBigInt(n)

	if n.Sign() != 0 {
		t.Errorf("expected n to be zero after wipe, got %s", n)
	}
	for i, w := range words {
		if w != 0 {
			t.Errorf("backing word %d still holds %#x after wipe", i, w)
		}
	}
}

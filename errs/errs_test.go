// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	e := New(DerSequenceExpected, "")
	if got, want := e.Error(), "SEQUENCE tag expected"; got != want {
		t.Errorf("message mismatch: have %q, want %q", got, want)
	}
}

func TestErrorMessageWithDetail(t *testing.T) {
	e := New(DerSequenceExpected, "tag was 0x04")
	if got, want := e.Error(), "SEQUENCE tag expected: tag was 0x04"; got != want {
		t.Errorf("message mismatch: have %q, want %q", got, want)
	}
}

func TestErrorIs(t *testing.T) {
	e := New(PrngStateError, "flock failed")
	if !errors.Is(e, New(PrngStateError, "")) {
		t.Error("expected errors.Is to match on kind regardless of detail")
	}
	if errors.Is(e, New(CryptoBadParameter, "")) {
		t.Error("expected errors.Is to not match across kinds")
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	var k Kind = 999
	if got, want := k.String(), "invalid error kind"; got != want {
		t.Errorf("have %q, want %q", got, want)
	}
}

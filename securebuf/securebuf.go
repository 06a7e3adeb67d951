// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package securebuf provides an owning byte buffer with a read/write cursor,
// guaranteed-overwrite release, and the small set of path/hex helpers the
// key-generation pipeline needs to move bytes around without leaking them
// through the garbage collector for longer than necessary.
package securebuf

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/dark-bio/rsapki-go/errs"
)

// Buffer is an owning, cursor-addressed byte container. The zero value is an
// empty, usable Buffer.
type Buffer struct {
	data   []byte
	cursor int
}

// New creates an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewSize creates a zero-filled Buffer of the given length.
func NewSize(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// NewFromBytes creates a Buffer that copies the given bytes.
func NewFromBytes(b []byte) *Buffer {
	out := make([]byte, len(b))
	copy(out, b)
	return &Buffer{data: out}
}

// NewFromUint renders val as decimal digits, left-padded with zeros to at
// least minDigits characters.
func NewFromUint(val uint64, minDigits int) *Buffer {
	digits := 1
	for v := val; v >= 10; v /= 10 {
		digits++
	}
	if digits < minDigits {
		digits = minDigits
	}
	out := make([]byte, digits)
	v := val
	for i := 0; i < digits; i++ {
		out[digits-1-i] = byte('0' + v%10)
		v /= 10
	}
	return &Buffer{data: out}
}

// NewFromBigInt renders n as raw big-endian bytes (binary encoding) or as an
// uppercase hexadecimal ASCII string (display encoding). It rejects negative
// integers, mirroring the closed error taxonomy's NegativeBignum case.
func NewFromBigInt(n *big.Int, display bool) (*Buffer, error) {
	if n.Sign() < 0 {
		return nil, errs.New(errs.NegativeBignum, "")
	}
	if display {
		return &Buffer{data: []byte(strings.ToUpper(n.Text(16)))}, nil
	}
	return &Buffer{data: n.Bytes()}, nil
}

// Len returns the number of bytes held by the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer's underlying bytes. Callers that intend to retain
// a copy across a Release call must clone the slice themselves.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Equal reports whether two buffers hold identical bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Slice returns a new Buffer holding a copy of b.data[start:start+length].
func (b *Buffer) Slice(start, length int) (*Buffer, error) {
	if start < 0 || length < 0 || start+length > len(b.data) {
		return nil, errs.New(errs.OutOfBoundsString, "")
	}
	return NewFromBytes(b.data[start : start+length]), nil
}

// Concat appends a copy of o's bytes to b, returning a new Buffer. b and o
// are left unmodified.
func (b *Buffer) Concat(o *Buffer) *Buffer {
	out := make([]byte, len(b.data)+len(o.data))
	copy(out, b.data)
	copy(out[len(b.data):], o.data)
	return &Buffer{data: out}
}

// ResetCursor moves the read/write cursor to the given offset.
func (b *Buffer) ResetCursor(at int) error {
	if at < 0 || at > len(b.data) {
		return errs.New(errs.OutOfBoundsString, "")
	}
	b.cursor = at
	return nil
}

// Cursor returns the current read/write cursor position.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// EOF reports whether the cursor has reached the end of the buffer.
func (b *Buffer) EOF() bool {
	return b.cursor >= len(b.data)
}

// Pop reads and consumes length bytes starting at the cursor.
func (b *Buffer) Pop(length int) (*Buffer, error) {
	out, err := b.Slice(b.cursor, length)
	if err != nil {
		return nil, err
	}
	b.cursor += length
	return out, nil
}

// PopLine consumes bytes up to and including the next '\n', returning the
// bytes before it. If no '\n' remains, it consumes and returns the rest of
// the buffer. PopLine fails if the cursor is already at EOF.
func (b *Buffer) PopLine() (*Buffer, error) {
	if b.EOF() {
		return nil, errs.New(errs.OutOfBoundsString, "")
	}
	start := b.cursor
	for !b.EOF() {
		c := b.data[b.cursor]
		b.cursor++
		if c == '\n' {
			return NewFromBytes(b.data[start : b.cursor-1]), nil
		}
	}
	return NewFromBytes(b.data[start:b.cursor]), nil
}

// Push appends a single byte at the cursor, growing the buffer as needed.
func (b *Buffer) Push(c byte) {
	if b.cursor < len(b.data) {
		b.data[b.cursor] = c
	} else {
		b.data = append(b.data, c)
	}
	b.cursor++
}

// Write implements io.Writer by pushing every byte of p at the cursor.
func (b *Buffer) Write(p []byte) (int, error) {
	for _, c := range p {
		b.Push(c)
	}
	return len(p), nil
}

// Basename returns the portion of the buffer's content after the last '/',
// or the whole content if it contains no '/'.
func (b *Buffer) Basename() *Buffer {
	if i := lastSlash(b.data); i >= 0 {
		return NewFromBytes(b.data[i+1:])
	}
	return NewFromBytes(b.data)
}

// Dirname returns the portion of the buffer's content up to and including
// the last '/', or "./" if it contains no '/'.
func (b *Buffer) Dirname() *Buffer {
	if i := lastSlash(b.data); i >= 0 {
		return NewFromBytes(b.data[:i+1])
	}
	return NewFromBytes([]byte("./"))
}

func lastSlash(data []byte) int {
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == '/' {
			return i
		}
	}
	return -1
}

// CheckExtension reports whether the buffer's content ends with ext.
func (b *Buffer) CheckExtension(ext *Buffer) bool {
	if len(b.data) < len(ext.data) {
		return false
	}
	return string(b.data[len(b.data)-len(ext.data):]) == string(ext.data)
}

// ReplaceExtension swaps a trailing oldExt for newExt. It fails with
// BadExtension if the buffer does not end with oldExt.
func (b *Buffer) ReplaceExtension(oldExt, newExt *Buffer) (*Buffer, error) {
	if !b.CheckExtension(oldExt) {
		return nil, errs.New(errs.BadExtension, "")
	}
	trimmed := NewFromBytes(b.data[:len(b.data)-len(oldExt.data)])
	return trimmed.Concat(newExt), nil
}

// HexEncode renders the buffer's content as a lowercase hexadecimal string,
// optionally interspersing delimiter between byte pairs.
func (b *Buffer) HexEncode(delimiter byte) *Buffer {
	if delimiter == 0 {
		return &Buffer{data: []byte(hex.EncodeToString(b.data))}
	}
	out := make([]byte, 0, len(b.data)*3)
	for i, c := range b.data {
		if i > 0 {
			out = append(out, delimiter)
		}
		out = append(out, []byte(hex.EncodeToString([]byte{c}))...)
	}
	return &Buffer{data: out}
}

// HexDecode interprets the buffer's content as a hexadecimal ASCII string
// and returns the corresponding binary bytes.
func (b *Buffer) HexDecode() (*Buffer, error) {
	s := string(b.data)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.New(errs.InvalidHexString, err.Error())
	}
	return &Buffer{data: decoded}, nil
}

// Release overwrites the buffer's storage, first with 0xFF then with 0x00,
// and truncates it to zero length. This mirrors the two-pass shred the
// original C implementation used against compiler dead-store elimination;
// Go's runtime does not reorder slice writes across the loop the way an
// optimizing C compiler can, but the two passes are kept for parity with the
// reviewed erasure pattern.
func (b *Buffer) Release() {
	for i := range b.data {
		b.data[i] = 0xff
	}
	for i := range b.data {
		b.data[i] = 0x00
	}
	b.data = nil
	b.cursor = 0
}

// WipeBigInt overwrites a big.Int's internal limbs before letting it go, for
// use on RSA factors and private exponents once they are no longer needed.
// SetInt64(0) alone only shrinks the internal word slice's length; it never
// touches the backing array, so the secret limbs would otherwise survive in
// memory untouched. This reaches into that backing array directly via Bits
// and shreds it in two passes (ones then zeros), the same pattern Release
// uses, before resetting n to zero.
func WipeBigInt(n *big.Int) {
	words := n.Bits()
	for i := range words {
		words[i] = ^big.Word(0)
	}
	for i := range words {
		words[i] = 0
	}
	n.SetInt64(0)
}

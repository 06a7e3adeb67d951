// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

import "github.com/dark-bio/rsapki-go/errs"

// BitStringFlags packs the low `length` bits of flags into a DER BIT
// STRING content (leading unused-bits-count byte followed by the
// minimal number of packed bytes), trimming trailing zero bits.
func BitStringFlags(flags uint32, length int) ([]byte, error) {
	if length > 32 {
		return nil, errs.New(errs.UnexpectedError, "BitStringFlags length should not be > 32")
	}

	newLength := length
	for newLength > 0 && flags&(1<<uint(newLength-1)) == 0 {
		newLength--
	}
	paddingLength := (8 - (newLength % 8)) % 8

	var packed uint32
	for i := newLength; i > 0; i-- {
		if flags&(1<<uint(i-1)) != 0 {
			packed |= 1 << uint(paddingLength+newLength-i)
		}
	}

	nBytes := (newLength + paddingLength) / 8
	res := make([]byte, 1+nBytes)
	res[0] = byte(paddingLength)
	for k := 0; k < nBytes; k++ {
		res[1+k] = byte(packed >> uint(8*(nBytes-1-k)))
	}
	return res, nil
}

// FlagsFromBitString unpacks a DER BIT STRING content (as produced by
// BitStringFlags) back into a flag word and its significant bit length.
func FlagsFromBitString(bstr []byte) (uint32, int, error) {
	if len(bstr) < 1 {
		return 0, 0, errs.New(errs.OutOfBoundsString, "")
	}
	paddingLength := int(bstr[0])
	data := bstr[1:]
	bfLength := len(data)*8 - paddingLength
	if bfLength > 32 || bfLength < 0 {
		return 0, 0, errs.New(errs.UnexpectedError, "FlagsFromBitString bfLength should not be > 32")
	}

	var flags uint32
	for i := bfLength; i > 0; i-- {
		byteIdx := (i - 1) / 8
		bitInByte := uint((8 - (i % 8)) % 8)
		if data[byteIdx]&(1<<bitInByte) != 0 {
			flags |= 1 << uint(i-1)
		}
	}
	return flags, bfLength, nil
}

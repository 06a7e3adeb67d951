// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package der

// TBS is any "to-be-signed" block: a structure that can emit its own DER
// encoding and declares which signature algorithm should be used to sign it.
type TBS interface {
	ToDER() []byte
	SignAlgo() SignAlgo
}

// AppendSignature wraps a TBS block's DER encoding and a signature into the
// final signed container: SEQUENCE { tbs, AlgorithmIdentifier, BIT STRING }.
// The BIT STRING content is prefixed with a single 0x00 unused-bits byte.
func AppendSignature(tbs TBS, signature []byte) []byte {
	content := tbs.ToDER()
	content = append(content, NewSignAlgorithmID(tbs.SignAlgo()).ToDER()...)

	bitstringContent := make([]byte, 1+len(signature))
	copy(bitstringContent[1:], signature)
	content = append(content, Encode(NewUniversal(TagBitString, bitstringContent))...)

	return Encapsulate(content, TagSequence)
}

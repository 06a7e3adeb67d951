// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command genrsa generates an RSA signing keypair and writes it to stdout
// as a PEM-armored PKCS#8 block.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dark-bio/rsapki-go/primeengine"
	"github.com/dark-bio/rsapki-go/prng"
	"github.com/dark-bio/rsapki-go/rsakey"
)

const minBits = 1024

func main() {
	if len(os.Args) != 2 {
		usage()
		os.Exit(1)
	}
	nBits, err := strconv.Atoi(os.Args[1])
	if err != nil || nBits < minBits {
		usage()
		os.Exit(1)
	}

	entropy := prng.NewEntropySource()
	rng := prng.NewBarakHalevi()
	rng.RefreshFrom(entropy, prng.StateSize)
	engine := primeengine.New(entropy)

	key := rsakey.MustGenerateKey(rng, engine, nBits, true)

	armored, err := key.ToPEM()
	if err != nil {
		fmt.Fprintln(os.Stderr, "genrsa:", err)
		os.Exit(1)
	}
	os.Stdout.Write(armored)
}

func usage() {
	name := "genrsa"
	if len(os.Args) > 0 {
		name = os.Args[0]
	}
	fmt.Fprintf(os.Stderr, " Usage : %s keysize (>= %d)\n", name, minBits)
}

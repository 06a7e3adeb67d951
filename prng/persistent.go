// rsapki-go: cryptography primitives and wrappers
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prng

import (
	"math/big"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/dark-bio/rsapki-go/errs"
)

// Persistent wraps a BarakHalevi generator with file-backed state: the raw
// 32-byte state is loaded from (or saved to) a path on disk, guarded by an
// advisory flock, and autosaved every autoSaveEvery calls to Next.
type Persistent struct {
	inner        BarakHalevi
	path         string
	autoSaveEvery int
	counter      int
}

// LoadPersistent loads a generator's state from an existing file. The file
// must contain at least StateSize bytes; only the first StateSize bytes are
// read, and any further bytes are ignored. autoSaveEvery controls how many
// Next calls elapse between automatic SaveState calls.
func LoadPersistent(path string, autoSaveEvery int) (*Persistent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.New(errs.PrngStateError, path)
	}
	defer f.Close()

	if err := flockRetry(f, unix.LOCK_SH); err != nil {
		return nil, errs.New(errs.PrngStateError, path)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	var state [StateSize]byte
	n, err := readFull(f, state[:])
	if err != nil || n != StateSize {
		return nil, errs.New(errs.PrngStateError, path)
	}

	p := &Persistent{path: path, autoSaveEvery: autoSaveEvery}
	p.inner.state = state
	return p, nil
}

// SeedPersistent creates a new persistent generator by drawing its initial
// state from another generator (typically an EntropySource), then
// immediately saving it to path.
func SeedPersistent(path string, source Generator, autoSaveEvery int) (*Persistent, error) {
	p := &Persistent{path: path, autoSaveEvery: autoSaveEvery}
	source.Next(p.inner.state[:])
	if err := p.SaveState(); err != nil {
		return nil, err
	}
	return p, nil
}

// SeedPersistentFromBytes creates a new persistent generator by refreshing
// an all-zero Barak-Halevi state with the given seed bytes, then saving it,
// matching the reference constructor: its refresh override always calls
// saveState immediately after the base refresh.
func SeedPersistentFromBytes(path string, seed []byte, autoSaveEvery int) *Persistent {
	p := &Persistent{path: path, autoSaveEvery: autoSaveEvery}
	p.inner.Refresh(seed)
	if err := p.SaveState(); err != nil {
		panic("prng: " + err.Error())
	}
	return p
}

// Refresh mixes input into the underlying state and persists it.
func (p *Persistent) Refresh(input []byte) {
	p.inner.Refresh(input)
	if err := p.SaveState(); err != nil {
		panic("prng: " + err.Error())
	}
}

// RefreshFrom draws n bytes from src and refreshes with them.
func (p *Persistent) RefreshFrom(src Generator, n int) {
	p.Refresh(src.NextString(n))
}

// Next extracts pseudo-random bytes, autosaving state every autoSaveEvery
// calls.
func (p *Persistent) Next(output []byte) {
	p.inner.Next(output)
	p.counter++
	if p.counter >= p.autoSaveEvery {
		if err := p.SaveState(); err != nil {
			panic("prng: " + err.Error())
		}
		p.counter = 0
	}
}

// NextString draws n pseudo-random bytes.
func (p *Persistent) NextString(n int) []byte {
	out := make([]byte, n)
	p.Next(out)
	return out
}

// NextInt draws an nBits-long integer with the top bit forced to one.
func (p *Persistent) NextInt(nBits int) *big.Int {
	return drawInt(p, nBits)
}

// NextIntMod draws an integer uniform modulo q.
func (p *Persistent) NextIntMod(q *big.Int) *big.Int {
	return drawIntMod(p, q)
}

// SaveState writes the current 32-byte state to path: open for writing
// (creating it 0600 if absent), take a shared advisory lock, truncate, write
// the state, unlock, close.
func (p *Persistent) SaveState() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return errs.New(errs.PrngStateError, p.path)
	}
	defer f.Close()

	if err := flockRetry(f, unix.LOCK_SH); err != nil {
		return errs.New(errs.PrngStateError, p.path)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	if err := f.Truncate(0); err != nil {
		return errs.New(errs.PrngStateError, p.path)
	}
	state := p.inner.State()
	n, err := f.WriteAt(state[:], 0)
	if err != nil || n != StateSize {
		return errs.New(errs.PrngStateError, p.path)
	}
	return nil
}

// flockRetry calls unix.Flock, retrying on EINTR as the reference
// implementation's busy-loop does.
func flockRetry(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if err == nil {
			return nil
		}
		if err == syscall.EINTR {
			continue
		}
		return err
	}
}

// readFull reads len(buf) bytes from f, retrying on EINTR, and returns
// however many bytes it actually collected before EOF.
func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		if n > 0 {
			total += n
		}
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			if total == len(buf) {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

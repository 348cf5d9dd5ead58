// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package evm defines the primitive value and tag types shared by the trace
// builder and the constraint system.
package evm

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// WordSize is the width of an EVM word in bytes.
const WordSize = 32

// Word is a 256-bit unsigned value stored big-endian.
type Word [WordSize]byte

// WordFromUint64 creates a Word holding v.
func WordFromUint64(v uint64) Word {
	return Word(uint256.NewInt(v).Bytes32())
}

// WordFromUint256 creates a Word holding v.
func WordFromUint256(v *uint256.Int) Word {
	return Word(v.Bytes32())
}

// WordFromLimbs reassembles a Word from 32 little-endian 8-bit limbs.
func WordFromLimbs(limbs [WordSize]uint8) Word {
	var w Word
	for i, limb := range limbs {
		w[WordSize-1-i] = limb
	}
	return w
}

// ParseWord decodes a hex string with or without 0x prefix. Odd-length
// strings are left padded; more than 32 bytes is an error.
func ParseWord(s string) (Word, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return Word{}, errors.New("empty hex word")
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hexutil.Decode("0x" + s)
	if err != nil {
		return Word{}, errors.Wrapf(err, "invalid hex word %q", s)
	}
	if len(raw) > WordSize {
		return Word{}, errors.Newf("hex word %q exceeds %d bytes", s, WordSize)
	}
	var w Word
	copy(w[WordSize-len(raw):], raw)
	return w, nil
}

// Uint256 returns the value as a fresh uint256.
func (w Word) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(w[:])
}

// Limbs splits the word into 32 little-endian 8-bit limbs (limb 0 is the
// least significant byte).
func (w Word) Limbs() [WordSize]uint8 {
	var limbs [WordSize]uint8
	for i := range limbs {
		limbs[i] = w[WordSize-1-i]
	}
	return limbs
}

// IsZero reports whether all bytes are zero.
func (w Word) IsZero() bool {
	return w == Word{}
}

// Compare orders words as unsigned integers.
func (w Word) Compare(o Word) int {
	return bytes.Compare(w[:], o[:])
}

func (w Word) String() string {
	return w.Uint256().Hex()
}

func (w Word) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Word) UnmarshalText(text []byte) error {
	parsed, err := ParseWord(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

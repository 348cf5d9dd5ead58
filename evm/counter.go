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

package evm

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// StackDepth is the maximum number of items on the EVM stack.
const StackDepth = 1024

// GlobalCounter is the position of an event in the total RW order of a trace.
type GlobalCounter uint64

func (gc GlobalCounter) String() string {
	return fmt.Sprintf("gc:%d", uint64(gc))
}

// ProgramCounter is the offset of an instruction in the executed code.
type ProgramCounter uint64

// StackAddress is a slot of the 1024-deep stack. The stack grows downwards
// from StackDepth, so the first pushed item lives at 1023.
type StackAddress int

// StackAddressOfTop returns the address of the top item of a stack holding
// size items.
func StackAddressOfTop(size int) StackAddress {
	return StackAddress(StackDepth - size)
}

func (a StackAddress) String() string {
	return fmt.Sprintf("stack:%d", int(a))
}

// MemoryAddress is a byte offset in memory.
type MemoryAddress uint64

func (a MemoryAddress) String() string {
	return fmt.Sprintf("0x%x", uint64(a))
}

// ParseMemoryAddress decodes a hex memory offset.
func ParseMemoryAddress(s string) (MemoryAddress, error) {
	w, err := ParseWord(s)
	if err != nil {
		return 0, err
	}
	v := w.Uint256()
	if !v.IsUint64() {
		return 0, errors.Newf("memory address %s out of range", w)
	}
	return MemoryAddress(v.Uint64()), nil
}

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
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/core/vm"
)

// OpcodeId identifies one EVM instruction. Values and mnemonics follow
// go-ethereum's core/vm opcode table.
type OpcodeId byte

const (
	STOP   = OpcodeId(vm.STOP)
	ADD    = OpcodeId(vm.ADD)
	MUL    = OpcodeId(vm.MUL)
	SUB    = OpcodeId(vm.SUB)
	POP    = OpcodeId(vm.POP)
	MLOAD  = OpcodeId(vm.MLOAD)
	MSTORE = OpcodeId(vm.MSTORE)
	SLOAD  = OpcodeId(vm.SLOAD)
	SSTORE = OpcodeId(vm.SSTORE)
	PUSH0  = OpcodeId(vm.PUSH0)
	PUSH1  = OpcodeId(vm.PUSH1)
	PUSH32 = OpcodeId(vm.PUSH32)
	DUP1   = OpcodeId(vm.DUP1)
	DUP16  = OpcodeId(vm.DUP16)
	SWAP1  = OpcodeId(vm.SWAP1)
	SWAP16 = OpcodeId(vm.SWAP16)
)

// ErrUnknownOpcode is returned for mnemonics go-ethereum does not define.
var ErrUnknownOpcode = errors.New("unknown opcode")

// ParseOpcode resolves a mnemonic such as "PUSH1" or "add".
func ParseOpcode(name string) (OpcodeId, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	op := vm.StringToOp(name)
	// StringToOp maps unknown names to STOP.
	if op.String() != name {
		return 0, errors.Wrapf(ErrUnknownOpcode, "%q", name)
	}
	return OpcodeId(op), nil
}

func (op OpcodeId) String() string {
	return vm.OpCode(op).String()
}

// IsPush reports whether op is PUSH0..PUSH32.
func (op OpcodeId) IsPush() bool {
	return op >= PUSH0 && op <= PUSH32
}

// PushBytes returns the immediate size of a PUSH instruction, 0 otherwise.
func (op OpcodeId) PushBytes() int {
	if op < PUSH1 || op > PUSH32 {
		return 0
	}
	return int(op-PUSH1) + 1
}

// DupN returns n for DUPn and 0 for every other opcode.
func (op OpcodeId) DupN() int {
	if op < DUP1 || op > DUP16 {
		return 0
	}
	return int(op-DUP1) + 1
}

// SwapN returns n for SWAPn and 0 for every other opcode.
func (op OpcodeId) SwapN() int {
	if op < SWAP1 || op > SWAP16 {
		return 0
	}
	return int(op-SWAP1) + 1
}

// Instruction is a decoded opcode together with its optional immediate.
type Instruction struct {
	Opcode    OpcodeId
	Immediate *Word
}

// NewInstruction creates an instruction; immediate may be nil.
func NewInstruction(op OpcodeId, immediate *Word) Instruction {
	return Instruction{Opcode: op, Immediate: immediate}
}

// ParseInstruction decodes "<MNEMONIC> [hex immediate]". PUSH1..PUSH32 need
// an immediate that fits their width; no other opcode may carry one.
func ParseInstruction(s string) (Instruction, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Instruction{}, errors.Newf("malformed instruction %q", s)
	}
	op, err := ParseOpcode(fields[0])
	if err != nil {
		return Instruction{}, err
	}
	size := op.PushBytes()
	if len(fields) == 1 {
		if size > 0 {
			return Instruction{}, errors.Newf("%v requires an immediate", op)
		}
		return NewInstruction(op, nil), nil
	}
	if size == 0 {
		return Instruction{}, errors.Newf("%v does not take an immediate", op)
	}
	imm, err := ParseWord(fields[1])
	if err != nil {
		return Instruction{}, err
	}
	if imm.Uint256().BitLen() > 8*size {
		return Instruction{}, errors.Newf("immediate %v does not fit %v", imm, op)
	}
	return NewInstruction(op, &imm), nil
}

func (i Instruction) String() string {
	if i.Immediate == nil {
		return i.Opcode.String()
	}
	return i.Opcode.String() + " " + i.Immediate.String()
}

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

package trace

import (
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/0xsoniclabs/zkwitness/operation"
	"github.com/ethereum/go-ethereum/common"
)

// ExecutionStep is one decoded instruction together with the pre-state it
// executed on and the operations it generated (its bus-mapping instance).
type ExecutionStep struct {
	memory      map[evm.MemoryAddress]evm.Word
	stack       []evm.Word
	storage     map[evm.Word]evm.Word
	contract    common.Address
	instruction evm.Instruction
	pc          evm.ProgramCounter
	gc          evm.GlobalCounter
	gas         uint64
	gasCost     uint64
	err         string

	busMappingInstance []operation.OperationRef
}

// NewExecutionStep creates a step from its snapshot. The stack holds the
// items before execution, top last.
func NewExecutionStep(
	memory map[evm.MemoryAddress]evm.Word,
	stack []evm.Word,
	instruction evm.Instruction,
	pc evm.ProgramCounter,
	gc evm.GlobalCounter,
) *ExecutionStep {
	return &ExecutionStep{
		memory:      memory,
		stack:       stack,
		instruction: instruction,
		pc:          pc,
		gc:          gc,
	}
}

// WithStorage attaches the storage snapshot of the executing contract.
func (s *ExecutionStep) WithStorage(contract common.Address, storage map[evm.Word]evm.Word) *ExecutionStep {
	s.contract = contract
	s.storage = storage
	return s
}

// WithGas attaches the gas left before the step and the step's cost.
func (s *ExecutionStep) WithGas(gas, gasCost uint64) *ExecutionStep {
	s.gas = gas
	s.gasCost = gasCost
	return s
}

// WithError attaches the error the interpreter reported for the step.
func (s *ExecutionStep) WithError(err string) *ExecutionStep {
	s.err = err
	return s
}

// Memory returns the sparse memory snapshot.
func (s *ExecutionStep) Memory() map[evm.MemoryAddress]evm.Word {
	return s.memory
}

// Stack returns the stack snapshot, top last.
func (s *ExecutionStep) Stack() []evm.Word {
	return s.stack
}

// Storage returns the sparse storage snapshot of Contract.
func (s *ExecutionStep) Storage() map[evm.Word]evm.Word {
	return s.storage
}

// Contract returns the address whose storage the step accesses.
func (s *ExecutionStep) Contract() common.Address {
	return s.contract
}

func (s *ExecutionStep) Instruction() evm.Instruction {
	return s.instruction
}

func (s *ExecutionStep) ProgramCounter() evm.ProgramCounter {
	return s.pc
}

func (s *ExecutionStep) GlobalCounter() evm.GlobalCounter {
	return s.gc
}

func (s *ExecutionStep) Gas() uint64 {
	return s.gas
}

func (s *ExecutionStep) GasCost() uint64 {
	return s.gasCost
}

// Error returns the interpreter error recorded for the step, if any.
func (s *ExecutionStep) Error() string {
	return s.err
}

// BusMappingInstance returns the references to the operations of the step in
// generation order.
func (s *ExecutionStep) BusMappingInstance() []operation.OperationRef {
	return s.busMappingInstance
}

// AddOperationRef appends a reference to the bus-mapping instance.
func (s *ExecutionStep) AddOperationRef(ref operation.OperationRef) {
	s.busMappingInstance = append(s.busMappingInstance, ref)
}

// stackItem returns the n-th item counted from the top (0 is the top) and its
// address.
func (s *ExecutionStep) stackItem(n int) (evm.StackAddress, evm.Word, error) {
	if n >= len(s.stack) {
		return 0, evm.Word{}, ErrStackUnderflow
	}
	return evm.StackAddressOfTop(len(s.stack)) + evm.StackAddress(n), s.stack[len(s.stack)-1-n], nil
}

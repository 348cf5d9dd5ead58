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

package evmcircuit

import (
	"fmt"

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/evm"
)

// Case is one mutually exclusive outcome of executing an opcode.
type Case uint8

const (
	Success Case = iota
	StackUnderflow
	OutOfGas
	numCases
)

func (c Case) String() string {
	switch c {
	case Success:
		return "Success"
	case StackUnderflow:
		return "StackUnderflow"
	case OutOfGas:
		return "OutOfGas"
	}
	return fmt.Sprintf("Case(%d)", uint8(c))
}

// IsValid reports whether c is a declared case.
func (c Case) IsValid() bool {
	return c < numCases
}

// CaseConfig declares the cells a gadget needs for one case.
type CaseConfig struct {
	Case       Case
	NumWord    int
	NumCell    int
	WillResume bool
}

// Resumption holds the cells of a case that ends the call frame.
type Resumption struct {
	GasAvailable circuit.Cell
}

// CaseAllocation is the slice of the free-cell pool bound to one case.
type CaseAllocation struct {
	Selector   circuit.Cell
	Cells      []circuit.Cell
	Words      []circuit.Word
	Resumption *Resumption
}

// CoreState is the interpreter state threaded from row to row during
// synthesis.
type CoreState struct {
	GlobalCounter  uint64
	ProgramCounter uint64
	StackPointer   uint64
	GasCounter     uint64
}

// OpExecutionState are the core-state cells of one row.
type OpExecutionState struct {
	Opcode         circuit.Cell
	GlobalCounter  circuit.Cell
	ProgramCounter circuit.Cell
	StackPointer   circuit.Cell
	GasCounter     circuit.Cell
}

// Next returns the same cells queried on the following row.
func (s OpExecutionState) Next() OpExecutionState {
	return OpExecutionState{
		Opcode:         s.Opcode.Next(),
		GlobalCounter:  s.GlobalCounter.Next(),
		ProgramCounter: s.ProgramCounter.Next(),
		StackPointer:   s.StackPointer.Next(),
		GasCounter:     s.GasCounter.Next(),
	}
}

// ExecutionStep is the witness of one step as the circuit consumes it.
// Values holds gadget specific limb arrays, for ADD/SUB the operands a, b,
// c and the carries.
type ExecutionStep struct {
	Opcode evm.OpcodeId
	Case   Case
	Values [][evm.WordSize]uint8
}

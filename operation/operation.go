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

// Package operation holds the RW operations recorded while building a trace
// and the container that orders them for the state proof.
package operation

import (
	"fmt"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/ethereum/go-ethereum/common"
)

// RW is the direction of an operation.
type RW bool

const (
	Read  RW = false
	Write RW = true
)

func (rw RW) String() string {
	if rw == Write {
		return "W"
	}
	return "R"
}

// IsWrite reports whether the operation writes.
func (rw RW) IsWrite() bool {
	return rw == Write
}

// Target is the class of state an operation touches.
type Target uint8

const (
	Stack Target = iota
	Memory
	Storage

	// NumTargets is the number of targets (must be last)
	NumTargets
)

// targetText translates targets to their labels
var targetText = map[Target]string{
	Stack:   "Stack",
	Memory:  "Memory",
	Storage: "Storage",
}

func (t Target) String() string {
	if s, ok := targetText[t]; ok {
		return s
	}
	return fmt.Sprintf("Target(%d)", uint8(t))
}

// Operation is one RW event. Implementations are immutable.
type Operation interface {
	Target() Target
	RW() RW
	GlobalCounter() evm.GlobalCounter
}

// StackOp reads or writes one stack slot.
type StackOp struct {
	rw      RW
	gc      evm.GlobalCounter
	address evm.StackAddress
	value   evm.Word
}

// NewStackOp creates a new stack operation.
func NewStackOp(rw RW, gc evm.GlobalCounter, address evm.StackAddress, value evm.Word) StackOp {
	return StackOp{rw: rw, gc: gc, address: address, value: value}
}

func (op StackOp) Target() Target                   { return Stack }
func (op StackOp) RW() RW                           { return op.rw }
func (op StackOp) GlobalCounter() evm.GlobalCounter { return op.gc }
func (op StackOp) Address() evm.StackAddress        { return op.address }
func (op StackOp) Value() evm.Word                  { return op.value }

func (op StackOp) String() string {
	return fmt.Sprintf("%v %v %v %v", op.rw, op.gc, op.address, op.value)
}

// MemoryOp reads or writes one memory word.
type MemoryOp struct {
	rw      RW
	gc      evm.GlobalCounter
	address evm.MemoryAddress
	value   evm.Word
}

// NewMemoryOp creates a new memory operation.
func NewMemoryOp(rw RW, gc evm.GlobalCounter, address evm.MemoryAddress, value evm.Word) MemoryOp {
	return MemoryOp{rw: rw, gc: gc, address: address, value: value}
}

func (op MemoryOp) Target() Target                   { return Memory }
func (op MemoryOp) RW() RW                           { return op.rw }
func (op MemoryOp) GlobalCounter() evm.GlobalCounter { return op.gc }
func (op MemoryOp) Address() evm.MemoryAddress       { return op.address }
func (op MemoryOp) Value() evm.Word                  { return op.value }

func (op MemoryOp) String() string {
	return fmt.Sprintf("%v %v mem:%v %v", op.rw, op.gc, op.address, op.value)
}

// StorageOp reads or writes one storage slot of a contract. ValuePrev holds
// the slot's value before the operation.
type StorageOp struct {
	rw        RW
	gc        evm.GlobalCounter
	address   common.Address
	key       evm.Word
	value     evm.Word
	valuePrev evm.Word
}

// NewStorageOp creates a new storage operation.
func NewStorageOp(rw RW, gc evm.GlobalCounter, address common.Address, key, value, valuePrev evm.Word) StorageOp {
	return StorageOp{rw: rw, gc: gc, address: address, key: key, value: value, valuePrev: valuePrev}
}

func (op StorageOp) Target() Target                   { return Storage }
func (op StorageOp) RW() RW                           { return op.rw }
func (op StorageOp) GlobalCounter() evm.GlobalCounter { return op.gc }
func (op StorageOp) Address() common.Address          { return op.address }
func (op StorageOp) Key() evm.Word                    { return op.key }
func (op StorageOp) Value() evm.Word                  { return op.value }
func (op StorageOp) ValuePrev() evm.Word              { return op.valuePrev }

func (op StorageOp) String() string {
	return fmt.Sprintf("%v %v %v[%v] %v (prev %v)", op.rw, op.gc, op.address, op.key, op.value, op.valuePrev)
}

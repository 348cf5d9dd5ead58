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
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// opGenerator derives the state operations of the step at stepIdx and inserts
// them into the trace container. It returns the number of operations emitted.
type opGenerator func(t *ExecutionTrace, stepIdx int) (int, error)

// generatorFor returns the generator for op. Opcodes without state accesses
// the witness tracks emit nothing.
func generatorFor(op evm.OpcodeId) opGenerator {
	switch {
	case op.IsPush():
		return genPush
	case op.DupN() > 0:
		return genDup
	case op.SwapN() > 0:
		return genSwap
	}
	switch op {
	case evm.POP:
		return genPop
	case evm.ADD, evm.SUB, evm.MUL:
		return genArith
	case evm.MLOAD:
		return genMload
	case evm.MSTORE:
		return genMstore
	case evm.SLOAD:
		return genSload
	case evm.SSTORE:
		return genSstore
	}
	return genNone
}

// opEmitter hands out consecutive global counters following the step's own.
type opEmitter struct {
	t       *ExecutionTrace
	stepIdx int
	gc      evm.GlobalCounter
	n       int
}

func newOpEmitter(t *ExecutionTrace, stepIdx int) *opEmitter {
	return &opEmitter{t: t, stepIdx: stepIdx, gc: t.steps[stepIdx].gc}
}

func (e *opEmitter) next() evm.GlobalCounter {
	e.n++
	return e.gc + evm.GlobalCounter(e.n)
}

func (e *opEmitter) stack(rw operation.RW, address evm.StackAddress, value evm.Word) {
	e.t.addOpToContainer(operation.NewStackOp(rw, e.next(), address, value), e.stepIdx)
}

func (e *opEmitter) memory(rw operation.RW, address evm.MemoryAddress, value evm.Word) {
	e.t.addOpToContainer(operation.NewMemoryOp(rw, e.next(), address, value), e.stepIdx)
}

func (e *opEmitter) storage(rw operation.RW, key, value, prev evm.Word) {
	step := e.t.steps[e.stepIdx]
	e.t.addOpToContainer(operation.NewStorageOp(rw, e.next(), step.contract, key, value, prev), e.stepIdx)
}

func genNone(*ExecutionTrace, int) (int, error) {
	return 0, nil
}

func genPush(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	if len(step.stack) >= evm.StackDepth {
		return 0, ErrStackOverflow
	}
	var value evm.Word
	if step.instruction.Immediate != nil {
		value = *step.instruction.Immediate
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Write, evm.StackAddressOfTop(len(step.stack))-1, value)
	return e.n, nil
}

func genPop(t *ExecutionTrace, stepIdx int) (int, error) {
	addr, value, err := t.steps[stepIdx].stackItem(0)
	if err != nil {
		return 0, err
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addr, value)
	return e.n, nil
}

func genArith(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	addrA, a, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	addrB, b, err := step.stackItem(1)
	if err != nil {
		return 0, err
	}
	var result uint256.Int
	switch step.instruction.Opcode {
	case evm.ADD:
		result.Add(a.Uint256(), b.Uint256())
	case evm.SUB:
		result.Sub(a.Uint256(), b.Uint256())
	case evm.MUL:
		result.Mul(a.Uint256(), b.Uint256())
	default:
		return 0, errors.AssertionFailedf("no arithmetic for %v", step.instruction.Opcode)
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addrA, a)
	e.stack(operation.Read, addrB, b)
	e.stack(operation.Write, addrB, evm.WordFromUint256(&result))
	return e.n, nil
}

func genDup(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	n := step.instruction.Opcode.DupN()
	addr, value, err := step.stackItem(n - 1)
	if err != nil {
		return 0, err
	}
	if len(step.stack) >= evm.StackDepth {
		return 0, ErrStackOverflow
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addr, value)
	e.stack(operation.Write, evm.StackAddressOfTop(len(step.stack))-1, value)
	return e.n, nil
}

func genSwap(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	n := step.instruction.Opcode.SwapN()
	addrTop, top, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	addrN, nth, err := step.stackItem(n)
	if err != nil {
		return 0, err
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addrTop, top)
	e.stack(operation.Read, addrN, nth)
	e.stack(operation.Write, addrTop, nth)
	e.stack(operation.Write, addrN, top)
	return e.n, nil
}

func memoryOffset(w evm.Word) (evm.MemoryAddress, error) {
	v := w.Uint256()
	if !v.IsUint64() {
		return 0, errors.Wrapf(ErrMemoryOutOfRange, "offset %v", w)
	}
	return evm.MemoryAddress(v.Uint64()), nil
}

func genMload(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	addr, offsetWord, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	offset, err := memoryOffset(offsetWord)
	if err != nil {
		return 0, err
	}
	value, ok := step.memory[offset]
	if !ok {
		return 0, errors.Wrapf(ErrMissingMemory, "offset %v", offset)
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addr, offsetWord)
	e.memory(operation.Read, offset, value)
	e.stack(operation.Write, addr, value)
	return e.n, nil
}

func genMstore(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	addrOffset, offsetWord, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	addrValue, value, err := step.stackItem(1)
	if err != nil {
		return 0, err
	}
	offset, err := memoryOffset(offsetWord)
	if err != nil {
		return 0, err
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addrOffset, offsetWord)
	e.stack(operation.Read, addrValue, value)
	e.memory(operation.Write, offset, value)
	return e.n, nil
}

func genSload(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	addr, key, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	value := step.storage[key]
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addr, key)
	e.storage(operation.Read, key, value, value)
	e.stack(operation.Write, addr, value)
	return e.n, nil
}

func genSstore(t *ExecutionTrace, stepIdx int) (int, error) {
	step := t.steps[stepIdx]
	addrKey, key, err := step.stackItem(0)
	if err != nil {
		return 0, err
	}
	addrValue, value, err := step.stackItem(1)
	if err != nil {
		return 0, err
	}
	e := newOpEmitter(t, stepIdx)
	e.stack(operation.Read, addrKey, key)
	e.stack(operation.Read, addrValue, value)
	e.storage(operation.Write, key, value, step.storage[key])
	return e.n, nil
}

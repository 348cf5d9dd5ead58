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
)

// ExecutionTrace is an ordered list of execution steps together with the
// container holding every state operation those steps produced.
type ExecutionTrace struct {
	steps          []*ExecutionStep
	blockConstants BlockConstants
	container      *operation.Container
}

// FromTraceBytes decodes a JSON trace and builds it. Any schema violation
// yields an error matching ErrParse.
func FromTraceBytes(raw []byte, bc BlockConstants) (*ExecutionTrace, error) {
	steps, err := parseSteps(raw)
	if err != nil {
		return nil, err
	}
	return NewExecutionTrace(steps, bc)
}

// NewExecutionTrace assigns global counters to steps and generates their
// operations.
func NewExecutionTrace(steps []*ExecutionStep, bc BlockConstants) (*ExecutionTrace, error) {
	t := &ExecutionTrace{
		steps:          steps,
		blockConstants: bc,
		container:      operation.NewContainer(),
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

// build walks the steps in order. Each step takes the current counter,
// its n operations take the following n counters and the next step starts
// after them. The freshly filled container replaces the current one only if
// every step succeeds.
func (t *ExecutionTrace) build() error {
	placeholder := t.container
	t.container = operation.NewContainer()
	gc := evm.GlobalCounter(0)
	for idx, step := range t.steps {
		step.gc = gc
		step.busMappingInstance = nil
		generate := generatorFor(step.instruction.Opcode)
		if step.err != "" {
			// the interpreter halted the frame before touching state
			generate = genNone
		}
		n, err := generate(t, idx)
		if err != nil {
			t.container = placeholder
			return errors.Wrapf(err, "step %d (%v at pc %d)", idx, step.instruction, step.pc)
		}
		gc += evm.GlobalCounter(n) + 1
	}
	return nil
}

// addOpToContainer inserts op and records the reference in the bus-mapping
// instance of the step at stepIdx.
func (t *ExecutionTrace) addOpToContainer(op operation.Operation, stepIdx int) operation.OperationRef {
	ref := t.container.Insert(op)
	t.steps[stepIdx].AddOperationRef(ref)
	return ref
}

func (t *ExecutionTrace) Steps() []*ExecutionStep {
	return t.steps
}

// Step returns the i-th step or nil if i is out of range.
func (t *ExecutionTrace) Step(i int) *ExecutionStep {
	if i < 0 || i >= len(t.steps) {
		return nil
	}
	return t.steps[i]
}

func (t *ExecutionTrace) BlockConstants() BlockConstants {
	return t.blockConstants
}

// Container exposes the operation container. Callers must not insert into it.
func (t *ExecutionTrace) Container() *operation.Container {
	return t.container
}

func (t *ExecutionTrace) SortedStackOps() []operation.StackOp {
	return t.container.SortedStack()
}

func (t *ExecutionTrace) SortedMemoryOps() []operation.MemoryOp {
	return t.container.SortedMemory()
}

func (t *ExecutionTrace) SortedStorageOps() []operation.StorageOp {
	return t.container.SortedStorage()
}

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
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/cockroachdb/errors"
)

// recordedCases maps interpreter error strings to cases.
var recordedCases = map[string]Case{
	"":                Success,
	"stack underflow": StackUnderflow,
	"out of gas":      OutOfGas,
}

// StepsFromTrace converts the steps of t handled by r into circuit steps.
// The returned core state is the state before the first converted step, with
// gas at 0; later core states follow from the gadget deltas alone.
func StepsFromTrace(t *trace.ExecutionTrace, r *Registry) ([]ExecutionStep, CoreState, error) {
	var (
		steps   []ExecutionStep
		initial CoreState
	)
	for i, step := range t.Steps() {
		op := step.Instruction().Opcode
		if _, found := r.Lookup(op); !found {
			continue
		}
		cs, found := recordedCases[step.Error()]
		if !found {
			return nil, CoreState{}, errors.Newf("step %d: no case for error %q", i, step.Error())
		}
		if len(steps) == 0 {
			initial = CoreState{
				GlobalCounter:  uint64(step.GlobalCounter()),
				ProgramCounter: uint64(step.ProgramCounter()),
				StackPointer:   uint64(evm.StackAddressOfTop(len(step.Stack()))),
			}
		}
		converted := ExecutionStep{Opcode: op, Case: cs}
		if cs == Success {
			values, err := successValues(step)
			if err != nil {
				return nil, CoreState{}, errors.Wrapf(err, "step %d", i)
			}
			converted.Values = values
		}
		steps = append(steps, converted)
	}
	return steps, initial, nil
}

func successValues(step *trace.ExecutionStep) ([][evm.WordSize]uint8, error) {
	stack := step.Stack()
	op := step.Instruction().Opcode
	switch op {
	case evm.ADD, evm.SUB:
		if len(stack) < 2 {
			return nil, errors.Wrapf(trace.ErrStackUnderflow, "%v with %d stack items", op, len(stack))
		}
		return AddStepValues(op, stack[len(stack)-1], stack[len(stack)-2])
	}
	return nil, errors.Wrapf(ErrMissingGadget, "no witness values for %v", op)
}

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
	"testing"

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvmCircuit_Layout(t *testing.T) {
	c, _ := newTestCircuit(t)
	columns := c.Columns()

	// q_step, 5 core state columns, 3 case selectors and the pool
	successWidth := 3*evm.WordSize + 33
	require.Len(t, columns, 1+5+3+successWidth)
	assert.Equal(t, circuit.Fixed, columns[0].Kind)
	for i, col := range columns {
		assert.Equal(t, i, col.Index)
		if i > 0 {
			assert.Equal(t, circuit.Advice, col.Kind)
		}
	}
}

func TestNewEvmCircuit_CasesShareThePool(t *testing.T) {
	c, g := newTestCircuit(t)
	assert.Equal(t, c.pool[0], g.success.a.Limbs[0])
	assert.Equal(t, c.pool[0], g.outOfGas.gasAvailable)
	assert.Equal(t, c.pool[3*evm.WordSize+evm.WordSize], g.success.swap)
}

func TestNewEvmCircuit_ConstructorFailure(t *testing.T) {
	r := NewRegistry()
	spec := AddGadgetSpec
	spec.Construct = func([]CaseAllocation) (OpGadget, error) {
		return nil, ErrAllocationMismatch
	}
	require.NoError(t, r.Register(spec))
	_, err := NewEvmCircuit(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocationMismatch))
}

func TestEvmCircuit_SynthesizeThreadsCoreState(t *testing.T) {
	c, _ := newTestCircuit(t)
	steps := []ExecutionStep{
		{Opcode: evm.ADD, Case: Success, Values: addValues()},
		{Opcode: evm.SUB, Case: Success, Values: addValues()},
	}
	initial := CoreState{GlobalCounter: 4, ProgramCounter: 7, StackPointer: 1020, GasCounter: 21}
	a := circuit.NewAssignment()
	require.NoError(t, c.Synthesize(a, steps, initial))
	require.NoError(t, circuit.NewMockProver(c.Constraints(), a).Verify())
	require.Equal(t, 3, a.Rows())

	want := map[circuit.Cell]uint64{
		c.state.GlobalCounter:  4 + 2*addGlobalDelta,
		c.state.ProgramCounter: 7 + 2,
		c.state.StackPointer:   1020 + 2*addStackDelta,
		c.state.GasCounter:     21 + 2*addGasCost,
		c.qStep:                0,
	}
	for cell, v := range want {
		got := a.Value(cell.Column, 2)
		exp := fr.NewElement(v)
		assert.True(t, got.Equal(&exp), "%v: got %s want %d", cell, got.String(), v)
	}
}

func TestEvmCircuit_BrokenThreadingFails(t *testing.T) {
	c, _ := newTestCircuit(t)
	steps := []ExecutionStep{
		{Opcode: evm.ADD, Case: Success, Values: addValues()},
		{Opcode: evm.ADD, Case: Success, Values: addValues()},
	}
	a := circuit.NewAssignment()
	require.NoError(t, c.Synthesize(a, steps, CoreState{}))
	require.NoError(t, c.state.GlobalCounter.AssignUint64(a, "gc", 1, 100))

	failures := circuit.NewMockProver(c.Constraints(), a).Failures()
	require.NotEmpty(t, failures)
	assert.Equal(t, "AddGadget success", failures[0].Constraint)
	assert.Equal(t, 0, failures[0].Row)
}

func TestEvmCircuit_GlobalSelectorConstraints(t *testing.T) {
	tests := []struct {
		name      string
		selectors []uint64
		wantFail  string
	}{
		{name: "none selected", selectors: []uint64{0, 0, 0}, wantFail: "exactly one case per step"},
		{name: "two selected", selectors: []uint64{0, 1, 1}, wantFail: "exactly one case per step"},
		{name: "non boolean", selectors: []uint64{0, 2, 0}, wantFail: "case selectors are boolean"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestCircuit(t)
			a := circuit.NewAssignment()
			require.NoError(t, c.AssignStepRow(a, 0, evm.ADD, StackUnderflow, CoreState{StackPointer: 1024}))
			for i, v := range test.selectors {
				require.NoError(t, c.selectors[i].AssignUint64(a, "selector", 0, v))
			}
			err := circuit.NewMockProver(c.Constraints(), a).Verify()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantFail)
		})
	}
}

func TestEvmCircuit_AssignStepRowErrors(t *testing.T) {
	c, _ := newTestCircuit(t)
	err := c.AssignStepRow(circuit.NewAssignment(), 0, evm.MUL, Success, CoreState{})
	assert.True(t, errors.Is(err, ErrMissingGadget))

	err = c.AssignStepRow(circuit.NewAssignment(), 0, evm.ADD, Case(7), CoreState{})
	assert.True(t, errors.HasAssertionFailure(err))
}

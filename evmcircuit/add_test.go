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
	"testing"

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func limbs(prefix ...uint8) [evm.WordSize]uint8 {
	var l [evm.WordSize]uint8
	copy(l[:], prefix)
	return l
}

func addValues() [][evm.WordSize]uint8 {
	return [][evm.WordSize]uint8{
		limbs(1, 2, 3),
		limbs(4, 5, 6),
		limbs(5, 7, 9),
		limbs(),
	}
}

func newTestCircuit(t *testing.T) (*EvmCircuit, *AddGadget) {
	t.Helper()
	c, err := NewEvmCircuit(DefaultRegistry())
	require.NoError(t, err)
	g, ok := c.byOpcode[evm.ADD].gadget.(*AddGadget)
	require.True(t, ok)
	return c, g
}

func synthesize(t *testing.T, c *EvmCircuit, steps []ExecutionStep) *circuit.Assignment {
	t.Helper()
	a := circuit.NewAssignment()
	require.NoError(t, c.Synthesize(a, steps, CoreState{StackPointer: 1022, GasCounter: 10}))
	return a
}

func TestAddGadget_SuccessSatisfiesConstraints(t *testing.T) {
	for _, op := range []evm.OpcodeId{evm.ADD, evm.SUB} {
		t.Run(op.String(), func(t *testing.T) {
			c, _ := newTestCircuit(t)
			a := synthesize(t, c, []ExecutionStep{{Opcode: op, Case: Success, Values: addValues()}})
			assert.NoError(t, circuit.NewMockProver(c.Constraints(), a).Verify())
		})
	}
}

func TestAddGadget_PerturbedWitnessFails(t *testing.T) {
	type target struct {
		name  string
		cells func(g *AddGadget) []circuit.Cell
	}
	targets := []target{
		{"a", func(g *AddGadget) []circuit.Cell { return g.success.a.Limbs[:] }},
		{"b", func(g *AddGadget) []circuit.Cell { return g.success.b.Limbs[:] }},
		{"c", func(g *AddGadget) []circuit.Cell { return g.success.c.Limbs[:] }},
		{"carry", func(g *AddGadget) []circuit.Cell { return g.success.carry[:] }},
	}
	for _, op := range []evm.OpcodeId{evm.ADD, evm.SUB} {
		for _, tgt := range targets {
			for i := 0; i < evm.WordSize; i++ {
				t.Run(fmt.Sprintf("%v %s[%d]", op, tgt.name, i), func(t *testing.T) {
					c, g := newTestCircuit(t)
					a := synthesize(t, c, []ExecutionStep{{Opcode: op, Case: Success, Values: addValues()}})

					cell := tgt.cells(g)[i]
					v := a.Value(cell.Column, 0)
					one := fr.One()
					v.Add(&v, &one)
					require.NoError(t, a.AssignAdvice("perturbed", cell.Column, 0, v))

					failures := circuit.NewMockProver(c.Constraints(), a).Failures()
					require.NotEmpty(t, failures)
					assert.Equal(t, "AddGadget success", failures[0].Constraint)
					assert.Equal(t, 0, failures[0].Row)
				})
			}
		}
	}
}

func TestAddGadget_WrongSwapFails(t *testing.T) {
	c, g := newTestCircuit(t)
	a := synthesize(t, c, []ExecutionStep{{Opcode: evm.SUB, Case: Success, Values: addValues()}})
	require.NoError(t, g.success.swap.AssignUint64(a, "swap", 0, 0))
	assert.Error(t, circuit.NewMockProver(c.Constraints(), a).Verify())
}

func TestAddGadget_StackUnderflowConstraint(t *testing.T) {
	tests := []struct {
		sp     uint64
		accept bool
	}{
		{sp: 1024, accept: true},
		{sp: 1023, accept: true},
		{sp: 1022, accept: false},
		{sp: 1000, accept: false},
		{sp: 0, accept: false},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("sp %d", test.sp), func(t *testing.T) {
			c, _ := newTestCircuit(t)
			a := circuit.NewAssignment()
			require.NoError(t, c.AssignStepRow(a, 0, evm.ADD, StackUnderflow, CoreState{StackPointer: test.sp}))
			err := circuit.NewMockProver(c.Constraints(), a).Verify()
			if test.accept {
				assert.NoError(t, err)
				return
			}
			var failure circuit.VerifyFailure
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, "AddGadget stack underflow", failure.Constraint)
		})
	}
}

func TestAddGadget_OutOfGasConstraint(t *testing.T) {
	const gasCounter = 10
	tests := []struct {
		shortfall uint64
		accept    bool
	}{
		{shortfall: 0, accept: false},
		{shortfall: 1, accept: true},
		{shortfall: 2, accept: true},
		{shortfall: 3, accept: true},
		{shortfall: 4, accept: false},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("shortfall %d", test.shortfall), func(t *testing.T) {
			c, g := newTestCircuit(t)
			a := circuit.NewAssignment()
			require.NoError(t, c.AssignStepRow(a, 0, evm.SUB, OutOfGas, CoreState{GasCounter: gasCounter}))
			gasAvailable := gasCounter + addGasCost - test.shortfall
			require.NoError(t, g.outOfGas.gasAvailable.AssignUint64(a, "gas available", 0, gasAvailable))
			err := circuit.NewMockProver(c.Constraints(), a).Verify()
			if test.accept {
				assert.NoError(t, err)
				return
			}
			var failure circuit.VerifyFailure
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, "AddGadget out of gas", failure.Constraint)
		})
	}
}

func TestAddGadget_OpcodeOutsideDomainFails(t *testing.T) {
	c, _ := newTestCircuit(t)
	a := circuit.NewAssignment()
	require.NoError(t, c.AssignStepRow(a, 0, evm.ADD, StackUnderflow, CoreState{StackPointer: 1024}))
	require.NoError(t, c.state.Opcode.AssignUint64(a, "opcode", 0, uint64(evm.MUL)))
	assert.Error(t, circuit.NewMockProver(c.Constraints(), a).Verify())
}

func TestAddGadget_AssignUnimplementedCasesIsAssertionFailure(t *testing.T) {
	for _, cs := range []Case{StackUnderflow, OutOfGas} {
		t.Run(cs.String(), func(t *testing.T) {
			c, _ := newTestCircuit(t)
			err := c.Synthesize(circuit.NewAssignment(), []ExecutionStep{{Opcode: evm.ADD, Case: cs}}, CoreState{})
			require.Error(t, err)
			assert.True(t, errors.HasAssertionFailure(err))
		})
	}
}

func TestAddGadget_AssignRejectsMalformedValues(t *testing.T) {
	c, _ := newTestCircuit(t)
	err := c.Synthesize(circuit.NewAssignment(), []ExecutionStep{{Opcode: evm.ADD, Case: Success, Values: addValues()[:2]}}, CoreState{})
	assert.Error(t, err)
}

func TestAddGadget_AssignPropagatesRegionErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	region := circuit.NewMockRegion(ctrl)
	mockErr := errors.New("region closed")

	c, _ := newTestCircuit(t)
	region.EXPECT().AssignFixed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	region.EXPECT().AssignAdvice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(mockErr)

	err := c.Synthesize(region, []ExecutionStep{{Opcode: evm.ADD, Case: Success, Values: addValues()}}, CoreState{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mockErr))
	assert.False(t, errors.HasAssertionFailure(err))
}

func TestNewAddGadget_AllocationMismatch(t *testing.T) {
	tests := []struct {
		name        string
		allocations []CaseAllocation
	}{
		{name: "too few cases", allocations: make([]CaseAllocation, 2)},
		{name: "empty success", allocations: make([]CaseAllocation, 3)},
		{name: "out of gas without resumption", allocations: []CaseAllocation{
			{Words: make([]circuit.Word, 3), Cells: make([]circuit.Cell, 33)}, {}, {},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewAddGadget(test.allocations)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAllocationMismatch))
		})
	}
}

func TestAddStepValues(t *testing.T) {
	maxWord := evm.WordFromUint256(new(uint256.Int).SetAllOne())

	values, err := AddStepValues(evm.ADD, maxWord, evm.WordFromUint64(1))
	require.NoError(t, err)
	assert.Equal(t, limbs(), values[2])
	for i, carry := range values[3] {
		assert.Equal(t, uint8(1), carry, "carry %d", i)
	}

	values, err = AddStepValues(evm.SUB, evm.WordFromUint64(0x0907), evm.WordFromUint64(0x0605))
	require.NoError(t, err)
	assert.Equal(t, limbs(2, 3), values[0])
	assert.Equal(t, limbs(5, 6), values[1])
	assert.Equal(t, limbs(7, 9), values[2])
	assert.Equal(t, limbs(), values[3])

	_, err = AddStepValues(evm.MUL, evm.Word{}, evm.Word{})
	assert.Error(t, err)
}

func TestAddGadget_SuccessDeclaresStackLookups(t *testing.T) {
	tests := []struct {
		op      evm.OpcodeId
		popped  func(g *AddGadget) circuit.Word
		written func(g *AddGadget) circuit.Word
	}{
		{evm.ADD, func(g *AddGadget) circuit.Word { return g.success.a }, func(g *AddGadget) circuit.Word { return g.success.c }},
		{evm.SUB, func(g *AddGadget) circuit.Word { return g.success.c }, func(g *AddGadget) circuit.Word { return g.success.a }},
	}
	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			c, g := newTestCircuit(t)
			a := synthesize(t, c, []ExecutionStep{{Opcode: test.op, Case: Success, Values: addValues()}})

			var success *circuit.Constraint
			for _, constraint := range g.Constraints(c.state, c.state.Next()) {
				if constraint.Name == "AddGadget success" {
					success = &constraint
				}
			}
			require.NotNil(t, success)
			require.Len(t, success.Lookups, 6)

			var active []circuit.StackLookup
			for _, lookup := range success.Lookups {
				stack, ok := lookup.(circuit.StackLookup)
				require.True(t, ok)
				assert.Equal(t, "stack", stack.Table())
				if enable := stack.Enable.Evaluate(a, 0); !enable.IsZero() {
					active = append(active, stack)
				}
			}
			require.Len(t, active, 3)
			assert.Equal(t, circuit.StackLookup{Enable: active[0].Enable, IndexOffset: 0, Value: test.popped(g)}, active[0])
			assert.Equal(t, circuit.StackLookup{Enable: active[1].Enable, IndexOffset: 1, Value: g.success.b}, active[1])
			assert.Equal(t, circuit.StackLookup{Enable: active[2].Enable, IndexOffset: 1, Value: test.written(g), IsWrite: true}, active[2])
		})
	}
}

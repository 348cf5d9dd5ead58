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
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsFromTrace_ProvesArithmetic(t *testing.T) {
	raw := []byte(`[
		{"pc": 0, "opcode": "PUSH1 2", "stack": [], "memory": {}},
		{"pc": 2, "opcode": "PUSH1 3", "stack": ["2"], "memory": {}},
		{"pc": 4, "opcode": "ADD", "stack": ["2", "3"], "memory": {}},
		{"pc": 5, "opcode": "PUSH1 1", "stack": ["5"], "memory": {}},
		{"pc": 7, "opcode": "SUB", "stack": ["5", "1"], "memory": {}}
	]`)
	tr, err := trace.FromTraceBytes(raw, trace.BlockConstants{})
	require.NoError(t, err)

	steps, initial, err := StepsFromTrace(tr, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, evm.ADD, steps[0].Opcode)
	assert.Equal(t, evm.SUB, steps[1].Opcode)
	assert.Equal(t, CoreState{GlobalCounter: 4, ProgramCounter: 4, StackPointer: 1022}, initial)

	c, err := NewEvmCircuit(DefaultRegistry())
	require.NoError(t, err)
	a := circuit.NewAssignment()
	require.NoError(t, c.Synthesize(a, steps, initial))
	assert.NoError(t, circuit.NewMockProver(c.Constraints(), a).Verify())
}

func TestStepsFromTrace_MapsRecordedErrors(t *testing.T) {
	raw := []byte(`[
		{"pc": 0, "opcode": "PUSH1 1", "stack": [], "memory": {}},
		{"pc": 2, "opcode": "ADD", "stack": ["1"], "memory": {}, "error": "stack underflow"},
		{"pc": 9, "opcode": "SUB", "stack": [], "memory": {}, "error": "out of gas"}
	]`)
	tr, err := trace.FromTraceBytes(raw, trace.BlockConstants{})
	require.NoError(t, err)

	steps, initial, err := StepsFromTrace(tr, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, StackUnderflow, steps[0].Case)
	assert.Equal(t, OutOfGas, steps[1].Case)
	assert.Nil(t, steps[0].Values)
	assert.Equal(t, uint64(1023), initial.StackPointer)
}

func TestStepsFromTrace_UnknownErrorFails(t *testing.T) {
	raw := []byte(`[{"pc": 0, "opcode": "ADD", "stack": ["1", "2"], "memory": {}, "error": "write protection"}]`)
	tr, err := trace.FromTraceBytes(raw, trace.BlockConstants{})
	require.NoError(t, err)

	_, _, err = StepsFromTrace(tr, DefaultRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write protection")
}

func TestStepsFromTrace_SkipsUnhandledOpcodes(t *testing.T) {
	raw := []byte(`[{"pc": 0, "opcode": "PUSH0", "stack": [], "memory": {}}]`)
	tr, err := trace.FromTraceBytes(raw, trace.BlockConstants{})
	require.NoError(t, err)

	steps, initial, err := StepsFromTrace(tr, DefaultRegistry())
	require.NoError(t, err)
	assert.Empty(t, steps)
	assert.Equal(t, CoreState{}, initial)
}

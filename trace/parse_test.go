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
	"testing"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTraceBytes_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{`},
		{name: "not an array", raw: `{"pc": 0}`},
		{name: "unknown mnemonic", raw: `[{"pc": 0, "opcode": "FOO", "stack": [], "memory": {}}]`},
		{name: "push without immediate", raw: `[{"pc": 0, "opcode": "PUSH1", "stack": [], "memory": {}}]`},
		{name: "immediate too wide", raw: `[{"pc": 0, "opcode": "PUSH1 1234", "stack": [], "memory": {}}]`},
		{name: "bad stack hex", raw: `[{"pc": 0, "opcode": "POP", "stack": ["zz"], "memory": {}}]`},
		{name: "stack word too long", raw: `[{"pc": 0, "opcode": "POP", "stack": ["` + longHex(33) + `"], "memory": {}}]`},
		{name: "bad memory address", raw: `[{"pc": 0, "opcode": "STOP", "stack": [], "memory": {"x": "0"}}]`},
		{name: "bad memory value", raw: `[{"pc": 0, "opcode": "STOP", "stack": [], "memory": {"0": "q"}}]`},
		{name: "bad storage key", raw: `[{"pc": 0, "opcode": "STOP", "stack": [], "memory": {}, "storage": {"g": "0"}}]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tr, err := FromTraceBytes([]byte(test.raw), BlockConstants{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse), "got %v", err)
			assert.Nil(t, tr)
		})
	}
}

func TestFromTraceBytes_StackDeeperThanLimit(t *testing.T) {
	stack := make([]byte, 0, 4*(evm.StackDepth+1))
	stack = append(stack, '[')
	for i := 0; i <= evm.StackDepth; i++ {
		if i > 0 {
			stack = append(stack, ',')
		}
		stack = append(stack, []byte(`"0"`)...)
	}
	stack = append(stack, ']')
	raw := `[{"pc": 0, "opcode": "STOP", "stack": ` + string(stack) + `, "memory": {}}]`
	_, err := FromTraceBytes([]byte(raw), BlockConstants{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestFromTraceBytes_RecordFields(t *testing.T) {
	raw := []byte(`[{"pc": 17, "opcode": "add", "stack": ["0x1", "2"], "memory": {"0x20": "ff"},
		"gas": 100, "gasCost": 3, "error": "out of gas"}]`)
	tr, err := FromTraceBytes(raw, BlockConstants{})
	require.NoError(t, err)
	step := tr.Step(0)
	require.NotNil(t, step)
	assert.Equal(t, evm.ProgramCounter(17), step.ProgramCounter())
	assert.Equal(t, evm.ADD, step.Instruction().Opcode)
	assert.Equal(t, []evm.Word{evm.WordFromUint64(1), evm.WordFromUint64(2)}, step.Stack())
	assert.Equal(t, evm.WordFromUint64(0xff), step.Memory()[evm.MemoryAddress(0x20)])
	assert.Equal(t, uint64(100), step.Gas())
	assert.Equal(t, uint64(3), step.GasCost())
	assert.Equal(t, "out of gas", step.Error())
	assert.Nil(t, step.Storage())
}

func longHex(bytes int) string {
	out := make([]byte, 2*bytes)
	for i := range out {
		out[i] = 'f'
	}
	return string(out)
}

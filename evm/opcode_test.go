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

package evm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcode_ParseOpcode(t *testing.T) {
	op, err := ParseOpcode("ADD")
	require.NoError(t, err)
	assert.Equal(t, OpcodeId(1), op)

	op, err = ParseOpcode("sub")
	require.NoError(t, err)
	assert.Equal(t, OpcodeId(3), op)

	op, err = ParseOpcode("STOP")
	require.NoError(t, err)
	assert.Equal(t, STOP, op)

	_, err = ParseOpcode("NOTANOPCODE")
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestOpcode_Families(t *testing.T) {
	assert.Equal(t, 1, PUSH1.PushBytes())
	assert.Equal(t, 32, PUSH32.PushBytes())
	assert.Equal(t, 0, PUSH0.PushBytes())
	assert.True(t, PUSH0.IsPush())
	assert.False(t, ADD.IsPush())
	assert.Equal(t, 1, DUP1.DupN())
	assert.Equal(t, 16, DUP16.DupN())
	assert.Equal(t, 0, ADD.DupN())
	assert.Equal(t, 2, (SWAP1 + 1).SwapN())
	assert.Equal(t, 0, POP.SwapN())
}

func TestInstruction_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Instruction
		wantErr bool
	}{
		{name: "push with immediate", input: "PUSH1 40", want: NewInstruction(PUSH1, ptr(WordFromUint64(0x40)))},
		{name: "plain opcode", input: "ADD", want: NewInstruction(ADD, nil)},
		{name: "push0", input: "PUSH0", want: NewInstruction(PUSH0, nil)},
		{name: "push missing immediate", input: "PUSH1", wantErr: true},
		{name: "immediate too wide", input: "PUSH1 100", wantErr: true},
		{name: "immediate on add", input: "ADD 1", wantErr: true},
		{name: "unknown", input: "FOO", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too many fields", input: "PUSH1 1 2", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseInstruction(test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestInstruction_String(t *testing.T) {
	assert.Equal(t, "PUSH1 0x40", NewInstruction(PUSH1, ptr(WordFromUint64(0x40))).String())
	assert.Equal(t, "SUB", NewInstruction(SUB, nil).String())
}

func ptr[T any](v T) *T {
	return &v
}

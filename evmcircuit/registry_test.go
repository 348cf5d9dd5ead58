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

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RejectsOverlappingGadgets(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(AddGadgetSpec))

	other := AddGadgetSpec
	other.Name = "OtherGadget"
	other.Opcodes = []evm.OpcodeId{evm.MUL, evm.SUB}
	err := r.Register(other)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlappingGadget))

	// a rejected spec leaves no trace
	_, found := r.Lookup(evm.MUL)
	assert.False(t, found)
	assert.Len(t, r.Specs(), 1)
}

func TestRegistry_ValidateReportsGaps(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Validate([]evm.OpcodeId{evm.ADD, evm.SUB}))

	err := r.Validate([]evm.OpcodeId{evm.ADD, evm.MUL, evm.POP})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingGadget))
	assert.Contains(t, err.Error(), "MUL")
	assert.Contains(t, err.Error(), "POP")
}

func TestRegistry_Opcodes(t *testing.T) {
	assert.Equal(t, []evm.OpcodeId{evm.ADD, evm.SUB}, DefaultRegistry().Opcodes())
}

func TestRegistry_RejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GadgetSpec)
	}{
		{name: "no constructor", modify: func(s *GadgetSpec) { s.Construct = nil }},
		{name: "no opcodes", modify: func(s *GadgetSpec) { s.Opcodes = nil }},
		{name: "unknown case", modify: func(s *GadgetSpec) {
			s.CaseConfigs = []CaseConfig{{Case: Success}, {Case: numCases}}
		}},
		{name: "duplicate case", modify: func(s *GadgetSpec) {
			s.CaseConfigs = []CaseConfig{{Case: Success}, {Case: Success}}
		}},
		{name: "missing success", modify: func(s *GadgetSpec) {
			s.CaseConfigs = []CaseConfig{{Case: OutOfGas, WillResume: true}}
		}},
		{name: "negative budget", modify: func(s *GadgetSpec) {
			s.CaseConfigs = []CaseConfig{{Case: Success, NumCell: -1}}
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			spec := AddGadgetSpec
			test.modify(&spec)
			assert.Error(t, NewRegistry().Register(spec))
		})
	}
}

func TestCase_String(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "StackUnderflow", StackUnderflow.String())
	assert.Equal(t, "OutOfGas", OutOfGas.String())
	assert.Equal(t, "Case(9)", Case(9).String())
	assert.False(t, Case(9).IsValid())
}

func TestRegistry_DefaultRegistryCoversScope(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Validate(InScopeOpcodes))
	for _, op := range InScopeOpcodes {
		_, found := r.Lookup(op)
		assert.True(t, found, "%v", op)
	}
}

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
	"slices"

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

var (
	// ErrOverlappingGadget is returned when two gadgets claim the same opcode.
	ErrOverlappingGadget = errors.New("opcode handled by more than one gadget")
	// ErrMissingGadget is returned for opcodes no gadget is responsible for.
	ErrMissingGadget = errors.New("no gadget for opcode")
	// ErrAllocationMismatch is returned when a constructor receives
	// allocations that do not match its case configs.
	ErrAllocationMismatch = errors.New("case allocation mismatch")
)

// OpGadget constrains and assigns the steps of one opcode family.
type OpGadget interface {
	ResponsibleOpcodes() []evm.OpcodeId
	CaseConfigs() []CaseConfig
	// Constraints returns one constraint per case, each selected by the
	// case selector.
	Constraints(curr, next OpExecutionState) []circuit.Constraint
	// Assign writes the witness of step at offset and advances core.
	Assign(region circuit.Region, offset int, core *CoreState, step *ExecutionStep) error
}

// GadgetConstructor binds a gadget to its allocations, one per case config
// in declaration order.
type GadgetConstructor func([]CaseAllocation) (OpGadget, error)

// GadgetSpec describes a gadget before any cells are allocated to it.
type GadgetSpec struct {
	Name        string
	Opcodes     []evm.OpcodeId
	CaseConfigs []CaseConfig
	Construct   GadgetConstructor
}

// Registry maps opcodes to the gadget responsible for them.
type Registry struct {
	specs    []GadgetSpec
	byOpcode map[evm.OpcodeId]int
}

func NewRegistry() *Registry {
	return &Registry{byOpcode: make(map[evm.OpcodeId]int)}
}

// InScopeOpcodes lists the opcodes the circuit must be able to constrain.
var InScopeOpcodes = []evm.OpcodeId{evm.ADD, evm.SUB}

// DefaultRegistry returns a registry holding every implemented gadget. It
// panics if an opcode of InScopeOpcodes is left without a gadget.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(AddGadgetSpec); err != nil {
		panic(err)
	}
	if err := r.Validate(InScopeOpcodes); err != nil {
		panic(err)
	}
	return r
}

// Register adds spec. It fails if an opcode is already taken or the case
// configs are invalid.
func (r *Registry) Register(spec GadgetSpec) error {
	if spec.Construct == nil {
		return errors.Newf("gadget %s has no constructor", spec.Name)
	}
	if len(spec.Opcodes) == 0 {
		return errors.Newf("gadget %s handles no opcode", spec.Name)
	}
	seen := make(map[Case]bool, len(spec.CaseConfigs))
	for _, cfg := range spec.CaseConfigs {
		if !cfg.Case.IsValid() {
			return errors.Newf("gadget %s declares unknown %v", spec.Name, cfg.Case)
		}
		if seen[cfg.Case] {
			return errors.Newf("gadget %s declares %v twice", spec.Name, cfg.Case)
		}
		if cfg.NumWord < 0 || cfg.NumCell < 0 {
			return errors.Newf("gadget %s declares a negative budget for %v", spec.Name, cfg.Case)
		}
		seen[cfg.Case] = true
	}
	if !seen[Success] {
		return errors.Newf("gadget %s does not declare %v", spec.Name, Success)
	}
	for _, op := range spec.Opcodes {
		if idx, found := r.byOpcode[op]; found {
			return errors.Wrapf(ErrOverlappingGadget, "%v claimed by %s and %s", op, r.specs[idx].Name, spec.Name)
		}
	}
	r.specs = append(r.specs, spec)
	for _, op := range spec.Opcodes {
		r.byOpcode[op] = len(r.specs) - 1
	}
	return nil
}

// Validate checks that every opcode in scope has a gadget.
func (r *Registry) Validate(inScope []evm.OpcodeId) error {
	var missing []evm.OpcodeId
	for _, op := range inScope {
		if _, found := r.byOpcode[op]; !found {
			missing = append(missing, op)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrMissingGadget, "%v", missing)
	}
	return nil
}

// Lookup returns the spec responsible for op.
func (r *Registry) Lookup(op evm.OpcodeId) (GadgetSpec, bool) {
	idx, found := r.byOpcode[op]
	if !found {
		return GadgetSpec{}, false
	}
	return r.specs[idx], true
}

// Opcodes returns the handled opcodes in ascending order.
func (r *Registry) Opcodes() []evm.OpcodeId {
	ops := maps.Keys(r.byOpcode)
	slices.Sort(ops)
	return ops
}

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []GadgetSpec {
	return slices.Clone(r.specs)
}

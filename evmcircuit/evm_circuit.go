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

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type boundGadget struct {
	name      string
	gadget    OpGadget
	cases     []CaseConfig
	selectors []circuit.Cell
}

// EvmCircuit lays out one row per execution step: q_step, the core state,
// one selector per declared case and a pool of free cells shared by all
// cases.
type EvmCircuit struct {
	qStep     circuit.Cell
	state     OpExecutionState
	gadgets   []*boundGadget
	byOpcode  map[evm.OpcodeId]*boundGadget
	selectors []circuit.Cell
	pool      []circuit.Cell
	columns   []circuit.Column
}

// NewEvmCircuit allocates columns for every gadget of registry and
// constructs the gadgets.
func NewEvmCircuit(registry *Registry) (*EvmCircuit, error) {
	c := &EvmCircuit{byOpcode: make(map[evm.OpcodeId]*boundGadget)}
	c.qStep = c.newCell(circuit.Fixed, "q_step")
	c.state = OpExecutionState{
		Opcode:         c.newCell(circuit.Advice, "opcode"),
		GlobalCounter:  c.newCell(circuit.Advice, "global_counter"),
		ProgramCounter: c.newCell(circuit.Advice, "program_counter"),
		StackPointer:   c.newCell(circuit.Advice, "stack_pointer"),
		GasCounter:     c.newCell(circuit.Advice, "gas_counter"),
	}

	specs := registry.Specs()
	width := 0
	for _, spec := range specs {
		bound := &boundGadget{name: spec.Name, cases: spec.CaseConfigs}
		for _, cfg := range spec.CaseConfigs {
			sel := c.newCell(circuit.Advice, fmt.Sprintf("%s %v", spec.Name, cfg.Case))
			bound.selectors = append(bound.selectors, sel)
			c.selectors = append(c.selectors, sel)
			width = max(width, caseWidth(cfg))
		}
		c.gadgets = append(c.gadgets, bound)
	}
	for i := 0; i < width; i++ {
		c.pool = append(c.pool, c.newCell(circuit.Advice, fmt.Sprintf("free[%d]", i)))
	}

	for i, spec := range specs {
		bound := c.gadgets[i]
		allocations := make([]CaseAllocation, len(spec.CaseConfigs))
		for j, cfg := range spec.CaseConfigs {
			alloc, err := c.allocate(bound.selectors[j], cfg)
			if err != nil {
				return nil, errors.Wrapf(err, "gadget %s", spec.Name)
			}
			allocations[j] = alloc
		}
		gadget, err := spec.Construct(allocations)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot construct gadget %s", spec.Name)
		}
		bound.gadget = gadget
		for _, op := range spec.Opcodes {
			c.byOpcode[op] = bound
		}
	}
	return c, nil
}

func caseWidth(cfg CaseConfig) int {
	width := cfg.NumWord*evm.WordSize + cfg.NumCell
	if cfg.WillResume {
		width++
	}
	return width
}

func (c *EvmCircuit) newCell(kind circuit.ColumnKind, name string) circuit.Cell {
	column := circuit.Column{Index: len(c.columns), Kind: kind, Name: name}
	c.columns = append(c.columns, column)
	return circuit.NewCell(column)
}

// allocate hands out pool cells from the start of the pool: words first,
// then plain cells, then the resumption.
func (c *EvmCircuit) allocate(selector circuit.Cell, cfg CaseConfig) (CaseAllocation, error) {
	if caseWidth(cfg) > len(c.pool) {
		return CaseAllocation{}, errors.Wrapf(ErrAllocationMismatch, "%v needs %d cells, pool has %d",
			cfg.Case, caseWidth(cfg), len(c.pool))
	}
	alloc := CaseAllocation{Selector: selector}
	next := 0
	for i := 0; i < cfg.NumWord; i++ {
		w, err := circuit.NewWord(c.pool[next : next+evm.WordSize])
		if err != nil {
			return CaseAllocation{}, err
		}
		alloc.Words = append(alloc.Words, w)
		next += evm.WordSize
	}
	alloc.Cells = append(alloc.Cells, c.pool[next:next+cfg.NumCell]...)
	next += cfg.NumCell
	if cfg.WillResume {
		alloc.Resumption = &Resumption{GasAvailable: c.pool[next]}
	}
	return alloc, nil
}

// Columns returns every column in allocation order.
func (c *EvmCircuit) Columns() []circuit.Column {
	return c.columns
}

// Constraints returns the gadget constraints gated by q_step and the global
// selector constraints.
func (c *EvmCircuit) Constraints() []circuit.Constraint {
	curr := c.state
	next := curr.Next()
	qStep := c.qStep.Expr()

	var constraints []circuit.Constraint
	for _, bound := range c.gadgets {
		for _, constraint := range bound.gadget.Constraints(curr, next) {
			constraint.Selector = circuit.Product(qStep, constraint.Selector)
			constraints = append(constraints, constraint)
		}
	}

	boolean := make([]circuit.Expression, len(c.selectors))
	sum := make([]circuit.Expression, len(c.selectors))
	for i, sel := range c.selectors {
		boolean[i] = circuit.IsBool(sel.Expr())
		sum[i] = sel.Expr()
	}
	constraints = append(constraints,
		circuit.Constraint{Name: "case selectors are boolean", Selector: qStep, Polys: boolean},
		circuit.Constraint{
			Name:     "exactly one case per step",
			Selector: qStep,
			Polys:    []circuit.Expression{circuit.Sub(circuit.Sum(sum...), circuit.Const(1))},
		},
	)
	return constraints
}

// Synthesize assigns steps to consecutive rows starting at 0, threading
// core from row to row. A padding row after the last step holds the final
// core state.
func (c *EvmCircuit) Synthesize(region circuit.Region, steps []ExecutionStep, initial CoreState) error {
	core := initial
	for i := range steps {
		step := &steps[i]
		if err := c.AssignStepRow(region, i, step.Opcode, step.Case, core); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
		if err := c.byOpcode[step.Opcode].gadget.Assign(region, i, &core, step); err != nil {
			return errors.Wrapf(err, "step %d (%v)", i, step.Opcode)
		}
	}
	if err := c.assignPadding(region, len(steps), core); err != nil {
		return errors.Wrap(err, "padding row")
	}
	return nil
}

// AssignStepRow writes q_step, the core state and the case selectors of
// one row.
func (c *EvmCircuit) AssignStepRow(region circuit.Region, offset int, op evm.OpcodeId, cs Case, core CoreState) error {
	bound, found := c.byOpcode[op]
	if !found {
		return errors.Wrapf(ErrMissingGadget, "%v", op)
	}
	chosen := -1
	for i, cfg := range bound.cases {
		if cfg.Case == cs {
			chosen = i
		}
	}
	if chosen < 0 {
		return errors.AssertionFailedf("%s does not declare %v", bound.name, cs)
	}
	if err := c.qStep.AssignUint64(region, "q_step", offset, 1); err != nil {
		return err
	}
	if err := c.assignCore(region, offset, uint64(op), core); err != nil {
		return err
	}
	for _, other := range c.gadgets {
		for i, sel := range other.selectors {
			var v fr.Element
			if other == bound && i == chosen {
				v.SetOne()
			}
			if err := sel.Assign(region, "case selector", offset, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *EvmCircuit) assignPadding(region circuit.Region, offset int, core CoreState) error {
	if err := c.qStep.AssignUint64(region, "q_step", offset, 0); err != nil {
		return err
	}
	return c.assignCore(region, offset, 0, core)
}

func (c *EvmCircuit) assignCore(region circuit.Region, offset int, opcode uint64, core CoreState) error {
	values := []struct {
		cell  circuit.Cell
		name  string
		value uint64
	}{
		{c.state.Opcode, "opcode", opcode},
		{c.state.GlobalCounter, "global_counter", core.GlobalCounter},
		{c.state.ProgramCounter, "program_counter", core.ProgramCounter},
		{c.state.StackPointer, "stack_pointer", core.StackPointer},
		{c.state.GasCounter, "gas_counter", core.GasCounter},
	}
	for _, v := range values {
		if err := v.cell.AssignUint64(region, v.name, offset, v.value); err != nil {
			return err
		}
	}
	return nil
}

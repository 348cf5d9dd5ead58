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
	"github.com/holiman/uint256"
)

var (
	addOpcodes     = []evm.OpcodeId{evm.ADD, evm.SUB}
	addCaseConfigs = []CaseConfig{
		{Case: Success, NumWord: 3, NumCell: 33}, // a, b, c; 32 carries and swap
		{Case: StackUnderflow, WillResume: true},
		{Case: OutOfGas, WillResume: true},
	}
)

// AddGadgetSpec registers AddGadget for ADD and SUB.
var AddGadgetSpec = GadgetSpec{
	Name:        "AddGadget",
	Opcodes:     addOpcodes,
	CaseConfigs: addCaseConfigs,
	Construct:   NewAddGadget,
}

const (
	addGasCost     = 3
	addStackDelta  = 1
	addGlobalDelta = 3
)

type addSuccessAllocation struct {
	selector circuit.Cell
	swap     circuit.Cell
	a        circuit.Word
	b        circuit.Word
	c        circuit.Word
	carry    [evm.WordSize]circuit.Cell
}

// AddGadget verifies ADD and SUB with the same relation a + b = c. For ADD
// the stack holds [a, b] before and [c] after, for SUB it holds [c, b] and
// [a]; the swap cell tells the two apart.
type AddGadget struct {
	success        addSuccessAllocation
	stackUnderflow circuit.Cell
	outOfGas       struct {
		selector     circuit.Cell
		gasAvailable circuit.Cell
	}
}

// NewAddGadget binds the gadget to allocations for Success, StackUnderflow
// and OutOfGas in that order.
func NewAddGadget(allocations []CaseAllocation) (OpGadget, error) {
	if len(allocations) != len(addCaseConfigs) {
		return nil, errors.Wrapf(ErrAllocationMismatch, "AddGadget needs %d allocations, got %d",
			len(addCaseConfigs), len(allocations))
	}
	success, underflow, oog := allocations[0], allocations[1], allocations[2]
	if len(success.Words) != 3 || len(success.Cells) != evm.WordSize+1 {
		return nil, errors.Wrapf(ErrAllocationMismatch, "AddGadget success needs 3 words and %d cells, got %d and %d",
			evm.WordSize+1, len(success.Words), len(success.Cells))
	}
	if oog.Resumption == nil {
		return nil, errors.Wrap(ErrAllocationMismatch, "AddGadget out of gas needs a resumption")
	}
	g := &AddGadget{}
	g.success.selector = success.Selector
	g.success.a, g.success.b, g.success.c = success.Words[0], success.Words[1], success.Words[2]
	copy(g.success.carry[:], success.Cells[:evm.WordSize])
	g.success.swap = success.Cells[evm.WordSize]
	g.stackUnderflow = underflow.Selector
	g.outOfGas.selector = oog.Selector
	g.outOfGas.gasAvailable = oog.Resumption.GasAvailable
	return g, nil
}

func (g *AddGadget) ResponsibleOpcodes() []evm.OpcodeId {
	return addOpcodes
}

func (g *AddGadget) CaseConfigs() []CaseConfig {
	return addCaseConfigs
}

func (g *AddGadget) Constraints(curr, next OpExecutionState) []circuit.Constraint {
	opcode := curr.Opcode.Expr()
	add, sub := circuit.Const(uint64(evm.ADD)), circuit.Const(uint64(evm.SUB))
	opcodeDomain := circuit.Product(circuit.Sub(opcode, add), circuit.Sub(opcode, sub))

	return []circuit.Constraint{
		g.successConstraint(curr, next, opcodeDomain),
		{
			Name:     "AddGadget stack underflow",
			Selector: g.stackUnderflow.Expr(),
			Polys: []circuit.Expression{
				opcodeDomain,
				circuit.OneOf(curr.StackPointer.Expr(), evm.StackDepth, evm.StackDepth-1),
			},
		},
		{
			Name:     "AddGadget out of gas",
			Selector: g.outOfGas.selector.Expr(),
			Polys: []circuit.Expression{
				opcodeDomain,
				circuit.OneOf(g.gasShortfall(curr), 1, 2, 3),
			},
		},
	}
}

// gasShortfall is the gas the step needs beyond what is available.
func (g *AddGadget) gasShortfall(curr OpExecutionState) circuit.Expression {
	return circuit.Sub(
		circuit.Sum(curr.GasCounter.Expr(), circuit.Const(addGasCost)),
		g.outOfGas.gasAvailable.Expr(),
	)
}

func (g *AddGadget) successConstraint(curr, next OpExecutionState, opcodeDomain circuit.Expression) circuit.Constraint {
	s := &g.success
	opcode := curr.Opcode.Expr()
	swap := s.swap.Expr()
	noSwap := circuit.Sub(circuit.Const(1), swap)

	delta := func(n, c circuit.Cell, d uint64) circuit.Expression {
		return circuit.Sub(n.Expr(), circuit.Sum(c.Expr(), circuit.Const(d)))
	}
	polys := []circuit.Expression{
		opcodeDomain,
		delta(next.GlobalCounter, curr.GlobalCounter, addGlobalDelta),
		delta(next.StackPointer, curr.StackPointer, addStackDelta),
		delta(next.ProgramCounter, curr.ProgramCounter, 1),
		delta(next.GasCounter, curr.GasCounter, addGasCost),
		circuit.Product(swap, noSwap),
		circuit.Product(swap, circuit.Sub(opcode, circuit.Const(uint64(evm.SUB)))),
		circuit.Product(noSwap, circuit.Sub(opcode, circuit.Const(uint64(evm.ADD)))),
	}
	// carry[i] * 256 + c[i] = a[i] + b[i] + carry[i-1]
	for i := 0; i < evm.WordSize; i++ {
		rhs := []circuit.Expression{s.a.Expr(i), s.b.Expr(i)}
		if i > 0 {
			rhs = append(rhs, s.carry[i-1].Expr())
		}
		polys = append(polys, circuit.Sub(
			circuit.Sum(circuit.Scale(s.carry[i].Expr(), 256), s.c.Expr(i)),
			circuit.Sum(rhs...),
		))
	}
	for i := 0; i < evm.WordSize; i++ {
		polys = append(polys, circuit.IsBool(s.carry[i].Expr()))
	}
	return circuit.Constraint{
		Name:     "AddGadget success",
		Selector: s.selector.Expr(),
		Polys:    polys,
		Lookups:  g.stackLookups(noSwap, swap),
	}
}

// stackLookups binds the operands to the stack witness. ADD pops a and b
// and pushes c; SUB pops c and b and pushes a.
// TODO: check these against the sorted stack witness in MockProver.
func (g *AddGadget) stackLookups(noSwap, swap circuit.Expression) []circuit.Lookup {
	s := &g.success
	return []circuit.Lookup{
		circuit.StackLookup{Enable: noSwap, IndexOffset: 0, Value: s.a},
		circuit.StackLookup{Enable: noSwap, IndexOffset: 1, Value: s.b},
		circuit.StackLookup{Enable: noSwap, IndexOffset: 1, Value: s.c, IsWrite: true},
		circuit.StackLookup{Enable: swap, IndexOffset: 0, Value: s.c},
		circuit.StackLookup{Enable: swap, IndexOffset: 1, Value: s.b},
		circuit.StackLookup{Enable: swap, IndexOffset: 1, Value: s.a, IsWrite: true},
	}
}

func (g *AddGadget) Assign(region circuit.Region, offset int, core *CoreState, step *ExecutionStep) error {
	switch step.Case {
	case Success:
		return g.assignSuccess(region, offset, core, step)
	case StackUnderflow, OutOfGas:
		return errors.AssertionFailedf("AddGadget: witness assignment for %v is not implemented", step.Case)
	}
	return errors.AssertionFailedf("AddGadget: unexpected %v", step.Case)
}

func (g *AddGadget) assignSuccess(region circuit.Region, offset int, core *CoreState, step *ExecutionStep) error {
	if len(step.Values) != 4 {
		return errors.Newf("AddGadget: success step needs 4 value arrays, got %d", len(step.Values))
	}
	s := &g.success
	swap := uint64(0)
	if step.Opcode == evm.SUB {
		swap = 1
	}
	if err := s.swap.AssignUint64(region, "add swap", offset, swap); err != nil {
		return err
	}
	for i, w := range []circuit.Word{s.a, s.b, s.c} {
		name := fmt.Sprintf("add %c", 'a'+i)
		if err := w.Assign(region, name, offset, evm.WordFromLimbs(step.Values[i])); err != nil {
			return err
		}
	}
	for i, carry := range step.Values[3] {
		if err := s.carry[i].Assign(region, fmt.Sprintf("add carry[%d]", i), offset, fr.NewElement(uint64(carry))); err != nil {
			return err
		}
	}
	core.GlobalCounter += addGlobalDelta
	core.ProgramCounter += 1
	core.StackPointer += addStackDelta
	core.GasCounter += addGasCost
	return nil
}

// AddStepValues computes the limb arrays of an ADD or SUB success step from
// the two stack operands, top first.
func AddStepValues(op evm.OpcodeId, top, second evm.Word) ([][evm.WordSize]uint8, error) {
	var a, b, c evm.Word
	switch op {
	case evm.ADD:
		a, b = top, second
		c = evm.WordFromUint256(new(uint256.Int).Add(a.Uint256(), b.Uint256()))
	case evm.SUB:
		c, b = top, second
		a = evm.WordFromUint256(new(uint256.Int).Sub(c.Uint256(), b.Uint256()))
	default:
		return nil, errors.Wrapf(ErrMissingGadget, "AddGadget does not handle %v", op)
	}
	al, bl, cl := a.Limbs(), b.Limbs(), c.Limbs()
	var carries [evm.WordSize]uint8
	carry := uint16(0)
	for i := 0; i < evm.WordSize; i++ {
		sum := uint16(al[i]) + uint16(bl[i]) + carry
		carry = sum >> 8
		carries[i] = uint8(carry)
	}
	return [][evm.WordSize]uint8{al, bl, cl, carries}, nil
}

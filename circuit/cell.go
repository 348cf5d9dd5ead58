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

package circuit

import (
	"fmt"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ColumnKind distinguishes witness columns from columns fixed at setup.
type ColumnKind uint8

const (
	Advice ColumnKind = iota
	Fixed
)

func (k ColumnKind) String() string {
	if k == Fixed {
		return "fixed"
	}
	return "advice"
}

// Column is one column of the constraint system.
type Column struct {
	Index int
	Kind  ColumnKind
	Name  string
}

func (c Column) String() string {
	return fmt.Sprintf("%s[%d]:%s", c.Kind, c.Index, c.Name)
}

// Cell is a column queried at a row relative to the current step row.
type Cell struct {
	Column   Column
	Rotation int
}

// NewCell returns the cell of column on the current row.
func NewCell(column Column) Cell {
	return Cell{Column: column}
}

// Next returns the same column on the following row.
func (c Cell) Next() Cell {
	return Cell{Column: c.Column, Rotation: c.Rotation + 1}
}

// Expr returns the query of the cell.
func (c Cell) Expr() Expression {
	return Query(c)
}

// Assign writes value into the cell for the step at offset.
func (c Cell) Assign(region Region, annotation string, offset int, value fr.Element) error {
	row := offset + c.Rotation
	switch c.Column.Kind {
	case Fixed:
		return region.AssignFixed(annotation, c.Column, row, value)
	default:
		return region.AssignAdvice(annotation, c.Column, row, value)
	}
}

// AssignUint64 is Assign for small values.
func (c Cell) AssignUint64(region Region, annotation string, offset int, value uint64) error {
	return c.Assign(region, annotation, offset, fr.NewElement(value))
}

func (c Cell) String() string {
	if c.Rotation == 0 {
		return c.Column.String()
	}
	return fmt.Sprintf("%v@%+d", c.Column, c.Rotation)
}

// Word holds a 256-bit value as 32 cells of 8-bit little-endian limbs.
type Word struct {
	Limbs [evm.WordSize]Cell
}

// NewWord groups 32 cells into a word, limb 0 first.
func NewWord(cells []Cell) (Word, error) {
	var w Word
	if len(cells) != evm.WordSize {
		return w, errors.Newf("word needs %d cells, got %d", evm.WordSize, len(cells))
	}
	copy(w.Limbs[:], cells)
	return w, nil
}

// Expr returns the query of limb i.
func (w Word) Expr(i int) Expression {
	return w.Limbs[i].Expr()
}

// Assign writes the limbs of value.
func (w Word) Assign(region Region, annotation string, offset int, value evm.Word) error {
	for i, limb := range value.Limbs() {
		if err := w.Limbs[i].AssignUint64(region, fmt.Sprintf("%s[%d]", annotation, i), offset, uint64(limb)); err != nil {
			return err
		}
	}
	return nil
}

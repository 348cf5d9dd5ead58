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

//go:generate mockgen -source region.go -destination region_mock.go -package circuit

import (
	"github.com/cockroachdb/errors"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Region is the part of the proving backend steps are assigned into.
type Region interface {
	// AssignAdvice writes a witness value at offset of an advice column.
	AssignAdvice(annotation string, column Column, offset int, value fr.Element) error
	// AssignFixed writes a value at offset of a fixed column.
	AssignFixed(annotation string, column Column, offset int, value fr.Element) error
}

// ErrColumnKind is returned when a value is assigned through the wrong kind
// of column.
var ErrColumnKind = errors.New("column kind mismatch")

// Assignment is an in-memory Region. Unassigned cells read as zero.
type Assignment struct {
	values map[Column]map[int]fr.Element
	rows   int
}

func NewAssignment() *Assignment {
	return &Assignment{values: make(map[Column]map[int]fr.Element)}
}

func (a *Assignment) AssignAdvice(annotation string, column Column, offset int, value fr.Element) error {
	if column.Kind != Advice {
		return errors.Wrapf(ErrColumnKind, "%s: %v is not an advice column", annotation, column)
	}
	return a.assign(annotation, column, offset, value)
}

func (a *Assignment) AssignFixed(annotation string, column Column, offset int, value fr.Element) error {
	if column.Kind != Fixed {
		return errors.Wrapf(ErrColumnKind, "%s: %v is not a fixed column", annotation, column)
	}
	return a.assign(annotation, column, offset, value)
}

func (a *Assignment) assign(annotation string, column Column, offset int, value fr.Element) error {
	if offset < 0 {
		return errors.Newf("%s: negative offset %d", annotation, offset)
	}
	col, ok := a.values[column]
	if !ok {
		col = make(map[int]fr.Element)
		a.values[column] = col
	}
	col[offset] = value
	if offset >= a.rows {
		a.rows = offset + 1
	}
	return nil
}

// Value returns the value at row of column, zero if unassigned.
func (a *Assignment) Value(column Column, row int) fr.Element {
	return a.values[column][row]
}

// Rows returns one past the highest assigned row.
func (a *Assignment) Rows() int {
	return a.rows
}

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
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Values resolves cell queries during evaluation.
type Values interface {
	Value(column Column, row int) fr.Element
}

// Expression is a polynomial over cell queries and constants in the BN254
// scalar field.
type Expression interface {
	// Evaluate computes the expression with the current row at row.
	Evaluate(values Values, row int) fr.Element
	String() string
}

type constant struct {
	value fr.Element
}

// Const returns the constant v.
func Const(v uint64) Expression {
	return constant{value: fr.NewElement(v)}
}

// ConstElement returns the constant v.
func ConstElement(v fr.Element) Expression {
	return constant{value: v}
}

func (c constant) Evaluate(Values, int) fr.Element {
	return c.value
}

func (c constant) String() string {
	return c.value.String()
}

type query struct {
	cell Cell
}

// Query returns the value of cell.
func Query(cell Cell) Expression {
	return query{cell: cell}
}

func (q query) Evaluate(values Values, row int) fr.Element {
	return values.Value(q.cell.Column, row+q.cell.Rotation)
}

func (q query) String() string {
	return q.cell.String()
}

type sum struct {
	terms []Expression
}

func (s sum) Evaluate(values Values, row int) fr.Element {
	var res fr.Element
	for _, term := range s.terms {
		v := term.Evaluate(values, row)
		res.Add(&res, &v)
	}
	return res
}

func (s sum) String() string {
	return join(s.terms, " + ")
}

type product struct {
	factors []Expression
}

func (p product) Evaluate(values Values, row int) fr.Element {
	res := fr.One()
	for _, factor := range p.factors {
		v := factor.Evaluate(values, row)
		res.Mul(&res, &v)
	}
	return res
}

func (p product) String() string {
	return join(p.factors, " * ")
}

type negated struct {
	inner Expression
}

func (n negated) Evaluate(values Values, row int) fr.Element {
	v := n.inner.Evaluate(values, row)
	var res fr.Element
	res.Neg(&v)
	return res
}

func (n negated) String() string {
	return "-(" + n.inner.String() + ")"
}

// Sum adds terms; an empty sum is zero.
func Sum(terms ...Expression) Expression {
	return sum{terms: terms}
}

// Product multiplies factors; an empty product is one.
func Product(factors ...Expression) Expression {
	return product{factors: factors}
}

// Neg negates e.
func Neg(e Expression) Expression {
	return negated{inner: e}
}

// Sub returns a - b.
func Sub(a, b Expression) Expression {
	return Sum(a, Neg(b))
}

// Scale returns k * e.
func Scale(e Expression, k uint64) Expression {
	return Product(Const(k), e)
}

// IsBool returns e * (1 - e), zero iff e is 0 or 1.
func IsBool(e Expression) Expression {
	return Product(e, Sub(Const(1), e))
}

// OneOf returns (e - v0)(e - v1)..., zero iff e equals one of values.
func OneOf(e Expression, values ...uint64) Expression {
	factors := make([]Expression, len(values))
	for i, v := range values {
		factors[i] = Sub(e, Const(v))
	}
	return Product(factors...)
}

func join(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, sep))
}

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

	"github.com/cockroachdb/errors"
)

// VerifyFailure names a polynomial that did not vanish.
type VerifyFailure struct {
	Constraint string
	Poly       int
	Row        int
	Expr       string
}

func (f VerifyFailure) Error() string {
	return fmt.Sprintf("constraint %q poly %d not satisfied at row %d", f.Constraint, f.Poly, f.Row)
}

// MockProver evaluates constraints against an assignment without producing
// a proof.
type MockProver struct {
	constraints []Constraint
	assignment  *Assignment
}

func NewMockProver(constraints []Constraint, assignment *Assignment) *MockProver {
	return &MockProver{constraints: constraints, assignment: assignment}
}

// Failures returns every unsatisfied polynomial in row order.
func (p *MockProver) Failures() []VerifyFailure {
	var failures []VerifyFailure
	for row := 0; row < p.assignment.Rows(); row++ {
		for _, c := range p.constraints {
			sel := c.Selector.Evaluate(p.assignment, row)
			if sel.IsZero() {
				continue
			}
			for i, poly := range c.Polys {
				v := poly.Evaluate(p.assignment, row)
				if !v.IsZero() {
					failures = append(failures, VerifyFailure{Constraint: c.Name, Poly: i, Row: row, Expr: poly.String()})
				}
			}
		}
	}
	return failures
}

// Verify returns the first failure, or nil if all constraints hold.
func (p *MockProver) Verify() error {
	failures := p.Failures()
	if len(failures) == 0 {
		return nil
	}
	err := error(failures[0])
	if len(failures) > 1 {
		err = errors.WithDetailf(err, "%d more failures", len(failures)-1)
	}
	return err
}

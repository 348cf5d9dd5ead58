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

// Lookup is an argument binding cells to an external table. Lookups are
// declared alongside polynomial constraints; MockProver does not evaluate
// them.
type Lookup interface {
	Table() string
}

// StackLookup ties a word to the stack witness at the stack pointer plus
// IndexOffset. A nil Enable means the lookup is always active; otherwise it
// applies on rows where Enable is non-zero.
type StackLookup struct {
	Enable      Expression
	IndexOffset int
	Value       Word
	IsWrite     bool
}

func (StackLookup) Table() string {
	return "stack"
}

// Constraint is a named group of polynomials that must vanish on every row
// where Selector is non-zero.
type Constraint struct {
	Name     string
	Selector Expression
	Polys    []Expression
	Lookups  []Lookup
}

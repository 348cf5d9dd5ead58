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

package trace

import "github.com/cockroachdb/errors"

var (
	// ErrParse marks any schema violation of the input trace.
	ErrParse = errors.New("trace parse error")
	// ErrStackUnderflow is returned when a step reads more items than the stack holds.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned when a step pushes onto a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrMissingMemory is returned when a memory read hits an offset absent
	// from the step's memory snapshot.
	ErrMissingMemory = errors.New("memory word missing from snapshot")
	// ErrMemoryOutOfRange is returned for memory offsets that do not fit 64 bits.
	ErrMemoryOutOfRange = errors.New("memory offset out of range")
)

func parseErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrParse)
}

func wrapParseError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrParse)
}

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

package operation

import (
	"fmt"

	"github.com/0xsoniclabs/zkwitness/evm"
)

// ConsistencyError reports the first operation breaking the read-after-write
// rule of a sorted witness.
type ConsistencyError struct {
	Target   Target
	Address  string
	Counter  evm.GlobalCounter
	Expected evm.Word
	Got      evm.Word
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent %v witness at %s (gc %d): expected %v, got %v",
		e.Target, e.Address, uint64(e.Counter), e.Expected, e.Got)
}

// CheckConsistency verifies every sorted projection: a read returns the value
// of the preceding write at the same address, or zero for stack and memory
// when there is none. For storage the first access fixes the persisted value
// and every write must name the current value as ValuePrev.
func (c *Container) CheckConsistency() error {
	if err := checkStack(c.SortedStack()); err != nil {
		return err
	}
	if err := checkMemory(c.SortedMemory()); err != nil {
		return err
	}
	return checkStorage(c.SortedStorage())
}

func checkStack(ops []StackOp) error {
	var current evm.Word
	for i, op := range ops {
		if i == 0 || ops[i-1].address != op.address {
			current = evm.Word{}
		}
		if op.rw.IsWrite() {
			current = op.value
			continue
		}
		if op.value != current {
			return &ConsistencyError{Target: Stack, Address: op.address.String(), Counter: op.gc, Expected: current, Got: op.value}
		}
	}
	return nil
}

func checkMemory(ops []MemoryOp) error {
	var current evm.Word
	for i, op := range ops {
		if i == 0 || ops[i-1].address != op.address {
			current = evm.Word{}
		}
		if op.rw.IsWrite() {
			current = op.value
			continue
		}
		if op.value != current {
			return &ConsistencyError{Target: Memory, Address: op.address.String(), Counter: op.gc, Expected: current, Got: op.value}
		}
	}
	return nil
}

func checkStorage(ops []StorageOp) error {
	var current evm.Word
	for i, op := range ops {
		slot := fmt.Sprintf("%v[%v]", op.address, op.key)
		if i == 0 || compareSlot(ops[i-1], op) != 0 {
			// persisted value of the slot
			if op.rw.IsWrite() {
				current = op.valuePrev
			} else {
				current = op.value
			}
		}
		if op.rw.IsWrite() {
			if op.valuePrev != current {
				return &ConsistencyError{Target: Storage, Address: slot, Counter: op.gc, Expected: current, Got: op.valuePrev}
			}
			current = op.value
			continue
		}
		if op.value != current {
			return &ConsistencyError{Target: Storage, Address: slot, Counter: op.gc, Expected: current, Got: op.value}
		}
	}
	return nil
}

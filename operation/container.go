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
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/cockroachdb/errors"
)

// OperationRef locates an operation inside a Container. It stays valid for
// the lifetime of the container since arenas are append-only.
type OperationRef struct {
	target Target
	index  int
}

// NewOperationRef creates a locator for the index-th operation of target.
func NewOperationRef(target Target, index int) OperationRef {
	return OperationRef{target: target, index: index}
}

// Target returns the arena the reference points into.
func (r OperationRef) Target() Target {
	return r.target
}

// Index returns the position inside the arena.
func (r OperationRef) Index() int {
	return r.index
}

func (r OperationRef) String() string {
	return fmt.Sprintf("%v#%d", r.target, r.index)
}

// Container stores all operations of a trace, one append-only arena per
// target. Insertion order is chronological order.
type Container struct {
	stack   []StackOp
	memory  []MemoryOp
	storage []StorageOp
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Insert appends op to its target arena and returns its locator.
func (c *Container) Insert(op Operation) OperationRef {
	switch o := op.(type) {
	case StackOp:
		c.stack = append(c.stack, o)
		return NewOperationRef(Stack, len(c.stack)-1)
	case MemoryOp:
		c.memory = append(c.memory, o)
		return NewOperationRef(Memory, len(c.memory)-1)
	case StorageOp:
		c.storage = append(c.storage, o)
		return NewOperationRef(Storage, len(c.storage)-1)
	default:
		panic(fmt.Sprintf("unsupported operation type %T", op))
	}
}

// Len returns the number of operations stored for target.
func (c *Container) Len(target Target) int {
	switch target {
	case Stack:
		return len(c.stack)
	case Memory:
		return len(c.memory)
	case Storage:
		return len(c.storage)
	}
	return 0
}

// Get resolves a reference.
func (c *Container) Get(ref OperationRef) (Operation, error) {
	if ref.index < 0 || ref.index >= c.Len(ref.target) {
		return nil, errors.Newf("dangling operation reference %v", ref)
	}
	switch ref.target {
	case Stack:
		return c.stack[ref.index], nil
	case Memory:
		return c.memory[ref.index], nil
	default:
		return c.storage[ref.index], nil
	}
}

// StackOps returns the stack arena in insertion order.
func (c *Container) StackOps() []StackOp {
	return append([]StackOp(nil), c.stack...)
}

// MemoryOps returns the memory arena in insertion order.
func (c *Container) MemoryOps() []MemoryOp {
	return append([]MemoryOp(nil), c.memory...)
}

// StorageOps returns the storage arena in insertion order.
func (c *Container) StorageOps() []StorageOp {
	return append([]StorageOp(nil), c.storage...)
}

// SortedStack returns all stack operations ordered by (address, gc).
func (c *Container) SortedStack() []StackOp {
	ops := c.StackOps()
	slices.SortFunc(ops, func(a, b StackOp) int {
		return cmp.Or(cmp.Compare(a.address, b.address), cmp.Compare(a.gc, b.gc))
	})
	return ops
}

// SortedMemory returns all memory operations ordered by (address, gc).
func (c *Container) SortedMemory() []MemoryOp {
	ops := c.MemoryOps()
	slices.SortFunc(ops, func(a, b MemoryOp) int {
		return cmp.Or(cmp.Compare(a.address, b.address), cmp.Compare(a.gc, b.gc))
	})
	return ops
}

// SortedStorage returns all storage operations ordered by (contract, key, gc).
func (c *Container) SortedStorage() []StorageOp {
	ops := c.StorageOps()
	slices.SortFunc(ops, func(a, b StorageOp) int {
		return cmp.Or(compareSlot(a, b), cmp.Compare(a.gc, b.gc))
	})
	return ops
}

func compareSlot(a, b StorageOp) int {
	return cmp.Or(bytes.Compare(a.address[:], b.address[:]), a.key.Compare(b.key))
}

// CheckDistinct verifies that no two operations share a global counter.
func (c *Container) CheckDistinct() error {
	seen := make(map[evm.GlobalCounter]Target, len(c.stack)+len(c.memory)+len(c.storage))
	check := func(op Operation) error {
		if prev, found := seen[op.GlobalCounter()]; found {
			return errors.Newf("global counter %d used by %v and %v operations", uint64(op.GlobalCounter()), prev, op.Target())
		}
		seen[op.GlobalCounter()] = op.Target()
		return nil
	}
	for _, op := range c.stack {
		if err := check(op); err != nil {
			return err
		}
	}
	for _, op := range c.memory {
		if err := check(op); err != nil {
			return err
		}
	}
	for _, op := range c.storage {
		if err := check(op); err != nil {
			return err
		}
	}
	return nil
}

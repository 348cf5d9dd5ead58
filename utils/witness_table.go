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

package utils

import (
	"strings"

	"github.com/0xsoniclabs/zkwitness/operation"
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(title string, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

// StackTable renders a sorted stack witness.
func StackTable(ops []operation.StackOp) string {
	tw := newTable("stack", table.Row{"#", "address", "gc", "rw", "value"})
	for i, op := range ops {
		tw.AppendRow(table.Row{i, int(op.Address()), uint64(op.GlobalCounter()), op.RW(), op.Value()})
	}
	return tw.Render()
}

// MemoryTable renders a sorted memory witness.
func MemoryTable(ops []operation.MemoryOp) string {
	tw := newTable("memory", table.Row{"#", "address", "gc", "rw", "value"})
	for i, op := range ops {
		tw.AppendRow(table.Row{i, op.Address(), uint64(op.GlobalCounter()), op.RW(), op.Value()})
	}
	return tw.Render()
}

// StorageTable renders a sorted storage witness.
func StorageTable(ops []operation.StorageOp) string {
	tw := newTable("storage", table.Row{"#", "contract", "key", "gc", "rw", "value", "previous"})
	for i, op := range ops {
		tw.AppendRow(table.Row{i, op.Address().Hex(), op.Key(), uint64(op.GlobalCounter()), op.RW(), op.Value(), op.ValuePrev()})
	}
	return tw.Render()
}

// WitnessTables renders the three sorted witnesses of t, skipping empty ones.
func WitnessTables(t *trace.ExecutionTrace) string {
	var parts []string
	if ops := t.SortedStackOps(); len(ops) > 0 {
		parts = append(parts, StackTable(ops))
	}
	if ops := t.SortedMemoryOps(); len(ops) > 0 {
		parts = append(parts, MemoryTable(ops))
	}
	if ops := t.SortedStorageOps(); len(ops) > 0 {
		parts = append(parts, StorageTable(ops))
	}
	return strings.Join(parts, "\n")
}

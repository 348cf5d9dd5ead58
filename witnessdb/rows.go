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

package witnessdb

import (
	"encoding/hex"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/0xsoniclabs/zkwitness/operation"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// TraceID identifies a trace by the Keccak-256 hash of its raw bytes.
type TraceID common.Hash

// TraceIDOf hashes raw.
func TraceIDOf(raw []byte) TraceID {
	h := sha3.NewLegacyKeccak256()
	h.Write(raw)
	var id TraceID
	h.Sum(id[:0])
	return id
}

func (id TraceID) String() string {
	return hex.EncodeToString(id[:])
}

// StackRow is one stored stack operation.
type StackRow struct {
	TraceID string `db:"trace_id"`
	Seq     int64  `db:"seq"`
	GC      int64  `db:"gc"`
	IsWrite bool   `db:"is_write"`
	Address int64  `db:"address"`
	Value   string `db:"value"`
}

// MemoryRow is one stored memory operation.
type MemoryRow struct {
	TraceID string `db:"trace_id"`
	Seq     int64  `db:"seq"`
	GC      int64  `db:"gc"`
	IsWrite bool   `db:"is_write"`
	Address int64  `db:"address"`
	Value   string `db:"value"`
}

// StorageRow is one stored storage operation.
type StorageRow struct {
	TraceID   string `db:"trace_id"`
	Seq       int64  `db:"seq"`
	GC        int64  `db:"gc"`
	IsWrite   bool   `db:"is_write"`
	Contract  string `db:"contract"`
	Key       string `db:"key"`
	Value     string `db:"value"`
	ValuePrev string `db:"value_prev"`
}

func rw(isWrite bool) operation.RW {
	if isWrite {
		return operation.Write
	}
	return operation.Read
}

// StackRows converts a sorted stack witness into rows.
func StackRows(id TraceID, ops []operation.StackOp) []StackRow {
	rows := make([]StackRow, len(ops))
	for i, op := range ops {
		rows[i] = StackRow{
			TraceID: id.String(),
			Seq:     int64(i),
			GC:      int64(op.GlobalCounter()),
			IsWrite: op.RW().IsWrite(),
			Address: int64(op.Address()),
			Value:   op.Value().String(),
		}
	}
	return rows
}

// Operation restores the stack operation of the row.
func (r StackRow) Operation() (operation.StackOp, error) {
	value, err := evm.ParseWord(r.Value)
	if err != nil {
		return operation.StackOp{}, errors.Wrapf(err, "stack row %d", r.Seq)
	}
	return operation.NewStackOp(rw(r.IsWrite), evm.GlobalCounter(r.GC), evm.StackAddress(r.Address), value), nil
}

// MemoryRows converts a sorted memory witness into rows.
func MemoryRows(id TraceID, ops []operation.MemoryOp) []MemoryRow {
	rows := make([]MemoryRow, len(ops))
	for i, op := range ops {
		rows[i] = MemoryRow{
			TraceID: id.String(),
			Seq:     int64(i),
			GC:      int64(op.GlobalCounter()),
			IsWrite: op.RW().IsWrite(),
			Address: int64(op.Address()),
			Value:   op.Value().String(),
		}
	}
	return rows
}

// Operation restores the memory operation of the row.
func (r MemoryRow) Operation() (operation.MemoryOp, error) {
	value, err := evm.ParseWord(r.Value)
	if err != nil {
		return operation.MemoryOp{}, errors.Wrapf(err, "memory row %d", r.Seq)
	}
	return operation.NewMemoryOp(rw(r.IsWrite), evm.GlobalCounter(r.GC), evm.MemoryAddress(r.Address), value), nil
}

// StorageRows converts a sorted storage witness into rows.
func StorageRows(id TraceID, ops []operation.StorageOp) []StorageRow {
	rows := make([]StorageRow, len(ops))
	for i, op := range ops {
		rows[i] = StorageRow{
			TraceID:   id.String(),
			Seq:       int64(i),
			GC:        int64(op.GlobalCounter()),
			IsWrite:   op.RW().IsWrite(),
			Contract:  op.Address().Hex(),
			Key:       op.Key().String(),
			Value:     op.Value().String(),
			ValuePrev: op.ValuePrev().String(),
		}
	}
	return rows
}

// Operation restores the storage operation of the row.
func (r StorageRow) Operation() (operation.StorageOp, error) {
	var words [3]evm.Word
	for i, s := range []string{r.Key, r.Value, r.ValuePrev} {
		w, err := evm.ParseWord(s)
		if err != nil {
			return operation.StorageOp{}, errors.Wrapf(err, "storage row %d", r.Seq)
		}
		words[i] = w
	}
	if !common.IsHexAddress(r.Contract) {
		return operation.StorageOp{}, errors.Newf("storage row %d: invalid contract %q", r.Seq, r.Contract)
	}
	return operation.NewStorageOp(rw(r.IsWrite), evm.GlobalCounter(r.GC), common.HexToAddress(r.Contract),
		words[0], words[1], words[2]), nil
}

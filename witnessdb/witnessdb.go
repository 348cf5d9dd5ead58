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

// Package witnessdb persists the sorted witnesses of execution traces in an
// SQLite database.
package witnessdb

import (
	"github.com/0xsoniclabs/zkwitness/logger"
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS stack_ops (
	trace_id TEXT,
	seq      INTEGER,
	gc       INTEGER,
	is_write BOOLEAN,
	address  INTEGER,
	value    TEXT
);
CREATE TABLE IF NOT EXISTS memory_ops (
	trace_id TEXT,
	seq      INTEGER,
	gc       INTEGER,
	is_write BOOLEAN,
	address  INTEGER,
	value    TEXT
);
CREATE TABLE IF NOT EXISTS storage_ops (
	trace_id   TEXT,
	seq        INTEGER,
	gc         INTEGER,
	is_write   BOOLEAN,
	contract   TEXT,
	key        TEXT,
	value      TEXT,
	value_prev TEXT
);
`
	insertStackSQL = `
INSERT INTO stack_ops (trace_id, seq, gc, is_write, address, value)
VALUES (:trace_id, :seq, :gc, :is_write, :address, :value)
`
	insertMemorySQL = `
INSERT INTO memory_ops (trace_id, seq, gc, is_write, address, value)
VALUES (:trace_id, :seq, :gc, :is_write, :address, :value)
`
	insertStorageSQL = `
INSERT INTO storage_ops (trace_id, seq, gc, is_write, contract, key, value, value_prev)
VALUES (:trace_id, :seq, :gc, :is_write, :contract, :key, :value, :value_prev)
`
	selectStackSQL   = `SELECT trace_id, seq, gc, is_write, address, value FROM stack_ops WHERE trace_id = ? ORDER BY seq`
	selectMemorySQL  = `SELECT trace_id, seq, gc, is_write, address, value FROM memory_ops WHERE trace_id = ? ORDER BY seq`
	selectStorageSQL = `SELECT trace_id, seq, gc, is_write, contract, key, value, value_prev FROM storage_ops WHERE trace_id = ? ORDER BY seq`
)

var tables = []string{"stack_ops", "memory_ops", "storage_ops"}

//go:generate mockgen -source witnessdb.go -destination witnessdb_mock.go -package witnessdb

// WitnessDB stores and loads sorted witnesses keyed by trace id.
type WitnessDB interface {
	// Save replaces the witnesses stored for id with those of t.
	Save(id TraceID, t *trace.ExecutionTrace) error
	StackOps(id TraceID) ([]StackRow, error)
	MemoryOps(id TraceID) ([]MemoryRow, error)
	StorageOps(id TraceID) ([]StorageRow, error)
	Close() error
}

type witnessDB struct {
	db  *sqlx.DB
	log logger.Logger
}

// NewWitnessDB opens or creates the database at path.
func NewWitnessDB(path string, log logger.Logger) (WitnessDB, error) {
	return newWitnessDB(path, log)
}

func newWitnessDB(path string, log logger.Logger) (*witnessDB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", path)
	}
	if _, err = db.Exec(createSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to create witness tables in %v", path)
	}
	return &witnessDB{db: db, log: log}, nil
}

func (w *witnessDB) Save(id TraceID, t *trace.ExecutionTrace) (err error) {
	tx, err := w.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "unable to begin a transaction")
	}
	defer func() {
		if err != nil {
			err = errors.CombineErrors(err, tx.Rollback())
		}
	}()

	for _, table := range tables {
		if _, err = tx.Exec("DELETE FROM "+table+" WHERE trace_id = ?", id.String()); err != nil {
			return errors.Wrapf(err, "cannot clear %s", table)
		}
	}
	stack := StackRows(id, t.SortedStackOps())
	for _, row := range stack {
		if _, err = tx.NamedExec(insertStackSQL, row); err != nil {
			return errors.Wrap(err, "cannot insert stack witness")
		}
	}
	memory := MemoryRows(id, t.SortedMemoryOps())
	for _, row := range memory {
		if _, err = tx.NamedExec(insertMemorySQL, row); err != nil {
			return errors.Wrap(err, "cannot insert memory witness")
		}
	}
	storage := StorageRows(id, t.SortedStorageOps())
	for _, row := range storage {
		if _, err = tx.NamedExec(insertStorageSQL, row); err != nil {
			return errors.Wrap(err, "cannot insert storage witness")
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "cannot commit witnesses")
	}
	w.log.Debugf("Saved trace %v: %d stack, %d memory, %d storage operations", id, len(stack), len(memory), len(storage))
	return nil
}

func (w *witnessDB) StackOps(id TraceID) ([]StackRow, error) {
	var rows []StackRow
	if err := w.db.Select(&rows, selectStackSQL, id.String()); err != nil {
		return nil, errors.Wrap(err, "cannot load stack witness")
	}
	return rows, nil
}

func (w *witnessDB) MemoryOps(id TraceID) ([]MemoryRow, error) {
	var rows []MemoryRow
	if err := w.db.Select(&rows, selectMemorySQL, id.String()); err != nil {
		return nil, errors.Wrap(err, "cannot load memory witness")
	}
	return rows, nil
}

func (w *witnessDB) StorageOps(id TraceID) ([]StorageRow, error) {
	var rows []StorageRow
	if err := w.db.Select(&rows, selectStorageSQL, id.String()); err != nil {
		return nil, errors.Wrap(err, "cannot load storage witness")
	}
	return rows, nil
}

func (w *witnessDB) Close() error {
	return w.db.Close()
}

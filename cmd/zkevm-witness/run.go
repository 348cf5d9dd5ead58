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

package main

import (
	"time"

	"github.com/0xsoniclabs/zkwitness/circuit"
	"github.com/0xsoniclabs/zkwitness/config"
	"github.com/0xsoniclabs/zkwitness/evmcircuit"
	"github.com/0xsoniclabs/zkwitness/logger"
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/0xsoniclabs/zkwitness/utils"
	"github.com/0xsoniclabs/zkwitness/witnessdb"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// openWitnessDB is replaced in tests.
var openWitnessDB = witnessdb.NewWitnessDB

// loadTrace reads and builds the trace named in cfg. It returns the raw
// trace bytes alongside for identification.
func loadTrace(cfg *config.Config, log logger.Logger) (*trace.ExecutionTrace, []byte, error) {
	bc, err := cfg.BlockConstants()
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	raw, err := trace.ReadTraceBytes(cfg.TraceFile)
	if err != nil {
		return nil, nil, err
	}
	t, err := trace.FromTraceBytes(raw, bc)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot build trace %s", cfg.TraceFile)
	}
	container := t.Container()
	log.Noticef("Built %d steps of block %d on chain %v in %v: %d stack, %d memory, %d storage operations",
		len(t.Steps()), bc.Number(), cfg.ChainID, time.Since(start).Round(time.Millisecond),
		len(container.StackOps()), len(container.MemoryOps()), len(container.StorageOps()))
	return t, raw, nil
}

func logElapsed(log logger.Logger, start time.Time) {
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Total elapsed time: %vh %vm %vs", hours, minutes, seconds)
}

func newRunConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return cfg, nil
}

func checkWitnesses(t *trace.ExecutionTrace, log logger.Logger) error {
	container := t.Container()
	if err := container.CheckDistinct(); err != nil {
		return errors.Wrap(err, "witnesses are not distinct")
	}
	if err := container.CheckConsistency(); err != nil {
		return errors.Wrap(err, "witnesses are not consistent")
	}
	log.Info("Witnesses are distinct and consistent")
	return nil
}

// witness implements the witness command.
func witness(ctx *cli.Context) error {
	cfg, err := newRunConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Witness")
	defer logElapsed(log, time.Now())

	t, raw, err := loadTrace(cfg, log)
	if err != nil {
		return err
	}
	if cfg.ConsistencyCheck {
		if err = checkWitnesses(t, log); err != nil {
			return err
		}
	}

	tables := func() string { return utils.WitnessTables(t) }
	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, tables).
		AddPrinterToFile(cfg.Output, tables)
	defer printers.Close()
	if err = printers.Print(); err != nil {
		return errors.Wrap(err, "cannot print witness tables")
	}

	if cfg.WitnessDb == "" {
		return nil
	}
	db, err := openWitnessDB(cfg.WitnessDb, log)
	if err != nil {
		return err
	}
	return saveWitnesses(db, witnessdb.TraceIDOf(raw), t, log)
}

// saveWitnesses stores the witnesses of t under id and closes db.
func saveWitnesses(db witnessdb.WitnessDB, id witnessdb.TraceID, t *trace.ExecutionTrace, log logger.Logger) (err error) {
	defer func() {
		if e := db.Close(); e != nil {
			err = errors.CombineErrors(err, errors.Wrap(e, "cannot close witness db"))
		}
	}()
	if err = db.Save(id, t); err != nil {
		return errors.Wrapf(err, "cannot save witnesses of trace %v", id)
	}
	log.Noticef("Saved witnesses of trace %v", id)
	return nil
}

// check implements the check command.
func check(ctx *cli.Context) error {
	cfg, err := newRunConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Check")
	defer logElapsed(log, time.Now())

	t, _, err := loadTrace(cfg, log)
	if err != nil {
		return err
	}
	return checkWitnesses(t, log)
}

// prove implements the prove command.
func prove(ctx *cli.Context) error {
	cfg, err := newRunConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Prove")
	defer logElapsed(log, time.Now())

	t, _, err := loadTrace(cfg, log)
	if err != nil {
		return err
	}
	return proveTrace(t, evmcircuit.DefaultRegistry(), log)
}

// proveTrace assigns the steps of t covered by registry and checks every
// constraint of the circuit.
func proveTrace(t *trace.ExecutionTrace, registry *evmcircuit.Registry, log logger.Logger) error {
	if err := registry.Validate(evmcircuit.InScopeOpcodes); err != nil {
		return errors.Wrap(err, "incomplete gadget registry")
	}
	steps, initial, err := evmcircuit.StepsFromTrace(t, registry)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		log.Warningf("No step of the trace is covered by the circuit (covered opcodes: %v)", registry.Opcodes())
	}
	c, err := evmcircuit.NewEvmCircuit(registry)
	if err != nil {
		return err
	}
	assignment := circuit.NewAssignment()
	if err = c.Synthesize(assignment, steps, initial); err != nil {
		return errors.Wrap(err, "cannot assign circuit")
	}
	log.Infof("Assigned %d steps to %d rows over %d columns", len(steps), assignment.Rows(), len(c.Columns()))
	if err = circuit.NewMockProver(c.Constraints(), assignment).Verify(); err != nil {
		return errors.Wrap(err, "circuit is not satisfied")
	}
	log.Noticef("All constraints hold for %d steps", len(steps))
	return nil
}

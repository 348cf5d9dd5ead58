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
	"fmt"
	"os"

	"github.com/0xsoniclabs/zkwitness/config"
	"github.com/0xsoniclabs/zkwitness/logger"
	"github.com/urfave/cli/v2"
)

var traceFlags = append([]cli.Flag{
	&config.TraceFileFlag,
	&logger.LogLevelFlag,
}, config.BlockFlags...)

// WitnessCommand builds and exports the sorted witnesses of a trace.
var WitnessCommand = cli.Command{
	Action: witness,
	Name:   "witness",
	Usage:  "builds the stack, memory and storage witnesses of an execution trace",
	Flags: append([]cli.Flag{
		&config.OutputFlag,
		&config.WitnessDbFlag,
		&config.ConsistencyCheckFlag,
		&config.QuietFlag,
	}, traceFlags...),
}

// CheckCommand verifies the witnesses of a trace without exporting them.
var CheckCommand = cli.Command{
	Action: check,
	Name:   "check",
	Usage:  "checks that the witnesses of an execution trace are distinct and consistent",
	Flags:  traceFlags,
}

// ProveCommand runs the EVM circuit over a trace with the mock prover.
var ProveCommand = cli.Command{
	Action: prove,
	Name:   "prove",
	Usage:  "assigns the EVM circuit from an execution trace and verifies all constraints",
	Flags:  traceFlags,
}

func main() {
	app := &cli.App{
		Name:      "zkEVM Witness Generator",
		HelpName:  "zkevm-witness",
		Usage:     "turn EVM execution traces into circuit witnesses",
		Copyright: "(c) 2025 Sonic Labs",
		Commands: []*cli.Command{
			&WitnessCommand,
			&CheckCommand,
			&ProveCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

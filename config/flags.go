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

package config

import (
	"github.com/0xsoniclabs/zkwitness/config/chainid"
	"github.com/urfave/cli/v2"
)

var (
	TraceFileFlag = cli.PathFlag{
		Name:    "trace-file",
		Aliases: []string{"f"},
		Usage:   "path to a JSON execution trace, .gz files are decompressed",
	}
	OutputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the witness tables to the given path",
	}
	WitnessDbFlag = cli.PathFlag{
		Name:  "witness-db",
		Usage: "sqlite3 database the sorted witnesses are stored in",
	}
	ConsistencyCheckFlag = cli.BoolFlag{
		Name:  "consistency-check",
		Usage: "verify the read-after-write consistency of the built witnesses",
		Value: true,
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "do not print witness tables to the console",
	}
	BlockHashFlag = cli.StringFlag{
		Name:  "block-hash",
		Usage: "hash of the traced block",
		Value: "0x0",
	}
	CoinbaseFlag = cli.StringFlag{
		Name:  "coinbase",
		Usage: "beneficiary address of the traced block",
		Value: "0x0000000000000000000000000000000000000000",
	}
	TimestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "timestamp of the traced block",
	}
	BlockNumberFlag = cli.Uint64Flag{
		Name:  "block-number",
		Usage: "number of the traced block",
	}
	DifficultyFlag = cli.StringFlag{
		Name:  "difficulty",
		Usage: "difficulty of the traced block (decimal)",
		Value: "0",
	}
	GasLimitFlag = cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "gas limit of the traced block",
		Value: 30_000_000,
	}
	BaseFeeFlag = cli.StringFlag{
		Name:  "base-fee",
		Usage: "base fee of the traced block (decimal)",
		Value: "0",
	}
)

// BlockFlags lists the flags describing the block environment of a trace.
var BlockFlags = []cli.Flag{
	&BlockHashFlag,
	&CoinbaseFlag,
	&TimestampFlag,
	&BlockNumberFlag,
	&DifficultyFlag,
	&GasLimitFlag,
	&chainid.ChainIDFlag,
	&BaseFeeFlag,
}

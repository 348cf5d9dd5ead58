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
	"strings"

	"github.com/0xsoniclabs/zkwitness/config/chainid"
	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/0xsoniclabs/zkwitness/logger"
	"github.com/0xsoniclabs/zkwitness/trace"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

// Config summarizes the command line options of a run.
type Config struct {
	AppName     string
	CommandName string

	LogLevel         string
	TraceFile        string
	Output           string
	WitnessDb        string
	ConsistencyCheck bool
	Quiet            bool

	BlockHash   string
	Coinbase    string
	Timestamp   uint64
	BlockNumber uint64
	Difficulty  string
	GasLimit    uint64
	ChainID     chainid.ChainID
	BaseFee     string
}

// NewConfig creates the configuration of the command in ctx and checks that
// a trace file is given.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if strings.TrimSpace(cfg.TraceFile) == "" {
		return nil, errors.Newf("provide --%s pointing to an execution trace", TraceFileFlag.Name)
	}
	if _, err := cfg.BlockConstants(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		LogLevel:         getFlagValue(ctx, logger.LogLevelFlag).(string),
		TraceFile:        getFlagValue(ctx, TraceFileFlag).(string),
		Output:           getFlagValue(ctx, OutputFlag).(string),
		WitnessDb:        getFlagValue(ctx, WitnessDbFlag).(string),
		ConsistencyCheck: getFlagValue(ctx, ConsistencyCheckFlag).(bool),
		Quiet:            getFlagValue(ctx, QuietFlag).(bool),
		BlockHash:        getFlagValue(ctx, BlockHashFlag).(string),
		Coinbase:         getFlagValue(ctx, CoinbaseFlag).(string),
		Timestamp:        getFlagValue(ctx, TimestampFlag).(uint64),
		BlockNumber:      getFlagValue(ctx, BlockNumberFlag).(uint64),
		Difficulty:       getFlagValue(ctx, DifficultyFlag).(string),
		GasLimit:         getFlagValue(ctx, GasLimitFlag).(uint64),
		ChainID:          chainid.ChainID(getFlagValue(ctx, chainid.ChainIDFlag).(int64)),
		BaseFee:          getFlagValue(ctx, BaseFeeFlag).(string),
	}
	if ctx.App != nil {
		cfg.AppName = ctx.App.HelpName
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	var cmdFlags []cli.Flag
	if ctx.Command != nil {
		cmdFlags = ctx.Command.Flags
	}
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		case cli.StringSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.StringSlice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.StringSliceFlag:
		if f.Value == nil {
			return []string{}
		}
		return f.Value.Value()
	}

	return nil
}

// BlockConstants validates the block flags and builds the constants every
// trace of the run is bound to.
func (cfg *Config) BlockConstants() (trace.BlockConstants, error) {
	hash, err := evm.ParseWord(cfg.BlockHash)
	if err != nil {
		return trace.BlockConstants{}, errors.Wrapf(err, "invalid --%s", BlockHashFlag.Name)
	}
	if !common.IsHexAddress(cfg.Coinbase) {
		return trace.BlockConstants{}, errors.Newf("invalid --%s %q", CoinbaseFlag.Name, cfg.Coinbase)
	}
	difficulty, err := parseDecimal(cfg.Difficulty)
	if err != nil {
		return trace.BlockConstants{}, errors.Wrapf(err, "invalid --%s", DifficultyFlag.Name)
	}
	baseFee, err := parseDecimal(cfg.BaseFee)
	if err != nil {
		return trace.BlockConstants{}, errors.Wrapf(err, "invalid --%s", BaseFeeFlag.Name)
	}
	if cfg.ChainID < 0 {
		return trace.BlockConstants{}, errors.Newf("invalid --%s %d", chainid.ChainIDFlag.Name, int64(cfg.ChainID))
	}
	return trace.NewBlockConstants(
		common.Hash(hash),
		common.HexToAddress(cfg.Coinbase),
		cfg.Timestamp,
		cfg.BlockNumber,
		difficulty,
		cfg.GasLimit,
		uint64(cfg.ChainID),
		baseFee,
	), nil
}

func parseDecimal(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return uint256.FromDecimal(s)
}

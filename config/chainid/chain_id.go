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

package chainid

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// ChainID is typed int64 same as in go-ethereum
type ChainID int64
type ChainIDs map[ChainID]string

const (
	UnknownChainID      ChainID = 0
	EthereumChainID     ChainID = 1
	SonicMainnetChainID ChainID = 146
	MainnetChainID      ChainID = 250
	TestnetChainID      ChainID = 4002
	HoleskyChainID      ChainID = 17000
	HoodiChainID        ChainID = 560048
	SepoliaChainID      ChainID = 11155111
	// EthTestsChainID is the chain id of locally generated traces.
	EthTestsChainID ChainID = 1337
)

var KnownChainIDs = ChainIDs{
	SonicMainnetChainID: "mainnet-sonic",
	MainnetChainID:      "mainnet-opera",
	TestnetChainID:      "testnet",
	EthereumChainID:     "ethereum",
	HoleskyChainID:      "holesky",
	HoodiChainID:        "hoodi",
	SepoliaChainID:      "sepolia",
	EthTestsChainID:     "eth-tests",
}

var ChainIDFlag = cli.Int64Flag{
	Name:  "chainid",
	Usage: "chain id of the traced block",
	Value: int64(EthereumChainID),
}

// IsKnown reports whether id names one of the networks traces are usually
// recorded on.
func (id ChainID) IsKnown() bool {
	_, ok := KnownChainIDs[id]
	return ok
}

func (id ChainID) String() string {
	if name, ok := KnownChainIDs[id]; ok {
		return fmt.Sprintf("%d (%s)", int64(id), name)
	}
	return fmt.Sprintf("%d", int64(id))
}

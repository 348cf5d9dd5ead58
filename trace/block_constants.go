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

package trace

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// BlockConstants holds the per-block environment of a trace. It is immutable;
// accessors return copies.
type BlockConstants struct {
	hash       common.Hash
	coinbase   common.Address
	timestamp  uint64
	number     uint64
	difficulty uint256.Int
	gasLimit   uint64
	chainID    uint64
	baseFee    uint256.Int
}

// NewBlockConstants creates a new BlockConstants instance from its fields.
// Nil difficulty or base fee are treated as zero.
func NewBlockConstants(
	hash common.Hash,
	coinbase common.Address,
	timestamp uint64,
	number uint64,
	difficulty *uint256.Int,
	gasLimit uint64,
	chainID uint64,
	baseFee *uint256.Int,
) BlockConstants {
	bc := BlockConstants{
		hash:      hash,
		coinbase:  coinbase,
		timestamp: timestamp,
		number:    number,
		gasLimit:  gasLimit,
		chainID:   chainID,
	}
	if difficulty != nil {
		bc.difficulty.Set(difficulty)
	}
	if baseFee != nil {
		bc.baseFee.Set(baseFee)
	}
	return bc
}

// Hash returns the hash of the block.
func (b BlockConstants) Hash() common.Hash {
	return b.hash
}

// Coinbase returns the beneficiary of the block.
func (b BlockConstants) Coinbase() common.Address {
	return b.coinbase
}

// Timestamp returns the timestamp of the block.
func (b BlockConstants) Timestamp() uint64 {
	return b.timestamp
}

// Number returns the block number.
func (b BlockConstants) Number() uint64 {
	return b.number
}

// Difficulty returns the difficulty of the block.
func (b BlockConstants) Difficulty() *uint256.Int {
	return new(uint256.Int).Set(&b.difficulty)
}

// GasLimit returns the gas limit of the block.
func (b BlockConstants) GasLimit() uint64 {
	return b.gasLimit
}

// ChainID returns the chain id the block belongs to.
func (b BlockConstants) ChainID() uint64 {
	return b.chainID
}

// BaseFee returns the base fee of the block.
func (b BlockConstants) BaseFee() *uint256.Int {
	return new(uint256.Int).Set(&b.baseFee)
}

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
	"encoding/json"

	"github.com/0xsoniclabs/zkwitness/evm"
	"github.com/ethereum/go-ethereum/common"
)

// parsedExecutionStep is the record layout of one step in a JSON trace.
type parsedExecutionStep struct {
	PC      uint64            `json:"pc"`
	Opcode  string            `json:"opcode"`
	Stack   []string          `json:"stack"`
	Memory  map[string]string `json:"memory"`
	Storage map[string]string `json:"storage,omitempty"`
	Address *common.Address   `json:"address,omitempty"`
	Gas     uint64            `json:"gas,omitempty"`
	GasCost uint64            `json:"gasCost,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func parseSteps(raw []byte) ([]*ExecutionStep, error) {
	var parsed []parsedExecutionStep
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, wrapParseError(err, "cannot decode trace")
	}
	steps := make([]*ExecutionStep, 0, len(parsed))
	for i := range parsed {
		step, err := parsed[i].toExecutionStep()
		if err != nil {
			return nil, wrapParseError(err, "step %d", i)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (p *parsedExecutionStep) toExecutionStep() (*ExecutionStep, error) {
	instruction, err := evm.ParseInstruction(p.Opcode)
	if err != nil {
		return nil, err
	}
	if len(p.Stack) > evm.StackDepth {
		return nil, parseErrorf("stack holds %d items, limit is %d", len(p.Stack), evm.StackDepth)
	}
	stack := make([]evm.Word, len(p.Stack))
	for i, item := range p.Stack {
		if stack[i], err = evm.ParseWord(item); err != nil {
			return nil, wrapParseError(err, "stack item %d", i)
		}
	}
	memory := make(map[evm.MemoryAddress]evm.Word, len(p.Memory))
	for k, v := range p.Memory {
		addr, err := evm.ParseMemoryAddress(k)
		if err != nil {
			return nil, wrapParseError(err, "memory address %q", k)
		}
		if memory[addr], err = evm.ParseWord(v); err != nil {
			return nil, wrapParseError(err, "memory value at %q", k)
		}
	}
	step := NewExecutionStep(memory, stack, instruction, evm.ProgramCounter(p.PC), 0)
	if p.Storage != nil || p.Address != nil {
		storage := make(map[evm.Word]evm.Word, len(p.Storage))
		for k, v := range p.Storage {
			key, err := evm.ParseWord(k)
			if err != nil {
				return nil, wrapParseError(err, "storage key %q", k)
			}
			if storage[key], err = evm.ParseWord(v); err != nil {
				return nil, wrapParseError(err, "storage value at %q", k)
			}
		}
		var contract common.Address
		if p.Address != nil {
			contract = *p.Address
		}
		step.WithStorage(contract, storage)
	}
	return step.WithGas(p.Gas, p.GasCost).WithError(p.Error), nil
}

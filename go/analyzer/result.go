// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Result is the artifact of a compilation. Bytecode, ABI and GasEstimates
// are only set for successful compilations.
type Result struct {
	Success      bool
	ContractName string
	Version      string
	Bytecode     chain.Code
	ABI          []Function
	Errors       []string
	Warnings     []string
	GasEstimates map[string]chain.Gas
}

// Function describes a single entry of the synthetic ABI.
type Function struct {
	Type            string      `json:"type"`
	Name            string      `json:"name"`
	Inputs          []Parameter `json:"inputs"`
	Outputs         []Parameter `json:"outputs"`
	StateMutability string      `json:"stateMutability"`
}

type Parameter struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	InternalType string `json:"internalType"`
}

// Signature returns the canonical signature of the function, for instance
// "transfer(address,uint256)".
func (f Function) Signature() string {
	types := make([]string, 0, len(f.Inputs))
	for _, input := range f.Inputs {
		types = append(types, input.Type)
	}
	return f.Name + "(" + strings.Join(types, ",") + ")"
}

// Selector returns the 4-byte function selector derived from the signature.
func (f Function) Selector() chain.Selector {
	return chain.SelectorOf(f.Signature())
}

// ABIJSON renders the ABI in the JSON format understood by Ethereum
// tooling. Failed compilations render an empty list.
func (r Result) ABIJSON() string {
	functions := r.ABI
	if functions == nil {
		functions = []Function{}
	}
	data, err := json.Marshal(functions)
	if err != nil {
		// all fields are plain strings and slices
		panic(err)
	}
	return string(data)
}

// Contract parses the synthetic ABI with the go-ethereum ABI package,
// giving access to method lookup and packing of call data.
func (r Result) Contract() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(r.ABIJSON()))
}

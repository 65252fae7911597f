// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/ethereum/go-ethereum/params"
)

const (
	TxGas           = chain.Gas(params.TxGas)
	ContractCallGas = chain.Gas(50_000)
	BlockGasLimit   = chain.Gas(30_000_000)
)

// SeedAccounts are the accounts every fresh ledger starts with.
var SeedAccounts = []chain.Address{
	chain.MustHexToAddress("0x1234567890123456789012345678901234567890"),
	chain.MustHexToAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"),
	chain.MustHexToAddress("0x1111111111111111111111111111111111111111"),
	chain.MustHexToAddress("0x2222222222222222222222222222222222222222"),
}

// Config summarizes the tunable parameters of a ledger. Zero fields are
// replaced by their defaults.
type Config struct {
	SeedAccounts    []chain.Address
	SeedBalance     chain.Value // balance of each seed account
	DefaultBalance  chain.Value // balance of accounts created implicitly
	BaseGas         chain.Gas   // intrinsic cost of every transaction
	ContractCallGas chain.Gas   // flat cost of a contract dispatch
	BlockGasLimit   chain.Gas
}

// DefaultConfig returns the configuration every session ledger uses unless
// told otherwise.
func DefaultConfig() Config {
	return Config{
		SeedAccounts:    append([]chain.Address(nil), SeedAccounts...),
		SeedBalance:     chain.Ether(100),
		DefaultBalance:  chain.Ether(1),
		BaseGas:         TxGas,
		ContractCallGas: ContractCallGas,
		BlockGasLimit:   BlockGasLimit,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SeedAccounts == nil {
		c.SeedAccounts = def.SeedAccounts
	}
	if c.SeedBalance.IsZero() {
		c.SeedBalance = def.SeedBalance
	}
	if c.DefaultBalance.IsZero() {
		c.DefaultBalance = def.DefaultBalance
	}
	if c.BaseGas == 0 {
		c.BaseGas = def.BaseGas
	}
	if c.ContractCallGas == 0 {
		c.ContractCallGas = def.ContractCallGas
	}
	if c.BlockGasLimit == 0 {
		c.BlockGasLimit = def.BlockGasLimit
	}
	return c
}

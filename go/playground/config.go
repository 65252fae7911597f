// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package playground

import (
	"github.com/Fantom-foundation/Playground/go/analyzer"
	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/Fantom-foundation/Playground/go/ledger"
	"github.com/Fantom-foundation/Playground/go/lesson"
)

// DefaultLogCapacity is the number of log lines a session retains.
const DefaultLogCapacity = 100

// Config parameterizes playground sessions. Zero fields are replaced by
// the values of DefaultConfig.
type Config struct {
	Ledger ledger.Config

	// DeployerBalance is the balance of the account created for every
	// deployment.
	DeployerBalance chain.Value

	// Endowment is transferred from the deployer to every deployed contract
	// other than the attack contract, giving exploits funds to drain.
	Endowment chain.Value

	LogCapacity     int
	CompilerVersion string

	// Seed makes all synthetic randomness of a session reproducible. Zero
	// selects a random seed.
	Seed uint64

	// TotalModules is the number of lessons reported by session statistics.
	TotalModules int
}

func DefaultConfig() Config {
	return Config{
		Ledger:          ledger.DefaultConfig(),
		DeployerBalance: chain.Ether(10),
		Endowment:       chain.Ether(5),
		LogCapacity:     DefaultLogCapacity,
		CompilerVersion: analyzer.DefaultVersion,
		TotalModules:    lesson.Builtin().Len(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DeployerBalance.IsZero() {
		c.DeployerBalance = def.DeployerBalance
	}
	if c.Endowment.IsZero() {
		c.Endowment = def.Endowment
	}
	if c.LogCapacity <= 0 {
		c.LogCapacity = def.LogCapacity
	}
	if c.CompilerVersion == "" {
		c.CompilerVersion = def.CompilerVersion
	}
	if c.TotalModules <= 0 {
		c.TotalModules = def.TotalModules
	}
	return c
}

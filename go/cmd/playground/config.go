// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/Fantom-foundation/Playground/go/chain"
	cliUtils "github.com/Fantom-foundation/Playground/go/cmd/playground/cli"
	"github.com/Fantom-foundation/Playground/go/lesson"
	"github.com/Fantom-foundation/Playground/go/playground"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// toolConfig is the file representation of the settings of the tool.
// Balances are given in whole ether.
type toolConfig struct {
	Session sessionConfig
	Ledger  ledgerConfig
	Storage storageConfig
}

type sessionConfig struct {
	Seed            uint64
	LogCapacity     int
	CompilerVersion string
	DeployerEther   uint64
	EndowmentEther  uint64
}

type ledgerConfig struct {
	SeedBalanceEther    uint64
	DefaultBalanceEther uint64
	BaseGas             uint64
	ContractCallGas     uint64
	BlockGasLimit       uint64
}

type storageConfig struct {
	DataDir string `toml:",omitempty"`
	Catalog string `toml:",omitempty"`
}

func defaultToolConfig() toolConfig {
	return toolConfig{
		Session: sessionConfig{
			LogCapacity:     playground.DefaultLogCapacity,
			CompilerVersion: playground.DefaultConfig().CompilerVersion,
			DeployerEther:   10,
			EndowmentEther:  5,
		},
		Ledger: ledgerConfig{
			SeedBalanceEther:    100,
			DefaultBalanceEther: 1,
			BaseGas:             uint64(playground.DefaultConfig().Ledger.BaseGas),
			ContractCallGas:     uint64(playground.DefaultConfig().Ledger.ContractCallGas),
			BlockGasLimit:       uint64(playground.DefaultConfig().Ledger.BlockGasLimit),
		},
	}
}

func loadConfig(file string, cfg *toolConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the command
// line flags on top of it.
func makeConfig(context *cli.Context) (toolConfig, error) {
	cfg := defaultToolConfig()
	if file := cliUtils.ConfigFlag.Fetch(context); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return toolConfig{}, err
		}
	}
	if context.IsSet(cliUtils.SeedFlag.Name) {
		cfg.Session.Seed = cliUtils.SeedFlag.Fetch(context)
	}
	if context.IsSet(cliUtils.DBFlag.Name) {
		cfg.Storage.DataDir = cliUtils.DBFlag.Fetch(context)
	}
	if context.IsSet(cliUtils.CatalogFlag.Name) {
		cfg.Storage.Catalog = cliUtils.CatalogFlag.Fetch(context)
	}
	return cfg, nil
}

// playgroundConfig converts the file settings into a session configuration.
func (c toolConfig) playgroundConfig(modules int) playground.Config {
	res := playground.DefaultConfig()
	res.Seed = c.Session.Seed
	res.LogCapacity = c.Session.LogCapacity
	res.CompilerVersion = c.Session.CompilerVersion
	res.DeployerBalance = chain.Ether(c.Session.DeployerEther)
	res.Endowment = chain.Ether(c.Session.EndowmentEther)
	res.TotalModules = modules

	res.Ledger.SeedBalance = chain.Ether(c.Ledger.SeedBalanceEther)
	res.Ledger.DefaultBalance = chain.Ether(c.Ledger.DefaultBalanceEther)
	res.Ledger.BaseGas = chain.Gas(c.Ledger.BaseGas)
	res.Ledger.ContractCallGas = chain.Gas(c.Ledger.ContractCallGas)
	res.Ledger.BlockGasLimit = chain.Gas(c.Ledger.BlockGasLimit)
	return res
}

// catalog returns the configured module catalog.
func (c toolConfig) catalog() (*lesson.Catalog, error) {
	if c.Storage.Catalog == "" {
		return lesson.Builtin(), nil
	}
	return lesson.LoadFile(c.Storage.Catalog)
}

var DumpConfigCmd = cli.Command{
	Action: doDumpConfig,
	Name:   "dumpconfig",
	Usage:  "Show the effective configuration in TOML format",
}

func doDumpConfig(context *cli.Context) error {
	cfg, err := makeConfig(context)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = context.App.Writer.Write(out)
	return err
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"log/slog"

	"github.com/Fantom-foundation/Playground/go/lesson"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

type seedFlagType struct {
	cli.Uint64Flag
}

var SeedFlag = &seedFlagType{
	cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed for the synthetic randomness, 0 picks a random seed",
	},
}

func (f *seedFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type dbFlagType struct {
	cli.StringFlag
}

var DBFlag = &dbFlagType{
	cli.StringFlag{
		Name:      "db",
		Usage:     "directory of the LevelDB database keeping the progress, kept in memory if empty",
		TakesFile: true,
	},
}

func (f *dbFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "TOML configuration file",
		TakesFile: true,
	},
}

func (f *configFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type catalogFlagType struct {
	cli.StringFlag
}

var CatalogFlag = &catalogFlagType{
	cli.StringFlag{
		Name:      "catalog",
		Usage:     "JSON file with the lesson modules, the built-in modules are used if empty",
		TakesFile: true,
	},
}

func (f *catalogFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 2,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) (slog.Level, error) {
	verbosity := context.Int(f.Name)
	if verbosity < 0 || verbosity > 5 {
		return 0, fmt.Errorf("invalid verbosity %d, must be between 0 and 5", verbosity)
	}
	return log.FromLegacyLevel(verbosity), nil
}

type noColorFlagType struct {
	cli.BoolFlag
}

var NoColorFlag = &noColorFlagType{
	cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	},
}

func (f *noColorFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type variantFlagType struct {
	cli.StringFlag
}

var VariantFlag = &variantFlagType{
	cli.StringFlag{
		Name:  "variant",
		Usage: "contract variant, one of vulnerable, attack or fixed",
		Value: string(lesson.Vulnerable),
	},
}

func (f *variantFlagType) Fetch(context *cli.Context) (lesson.Variant, error) {
	return lesson.ParseVariant(context.String(f.Name))
}

var GlobalFlags = []cli.Flag{
	SeedFlag,
	DBFlag,
	ConfigFlag,
	CatalogFlag,
	VerbosityFlag,
	NoColorFlag,
}

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
	"fmt"
	"os"
	"strings"

	"github.com/Fantom-foundation/Playground/go/analyzer"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"pgregory.net/rand"
)

var CompileCmd = cli.Command{
	Action:    doCompile,
	Name:      "compile",
	Usage:     "Analyze a contract source file and print the synthetic artifact",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "name of the contract, the first declared contract if empty",
		},
		&cli.StringFlag{
			Name:  "compiler",
			Usage: "compiler version reported in the artifact",
		},
		&cli.BoolFlag{
			Name:  "bytecode",
			Usage: "print the synthetic byte-code",
		},
		&cli.BoolFlag{
			Name:  "abi",
			Usage: "print the ABI in JSON format",
		},
	},
}

func doCompile(context *cli.Context) error {
	if context.Args().Len() < 1 {
		return fmt.Errorf("missing source file")
	}
	filename := context.Args().Get(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	cfg, err := makeConfig(context)
	if err != nil {
		return err
	}
	version := cfg.Session.CompilerVersion
	if context.IsSet("compiler") {
		version = context.String("compiler")
	}
	if !isAvailableVersion(version) {
		return fmt.Errorf("unsupported compiler version %s, use the versions command to list them", version)
	}

	options := []analyzer.Option{analyzer.WithVersion(version)}
	if cfg.Session.Seed != 0 {
		options = append(options, analyzer.WithRandom(rand.New(cfg.Session.Seed)))
	}
	res := analyzer.New(options...).Compile(string(source), context.String("name"))

	out := context.App.Writer
	for _, warning := range res.Warnings {
		fmt.Fprintf(out, "%s %s\n", notice("warning:"), warning)
	}
	if !res.Success {
		for _, msg := range res.Errors {
			fmt.Fprintf(out, "%s %s\n", bad("error:"), msg)
		}
		return fmt.Errorf("compilation of %s failed with %d error(s)", filename, len(res.Errors))
	}

	fmt.Fprintf(out, "%s %s (solc %s)\n", good("compiled"), res.ContractName, res.Version)
	fmt.Fprintf(out, "Bytecode size: %d bytes (%sB)\n", len(res.Bytecode), unitconv.FormatPrefix(float64(len(res.Bytecode)), unitconv.SI, 0))

	contract, err := res.Contract()
	if err != nil {
		return fmt.Errorf("invalid ABI: %w", err)
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Selector", "Signature", "Mutability"})
	table.SetAutoWrapText(false)
	for _, function := range res.ABI {
		method, found := contract.Methods[function.Name]
		if !found {
			continue
		}
		table.Append([]string{
			hexutil.Encode(method.ID),
			method.Sig,
			function.StateMutability,
		})
	}
	table.Render()

	names := maps.Keys(res.GasEstimates)
	slices.Sort(names)
	estimates := make([]string, 0, len(names))
	for _, name := range names {
		estimates = append(estimates, fmt.Sprintf("%s=%d", name, res.GasEstimates[name]))
	}
	fmt.Fprintf(out, "Gas estimates: %s\n", strings.Join(estimates, ", "))

	if context.Bool("bytecode") {
		fmt.Fprintf(out, "Bytecode: %s\n", hexutil.Encode(res.Bytecode))
	}
	if context.Bool("abi") {
		fmt.Fprintf(out, "ABI: %s\n", res.ABIJSON())
	}
	return nil
}

func isAvailableVersion(version string) bool {
	for _, available := range analyzer.AvailableVersions() {
		if available.Version == version {
			return true
		}
	}
	return false
}

var VersionsCmd = cli.Command{
	Action: doVersions,
	Name:   "versions",
	Usage:  "List the supported compiler versions",
}

func doVersions(context *cli.Context) error {
	table := tablewriter.NewWriter(context.App.Writer)
	table.SetHeader([]string{"Version", "Build", "Type"})
	for _, version := range analyzer.AvailableVersions() {
		name := version.Version
		if name == analyzer.DefaultVersion {
			name += " (default)"
		}
		table.Append([]string{name, version.Path, version.Type})
	}
	table.Render()
	return nil
}

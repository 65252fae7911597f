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
	"strings"

	cliUtils "github.com/Fantom-foundation/Playground/go/cmd/playground/cli"
	"github.com/Fantom-foundation/Playground/go/lesson"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var ModulesCmd = cli.Command{
	Action: doModules,
	Name:   "modules",
	Usage:  "List the available lesson modules",
}

func doModules(context *cli.Context) error {
	cfg, err := makeConfig(context)
	if err != nil {
		return err
	}
	catalog, err := cfg.catalog()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(context.App.Writer)
	table.SetHeader([]string{"ID", "Title", "Difficulty", "Category", "Incident"})
	table.SetAutoWrapText(false)
	for _, module := range catalog.All() {
		incident := ""
		if module.IsRealWorld {
			incident = fmt.Sprintf("%s (%s)", module.Loss, module.Date)
		}
		table.Append([]string{
			module.ID,
			module.Title,
			string(module.Difficulty),
			module.Category,
			incident,
		})
	}
	table.Render()
	return nil
}

var ShowCmd = cli.Command{
	Action:    doShow,
	Name:      "show",
	Usage:     "Show the description and the source code of a lesson module",
	ArgsUsage: "<module>",
	Flags: []cli.Flag{
		cliUtils.VariantFlag,
	},
}

func doShow(context *cli.Context) error {
	module, err := lookupModule(context)
	if err != nil {
		return err
	}
	variant, err := cliUtils.VariantFlag.Fetch(context)
	if err != nil {
		return err
	}

	out := context.App.Writer
	fmt.Fprintf(out, "%s\n\n", heading(module.Title))
	fmt.Fprintf(out, "%s\n\n", module.Description)
	fmt.Fprintf(out, "Vulnerability: %s\n", module.Vulnerability)
	fmt.Fprintf(out, "Impact:        %s\n", module.Impact)
	fmt.Fprintf(out, "Prevention:    %s\n\n", module.Prevention)
	fmt.Fprintf(out, "%s\n\n", module.Explanation)
	if len(module.References) > 0 {
		fmt.Fprintf(out, "References:\n  %s\n\n", strings.Join(module.References, "\n  "))
	}
	fmt.Fprintf(out, "%s\n%s", heading(fmt.Sprintf("%s code", variant)), module.Code(variant))
	return nil
}

// lookupModule resolves the module named by the first argument in the
// configured catalog.
func lookupModule(context *cli.Context) (lesson.Module, error) {
	if context.Args().Len() < 1 {
		return lesson.Module{}, fmt.Errorf("missing module, use the modules command to list them")
	}
	cfg, err := makeConfig(context)
	if err != nil {
		return lesson.Module{}, err
	}
	catalog, err := cfg.catalog()
	if err != nil {
		return lesson.Module{}, err
	}
	id := context.Args().Get(0)
	module, found := catalog.Lookup(id)
	if !found {
		return lesson.Module{}, fmt.Errorf("unknown module %s, use one of: %v", id, catalog.IDs())
	}
	return module, nil
}

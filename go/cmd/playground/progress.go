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
	"errors"
	"fmt"
	"time"

	"github.com/Fantom-foundation/Playground/go/playground"
	"github.com/Fantom-foundation/Playground/go/progress"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var ProgressCmd = cli.Command{
	Name:  "progress",
	Usage: "Inspect and update the learning progress",
	Subcommands: []*cli.Command{
		{
			Action: doShowProgress,
			Name:   "show",
			Usage:  "Show the completed modules and the last saved progress",
		},
		{
			Action:    doCompleteModule,
			Name:      "complete",
			Usage:     "Mark a module as completed",
			ArgsUsage: "<module>",
		},
	},
}

// withSession runs the given function on a session bound to the configured
// progress store.
func withSession(context *cli.Context, run func(*playground.Session) error) error {
	cfg, err := makeConfig(context)
	if err != nil {
		return err
	}
	catalog, err := cfg.catalog()
	if err != nil {
		return err
	}
	store, err := openStore(cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	session := playground.NewSession(cfg.playgroundConfig(catalog.Len()), playground.WithStore(store))
	err = run(session)
	(&logPrinter{out: context.App.Writer}).flush(session)
	return err
}

func doShowProgress(context *cli.Context) error {
	return withSession(context, func(session *playground.Session) error {
		out := context.App.Writer
		record, err := session.LoadProgress()
		if errors.Is(err, progress.ErrNotFound) {
			fmt.Fprintln(out, "No progress saved yet")
		} else if err != nil {
			return err
		} else {
			when, _ := record.Time()
			fmt.Fprintf(out, "Last saved: %s\n", when.Local().Format(time.DateTime))
			if record.ModuleID != "" {
				fmt.Fprintf(out, "Last module: %s\n", record.ModuleID)
			}
		}

		completed, err := session.CompletedModules()
		if err != nil {
			return err
		}
		stats := session.Stats()
		table := tablewriter.NewWriter(out)
		table.SetAutoFormatHeaders(false)
		table.SetHeader([]string{"#", "Completed Module"})
		for i, id := range completed {
			table.Append([]string{fmt.Sprint(i + 1), id})
		}
		table.SetFooter([]string{"", fmt.Sprintf("%d of %d", len(completed), stats.TotalModules)})
		table.Render()
		return nil
	})
}

func doCompleteModule(context *cli.Context) error {
	module, err := lookupModule(context)
	if err != nil {
		return err
	}
	return withSession(context, func(session *playground.Session) error {
		if err := session.MarkModuleCompleted(module.ID); err != nil {
			return err
		}
		_, err := session.SaveProgress()
		return err
	})
}

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
	"io"

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/Fantom-foundation/Playground/go/ledger"
	"github.com/Fantom-foundation/Playground/go/lesson"
	"github.com/Fantom-foundation/Playground/go/playground"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var WalkthroughCmd = cli.Command{
	Action:    doWalkthrough,
	Name:      "walkthrough",
	Usage:     "Play a lesson module from compilation to the verified fix",
	ArgsUsage: "<module>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-fix",
			Usage: "stop after the exploit, without testing the fixed contract",
		},
	},
}

type step struct {
	name string
	run  func() error
}

func doWalkthrough(context *cli.Context) error {
	module, err := lookupModule(context)
	if err != nil {
		return err
	}
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

	manager := playground.NewManager(cfg.playgroundConfig(catalog.Len()), store)
	session := manager.Create()
	defer manager.Close(session.ID())
	log.Info("Starting walkthrough", "module", module.ID, "session", session.ID())

	steps := walkthroughSteps(session, module, context.Bool("skip-fix"))
	out := context.App.Writer
	printer := &logPrinter{out: out}
	for i, step := range steps {
		fmt.Fprintf(out, "%s\n", heading(fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.name)))
		err := step.run()
		printer.flush(session)
		if err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	printAccounts(out, session.Ledger())
	printStats(out, session.Stats())
	return nil
}

func walkthroughSteps(session *playground.Session, module lesson.Module, skipFix bool) []step {
	compile := func(variant lesson.Variant) func() error {
		return func() error {
			_, err := session.CompileCode(module.Code(variant), variant)
			return err
		}
	}
	deploy := func(variant lesson.Variant) func() error {
		return func() error {
			_, err := session.DeployContract(module.Code(variant), string(variant))
			return err
		}
	}

	steps := []step{
		{"Load module", func() error { return session.LoadModule(module) }},
		{"Compile vulnerable contract", compile(lesson.Vulnerable)},
		{"Deploy vulnerable contract", deploy(lesson.Vulnerable)},
		{"Compile attack contract", compile(lesson.Attack)},
		{"Deploy attack contract", deploy(lesson.Attack)},
		{"Run exploit", func() error {
			_, err := session.RunExploit(module)
			return err
		}},
	}
	if skipFix {
		return steps
	}
	return append(steps,
		step{"Compile fixed contract", compile(lesson.Fixed)},
		step{"Test fix", func() error {
			report, err := session.TestFix(module, module.FixedCode)
			if err == nil && !report.Verified {
				err = fmt.Errorf("fix of %s not verified", module.ID)
			}
			return err
		}},
		step{"Record progress", func() error {
			if err := session.MarkModuleCompleted(module.ID); err != nil {
				return err
			}
			_, err := session.SaveProgress()
			return err
		}},
	)
}

func printStats(out io.Writer, stats playground.Stats) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Module", "Accounts", "Contracts", "Block", "Gas Used", "Completed"})
	table.Append([]string{
		stats.CurrentModule,
		fmt.Sprint(stats.Accounts),
		fmt.Sprint(stats.Contracts),
		fmt.Sprint(stats.BlockNumber),
		fmt.Sprint(uint64(stats.TotalGasUsed)),
		fmt.Sprintf("%d/%d", stats.CompletedModules, stats.TotalModules),
	})
	table.Render()
}

func printAccounts(out io.Writer, l *ledger.Ledger) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Address", "Balance", "Nonce", "Contract"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, account := range l.Accounts() {
		contract := ""
		if l.IsContract(account.Address) {
			contract = "yes"
		}
		table.Append([]string{
			account.Address.String(),
			formatBalance(account.Balance),
			fmt.Sprint(account.Nonce),
			contract,
		})
	}
	table.Render()
}

// formatBalance renders a balance for tabular output.
func formatBalance(value chain.Value) string {
	return chain.FormatEther(value) + " ETH"
}

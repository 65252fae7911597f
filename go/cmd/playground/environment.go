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
	"io"

	cliUtils "github.com/Fantom-foundation/Playground/go/cmd/playground/cli"
	"github.com/Fantom-foundation/Playground/go/progress"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// setupEnvironment installs the process wide logger and color settings
// before any command runs.
func setupEnvironment(context *cli.Context) error {
	level, err := cliUtils.VerbosityFlag.Fetch(context)
	if err != nil {
		return err
	}
	noColor := cliUtils.NoColorFlag.Fetch(context)
	if noColor {
		color.NoColor = true
	}
	handler := log.NewTerminalHandlerWithLevel(context.App.ErrWriter, level, !color.NoColor)
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// closableStore is a progress store owning resources that need releasing.
type closableStore interface {
	progress.Store
	io.Closer
}

// openStore opens the LevelDB database in dataDir, or an in-memory store if
// dataDir is empty.
func openStore(dataDir string) (closableStore, error) {
	if dataDir == "" {
		return progress.NewMemoryStore(), nil
	}
	store, err := progress.OpenLevelDBStore(dataDir)
	if err != nil {
		return nil, err
	}
	log.Debug("Opened progress database", "path", store.Path())
	return store, nil
}

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
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Playground/go/analyzer"
	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/Fantom-foundation/Playground/go/ledger"
	"github.com/Fantom-foundation/Playground/go/lesson"
)

// nominalDeploymentGas is the gas figure reported for every deployment.
const nominalDeploymentGas = 21_000

// LoadModule starts the given lesson. All state of the session, including
// the ledger, is reinitialized.
func (s *Session) LoadModule(module lesson.Module) error {
	return s.run(Idle, func() error {
		if err := module.Validate(); err != nil {
			s.appendLog(fmt.Sprintf("Failed to load module: %v", err))
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.module = &module
		s.sources = map[lesson.Variant]string{
			lesson.Vulnerable: module.VulnerableCode,
			lesson.Attack:     module.AttackCode,
			lesson.Fixed:      module.FixedCode,
		}
		s.activeVariant = lesson.Vulnerable
		s.clearLocked()
		s.journal.append(
			fmt.Sprintf("Loaded module: %s", module.Title),
			fmt.Sprintf("Difficulty: %s", module.Difficulty),
			fmt.Sprintf("Category: %s", module.Category),
			"Ready to start exploring the vulnerability!",
		)
		s.log.Info("Loaded module", "module", module.ID)
		return nil
	})
}

// Reset discards logs, deployed contracts and results and starts over with
// a fresh ledger. The loaded module and its sources are kept.
func (s *Session) Reset() {
	s.run(Idle, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.clearLocked()
		s.journal.append(
			"Environment reset",
			"Ready to start fresh!",
		)
		s.log.Info("Reset session")
		return nil
	})
}

func (s *Session) clearLocked() {
	s.journal.clear()
	s.deployed = map[string]chain.Address{}
	s.compilation = nil
	s.exploit = nil
	s.ledger = s.newLedger()
}

// CompileCode compiles the given source as the given variant. A failed
// compilation is reported with an ErrValidation error alongside the result.
func (s *Session) CompileCode(code string, variant lesson.Variant) (analyzer.Result, error) {
	var res analyzer.Result
	err := s.run(Compiling, func() error {
		if !variant.Valid() {
			err := fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
			s.appendLog(fmt.Sprintf("Compilation error: %v", err))
			return err
		}
		s.appendLog(fmt.Sprintf("Compiling %s code...", variant))

		res = s.compiler.Compile(code, "")

		s.mu.Lock()
		defer s.mu.Unlock()
		s.sources[variant] = code
		result := res
		s.compilation = &result

		if !res.Success {
			s.journal.append("Compilation failed!")
			for _, msg := range res.Errors {
				s.journal.append("   " + msg)
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(res.Errors, "; "))
		}

		s.journal.append(
			"Compilation successful!",
			fmt.Sprintf("Bytecode length: %d bytes", len(res.Bytecode)),
			fmt.Sprintf("Functions found: %d", len(res.ABI)),
		)
		if len(res.Warnings) > 0 {
			s.journal.append("Warnings:")
			for _, warning := range res.Warnings {
				s.journal.append("   " + warning)
			}
		}
		return nil
	})
	return res, err
}

// DeployContract compiles the given source and deploys it from a freshly
// funded deployer account, registering the contract under the given name.
// Contracts other than the attack contract receive the configured
// endowment.
func (s *Session) DeployContract(code string, name string) (chain.Address, error) {
	var address chain.Address
	err := s.run(Deploying, func() error {
		var err error
		address, err = s.deploy(code, name)
		return err
	})
	return address, err
}

// deploy performs a deployment in the current phase.
func (s *Session) deploy(code string, name string) (chain.Address, error) {
	s.appendLog(fmt.Sprintf("Deploying %s...", name))

	res := s.compiler.Compile(code, "")
	if !res.Success || len(res.Bytecode) == 0 {
		err := fmt.Errorf("%w: compilation failed", ErrValidation)
		s.appendLog(fmt.Sprintf("Deployment failed: %v", err))
		return chain.Address{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deployer := chain.RandomAddress(s.rnd)
	s.ledger.CreateAccount(deployer, s.config.DeployerBalance)
	address := s.ledger.DeployContract(res.Bytecode, deployer)

	funded := name != string(lesson.Attack)
	if funded {
		receipt := s.ledger.ExecuteTransaction(ledger.Transaction{
			From:     deployer,
			To:       address,
			Value:    s.config.Endowment,
			GasLimit: ledger.TxGas + ledger.ContractCallGas,
		})
		if !receipt.Success {
			s.journal.append(fmt.Sprintf("Deployment failed: %v", receipt.Err))
			return chain.Address{}, receipt.Err
		}
	}

	s.deployed[name] = address
	s.ledger.MineBlock()

	s.journal.append(
		"Contract deployed successfully!",
		fmt.Sprintf("Address: %v", address),
		fmt.Sprintf("Gas used: ~%d", nominalDeploymentGas),
		fmt.Sprintf("Transaction hash: %v", chain.RandomHash(s.rnd)),
	)
	if funded {
		s.journal.append(fmt.Sprintf("Endowment: %s ETH", chain.FormatEther(s.config.Endowment)))
	}
	s.log.Debug("Deployed contract", "name", name, "address", address, "deployer", deployer)
	return address, nil
}

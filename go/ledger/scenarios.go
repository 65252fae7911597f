// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ledger

import (
	"fmt"

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/holiman/uint256"
)

// MintedTokens is the number of tokens the access control scenario mints
// for the attacker.
const MintedTokens = 1000

// Outcome is the result of a scripted attack scenario.
type Outcome struct {
	Success bool
	Logs    []string
	Err     error
}

// SimulateReentrancy plays the reentrancy narrative: the attacker withdraws
// from the victim contract twice before its balance is updated. The script
// does not look at the deployed code. It succeeds whenever the victim holds
// funds, draining the victim and crediting the attacker.
func (l *Ledger) SimulateReentrancy(victim, attacker chain.Address) Outcome {
	if !l.IsContract(victim) || !l.AccountExists(attacker) {
		return failedOutcome(nil, "Contract or account not found", ErrUnknownAccount)
	}

	logs := []string{
		"Starting reentrancy attack...",
		fmt.Sprintf("Initial victim balance: %s ETH", chain.FormatEther(l.GetBalance(victim))),
		fmt.Sprintf("Initial attacker balance: %s ETH", chain.FormatEther(l.GetBalance(attacker))),
	}
	if l.GetBalance(victim).IsZero() {
		return failedOutcome(logs, "No funds to drain", ErrNoFunds)
	}

	logs = append(logs,
		"Attacker calls withdraw()...",
		"Victim contract sends ETH to attacker...",
		"Attacker's fallback function triggers reentrancy...",
		"Recursive call to withdraw()...",
		"Second withdrawal successful!",
	)
	if err := l.drain(victim, attacker); err != nil {
		return failedOutcome(logs, fmt.Sprintf("Scenario aborted: %v", err), err)
	}
	logs = append(logs,
		fmt.Sprintf("Final victim balance: %s ETH", chain.FormatEther(l.GetBalance(victim))),
		fmt.Sprintf("Final attacker balance: %s ETH", chain.FormatEther(l.GetBalance(attacker))),
		"REENTRANCY ATTACK SUCCESSFUL!",
	)
	l.log.Debug("Simulated reentrancy", "victim", victim, "attacker", attacker)
	return Outcome{Success: true, Logs: logs}
}

// SimulateAccessControl plays the missing access control narrative: the
// attacker calls an unguarded mint function and sweeps the contract. Like
// SimulateReentrancy, it ignores the deployed code.
func (l *Ledger) SimulateAccessControl(contract, attacker chain.Address) Outcome {
	if !l.IsContract(contract) || !l.AccountExists(attacker) {
		return failedOutcome(nil, "Contract or account not found", ErrUnknownAccount)
	}

	logs := []string{
		"Starting access control attack...",
		fmt.Sprintf("Attacker address: %v", attacker),
	}
	balance := l.GetBalance(contract)
	if balance.IsZero() {
		return failedOutcome(logs, "No funds to drain", ErrNoFunds)
	}

	logs = append(logs,
		"Attacker calls mint() function...",
		"No access control check detected!",
		"Unauthorized minting successful!",
		fmt.Sprintf("Attacker receives %d tokens", MintedTokens),
	)
	l.mint(contract, attacker, MintedTokens)
	if err := l.drain(contract, attacker); err != nil {
		return failedOutcome(logs, fmt.Sprintf("Scenario aborted: %v", err), err)
	}
	logs = append(logs,
		fmt.Sprintf("Attacker sweeps %s ETH from the contract", chain.FormatEther(balance)),
		"ACCESS CONTROL ATTACK SUCCESSFUL!",
	)
	l.log.Debug("Simulated access control breach", "contract", contract, "attacker", attacker)
	return Outcome{Success: true, Logs: logs}
}

// drain moves the full balance of victim to beneficiary.
func (l *Ledger) drain(victim, beneficiary chain.Address) error {
	credited, err := chain.Add(l.GetBalance(beneficiary), l.GetBalance(victim))
	if err != nil {
		return err
	}
	l.SetBalance(beneficiary, credited)
	l.SetBalance(victim, chain.Value{})
	return nil
}

// mint credits tokens to the holder in the token ledger kept in the storage
// of the contract. The slot of a holder is its left-aligned address.
func (l *Ledger) mint(contract, holder chain.Address, amount uint64) {
	var key chain.Key
	copy(key[:], holder[:])
	current := l.GetStorage(contract, key)
	updated := new(uint256.Int).SetBytes32(current[:])
	updated.Add(updated, uint256.NewInt(amount))
	l.SetStorage(contract, key, chain.Word(updated.Bytes32()))
}

// TokenBalance returns the number of tokens minted to holder by contract.
func (l *Ledger) TokenBalance(contract, holder chain.Address) *uint256.Int {
	var key chain.Key
	copy(key[:], holder[:])
	word := l.GetStorage(contract, key)
	return new(uint256.Int).SetBytes32(word[:])
}

func failedOutcome(logs []string, line string, err error) Outcome {
	return Outcome{
		Success: false,
		Logs:    append(logs, line),
		Err:     fmt.Errorf("%w: %w", ErrSimulation, err),
	}
}

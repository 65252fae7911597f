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
	"errors"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Playground/go/chain"
)

func setupScenario(t *testing.T, endowment chain.Value) (*Ledger, chain.Address, chain.Address) {
	t.Helper()
	l := New(Config{})
	victim := l.DeployContract(chain.Code{1}, SeedAccounts[2])
	if !endowment.IsZero() {
		receipt := l.ExecuteTransaction(Transaction{
			From:  SeedAccounts[2],
			To:    victim,
			Value: endowment,
		})
		if !receipt.Success {
			t.Fatalf("failed to fund victim: %v", receipt.Err)
		}
	}
	return l, victim, SeedAccounts[1]
}

func TestSimulateReentrancy_DrainsVictim(t *testing.T) {
	l, victim, attacker := setupScenario(t, chain.Ether(10))

	outcome := l.SimulateReentrancy(victim, attacker)
	if !outcome.Success {
		t.Fatalf("scenario failed: %v", outcome.Err)
	}
	if !l.GetBalance(victim).IsZero() {
		t.Errorf("victim was not drained: %v", l.GetBalance(victim))
	}
	if want, got := chain.Ether(110), l.GetBalance(attacker); want != got {
		t.Errorf("unexpected attacker balance, wanted %v, got %v", want, got)
	}
	if want, got := "REENTRANCY ATTACK SUCCESSFUL!", outcome.Logs[len(outcome.Logs)-1]; want != got {
		t.Errorf("unexpected final log, wanted %q, got %q", want, got)
	}
}

func TestSimulateAccessControl_MintsAndSweeps(t *testing.T) {
	l, contract, attacker := setupScenario(t, chain.Ether(3))

	outcome := l.SimulateAccessControl(contract, attacker)
	if !outcome.Success {
		t.Fatalf("scenario failed: %v", outcome.Err)
	}
	if want, got := uint64(MintedTokens), l.TokenBalance(contract, attacker).Uint64(); want != got {
		t.Errorf("unexpected token balance, wanted %d, got %d", want, got)
	}
	if !l.GetBalance(contract).IsZero() {
		t.Errorf("contract was not swept")
	}
	if want, got := chain.Ether(103), l.GetBalance(attacker); want != got {
		t.Errorf("unexpected attacker balance, wanted %v, got %v", want, got)
	}
}

func TestScenarios_FailWithoutFunds(t *testing.T) {
	scenarios := map[string]func(*Ledger, chain.Address, chain.Address) Outcome{
		"reentrancy":     (*Ledger).SimulateReentrancy,
		"access control": (*Ledger).SimulateAccessControl,
	}

	for name, simulate := range scenarios {
		t.Run(name, func(t *testing.T) {
			l, victim, attacker := setupScenario(t, chain.Value{})
			before := l.GetBalance(attacker)

			outcome := simulate(l, victim, attacker)
			if outcome.Success {
				t.Fatalf("scenario should fail on an empty victim")
			}
			if !errors.Is(outcome.Err, ErrNoFunds) || !errors.Is(outcome.Err, ErrSimulation) {
				t.Errorf("unexpected error: %v", outcome.Err)
			}
			if want, got := "No funds to drain", outcome.Logs[len(outcome.Logs)-1]; want != got {
				t.Errorf("unexpected final log, wanted %q, got %q", want, got)
			}
			if got := l.GetBalance(attacker); got != before {
				t.Errorf("attacker balance changed from %v to %v", before, got)
			}
		})
	}
}

func TestScenarios_FailOnUnknownParties(t *testing.T) {
	tests := map[string]struct {
		victim   func(*Ledger, chain.Address) chain.Address
		attacker chain.Address
	}{
		"victim is plain account": {
			victim:   func(*Ledger, chain.Address) chain.Address { return SeedAccounts[0] },
			attacker: SeedAccounts[1],
		},
		"attacker does not exist": {
			victim:   func(_ *Ledger, contract chain.Address) chain.Address { return contract },
			attacker: chain.Address{0xde, 0xad},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			l, contract, _ := setupScenario(t, chain.Ether(1))
			outcome := l.SimulateReentrancy(test.victim(l, contract), test.attacker)
			if outcome.Success {
				t.Fatalf("scenario should fail")
			}
			if !errors.Is(outcome.Err, ErrUnknownAccount) {
				t.Errorf("unexpected error: %v", outcome.Err)
			}
			if len(outcome.Logs) != 1 || !strings.Contains(outcome.Logs[0], "not found") {
				t.Errorf("unexpected logs: %v", outcome.Logs)
			}
		})
	}
}

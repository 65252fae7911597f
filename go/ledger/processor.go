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
)

const (
	// ErrSimulation is the umbrella for every failure reported by a
	// transaction or a scripted scenario.
	ErrSimulation = chain.ConstError("simulation failure")

	ErrUnknownSender       = chain.ConstError("sender account not found")
	ErrUnknownAccount      = chain.ConstError("contract or account not found")
	ErrInsufficientBalance = chain.ConstError("insufficient balance")
	ErrNoFunds             = chain.ConstError("no funds to drain")
)

// Transaction summarizes the parameters of a transaction to be executed on
// the ledger.
type Transaction struct {
	From     chain.Address
	To       chain.Address
	Value    chain.Value
	Data     chain.Data
	GasLimit chain.Gas
	GasPrice chain.Value
}

// Receipt summarizes the result of the execution of a transaction.
type Receipt struct {
	Success bool
	GasUsed chain.Gas
	Logs    []string
	Err     error // the reason of a failure, nil on success
}

// ExecuteTransaction runs the given transaction. The sender must exist and
// be able to pay for the value and the base gas. Once the sender is known,
// its nonce is incremented even if the transaction fails afterwards.
func (l *Ledger) ExecuteTransaction(tx Transaction) Receipt {
	gasUsed := l.config.BaseGas
	var logs []string

	fail := func(err error) Receipt {
		logs = append(logs, fmt.Sprintf("Transaction failed: %v", err))
		l.log.Debug("Transaction failed", "from", tx.From, "to", tx.To, "err", err)
		return Receipt{
			Success: false,
			GasUsed: gasUsed,
			Logs:    logs,
			Err:     fmt.Errorf("%w: %w", ErrSimulation, err),
		}
	}

	if !l.AccountExists(tx.From) {
		return fail(ErrUnknownSender)
	}
	incrementNonce(tx, l)

	if err := buyGas(tx, gasUsed, l); err != nil {
		return fail(err)
	}

	if contract, found := l.contracts[tx.To]; found {
		result := dispatch(contract, tx)
		gasUsed += l.config.ContractCallGas
		logs = append(logs, result...)
		if err := transferValue(tx, l); err != nil {
			return fail(err)
		}
	} else {
		created := false
		if !l.AccountExists(tx.To) {
			l.CreateAccount(tx.To, l.config.DefaultBalance)
			created = true
		}
		if err := transferValue(tx, l); err != nil {
			return fail(err)
		}
		if created {
			logs = append(logs, fmt.Sprintf("Created account %v and transferred %s ETH", tx.To, chain.FormatEther(tx.Value)))
		} else {
			logs = append(logs, fmt.Sprintf("Transferred %s ETH from %v to %v", chain.FormatEther(tx.Value), tx.From, tx.To))
		}
	}

	l.gasUsed += gasUsed
	return Receipt{
		Success: true,
		GasUsed: gasUsed,
		Logs:    logs,
	}
}

func incrementNonce(tx Transaction, state WorldState) {
	state.SetNonce(tx.From, state.GetNonce(tx.From)+1)
}

// buyGas checks that the sender can afford the value and the base gas and
// deducts the gas cost.
func buyGas(tx Transaction, gas chain.Gas, state WorldState) error {
	cost := tx.GasPrice.Scale(uint64(gas))
	required, err := chain.Add(tx.Value, cost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
	}

	senderBalance := state.GetBalance(tx.From)
	if senderBalance.Cmp(required) < 0 {
		return fmt.Errorf("%w: %v < %v", ErrInsufficientBalance, senderBalance, required)
	}

	senderBalance, err = chain.Sub(senderBalance, cost)
	if err != nil {
		return err
	}
	state.SetBalance(tx.From, senderBalance)
	return nil
}

func transferValue(tx Transaction, state WorldState) error {
	if tx.Value.IsZero() || tx.From == tx.To {
		return nil
	}

	senderBalance, err := chain.Sub(state.GetBalance(tx.From), tx.Value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientBalance, err)
	}
	receiverBalance, err := chain.Add(state.GetBalance(tx.To), tx.Value)
	if err != nil {
		return err
	}

	state.SetBalance(tx.From, senderBalance)
	state.SetBalance(tx.To, receiverBalance)
	return nil
}

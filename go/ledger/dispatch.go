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

var (
	SelectorOwner    = chain.Selector{0x8d, 0xa5, 0xcb, 0x5b} // owner()
	SelectorWithdraw = chain.Selector{0x27, 0xdc, 0xe7, 0xec} // withdraw, fixed by the simulator
	SelectorTransfer = chain.Selector{0xa9, 0x05, 0x9c, 0xbb} // transfer(address,uint256)
	SelectorMint     = chain.Selector{0x40, 0xc1, 0x0f, 0x19} // mint(address,uint256)
)

// contractFunctions is the complete set of functions a simulated contract
// understands. Calls do not depend on the deployed code.
var contractFunctions = map[chain.Selector]string{
	SelectorOwner:    "Getting owner address",
	SelectorWithdraw: "Withdrawing funds...",
	SelectorTransfer: "Transferring tokens...",
	SelectorMint:     "Minting tokens...",
}

func dispatch(contract *Contract, tx Transaction) []string {
	logs := []string{
		fmt.Sprintf("Executing contract at %v", contract.Address),
		fmt.Sprintf("Function selector: %s", selectorText(tx.Data)),
	}
	if selector, ok := tx.Data.Selector(); ok {
		if line, found := contractFunctions[selector]; found {
			return append(logs, line)
		}
	}
	return append(logs, "Unknown function call")
}

func selectorText(data chain.Data) string {
	if selector, ok := data.Selector(); ok {
		return selector.String()
	}
	return fmt.Sprintf("0x%x", []byte(data))
}

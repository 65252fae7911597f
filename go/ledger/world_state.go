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

import "github.com/Fantom-foundation/Playground/go/chain"

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package ledger

// WorldState is the view on the ledger used by the transaction processing
// steps. It is implemented by Ledger and mocked in tests.
type WorldState interface {
	AccountExists(chain.Address) bool

	GetBalance(chain.Address) chain.Value
	SetBalance(chain.Address, chain.Value)

	GetNonce(chain.Address) uint64
	SetNonce(chain.Address, uint64)
}

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
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/Playground/go/chain"
	"golang.org/x/exp/maps"
)

// ----------------------------------------------------------------------------
// Account
// ----------------------------------------------------------------------------

// Account is an externally visible balance holder on the ledger. Contracts
// own an account at their address as well, so they can hold funds.
type Account struct {
	Address chain.Address
	Balance chain.Value
	Nonce   uint64
}

func (a *Account) Equal(other *Account) bool {
	return a.Address == other.Address &&
		a.Balance == other.Balance &&
		a.Nonce == other.Nonce
}

func (a *Account) Diff(other *Account) []string {
	var res []string
	if a.Address != other.Address {
		res = append(res, fmt.Sprintf("different address: %v != %v", a.Address, other.Address))
	}
	if a.Balance != other.Balance {
		res = append(res, fmt.Sprintf("different balance: %v != %v", a.Balance, other.Balance))
	}
	if a.Nonce != other.Nonce {
		res = append(res, fmt.Sprintf("different nonce: %v != %v", a.Nonce, other.Nonce))
	}
	return res
}

// ----------------------------------------------------------------------------
// Contract
// ----------------------------------------------------------------------------

// Contract is deployed code together with its storage.
type Contract struct {
	Address  chain.Address
	Code     chain.Code
	Storage  Storage
	CodeHash chain.Hash
}

func (c *Contract) Clone() Contract {
	return Contract{
		Address:  c.Address,
		Code:     append(chain.Code(nil), c.Code...),
		Storage:  c.Storage.Clone(),
		CodeHash: c.CodeHash,
	}
}

func (c *Contract) Equal(other *Contract) bool {
	return c.Address == other.Address &&
		bytes.Equal(c.Code, other.Code) &&
		c.CodeHash == other.CodeHash &&
		c.Storage.Equal(other.Storage)
}

// ----------------------------------------------------------------------------
// Storage
// ----------------------------------------------------------------------------

// Storage maps storage keys of a contract to values. Zero-valued entries are
// ignored when comparing storages.
type Storage map[chain.Key]chain.Word

func (s Storage) Equal(other Storage) bool {
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if s[k] != v {
			return false
		}
	}
	return true
}

func (s Storage) Clone() Storage {
	if s == nil {
		return Storage{}
	}
	return maps.Clone(s)
}

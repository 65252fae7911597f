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
	"encoding/binary"
	"strconv"

	"github.com/Fantom-foundation/Playground/go/chain"
)

// ContractAddress derives the address of a contract created by deployer at
// the given nonce. The derivation uses a 32-bit rolling hash, so distinct
// inputs may collide; collisions are not detected.
func ContractAddress(deployer chain.Address, nonce uint64) chain.Address {
	hash := rollingHash(deployer.String() + strconv.FormatUint(nonce, 10))
	var res chain.Address
	copy(res[:], hash[len(hash)-len(res):])
	return res
}

// rollingHash computes the classic h = 31*h + c string hash with 32-bit
// wrap-around and returns its absolute value right-aligned in a Hash.
func rollingHash(data string) chain.Hash {
	var h int32
	for _, c := range data {
		h = (h << 5) - h + int32(c)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	var res chain.Hash
	binary.BigEndian.PutUint64(res[24:], uint64(abs))
	return res
}

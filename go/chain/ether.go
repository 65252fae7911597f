// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

var weiPerEther = uint256.NewInt(params.Ether)

// Ether returns n whole units of currency expressed in wei.
func Ether(n uint64) Value {
	return ValueFromUint256(new(uint256.Int).Mul(uint256.NewInt(n), weiPerEther))
}

// FormatEther renders a wei amount as ether with six decimal places. The
// fraction is truncated, not rounded.
func FormatEther(v Value) string {
	whole, frac := new(uint256.Int).DivMod(v.ToUint256(), weiPerEther, new(uint256.Int))
	micro := new(uint256.Int).Div(frac, uint256.NewInt(params.Ether/1_000_000))
	return fmt.Sprintf("%s.%06d", whole.Dec(), micro.Uint64())
}

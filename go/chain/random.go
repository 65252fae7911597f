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

import "pgregory.net/rand"

// RandomAddress draws an address from the given random source.
func RandomAddress(rnd *rand.Rand) Address {
	address := Address{}
	rnd.Read(address[:]) // never returns an error
	return address
}

// RandomHash draws a hash from the given random source.
func RandomHash(rnd *rand.Rand) Hash {
	hash := Hash{}
	rnd.Read(hash[:])
	return hash
}

// RandomCode draws size bytes of synthetic code from the given source.
func RandomCode(rnd *rand.Rand, size int) Code {
	code := make(Code, size)
	rnd.Read(code)
	return code
}

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
	"testing"

	"pgregory.net/rand"
)

func TestKeccak256_EmptyInput(t *testing.T) {
	want := "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := Keccak256().String(); got != want {
		t.Errorf("unexpected hash of empty input, wanted %v, got %v", want, got)
	}
}

func TestSelectorOf_KnownSignatures(t *testing.T) {
	tests := map[string]string{
		"owner()":                   "0x8da5cb5b",
		"transfer(address,uint256)": "0xa9059cbb",
		"mint(address,uint256)":     "0x40c10f19",
	}

	for signature, want := range tests {
		if got := SelectorOf(signature).String(); got != want {
			t.Errorf("unexpected selector for %v, wanted %v, got %v", signature, want, got)
		}
	}
}

func TestRandomAddress_IsReproducibleForFixedSeed(t *testing.T) {
	a := RandomAddress(rand.New(42))
	b := RandomAddress(rand.New(42))
	if a != b {
		t.Errorf("same seed should produce same address, got %v and %v", a, b)
	}
	if a == (Address{}) {
		t.Errorf("random address should not be zero")
	}
}

func TestRandomCode_HasRequestedSize(t *testing.T) {
	rnd := rand.New(1)
	for _, size := range []int{0, 1, 50, 1000} {
		if got := len(RandomCode(rnd, size)); got != size {
			t.Errorf("unexpected code size, wanted %d, got %d", size, got)
		}
	}
}

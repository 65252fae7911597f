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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Address identifies an account or a contract on the simulated ledger. It is
// an opaque identifier; no cryptographic property is attached to it.
type Address [20]byte

// Hash represents a 256-bit (32 bytes) digest of code, a block or a
// transaction.
type Hash [32]byte

// Key represents the 256-bit (32 bytes) key of a contract storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 bytes) storage value.
type Word [32]byte

// Value represents an amount of chain currency in wei. Values are unsigned,
// so a balance can never become negative.
type Value [32]byte

// Code represents the (synthetic) byte-code of a contract.
type Code []byte

// Data is the input payload of a transaction.
type Data []byte

// Gas counts units of gas.
type Gas uint64

// Selector is the 4-byte function identifier at the start of call data.
type Selector [4]byte

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

// HexToAddress parses a 0x-prefixed, 40 digit hex string into an address.
func HexToAddress(s string) (Address, error) {
	var res Address
	err := res.UnmarshalText([]byte(s))
	return res, err
}

// MustHexToAddress is like HexToAddress but panics on malformed input. It is
// intended for hard-coded addresses only.
func MustHexToAddress(s string) Address {
	res, err := HexToAddress(s)
	if err != nil {
		panic(fmt.Sprintf("invalid address %q: %v", s, err))
	}
	return res
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func (k Key) String() string {
	return fmt.Sprintf("0x%x", k[:])
}

func (w Word) String() string {
	return fmt.Sprintf("0x%x", w[:])
}

func (s Selector) String() string {
	return fmt.Sprintf("0x%x", s[:])
}

// Selector returns the first four bytes of the data, or false if the data
// is too short to carry a function selector.
func (d Data) Selector() (Selector, bool) {
	var res Selector
	if len(d) < len(res) {
		return res, false
	}
	copy(res[:], d)
	return res, true
}

func (c Code) String() string {
	return fmt.Sprintf("0x%x", []byte(c))
}

func (v Value) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(v[:])
}

func (v Value) String() string {
	return v.ToUint256().String()
}

func (v Value) Cmp(o Value) int {
	return bytes.Compare(v[:], o[:])
}

func (v Value) IsZero() bool {
	return v == Value{}
}

// NewValue creates a new Value instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a value of zero.
func NewValue(args ...uint64) (result Value) {
	if len(args) > 4 {
		panic("Too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < 4; i++ {
		start := (offset * 8) + i*8
		end := start + 8
		binary.BigEndian.PutUint64(result[start:end], args[i])
	}
	return
}

// ValueFromUint256 converts a *uint256.Int to a Value.
// If the input is nil, it returns 0.
func ValueFromUint256(value *uint256.Int) (result Value) {
	if value == nil {
		return result
	}
	return value.Bytes32()
}

// Add returns a+b, reporting an error if the sum does not fit into 256 bits.
func Add(a, b Value) (Value, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.ToUint256(), b.ToUint256())
	if overflow {
		return Value{}, fmt.Errorf("%w: %v + %v", ErrValueOverflow, a, b)
	}
	return ValueFromUint256(sum), nil
}

// Sub returns a-b, reporting an error if b exceeds a.
func Sub(a, b Value) (Value, error) {
	if a.Cmp(b) < 0 {
		return Value{}, fmt.Errorf("%w: %v - %v", ErrValueUnderflow, a, b)
	}
	return ValueFromUint256(new(uint256.Int).Sub(a.ToUint256(), b.ToUint256())), nil
}

// Scale multiplies v by s, saturating at the maximum 256-bit value.
func (v Value) Scale(s uint64) Value {
	sU256 := new(uint256.Int).SetUint64(s)
	res, overflow := new(uint256.Int).MulOverflow(v.ToUint256(), sU256)
	if overflow {
		return ValueFromUint256(new(uint256.Int).SetAllOne())
	}
	return ValueFromUint256(res)
}

func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Value) UnmarshalText(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, "0x") {
		return textToBytes(v[:], data)
	}
	res, err := uint256.FromDecimal(s)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", s, err)
	}
	*v = ValueFromUint256(res)
	return nil
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg[:], data)
	return nil
}

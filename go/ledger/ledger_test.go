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
	"testing"
	"time"

	"github.com/Fantom-foundation/Playground/go/chain"
	"pgregory.net/rand"
)

func TestLedger_NewHoldsSeedAccounts(t *testing.T) {
	l := New(DefaultConfig())

	for _, address := range SeedAccounts {
		account, found := l.GetAccount(address)
		if !found {
			t.Fatalf("seed account %v not found", address)
		}
		if want, got := chain.Ether(100), account.Balance; want != got {
			t.Errorf("unexpected balance of %v, wanted %v, got %v", address, want, got)
		}
		if account.Nonce != 0 {
			t.Errorf("unexpected nonce of %v: %d", address, account.Nonce)
		}
	}

	stats := l.Stats()
	if want, got := (Stats{Accounts: 4, BlockNumber: 1}), stats; want != got {
		t.Errorf("unexpected stats, wanted %+v, got %+v", want, got)
	}
}

func TestLedger_CreateAccountReplacesExisting(t *testing.T) {
	l := New(Config{})
	address := SeedAccounts[0]
	l.SetNonce(address, 7)

	l.CreateAccount(address, chain.NewValue(5))

	account, _ := l.GetAccount(address)
	want := Account{Address: address, Balance: chain.NewValue(5)}
	if !account.Equal(&want) {
		t.Errorf("account was not replaced: %v", account.Diff(&want))
	}
	if want, got := 4, l.Stats().Accounts; want != got {
		t.Errorf("unexpected number of accounts, wanted %d, got %d", want, got)
	}
}

func TestLedger_SetBalanceCreatesMissingAccount(t *testing.T) {
	l := New(Config{})
	address := chain.Address{0x77}

	l.SetBalance(address, chain.NewValue(3))
	if !l.AccountExists(address) {
		t.Fatalf("account was not created")
	}
	if want, got := chain.NewValue(3), l.GetBalance(address); want != got {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
}

func TestLedger_SetNonceIgnoresMissingAccount(t *testing.T) {
	l := New(Config{})
	address := chain.Address{0x77}

	l.SetNonce(address, 3)
	if l.AccountExists(address) {
		t.Errorf("setting a nonce must not create an account")
	}
	if got := l.GetNonce(address); got != 0 {
		t.Errorf("unexpected nonce: %d", got)
	}
}

func TestLedger_DeployContract(t *testing.T) {
	l := New(Config{})
	deployer := SeedAccounts[0]
	code := chain.Code{0x60, 0x80, 0x60, 0x40}

	address := l.DeployContract(code, deployer)
	if want := ContractAddress(deployer, 0); want != address {
		t.Errorf("unexpected contract address, wanted %v, got %v", want, address)
	}

	contract, found := l.GetContract(address)
	if !found {
		t.Fatalf("contract not found")
	}
	want := Contract{
		Address:  address,
		Code:     code,
		Storage:  Storage{},
		CodeHash: chain.Keccak256(code),
	}
	if !contract.Equal(&want) {
		t.Errorf("unexpected contract, wanted %v, got %v", want, contract)
	}
	if !l.IsContract(address) {
		t.Errorf("deployed address is not reported as contract")
	}
	if !l.AccountExists(address) || !l.GetBalance(address).IsZero() {
		t.Errorf("contract should own an empty account")
	}
	if got := l.GetNonce(deployer); got != 0 {
		t.Errorf("deployment must not change the nonce of the deployer, got %d", got)
	}
}

func TestLedger_DeployTwiceReplacesCodeAtSameAddress(t *testing.T) {
	l := New(Config{})
	deployer := SeedAccounts[0]

	first := l.DeployContract(chain.Code{1}, deployer)
	l.SetStorage(first, chain.Key{1}, chain.Word{2})
	second := l.DeployContract(chain.Code{2}, deployer)

	if first != second {
		t.Fatalf("expected same address, got %v and %v", first, second)
	}
	if want, got := 1, l.Stats().Contracts; want != got {
		t.Errorf("unexpected number of contracts, wanted %d, got %d", want, got)
	}
	contract, _ := l.GetContract(first)
	if want, got := (chain.Code{2}), contract.Code; string(want) != string(got) {
		t.Errorf("code was not replaced, wanted %v, got %v", want, got)
	}
	if want, got := (chain.Word{2}), l.GetStorage(first, chain.Key{1}); want != got {
		t.Errorf("storage was not preserved, wanted %v, got %v", want, got)
	}
}

func TestLedger_DeployAfterNonceChangeUsesNewAddress(t *testing.T) {
	l := New(Config{})
	deployer := SeedAccounts[0]

	first := l.DeployContract(chain.Code{1}, deployer)
	l.SetNonce(deployer, 1)
	second := l.DeployContract(chain.Code{1}, deployer)

	if first == second {
		t.Errorf("expected different addresses, got %v twice", first)
	}
}

func TestLedger_GetContractReturnsCopy(t *testing.T) {
	l := New(Config{})
	address := l.DeployContract(chain.Code{1, 2}, SeedAccounts[0])
	l.SetStorage(address, chain.Key{1}, chain.Word{1})

	contract, _ := l.GetContract(address)
	contract.Code[0] = 9
	contract.Storage[chain.Key{1}] = chain.Word{9}

	original, _ := l.GetContract(address)
	if original.Code[0] != 1 || original.Storage[chain.Key{1}] != (chain.Word{1}) {
		t.Errorf("modifying a copy changed the ledger")
	}
}

func TestLedger_StorageOfUnknownContractIsZero(t *testing.T) {
	l := New(Config{})
	l.SetStorage(SeedAccounts[0], chain.Key{1}, chain.Word{1})
	if got := l.GetStorage(SeedAccounts[0], chain.Key{1}); got != (chain.Word{}) {
		t.Errorf("plain accounts must not have storage, got %v", got)
	}
}

func TestLedger_MineBlock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	l := New(Config{}, WithClock(clock), WithRandom(rand.New(42)))
	genesis := l.CurrentBlock()
	if genesis.Number != 1 || genesis.GasLimit != BlockGasLimit {
		t.Fatalf("unexpected initial block: %+v", genesis)
	}

	next := l.MineBlock()
	if want, got := uint64(2), next.Number; want != got {
		t.Errorf("unexpected block number, wanted %d, got %d", want, got)
	}
	if !next.Timestamp.After(genesis.Timestamp) {
		t.Errorf("timestamp did not advance: %v <= %v", next.Timestamp, genesis.Timestamp)
	}
	if next.Hash == genesis.Hash {
		t.Errorf("block hash was not renewed")
	}
	if want, got := next, l.CurrentBlock(); want != got {
		t.Errorf("unexpected current block, wanted %+v, got %+v", want, got)
	}
}

func TestLedger_SameSeedGivesSameBlockHashes(t *testing.T) {
	a := New(Config{}, WithRandom(rand.New(7)))
	b := New(Config{}, WithRandom(rand.New(7)))
	if a.CurrentBlock().Hash != b.CurrentBlock().Hash {
		t.Errorf("block hashes differ for same seed")
	}
	if a.MineBlock().Hash != b.MineBlock().Hash {
		t.Errorf("mined block hashes differ for same seed")
	}
}

func TestLedger_ListingsAreSorted(t *testing.T) {
	l := New(Config{})
	l.DeployContract(chain.Code{1}, SeedAccounts[0])
	l.DeployContract(chain.Code{1}, SeedAccounts[1])

	accounts := l.Accounts()
	if want, got := 6, len(accounts); want != got {
		t.Fatalf("unexpected number of accounts, wanted %d, got %d", want, got)
	}
	for i := 1; i < len(accounts); i++ {
		if compareAddresses(accounts[i-1].Address, accounts[i].Address) >= 0 {
			t.Errorf("accounts not sorted at position %d", i)
		}
	}

	contracts := l.Contracts()
	if want, got := 2, len(contracts); want != got {
		t.Fatalf("unexpected number of contracts, wanted %d, got %d", want, got)
	}
	if compareAddresses(contracts[0].Address, contracts[1].Address) >= 0 {
		t.Errorf("contracts not sorted")
	}
}

func TestConfig_ZeroValuesAreReplacedByDefaults(t *testing.T) {
	got := Config{BaseGas: 1}.withDefaults()
	want := DefaultConfig()
	want.BaseGas = 1

	if got.BaseGas != want.BaseGas ||
		got.SeedBalance != want.SeedBalance ||
		got.DefaultBalance != want.DefaultBalance ||
		got.ContractCallGas != want.ContractCallGas ||
		got.BlockGasLimit != want.BlockGasLimit ||
		len(got.SeedAccounts) != len(want.SeedAccounts) {
		t.Errorf("unexpected config, wanted %+v, got %+v", want, got)
	}
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	l := New(Config{})
	contract := l.DeployContract(chain.Code{1}, SeedAccounts[0])
	l.SetStorage(contract, chain.Key{1}, chain.Word{1})

	clone := l.Clone()
	clone.SetBalance(SeedAccounts[0], chain.NewValue(1))
	clone.SetStorage(contract, chain.Key{1}, chain.Word{2})
	clone.CreateAccount(chain.Address{0x55}, chain.NewValue(1))
	clone.MineBlock()

	if want, got := chain.Ether(100), l.GetBalance(SeedAccounts[0]); want != got {
		t.Errorf("balance of original changed, wanted %v, got %v", want, got)
	}
	if want, got := (chain.Word{1}), l.GetStorage(contract, chain.Key{1}); want != got {
		t.Errorf("storage of original changed, wanted %v, got %v", want, got)
	}
	if l.AccountExists(chain.Address{0x55}) {
		t.Errorf("account created in clone appears in original")
	}
	if want, got := uint64(1), l.CurrentBlock().Number; want != got {
		t.Errorf("block of original changed, wanted %d, got %d", want, got)
	}
	if want, got := l.Stats().Contracts, clone.Stats().Contracts; want != got {
		t.Errorf("clone lost contracts, wanted %d, got %d", want, got)
	}
}

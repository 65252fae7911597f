// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ledger provides a miniature, in-memory stand-in for a block chain.
// It keeps accounts and contracts, executes synthetic transactions and plays
// scripted attack scenarios. It executes no real byte-code; every effect of
// a contract call is canned.
//
// A Ledger is owned by a single session and is not safe for concurrent use.
package ledger

import (
	"bytes"
	"time"

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"pgregory.net/rand"
)

// Block is the synthetic head block of the ledger.
type Block struct {
	Number    uint64
	Hash      chain.Hash
	Timestamp time.Time
	GasLimit  chain.Gas
}

// Stats summarizes the content of a ledger.
type Stats struct {
	Accounts     int
	Contracts    int
	BlockNumber  uint64
	TotalGasUsed chain.Gas
}

type Ledger struct {
	config    Config
	accounts  map[chain.Address]*Account
	contracts map[chain.Address]*Contract
	block     Block
	gasUsed   chain.Gas

	rnd        *rand.Rand
	now        func() time.Time
	log        log.Logger
	codeHashes *lru.Cache[string, chain.Hash]
}

// Option customizes a ledger at construction time.
type Option func(*Ledger)

// WithRandom makes the ledger draw block hashes from the given source. Tests
// use this to pin a seed.
func WithRandom(rnd *rand.Rand) Option {
	return func(l *Ledger) {
		l.rnd = rnd
	}
}

// WithClock replaces the wall clock used for block timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithLogger(logger log.Logger) Option {
	return func(l *Ledger) {
		l.log = logger
	}
}

// New creates a fresh ledger holding the configured seed accounts.
func New(config Config, options ...Option) *Ledger {
	// can only fail for non-positive size
	cache, _ := lru.New[string, chain.Hash](256)

	res := &Ledger{
		config:     config.withDefaults(),
		accounts:   map[chain.Address]*Account{},
		contracts:  map[chain.Address]*Contract{},
		now:        time.Now,
		log:        log.Root(),
		codeHashes: cache,
	}
	for _, option := range options {
		option(res)
	}
	if res.rnd == nil {
		res.rnd = rand.New()
	}

	res.block = Block{
		Number:    1,
		Hash:      chain.RandomHash(res.rnd),
		Timestamp: res.now(),
		GasLimit:  res.config.BlockGasLimit,
	}
	for _, address := range res.config.SeedAccounts {
		res.CreateAccount(address, res.config.SeedBalance)
	}
	return res
}

// Clone returns an independent deep copy of the ledger. The copy draws
// block hashes from a fresh random source.
func (l *Ledger) Clone() *Ledger {
	res := &Ledger{
		config:     l.config,
		accounts:   make(map[chain.Address]*Account, len(l.accounts)),
		contracts:  make(map[chain.Address]*Contract, len(l.contracts)),
		block:      l.block,
		gasUsed:    l.gasUsed,
		rnd:        rand.New(),
		now:        l.now,
		log:        l.log,
		codeHashes: l.codeHashes,
	}
	for address, account := range l.accounts {
		account := *account
		res.accounts[address] = &account
	}
	for address, contract := range l.contracts {
		contract := contract.Clone()
		res.contracts[address] = &contract
	}
	return res
}

// CreateAccount creates an account with the given balance. An existing
// account at the same address is replaced, resetting its nonce.
func (l *Ledger) CreateAccount(address chain.Address, balance chain.Value) Account {
	account := &Account{
		Address: address,
		Balance: balance,
	}
	l.accounts[address] = account
	l.log.Trace("Created account", "address", address, "balance", balance)
	return *account
}

// GetAccount returns a copy of the account at the given address.
func (l *Ledger) GetAccount(address chain.Address) (Account, bool) {
	account, found := l.accounts[address]
	if !found {
		return Account{}, false
	}
	return *account, true
}

// GetContract returns a copy of the contract at the given address.
func (l *Ledger) GetContract(address chain.Address) (Contract, bool) {
	contract, found := l.contracts[address]
	if !found {
		return Contract{}, false
	}
	return contract.Clone(), true
}

func (l *Ledger) IsContract(address chain.Address) bool {
	_, found := l.contracts[address]
	return found
}

// DeployContract places the given code on the ledger and returns the address
// of the new contract. The address is derived from the deployer and its
// current nonce, which is left untouched; deploying twice from the same
// deployer therefore yields the same address and replaces the code.
func (l *Ledger) DeployContract(code chain.Code, deployer chain.Address) chain.Address {
	address := ContractAddress(deployer, l.GetNonce(deployer))

	storage := Storage{}
	if existing, found := l.contracts[address]; found {
		l.log.Warn("Contract address collision, replacing code", "address", address)
		storage = existing.Storage
	}
	l.contracts[address] = &Contract{
		Address:  address,
		Code:     append(chain.Code(nil), code...),
		Storage:  storage,
		CodeHash: l.codeHash(code),
	}
	if !l.AccountExists(address) {
		l.accounts[address] = &Account{Address: address}
	}
	l.log.Debug("Deployed contract", "address", address, "deployer", deployer, "size", len(code))
	return address
}

func (l *Ledger) GetStorage(address chain.Address, key chain.Key) chain.Word {
	if contract, found := l.contracts[address]; found {
		return contract.Storage[key]
	}
	return chain.Word{}
}

func (l *Ledger) SetStorage(address chain.Address, key chain.Key, value chain.Word) {
	if contract, found := l.contracts[address]; found {
		if value == (chain.Word{}) {
			delete(contract.Storage, key)
			return
		}
		contract.Storage[key] = value
	}
}

// -- WorldState --

func (l *Ledger) AccountExists(address chain.Address) bool {
	_, found := l.accounts[address]
	return found
}

func (l *Ledger) GetBalance(address chain.Address) chain.Value {
	if account, found := l.accounts[address]; found {
		return account.Balance
	}
	return chain.Value{}
}

func (l *Ledger) SetBalance(address chain.Address, value chain.Value) {
	account, found := l.accounts[address]
	if !found {
		account = &Account{Address: address}
		l.accounts[address] = account
	}
	account.Balance = value
}

func (l *Ledger) GetNonce(address chain.Address) uint64 {
	if account, found := l.accounts[address]; found {
		return account.Nonce
	}
	return 0
}

func (l *Ledger) SetNonce(address chain.Address, nonce uint64) {
	if account, found := l.accounts[address]; found {
		account.Nonce = nonce
	}
}

// -- Blocks --

func (l *Ledger) CurrentBlock() Block {
	return l.block
}

// MineBlock advances the head block, drawing a fresh hash and stamping it
// with the current time.
func (l *Ledger) MineBlock() Block {
	l.block = Block{
		Number:    l.block.Number + 1,
		Hash:      chain.RandomHash(l.rnd),
		Timestamp: l.now(),
		GasLimit:  l.config.BlockGasLimit,
	}
	l.log.Debug("Mined block", "number", l.block.Number, "hash", l.block.Hash)
	return l.block
}

// -- Inspection --

// Accounts lists copies of all accounts ordered by address.
func (l *Ledger) Accounts() []Account {
	addresses := maps.Keys(l.accounts)
	slices.SortFunc(addresses, compareAddresses)
	res := make([]Account, 0, len(addresses))
	for _, address := range addresses {
		res = append(res, *l.accounts[address])
	}
	return res
}

// Contracts lists copies of all contracts ordered by address.
func (l *Ledger) Contracts() []Contract {
	addresses := maps.Keys(l.contracts)
	slices.SortFunc(addresses, compareAddresses)
	res := make([]Contract, 0, len(addresses))
	for _, address := range addresses {
		res = append(res, l.contracts[address].Clone())
	}
	return res
}

func (l *Ledger) Stats() Stats {
	return Stats{
		Accounts:     len(l.accounts),
		Contracts:    len(l.contracts),
		BlockNumber:  l.block.Number,
		TotalGasUsed: l.gasUsed,
	}
}

func (l *Ledger) codeHash(code chain.Code) chain.Hash {
	key := string(code)
	if hash, found := l.codeHashes.Get(key); found {
		return hash
	}
	hash := chain.Keccak256(code)
	l.codeHashes.Add(key, hash)
	return hash
}

func compareAddresses(a, b chain.Address) int {
	return bytes.Compare(a[:], b[:])
}

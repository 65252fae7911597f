// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lesson

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Catalog is an ordered, read-only collection of modules with unique ids.
type Catalog struct {
	modules []Module
	index   map[string]int
}

// NewCatalog validates the given modules and collects them in a catalog,
// keeping their order.
func NewCatalog(modules ...Module) (*Catalog, error) {
	res := &Catalog{
		modules: make([]Module, 0, len(modules)),
		index:   make(map[string]int, len(modules)),
	}
	for _, module := range modules {
		if err := module.Validate(); err != nil {
			return nil, err
		}
		if _, found := res.index[module.ID]; found {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidModule, module.ID)
		}
		res.index[module.ID] = len(res.modules)
		res.modules = append(res.modules, module)
	}
	return res, nil
}

// LoadFile reads a catalog from a JSON file holding a list of modules.
func LoadFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var modules []Module
	if err := json.Unmarshal(data, &modules); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, err)
	}
	return NewCatalog(modules...)
}

func (c *Catalog) Lookup(id string) (Module, bool) {
	i, found := c.index[id]
	if !found {
		return Module{}, false
	}
	return c.modules[i], true
}

// All lists the modules of the catalog in their original order.
func (c *Catalog) All() []Module {
	return slices.Clone(c.modules)
}

// IDs lists the module ids in lexicographical order.
func (c *Catalog) IDs() []string {
	ids := maps.Keys(c.index)
	slices.Sort(ids)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.modules)
}

//go:embed contracts/*.sol
var contracts embed.FS

func source(name string) string {
	data, err := contracts.ReadFile(path.Join("contracts", name+".sol"))
	if err != nil {
		panic(fmt.Sprintf("missing embedded contract %s: %v", name, err))
	}
	return string(data)
}

var builtin = mustCatalog(
	Module{
		ID:             "reentrancy",
		Title:          "Reentrancy Attack",
		Description:    "Learn how external calls made before state updates let an attacker withdraw funds repeatedly.",
		Difficulty:     Beginner,
		Category:       "Reentrancy",
		VulnerableCode: source("reentrancy_vulnerable"),
		AttackCode:     source("reentrancy_attack"),
		FixedCode:      source("reentrancy_fixed"),
		Explanation: "The bank sends Ether to the caller before it clears the caller's balance. " +
			"A contract receiving the Ether can call withdraw again from its receive function " +
			"and is paid once more for the same balance.",
		Vulnerability: "External call before state update",
		Impact:        "Complete loss of the funds held by the contract",
		Prevention:    "Follow the checks-effects-interactions pattern and guard functions with a reentrancy lock",
		References: []string{
			"https://docs.soliditylang.org/en/latest/security-considerations.html#reentrancy",
			"https://swcregistry.io/docs/SWC-107",
		},
		IsRealWorld: true,
		Loss:        "$60M",
		Date:        "2016-06-17",
	},
	Module{
		ID:             "access-control",
		Title:          "Missing Access Control",
		Description:    "Learn how an unprotected privileged function lets anybody mint tokens.",
		Difficulty:     Beginner,
		Category:       "Access Control",
		VulnerableCode: source("access_control_vulnerable"),
		AttackCode:     source("access_control_attack"),
		FixedCode:      source("access_control_fixed"),
		Explanation: "The mint function changes the token supply but never checks who calls it. " +
			"Any account can create tokens for itself and sell them.",
		Vulnerability: "Privileged function without access restriction",
		Impact:        "Unlimited token minting and theft of funds",
		Prevention:    "Restrict privileged functions with an owner or role check such as onlyOwner",
		References: []string{
			"https://swcregistry.io/docs/SWC-105",
			"https://docs.openzeppelin.com/contracts/access-control",
		},
	},
	Module{
		ID:             "tx-origin",
		Title:          "tx.origin Authentication",
		Description:    "Learn why tx.origin must not be used to authorize callers.",
		Difficulty:     Intermediate,
		Category:       "Authentication",
		VulnerableCode: source("tx_origin_vulnerable"),
		AttackCode:     source("tx_origin_attack"),
		FixedCode:      source("tx_origin_fixed"),
		Explanation: "tx.origin is the account that started the transaction, not the immediate caller. " +
			"If the owner is lured into sending Ether to a malicious contract, that contract can " +
			"call the wallet and pass the owner check.",
		Vulnerability: "Authorization based on tx.origin",
		Impact:        "Phishing attacks draining the wallet",
		Prevention:    "Authorize callers with msg.sender",
		References: []string{
			"https://swcregistry.io/docs/SWC-115",
		},
	},
)

func mustCatalog(modules ...Module) *Catalog {
	res, err := NewCatalog(modules...)
	if err != nil {
		panic(err)
	}
	return res
}

// Builtin returns the catalog of lessons shipped with the playground.
func Builtin() *Catalog {
	return builtin
}

// Lookup finds a lesson in the built-in catalog.
func Lookup(id string) (Module, bool) {
	return builtin.Lookup(id)
}

// All lists the lessons of the built-in catalog.
func All() []Module {
	return builtin.All()
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package lesson describes the vulnerability lessons offered by the
// playground. A lesson bundles three versions of Solidity source, the
// vulnerable contract, a contract exploiting it and a fixed contract, with
// explanatory text.
package lesson

import (
	"fmt"

	"github.com/Fantom-foundation/Playground/go/chain"
)

const ErrInvalidModule = chain.ConstError("invalid module")

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	return d == Beginner || d == Intermediate || d == Advanced
}

// Variant names one of the three source versions of a module. Variants are
// also the names under which deployed contracts are registered.
type Variant string

const (
	Vulnerable Variant = "vulnerable"
	Attack     Variant = "attack"
	Fixed      Variant = "fixed"
)

func (v Variant) Valid() bool {
	return v == Vulnerable || v == Attack || v == Fixed
}

// ParseVariant converts user input into a variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown variant %q, use one of: %v, %v, %v", s, Vulnerable, Attack, Fixed)
	}
	return v, nil
}

// Module is a single vulnerability lesson.
type Module struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Difficulty     Difficulty `json:"difficulty"`
	Category       string     `json:"category"`
	VulnerableCode string     `json:"vulnerableCode"`
	AttackCode     string     `json:"attackCode"`
	FixedCode      string     `json:"fixedCode"`
	Explanation    string     `json:"explanation"`
	Vulnerability  string     `json:"vulnerability"`
	Impact         string     `json:"impact"`
	Prevention     string     `json:"prevention"`
	References     []string   `json:"references"`

	// Set for lessons retelling an incident.
	IsRealWorld bool   `json:"isRealWorld,omitempty"`
	Loss        string `json:"loss,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Code returns the source of the given variant.
func (m *Module) Code(variant Variant) string {
	switch variant {
	case Vulnerable:
		return m.VulnerableCode
	case Attack:
		return m.AttackCode
	case Fixed:
		return m.FixedCode
	}
	return ""
}

// Validate checks that the module can be loaded into a playground.
func (m *Module) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidModule)
	}
	if m.Title == "" {
		return fmt.Errorf("%w: module %s has no title", ErrInvalidModule, m.ID)
	}
	if !m.Difficulty.Valid() {
		return fmt.Errorf("%w: module %s has unknown difficulty %q", ErrInvalidModule, m.ID, m.Difficulty)
	}
	for _, variant := range []Variant{Vulnerable, Attack, Fixed} {
		if m.Code(variant) == "" {
			return fmt.Errorf("%w: module %s has no %s code", ErrInvalidModule, m.ID, variant)
		}
	}
	return nil
}

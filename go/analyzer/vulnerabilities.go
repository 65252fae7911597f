// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package analyzer

import (
	"regexp"
	"strings"
)

// vulnerabilityCheck flags a pattern in the whole source. Checks are
// independent of each other and may report the same flaw twice.
type vulnerabilityCheck struct {
	warning string
	matches func(source string) bool
}

var outdatedPragma = regexp.MustCompile(`pragma\s+solidity\s*[\^~>=<]*\s*0\.[0-7]\.`)

var vulnerabilityChecks = []vulnerabilityCheck{
	{
		warning: "Potential reentrancy vulnerability: External call before state update",
		matches: func(source string) bool {
			return strings.Contains(source, "call{value:") &&
				!strings.Contains(source, "balances[msg.sender] = 0")
		},
	},
	{
		warning: "tx.origin usage detected: Use msg.sender instead",
		matches: func(source string) bool {
			return strings.Contains(source, "tx.origin")
		},
	},
	{
		warning: "Mint function without access control detected",
		matches: func(source string) bool {
			return strings.Contains(source, "function mint(") &&
				!strings.Contains(source, "onlyOwner")
		},
	},
	{
		warning: "Unchecked external call detected",
		matches: func(source string) bool {
			return strings.Contains(source, ".call(") &&
				!strings.Contains(source, "require(")
		},
	},
	{
		warning: "Using Solidity < 0.8.0: Consider using SafeMath or upgrading",
		matches: outdatedPragma.MatchString,
	},
}

func checkVulnerabilities(source string) []string {
	var warnings []string
	for _, check := range vulnerabilityChecks {
		if check.matches(source) {
			warnings = append(warnings, check.warning)
		}
	}
	return warnings
}

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
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		source string
		want   []string
	}{
		"empty": {
			source: "",
		},
		"balanced": {
			source: "contract A {\nfunction f() public { require(x); }\n}",
		},
		"missing closing brace": {
			source: "contract A {\n",
			want:   []string{"Unmatched braces: missing closing brace"},
		},
		"extra closing brace": {
			source: "contract A {\n}}",
			want:   []string{"Unmatched braces: extra closing brace"},
		},
		"extra closing parenthesis": {
			source: "x = (a));",
			want:   []string{"Unmatched parentheses: extra closing parenthesis"},
		},
		"function without parenthesis": {
			source: "contract A {\nfunction f\n() {}\n}",
			want:   []string{"Line 2: Function declaration missing parentheses"},
		},
		"contract without brace": {
			source: "contract A\n{\n}",
			want:   []string{"Line 1: Contract declaration missing opening brace"},
		},
		"require without closing parenthesis": {
			source: "require(a &&\nb);",
			want:   []string{"Line 1: Require statement missing closing parenthesis"},
		},
		"line errors precede balance errors": {
			source: "contract A\n{\nfunction f(",
			want: []string{
				"Line 1: Contract declaration missing opening brace",
				"Line 3: Function declaration missing parentheses",
				"Unmatched braces: missing closing brace",
				"Unmatched parentheses: missing closing parenthesis",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := validate(test.source)
			if strings.Join(test.want, "\n") != strings.Join(got, "\n") {
				t.Errorf("unexpected errors, wanted %v, got %v", test.want, got)
			}
		})
	}
}

func TestCheckVulnerabilities(t *testing.T) {
	tests := map[string]struct {
		source string
		want   int
	}{
		"reentrancy":                {`msg.sender.call{value: amount}("");`, 1},
		"reentrancy with reset":     {"balances[msg.sender] = 0;\nmsg.sender.call{value: amount}(\"\");", 0},
		"tx origin":                 {"require(tx.origin == owner);", 1},
		"unguarded mint":            {"function mint(address to) public {}", 1},
		"guarded mint":              {"function mint(address to) public onlyOwner {}", 0},
		"unchecked call":            {`to.call("");`, 1},
		"checked call":              {`(bool ok, ) = to.call(""); require(ok);`, 0},
		"old pragma":                {"pragma solidity ^0.7.0;", 1},
		"very old pragma":           {"pragma solidity 0.4.24;", 1},
		"current pragma":            {"pragma solidity ^0.8.19;", 0},
		"overlapping warnings":      {`msg.sender.call{value: 1}(""); tx.origin;`, 2},
		"all checks fire at once": {
			"pragma solidity ^0.6.0;\nfunction mint(address a) public {\ntx.origin;\na.call{value: 1}(\"\");\na.call(\"\");\n}",
			5,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := checkVulnerabilities(test.source)
			if test.want != len(got) {
				t.Errorf("unexpected number of warnings, wanted %d, got %d: %v", test.want, len(got), got)
			}
		})
	}
}

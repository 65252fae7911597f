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
	"fmt"
	"regexp"
	"strings"
)

var (
	functionPattern   = regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`)
	mutabilityPattern = regexp.MustCompile(`\b(view|pure|payable)\b`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// parameterTypes maps substrings of a declared parameter to ABI types. The
// first match wins; parameters matching none are uint256.
var parameterTypes = []struct {
	substring string
	abiType   string
}{
	{"uint", "uint256"},
	{"address", "address"},
	{"bool", "bool"},
	{"string", "string"},
}

// parseABI extracts one ABI entry for every line starting with a function
// declaration.
func parseABI(source string) []Function {
	var res []Function
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "function ") {
			continue
		}
		match := functionPattern.FindStringSubmatchIndex(trimmed)
		if match == nil {
			continue
		}
		name := trimmed[match[2]:match[3]]
		params := trimmed[match[4]:match[5]]
		modifiers := trimmed[match[1]:]

		res = append(res, Function{
			Type:            "function",
			Name:            name,
			Inputs:          parseParameters(params),
			Outputs:         []Parameter{},
			StateMutability: stateMutability(modifiers),
		})
	}
	return res
}

func parseParameters(params string) []Parameter {
	res := []Parameter{}
	for _, param := range strings.Split(params, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		abiType := "uint256"
		for _, candidate := range parameterTypes {
			if strings.Contains(param, candidate.substring) {
				abiType = candidate.abiType
				break
			}
		}
		res = append(res, Parameter{
			Name:         parameterName(param, len(res)),
			Type:         abiType,
			InternalType: abiType,
		})
	}
	return res
}

// parameterName returns the declared name of a parameter, falling back to
// a positional name for unnamed parameters.
func parameterName(param string, position int) string {
	fields := strings.Fields(param)
	if len(fields) >= 2 {
		name := fields[len(fields)-1]
		switch name {
		case "memory", "calldata", "storage", "payable":
		default:
			if identifierPattern.MatchString(name) {
				return name
			}
		}
	}
	return fmt.Sprintf("param%d", position)
}

// stateMutability reads the mutability from the modifiers following the
// parameter list of a declaration.
func stateMutability(modifiers string) string {
	if end := strings.IndexAny(modifiers, "{;"); end >= 0 {
		modifiers = modifiers[:end]
	}
	if match := mutabilityPattern.FindString(modifiers); match != "" {
		return match
	}
	return "nonpayable"
}

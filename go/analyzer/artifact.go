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

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/ethereum/go-ethereum/params"
)

// complexityWeights scores control flow and external calls. The synthetic
// byte-code grows linearly with the total score.
var complexityWeights = []struct {
	pattern *regexp.Regexp
	weight  int
}{
	{regexp.MustCompile(`function\s+\w+`), 1},
	{regexp.MustCompile(`if\s*\(`), 2},
	{regexp.MustCompile(`for\s*\(`), 3},
	{regexp.MustCompile(`while\s*\(`), 3},
	{regexp.MustCompile(`\.call\s*\(`), 2},
}

func complexity(source string) int {
	res := 0
	for _, cur := range complexityWeights {
		res += cur.weight * len(cur.pattern.FindAllStringIndex(source, -1))
	}
	return res
}

// bytecodeSize returns the number of bytes of synthetic byte-code produced
// for the given source: 50 bytes plus 25 bytes per complexity point.
func bytecodeSize(source string) int {
	return (100 + 50*complexity(source)) / 2
}

const (
	storageGas = chain.Gas(20_000)
	callGas    = chain.Gas(50_000)
	checkGas   = chain.Gas(3_000)
)

var gasIncrements = []struct {
	substring string
	gas       chain.Gas
}{
	{"storage", storageGas},
	{"call(", callGas},
	{"require(", checkGas},
	{"keccak256(", checkGas},
	{"ecrecover(", checkGas},
}

var functionNamePattern = regexp.MustCompile(`function\s+(\w+)`)

// estimateGas assigns every declared function the base transaction cost
// plus increments for expensive operations on its declaring line. Only the
// declaring line is inspected, not the function body.
func estimateGas(source string) map[string]chain.Gas {
	res := map[string]chain.Gas{}
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "function ") {
			continue
		}
		match := functionNamePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		gas := chain.Gas(params.TxGas)
		for _, increment := range gasIncrements {
			if strings.Contains(trimmed, increment.substring) {
				gas += increment.gas
			}
		}
		res[match[1]] = gas
	}
	return res
}

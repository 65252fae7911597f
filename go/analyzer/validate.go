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
	"strings"
)

// validate runs the balance scan and the line heuristics. Errors found on
// individual lines are reported before the balance errors are, in line order.
func validate(source string) []string {
	var errs []string
	braces, parens := 0, 0
	for i, line := range strings.Split(source, "\n") {
		for _, c := range line {
			switch c {
			case '{':
				braces++
			case '}':
				braces--
			case '(':
				parens++
			case ')':
				parens--
			}
		}

		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "function") && !strings.Contains(trimmed, ")") {
			errs = append(errs, fmt.Sprintf("Line %d: Function declaration missing parentheses", i+1))
		}
		if strings.Contains(trimmed, "contract") && !strings.Contains(trimmed, "{") {
			errs = append(errs, fmt.Sprintf("Line %d: Contract declaration missing opening brace", i+1))
		}
		if strings.Contains(trimmed, "require(") && !strings.Contains(trimmed, ")") {
			errs = append(errs, fmt.Sprintf("Line %d: Require statement missing closing parenthesis", i+1))
		}
	}

	if braces > 0 {
		errs = append(errs, "Unmatched braces: missing closing brace")
	} else if braces < 0 {
		errs = append(errs, "Unmatched braces: extra closing brace")
	}
	if parens > 0 {
		errs = append(errs, "Unmatched parentheses: missing closing parenthesis")
	} else if parens < 0 {
		errs = append(errs, "Unmatched parentheses: extra closing parenthesis")
	}
	return errs
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.Bold, color.Underline).SprintFunc()
	good    = color.New(color.FgGreen).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
	notice  = color.New(color.FgYellow).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

var (
	successMarkers = []string{"SUCCESSFUL", "successful", "VERIFIED", "verified", "blocked", "resolved", "completed", "saved"}
	failureMarkers = []string{"failed", "Failed", "error"}
	warningMarkers = []string{"Warnings:", "Potential", "detected", "Using Solidity"}
)

// colorize picks the color of a session log line by its content.
func colorize(line string) string {
	switch {
	case containsAny(line, failureMarkers):
		return bad(line)
	case containsAny(line, warningMarkers):
		return notice(line)
	case containsAny(line, successMarkers):
		return good(line)
	case strings.HasPrefix(line, "   "), strings.HasPrefix(line, "Address:"), strings.HasPrefix(line, "Transaction hash:"):
		return faint(line)
	}
	return line
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// logPrinter writes session log lines as they are appended.
type logPrinter struct {
	out    io.Writer
	cursor uint64
}

// follower is the part of a session the printer reads from.
type follower interface {
	LogsSince(cursor uint64) ([]string, uint64)
}

func (p *logPrinter) flush(source follower) {
	lines, cursor := source.LogsSince(p.cursor)
	p.cursor = cursor
	for _, line := range lines {
		fmt.Fprintln(p.out, colorize(line))
	}
}

// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package analyzer provides a heuristic stand-in for a Solidity compiler.
// It scans source text for structural mistakes and known vulnerability
// patterns and synthesizes a compilation artifact from what it finds. It
// does not parse the language; every check is a substring or regular
// expression match over lines of source.
package analyzer

import (
	"regexp"

	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/ethereum/go-ethereum/log"
	"pgregory.net/rand"
)

// DefaultVersion is the compiler version reported when none is configured.
const DefaultVersion = "0.8.19"

// CompilerVersion describes a compiler release the analyzer claims to
// support.
type CompilerVersion struct {
	Version string
	Path    string
	Type    string
}

var availableVersions = []CompilerVersion{
	{Version: "0.8.19", Path: "soljson-v0.8.19+commit.7dd6d404.js", Type: "soljson"},
	{Version: "0.8.18", Path: "soljson-v0.8.18+commit.87f61d96.js", Type: "soljson"},
	{Version: "0.8.17", Path: "soljson-v0.8.17+commit.8df45f5f.js", Type: "soljson"},
	{Version: "0.8.16", Path: "soljson-v0.8.16+commit.07a7930e.js", Type: "soljson"},
	{Version: "0.8.15", Path: "soljson-v0.8.15+commit.e14f2714.js", Type: "soljson"},
}

// Analyzer compiles source text heuristically. An Analyzer draws synthetic
// byte-code from its random source and is therefore not safe for
// concurrent use.
type Analyzer struct {
	version string
	rnd     *rand.Rand
	log     log.Logger
}

type Option func(*Analyzer)

// WithVersion sets the compiler version reported by the analyzer.
func WithVersion(version string) Option {
	return func(a *Analyzer) {
		a.version = version
	}
}

// WithRandom pins the source of the synthetic byte-code. Two analyzers
// created with equally seeded sources produce identical artifacts for the
// same sequence of inputs.
func WithRandom(rnd *rand.Rand) Option {
	return func(a *Analyzer) {
		a.rnd = rnd
	}
}

func WithLogger(logger log.Logger) Option {
	return func(a *Analyzer) {
		a.log = logger
	}
}

func New(options ...Option) *Analyzer {
	res := &Analyzer{
		version: DefaultVersion,
		log:     log.Root(),
	}
	for _, option := range options {
		option(res)
	}
	if res.rnd == nil {
		res.rnd = rand.New()
	}
	return res
}

func (a *Analyzer) Version() string {
	return a.version
}

// AvailableVersions lists the compiler releases that may be selected.
func AvailableVersions() []CompilerVersion {
	return append([]CompilerVersion(nil), availableVersions...)
}

var contractNamePattern = regexp.MustCompile(`contract\s+(\w+)`)

// Compile analyzes the given source. Structural problems found by the
// balance scan or the line heuristics make the compilation fail; in that
// case the result carries errors and warnings but no artifact. Detected
// vulnerability patterns are reported as warnings and never block success.
// If contractName is empty, the name of the first declared contract is
// used.
func (a *Analyzer) Compile(source string, contractName string) Result {
	if contractName == "" {
		if match := contractNamePattern.FindStringSubmatch(source); match != nil {
			contractName = match[1]
		}
	}

	res := Result{
		ContractName: contractName,
		Version:      a.version,
		Errors:       validate(source),
		Warnings:     checkVulnerabilities(source),
	}
	if len(res.Errors) > 0 {
		a.log.Debug("Compilation failed", "contract", contractName, "errors", len(res.Errors))
		return res
	}

	res.Success = true
	res.Bytecode = chain.RandomCode(a.rnd, bytecodeSize(source))
	res.ABI = parseABI(source)
	res.GasEstimates = estimateGas(source)

	a.log.Debug("Compiled source", "contract", contractName,
		"size", len(res.Bytecode), "functions", len(res.ABI), "warnings", len(res.Warnings))
	return res
}

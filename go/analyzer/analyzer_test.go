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
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Playground/go/chain"
	"pgregory.net/rand"
)

const withdrawSource = "function withdraw(uint amount) public { require(x); }"

func TestCompile_WellFormedFunctionsProduceOneEntryEach(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("functions=%d", n), func(t *testing.T) {
			var source strings.Builder
			source.WriteString("contract Sample {\n")
			for i := 0; i < n; i++ {
				fmt.Fprintf(&source, "    function f%d(uint a, address b) public {\n    }\n", i)
			}
			source.WriteString("}\n")

			res := New().Compile(source.String(), "")
			if !res.Success {
				t.Fatalf("compilation failed: %v", res.Errors)
			}
			if want, got := n, len(res.ABI); want != got {
				t.Errorf("unexpected number of ABI entries, wanted %d, got %d", want, got)
			}
			if want, got := "Sample", res.ContractName; want != got {
				t.Errorf("unexpected contract name, wanted %q, got %q", want, got)
			}
		})
	}
}

func TestCompile_ExtraOpeningBraceIsReportedOnce(t *testing.T) {
	source := "contract Sample {\n    function f() public {\n    }\n"

	res := New().Compile(source, "")
	if res.Success {
		t.Fatalf("compilation should fail")
	}
	count := 0
	for _, err := range res.Errors {
		if strings.Contains(err, "missing closing brace") {
			count++
		}
	}
	if want, got := 1, len(res.Errors); want != got {
		t.Errorf("unexpected number of errors, wanted %d, got %d: %v", want, got, res.Errors)
	}
	if count != 1 {
		t.Errorf("expected exactly one missing brace error, got %v", res.Errors)
	}
	if res.Bytecode != nil || res.ABI != nil || res.GasEstimates != nil {
		t.Errorf("failed compilation must not produce an artifact")
	}
}

func TestCompile_WithdrawExample(t *testing.T) {
	res := New().Compile(withdrawSource, "")
	if !res.Success {
		t.Fatalf("compilation failed: %v", res.Errors)
	}
	if want, got := 1, len(res.ABI); want != got {
		t.Fatalf("unexpected number of ABI entries, wanted %d, got %d", want, got)
	}
	function := res.ABI[0]
	if want, got := "withdraw", function.Name; want != got {
		t.Errorf("unexpected name, wanted %q, got %q", want, got)
	}
	if want, got := 1, len(function.Inputs); want != got {
		t.Fatalf("unexpected number of inputs, wanted %d, got %d", want, got)
	}
	if want, got := "uint256", function.Inputs[0].Type; want != got {
		t.Errorf("unexpected input type, wanted %q, got %q", want, got)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestCompile_TxOriginAddsExactlyOneWarning(t *testing.T) {
	source := strings.Replace(withdrawSource, "require(x)", "require(tx.origin == owner)", 1)

	plain := New().Compile(withdrawSource, "")
	res := New().Compile(source, "")
	if !res.Success {
		t.Fatalf("compilation failed: %v", res.Errors)
	}
	if want, got := plain.ABI[0].Signature(), res.ABI[0].Signature(); want != got {
		t.Errorf("ABI changed, wanted %q, got %q", want, got)
	}
	if want, got := 1, len(res.Warnings); want != got {
		t.Fatalf("unexpected number of warnings, wanted %d, got %d: %v", want, got, res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "tx.origin") {
		t.Errorf("warning does not mention tx.origin: %q", res.Warnings[0])
	}
}

func TestCompile_WarningsDoNotBlockSuccess(t *testing.T) {
	source := strings.Join([]string{
		"pragma solidity ^0.7.6;",
		"contract Token {",
		"    function mint(address to, uint amount) public {",
		"        to.call(\"\");",
		"    }",
		"}",
	}, "\n")

	res := New().Compile(source, "Token")
	if !res.Success {
		t.Fatalf("compilation failed: %v", res.Errors)
	}
	want := []string{
		"Mint function without access control detected",
		"Unchecked external call detected",
		"Using Solidity < 0.8.0: Consider using SafeMath or upgrading",
	}
	if got := res.Warnings; strings.Join(want, "|") != strings.Join(got, "|") {
		t.Errorf("unexpected warnings, wanted %v, got %v", want, got)
	}
}

func TestCompile_FailedCompilationStillReportsWarnings(t *testing.T) {
	res := New().Compile("function f() public { tx.origin;", "")
	if res.Success {
		t.Fatalf("compilation should fail")
	}
	if want, got := 1, len(res.Warnings); want != got {
		t.Errorf("unexpected number of warnings, wanted %d, got %d", want, got)
	}
}

func TestCompile_BytecodeSizeFollowsComplexity(t *testing.T) {
	source := strings.Join([]string{
		"contract C {",
		"    function a() public {",
		"        if (x) { for (;;) {} }",
		"        while (y) {}",
		"        msg.sender.call(\"\");",
		"    }",
		"}",
	}, "\n")
	// 1 function + 2 if + 3 for + 3 while + 2 call
	complexity := 11

	res := New().Compile(source, "")
	if !res.Success {
		t.Fatalf("compilation failed: %v", res.Errors)
	}
	if want, got := (100+50*complexity)/2, len(res.Bytecode); want != got {
		t.Errorf("unexpected byte-code size, wanted %d, got %d", want, got)
	}
}

func TestCompile_SameSeedGivesSameBytecode(t *testing.T) {
	a := New(WithRandom(rand.New(3))).Compile(withdrawSource, "")
	b := New(WithRandom(rand.New(3))).Compile(withdrawSource, "")
	if !bytes.Equal(a.Bytecode, b.Bytecode) {
		t.Errorf("byte-code differs for equal seeds")
	}
}

func TestCompile_RecompilingDrawsFreshBytecode(t *testing.T) {
	analyzer := New(WithRandom(rand.New(3)))
	a := analyzer.Compile(withdrawSource, "")
	b := analyzer.Compile(withdrawSource, "")
	if len(a.Bytecode) != len(b.Bytecode) {
		t.Fatalf("byte-code size differs: %d vs %d", len(a.Bytecode), len(b.Bytecode))
	}
	if bytes.Equal(a.Bytecode, b.Bytecode) {
		t.Errorf("recompilation produced identical byte-code")
	}
}

func TestCompile_GasEstimates(t *testing.T) {
	source := strings.Join([]string{
		"function plain() public {",
		"function checked(uint a) public { require(a > 0); }",
		"function hashed(bytes32 h) public { keccak256(h); ecrecover(h, 0, h, h); }",
		"function stored(uint[] storage s) internal { s.call(\"\"); }",
		"}",
	}, "\n")

	got := estimateGas(source)
	want := map[string]chain.Gas{
		"plain":   21_000,
		"checked": 24_000,
		"hashed":  27_000,
		"stored":  91_000,
	}
	if len(want) != len(got) {
		t.Fatalf("unexpected estimates, wanted %v, got %v", want, got)
	}
	for name, gas := range want {
		if got[name] != gas {
			t.Errorf("unexpected estimate for %s, wanted %d, got %d", name, gas, got[name])
		}
	}
}

func TestAnalyzer_Versions(t *testing.T) {
	if want, got := DefaultVersion, New().Version(); want != got {
		t.Errorf("unexpected default version, wanted %q, got %q", want, got)
	}
	if want, got := "0.8.15", New(WithVersion("0.8.15")).Version(); want != got {
		t.Errorf("unexpected version, wanted %q, got %q", want, got)
	}

	versions := AvailableVersions()
	if want, got := 5, len(versions); want != got {
		t.Fatalf("unexpected number of versions, wanted %d, got %d", want, got)
	}
	if versions[0].Version != DefaultVersion {
		t.Errorf("default version should be listed first, got %v", versions[0])
	}
	versions[0].Version = "modified"
	if AvailableVersions()[0].Version != DefaultVersion {
		t.Errorf("available versions can be modified by callers")
	}
}

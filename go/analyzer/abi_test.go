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
	"math/big"
	"strings"
	"testing"
)

func TestParseABI_Declarations(t *testing.T) {
	tests := map[string]struct {
		line       string
		signature  string
		inputs     []string
		mutability string
	}{
		"no parameters": {
			line:       "function owner() public view returns (address) {",
			signature:  "owner()",
			mutability: "view",
		},
		"named parameters": {
			line:       "    function transfer(address to, uint256 amount) external returns (bool) {",
			signature:  "transfer(address,uint256)",
			inputs:     []string{"to", "amount"},
			mutability: "nonpayable",
		},
		"unnamed parameter": {
			line:       "function set(uint) public {",
			signature:  "set(uint256)",
			inputs:     []string{"param0"},
			mutability: "nonpayable",
		},
		"data location": {
			line:       "function greet(string memory) public pure returns (string memory) {",
			signature:  "greet(string)",
			inputs:     []string{"param0"},
			mutability: "pure",
		},
		"payable": {
			line:       "function deposit() external payable {",
			signature:  "deposit()",
			mutability: "payable",
		},
		"mutability is not read from the name": {
			line:       "function viewBalance() public {",
			signature:  "viewBalance()",
			mutability: "nonpayable",
		},
		"unknown types default to uint256": {
			line:       "function store(bytes32 key, bool flag) public {",
			signature:  "store(uint256,bool)",
			inputs:     []string{"key", "flag"},
			mutability: "nonpayable",
		},
		"payable address parameter": {
			line:       "function pay(address payable) public {",
			signature:  "pay(address)",
			inputs:     []string{"param0"},
			mutability: "nonpayable",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			functions := parseABI(test.line)
			if len(functions) != 1 {
				t.Fatalf("expected one function, got %v", functions)
			}
			function := functions[0]
			if want, got := test.signature, function.Signature(); want != got {
				t.Errorf("unexpected signature, wanted %q, got %q", want, got)
			}
			if want, got := test.mutability, function.StateMutability; want != got {
				t.Errorf("unexpected mutability, wanted %q, got %q", want, got)
			}
			if want, got := len(test.inputs), len(function.Inputs); want != got {
				t.Fatalf("unexpected number of inputs, wanted %d, got %d", want, got)
			}
			for i, input := range function.Inputs {
				if want, got := test.inputs[i], input.Name; want != got {
					t.Errorf("unexpected name of input %d, wanted %q, got %q", i, want, got)
				}
				if input.Type != input.InternalType {
					t.Errorf("type and internal type differ: %v", input)
				}
			}
		})
	}
}

func TestParseABI_OnlyLinesStartingWithFunctionAreConsidered(t *testing.T) {
	source := strings.Join([]string{
		"// function commented(uint a)",
		"modifier onlyOwner() { _; }",
		"   function kept(uint a) public {}",
		"function",
		"functional(uint a) public {}",
	}, "\n")

	functions := parseABI(source)
	if len(functions) != 1 || functions[0].Name != "kept" {
		t.Errorf("unexpected functions: %v", functions)
	}
}

func TestFunction_Selector(t *testing.T) {
	res := New().Compile(withdrawSource, "")
	if want, got := "0x2e1a7d4d", res.ABI[0].Selector().String(); want != got {
		t.Errorf("unexpected selector, wanted %s, got %s", want, got)
	}
}

func TestResult_ABIJSON(t *testing.T) {
	res := New().Compile(withdrawSource, "")
	want := `[{"type":"function","name":"withdraw","inputs":[{"name":"amount","type":"uint256","internalType":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}]`
	if got := res.ABIJSON(); want != got {
		t.Errorf("unexpected ABI\nwanted %s\n   got %s", want, got)
	}

	if want, got := "[]", (Result{}).ABIJSON(); want != got {
		t.Errorf("unexpected ABI of failed compilation, wanted %s, got %s", want, got)
	}
}

func TestResult_ContractIsUnderstoodByEthereumTooling(t *testing.T) {
	source := strings.Join([]string{
		"contract Bank {",
		"    function deposit() public payable {",
		"    }",
		"    function withdraw(uint amount) public {",
		"    }",
		"    function balanceOf(address holder) public view returns (uint) {",
		"    }",
		"}",
	}, "\n")

	res := New().Compile(source, "")
	if !res.Success {
		t.Fatalf("compilation failed: %v", res.Errors)
	}
	contract, err := res.Contract()
	if err != nil {
		t.Fatalf("failed to parse ABI: %v", err)
	}
	if want, got := len(res.ABI), len(contract.Methods); want != got {
		t.Fatalf("unexpected number of methods, wanted %d, got %d", want, got)
	}
	for _, function := range res.ABI {
		method, found := contract.Methods[function.Name]
		if !found {
			t.Errorf("method %s not found", function.Name)
			continue
		}
		selector := function.Selector()
		if !bytes.Equal(selector[:], method.ID) {
			t.Errorf("selector mismatch for %s, wanted %x, got %v", function.Name, method.ID, selector)
		}
	}
	if !contract.Methods["deposit"].IsPayable() {
		t.Errorf("deposit should be payable")
	}
	if !contract.Methods["balanceOf"].IsConstant() {
		t.Errorf("balanceOf should be constant")
	}

	data, err := contract.Pack("withdraw", big.NewInt(5))
	if err != nil {
		t.Fatalf("failed to pack call data: %v", err)
	}
	selector := res.ABI[1].Selector()
	if want, got := 4+32, len(data); want != got || !bytes.HasPrefix(data, selector[:]) {
		t.Errorf("unexpected call data %x", data)
	}
}

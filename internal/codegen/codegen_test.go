package codegen

import (
	"errors"
	"strings"
	"testing"

	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/layout"
	"yulc/internal/mir"
	"yulc/internal/vm"
)

func word(v uint64) bignum.Word { return bignum.FromUint64(v) }

func TestCallReturnsSum(t *testing.T) {
	mod := compileMIR(t, `{
		function foo(a, b) -> c { c := add(a, b) }
		function main() -> r { r := foo(40, 2) }
	}`)
	if got := mustRun(t, mod, "main"); got[0] != word(42) {
		t.Fatalf("main() = %s, want 42", got[0])
	}
}

func TestLoopWithIfSumsOddAndEven(t *testing.T) {
	mod := compileMIR(t, `{
		function sums() -> odd, even {
			for { let i := 1 } lt(i, 101) { i := add(i, 1) } {
				if mod(i, 2) { odd := add(odd, i) }
				if iszero(mod(i, 2)) { even := add(even, i) }
			}
		}
		function main() -> r {
			let o, e := sums()
			r := add(o, e)
		}
	}`)
	got := mustRun(t, mod, "sums")
	if got[0] != word(2500) || got[1] != word(2550) {
		t.Fatalf("sums() = %s, %s; want 2500, 2550", got[0], got[1])
	}
	if got := mustRun(t, mod, "main"); got[0] != word(5050) {
		t.Fatalf("main() = %s, want 5050", got[0])
	}
}

func TestSwitch(t *testing.T) {
	mod := compileMIR(t, `{
		function pick(x) -> r {
			r := 7
			switch x
			case 1 { r := 10 }
			case 2 { r := 20 mstore(0, 1) }
		}
		function withDefault(x) -> r {
			switch x
			case "a" { r := 1 }
			default { r := 2 }
		}
		function onlyDefault(x) -> r {
			switch x
			default { r := add(x, 1) }
		}
	}`)
	tests := []struct {
		fn   string
		arg  uint64
		want uint64
	}{
		{"pick", 1, 10},
		{"pick", 2, 20},
		{"pick", 3, 7},
		{"withDefault", 5, 2},
		{"onlyDefault", 5, 6},
	}
	for _, tt := range tests {
		if got := mustRun(t, mod, tt.fn, tt.arg); got[0] != word(tt.want) {
			t.Errorf("%s(%d) = %s, want %d", tt.fn, tt.arg, got[0], tt.want)
		}
	}

	// no match, no default: no side effect
	machine := vm.New(mod, vm.Options{})
	if _, err := machine.Call("pick", word(3)); err != nil {
		t.Fatal(err)
	}
	if machine.Memory.Size() != 0 {
		t.Fatalf("unmatched switch touched memory: %d bytes", machine.Memory.Size())
	}
}

func TestBreakContinueLeave(t *testing.T) {
	mod := compileMIR(t, `{
		function oddsBelowTen() -> s {
			for { let i := 0 } 1 { i := add(i, 1) } {
				if eq(i, 10) { break }
				if iszero(mod(i, 2)) { continue }
				s := add(s, i)
			}
		}
		function early(x) -> r {
			r := 1
			if x { leave }
			r := 2
		}
	}`)
	if got := mustRun(t, mod, "oddsBelowTen"); got[0] != word(25) {
		t.Errorf("oddsBelowTen() = %s, want 25", got[0])
	}
	if got := mustRun(t, mod, "early", 1); got[0] != word(1) {
		t.Errorf("early(1) = %s, want 1", got[0])
	}
	if got := mustRun(t, mod, "early", 0); got[0] != word(2) {
		t.Errorf("early(0) = %s, want 2", got[0])
	}
}

func TestRecursionAndForwardCalls(t *testing.T) {
	mod := compileMIR(t, `{
		function isEven(n) -> r {
			if iszero(n) { r := 1 leave }
			r := isOdd(sub(n, 1))
		}
		function isOdd(n) -> r {
			if iszero(n) { leave }
			r := isEven(sub(n, 1))
		}
		function fib(n) -> r {
			r := n
			if gt(n, 1) { r := add(fib(sub(n, 1)), fib(sub(n, 2))) }
		}
	}`)
	if got := mustRun(t, mod, "isEven", 10); got[0] != word(1) {
		t.Errorf("isEven(10) = %s", got[0])
	}
	if got := mustRun(t, mod, "isOdd", 10); got[0] != word(0) {
		t.Errorf("isOdd(10) = %s", got[0])
	}
	if got := mustRun(t, mod, "fib", 15); got[0] != word(610) {
		t.Errorf("fib(15) = %s, want 610", got[0])
	}
}

func TestScopesAndNestedFunctions(t *testing.T) {
	mod := compileMIR(t, `{
		function outer() -> r {
			let x := 1
			{
				let x := 5
				r := x
				function helper() -> h { h := 100 }
				r := add(r, helper())
			}
			r := add(r, x)
		}
		{ function dup() -> v { v := 1 } }
		{ function dup() -> v { v := 2 } }
	}`)
	if got := mustRun(t, mod, "outer"); got[0] != word(106) {
		t.Errorf("outer() = %s, want 106", got[0])
	}
	if mod.Lookup("dup") == nil || mod.Lookup("dup.1") == nil {
		t.Errorf("sibling functions should be disambiguated:\n%s", mod)
	}
	if got := mustRun(t, mod, "dup.1"); got[0] != word(2) {
		t.Errorf("dup.1() = %s, want 2", got[0])
	}
}

func TestLetWithoutValueIsZero(t *testing.T) {
	mod := compileMIR(t, `{
		function f() -> r {
			for { let i := 0 } lt(i, 3) { i := add(i, 1) } {
				let z
				r := add(r, z)
				z := 9
			}
		}
	}`)
	if got := mustRun(t, mod, "f"); got[0] != word(0) {
		t.Errorf("f() = %s, want 0", got[0])
	}
}

func TestTopLevelCodeRunsAsEntry(t *testing.T) {
	mod := compileMIR(t, `{ sstore(0, 5) mstore8(31, 0x1ff) let v := mload(0) sstore(1, v) }`)
	machine := vm.New(mod, vm.Options{})
	if _, err := machine.Call(EntryFunc); err != nil {
		t.Fatal(err)
	}
	if machine.Storage[word(0)] != word(5) {
		t.Errorf("slot 0 = %s", machine.Storage[word(0)])
	}
	if machine.Storage[word(1)] != word(0xff) {
		t.Errorf("slot 1 = %s, want 255", machine.Storage[word(1)])
	}
}

func TestStringLiteralKeepsBytes(t *testing.T) {
	mod := compileMIR(t, `{ function f() -> r { r := "e\xcc\x81" } }`)
	got := mustRun(t, mod, "f")
	want := "0x65cc81" + strings.Repeat("0", 58)
	if got[0].Hex() != want {
		t.Fatalf("f() = %s, want %s", got[0].Hex(), want)
	}
}

func TestCheckedHelpersPanic(t *testing.T) {
	mod := compileMIR(t, `{
		function add8(a, b) -> r { r := checked_add_t_uint8(a, b) }
		function div256(a, b) -> r { r := checked_div_t_uint256(a, b) }
		function at(i) -> p {
			mstore(64, 128)
			let base := allocate_memory(96)
			p := memory_array_index_access(base, i, 3, 32)
		}
	}`)
	tests := []struct {
		fn    string
		args  []uint64
		want  uint64
		panic layout.PanicCode
	}{
		{"add8", []uint64{255, 0}, 255, 0},
		{"add8", []uint64{255, 1}, 0, layout.PanicOverflow},
		{"div256", []uint64{9, 3}, 3, 0},
		{"div256", []uint64{9, 0}, 0, layout.PanicDivByZero},
		{"at", []uint64{2}, 0xc0, 0},
		{"at", []uint64{3}, 0, layout.PanicIndexOOB},
	}
	for _, tt := range tests {
		got, err := run(t, mod, tt.fn, tt.args...)
		if tt.panic != 0 {
			var rev *vm.Revert
			if !errors.As(err, &rev) || !rev.IsPanic || rev.Panic != tt.panic {
				t.Errorf("%s%v: want Panic(0x%02x), got %v", tt.fn, tt.args, uint8(tt.panic), err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s%v: %v", tt.fn, tt.args, err)
			continue
		}
		if got[0] != word(tt.want) {
			t.Errorf("%s%v = %s, want %d", tt.fn, tt.args, got[0], tt.want)
		}
	}
}

func TestRevertAndStop(t *testing.T) {
	mod := compileMIR(t, `{
		function fail() { mstore(0, 0xdead) revert(30, 2) }
		function halt() { stop() }
	}`)
	_, err := run(t, mod, "fail")
	var rev *vm.Revert
	if !errors.As(err, &rev) || rev.IsPanic || string(rev.Data) != "\xde\xad" {
		t.Fatalf("fail(): %v", err)
	}
	_, err = run(t, mod, "halt")
	var h *vm.Halt
	if !errors.As(err, &h) {
		t.Fatalf("halt(): %v", err)
	}
}

func TestObjectUnitsAndData(t *testing.T) {
	units, err := generateSource(t, `object "Outer" {
		code {
			function info() -> off, size { off := dataoffset("second") size := datasize("second") }
			function first() -> w { datacopy(0, dataoffset("second"), datasize("second")) w := mload(0) }
		}
		object "Inner" { code { function inner() -> r { r := 3 } } }
		data "first" "abc"
		data "second" hex"0102"
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 2 || units[0].Name != "Outer" || units[1].Name != "Inner" {
		t.Fatalf("units = %+v", units)
	}
	outer := units[0].Builder.(*mir.Builder).Module()
	if string(outer.Data) != "abc\x01\x02" {
		t.Fatalf("data blob = %q", outer.Data)
	}
	got := mustRun(t, outer, "info")
	if got[0] != word(3) || got[1] != word(2) {
		t.Errorf("info() = %s, %s; want 3, 2", got[0], got[1])
	}
	got = mustRun(t, outer, "first")
	want := bignum.Shl(word(0x0102), 240)
	if got[0] != want {
		t.Errorf("first() = %s, want %s", got[0].Hex(), want.Hex())
	}
	inner := units[1].Builder.(*mir.Builder).Module()
	if inner.Lookup("info") != nil {
		t.Errorf("inner unit must not contain outer functions")
	}
	if got := mustRun(t, inner, "inner"); got[0] != word(3) {
		t.Errorf("inner() = %s", got[0])
	}
}

func TestTypedSlotsInDump(t *testing.T) {
	mod := compileMIR(t, `{ function f(a:u8) -> r { let b:u8 := 255:u8 r := add(a, b) } }`)
	dump := mod.String()
	if !strings.Contains(dump, "u8 name=a") || !strings.Contains(dump, "u8 name=b") {
		t.Errorf("typed slots missing from dump:\n%s", dump)
	}
	if got := mustRun(t, mod, "f", 1); got[0] != word(256) {
		t.Errorf("f(1) = %s, want 256 (values flow at full width)", got[0])
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"builtin arity", "{ pop(add(1)) }", diag.GenCallArity},
		{"user arity", "{ function f(a) {} f(1, 2) }", diag.GenCallArity},
		{"helper arity", "{ pop(checked_add_t_uint8(1)) }", diag.GenCallArity},
		{"let arity", "{ let a, b := add(1, 2) }", diag.GenAssignArity},
		{"assign arity", "{ function p() -> x, y {} let a := 0 a := p() }", diag.GenAssignArity},
		{"multi value in expression", "{ function p() -> x, y {} pop(add(p(), 1)) }", diag.GenMultiValueInExpr},
		{"no value in expression", "{ pop(mstore(0, 1)) }", diag.GenMultiValueInExpr},
		{"unused value", "{ add(1, 2) }", diag.GenUnusedValue},
		{"unused literal", "{ 1 }", diag.GenUnusedValue},
		{"break outside loop", "{ break }", diag.GenBreakOutsideLoop},
		{"continue in nested function", "{ for {} 1 {} { function f() { continue } } }", diag.GenBreakOutsideLoop},
		{"leave outside function", "{ leave }", diag.GenLeaveOutsideFunction},
		{"literal out of range", "{ let x := 256:u8 }", diag.GenLiteralRange},
		{"string too long", `{ let x := "0123456789012345678901234567890123" }`, diag.GenLiteralRange},
		{"datasize needs literal", "{ let n := 1 pop(datasize(n)) }", diag.GenBadBuiltinArg},
		{"datasize unknown", `{ pop(datasize("nope")) }`, diag.GenUnknownData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectGenError(t, tt.input, tt.code)
		})
	}
}

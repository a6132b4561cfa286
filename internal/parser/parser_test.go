package parser

import (
	"testing"

	"yulc/internal/ast"
	"yulc/internal/diag"
)

func TestParseStatementKinds(t *testing.T) {
	src := `{
		function f(a, b:u256) -> r { r := add(a, b) leave }
		let x, y := f(1, 2)
		x, y := f(y, x)
		if lt(x, 10) { x := 10 }
		switch x case 0 { } case "a" { } default { }
		for { let i := 0 } lt(i, 3) { i := add(i, 1) } { break continue }
		{ }
		pop(x)
	}`
	b, root := mustParse(t, src)
	stmts := rootStmts(t, b, root)
	want := []ast.StmtKind{
		ast.StmtFunction, ast.StmtLet, ast.StmtAssign, ast.StmtIf,
		ast.StmtSwitch, ast.StmtFor, ast.StmtBlock, ast.StmtExpr,
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, k := range want {
		if got := b.Stmts.Get(stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: got %v, want %v", i, got, k)
		}
	}

	fn, ok := b.Stmts.Function(stmts[0])
	if !ok {
		t.Fatal("expected function payload")
	}
	if b.Name(fn.Name) != "f" || len(fn.Params) != 2 || len(fn.Results) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if b.Name(fn.Params[1].Type) != "u256" {
		t.Errorf("param type = %q, want u256", b.Name(fn.Params[1].Type))
	}
	if fn.Params[0].Type != 0 {
		t.Errorf("untyped param should have no type")
	}

	sw, _ := b.Stmts.Switch(stmts[4])
	if len(sw.Cases) != 2 || !sw.Default.IsValid() {
		t.Fatalf("switch: %d cases, default=%v", len(sw.Cases), sw.Default.IsValid())
	}
	lit, _ := b.Exprs.Literal(sw.Cases[1].Value)
	if lit.Kind != ast.LitString || lit.Text != `"a"` {
		t.Errorf("case literal = %+v", lit)
	}

	loop, _ := b.Stmts.For(stmts[5])
	if got := len(b.Blocks.Get(loop.Body).Stmts); got != 2 {
		t.Errorf("for body has %d statements, want 2", got)
	}
}

func TestParseLetWithoutValue(t *testing.T) {
	b, root := mustParse(t, "{ let a, b }")
	decl, ok := b.Stmts.Let(rootStmts(t, b, root)[0])
	if !ok || len(decl.Names) != 2 || decl.Value.IsValid() {
		t.Fatalf("unexpected let: %+v", decl)
	}
}

func TestParseTypedLiteral(t *testing.T) {
	b, root := mustParse(t, "{ let a := 0x2a:u8 let t := true:bool }")
	stmts := rootStmts(t, b, root)
	decl, _ := b.Stmts.Let(stmts[0])
	lit, ok := b.Exprs.Literal(decl.Value)
	if !ok {
		t.Fatal("expected literal")
	}
	if lit.Kind != ast.LitHexNumber || b.Name(lit.Type) != "u8" {
		t.Errorf("literal = %+v type %q", lit, b.Name(lit.Type))
	}
	decl, _ = b.Stmts.Let(stmts[1])
	lit, _ = b.Exprs.Literal(decl.Value)
	if lit.Kind != ast.LitTrue || b.Name(lit.Type) != "bool" {
		t.Errorf("literal = %+v", lit)
	}
}

func TestParseNestedCalls(t *testing.T) {
	b, root := mustParse(t, "{ mstore(0x40, add(mload(0x40), 32)) }")
	st, _ := b.Stmts.Expr(rootStmts(t, b, root)[0])
	call, ok := b.Exprs.Call(st.Expr)
	if !ok || b.Name(call.Callee) != "mstore" || len(call.Args) != 2 {
		t.Fatalf("unexpected call %+v", call)
	}
	inner, ok := b.Exprs.Call(call.Args[1])
	if !ok || b.Name(inner.Callee) != "add" {
		t.Fatalf("unexpected inner call %+v", inner)
	}
	if _, ok := b.Exprs.Call(inner.Args[0]); !ok {
		t.Fatal("expected mload call as first argument")
	}
}

func TestParseObject(t *testing.T) {
	src := `object "Main" {
		code { let x := 1 }
		object "Sub" { code { } }
		data "blob" hex"00ff"
		data "text" "hi"
	}`
	b, root := mustParse(t, src)
	if !root.IsObject() {
		t.Fatal("expected object root")
	}
	obj := b.Objects.Get(root.Object)
	if obj.Name != "Main" || len(obj.Children) != 1 || len(obj.Data) != 2 {
		t.Fatalf("unexpected object %+v", obj)
	}
	if sub := b.Objects.Get(obj.Children[0]); sub.Name != "Sub" {
		t.Errorf("child name = %q", sub.Name)
	}
	if d := obj.Data[0]; !d.Hex || len(d.Value) != 2 || d.Value[1] != 0xff {
		t.Errorf("hex data = %+v", d)
	}
	if d := obj.Data[1]; d.Hex || string(d.Value) != "hi" {
		t.Errorf("text data = %+v", d)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"empty input", "", diag.SynExpectBlock},
		{"unclosed block", "{ let x := 1", diag.SynUnexpectedToken},
		{"switch without cases", "{ switch x }", diag.SynSwitchNoCases},
		{"case needs literal", "{ switch x case y { } }", diag.SynExpectLiteral},
		{"missing assign", "{ a, b }", diag.SynExpectAssign},
		{"let needs identifier", "{ let 1 := 2 }", diag.SynExpectIdentifier},
		{"trailing input", "{ } { }", diag.SynTrailingInput},
		{"stray token", "{ ) }", diag.SynExpectStatement},
		{"if needs block", "{ if 1 let }", diag.SynExpectBlock},
		{"function needs name", "{ function () {} }", diag.SynExpectIdentifier},
		{"lex error surfaces", "{ let x := 12abc }", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectParseError(t, tt.input, tt.code)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	de := expectParseError(t, "{ let x := }", diag.SynUnexpectedToken)
	if want := "expected expression, found '}'"; de.Message != want {
		t.Errorf("message = %q, want %q", de.Message, want)
	}
	if de.Offset() != 11 {
		t.Errorf("offset = %d, want 11", de.Offset())
	}
}

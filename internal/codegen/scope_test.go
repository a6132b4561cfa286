package codegen

import (
	"errors"
	"testing"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/mir"
	"yulc/internal/parser"
	"yulc/internal/source"
	"yulc/internal/symbols"
)

// Build never resolves a name to a variable whose block has closed, so the
// context is altered by hand: the read of y is pointed at x from the inner block.
func TestReadAfterScopeClosed(t *testing.T) {
	const input = `{
		{ let x := 1 }
		let y := 2
		pop(y)
	}`
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("closed.yul", []byte(input)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.ParseFile(lexer.New(file, lexer.Options{}), b, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx, err := symbols.Build(b, res.Root, symbols.Options{Builtins: Catalog{}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var inner symbols.SymbolID
	for _, syms := range ctx.Decls {
		for _, sym := range syms {
			if ctx.Name(sym) == "x" {
				inner = sym
			}
		}
	}
	if !inner.IsValid() {
		t.Fatalf("no symbol for x")
	}
	rewired := 0
	for expr, sym := range ctx.Refs {
		if ctx.Name(sym) == "y" {
			ctx.Refs[expr] = inner
			rewired++
		}
	}
	if rewired != 1 {
		t.Fatalf("expected one read of y, got %d", rewired)
	}

	units, err := Generate(ctx, b, res.Root, mir.Factory, Options{Name: "closed"})
	if units != nil {
		t.Fatalf("units returned alongside an error")
	}
	var de *diag.Error
	if !errors.As(err, &de) || de.Code != diag.GenScopeClosed {
		t.Fatalf("err = %v, want %s", err, diag.GenScopeClosed.ID())
	}
	if len(de.Notes) != 1 || de.Notes[0].Msg != "declared here" {
		t.Fatalf("notes = %+v", de.Notes)
	}
}

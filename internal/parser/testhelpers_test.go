package parser

import (
	"errors"
	"testing"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, ast.Root, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.yul", []byte(input)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := ParseFile(lx, b, Options{Reporter: rep})
	return b, res.Root, bag, err
}

func mustParse(t *testing.T, input string) (*ast.Builder, ast.Root) {
	t.Helper()
	b, root, bag, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	if bag.Len() != 0 {
		t.Fatalf("parse %q: unexpected diagnostics %v", input, bag.Items())
	}
	return b, root
}

func expectParseError(t *testing.T, input string, code diag.Code) *diag.Error {
	t.Helper()
	_, _, bag, err := parseSource(t, input)
	if err == nil {
		t.Fatalf("parse %q: expected %s, got success", input, code.ID())
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("parse %q: error %T is not *diag.Error", input, err)
	}
	if de.Code != code {
		t.Fatalf("parse %q: got %s (%s), want %s", input, de.Code.ID(), de.Message, code.ID())
	}
	if bag.Len() != 1 {
		t.Fatalf("parse %q: expected exactly one reported diagnostic, got %d", input, bag.Len())
	}
	return de
}

func rootStmts(t *testing.T, b *ast.Builder, root ast.Root) []ast.StmtID {
	t.Helper()
	if root.IsObject() {
		t.Fatalf("root is an object, want block")
	}
	return b.Blocks.Get(root.Block).Stmts
}

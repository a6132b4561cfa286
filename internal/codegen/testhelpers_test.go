package codegen

import (
	"errors"
	"testing"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/mir"
	"yulc/internal/parser"
	"yulc/internal/source"
	"yulc/internal/symbols"
	"yulc/internal/vm"
)

func generateSource(t *testing.T, input string) ([]Unit, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.yul", []byte(input)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res, err := parser.ParseFile(lexer.New(file, lexer.Options{}), b, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	ctx, err := symbols.Build(b, res.Root, symbols.Options{Builtins: Catalog{}})
	if err != nil {
		t.Fatalf("build %q: %v", input, err)
	}
	return Generate(ctx, b, res.Root, mir.Factory, Options{Name: "test"})
}

// compileMIR generates input and returns the module of its first unit.
func compileMIR(t *testing.T, input string) *mir.Module {
	t.Helper()
	units, err := generateSource(t, input)
	if err != nil {
		t.Fatalf("generate %q: %v", input, err)
	}
	mod := units[0].Builder.(*mir.Builder).Module()
	if err := mir.Validate(mod); err != nil {
		t.Fatalf("validate:\n%s\n%v", mod, err)
	}
	return mod
}

func run(t *testing.T, mod *mir.Module, fn string, args ...uint64) ([]bignum.Word, error) {
	t.Helper()
	words := make([]bignum.Word, len(args))
	for i, a := range args {
		words[i] = bignum.FromUint64(a)
	}
	return vm.New(mod, vm.Options{MaxSteps: 1_000_000}).Call(fn, words...)
}

func mustRun(t *testing.T, mod *mir.Module, fn string, args ...uint64) []bignum.Word {
	t.Helper()
	out, err := run(t, mod, fn, args...)
	if err != nil {
		t.Fatalf("%s%v: %v\n%s", fn, args, err, mod)
	}
	return out
}

func expectGenError(t *testing.T, input string, code diag.Code) *diag.Error {
	t.Helper()
	units, err := generateSource(t, input)
	if err == nil {
		t.Fatalf("generate %q: expected %s, got success", input, code.ID())
	}
	if units != nil {
		t.Fatalf("generate %q: units returned alongside an error", input)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("generate %q: error %T is not *diag.Error", input, err)
	}
	if de.Code != code {
		t.Fatalf("generate %q: got %s (%s), want %s", input, de.Code.ID(), de.Message, code.ID())
	}
	return de
}

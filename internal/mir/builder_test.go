package mir

import (
	"strings"
	"testing"

	"yulc/internal/bignum"
	"yulc/internal/target"
)

// buildAdder emits: fn add2(a, b) -> 1 { return a + b }
func buildAdder(t *testing.T) *Module {
	t.Helper()
	b := NewBuilder("unit")
	fn := b.DeclareFunc("add2", 2, 1)
	b.BeginFunc(fn)
	x := b.Param(0)
	y := b.Param(1)
	s := b.NewSlot("c", 256)
	b.Store(s, b.Binary(target.OpAdd, x, y))
	b.Return([]target.ValueID{b.Load(s)})
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}
	return b.Module()
}

func TestBuilderAndDump(t *testing.T) {
	m := buildAdder(t)
	if err := Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	out := m.String()
	for _, want := range []string{
		`module "unit" funcs=1`,
		"fn add2(params=2) -> 1:",
		"$1: u256 name=c",
		"%3 = add %1, %2",
		"store $1, %3",
		"return %4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestCodeAfterTerminatorGoesToDeadBlock(t *testing.T) {
	b := NewBuilder("unit")
	fn := b.DeclareFunc("f", 0, 0)
	entry := b.BeginFunc(fn)
	b.Return(nil)
	b.Const(bignum.One())
	if b.Cursor() == entry {
		t.Fatal("cursor should move off the terminated entry block")
	}
	b.Return(nil)
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}
	if got := len(b.Module().Func(fn).Blocks); got != 2 {
		t.Fatalf("blocks = %d, want 2", got)
	}
}

func TestValidateReportsViolations(t *testing.T) {
	b := NewBuilder("unit")
	fn := b.DeclareFunc("f", 0, 1)
	callee := b.DeclareFunc("g", 1, 0)
	b.BeginFunc(fn)
	next := b.NewBlock("next")
	b.Call(callee, nil)
	b.Branch(next)
	b.SetCursor(next)
	b.Return(nil)
	b.NewBlock("open")
	err := b.EndFunc()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"unterminated block", "return of 0 values, want 1", "with 0 args, want 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q: %s", want, msg)
		}
	}
	if err := Validate(b.Module()); err == nil || !strings.Contains(err.Error(), "declared but never defined") {
		t.Errorf("module validation should flag undefined g, got %v", err)
	}
}

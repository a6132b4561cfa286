package llvm

import (
	"strings"
	"testing"

	"yulc/internal/bignum"
	"yulc/internal/target"
)

func TestBuilderEmitsFunctions(t *testing.T) {
	b := NewBuilder("unit")
	add := b.DeclareFunc("add2", 2, 1)
	pair := b.DeclareFunc("pair", 0, 2)

	b.BeginFunc(add)
	s := b.NewSlot("c", 256)
	b.Store(s, b.Binary(target.OpAdd, b.Param(0), b.Param(1)))
	b.Return([]target.ValueID{b.Load(s)})
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}

	b.BeginFunc(pair)
	one := b.Const(bignum.One())
	res := b.Call(add, []target.ValueID{one, one})
	b.Return([]target.ValueID{res[0], b.Binary(target.OpDiv, one, b.Const(bignum.Zero()))})
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	out := b.String()
	for _, want := range []string{
		"define i256 @add2(i256 %p0, i256 %p1)",
		"define { i256, i256 } @pair()",
		"alloca i256",
		"add i256 %p0, %p1",
		"udiv i256",
		"insertvalue { i256, i256 }",
		"call i256 @add2(",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("module missing %q:\n%s", want, out)
		}
	}
}

func TestRuntimeDeclaredOnDemand(t *testing.T) {
	b := NewBuilder("unit")
	fn := b.DeclareFunc("f", 0, 0)
	b.BeginFunc(fn)
	zero := b.Const(bignum.Zero())
	b.MemStore(zero, b.Intrinsic("caller", nil)[0], target.Width256)
	b.Abort(target.AbortRevert, zero, zero)
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}
	out := b.String()
	for _, want := range []string{"declare i256 @rt_caller()", "declare void @rt_mstore(", "call void @rt_revert(", "unreachable"} {
		if !strings.Contains(out, want) {
			t.Errorf("module missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "rt_sload") {
		t.Errorf("unused runtime functions must not be declared:\n%s", out)
	}
}

func TestEndFuncRejectsOpenBlocks(t *testing.T) {
	b := NewBuilder("unit")
	fn := b.DeclareFunc("f", 0, 0)
	b.BeginFunc(fn)
	b.NewBlock("open")
	b.Return(nil)
	if err := b.EndFunc(); err == nil || !strings.Contains(err.Error(), "unterminated block open.2") {
		t.Fatalf("EndFunc error = %v", err)
	}
	b.DeclareFunc("g", 0, 0)
	if err := b.Validate(); err == nil {
		t.Fatal("g was never defined")
	}
}

package rtlib_test

import (
	"errors"
	"testing"

	"yulc/internal/bignum"
	"yulc/internal/layout"
	"yulc/internal/mir"
	"yulc/internal/rtlib"
	"yulc/internal/target"
	"yulc/internal/vm"
)

// runHelper wraps helper name in a function taking its arguments as params
// and runs it with args. A non-zero free pointer is installed first.
func runHelper(t *testing.T, name string, args ...uint64) ([]bignum.Word, error) {
	t.Helper()
	h, ok := rtlib.Lookup(name)
	if !ok {
		t.Fatalf("helper %s not found", name)
	}
	b := mir.NewBuilder("rt")
	fn := b.DeclareFunc("f", h.Args, h.Results)
	b.BeginFunc(fn)
	mem := layout.EVM()
	b.MemStore(b.Const(mem.FreePointerWord()), b.Const(bignum.FromUint64(mem.InitialFreePointer)), target.Width256)
	params := make([]target.ValueID, h.Args)
	for i := range params {
		params[i] = b.Param(i)
	}
	res, err := rtlib.NewEmitter(b, mem).Emit(h, params)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	b.Return(res)
	if err := b.EndFunc(); err != nil {
		t.Fatalf("EndFunc: %v", err)
	}
	words := make([]bignum.Word, len(args))
	for i, a := range args {
		words[i] = bignum.FromUint64(a)
	}
	return vm.New(b.Module(), vm.Options{}).Call("f", words...)
}

func expectPanic(t *testing.T, err error, code layout.PanicCode) {
	t.Helper()
	var rev *vm.Revert
	if !errors.As(err, &rev) || !rev.IsPanic {
		t.Fatalf("expected Panic(0x%02x), got %v", uint8(code), err)
	}
	if rev.Panic != code {
		t.Fatalf("panic code = 0x%02x, want 0x%02x", uint8(rev.Panic), uint8(code))
	}
}

func TestCheckedArithmetic(t *testing.T) {
	tests := []struct {
		name  string
		args  []uint64
		want  uint64
		panic layout.PanicCode
	}{
		{"checked_add_t_uint8", []uint64{255, 0}, 255, 0},
		{"checked_add_t_uint8", []uint64{255, 1}, 0, layout.PanicOverflow},
		{"checked_add_t_uint256", []uint64{2, 3}, 5, 0},
		{"checked_sub_t_uint32", []uint64{5, 3}, 2, 0},
		{"checked_sub_t_uint32", []uint64{3, 5}, 0, layout.PanicOverflow},
		{"checked_mul_t_uint16", []uint64{256, 255}, 65280, 0},
		{"checked_mul_t_uint16", []uint64{256, 256}, 0, layout.PanicOverflow},
		{"checked_div_t_uint64", []uint64{7, 2}, 3, 0},
		{"checked_div_t_uint64", []uint64{7, 0}, 0, layout.PanicDivByZero},
		{"checked_mod_t_uint64", []uint64{7, 0}, 0, layout.PanicDivByZero},
		{"cleanup_t_uint8", []uint64{0x1ff}, 0xff, 0},
	}
	for _, tt := range tests {
		got, err := runHelper(t, tt.name, tt.args...)
		if tt.panic != 0 {
			expectPanic(t, err, tt.panic)
			continue
		}
		if err != nil {
			t.Fatalf("%s%v: %v", tt.name, tt.args, err)
		}
		if got[0] != bignum.FromUint64(tt.want) {
			t.Errorf("%s%v = %s, want %d", tt.name, tt.args, got[0], tt.want)
		}
	}
}

func TestCheckedAddFullWidthOverflow(t *testing.T) {
	h, _ := rtlib.Lookup("checked_add_t_uint256")
	b := mir.NewBuilder("rt")
	fn := b.DeclareFunc("f", 0, 1)
	b.BeginFunc(fn)
	res, err := rtlib.NewEmitter(b, layout.EVM()).Emit(h, []target.ValueID{b.Const(bignum.Max()), b.Const(bignum.One())})
	if err != nil {
		t.Fatal(err)
	}
	b.Return(res)
	if err := b.EndFunc(); err != nil {
		t.Fatal(err)
	}
	_, err = vm.New(b.Module(), vm.Options{}).Call("f")
	expectPanic(t, err, layout.PanicOverflow)
}

func TestIndexAccess(t *testing.T) {
	got, err := runHelper(t, "memory_array_index_access", 0x100, 2, 3, 32)
	if err != nil {
		t.Fatalf("index 2 of 3: %v", err)
	}
	if got[0] != bignum.FromUint64(0x140) {
		t.Errorf("address = %s, want 0x140", got[0].Hex())
	}
	_, err = runHelper(t, "memory_array_index_access", 0x100, 3, 3, 32)
	expectPanic(t, err, layout.PanicIndexOOB)
}

func TestAllocateMemory(t *testing.T) {
	got, err := runHelper(t, "allocate_memory", 33)
	if err != nil {
		t.Fatalf("allocate_memory: %v", err)
	}
	if got[0] != bignum.FromUint64(0x80) {
		t.Errorf("pointer = %s, want 0x80", got[0].Hex())
	}
	_, err = runHelper(t, "allocate_memory", ^uint64(0))
	expectPanic(t, err, layout.PanicAllocOverflow)
}

func TestPanicHelperReverts(t *testing.T) {
	_, err := runHelper(t, "panic_error_0x12")
	expectPanic(t, err, layout.PanicDivByZero)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"checked_add_t_uint8", "cleanup_t_uint256", "allocate_unbounded", "panic_error_0x41"} {
		if !rtlib.IsHelper(name) {
			t.Errorf("%s should be a helper", name)
		}
	}
	for _, name := range []string{"checked_add_t_uint7", "checked_add_t_uint264", "checked_add_t_uint08", "checked_pow_t_uint8", "panic_error_0x99"} {
		if rtlib.IsHelper(name) {
			t.Errorf("%s should not be a helper", name)
		}
	}
}

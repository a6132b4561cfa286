package rtlib

import (
	"strconv"
	"strings"

	"yulc/internal/layout"
	"yulc/internal/target"
)

// Helper is one catalog entry, bound to a width where the name carries one.
type Helper struct {
	Name    string
	Args    int
	Results int
	Bits    int
	emit    func(e *Emitter, h Helper, args []target.ValueID) []target.ValueID
}

type family struct {
	prefix  string
	args    int
	results int
	emit    func(e *Emitter, h Helper, args []target.ValueID) []target.ValueID
}

// sized families are suffixed with t_uint<N>
var sized = []family{
	{"checked_add_t_uint", 2, 1, (*Emitter).checkedAdd},
	{"checked_sub_t_uint", 2, 1, (*Emitter).checkedSub},
	{"checked_mul_t_uint", 2, 1, (*Emitter).checkedMul},
	{"checked_div_t_uint", 2, 1, (*Emitter).checkedDiv},
	{"checked_mod_t_uint", 2, 1, (*Emitter).checkedMod},
	{"cleanup_t_uint", 1, 1, (*Emitter).cleanup},
	{"abi_decode_t_uint", 1, 1, (*Emitter).abiDecode},
	{"abi_encode_t_uint", 2, 0, (*Emitter).abiEncode},
}

var fixed = map[string]Helper{
	"allocate_memory":           {Name: "allocate_memory", Args: 1, Results: 1, emit: (*Emitter).allocateMemory},
	"allocate_unbounded":        {Name: "allocate_unbounded", Args: 0, Results: 1, emit: (*Emitter).allocateUnbounded},
	"memory_array_index_access": {Name: "memory_array_index_access", Args: 4, Results: 1, emit: (*Emitter).indexAccess},
	"panic_error_0x11":          panicHelper(layout.PanicOverflow),
	"panic_error_0x12":          panicHelper(layout.PanicDivByZero),
	"panic_error_0x32":          panicHelper(layout.PanicIndexOOB),
	"panic_error_0x41":          panicHelper(layout.PanicAllocOverflow),
}

func panicHelper(code layout.PanicCode) Helper {
	return Helper{
		Name: "panic_error_0x" + strconv.FormatUint(uint64(code), 16),
		Bits: int(code),
		emit: func(e *Emitter, h Helper, _ []target.ValueID) []target.ValueID {
			e.Panic(layout.PanicCode(h.Bits)) //nolint:gosec // code < 256
			e.b.SetCursor(e.b.NewBlock("after_panic"))
			return nil
		},
	}
}

// Lookup resolves a helper name.
func Lookup(name string) (Helper, bool) {
	if h, ok := fixed[name]; ok {
		return h, true
	}
	for _, f := range sized {
		suffix, ok := strings.CutPrefix(name, f.prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 8 || n > 256 || n%8 != 0 || suffix[0] == '0' {
			return Helper{}, false
		}
		return Helper{Name: name, Args: f.args, Results: f.results, Bits: n, emit: f.emit}, true
	}
	return Helper{}, false
}

// IsHelper reports whether name is in the catalog.
func IsHelper(name string) bool {
	_, ok := Lookup(name)
	return ok
}

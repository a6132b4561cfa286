package vm

import (
	"yulc/internal/bignum"
	"yulc/internal/mir"
)

// Env supplies the execution context read by environment intrinsics.
type Env struct {
	Address   bignum.Word
	Caller    bignum.Word
	Origin    bignum.Word
	CallValue bignum.Word
	Calldata  []byte
	Timestamp uint64
	Number    uint64
	ChainID   uint64
	GasPrice  uint64
	GasLimit  uint64
	Coinbase  bignum.Word
	Balances  map[bignum.Word]bignum.Word
}

// Options configures execution limits.
type Options struct {
	MaxSteps  uint64 // 0 = 10M
	MaxMemory uint64 // bytes, 0 = 16 MiB
	MaxDepth  int    // 0 = 1024
	Env       Env
	// Step, when set, observes every executed instruction; used by --trace.
	Step func(fn *mir.Func, bb *mir.Block, ins *mir.Instr)
}

func (o Options) withDefaults() Options {
	if o.MaxSteps == 0 {
		o.MaxSteps = 10_000_000
	}
	if o.MaxMemory == 0 {
		o.MaxMemory = 16 << 20
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 1024
	}
	if o.Env.GasLimit == 0 {
		o.Env.GasLimit = 30_000_000
	}
	return o
}

// VM is a direct MIR interpreter. Storage and memory persist across calls on
// the same VM.
type VM struct {
	M       *mir.Module
	Memory  *Memory
	Storage map[bignum.Word]bignum.Word
	Steps   uint64

	opts  Options
	stack []*Frame
}

func New(m *mir.Module, opts Options) *VM {
	opts = opts.withDefaults()
	return &VM{
		M:       m,
		Memory:  newMemory(opts.MaxMemory),
		Storage: make(map[bignum.Word]bignum.Word),
		opts:    opts,
	}
}

// Call runs the named function to completion. A revert surfaces as *Revert,
// return/stop as *Halt, interpreter failures as *Fault.
func (vm *VM) Call(name string, args ...bignum.Word) ([]bignum.Word, error) {
	fn := vm.M.Lookup(name)
	if fn == nil || !fn.Defined {
		return nil, &Fault{Code: FaultNoEntry, Message: "no function " + name}
	}
	if len(args) != fn.Params {
		return nil, vm.fault(FaultBadProgram, "%s expects %d arguments, got %d", name, fn.Params, len(args))
	}
	vm.stack = vm.stack[:0]
	return vm.call(fn, args)
}

// Outcome summarises a top-level run.
type Outcome struct {
	Values []bignum.Word
	Halted bool
	Data   []byte
}

// Run executes entry and folds a Halt into a successful Outcome.
func (vm *VM) Run(entry string, args ...bignum.Word) (Outcome, error) {
	vals, err := vm.Call(entry, args...)
	if h, ok := err.(*Halt); ok { //nolint:errorlint // Halt is never wrapped
		return Outcome{Halted: true, Data: h.Data}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Values: vals}, nil
}

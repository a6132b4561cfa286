package mir

import (
	"fmt"

	"fortio.org/safecast"

	"yulc/internal/bignum"
	"yulc/internal/target"
)

// Builder assembles a Module; it implements target.Builder.
type Builder struct {
	mod *Module
	fn  *Func
	cur target.BlockID
}

var _ target.Builder = (*Builder)(nil)

func NewBuilder(module string) *Builder {
	return &Builder{mod: &Module{Name: module}}
}

// Factory adapts NewBuilder to target.Factory.
func Factory(module string) target.Builder { return NewBuilder(module) }

// Module returns the module built so far.
func (b *Builder) Module() *Module { return b.mod }

// String renders the module in the textual MIR form.
func (b *Builder) String() string { return b.mod.String() }

// Validate checks structural invariants of the finished module.
func (b *Builder) Validate() error { return Validate(b.mod) }

func (b *Builder) DeclareFunc(name string, params, results int) target.FuncID {
	id := target.FuncID(len(b.mod.Funcs) + 1) //nolint:gosec // function count is small
	b.mod.Funcs = append(b.mod.Funcs, &Func{ID: id, Name: name, Params: params, Results: results})
	return id
}

func (b *Builder) BeginFunc(fn target.FuncID) target.BlockID {
	b.fn = b.mod.Func(fn)
	if b.fn == nil {
		panic(fmt.Sprintf("mir: unknown function %d", fn))
	}
	b.fn.Defined = true
	b.fn.Entry = b.NewBlock("entry")
	b.cur = b.fn.Entry
	return b.fn.Entry
}

func (b *Builder) Param(i int) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrParam, Dst: []target.ValueID{v}, Param: i})
	return v
}

func (b *Builder) EndFunc() error {
	fn := b.fn
	b.fn, b.cur = nil, target.NoBlock
	if fn == nil {
		return fmt.Errorf("mir: EndFunc without BeginFunc")
	}
	return validateFunc(b.mod, fn)
}

func (b *Builder) NewBlock(label string) target.BlockID {
	id := target.BlockID(len(b.fn.Blocks) + 1) //nolint:gosec // block count is small
	b.fn.Blocks = append(b.fn.Blocks, Block{ID: id, Label: label})
	return id
}

func (b *Builder) SetCursor(id target.BlockID) { b.cur = id }

func (b *Builder) Cursor() target.BlockID { return b.cur }

func (b *Builder) Terminated() bool { return b.fn.Block(b.cur).Terminated() }

func (b *Builder) NewSlot(name string, bits int) target.SlotID {
	b.fn.Slots = append(b.fn.Slots, Slot{Name: name, Bits: bits})
	return target.SlotID(len(b.fn.Slots)) //nolint:gosec // slot count is small
}

func (b *Builder) Load(s target.SlotID) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrLoad, Dst: []target.ValueID{v}, Slot: s})
	return v
}

func (b *Builder) Store(s target.SlotID, v target.ValueID) {
	b.append(Instr{Kind: InstrStore, Args: []target.ValueID{v}, Slot: s})
}

func (b *Builder) Const(w bignum.Word) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrConst, Dst: []target.ValueID{v}, Const: w})
	return v
}

func (b *Builder) Binary(op target.BinOp, x, y target.ValueID) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrBinary, Dst: []target.ValueID{v}, Args: []target.ValueID{x, y}, Bin: op})
	return v
}

func (b *Builder) Unary(op target.UnOp, x target.ValueID) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrUnary, Dst: []target.ValueID{v}, Args: []target.ValueID{x}, Un: op})
	return v
}

func (b *Builder) MemLoad(addr target.ValueID) target.ValueID {
	v := b.newValue()
	b.append(Instr{Kind: InstrMemLoad, Dst: []target.ValueID{v}, Args: []target.ValueID{addr}})
	return v
}

func (b *Builder) MemStore(addr, v target.ValueID, width target.Width) {
	b.append(Instr{Kind: InstrMemStore, Args: []target.ValueID{addr, v}, Width: width})
}

func (b *Builder) Intrinsic(name string, args []target.ValueID) []target.ValueID {
	sig, ok := target.Intrinsic(name)
	if !ok {
		panic(fmt.Sprintf("mir: unknown intrinsic %q", name))
	}
	dst := b.newValues(sig.Results)
	b.append(Instr{Kind: InstrIntrinsic, Dst: dst, Args: args, Name: name})
	return dst
}

func (b *Builder) Call(fn target.FuncID, args []target.ValueID) []target.ValueID {
	callee := b.mod.Func(fn)
	if callee == nil {
		panic(fmt.Sprintf("mir: call to unknown function %d", fn))
	}
	dst := b.newValues(callee.Results)
	b.append(Instr{Kind: InstrCall, Dst: dst, Args: args, Callee: fn})
	return dst
}

func (b *Builder) CondBranch(cond target.ValueID, then, els target.BlockID) {
	b.terminate(Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: then, Else: els}})
}

func (b *Builder) Branch(to target.BlockID) {
	b.terminate(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: to}})
}

func (b *Builder) Return(vals []target.ValueID) {
	b.terminate(Terminator{Kind: TermReturn, Return: ReturnTerm{Values: vals}})
}

func (b *Builder) Abort(kind target.AbortKind, off, size target.ValueID) {
	b.terminate(Terminator{Kind: TermAbort, Abort: AbortTerm{Kind: kind, Off: off, Size: size}})
}

func (b *Builder) SetData(blob []byte) {
	b.mod.Data = append([]byte(nil), blob...)
}

func (b *Builder) newValue() target.ValueID {
	b.fn.NumValues++
	v, err := safecast.Conv[uint32](b.fn.NumValues)
	if err != nil {
		panic(fmt.Errorf("mir: value id overflow: %w", err))
	}
	return target.ValueID(v)
}

func (b *Builder) newValues(n int) []target.ValueID {
	if n == 0 {
		return nil
	}
	out := make([]target.ValueID, n)
	for i := range out {
		out[i] = b.newValue()
	}
	return out
}

// block returns the cursor block; code after a terminator lands in a fresh
// unreachable block.
func (b *Builder) block() *Block {
	blk := b.fn.Block(b.cur)
	if blk.Terminated() {
		b.cur = b.NewBlock("dead")
		blk = b.fn.Block(b.cur)
	}
	return blk
}

func (b *Builder) append(ins Instr) {
	blk := b.block()
	blk.Instrs = append(blk.Instrs, ins)
}

func (b *Builder) terminate(t Terminator) {
	b.block().Term = t
}

package llvm

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"yulc/internal/target"
)

var word = types.NewInt(256)

// Builder assembles an LLVM module; it implements target.Builder.
type Builder struct {
	mod         *ir.Module
	funcs       []*funcInfo // index = FuncID-1
	externs     map[string]*ir.Func
	runtimeSigs map[string]runtimeDecl

	fn     *funcInfo
	blocks []*ir.Block // index = BlockID-1
	values []value.Value
	slots  []*ir.InstAlloca
	cur    target.BlockID
}

type funcInfo struct {
	ir      *ir.Func
	name    string
	params  int
	results int
	defined bool
}

var _ target.Builder = (*Builder)(nil)

func NewBuilder(module string) *Builder {
	m := ir.NewModule()
	m.SourceFilename = module
	return &Builder{
		mod:         m,
		externs:     make(map[string]*ir.Func),
		runtimeSigs: runtimeSigMap(),
	}
}

// Factory adapts NewBuilder to target.Factory.
func Factory(module string) target.Builder { return NewBuilder(module) }

func (b *Builder) Module() *ir.Module { return b.mod }

// String renders the module as textual LLVM IR.
func (b *Builder) String() string { return b.mod.String() }

// Validate reports functions that were declared but never given a body.
func (b *Builder) Validate() error {
	var errs []error
	for _, f := range b.funcs {
		if !f.defined {
			errs = append(errs, fmt.Errorf("%s: declared but never defined", f.name))
		}
	}
	return errors.Join(errs...)
}

func resultType(n int) types.Type {
	switch n {
	case 0:
		return types.Void
	case 1:
		return word
	default:
		fields := make([]types.Type, n)
		for i := range fields {
			fields[i] = word
		}
		return types.NewStruct(fields...)
	}
}

func (b *Builder) DeclareFunc(name string, params, results int) target.FuncID {
	ps := make([]*ir.Param, params)
	for i := range ps {
		ps[i] = ir.NewParam(fmt.Sprintf("p%d", i), word)
	}
	f := b.mod.NewFunc(name, resultType(results), ps...)
	b.funcs = append(b.funcs, &funcInfo{ir: f, name: name, params: params, results: results})
	return target.FuncID(len(b.funcs)) //nolint:gosec // function count is small
}

func (b *Builder) info(id target.FuncID) *funcInfo {
	if !id.IsValid() || int(id) > len(b.funcs) {
		panic(fmt.Sprintf("llvm: unknown function %d", id))
	}
	return b.funcs[id-1]
}

func (b *Builder) BeginFunc(fn target.FuncID) target.BlockID {
	b.fn = b.info(fn)
	b.fn.defined = true
	b.blocks = b.blocks[:0]
	b.values = append(b.values[:0], nil) // ValueID 0 is NoValue
	b.slots = b.slots[:0]
	b.cur = b.NewBlock("entry")
	return b.cur
}

func (b *Builder) Param(i int) target.ValueID {
	return b.define(b.fn.ir.Params[i])
}

// EndFunc checks that every block ends in a terminator.
func (b *Builder) EndFunc() error {
	fn := b.fn
	b.fn, b.cur = nil, target.NoBlock
	if fn == nil {
		return errors.New("llvm: EndFunc without BeginFunc")
	}
	var errs []error
	for _, blk := range fn.ir.Blocks {
		if blk.Term == nil {
			errs = append(errs, fmt.Errorf("%s: unterminated block %s", fn.name, blk.Name()))
		}
	}
	return errors.Join(errs...)
}

func (b *Builder) NewBlock(label string) target.BlockID {
	id := target.BlockID(len(b.blocks) + 1) //nolint:gosec // block count is small
	blk := b.fn.ir.NewBlock(fmt.Sprintf("%s.%d", label, id))
	b.blocks = append(b.blocks, blk)
	return id
}

func (b *Builder) SetCursor(id target.BlockID) { b.cur = id }

func (b *Builder) Cursor() target.BlockID { return b.cur }

func (b *Builder) Terminated() bool { return b.blocks[b.cur-1].Term != nil }

// block returns the insertion block, moving to a fresh unreachable block
// when the current one is already terminated.
func (b *Builder) block() *ir.Block {
	blk := b.blocks[b.cur-1]
	if blk.Term != nil {
		b.cur = b.NewBlock("dead")
		blk = b.blocks[b.cur-1]
	}
	return blk
}

func (b *Builder) define(v value.Value) target.ValueID {
	b.values = append(b.values, v)
	return target.ValueID(len(b.values) - 1) //nolint:gosec // value count is small
}

func (b *Builder) value(id target.ValueID) value.Value {
	return b.values[id]
}

func (b *Builder) NewSlot(name string, bits int) target.SlotID {
	entry := b.blocks[0]
	a := entry.NewAlloca(word)
	a.SetName(fmt.Sprintf("%s.u%d.%d", name, bits, len(b.slots)+1))
	b.slots = append(b.slots, a)
	return target.SlotID(len(b.slots)) //nolint:gosec // slot count is small
}

func (b *Builder) Load(s target.SlotID) target.ValueID {
	return b.define(b.block().NewLoad(word, b.slots[s-1]))
}

func (b *Builder) Store(s target.SlotID, v target.ValueID) {
	b.block().NewStore(b.value(v), b.slots[s-1])
}

// SetData emits the unit's data blob as a private constant; rt_datacopy
// resolves it by name at link time.
func (b *Builder) SetData(blob []byte) {
	g := b.mod.NewGlobalDef("yul.data", constant.NewCharArray(blob))
	g.Immutable = true
}

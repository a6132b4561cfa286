package rtlib

import (
	"fmt"

	"yulc/internal/bignum"
	"yulc/internal/layout"
	"yulc/internal/target"
)

// Emitter expands helpers into the block under the builder's cursor. After a
// checked helper the cursor rests on the success continuation.
type Emitter struct {
	b   target.Builder
	mem layout.Target
}

func NewEmitter(b target.Builder, mem layout.Target) *Emitter {
	return &Emitter{b: b, mem: mem}
}

// Emit expands h with already evaluated arguments.
func (e *Emitter) Emit(h Helper, args []target.ValueID) ([]target.ValueID, error) {
	if len(args) != h.Args {
		return nil, fmt.Errorf("rtlib: %s expects %d arguments, got %d", h.Name, h.Args, len(args))
	}
	return h.emit(e, h, args), nil
}

func (e *Emitter) word(v uint64) target.ValueID {
	return e.b.Const(bignum.FromUint64(v))
}

// Panic writes selector and cause code to scratch memory and reverts.
func (e *Emitter) Panic(code layout.PanicCode) {
	b := e.b
	b.MemStore(e.word(0), b.Const(layout.SelectorWord()), target.Width256)
	b.MemStore(e.word(4), b.Const(code.Word()), target.Width256)
	b.Abort(target.AbortRevert, e.word(0), e.word(layout.PanicDataSize))
}

// guard branches to a fresh panic block when cond is non-zero and leaves the
// cursor on the continuation.
func (e *Emitter) guard(cond target.ValueID, code layout.PanicCode, label string) {
	fail := e.b.NewBlock(label + ".panic")
	ok := e.b.NewBlock(label + ".ok")
	e.b.CondBranch(cond, fail, ok)
	e.b.SetCursor(fail)
	e.Panic(code)
	e.b.SetCursor(ok)
}

func (e *Emitter) mask(v target.ValueID, bits int) target.ValueID {
	if bits >= bignum.Bits {
		return v
	}
	return e.b.Binary(target.OpAnd, v, e.b.Const(bignum.MaxBits(bits)))
}

package rtlib

import (
	"yulc/internal/bignum"
	"yulc/internal/layout"
	"yulc/internal/target"
)

// allocateMemory bumps the free pointer by size rounded up to whole words.
func (e *Emitter) allocateMemory(_ Helper, args []target.ValueID) []target.ValueID {
	b := e.b
	slot := b.Const(e.mem.FreePointerWord())
	ptr := b.MemLoad(slot)
	align := e.mem.WordSize - 1
	rounded := b.Binary(target.OpAnd,
		b.Binary(target.OpAdd, args[0], e.word(align)),
		b.Const(bignum.Not(bignum.FromUint64(align))))
	next := b.Binary(target.OpAdd, ptr, rounded)
	overflow := b.Binary(target.OpOr,
		b.Binary(target.OpGt, next, b.Const(e.mem.MaxPointerWord())),
		b.Binary(target.OpLt, next, ptr))
	e.guard(overflow, layout.PanicAllocOverflow, "allocate")
	b.MemStore(slot, next, target.Width256)
	return []target.ValueID{ptr}
}

func (e *Emitter) allocateUnbounded(_ Helper, _ []target.ValueID) []target.ValueID {
	return []target.ValueID{e.b.MemLoad(e.b.Const(e.mem.FreePointerWord()))}
}

// indexAccess(base, index, count, elemSize) panics unless index < count.
func (e *Emitter) indexAccess(_ Helper, args []target.ValueID) []target.ValueID {
	b := e.b
	base, index, count, size := args[0], args[1], args[2], args[3]
	e.guard(b.Unary(target.OpIsZero, b.Binary(target.OpLt, index, count)), layout.PanicIndexOOB, "index")
	return []target.ValueID{b.Binary(target.OpAdd, base, b.Binary(target.OpMul, index, size))}
}

func (e *Emitter) abiDecode(h Helper, args []target.ValueID) []target.ValueID {
	return []target.ValueID{e.mask(e.b.MemLoad(args[0]), h.Bits)}
}

// abiEncode(value, ptr) stores the cleaned value as one full word.
func (e *Emitter) abiEncode(h Helper, args []target.ValueID) []target.ValueID {
	e.b.MemStore(args[1], e.mask(args[0], h.Bits), target.Width256)
	return nil
}

package rtlib

import (
	"yulc/internal/bignum"
	"yulc/internal/layout"
	"yulc/internal/target"
)

func (e *Emitter) operands(h Helper, args []target.ValueID) (x, y target.ValueID) {
	return e.mask(args[0], h.Bits), e.mask(args[1], h.Bits)
}

// overflowsWidth is gt(v, 2^bits-1), or constant 0 at full width.
func (e *Emitter) overflowsWidth(v target.ValueID, bits int) target.ValueID {
	if bits >= bignum.Bits {
		return e.word(0)
	}
	return e.b.Binary(target.OpGt, v, e.b.Const(bignum.MaxBits(bits)))
}

func (e *Emitter) checkedAdd(h Helper, args []target.ValueID) []target.ValueID {
	x, y := e.operands(h, args)
	sum := e.b.Binary(target.OpAdd, x, y)
	var overflow target.ValueID
	if h.Bits >= bignum.Bits {
		overflow = e.b.Binary(target.OpLt, sum, x)
	} else {
		overflow = e.overflowsWidth(sum, h.Bits)
	}
	e.guard(overflow, layout.PanicOverflow, "checked_add")
	return []target.ValueID{sum}
}

func (e *Emitter) checkedSub(h Helper, args []target.ValueID) []target.ValueID {
	x, y := e.operands(h, args)
	e.guard(e.b.Binary(target.OpLt, x, y), layout.PanicOverflow, "checked_sub")
	return []target.ValueID{e.b.Binary(target.OpSub, x, y)}
}

// checkedMul detects wraparound by dividing back, plus the width bound.
func (e *Emitter) checkedMul(h Helper, args []target.ValueID) []target.ValueID {
	b := e.b
	x, y := e.operands(h, args)
	product := b.Binary(target.OpMul, x, y)
	nonZero := b.Unary(target.OpIsZero, b.Unary(target.OpIsZero, x))
	mismatch := b.Unary(target.OpIsZero, b.Binary(target.OpEq, b.Binary(target.OpDiv, product, x), y))
	overflow := b.Binary(target.OpAnd, nonZero, mismatch)
	if h.Bits < bignum.Bits {
		overflow = b.Binary(target.OpOr, overflow, e.overflowsWidth(product, h.Bits))
	}
	e.guard(overflow, layout.PanicOverflow, "checked_mul")
	return []target.ValueID{product}
}

func (e *Emitter) checkedDiv(h Helper, args []target.ValueID) []target.ValueID {
	x, y := e.operands(h, args)
	e.guard(e.b.Unary(target.OpIsZero, y), layout.PanicDivByZero, "checked_div")
	return []target.ValueID{e.b.Binary(target.OpDiv, x, y)}
}

func (e *Emitter) checkedMod(h Helper, args []target.ValueID) []target.ValueID {
	x, y := e.operands(h, args)
	e.guard(e.b.Unary(target.OpIsZero, y), layout.PanicDivByZero, "checked_mod")
	return []target.ValueID{e.b.Binary(target.OpMod, x, y)}
}

func (e *Emitter) cleanup(h Helper, args []target.ValueID) []target.ValueID {
	return []target.ValueID{e.mask(args[0], h.Bits)}
}

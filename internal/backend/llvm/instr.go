package llvm

import (
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"yulc/internal/bignum"
	"yulc/internal/target"
)

func wordConst(w bignum.Word) *constant.Int {
	b := w.Bytes32()
	return &constant.Int{Typ: word, X: new(big.Int).SetBytes(b[:])}
}

func (b *Builder) Const(w bignum.Word) target.ValueID {
	return b.define(wordConst(w))
}

var (
	zero   = constant.NewInt(word, 0)
	one    = constant.NewInt(word, 1)
	limit  = constant.NewInt(word, bignum.Bits)
	topBit = constant.NewInt(word, bignum.Bits-1)
)

var icmpPreds = map[target.BinOp]enum.IPred{
	target.OpLt:  enum.IPredULT,
	target.OpGt:  enum.IPredUGT,
	target.OpSlt: enum.IPredSLT,
	target.OpSgt: enum.IPredSGT,
	target.OpEq:  enum.IPredEQ,
}

var runtimeOps = map[target.BinOp]string{
	target.OpExp:        "rt_exp",
	target.OpSDiv:       "rt_sdiv",
	target.OpSMod:       "rt_smod",
	target.OpByte:       "rt_byte",
	target.OpSignExtend: "rt_signextend",
}

// Binary lowers word operations with their total semantics: division by
// zero yields 0 and shifts of 256 or more saturate.
func (b *Builder) Binary(op target.BinOp, x, y target.ValueID) target.ValueID {
	blk := b.block()
	vx, vy := b.value(x), b.value(y)
	if pred, ok := icmpPreds[op]; ok {
		return b.define(blk.NewZExt(blk.NewICmp(pred, vx, vy), word))
	}
	if fn, ok := runtimeOps[op]; ok {
		return b.define(blk.NewCall(b.runtime(fn), vx, vy))
	}
	var v value.Value
	switch op {
	case target.OpAdd:
		v = blk.NewAdd(vx, vy)
	case target.OpSub:
		v = blk.NewSub(vx, vy)
	case target.OpMul:
		v = blk.NewMul(vx, vy)
	case target.OpAnd:
		v = blk.NewAnd(vx, vy)
	case target.OpOr:
		v = blk.NewOr(vx, vy)
	case target.OpXor:
		v = blk.NewXor(vx, vy)
	case target.OpDiv, target.OpMod:
		isZero := blk.NewICmp(enum.IPredEQ, vy, zero)
		safe := blk.NewSelect(isZero, one, vy)
		var q value.Value
		if op == target.OpDiv {
			q = blk.NewUDiv(vx, safe)
		} else {
			q = blk.NewURem(vx, safe)
		}
		v = blk.NewSelect(isZero, zero, q)
	case target.OpShl, target.OpShr, target.OpSar:
		// operand order is (shift, value)
		over := blk.NewICmp(enum.IPredUGE, vx, limit)
		amount := blk.NewSelect(over, zero, vx)
		switch op {
		case target.OpShl:
			v = blk.NewSelect(over, zero, blk.NewShl(vy, amount))
		case target.OpShr:
			v = blk.NewSelect(over, zero, blk.NewLShr(vy, amount))
		default:
			v = blk.NewSelect(over, blk.NewAShr(vy, topBit), blk.NewAShr(vy, amount))
		}
	default:
		panic("llvm: unsupported binary op " + op.String())
	}
	return b.define(v)
}

func (b *Builder) Unary(op target.UnOp, x target.ValueID) target.ValueID {
	blk := b.block()
	vx := b.value(x)
	if op == target.OpNot {
		return b.define(blk.NewXor(vx, constant.NewInt(word, -1)))
	}
	return b.define(blk.NewZExt(blk.NewICmp(enum.IPredEQ, vx, zero), word))
}

func (b *Builder) MemLoad(addr target.ValueID) target.ValueID {
	return b.define(b.block().NewCall(b.runtime("rt_mload"), b.value(addr)))
}

func (b *Builder) MemStore(addr, v target.ValueID, width target.Width) {
	fn := "rt_mstore"
	if width == target.Width8 {
		fn = "rt_mstore8"
	}
	b.block().NewCall(b.runtime(fn), b.value(addr), b.value(v))
}

func (b *Builder) Intrinsic(name string, args []target.ValueID) []target.ValueID {
	call := b.block().NewCall(b.runtime("rt_"+name), b.args(args)...)
	sig, _ := target.Intrinsic(name)
	if sig.Results == 0 {
		return nil
	}
	return []target.ValueID{b.define(call)}
}

func (b *Builder) args(ids []target.ValueID) []value.Value {
	out := make([]value.Value, len(ids))
	for i, id := range ids {
		out[i] = b.value(id)
	}
	return out
}

// Call unpacks a struct result into one value per field.
func (b *Builder) Call(fn target.FuncID, args []target.ValueID) []target.ValueID {
	callee := b.info(fn)
	blk := b.block()
	call := blk.NewCall(callee.ir, b.args(args)...)
	switch callee.results {
	case 0:
		return nil
	case 1:
		return []target.ValueID{b.define(call)}
	}
	out := make([]target.ValueID, callee.results)
	for i := range out {
		out[i] = b.define(blk.NewExtractValue(call, uint64(i))) //nolint:gosec // i >= 0
	}
	return out
}

func (b *Builder) CondBranch(cond target.ValueID, then, els target.BlockID) {
	blk := b.block()
	c := blk.NewICmp(enum.IPredNE, b.value(cond), zero)
	blk.NewCondBr(c, b.blocks[then-1], b.blocks[els-1])
}

func (b *Builder) Branch(to target.BlockID) {
	b.block().NewBr(b.blocks[to-1])
}

func (b *Builder) Return(vals []target.ValueID) {
	blk := b.block()
	switch len(vals) {
	case 0:
		blk.NewRet(nil)
	case 1:
		blk.NewRet(b.value(vals[0]))
	default:
		var agg value.Value = constant.NewUndef(resultType(len(vals)))
		for i, v := range vals {
			agg = blk.NewInsertValue(agg, b.value(v), uint64(i)) //nolint:gosec // i >= 0
		}
		blk.NewRet(agg)
	}
}

// Abort calls the runtime terminator, which never returns.
func (b *Builder) Abort(kind target.AbortKind, off, size target.ValueID) {
	blk := b.block()
	switch kind {
	case target.AbortRevert:
		blk.NewCall(b.runtime("rt_revert"), b.value(off), b.value(size))
	case target.AbortReturn:
		blk.NewCall(b.runtime("rt_return"), b.value(off), b.value(size))
	case target.AbortStop:
		blk.NewCall(b.runtime("rt_stop"))
	default:
		blk.NewCall(b.runtime("rt_invalid"))
	}
	blk.NewUnreachable()
}

package vm

import (
	"yulc/internal/bignum"
	"yulc/internal/mir"
	"yulc/internal/target"
)

func (vm *VM) call(fn *mir.Func, args []bignum.Word) ([]bignum.Word, error) {
	if len(vm.stack) >= vm.opts.MaxDepth {
		return nil, vm.fault(FaultStackOverflow, "call depth %d exceeded calling %s", vm.opts.MaxDepth, fn.Name)
	}
	fr := newFrame(fn, args)
	vm.stack = append(vm.stack, fr)
	defer func() { vm.stack = vm.stack[:len(vm.stack)-1] }()

	bb := fn.Block(fn.Entry)
	for {
		if bb == nil {
			return nil, vm.fault(FaultBadProgram, "%s: jump to missing block", fn.Name)
		}
		for i := range bb.Instrs {
			ins := &bb.Instrs[i]
			vm.Steps++
			if vm.Steps > vm.opts.MaxSteps {
				return nil, vm.fault(FaultStepLimit, "step limit %d reached", vm.opts.MaxSteps)
			}
			if vm.opts.Step != nil {
				vm.opts.Step(fn, bb, ins)
			}
			if err := vm.exec(fr, ins); err != nil {
				return nil, err
			}
		}

		t := &bb.Term
		switch t.Kind {
		case mir.TermGoto:
			bb = fn.Block(t.Goto.Target)
		case mir.TermIf:
			if fr.get(t.If.Cond).IsZero() {
				bb = fn.Block(t.If.Else)
			} else {
				bb = fn.Block(t.If.Then)
			}
		case mir.TermReturn:
			out := make([]bignum.Word, len(t.Return.Values))
			for i, v := range t.Return.Values {
				out[i] = fr.get(v)
			}
			return out, nil
		case mir.TermAbort:
			return nil, vm.abort(fr, t.Abort)
		default:
			return nil, vm.fault(FaultBadProgram, "%s: block %s falls off the end", fn.Name, bb.Label)
		}
	}
}

func (fr *Frame) get(v target.ValueID) bignum.Word { return fr.Values[v] }

func (fr *Frame) set(v target.ValueID, w bignum.Word) { fr.Values[v] = w }

func (vm *VM) exec(fr *Frame, ins *mir.Instr) error {
	switch ins.Kind {
	case mir.InstrConst:
		fr.set(ins.Dst[0], ins.Const)
	case mir.InstrParam:
		fr.set(ins.Dst[0], fr.Args[ins.Param])
	case mir.InstrBinary:
		fr.set(ins.Dst[0], binary(ins.Bin, fr.get(ins.Args[0]), fr.get(ins.Args[1])))
	case mir.InstrUnary:
		x := fr.get(ins.Args[0])
		if ins.Un == target.OpNot {
			fr.set(ins.Dst[0], bignum.Not(x))
		} else {
			fr.set(ins.Dst[0], bignum.Bool(x.IsZero()))
		}
	case mir.InstrLoad:
		fr.set(ins.Dst[0], fr.Slots[ins.Slot-1])
	case mir.InstrStore:
		fr.Slots[ins.Slot-1] = fr.get(ins.Args[0])
	case mir.InstrMemLoad:
		w, err := vm.Memory.Load(fr.get(ins.Args[0]))
		if err != nil {
			return vm.fault(FaultMemoryLimit, "%v", err)
		}
		fr.set(ins.Dst[0], w)
	case mir.InstrMemStore:
		addr, v := fr.get(ins.Args[0]), fr.get(ins.Args[1])
		var err error
		if ins.Width == target.Width8 {
			err = vm.Memory.Store8(addr, v)
		} else {
			err = vm.Memory.Store(addr, v)
		}
		if err != nil {
			return vm.fault(FaultMemoryLimit, "%v", err)
		}
	case mir.InstrIntrinsic:
		args := make([]bignum.Word, len(ins.Args))
		for i, a := range ins.Args {
			args[i] = fr.get(a)
		}
		res, err := vm.intrinsic(ins.Name, args)
		if err != nil {
			return err
		}
		for i, d := range ins.Dst {
			fr.set(d, res[i])
		}
	case mir.InstrCall:
		callee := vm.M.Func(ins.Callee)
		if callee == nil || !callee.Defined {
			return vm.fault(FaultBadProgram, "call to undefined function #%d", ins.Callee)
		}
		args := make([]bignum.Word, len(ins.Args))
		for i, a := range ins.Args {
			args[i] = fr.get(a)
		}
		res, err := vm.call(callee, args)
		if err != nil {
			return err
		}
		if len(res) != len(ins.Dst) {
			return vm.fault(FaultBadProgram, "%s returned %d values, caller expects %d", callee.Name, len(res), len(ins.Dst))
		}
		for i, d := range ins.Dst {
			fr.set(d, res[i])
		}
	default:
		return vm.fault(FaultBadProgram, "invalid instruction kind %d", ins.Kind)
	}
	return nil
}

func binary(op target.BinOp, x, y bignum.Word) bignum.Word {
	switch op {
	case target.OpAdd:
		return bignum.Add(x, y)
	case target.OpSub:
		return bignum.Sub(x, y)
	case target.OpMul:
		return bignum.Mul(x, y)
	case target.OpDiv:
		return bignum.Div(x, y)
	case target.OpSDiv:
		return bignum.SDiv(x, y)
	case target.OpMod:
		return bignum.Mod(x, y)
	case target.OpSMod:
		return bignum.SMod(x, y)
	case target.OpExp:
		return bignum.Exp(x, y)
	case target.OpAnd:
		return bignum.And(x, y)
	case target.OpOr:
		return bignum.Or(x, y)
	case target.OpXor:
		return bignum.Xor(x, y)
	case target.OpShl:
		return bignum.Shl(y, bignum.ShiftAmount(x))
	case target.OpShr:
		return bignum.Shr(y, bignum.ShiftAmount(x))
	case target.OpSar:
		return bignum.Sar(y, bignum.ShiftAmount(x))
	case target.OpLt:
		return bignum.Bool(bignum.Lt(x, y))
	case target.OpGt:
		return bignum.Bool(bignum.Gt(x, y))
	case target.OpSlt:
		return bignum.Bool(bignum.Slt(x, y))
	case target.OpSgt:
		return bignum.Bool(bignum.Sgt(x, y))
	case target.OpEq:
		return bignum.Bool(x == y)
	case target.OpByte:
		return bignum.Byte(x, y)
	case target.OpSignExtend:
		return bignum.SignExtend(x, y)
	default:
		return bignum.Word{}
	}
}

func (vm *VM) abort(fr *Frame, t mir.AbortTerm) error {
	switch t.Kind {
	case target.AbortStop:
		return &Halt{Kind: target.AbortStop}
	case target.AbortInvalid:
		return vm.fault(FaultInvalidOpcode, "invalid instruction executed")
	}
	data, err := vm.Memory.Read(fr.get(t.Off), fr.get(t.Size))
	if err != nil {
		return vm.fault(FaultMemoryLimit, "%v", err)
	}
	if t.Kind == target.AbortRevert {
		return newRevert(data)
	}
	return &Halt{Kind: target.AbortReturn, Data: data}
}

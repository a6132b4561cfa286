package mir

import (
	"errors"
	"fmt"

	"yulc/internal/target"
)

// Validate checks module invariants and joins every violation found.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if !f.Defined {
			errs = append(errs, fmt.Errorf("function %s: declared but never defined", f.Name))
			continue
		}
		if err := validateFunc(m, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) error {
	var errs []error
	defined := make([]bool, f.NumValues+1)
	for i := range f.Blocks {
		for _, ins := range f.Blocks[i].Instrs {
			for _, d := range ins.Dst {
				if int(d) <= f.NumValues {
					defined[d] = true
				}
			}
		}
	}
	use := func(bb target.BlockID, v target.ValueID) {
		if !v.IsValid() || int(v) > f.NumValues || !defined[v] {
			errs = append(errs, fmt.Errorf("bb%d: use of undefined value %%%d", bb, v))
		}
	}
	branch := func(bb, to target.BlockID) {
		if f.Block(to) == nil {
			errs = append(errs, fmt.Errorf("bb%d: branch to missing block bb%d", bb, to))
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Instrs {
			ins := &bb.Instrs[j]
			for _, a := range ins.Args {
				use(bb.ID, a)
			}
			switch ins.Kind {
			case InstrLoad, InstrStore:
				if !ins.Slot.IsValid() || int(ins.Slot) > len(f.Slots) {
					errs = append(errs, fmt.Errorf("bb%d: invalid slot $%d", bb.ID, ins.Slot))
				}
			case InstrParam:
				if ins.Param < 0 || ins.Param >= f.Params {
					errs = append(errs, fmt.Errorf("bb%d: parameter %d out of range", bb.ID, ins.Param))
				}
			case InstrCall:
				callee := m.Func(ins.Callee)
				switch {
				case callee == nil:
					errs = append(errs, fmt.Errorf("bb%d: call to unknown function %d", bb.ID, ins.Callee))
				case len(ins.Args) != callee.Params:
					errs = append(errs, fmt.Errorf("bb%d: call to %s with %d args, want %d", bb.ID, callee.Name, len(ins.Args), callee.Params))
				}
			case InstrIntrinsic:
				if sig, ok := target.Intrinsic(ins.Name); !ok || sig.Args != len(ins.Args) {
					errs = append(errs, fmt.Errorf("bb%d: bad intrinsic %s/%d", bb.ID, ins.Name, len(ins.Args)))
				}
			}
		}

		switch bb.Term.Kind {
		case TermNone:
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", bb.ID))
		case TermGoto:
			branch(bb.ID, bb.Term.Goto.Target)
		case TermIf:
			use(bb.ID, bb.Term.If.Cond)
			branch(bb.ID, bb.Term.If.Then)
			branch(bb.ID, bb.Term.If.Else)
		case TermReturn:
			if len(bb.Term.Return.Values) != f.Results {
				errs = append(errs, fmt.Errorf("bb%d: return of %d values, want %d", bb.ID, len(bb.Term.Return.Values), f.Results))
			}
			for _, v := range bb.Term.Return.Values {
				use(bb.ID, v)
			}
		case TermAbort:
			if bb.Term.Abort.Kind.HasData() {
				use(bb.ID, bb.Term.Abort.Off)
				use(bb.ID, bb.Term.Abort.Size)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("function %s: %w", f.Name, errors.Join(errs...))
}

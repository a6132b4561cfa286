package vm

import (
	"fmt"

	"yulc/internal/bignum"
	"yulc/internal/mir"
)

// Frame is a function activation record.
type Frame struct {
	Func   *mir.Func
	Args   []bignum.Word
	Values []bignum.Word // index = ValueID
	Slots  []bignum.Word // index = SlotID-1
}

func newFrame(fn *mir.Func, args []bignum.Word) *Frame {
	return &Frame{
		Func:   fn,
		Args:   args,
		Values: make([]bignum.Word, fn.NumValues+1),
		Slots:  make([]bignum.Word, len(fn.Slots)),
	}
}

func (vm *VM) fault(code FaultCode, format string, args ...any) *Fault {
	f := &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
	for i := len(vm.stack) - 1; i >= 0; i-- {
		f.Backtrace = append(f.Backtrace, vm.stack[i].Func.Name)
	}
	return f
}

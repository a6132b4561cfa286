package driver

import (
	"context"
	"fmt"

	"yulc/internal/bignum"
	"yulc/internal/codegen"
	"yulc/internal/mir"
	"yulc/internal/trace"
	"yulc/internal/vm"
)

// RunUnit executes entry of a unit built with the MIR backend. The VM
// state is returned alongside the outcome so callers can inspect storage.
func RunUnit(ctx context.Context, unit codegen.Unit, entry string, opts vm.Options, args ...bignum.Word) (vm.Outcome, *vm.VM, error) {
	mb, ok := unit.Builder.(*mir.Builder)
	if !ok {
		return vm.Outcome{}, nil, fmt.Errorf("unit %s: run needs the mir backend, got %T", unit.Name, unit.Builder)
	}
	_, span := trace.BeginCtx(ctx, trace.ScopeUnit, "run "+unit.Name+"."+entry)
	machine := vm.New(mb.Module(), opts)
	out, err := machine.Run(entry, args...)
	span.WithExtra("steps", fmt.Sprint(machine.Steps)).End("")
	return out, machine, err
}

// FindUnit returns the unit with the given name, or the first unit when
// name is empty.
func FindUnit(units []codegen.Unit, name string) (codegen.Unit, bool) {
	if name == "" && len(units) > 0 {
		return units[0], true
	}
	for _, u := range units {
		if u.Name == name {
			return u, true
		}
	}
	return codegen.Unit{}, false
}

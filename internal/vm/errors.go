package vm

import (
	"fmt"
	"strings"

	"yulc/internal/layout"
	"yulc/internal/target"
)

// FaultCode identifies an interpreter fault (not a program revert).
type FaultCode int

// Stable fault codes - do not change values.
const (
	FaultStepLimit     FaultCode = 1001 // VM1001: step budget exhausted
	FaultMemoryLimit   FaultCode = 1002 // VM1002: memory access beyond limit
	FaultStackOverflow FaultCode = 1003 // VM1003: call depth exceeded
	FaultBadProgram    FaultCode = 1004 // VM1004: malformed module
	FaultNoEntry       FaultCode = 1005 // VM1005: entry function missing
	FaultUnsupported   FaultCode = 1006 // VM1006: unsupported intrinsic
	FaultInvalidOpcode FaultCode = 1007 // VM1007: invalid() executed
)

func (c FaultCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// Fault is an interpreter error with the call stack at the point of failure.
type Fault struct {
	Code      FaultCode
	Message   string
	Backtrace []string // innermost first
}

func (f *Fault) Error() string {
	if len(f.Backtrace) == 0 {
		return fmt.Sprintf("fault %s: %s", f.Code, f.Message)
	}
	return fmt.Sprintf("fault %s: %s (in %s)", f.Code, f.Message, strings.Join(f.Backtrace, " <- "))
}

// Revert is the program's abnormal termination with revert data.
type Revert struct {
	Data    []byte
	Panic   layout.PanicCode
	IsPanic bool
}

func (r *Revert) Error() string {
	if r.IsPanic {
		return fmt.Sprintf("revert: Panic(0x%02x) %s", uint8(r.Panic), r.Panic)
	}
	return fmt.Sprintf("revert: %d bytes %x", len(r.Data), r.Data)
}

func newRevert(data []byte) *Revert {
	r := &Revert{Data: data}
	r.Panic, r.IsPanic = layout.DecodePanic(data)
	return r
}

// Halt is successful termination through return(off, size) or stop().
type Halt struct {
	Kind target.AbortKind
	Data []byte
}

func (h *Halt) Error() string {
	return fmt.Sprintf("halt: %s with %d bytes", h.Kind, len(h.Data))
}

package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Phase names reported to observers and recorded in timings.
const (
	PhaseLex     = "lex"
	PhaseParse   = "parse"
	PhaseResolve = "resolve"
	PhaseCodegen = "codegen"
	PhaseEmit    = "emit"
	PhaseCache   = "cache"
)

// PhaseEvent describes a phase boundary of one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error
}

// PhaseObserver receives phase events emitted during Compile. CompileBatch
// calls it from several goroutines.
type PhaseObserver func(PhaseEvent)

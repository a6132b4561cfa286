package buildpipeline

import (
	"fmt"
	"time"

	"yulc/internal/backend/llvm"
	"yulc/internal/driver"
	"yulc/internal/mir"
	"yulc/internal/target"
)

// Stage describes a high-level pipeline phase.
type Stage string

const (
	StageLex     Stage = driver.PhaseLex
	StageParse   Stage = driver.PhaseParse
	StageResolve Stage = driver.PhaseResolve
	StageCodegen Stage = driver.PhaseCodegen
	StageEmit    Stage = driver.PhaseEmit
	StageCache   Stage = driver.PhaseCache
	// StageWrite stores artifacts in the output directory.
	StageWrite Stage = "write"
)

// Stages lists the compile stages in pipeline order.
var Stages = []Stage{StageLex, StageParse, StageResolve, StageCodegen, StageEmit, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Cached  bool
}

// ProgressSink consumes progress events. Build calls OnEvent from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Backend selects the compilation backend.
type Backend string

const (
	// BackendMIR selects the in-memory IR, runnable by the VM.
	BackendMIR Backend = "mir"
	// BackendLLVM selects textual LLVM IR.
	BackendLLVM Backend = "llvm"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendMIR, BackendLLVM:
		return Backend(s), nil
	case "":
		return BackendLLVM, nil
	}
	return "", fmt.Errorf("unsupported backend: %s (supported: llvm, mir)", s)
}

// Factory returns the target builder constructor of b.
func (b Backend) Factory() target.Factory {
	switch b {
	case BackendMIR:
		return mir.Factory
	case BackendLLVM:
		return llvm.Factory
	}
	return nil
}

// Ext is the file extension of emitted artifacts.
func (b Backend) Ext() string {
	if b == BackendLLVM {
		return ".ll"
	}
	return ".mir"
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Add accumulates dur into stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

package diag

import (
	"fmt"

	"yulc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Stage names the pipeline stage that produced an error.
type Stage uint8

const (
	StageUnknown Stage = iota
	StageLex
	StageSyntax
	StageBuilder
	StageCodeGen
	StageProject
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageSyntax:
		return "syntax"
	case StageBuilder:
		return "builder"
	case StageCodeGen:
		return "codegen"
	case StageProject:
		return "project"
	default:
		return "unknown"
	}
}

// Error is the first fatal diagnostic of a stage, returned as a Go error.
type Error struct {
	Diagnostic
}

// NewError builds an error-severity diagnostic wrapped as *Error.
func NewError(code Code, primary source.Span, msg string, notes ...Note) *Error {
	return &Error{Diagnostic: Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	}}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error %s at offset %d: %s", e.Stage(), e.Code.ID(), e.Primary.Start, e.Message)
}

// Stage reports which stage raised the error.
func (e *Error) Stage() Stage { return e.Code.Stage() }

// Offset is the byte offset of the primary span.
func (e *Error) Offset() uint32 { return e.Primary.Start }

package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexNewlineInString          Code = 1006
	LexBadHexString             Code = 1007

	// Синтаксические
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectLiteral    Code = 2003
	SynExpectBlock      Code = 2004
	SynExpectStatement  Code = 2005
	SynSwitchNoCases    Code = 2006
	SynTrailingInput    Code = 2007
	SynExpectAssign     Code = 2008

	// Построение контекста
	BldDuplicateVariable Code = 3001
	BldDuplicateFunction Code = 3002
	BldUnresolvedIdent   Code = 3003
	BldUnresolvedFunc    Code = 3004
	BldDuplicateCase     Code = 3005
	BldUnknownType       Code = 3006
	BldDuplicateObject   Code = 3007
	BldFunctionAsValue   Code = 3008
	BldVariableAsCall    Code = 3009

	// Генерация кода
	GenCallArity            Code = 4001
	GenAssignArity          Code = 4002
	GenBreakOutsideLoop     Code = 4003
	GenMultiValueInExpr     Code = 4004
	GenUnusedValue          Code = 4005
	GenLiteralRange         Code = 4006
	GenScopeClosed          Code = 4007
	GenBadBuiltinArg        Code = 4008
	GenUnknownData          Code = 4009
	GenBackend              Code = 4010
	GenLeaveOutsideFunction Code = 4011

	// Проект и конфигурация
	PrjManifestInvalid Code = 5001
	PrjNoSources       Code = 5002
	PrjIOError         Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Invalid character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexBadEscape:                "Invalid escape sequence",
	LexNewlineInString:          "Newline in string literal",
	LexBadHexString:             "Malformed hex string literal",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectLiteral:            "Expected literal",
	SynExpectBlock:              "Expected block",
	SynExpectStatement:          "Expected statement",
	SynSwitchNoCases:            "Switch without cases",
	SynTrailingInput:            "Unexpected input after end of unit",
	SynExpectAssign:             "Expected ':='",
	BldDuplicateVariable:        "Duplicate variable declaration",
	BldDuplicateFunction:        "Duplicate function definition",
	BldUnresolvedIdent:          "Unresolved identifier",
	BldUnresolvedFunc:           "Unresolved function",
	BldDuplicateCase:            "Duplicate case literal",
	BldUnknownType:              "Unknown type name",
	BldDuplicateObject:          "Duplicate object or data name",
	BldFunctionAsValue:          "Function used as a value",
	BldVariableAsCall:           "Variable called as a function",
	GenCallArity:                "Call arity mismatch",
	GenAssignArity:              "Assignment arity mismatch",
	GenBreakOutsideLoop:         "break/continue outside of a loop",
	GenMultiValueInExpr:         "Multi-value call in expression context",
	GenUnusedValue:              "Unused expression value",
	GenLiteralRange:             "Literal out of range for its type",
	GenScopeClosed:              "Variable referenced after its scope closed",
	GenBadBuiltinArg:            "Invalid builtin argument",
	GenUnknownData:              "Unknown object or data name",
	GenBackend:                  "Backend rejected instruction",
	GenLeaveOutsideFunction:     "Leave outside of a function",
	PrjManifestInvalid:          "Invalid project manifest",
	PrjNoSources:                "No sources to compile",
	PrjIOError:                  "I/O error",
}

// ID returns the stable textual id, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Stage maps a code to the compiler stage that owns it.
func (c Code) Stage() Stage {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return StageLex
	case ic >= 2000 && ic < 3000:
		return StageSyntax
	case ic >= 3000 && ic < 4000:
		return StageBuilder
	case ic >= 4000 && ic < 5000:
		return StageCodeGen
	case ic >= 5000 && ic < 6000:
		return StageProject
	}
	return StageUnknown
}

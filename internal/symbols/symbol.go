package symbols

import (
	"yulc/internal/ast"
	"yulc/internal/source"
)

// SymbolKind classifies a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolVar
	SymbolParam
	SymbolResult
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolResult:
		return "result"
	default:
		return "invalid"
	}
}

// IsVariable reports whether the symbol names a storage slot.
func (k SymbolKind) IsVariable() bool {
	return k == SymbolVar || k == SymbolParam || k == SymbolResult
}

// FunctionSignature records arity and the slots bound at function entry.
type FunctionSignature struct {
	Params  []SymbolID
	Results []SymbolID
}

// Symbol describes a named entity.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Type  Type
	Decl  ast.StmtID         // declaring statement (let, function)
	Sig   *FunctionSignature // SymbolFunction only
}

type Symbols struct {
	data []Symbol
}

func NewSymbols(capHint uint32) *Symbols {
	return &Symbols{data: make([]Symbol, 1, capHint+1)}
}

func (s *Symbols) New(sym Symbol) SymbolID {
	id := SymbolID(len(s.data)) //nolint:gosec // arena index
	s.data = append(s.data, sym)
	return id
}

func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *Symbols) Len() int { return len(s.data) - 1 }

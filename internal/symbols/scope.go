package symbols

import (
	"yulc/internal/ast"
	"yulc/internal/source"
)

// ScopeKind enumerates scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeUnit               // top-level code block of a unit (or object)
	ScopeFunction           // parameters, results and the body block
	ScopeBlock              // nested block
	ScopeFor                // for-init block; encloses cond, post and body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUnit:
		return "unit"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	default:
		return "invalid"
	}
}

// Scope is one lexical level. Vars and Funcs index symbols declared directly
// at this level.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Block    ast.BlockID
	Span     source.Span
	Vars     map[source.StringID]SymbolID
	Funcs    map[source.StringID]SymbolID
	Symbols  []SymbolID
	Children []ScopeID
}

type Scopes struct {
	data []Scope
}

func NewScopes(capHint uint32) *Scopes {
	return &Scopes{data: make([]Scope, 1, capHint+1)}
}

func (s *Scopes) New(kind ScopeKind, parent ScopeID, block ast.BlockID, span source.Span) ScopeID {
	id := ScopeID(len(s.data)) //nolint:gosec // arena index
	s.data = append(s.data, Scope{
		Kind:   kind,
		Parent: parent,
		Block:  block,
		Span:   span,
		Vars:   make(map[source.StringID]SymbolID),
		Funcs:  make(map[source.StringID]SymbolID),
	})
	if parent.IsValid() {
		p := s.Get(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *Scopes) Len() int { return len(s.data) - 1 }

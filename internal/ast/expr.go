package ast

import "yulc/internal/source"

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLiteral
	ExprCall
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitHexNumber
	LitString
	LitHexString
	LitTrue
	LitFalse
)

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData keeps the raw token text; decoding happens in codegen.
type ExprLiteralData struct {
	Kind     LitKind
	Text     string
	Type     source.StringID // NoStringID when unannotated
	TypeSpan source.Span
}

type ExprCallData struct {
	Callee     source.StringID
	CalleeSpan source.Span
	Args       []ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Calls    *Arena[ExprCallData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint >> 1),
		Calls:    NewArena[ExprCallData](capHint >> 1),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(ExprIdentData{Name: name})))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLiteral(span source.Span, lit ExprLiteralData) ExprID {
	return e.new(ExprLiteral, span, PayloadID(e.Literals.Allocate(lit)))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, call ExprCallData) ExprID {
	call.Args = append([]ExprID(nil), call.Args...)
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(call)))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

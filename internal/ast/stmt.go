package ast

import "yulc/internal/source"

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtFunction
	StmtLet
	StmtAssign
	StmtIf
	StmtExpr
	StmtSwitch
	StmtFor
	StmtBreak
	StmtContinue
	StmtLeave
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "block"
	case StmtFunction:
		return "function"
	case StmtLet:
		return "let"
	case StmtAssign:
		return "assign"
	case StmtIf:
		return "if"
	case StmtExpr:
		return "expr"
	case StmtSwitch:
		return "switch"
	case StmtFor:
		return "for"
	case StmtBreak:
		return "break"
	case StmtContinue:
		return "continue"
	case StmtLeave:
		return "leave"
	default:
		return "invalid"
	}
}

// Stmt is a tagged node; Payload indexes the arena that matches Kind.
// StmtBlock stores its BlockID in Payload; break/continue/leave have none.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// TypedName is an identifier with an optional `: Type` suffix.
type TypedName struct {
	Name     source.StringID
	Span     source.Span
	Type     source.StringID // NoStringID when absent
	TypeSpan source.Span
}

// Name is a plain identifier occurrence (assignment target).
type Name struct {
	Name source.StringID
	Span source.Span
}

type FunctionDef struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []TypedName
	Results  []TypedName
	Body     BlockID
}

type VarDecl struct {
	Names []TypedName
	Value ExprID // NoExprID when there is no initializer
}

type Assign struct {
	Targets []Name
	Value   ExprID
}

type If struct {
	Cond ExprID
	Body BlockID
}

type Case struct {
	Span  source.Span
	Value ExprID // always a literal
	Body  BlockID
}

type Switch struct {
	Scrutinee   ExprID
	Cases       []Case
	Default     BlockID // NoBlockID when absent
	DefaultSpan source.Span
}

type For struct {
	Init BlockID
	Cond ExprID
	Post BlockID
	Body BlockID
}

type ExprStmt struct {
	Expr ExprID
}

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena     *Arena[Stmt]
	Functions *Arena[FunctionDef]
	Lets      *Arena[VarDecl]
	Assigns   *Arena[Assign]
	Ifs       *Arena[If]
	Switches  *Arena[Switch]
	Fors      *Arena[For]
	Exprs     *Arena[ExprStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Functions: NewArena[FunctionDef](capHint >> 2),
		Lets:      NewArena[VarDecl](capHint >> 1),
		Assigns:   NewArena[Assign](capHint >> 1),
		Ifs:       NewArena[If](capHint >> 2),
		Switches:  NewArena[Switch](capHint >> 3),
		Fors:      NewArena[For](capHint >> 3),
		Exprs:     NewArena[ExprStmt](capHint >> 1),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, block BlockID) StmtID {
	return s.new(StmtBlock, span, PayloadID(block))
}

// Block returns the nested block of a StmtBlock.
func (s *Stmts) Block(id StmtID) (BlockID, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return NoBlockID, false
	}
	return BlockID(st.Payload), true
}

func (s *Stmts) NewFunction(span source.Span, fn FunctionDef) StmtID {
	return s.new(StmtFunction, span, PayloadID(s.Functions.Allocate(fn)))
}

func (s *Stmts) Function(id StmtID) (*FunctionDef, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFunction {
		return nil, false
	}
	return s.Functions.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, decl VarDecl) StmtID {
	return s.new(StmtLet, span, PayloadID(s.Lets.Allocate(decl)))
}

func (s *Stmts) Let(id StmtID) (*VarDecl, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewAssign(span source.Span, as Assign) StmtID {
	return s.new(StmtAssign, span, PayloadID(s.Assigns.Allocate(as)))
}

func (s *Stmts) Assign(id StmtID) (*Assign, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, data If) StmtID {
	return s.new(StmtIf, span, PayloadID(s.Ifs.Allocate(data)))
}

func (s *Stmts) If(id StmtID) (*If, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewSwitch(span source.Span, data Switch) StmtID {
	return s.new(StmtSwitch, span, PayloadID(s.Switches.Allocate(data)))
}

func (s *Stmts) Switch(id StmtID) (*Switch, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data For) StmtID {
	return s.new(StmtFor, span, PayloadID(s.Fors.Allocate(data)))
}

func (s *Stmts) For(id StmtID) (*For, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(ExprStmt{Expr: expr})))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

// NewJump allocates break, continue or leave.
func (s *Stmts) NewJump(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, NoPayloadID)
}

package ast

import "yulc/internal/source"

type Hints struct{ Blocks, Stmts, Exprs uint }

// Builder owns every node of one compilation unit. Nodes are never mutated
// after the parser returns.
type Builder struct {
	Strings *source.Interner
	Blocks  *Blocks
	Stmts   *Stmts
	Exprs   *Exprs
	Objects *Objects
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Blocks == 0 {
		hints.Blocks = 1 << 5
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Strings: strings,
		Blocks:  NewBlocks(hints.Blocks),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Objects: NewObjects(1),
	}
}

// Name returns the text of an interned identifier.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}

// Root is the top of a unit: either a bare block or an object tree.
type Root struct {
	Block  BlockID
	Object ObjectID
	Span   source.Span
}

func (r Root) IsObject() bool { return r.Object.IsValid() }

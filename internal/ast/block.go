package ast

import "yulc/internal/source"

// Block is `{ Statement* }`.
type Block struct {
	Span  source.Span
	Stmts []StmtID
}

type Blocks struct {
	Arena *Arena[Block]
}

func NewBlocks(capHint uint) *Blocks {
	return &Blocks{Arena: NewArena[Block](capHint)}
}

func (b *Blocks) New(span source.Span, stmts []StmtID) BlockID {
	return BlockID(b.Arena.Allocate(Block{Span: span, Stmts: append([]StmtID(nil), stmts...)}))
}

func (b *Blocks) Get(id BlockID) *Block {
	return b.Arena.Get(uint32(id))
}

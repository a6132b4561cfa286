// Package testkit holds structural checks shared by parser, fuzz and
// pipeline tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"yulc/internal/ast"
	"yulc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) root.Span is non-empty and within file content bounds
// 2) every node span is non-empty, points at sf and lies inside its parent
// 3) statements of one block follow each other without overlapping
func CheckSpanInvariants(b *ast.Builder, root ast.Root, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End <= root.Span.Start {
		return fmt.Errorf("root span is empty: %v", root.Span)
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	c := spanChecker{b: b, file: sf.ID}
	if root.IsObject() {
		return c.object(root.Object, root.Span)
	}
	return c.block(root.Block, root.Span)
}

type spanChecker struct {
	b    *ast.Builder
	file source.FileID
}

func (c spanChecker) within(kind string, sp, parent source.Span) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", kind, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", kind, sp.File, c.file)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %v is outside parent span %v", kind, sp, parent)
	}
	return nil
}

func (c spanChecker) object(id ast.ObjectID, parent source.Span) error {
	obj := c.b.Objects.Get(id)
	if obj == nil {
		return fmt.Errorf("nil object for id=%d", id)
	}
	if err := c.within("object", obj.Span, parent); err != nil {
		return err
	}
	if err := c.within("object name", obj.NameSpan, obj.Span); err != nil {
		return err
	}
	if err := c.block(obj.Code, obj.Span); err != nil {
		return err
	}
	for _, ds := range obj.Data {
		if err := c.within("data name", ds.NameSpan, obj.Span); err != nil {
			return err
		}
	}
	for _, child := range obj.Children {
		if err := c.object(child, obj.Span); err != nil {
			return err
		}
	}
	return nil
}

func (c spanChecker) block(id ast.BlockID, parent source.Span) error {
	blk := c.b.Blocks.Get(id)
	if blk == nil {
		return fmt.Errorf("nil block for id=%d", id)
	}
	if err := c.within("block", blk.Span, parent); err != nil {
		return err
	}
	var prevEnd uint32
	for i, sid := range blk.Stmts {
		st := c.b.Stmts.Get(sid)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", sid)
		}
		if i > 0 && st.Span.Start < prevEnd {
			return fmt.Errorf("%s statement %v overlaps its predecessor ending at %d", st.Kind, st.Span, prevEnd)
		}
		prevEnd = st.Span.End
		if err := c.stmt(sid, blk.Span); err != nil {
			return err
		}
	}
	return nil
}

func (c spanChecker) stmt(id ast.StmtID, parent source.Span) error {
	st := c.b.Stmts.Get(id)
	kind := st.Kind.String()
	if err := c.within(kind, st.Span, parent); err != nil {
		return err
	}
	sp := st.Span
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := c.b.Stmts.Block(id)
		return c.block(blk, sp)
	case ast.StmtFunction:
		fn, _ := c.b.Stmts.Function(id)
		if err := c.within("function name", fn.NameSpan, sp); err != nil {
			return err
		}
		if err := c.typedNames(fn.Params, sp); err != nil {
			return err
		}
		if err := c.typedNames(fn.Results, sp); err != nil {
			return err
		}
		return c.block(fn.Body, sp)
	case ast.StmtLet:
		decl, _ := c.b.Stmts.Let(id)
		if err := c.typedNames(decl.Names, sp); err != nil {
			return err
		}
		if decl.Value.IsValid() {
			return c.expr(decl.Value, sp)
		}
	case ast.StmtAssign:
		as, _ := c.b.Stmts.Assign(id)
		for _, t := range as.Targets {
			if err := c.within("assignment target", t.Span, sp); err != nil {
				return err
			}
		}
		return c.expr(as.Value, sp)
	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		if err := c.expr(data.Cond, sp); err != nil {
			return err
		}
		return c.block(data.Body, sp)
	case ast.StmtSwitch:
		sw, _ := c.b.Stmts.Switch(id)
		if err := c.expr(sw.Scrutinee, sp); err != nil {
			return err
		}
		for _, cs := range sw.Cases {
			if err := c.within("case", cs.Span, sp); err != nil {
				return err
			}
			if err := c.expr(cs.Value, cs.Span); err != nil {
				return err
			}
			if err := c.block(cs.Body, cs.Span); err != nil {
				return err
			}
		}
		if sw.Default.IsValid() {
			if err := c.within("default", sw.DefaultSpan, sp); err != nil {
				return err
			}
			return c.block(sw.Default, sw.DefaultSpan)
		}
	case ast.StmtFor:
		loop, _ := c.b.Stmts.For(id)
		if err := c.block(loop.Init, sp); err != nil {
			return err
		}
		if err := c.expr(loop.Cond, sp); err != nil {
			return err
		}
		if err := c.block(loop.Post, sp); err != nil {
			return err
		}
		return c.block(loop.Body, sp)
	case ast.StmtExpr:
		es, _ := c.b.Stmts.Expr(id)
		return c.expr(es.Expr, sp)
	}
	return nil
}

func (c spanChecker) typedNames(names []ast.TypedName, parent source.Span) error {
	for _, tn := range names {
		if err := c.within("name", tn.Span, parent); err != nil {
			return err
		}
		if tn.Type != source.NoStringID {
			if err := c.within("type", tn.TypeSpan, parent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c spanChecker) expr(id ast.ExprID, parent source.Span) error {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if err := c.within("expression", e.Span, parent); err != nil {
		return err
	}
	call, ok := c.b.Exprs.Call(id)
	if !ok {
		return nil
	}
	if err := c.within("callee", call.CalleeSpan, e.Span); err != nil {
		return err
	}
	for _, arg := range call.Args {
		if err := c.expr(arg, e.Span); err != nil {
			return err
		}
	}
	return nil
}

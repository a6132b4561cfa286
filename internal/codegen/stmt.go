package codegen

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/target"
)

func (g *generator) block(blk ast.BlockID) *diag.Error {
	g.openScope()
	defer g.closeScope()
	return g.stmts(blk)
}

// stmts lowers the statements of blk in the current scope. Function
// definitions are skipped: they are emitted separately by unit.
func (g *generator) stmts(blk ast.BlockID) *diag.Error {
	for _, st := range g.ast.Blocks.Get(blk).Stmts {
		if err := g.stmt(st); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) stmt(id ast.StmtID) *diag.Error {
	st := g.ast.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := g.ast.Stmts.Block(id)
		return g.block(blk)
	case ast.StmtFunction:
		return nil
	case ast.StmtLet:
		return g.let(id)
	case ast.StmtAssign:
		return g.assign(id)
	case ast.StmtIf:
		return g.ifStmt(id)
	case ast.StmtSwitch:
		return g.switchStmt(id)
	case ast.StmtFor:
		return g.forStmt(id)
	case ast.StmtExpr:
		es, _ := g.ast.Stmts.Expr(id)
		vals, err := g.values(es.Expr)
		if err != nil {
			return err
		}
		if len(vals) != 0 {
			return g.fail(diag.GenUnusedValue, st.Span,
				fmt.Sprintf("statement produces %d unused value(s); discard with pop", len(vals)))
		}
		return nil
	case ast.StmtBreak, ast.StmtContinue:
		if len(g.loops) == 0 {
			return g.fail(diag.GenBreakOutsideLoop, st.Span, fmt.Sprintf("%s outside of a for loop", st.Kind))
		}
		loop := g.loops[len(g.loops)-1]
		if st.Kind == ast.StmtBreak {
			g.b.Branch(loop.brk)
		} else {
			g.b.Branch(loop.cont)
		}
		return nil
	case ast.StmtLeave:
		if !g.inFunc {
			return g.fail(diag.GenLeaveOutsideFunction, st.Span, "leave outside of a function")
		}
		g.leave()
		return nil
	default:
		return g.fail(diag.GenBackend, st.Span, fmt.Sprintf("unexpected statement %s", st.Kind))
	}
}

// let evaluates the initializer before the names get their slots, so it
// never sees them. Without an initializer every name starts at zero.
func (g *generator) let(id ast.StmtID) *diag.Error {
	decl, _ := g.ast.Stmts.Let(id)
	syms := g.ctx.Decls[id]
	var vals []target.ValueID
	if decl.Value.IsValid() {
		var err *diag.Error
		if vals, err = g.values(decl.Value); err != nil {
			return err
		}
		if len(vals) != len(syms) {
			return g.fail(diag.GenAssignArity, g.ast.Stmts.Get(id).Span,
				fmt.Sprintf("let declares %d variable(s) but the value provides %d", len(syms), len(vals)))
		}
	}
	for i, sym := range syms {
		var v target.ValueID
		if vals != nil {
			v = vals[i]
		} else {
			v = g.b.Const(bignum.Zero())
		}
		g.b.Store(g.declare(sym), v)
	}
	return nil
}

func (g *generator) assign(id ast.StmtID) *diag.Error {
	as, _ := g.ast.Stmts.Assign(id)
	syms := g.ctx.Targets[id]
	vals, err := g.values(as.Value)
	if err != nil {
		return err
	}
	if len(vals) != len(syms) {
		return g.fail(diag.GenAssignArity, g.ast.Stmts.Get(id).Span,
			fmt.Sprintf("assignment to %d variable(s) from %d value(s)", len(syms), len(vals)))
	}
	for i, sym := range syms {
		slot, err := g.slot(sym, as.Targets[i].Span)
		if err != nil {
			return err
		}
		g.b.Store(slot, vals[i])
	}
	return nil
}

func (g *generator) ifStmt(id ast.StmtID) *diag.Error {
	data, _ := g.ast.Stmts.If(id)
	cond, err := g.value(data.Cond)
	if err != nil {
		return err
	}
	then := g.b.NewBlock("if.then")
	end := g.b.NewBlock("if.end")
	g.b.CondBranch(cond, then, end)
	g.b.SetCursor(then)
	if err := g.block(data.Body); err != nil {
		return err
	}
	g.branchIfOpen(end)
	g.b.SetCursor(end)
	return nil
}

// switchStmt compares the scrutinee, evaluated once, against each case in
// source order. With no match and no default control continues after it.
func (g *generator) switchStmt(id ast.StmtID) *diag.Error {
	sw, _ := g.ast.Stmts.Switch(id)
	scrutinee, err := g.value(sw.Scrutinee)
	if err != nil {
		return err
	}
	end := g.b.NewBlock("switch.end")
	for _, c := range sw.Cases {
		lit, err := g.value(c.Value)
		if err != nil {
			return err
		}
		body := g.b.NewBlock("switch.case")
		next := g.b.NewBlock("switch.next")
		g.b.CondBranch(g.b.Binary(target.OpEq, scrutinee, lit), body, next)
		g.b.SetCursor(body)
		if err := g.block(c.Body); err != nil {
			return err
		}
		g.branchIfOpen(end)
		g.b.SetCursor(next)
	}
	if sw.Default.IsValid() {
		if err := g.block(sw.Default); err != nil {
			return err
		}
	}
	g.branchIfOpen(end)
	g.b.SetCursor(end)
	return nil
}

// forStmt: init runs once in the loop scope, then
// cond -> body -> post -> cond until cond is zero.
func (g *generator) forStmt(id ast.StmtID) *diag.Error {
	loop, _ := g.ast.Stmts.For(id)
	g.openScope()
	defer g.closeScope()
	if err := g.stmts(loop.Init); err != nil {
		return err
	}

	cond := g.b.NewBlock("for.cond")
	body := g.b.NewBlock("for.body")
	post := g.b.NewBlock("for.post")
	exit := g.b.NewBlock("for.exit")
	g.b.Branch(cond)

	g.b.SetCursor(cond)
	c, err := g.value(loop.Cond)
	if err != nil {
		return err
	}
	g.b.CondBranch(c, body, exit)

	g.loops = append(g.loops, loopTargets{brk: exit, cont: post})
	g.b.SetCursor(body)
	if err := g.block(loop.Body); err != nil {
		return err
	}
	g.branchIfOpen(post)
	g.b.SetCursor(post)
	if err := g.block(loop.Post); err != nil {
		return err
	}
	g.branchIfOpen(cond)
	g.loops = g.loops[:len(g.loops)-1]

	g.b.SetCursor(exit)
	return nil
}

func (g *generator) branchIfOpen(to target.BlockID) {
	if !g.b.Terminated() {
		g.b.Branch(to)
	}
}

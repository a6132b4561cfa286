package format

import (
	"strings"

	"yulc/internal/ast"
)

func (p *printer) printStmt(id ast.StmtID) {
	st := p.b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := p.b.Stmts.Block(id)
		p.printBlock(blk)
	case ast.StmtFunction:
		fn, _ := p.b.Stmts.Function(id)
		p.w.WriteString("function ")
		p.w.WriteString(p.name(fn.Name))
		p.w.WriteString("(")
		p.w.WriteString(p.typedNames(fn.Params))
		p.w.WriteString(")")
		if len(fn.Results) > 0 {
			p.w.WriteString(" -> ")
			p.w.WriteString(p.typedNames(fn.Results))
		}
		p.w.WriteString(" ")
		p.printBlock(fn.Body)
	case ast.StmtLet:
		decl, _ := p.b.Stmts.Let(id)
		p.w.WriteString("let ")
		p.w.WriteString(p.typedNames(decl.Names))
		if decl.Value.IsValid() {
			p.w.WriteString(" := ")
			p.printExpr(decl.Value)
		}
	case ast.StmtAssign:
		as, _ := p.b.Stmts.Assign(id)
		targets := make([]string, len(as.Targets))
		for i, t := range as.Targets {
			targets[i] = p.name(t.Name)
		}
		p.w.WriteString(strings.Join(targets, ", "))
		p.w.WriteString(" := ")
		p.printExpr(as.Value)
	case ast.StmtIf:
		data, _ := p.b.Stmts.If(id)
		p.w.WriteString("if ")
		p.printExpr(data.Cond)
		p.w.WriteString(" ")
		p.printBlock(data.Body)
	case ast.StmtSwitch:
		p.printSwitch(id)
	case ast.StmtFor:
		loop, _ := p.b.Stmts.For(id)
		p.w.WriteString("for ")
		p.printBlock(loop.Init)
		p.w.WriteString(" ")
		p.printExpr(loop.Cond)
		p.w.WriteString(" ")
		p.printBlock(loop.Post)
		p.w.WriteString(" ")
		p.printBlock(loop.Body)
	case ast.StmtExpr:
		es, _ := p.b.Stmts.Expr(id)
		p.printExpr(es.Expr)
	case ast.StmtBreak:
		p.w.WriteString("break")
	case ast.StmtContinue:
		p.w.WriteString("continue")
	case ast.StmtLeave:
		p.w.WriteString("leave")
	}
}

func (p *printer) printSwitch(id ast.StmtID) {
	sw, _ := p.b.Stmts.Switch(id)
	p.w.WriteString("switch ")
	p.printExpr(sw.Scrutinee)
	for _, c := range sw.Cases {
		p.w.Newline()
		p.w.WriteString("case ")
		p.printExpr(c.Value)
		p.w.WriteString(" ")
		p.printBlock(c.Body)
	}
	if sw.Default.IsValid() {
		p.w.Newline()
		p.w.WriteString("default ")
		p.printBlock(sw.Default)
	}
}

func (p *printer) printExpr(id ast.ExprID) {
	expr := p.b.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := p.b.Exprs.Ident(id)
		p.w.WriteString(p.name(ident.Name))
	case ast.ExprLiteral:
		lit, _ := p.b.Exprs.Literal(id)
		p.w.WriteString(lit.Text)
		if lit.Type != 0 {
			p.w.WriteString(":")
			p.w.WriteString(p.name(lit.Type))
		}
	case ast.ExprCall:
		call, _ := p.b.Exprs.Call(id)
		p.w.WriteString(p.name(call.Callee))
		p.w.WriteString("(")
		for i, arg := range call.Args {
			if i > 0 {
				p.w.WriteString(", ")
			}
			p.printExpr(arg)
		}
		p.w.WriteString(")")
	}
}

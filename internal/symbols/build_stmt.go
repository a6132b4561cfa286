package symbols

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/source"
)

func (bl *builder) stmt(id ast.StmtID) *diag.Error {
	st := bl.ast.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := bl.ast.Stmts.Block(id)
		return bl.block(blk, ScopeBlock)
	case ast.StmtFunction:
		return bl.function(id)
	case ast.StmtLet:
		return bl.let(id)
	case ast.StmtAssign:
		return bl.assign(id)
	case ast.StmtIf:
		data, _ := bl.ast.Stmts.If(id)
		if err := bl.expr(data.Cond); err != nil {
			return err
		}
		return bl.block(data.Body, ScopeBlock)
	case ast.StmtSwitch:
		return bl.switchStmt(id)
	case ast.StmtFor:
		return bl.forStmt(id)
	case ast.StmtExpr:
		es, _ := bl.ast.Stmts.Expr(id)
		return bl.expr(es.Expr)
	}
	// break, continue, leave: checked by codegen
	return nil
}

func (bl *builder) declareFunction(id ast.StmtID) *diag.Error {
	fn, _ := bl.ast.Stmts.Function(id)
	name := bl.ast.Name(fn.Name)
	if bl.isBuiltin(name) {
		return bl.fail(diag.BldDuplicateFunction, fn.NameSpan, fmt.Sprintf("function %q shadows a builtin", name))
	}
	sc := bl.ctx.Scopes.Get(bl.scope)
	if prev, ok := sc.Funcs[fn.Name]; ok {
		return bl.fail(diag.BldDuplicateFunction, fn.NameSpan, fmt.Sprintf("function %q already defined in this scope", name),
			diag.Note{Span: bl.ctx.Symbols.Get(prev).Span, Msg: "previous definition"})
	}
	sym := bl.ctx.Symbols.New(Symbol{
		Name:  fn.Name,
		Kind:  SymbolFunction,
		Scope: bl.scope,
		Span:  fn.NameSpan,
		Decl:  id,
		Sig:   &FunctionSignature{},
	})
	sc.Funcs[fn.Name] = sym
	sc.Symbols = append(sc.Symbols, sym)
	bl.ctx.Functions[id] = sym
	return nil
}

// function opens one scope for parameters, results and the body, so a body
// `let` cannot redeclare a parameter.
func (bl *builder) function(id ast.StmtID) *diag.Error {
	fn, _ := bl.ast.Stmts.Function(id)
	sig := bl.ctx.Symbols.Get(bl.ctx.Functions[id]).Sig
	body := bl.ast.Blocks.Get(fn.Body)
	sc := bl.ctx.Scopes.New(ScopeFunction, bl.scope, fn.Body, body.Span)
	bl.ctx.Blocks[fn.Body] = sc
	prev := bl.scope
	bl.scope = sc
	defer func() { bl.scope = prev }()

	for _, p := range fn.Params {
		sym, err := bl.declareVar(p, SymbolParam, id)
		if err != nil {
			return err
		}
		sig.Params = append(sig.Params, sym)
	}
	for _, r := range fn.Results {
		sym, err := bl.declareVar(r, SymbolResult, id)
		if err != nil {
			return err
		}
		sig.Results = append(sig.Results, sym)
	}
	return bl.blockBody(fn.Body)
}

// let resolves the initializer before the names become visible.
func (bl *builder) let(id ast.StmtID) *diag.Error {
	decl, _ := bl.ast.Stmts.Let(id)
	if decl.Value.IsValid() {
		if err := bl.expr(decl.Value); err != nil {
			return err
		}
	}
	syms := make([]SymbolID, 0, len(decl.Names))
	for _, n := range decl.Names {
		sym, err := bl.declareVar(n, SymbolVar, id)
		if err != nil {
			return err
		}
		syms = append(syms, sym)
	}
	bl.ctx.Decls[id] = syms
	return nil
}

func (bl *builder) assign(id ast.StmtID) *diag.Error {
	as, _ := bl.ast.Stmts.Assign(id)
	if err := bl.expr(as.Value); err != nil {
		return err
	}
	syms := make([]SymbolID, 0, len(as.Targets))
	for i, t := range as.Targets {
		for _, earlier := range as.Targets[:i] {
			if earlier.Name == t.Name {
				return bl.fail(diag.BldDuplicateVariable, t.Span,
					fmt.Sprintf("variable %q assigned twice in one assignment", bl.ast.Name(t.Name)))
			}
		}
		sym, err := bl.resolveVar(t.Name, t.Span)
		if err != nil {
			return err
		}
		syms = append(syms, sym)
	}
	bl.ctx.Targets[id] = syms
	return nil
}

func (bl *builder) switchStmt(id ast.StmtID) *diag.Error {
	sw, _ := bl.ast.Stmts.Switch(id)
	if err := bl.expr(sw.Scrutinee); err != nil {
		return err
	}
	seen := make(map[bignum.Word]source.Span, len(sw.Cases))
	for _, c := range sw.Cases {
		if err := bl.expr(c.Value); err != nil {
			return err
		}
		data, _ := bl.ast.Exprs.Literal(c.Value)
		// out-of-range literals are left to codegen
		if lit, err := LiteralValue(bl.ast.Strings, data); err == nil {
			if prev, dup := seen[lit.Value]; dup {
				return bl.fail(diag.BldDuplicateCase, bl.ast.Exprs.Get(c.Value).Span,
					fmt.Sprintf("duplicate case %s", data.Text),
					diag.Note{Span: prev, Msg: "previous case"})
			}
			seen[lit.Value] = bl.ast.Exprs.Get(c.Value).Span
		}
		if err := bl.block(c.Body, ScopeBlock); err != nil {
			return err
		}
	}
	if sw.Default.IsValid() {
		return bl.block(sw.Default, ScopeBlock)
	}
	return nil
}

// forStmt: the init block's scope stays open across cond, post and body.
func (bl *builder) forStmt(id ast.StmtID) *diag.Error {
	loop, _ := bl.ast.Stmts.For(id)
	init := bl.ast.Blocks.Get(loop.Init)
	sc := bl.ctx.Scopes.New(ScopeFor, bl.scope, loop.Init, init.Span)
	bl.ctx.Blocks[loop.Init] = sc
	prev := bl.scope
	bl.scope = sc
	defer func() { bl.scope = prev }()

	if err := bl.blockBody(loop.Init); err != nil {
		return err
	}
	if err := bl.expr(loop.Cond); err != nil {
		return err
	}
	if err := bl.block(loop.Post, ScopeBlock); err != nil {
		return err
	}
	return bl.block(loop.Body, ScopeBlock)
}

func (bl *builder) declareVar(n ast.TypedName, kind SymbolKind, decl ast.StmtID) (SymbolID, *diag.Error) {
	typ := Word
	if n.Type != source.NoStringID {
		t, ok := ParseType(bl.ast.Name(n.Type))
		if !ok {
			return NoSymbolID, bl.fail(diag.BldUnknownType, n.TypeSpan, fmt.Sprintf("unknown type %q", bl.ast.Name(n.Type)))
		}
		typ = t
	}
	sc := bl.ctx.Scopes.Get(bl.scope)
	if prev, ok := sc.Vars[n.Name]; ok {
		return NoSymbolID, bl.fail(diag.BldDuplicateVariable, n.Span,
			fmt.Sprintf("variable %q already declared in this scope", bl.ast.Name(n.Name)),
			diag.Note{Span: bl.ctx.Symbols.Get(prev).Span, Msg: "previous declaration"})
	}
	sym := bl.ctx.Symbols.New(Symbol{
		Name:  n.Name,
		Kind:  kind,
		Scope: bl.scope,
		Span:  n.Span,
		Type:  typ,
		Decl:  decl,
	})
	sc.Vars[n.Name] = sym
	sc.Symbols = append(sc.Symbols, sym)
	return sym, nil
}

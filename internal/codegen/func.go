package codegen

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/source"
	"yulc/internal/symbols"
	"yulc/internal/target"
)

func (g *generator) beginFunc(fn target.FuncID) {
	g.b.BeginFunc(fn)
	g.slots = make(map[symbols.SymbolID]target.SlotID)
	g.scopes = g.scopes[:0]
	g.loops = g.loops[:0]
	g.results = nil
}

func (g *generator) endFunc(sp source.Span, name string) *diag.Error {
	if err := g.b.EndFunc(); err != nil {
		return g.fail(diag.GenBackend, sp, fmt.Sprintf("function %s: %v", name, err))
	}
	return nil
}

// entry emits the unit's top-level statements as a parameterless function.
func (g *generator) entry(fn target.FuncID, code ast.BlockID) *diag.Error {
	g.beginFunc(fn)
	g.inFunc = false
	if err := g.block(code); err != nil {
		return err
	}
	if !g.b.Terminated() {
		g.b.Return(nil)
	}
	return g.endFunc(g.ast.Blocks.Get(code).Span, EntryFunc)
}

// function binds parameters and zeroed results to slots, lowers the body and
// returns the result slots when control reaches the end.
func (g *generator) function(st ast.StmtID) *diag.Error {
	fn, _ := g.ast.Stmts.Function(st)
	sym := g.ctx.Functions[st]
	sig := g.ctx.Signature(sym)

	g.beginFunc(g.funcs[sym])
	g.inFunc = true
	g.results = sig.Results
	g.openScope()
	for i, p := range sig.Params {
		g.b.Store(g.declare(p), g.b.Param(i))
	}
	for _, r := range sig.Results {
		g.b.Store(g.declare(r), g.b.Const(bignum.Zero()))
	}
	if err := g.stmts(fn.Body); err != nil {
		return err
	}
	if !g.b.Terminated() {
		g.leave()
	}
	g.closeScope()
	return g.endFunc(fn.NameSpan, g.ctx.Name(sym))
}

// leave returns the current values of the result slots.
func (g *generator) leave() {
	vals := make([]target.ValueID, len(g.results))
	for i, r := range g.results {
		vals[i] = g.b.Load(g.slots[r])
	}
	g.b.Return(vals)
}

func (g *generator) openScope() {
	g.scopes = append(g.scopes, nil)
}

// closeScope retires the slots declared since the matching openScope; later
// references to them are a codegen error.
func (g *generator) closeScope() {
	top := len(g.scopes) - 1
	for _, sym := range g.scopes[top] {
		delete(g.slots, sym)
	}
	g.scopes = g.scopes[:top]
}

func (g *generator) declare(sym symbols.SymbolID) target.SlotID {
	s := g.ctx.Symbols.Get(sym)
	slot := g.b.NewSlot(g.ctx.Name(sym), s.Type.Width())
	g.slots[sym] = slot
	top := len(g.scopes) - 1
	g.scopes[top] = append(g.scopes[top], sym)
	return slot
}

// slot returns the live slot of a variable.
func (g *generator) slot(sym symbols.SymbolID, sp source.Span) (target.SlotID, *diag.Error) {
	if s, ok := g.slots[sym]; ok {
		return s, nil
	}
	return target.NoSlot, g.fail(diag.GenScopeClosed, sp,
		fmt.Sprintf("variable %q is not live here", g.ctx.Name(sym)),
		diag.Note{Span: g.ctx.Symbols.Get(sym).Span, Msg: "declared here"})
}

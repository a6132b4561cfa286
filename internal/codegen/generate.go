package codegen

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/layout"
	"yulc/internal/rtlib"
	"yulc/internal/source"
	"yulc/internal/symbols"
	"yulc/internal/target"
)

// EntryFunc names the function holding a unit's top-level statements.
// `code` is a keyword, so no user function can take the name.
const EntryFunc = "code"

type Options struct {
	Reporter diag.Reporter
	Layout   layout.Target
	// Name of the unit produced for a bare block; objects use their own name.
	Name string
}

// Unit is the target module generated for one object code block.
type Unit struct {
	Name    string
	Object  ast.ObjectID
	Builder target.Builder
}

// Generate lowers every code block under root. Each unit gets a fresh backend
// from newBackend. On error no units are returned.
func Generate(ctx *symbols.Context, b *ast.Builder, root ast.Root, newBackend target.Factory, opts Options) ([]Unit, error) {
	if opts.Layout.WordSize == 0 {
		opts.Layout = layout.EVM()
	}
	if opts.Name == "" {
		opts.Name = "unit"
	}
	g := &generator{ast: b, ctx: ctx, opts: opts, newBackend: newBackend}
	var err *diag.Error
	if root.IsObject() {
		err = g.object(root.Object)
	} else {
		err = g.unit(opts.Name, ast.NoObjectID, root.Block, nil)
	}
	if err != nil {
		return nil, err
	}
	return g.units, nil
}

type generator struct {
	ast        *ast.Builder
	ctx        *symbols.Context
	opts       Options
	newBackend target.Factory
	units      []Unit

	// per unit
	b     target.Builder
	rt    *rtlib.Emitter
	funcs map[symbols.SymbolID]target.FuncID
	data  map[string]dataRef

	// per function
	slots   map[symbols.SymbolID]target.SlotID
	scopes  [][]symbols.SymbolID
	loops   []loopTargets
	results []symbols.SymbolID
	inFunc  bool
}

type loopTargets struct {
	brk  target.BlockID
	cont target.BlockID
}

func (g *generator) fail(code diag.Code, sp source.Span, msg string, notes ...diag.Note) *diag.Error {
	return diag.Emit(g.opts.Reporter, diag.NewError(code, sp, msg, notes...))
}

func (g *generator) object(id ast.ObjectID) *diag.Error {
	obj := g.ast.Objects.Get(id)
	if err := g.unit(obj.Name, id, obj.Code, obj.Data); err != nil {
		return err
	}
	for _, child := range obj.Children {
		if err := g.object(child); err != nil {
			return err
		}
	}
	return nil
}

// unit declares every function of the code block up front (calls may reach
// forward and into nested blocks), then emits the entry function followed by
// each function body.
func (g *generator) unit(name string, obj ast.ObjectID, code ast.BlockID, sections []ast.DataSection) *diag.Error {
	g.b = g.newBackend(name)
	g.rt = rtlib.NewEmitter(g.b, g.opts.Layout)
	g.funcs = make(map[symbols.SymbolID]target.FuncID)
	g.data = layoutData(g.b, sections)

	var fns []ast.StmtID
	g.collectFunctions(code, &fns)

	taken := map[string]int{EntryFunc: 1}
	entry := g.b.DeclareFunc(EntryFunc, 0, 0)
	for _, st := range fns {
		sym := g.ctx.Functions[st]
		sig := g.ctx.Signature(sym)
		g.funcs[sym] = g.b.DeclareFunc(uniqueName(taken, g.ctx.Name(sym)), len(sig.Params), len(sig.Results))
	}

	if err := g.entry(entry, code); err != nil {
		return err
	}
	for _, st := range fns {
		if err := g.function(st); err != nil {
			return err
		}
	}
	g.units = append(g.units, Unit{Name: name, Object: obj, Builder: g.b})
	return nil
}

// uniqueName disambiguates functions of equal name declared in sibling
// blocks: f, f.1, f.2 ...
func uniqueName(taken map[string]int, name string) string {
	n, clash := taken[name]
	taken[name] = n + 1
	if !clash {
		return name
	}
	for {
		cand := fmt.Sprintf("%s.%d", name, n)
		if _, used := taken[cand]; !used {
			taken[cand] = 1
			return cand
		}
		n++
	}
}

// collectFunctions lists function statements in source order, nested ones
// included.
func (g *generator) collectFunctions(blk ast.BlockID, out *[]ast.StmtID) {
	if !blk.IsValid() {
		return
	}
	for _, st := range g.ast.Blocks.Get(blk).Stmts {
		switch g.ast.Stmts.Get(st).Kind {
		case ast.StmtFunction:
			*out = append(*out, st)
			fn, _ := g.ast.Stmts.Function(st)
			g.collectFunctions(fn.Body, out)
		case ast.StmtBlock:
			inner, _ := g.ast.Stmts.Block(st)
			g.collectFunctions(inner, out)
		case ast.StmtIf:
			data, _ := g.ast.Stmts.If(st)
			g.collectFunctions(data.Body, out)
		case ast.StmtSwitch:
			sw, _ := g.ast.Stmts.Switch(st)
			for _, c := range sw.Cases {
				g.collectFunctions(c.Body, out)
			}
			g.collectFunctions(sw.Default, out)
		case ast.StmtFor:
			loop, _ := g.ast.Stmts.For(st)
			g.collectFunctions(loop.Init, out)
			g.collectFunctions(loop.Post, out)
			g.collectFunctions(loop.Body, out)
		}
	}
}

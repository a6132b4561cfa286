package symbols

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/source"
)

type Options struct {
	Reporter diag.Reporter
	Builtins BuiltinSet
	Hints    Hints
}

// builder walks the tree once, top-down. Functions of a block are hoisted
// before its statements so calls may precede definitions.
type builder struct {
	ast   *ast.Builder
	ctx   *Context
	opts  Options
	scope ScopeID
}

// Build constructs the Context of a unit or fails with the first BuilderError.
func Build(b *ast.Builder, root ast.Root, opts Options) (*Context, error) {
	bl := &builder{
		ast:  b,
		ctx:  NewContext(opts.Hints, b.Strings),
		opts: opts,
	}
	var err *diag.Error
	if root.IsObject() {
		err = bl.object(root.Object)
	} else {
		err = bl.unit(ast.NoObjectID, root.Block)
	}
	if err != nil {
		return nil, err
	}
	return bl.ctx, nil
}

func (bl *builder) fail(code diag.Code, sp source.Span, msg string, notes ...diag.Note) *diag.Error {
	return diag.Emit(bl.opts.Reporter, diag.NewError(code, sp, msg, notes...))
}

func (bl *builder) isBuiltin(name string) bool {
	return bl.opts.Builtins != nil && bl.opts.Builtins.IsBuiltin(name)
}

func (bl *builder) object(id ast.ObjectID) *diag.Error {
	obj := bl.ast.Objects.Get(id)
	if err := bl.unit(id, obj.Code); err != nil {
		return err
	}
	seen := make(map[string]source.Span, len(obj.Children)+len(obj.Data))
	check := func(name string, sp source.Span) *diag.Error {
		if prev, ok := seen[name]; ok {
			return bl.fail(diag.BldDuplicateObject, sp, fmt.Sprintf("object or data %q already defined", name),
				diag.Note{Span: prev, Msg: "previous definition"})
		}
		seen[name] = sp
		return nil
	}
	for _, child := range obj.Children {
		c := bl.ast.Objects.Get(child)
		if err := check(c.Name, c.NameSpan); err != nil {
			return err
		}
	}
	for _, d := range obj.Data {
		if err := check(d.Name, d.NameSpan); err != nil {
			return err
		}
	}
	for _, child := range obj.Children {
		if err := bl.object(child); err != nil {
			return err
		}
	}
	return nil
}

func (bl *builder) unit(obj ast.ObjectID, blk ast.BlockID) *diag.Error {
	data := bl.ast.Blocks.Get(blk)
	sc := bl.ctx.Scopes.New(ScopeUnit, NoScopeID, blk, data.Span)
	bl.ctx.Units[obj] = sc
	bl.ctx.Blocks[blk] = sc
	prev := bl.scope
	bl.scope = sc
	defer func() { bl.scope = prev }()
	return bl.blockBody(blk)
}

func (bl *builder) block(blk ast.BlockID, kind ScopeKind) *diag.Error {
	data := bl.ast.Blocks.Get(blk)
	sc := bl.ctx.Scopes.New(kind, bl.scope, blk, data.Span)
	bl.ctx.Blocks[blk] = sc
	prev := bl.scope
	bl.scope = sc
	defer func() { bl.scope = prev }()
	return bl.blockBody(blk)
}

func (bl *builder) blockBody(blk ast.BlockID) *diag.Error {
	stmts := bl.ast.Blocks.Get(blk).Stmts
	for _, st := range stmts {
		if bl.ast.Stmts.Get(st).Kind == ast.StmtFunction {
			if err := bl.declareFunction(st); err != nil {
				return err
			}
		}
	}
	for _, st := range stmts {
		if err := bl.stmt(st); err != nil {
			return err
		}
	}
	return nil
}

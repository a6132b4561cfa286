package codegen

import (
	"errors"
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/rtlib"
	"yulc/internal/symbols"
	"yulc/internal/target"
)

// value lowers an expression that must produce exactly one word.
func (g *generator) value(id ast.ExprID) (target.ValueID, *diag.Error) {
	vals, err := g.values(id)
	if err != nil {
		return target.NoValue, err
	}
	if len(vals) != 1 {
		call, _ := g.ast.Exprs.Call(id)
		return target.NoValue, g.fail(diag.GenMultiValueInExpr, g.ast.Exprs.Get(id).Span,
			fmt.Sprintf("%s returns %d values, expected exactly one", g.ast.Name(call.Callee), len(vals)))
	}
	return vals[0], nil
}

// values lowers an expression that may produce any number of words; only
// calls produce other than one.
func (g *generator) values(id ast.ExprID) ([]target.ValueID, *diag.Error) {
	e := g.ast.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		slot, err := g.slot(g.ctx.Refs[id], e.Span)
		if err != nil {
			return nil, err
		}
		return []target.ValueID{g.b.Load(slot)}, nil
	case ast.ExprLiteral:
		lit, _ := g.ast.Exprs.Literal(id)
		v, err := symbols.LiteralValue(g.ast.Strings, lit)
		if err != nil {
			msg := err.Error()
			if errors.Is(err, symbols.ErrLiteralRange) {
				msg = fmt.Sprintf("literal %s does not fit %s", lit.Text, v.Type)
			}
			return nil, g.fail(diag.GenLiteralRange, e.Span, msg)
		}
		return []target.ValueID{g.b.Const(v.Value)}, nil
	case ast.ExprCall:
		return g.call(id)
	default:
		return nil, g.fail(diag.GenBackend, e.Span, "unexpected expression")
	}
}

func (g *generator) call(id ast.ExprID) ([]target.ValueID, *diag.Error) {
	call, _ := g.ast.Exprs.Call(id)
	name := g.ast.Name(call.Callee)

	if bi, ok := LookupBuiltin(name); ok {
		if err := g.checkArity(call, name, bi.Args); err != nil {
			return nil, err
		}
		switch bi.kind {
		case builtinDataSize, builtinDataOffset:
			v, err := g.dataQuery(bi, call)
			if err != nil {
				return nil, err
			}
			return []target.ValueID{v}, nil
		}
		args, err := g.args(call)
		if err != nil {
			return nil, err
		}
		return g.builtin(bi, args), nil
	}

	if h, ok := rtlib.Lookup(name); ok {
		if err := g.checkArity(call, name, h.Args); err != nil {
			return nil, err
		}
		args, err := g.args(call)
		if err != nil {
			return nil, err
		}
		res, emitErr := g.rt.Emit(h, args)
		if emitErr != nil {
			return nil, g.fail(diag.GenBackend, g.ast.Exprs.Get(id).Span, emitErr.Error())
		}
		return res, nil
	}

	sym, ok := g.ctx.Calls[id]
	if !ok {
		return nil, g.fail(diag.GenBackend, call.CalleeSpan, fmt.Sprintf("call to %q was not resolved", name))
	}
	sig := g.ctx.Signature(sym)
	if err := g.checkArity(call, name, len(sig.Params)); err != nil {
		return nil, err
	}
	args, err := g.args(call)
	if err != nil {
		return nil, err
	}
	return g.b.Call(g.funcs[sym], args), nil
}

func (g *generator) checkArity(call *ast.ExprCallData, name string, want int) *diag.Error {
	if len(call.Args) == want {
		return nil
	}
	return g.fail(diag.GenCallArity, call.CalleeSpan,
		fmt.Sprintf("%s expects %d argument(s), got %d", name, want, len(call.Args)))
}

// args evaluates call arguments left to right.
func (g *generator) args(call *ast.ExprCallData) ([]target.ValueID, *diag.Error) {
	out := make([]target.ValueID, len(call.Args))
	for i, a := range call.Args {
		v, err := g.value(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (g *generator) builtin(bi Builtin, args []target.ValueID) []target.ValueID {
	b := g.b
	switch bi.kind {
	case builtinBinary:
		return []target.ValueID{b.Binary(bi.bin, args[0], args[1])}
	case builtinUnary:
		return []target.ValueID{b.Unary(bi.un, args[0])}
	case builtinMLoad:
		return []target.ValueID{b.MemLoad(args[0])}
	case builtinMStore:
		b.MemStore(args[0], args[1], bi.width)
		return nil
	case builtinIntrinsic:
		return b.Intrinsic(bi.Name, args)
	case builtinAbort:
		if bi.abort.HasData() {
			b.Abort(bi.abort, args[0], args[1])
		} else {
			b.Abort(bi.abort, target.NoValue, target.NoValue)
		}
		return nil
	default: // pop
		return nil
	}
}

package symbols

import (
	"errors"
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/source"
)

func (bl *builder) expr(id ast.ExprID) *diag.Error {
	e := bl.ast.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		ident, _ := bl.ast.Exprs.Ident(id)
		sym, err := bl.resolveVar(ident.Name, e.Span)
		if err != nil {
			return err
		}
		bl.ctx.Refs[id] = sym
	case ast.ExprLiteral:
		lit, _ := bl.ast.Exprs.Literal(id)
		if lit.Type != source.NoStringID {
			if _, err := LiteralValue(bl.ast.Strings, lit); errors.Is(err, errUnknownType) {
				return bl.fail(diag.BldUnknownType, lit.TypeSpan, fmt.Sprintf("unknown type %q", bl.ast.Name(lit.Type)))
			}
		}
	case ast.ExprCall:
		call, _ := bl.ast.Exprs.Call(id)
		name := bl.ast.Name(call.Callee)
		if !bl.isBuiltin(name) {
			fn, ok := bl.lookupFunc(call.Callee)
			if !ok {
				if _, isVar := bl.lookupVar(call.Callee); isVar {
					return bl.fail(diag.BldVariableAsCall, call.CalleeSpan, fmt.Sprintf("%q is a variable, not a function", name))
				}
				return bl.fail(diag.BldUnresolvedFunc, call.CalleeSpan, fmt.Sprintf("undeclared function %q", name))
			}
			bl.ctx.Calls[id] = fn
		}
		for _, arg := range call.Args {
			if err := bl.expr(arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (bl *builder) resolveVar(name source.StringID, sp source.Span) (SymbolID, *diag.Error) {
	if sym, ok := bl.lookupVar(name); ok {
		return sym, nil
	}
	text := bl.ast.Name(name)
	if _, isFunc := bl.lookupFunc(name); isFunc || bl.isBuiltin(text) {
		return NoSymbolID, bl.fail(diag.BldFunctionAsValue, sp, fmt.Sprintf("function %q used as a value", text))
	}
	return NoSymbolID, bl.fail(diag.BldUnresolvedIdent, sp, fmt.Sprintf("undeclared identifier %q", text))
}

// lookupVar searches outward but never past the innermost function scope.
func (bl *builder) lookupVar(name source.StringID) (SymbolID, bool) {
	for id := bl.scope; id.IsValid(); {
		sc := bl.ctx.Scopes.Get(id)
		if sym, ok := sc.Vars[name]; ok {
			return sym, true
		}
		if sc.Kind == ScopeFunction {
			return NoSymbolID, false
		}
		id = sc.Parent
	}
	return NoSymbolID, false
}

// lookupFunc searches every enclosing scope, across function boundaries.
func (bl *builder) lookupFunc(name source.StringID) (SymbolID, bool) {
	for id := bl.scope; id.IsValid(); {
		sc := bl.ctx.Scopes.Get(id)
		if sym, ok := sc.Funcs[name]; ok {
			return sym, true
		}
		id = sc.Parent
	}
	return NoSymbolID, false
}

package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"yulc/internal/ast"
	"yulc/internal/source"
)

// BuiltinSet answers whether a callee name belongs to the builtin catalog.
// Builtins resolve before user functions.
type BuiltinSet interface {
	IsBuiltin(name string) bool
}

// Hints provide optional capacity suggestions.
type Hints struct{ Scopes, Symbols uint }

// Context is the read-only product of Build: the scope tree plus a resolution
// for every identifier, call, declaration and assignment of the unit.
type Context struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	// Units maps each object (or NoObjectID for a bare block) to its unit scope.
	Units map[ast.ObjectID]ScopeID
	// Blocks maps every block to the scope it opens.
	Blocks map[ast.BlockID]ScopeID
	// Functions maps a function statement to its symbol.
	Functions map[ast.StmtID]SymbolID
	// Decls maps a let statement to the declared variables, in order.
	Decls map[ast.StmtID][]SymbolID
	// Targets maps an assignment statement to its target variables, in order.
	Targets map[ast.StmtID][]SymbolID
	// Refs maps an identifier expression to the variable it reads.
	Refs map[ast.ExprID]SymbolID
	// Calls maps a call expression to a user function; builtin calls are absent.
	Calls map[ast.ExprID]SymbolID
}

func NewContext(h Hints, strings *source.Interner) *Context {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Context{
		Scopes:    NewScopes(scopeCap),
		Symbols:   NewSymbols(symCap),
		Strings:   strings,
		Units:     make(map[ast.ObjectID]ScopeID),
		Blocks:    make(map[ast.BlockID]ScopeID),
		Functions: make(map[ast.StmtID]SymbolID),
		Decls:     make(map[ast.StmtID][]SymbolID),
		Targets:   make(map[ast.StmtID][]SymbolID),
		Refs:      make(map[ast.ExprID]SymbolID),
		Calls:     make(map[ast.ExprID]SymbolID),
	}
}

// Signature returns the signature of a function symbol.
func (c *Context) Signature(id SymbolID) *FunctionSignature {
	sym := c.Symbols.Get(id)
	if sym == nil || sym.Kind != SymbolFunction {
		return nil
	}
	return sym.Sig
}

// Name returns the text of a symbol's name.
func (c *Context) Name(id SymbolID) string {
	sym := c.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	return c.Strings.MustLookup(sym.Name)
}

// Enclosing reports whether scope lies inside (or is) ancestor.
func (c *Context) Enclosing(ancestor, scope ScopeID) bool {
	for scope.IsValid() {
		if scope == ancestor {
			return true
		}
		scope = c.Scopes.Get(scope).Parent
	}
	return false
}

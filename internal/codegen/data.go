package codegen

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/target"
)

// dataRef locates a data section inside the unit's data blob.
type dataRef struct {
	offset uint64
	size   uint64
}

// layoutData concatenates the data sections in source order and hands the
// blob to the backend.
func layoutData(b target.Builder, sections []ast.DataSection) map[string]dataRef {
	refs := make(map[string]dataRef, len(sections))
	var blob []byte
	for _, d := range sections {
		refs[d.Name] = dataRef{offset: uint64(len(blob)), size: uint64(len(d.Value))}
		blob = append(blob, d.Value...)
	}
	if len(blob) > 0 {
		b.SetData(blob)
	}
	return refs
}

// dataQuery lowers datasize/dataoffset. The argument must be a plain string
// literal naming a data section of the enclosing object.
func (g *generator) dataQuery(bi Builtin, call *ast.ExprCallData) (target.ValueID, *diag.Error) {
	arg := call.Args[0]
	lit, ok := g.ast.Exprs.Literal(arg)
	if !ok || lit.Kind != ast.LitString {
		return target.NoValue, g.fail(diag.GenBadBuiltinArg, g.ast.Exprs.Get(arg).Span,
			fmt.Sprintf("%s expects a string literal", bi.Name))
	}
	raw, err := lexer.Unquote(lit.Text)
	if err != nil {
		return target.NoValue, g.fail(diag.GenBadBuiltinArg, g.ast.Exprs.Get(arg).Span, err.Error())
	}
	ref, ok := g.data[string(raw)]
	if !ok {
		return target.NoValue, g.fail(diag.GenUnknownData, g.ast.Exprs.Get(arg).Span,
			fmt.Sprintf("no data section %q in this object", raw))
	}
	v := ref.size
	if bi.kind == builtinDataOffset {
		v = ref.offset
	}
	return g.b.Const(bignum.FromUint64(v)), nil
}

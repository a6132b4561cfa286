package symbols

import (
	"errors"
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/bignum"
	"yulc/internal/lexer"
	"yulc/internal/source"
)

var (
	// ErrLiteralRange reports a literal outside the range of its annotation.
	ErrLiteralRange = errors.New("literal out of range")
	errUnknownType  = errors.New("unknown type")
)

// Literal is a literal value with its optional annotation.
type Literal struct {
	Value bignum.Word
	Type  Type
	Typed bool
}

// LiteralValue materialises a literal as a word. Strings keep their escaped
// bytes as written and are packed left-aligned; an annotated literal must fit
// its type.
func LiteralValue(strings *source.Interner, lit *ast.ExprLiteralData) (Literal, error) {
	var (
		out Literal
		err error
	)
	switch lit.Kind {
	case ast.LitNumber, ast.LitHexNumber:
		out.Value, err = bignum.ParseLiteral(lit.Text)
	case ast.LitString:
		var raw []byte
		if raw, err = lexer.Unquote(lit.Text); err == nil {
			out.Value, err = bignum.FromBytesLeft(raw)
		}
	case ast.LitHexString:
		var raw []byte
		if raw, err = lexer.HexBytes(lit.Text); err == nil {
			out.Value, err = bignum.FromBytesLeft(raw)
		}
	case ast.LitTrue:
		out.Value = bignum.One()
	case ast.LitFalse:
		out.Value = bignum.Zero()
	default:
		return out, fmt.Errorf("unknown literal kind %d", lit.Kind)
	}
	if err != nil {
		return out, fmt.Errorf("literal %s: %w", lit.Text, err)
	}
	if lit.Type == source.NoStringID {
		return out, nil
	}
	name := strings.MustLookup(lit.Type)
	typ, ok := ParseType(name)
	if !ok {
		return out, fmt.Errorf("%w %q", errUnknownType, name)
	}
	out.Type, out.Typed = typ, true
	if !fits(out.Value, typ) {
		return out, fmt.Errorf("%w: %s does not fit %s", ErrLiteralRange, lit.Text, typ)
	}
	return out, nil
}

func fits(v bignum.Word, t Type) bool {
	switch {
	case t.Bool:
		return v.BitLen() <= 1
	case t.Signed:
		return v.FitsBits(t.Width() - 1)
	default:
		return v.FitsBits(t.Width())
	}
}

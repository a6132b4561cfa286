package lexer

import (
	"fmt"

	"yulc/internal/diag"
	"yulc/internal/token"
)

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := token.Invalid
	switch b {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
		if lx.cursor.Eat('=') {
			kind = token.ColonAssign
		}
	case '-':
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	}
	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		return lx.fail(diag.LexUnknownChar, sp, fmt.Sprintf("invalid character %q", lx.text(sp)))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

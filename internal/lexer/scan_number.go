package lexer

import (
	"yulc/internal/diag"
	"yulc/internal/token"
)

// scanNumber reads 0x[0-9a-fA-F]+ or [0-9]+. A number glued to identifier
// characters ("12ab", "0xZZ") is malformed.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && b1 == 'x' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind = token.HexNumberLit
		digits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			return lx.badNumber(start)
		}
	} else {
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if isIdentContinue(lx.cursor.Peek()) {
		return lx.badNumber(start)
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark) token.Token {
	for isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return lx.fail(diag.LexBadNumber, sp, "malformed number literal "+lx.text(sp))
}

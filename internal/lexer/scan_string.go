package lexer

import (
	"yulc/internal/diag"
	"yulc/internal/token"
)

// scanString reads a double-quoted literal. Escapes are validated here and
// decoded later by Unquote. Token text keeps the quotes.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for {
		if lx.cursor.EOF() {
			return lx.fail(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
		}
		escStart := lx.cursor.Mark()
		switch lx.cursor.Bump() {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\n':
			return lx.fail(diag.LexNewlineInString, lx.cursor.SpanFrom(start), "newline in string literal")
		case '\\':
			if !lx.scanEscape() {
				return lx.fail(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence")
			}
		}
	}
}

func (lx *Lexer) scanEscape() bool {
	switch lx.cursor.Bump() {
	case '\\', '"', '\'', 'n', 'r', 't', '0':
		return true
	case 'x':
		return lx.hexDigits(2)
	case 'u':
		return lx.hexDigits(4)
	default:
		return false
	}
}

func (lx *Lexer) hexDigits(n int) bool {
	for range n {
		if !isHex(lx.cursor.Peek()) {
			return false
		}
		lx.cursor.Bump()
	}
	return true
}

func (lx *Lexer) atHexString() bool {
	c := lx.file.Content
	off := lx.cursor.Off
	return int(off)+3 < len(c) && c[off+1] == 'e' && c[off+2] == 'x' && (c[off+3] == '"' || c[off+3] == '\'')
}

// scanHexString reads hex"..." / hex'...' with an even number of hex digits.
func (lx *Lexer) scanHexString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	lx.cursor.Bump()
	quote := lx.cursor.Bump()
	digits := 0
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	if !lx.cursor.Eat(quote) {
		for !lx.cursor.EOF() && lx.cursor.Peek() != quote && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.cursor.Eat(quote)
		return lx.fail(diag.LexBadHexString, lx.cursor.SpanFrom(start), "hex string may contain only hex digits")
	}
	if digits%2 != 0 {
		return lx.fail(diag.LexBadHexString, lx.cursor.SpanFrom(start), "hex string needs an even number of digits")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.HexStringLit, Span: sp, Text: lx.text(sp)}
}

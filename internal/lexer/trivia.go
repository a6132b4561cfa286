package lexer

import (
	"yulc/internal/diag"
	"yulc/internal/token"
)

// skipTrivia consumes whitespace and comments before the next token.
// It returns false when an unterminated block comment was found.
func (lx *Lexer) skipTrivia() bool {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for b2 := lx.cursor.Peek(); b2 == ' ' || b2 == '\t' || b2 == '\r'; b2 = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaNewline, start)
		case b == '/':
			_, b1, ok := lx.cursor.Peek2()
			if !ok || (b1 != '/' && b1 != '*') {
				return true
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
			if b1 == '/' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				lx.keep(token.TriviaLineComment, start)
				continue
			}
			if !lx.skipBlockComment() {
				lx.fail(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
				return false
			}
			lx.keep(token.TriviaBlockComment, start)
		default:
			return true
		}
	}
	return true
}

// skipBlockComment consumes up to and including "*/". Block comments do not nest.
func (lx *Lexer) skipBlockComment() bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '*' && lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			return true
		}
	}
	return false
}

func (lx *Lexer) keep(kind token.TriviaKind, start Mark) {
	if !lx.opts.KeepTrivia {
		return
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

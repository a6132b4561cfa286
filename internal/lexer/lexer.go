package lexer

import (
	"yulc/internal/diag"
	"yulc/internal/source"
	"yulc/internal/token"
)

// Lexer produces tokens lazily. After the first error every call to Next
// returns an Invalid token; Err reports the error.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	hold   []token.Trivia
	err    *diag.Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Reset restarts the token stream from the beginning of the file.
func (lx *Lexer) Reset() {
	lx.cursor = NewCursor(lx.file)
	lx.look = nil
	lx.hold = nil
	lx.err = nil
}

// Err returns the first lexical error, if any.
func (lx *Lexer) Err() *diag.Error {
	return lx.err
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return token.Token{Kind: token.Invalid, Span: lx.err.Primary}
	}

	if !lx.skipTrivia() {
		return token.Token{Kind: token.Invalid, Span: lx.err.Primary}
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case ch == 'h' && lx.atHexString():
		tok = lx.scanHexString()
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	if lx.opts.KeepTrivia {
		tok.Leading = lx.hold
	}
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize lexes a whole file, including the trailing EOF token.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.Invalid {
			return out, lx.err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// fail records the first error and produces the Invalid token that stops the stream.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) token.Token {
	if lx.err == nil {
		lx.err = diag.Emit(lx.opts.Reporter, diag.NewError(code, sp, msg))
	}
	return token.Token{Kind: token.Invalid, Span: sp}
}

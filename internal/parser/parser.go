package parser

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/source"
	"yulc/internal/token"
)

type Options struct {
	// Reporter observes the first syntax error; may be nil.
	Reporter diag.Reporter
}

type Result struct {
	Root ast.Root
}

// Parser: состояние парсера на один файл.
// Recursive descent with exactly one token of lookahead (lexer.Peek).
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses one unit: a bare block or an object. The first lexical or
// syntax error aborts parsing and is returned as *diag.Error.
func ParseFile(lx *lexer.Lexer, b *ast.Builder, opts Options) (Result, error) {
	p := &Parser{lx: lx, b: b, opts: opts}
	root, err := p.parseRoot()
	if err != nil {
		return Result{}, err
	}
	return Result{Root: root}, nil
}

func (p *Parser) parseRoot() (ast.Root, *diag.Error) {
	start := p.lx.Peek().Span
	var root ast.Root
	switch p.peek().Kind {
	case token.KwObject:
		obj, err := p.parseObject()
		if err != nil {
			return root, err
		}
		root.Object = obj
	case token.Invalid:
		return root, p.lexErr()
	default:
		blk, err := p.parseBlock()
		if err != nil {
			return root, err
		}
		root.Block = blk
	}
	if tok := p.peek(); tok.Kind != token.EOF {
		if tok.Kind == token.Invalid {
			return root, p.lexErr()
		}
		return root, p.fail(diag.SynTrailingInput, tok.Span, fmt.Sprintf("expected end of file, found %s", describe(tok)))
	}
	root.Span = start.Cover(p.lastSpan)
	return root, nil
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect consumes a token of kind k or fails with "expected k, found X".
func (p *Parser) expect(k token.Kind) (token.Token, *diag.Error) {
	tok := p.peek()
	if tok.Kind == k {
		return p.advance(), nil
	}
	if tok.Kind == token.Invalid {
		return tok, p.lexErr()
	}
	code := diag.SynUnexpectedToken
	switch k {
	case token.Ident:
		code = diag.SynExpectIdentifier
	case token.LBrace:
		code = diag.SynExpectBlock
	case token.ColonAssign:
		code = diag.SynExpectAssign
	}
	return tok, p.fail(code, tok.Span, fmt.Sprintf("expected %s, found %s", k, describe(tok)))
}

func (p *Parser) fail(code diag.Code, sp source.Span, msg string) *diag.Error {
	return diag.Emit(p.opts.Reporter, diag.NewError(code, sp, msg))
}

// lexErr returns the lexer's first error. The lexer already reported it.
func (p *Parser) lexErr() *diag.Error {
	if err := p.lx.Err(); err != nil {
		return err
	}
	return p.fail(diag.SynUnexpectedToken, p.peek().Span, "invalid token")
}

func (p *Parser) span(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return tok.Kind.String()
	case tok.Kind == token.Ident || tok.IsLiteral():
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return tok.Kind.String()
	}
}

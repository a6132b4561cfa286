package parser

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/token"
)

// parseExpression: FunctionCall | Identifier | Literal
func (p *Parser) parseExpression() (ast.ExprID, *diag.Error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallAfterName(tok)
		}
		return p.b.Exprs.NewIdent(tok.Span, p.b.Strings.Intern(tok.Text)), nil
	case tok.IsLiteral():
		return p.parseLiteral()
	case tok.Kind == token.Invalid:
		return ast.NoExprID, p.lexErr()
	}
	return ast.NoExprID, p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("expected expression, found %s", describe(tok)))
}

// parseCallAfterName: '(' (Expression (',' Expression)*)? ')' with the callee already consumed.
func (p *Parser) parseCallAfterName(name token.Token) (ast.ExprID, *diag.Error) {
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoExprID, err
	}
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return ast.NoExprID, err
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoExprID, err
	}
	return p.b.Exprs.NewCall(p.span(name.Span), ast.ExprCallData{
		Callee:     p.b.Strings.Intern(name.Text),
		CalleeSpan: name.Span,
		Args:       args,
	}), nil
}

// parseLiteral: (Number | String | HexString | true | false) (':' TypeName)?
func (p *Parser) parseLiteral() (ast.ExprID, *diag.Error) {
	tok := p.advance()
	lit := ast.ExprLiteralData{Text: tok.Text}
	switch tok.Kind {
	case token.NumberLit:
		lit.Kind = ast.LitNumber
	case token.HexNumberLit:
		lit.Kind = ast.LitHexNumber
	case token.StringLit:
		lit.Kind = ast.LitString
	case token.HexStringLit:
		lit.Kind = ast.LitHexString
	case token.KwTrue:
		lit.Kind = ast.LitTrue
	case token.KwFalse:
		lit.Kind = ast.LitFalse
	case token.Invalid:
		return ast.NoExprID, p.lexErr()
	default:
		return ast.NoExprID, p.fail(diag.SynExpectLiteral, tok.Span, fmt.Sprintf("expected literal, found %s", describe(tok)))
	}
	if p.at(token.Colon) {
		p.advance()
		ty, err := p.expect(token.Ident)
		if err != nil {
			return ast.NoExprID, err
		}
		lit.Type = p.b.Strings.Intern(ty.Text)
		lit.TypeSpan = ty.Span
	}
	return p.b.Exprs.NewLiteral(p.span(tok.Span), lit), nil
}

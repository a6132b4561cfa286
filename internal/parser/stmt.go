package parser

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/token"
)

// parseFunction: 'function' Identifier '(' TypedIdentifierList? ')' ('->' TypedIdentifierList)? Block
func (p *Parser) parseFunction() (ast.StmtID, *diag.Error) {
	kw := p.advance()
	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err = p.expect(token.LParen); err != nil {
		return ast.NoStmtID, err
	}
	var params []ast.TypedName
	if !p.at(token.RParen) {
		if params, err = p.parseTypedNames(); err != nil {
			return ast.NoStmtID, err
		}
	}
	if _, err = p.expect(token.RParen); err != nil {
		return ast.NoStmtID, err
	}
	var results []ast.TypedName
	if p.at(token.Arrow) {
		p.advance()
		if results, err = p.parseTypedNames(); err != nil {
			return ast.NoStmtID, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewFunction(p.span(kw.Span), ast.FunctionDef{
		Name:     p.b.Strings.Intern(name.Text),
		NameSpan: name.Span,
		Params:   params,
		Results:  results,
		Body:     body,
	}), nil
}

// parseTypedNames: Identifier (':' TypeName)? (',' Identifier (':' TypeName)?)*
func (p *Parser) parseTypedNames() ([]ast.TypedName, *diag.Error) {
	var out []ast.TypedName
	for {
		id, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		tn := ast.TypedName{Name: p.b.Strings.Intern(id.Text), Span: id.Span}
		if p.at(token.Colon) {
			p.advance()
			ty, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			tn.Type = p.b.Strings.Intern(ty.Text)
			tn.TypeSpan = ty.Span
		}
		out = append(out, tn)
		if !p.at(token.Comma) {
			return out, nil
		}
		p.advance()
	}
}

// parseLet: 'let' TypedIdentifierList (':=' Expression)?
func (p *Parser) parseLet() (ast.StmtID, *diag.Error) {
	kw := p.advance()
	names, err := p.parseTypedNames()
	if err != nil {
		return ast.NoStmtID, err
	}
	decl := ast.VarDecl{Names: names}
	if p.at(token.ColonAssign) {
		p.advance()
		if decl.Value, err = p.parseExpression(); err != nil {
			return ast.NoStmtID, err
		}
	}
	return p.b.Stmts.NewLet(p.span(kw.Span), decl), nil
}

// parseIf: 'if' Expression Block
func (p *Parser) parseIf() (ast.StmtID, *diag.Error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return ast.NoStmtID, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewIf(p.span(kw.Span), ast.If{Cond: cond, Body: body}), nil
}

// parseSwitch: 'switch' Expression (Case+ Default? | Default)
func (p *Parser) parseSwitch() (ast.StmtID, *diag.Error) {
	kw := p.advance()
	scrutinee, err := p.parseExpression()
	if err != nil {
		return ast.NoStmtID, err
	}
	sw := ast.Switch{Scrutinee: scrutinee}
	for p.at(token.KwCase) {
		caseKw := p.advance()
		if !p.peek().IsLiteral() {
			tok := p.peek()
			if tok.Kind == token.Invalid {
				return ast.NoStmtID, p.lexErr()
			}
			return ast.NoStmtID, p.fail(diag.SynExpectLiteral, tok.Span, fmt.Sprintf("expected literal, found %s", describe(tok)))
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return ast.NoStmtID, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.NoStmtID, err
		}
		sw.Cases = append(sw.Cases, ast.Case{Span: p.span(caseKw.Span), Value: lit, Body: body})
	}
	if p.at(token.KwDefault) {
		def := p.advance()
		if sw.Default, err = p.parseBlock(); err != nil {
			return ast.NoStmtID, err
		}
		sw.DefaultSpan = p.span(def.Span)
	}
	if len(sw.Cases) == 0 && !sw.Default.IsValid() {
		tok := p.peek()
		if tok.Kind == token.Invalid {
			return ast.NoStmtID, p.lexErr()
		}
		return ast.NoStmtID, p.fail(diag.SynSwitchNoCases, tok.Span, fmt.Sprintf("expected 'case' or 'default', found %s", describe(tok)))
	}
	return p.b.Stmts.NewSwitch(p.span(kw.Span), sw), nil
}

// parseFor: 'for' Block Expression Block Block
func (p *Parser) parseFor() (ast.StmtID, *diag.Error) {
	kw := p.advance()
	var (
		loop ast.For
		err  *diag.Error
	)
	if loop.Init, err = p.parseBlock(); err != nil {
		return ast.NoStmtID, err
	}
	if loop.Cond, err = p.parseExpression(); err != nil {
		return ast.NoStmtID, err
	}
	if loop.Post, err = p.parseBlock(); err != nil {
		return ast.NoStmtID, err
	}
	if loop.Body, err = p.parseBlock(); err != nil {
		return ast.NoStmtID, err
	}
	return p.b.Stmts.NewFor(p.span(kw.Span), loop), nil
}

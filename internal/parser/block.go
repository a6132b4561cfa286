package parser

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/token"
)

// parseBlock: '{' Statement* '}'
func (p *Parser) parseBlock() (ast.BlockID, *diag.Error) {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return ast.NoBlockID, err
	}
	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			tok := p.peek()
			return ast.NoBlockID, p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("expected %s, found %s", token.RBrace, describe(tok)))
		}
		st, err := p.parseStatement()
		if err != nil {
			return ast.NoBlockID, err
		}
		stmts = append(stmts, st)
	}
	p.advance()
	return p.b.Blocks.New(p.span(open.Span), stmts), nil
}

func (p *Parser) parseStatement() (ast.StmtID, *diag.Error) {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		blk, err := p.parseBlock()
		if err != nil {
			return ast.NoStmtID, err
		}
		return p.b.Stmts.NewBlock(p.b.Blocks.Get(blk).Span, blk), nil
	case token.KwFunction:
		return p.parseFunction()
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwFor:
		return p.parseFor()
	case token.KwBreak:
		p.advance()
		return p.b.Stmts.NewJump(ast.StmtBreak, tok.Span), nil
	case token.KwContinue:
		p.advance()
		return p.b.Stmts.NewJump(ast.StmtContinue, tok.Span), nil
	case token.KwLeave:
		p.advance()
		return p.b.Stmts.NewJump(ast.StmtLeave, tok.Span), nil
	case token.Ident:
		return p.parseIdentStatement()
	case token.Invalid:
		return ast.NoStmtID, p.lexErr()
	}
	if tok.IsLiteral() {
		lit, err := p.parseLiteral()
		if err != nil {
			return ast.NoStmtID, err
		}
		return p.b.Stmts.NewExpr(p.span(tok.Span), lit), nil
	}
	return ast.NoStmtID, p.fail(diag.SynExpectStatement, tok.Span, fmt.Sprintf("expected statement, found %s", describe(tok)))
}

// parseIdentStatement disambiguates after consuming the leading identifier:
// '(' starts a call expression, ',' or ':=' an assignment.
func (p *Parser) parseIdentStatement() (ast.StmtID, *diag.Error) {
	first := p.advance()
	name := ast.Name{Name: p.b.Strings.Intern(first.Text), Span: first.Span}
	switch p.peek().Kind {
	case token.LParen:
		call, err := p.parseCallAfterName(first)
		if err != nil {
			return ast.NoStmtID, err
		}
		return p.b.Stmts.NewExpr(p.span(first.Span), call), nil
	case token.Comma, token.ColonAssign:
		targets := []ast.Name{name}
		for p.at(token.Comma) {
			p.advance()
			id, err := p.expect(token.Ident)
			if err != nil {
				return ast.NoStmtID, err
			}
			targets = append(targets, ast.Name{Name: p.b.Strings.Intern(id.Text), Span: id.Span})
		}
		if _, err := p.expect(token.ColonAssign); err != nil {
			return ast.NoStmtID, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return ast.NoStmtID, err
		}
		return p.b.Stmts.NewAssign(p.span(first.Span), ast.Assign{Targets: targets, Value: value}), nil
	case token.Invalid:
		return ast.NoStmtID, p.lexErr()
	default:
		// a bare identifier is a valid Expression statement
		id := p.b.Exprs.NewIdent(first.Span, name.Name)
		return p.b.Stmts.NewExpr(first.Span, id), nil
	}
}

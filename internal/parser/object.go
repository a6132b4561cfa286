package parser

import (
	"fmt"

	"yulc/internal/ast"
	"yulc/internal/diag"
	"yulc/internal/lexer"
	"yulc/internal/token"
)

// parseObject: 'object' String '{' 'code' Block (Object | Data)* '}'
func (p *Parser) parseObject() (ast.ObjectID, *diag.Error) {
	kw := p.advance()
	nameTok, err := p.expect(token.StringLit)
	if err != nil {
		return ast.NoObjectID, err
	}
	name, err := p.stringValue(nameTok)
	if err != nil {
		return ast.NoObjectID, err
	}
	if _, err = p.expect(token.LBrace); err != nil {
		return ast.NoObjectID, err
	}
	if _, err = p.expect(token.KwCode); err != nil {
		return ast.NoObjectID, err
	}
	obj := ast.Object{Name: string(name), NameSpan: nameTok.Span}
	if obj.Code, err = p.parseBlock(); err != nil {
		return ast.NoObjectID, err
	}
	for {
		switch tok := p.peek(); tok.Kind {
		case token.KwObject:
			child, err := p.parseObject()
			if err != nil {
				return ast.NoObjectID, err
			}
			obj.Children = append(obj.Children, child)
		case token.KwData:
			data, err := p.parseData()
			if err != nil {
				return ast.NoObjectID, err
			}
			obj.Data = append(obj.Data, data)
		case token.RBrace:
			p.advance()
			obj.Span = p.span(kw.Span)
			return p.b.Objects.New(obj), nil
		case token.Invalid:
			return ast.NoObjectID, p.lexErr()
		default:
			return ast.NoObjectID, p.fail(diag.SynUnexpectedToken, tok.Span,
				fmt.Sprintf("expected 'object', 'data' or '}', found %s", describe(tok)))
		}
	}
}

// parseData: 'data' String (String | HexString)
func (p *Parser) parseData() (ast.DataSection, *diag.Error) {
	p.advance()
	nameTok, err := p.expect(token.StringLit)
	if err != nil {
		return ast.DataSection{}, err
	}
	name, err := p.stringValue(nameTok)
	if err != nil {
		return ast.DataSection{}, err
	}
	ds := ast.DataSection{Name: string(name), NameSpan: nameTok.Span}
	switch tok := p.peek(); tok.Kind {
	case token.StringLit:
		p.advance()
		if ds.Value, err = p.stringValue(tok); err != nil {
			return ast.DataSection{}, err
		}
	case token.HexStringLit:
		p.advance()
		v, herr := lexer.HexBytes(tok.Text)
		if herr != nil {
			return ast.DataSection{}, p.fail(diag.SynExpectLiteral, tok.Span, "malformed hex data")
		}
		ds.Value, ds.Hex = v, true
	case token.Invalid:
		return ast.DataSection{}, p.lexErr()
	default:
		return ast.DataSection{}, p.fail(diag.SynExpectLiteral, tok.Span,
			fmt.Sprintf("expected string or hex string, found %s", describe(tok)))
	}
	return ds, nil
}

func (p *Parser) stringValue(tok token.Token) ([]byte, *diag.Error) {
	v, err := lexer.Unquote(tok.Text)
	if err != nil {
		return nil, p.fail(diag.SynExpectLiteral, tok.Span, "malformed string literal")
	}
	return v, nil
}

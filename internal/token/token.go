package token

import "yulc/internal/source"

// Token is immutable once produced by the lexer.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Offset is the byte offset of the first character of the token.
func (t Token) Offset() uint32 { return t.Span.Start }

// IsLiteral reports whether the token can start a Literal production.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, HexNumberLit, StringLit, HexStringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	return t.Kind >= LBrace && t.Kind <= Arrow
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwObject && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

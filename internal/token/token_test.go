package token_test

import (
	"testing"

	"yulc/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want token.Kind
		ok   bool
	}{
		{"function", token.KwFunction, true},
		{"leave", token.KwLeave, true},
		{"true", token.KwTrue, true},
		{"Function", token.Invalid, false},
		{"add", token.Invalid, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassification(t *testing.T) {
	lits := []token.Kind{token.NumberLit, token.HexNumberLit, token.StringLit, token.HexStringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Errorf("%v should be a literal", k)
		}
	}
	for _, k := range []token.Kind{token.LBrace, token.ColonAssign, token.Arrow} {
		tok := token.Token{Kind: k}
		if !tok.IsPunct() || tok.IsKeyword() {
			t.Errorf("%v misclassified", k)
		}
	}
	if !(token.Token{Kind: token.KwSwitch}).IsKeyword() {
		t.Error("switch should be a keyword")
	}
}

func TestKindString(t *testing.T) {
	if got := token.ColonAssign.String(); got != "':='" {
		t.Errorf("ColonAssign.String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "unknown token" {
		t.Errorf("out of range kind = %q", got)
	}
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is `[a-zA-Z_$][a-zA-Z_$0-9.]*` that is not a keyword.
	Ident

	// KwObject represents the 'object' keyword.
	KwObject
	// KwCode represents the 'code' keyword.
	KwCode
	// KwData represents the 'data' keyword.
	KwData
	// KwFunction represents the 'function' keyword.
	KwFunction
	// KwLet represents the 'let' keyword.
	KwLet
	// KwIf represents the 'if' keyword.
	KwIf
	// KwSwitch represents the 'switch' keyword.
	KwSwitch
	// KwCase represents the 'case' keyword.
	KwCase
	// KwDefault represents the 'default' keyword.
	KwDefault
	// KwFor represents the 'for' keyword.
	KwFor
	// KwBreak represents the 'break' keyword.
	KwBreak
	// KwContinue represents the 'continue' keyword.
	KwContinue
	// KwLeave represents the 'leave' keyword.
	KwLeave
	// KwTrue represents the 'true' literal.
	KwTrue
	// KwFalse represents the 'false' literal.
	KwFalse

	// NumberLit is a decimal literal.
	NumberLit
	// HexNumberLit is a `0x` prefixed literal.
	HexNumberLit
	// StringLit is a double-quoted string; Text keeps the quotes and escapes.
	StringLit
	// HexStringLit is hex"..." or hex'...'.
	HexStringLit

	LBrace      // {
	RBrace      // }
	LParen      // (
	RParen      // )
	Comma       // ,
	Colon       // :
	ColonAssign // :=
	Arrow       // ->
)

var kindNames = [...]string{
	Invalid:      "invalid token",
	EOF:          "end of file",
	Ident:        "identifier",
	KwObject:     "'object'",
	KwCode:       "'code'",
	KwData:       "'data'",
	KwFunction:   "'function'",
	KwLet:        "'let'",
	KwIf:         "'if'",
	KwSwitch:     "'switch'",
	KwCase:       "'case'",
	KwDefault:    "'default'",
	KwFor:        "'for'",
	KwBreak:      "'break'",
	KwContinue:   "'continue'",
	KwLeave:      "'leave'",
	KwTrue:       "'true'",
	KwFalse:      "'false'",
	NumberLit:    "number literal",
	HexNumberLit: "hex number literal",
	StringLit:    "string literal",
	HexStringLit: "hex string literal",
	LBrace:       "'{'",
	RBrace:       "'}'",
	LParen:       "'('",
	RParen:       "')'",
	Comma:        "','",
	Colon:        "':'",
	ColonAssign:  "':='",
	Arrow:        "'->'",
}

// String returns a human-readable name suitable for "expected X, found Y" messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown token"
}

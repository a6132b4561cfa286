package lexer

import "yulc/internal/diag"

type Options struct {
	// Reporter observes the first lexical error; may be nil.
	Reporter diag.Reporter
	// KeepTrivia attaches whitespace and comments to the following token.
	KeepTrivia bool
}

package token

var keywords = map[string]Kind{
	"object":   KwObject,
	"code":     KwCode,
	"data":     KwData,
	"function": KwFunction,
	"let":      KwLet,
	"if":       KwIf,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"for":      KwFor,
	"break":    KwBreak,
	"continue": KwContinue,
	"leave":    KwLeave,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword reports whether ident is reserved. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

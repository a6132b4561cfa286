package format

import "encoding/hex"

const hexDigits = "0123456789abcdef"

// quote renders raw bytes as a string literal the lexer reads back unchanged.
func quote(b []byte) string {
	out := make([]byte, 0, len(b)+2)
	out = append(out, '"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			out = append(out, '\\', c)
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\t':
			out = append(out, '\\', 't')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c < 0x20 || c >= 0x7f:
			out = append(out, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}

func hexLiteral(b []byte) string {
	return `hex"` + hex.EncodeToString(b) + `"`
}

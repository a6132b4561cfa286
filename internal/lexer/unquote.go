package lexer

import (
	"encoding/hex"
	"errors"
	"strconv"
	"unicode/utf8"
)

var errBadLiteral = errors.New("malformed literal")

// Unquote decodes the text of a StringLit token (quotes included) into raw bytes.
func Unquote(text string) ([]byte, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return nil, errBadLiteral
	}
	body := text[1 : len(text)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(body) {
			return nil, errBadLiteral
		}
		switch body[i] {
		case '\\', '"', '\'':
			out = append(out, body[i])
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		case 'x':
			if i+3 > len(body) {
				return nil, errBadLiteral
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return nil, errBadLiteral
			}
			out = append(out, byte(v))
			i += 2
		case 'u':
			if i+5 > len(body) {
				return nil, errBadLiteral
			}
			v, err := strconv.ParseUint(body[i+1:i+5], 16, 16)
			if err != nil {
				return nil, errBadLiteral
			}
			out = utf8.AppendRune(out, rune(v))
			i += 4
		default:
			return nil, errBadLiteral
		}
	}
	return out, nil
}

// HexBytes decodes the text of a HexStringLit token.
func HexBytes(text string) ([]byte, error) {
	if len(text) < 5 || text[:3] != "hex" {
		return nil, errBadLiteral
	}
	return hex.DecodeString(text[4 : len(text)-1])
}

package symbols

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the optional annotation carried by typed identifiers and literals.
// The zero Type is the full unsigned word.
type Type struct {
	Bits   uint16
	Signed bool
	Bool   bool
}

// Word is the default 256-bit unsigned type.
var Word = Type{Bits: 256}

// IsWord reports whether t is the unannotated full-width type.
func (t Type) IsWord() bool {
	return t == Type{} || t == Word
}

// Width returns the bit width, 256 for the zero Type.
func (t Type) Width() int {
	if t.Bits == 0 {
		return 256
	}
	return int(t.Bits)
}

func (t Type) String() string {
	switch {
	case t.Bool:
		return "bool"
	case t.Signed:
		return fmt.Sprintf("int%d", t.Width())
	default:
		return fmt.Sprintf("u%d", t.Width())
	}
}

// ParseType recognises bool, u8..u256, uint8..uint256 and int8..int256.
func ParseType(name string) (Type, bool) {
	if name == "bool" {
		return Type{Bits: 1, Bool: true}, true
	}
	var digits string
	signed := false
	switch {
	case strings.HasPrefix(name, "uint"):
		digits = name[4:]
	case strings.HasPrefix(name, "int"):
		digits, signed = name[3:], true
	case strings.HasPrefix(name, "u"):
		digits = name[1:]
	default:
		return Type{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 8 || n > 256 || n%8 != 0 || digits[0] == '0' {
		return Type{}, false
	}
	return Type{Bits: uint16(n), Signed: signed}, true //nolint:gosec // n <= 256
}

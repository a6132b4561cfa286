package bignum

import (
	"fmt"
	"math/bits"
)

// ParseLiteral parses a decimal or 0x-prefixed hexadecimal number literal.
func ParseLiteral(s string) (Word, error) {
	base := uint32(10)
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	if s == "" {
		return Word{}, ErrParse
	}
	var out Word
	for i := range len(s) {
		d, ok := digitValue(s[i], base)
		if !ok {
			return Word{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		var carry uint32
		out, carry = mulAddSmall(out, base, d)
		if carry != 0 {
			return Word{}, ErrOverflow
		}
	}
	return out, nil
}

// mulAddSmall returns w*m + a and the carry out of the top limb.
func mulAddSmall(w Word, m, a uint32) (Word, uint32) {
	carry := a
	for i := range w {
		hi, lo := bits.Mul32(w[i], m)
		var c uint32
		lo, c = bits.Add32(lo, carry, 0)
		w[i] = lo
		carry = hi + c
	}
	return w, carry
}

// divModSmall returns w/d and w%d; d must be non-zero.
func divModSmall(w Word, d uint32) (Word, uint32) {
	var rem uint32
	for i := Limbs - 1; i >= 0; i-- {
		w[i], rem = bits.Div32(rem, w[i], d)
	}
	return w, rem
}

func digitValue(ch byte, base uint32) (uint32, bool) {
	var d uint32
	switch {
	case ch >= '0' && ch <= '9':
		d = uint32(ch - '0')
	case ch >= 'a' && ch <= 'f':
		d = uint32(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		d = uint32(ch-'A') + 10
	default:
		return 0, false
	}
	return d, d < base
}

package bignum

import (
	"fmt"
	"strings"
)

// String formats w in decimal.
func (w Word) String() string {
	if w.IsZero() {
		return "0"
	}
	const base = uint32(1_000_000_000)
	var parts []uint32
	for cur := w; !cur.IsZero(); {
		var r uint32
		cur, r = divModSmall(cur, base)
		parts = append(parts, r)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%09d", parts[i])
	}
	return sb.String()
}

// Hex formats w as a minimal 0x-prefixed hexadecimal number.
func (w Word) Hex() string {
	var sb strings.Builder
	sb.WriteString("0x")
	started := false
	for i := Limbs - 1; i >= 0; i-- {
		switch {
		case started:
			fmt.Fprintf(&sb, "%08x", w[i])
		case w[i] != 0:
			fmt.Fprintf(&sb, "%x", w[i])
			started = true
		}
	}
	if !started {
		sb.WriteByte('0')
	}
	return sb.String()
}

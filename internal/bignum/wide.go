package bignum

import "math/bits"

// wide holds 512-bit intermediates for full products and modular reductions.
type wide [2 * Limbs]uint32

func widen(w Word) wide {
	var out wide
	copy(out[:Limbs], w[:])
	return out
}

func (x wide) low() Word {
	var out Word
	copy(out[:], x[:Limbs])
	return out
}

func (x wide) high() Word {
	var out Word
	copy(out[:], x[Limbs:])
	return out
}

func (x wide) bitLen() int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return i*32 + bits.Len32(x[i])
		}
	}
	return 0
}

func (x wide) bit(i int) uint32 {
	return (x[i/32] >> (i % 32)) & 1
}

func (x *wide) shl1(in uint32) {
	carry := in
	for i := range x {
		next := x[i] >> 31
		x[i] = x[i]<<1 | carry
		carry = next
	}
}

func cmpWide(a, b wide) int {
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addWide(a, b wide) wide {
	var out wide
	var carry uint32
	for i := range out {
		out[i], carry = bits.Add32(a[i], b[i], carry)
	}
	return out
}

func subWide(a, b wide) wide {
	var out wide
	var borrow uint32
	for i := range out {
		out[i], borrow = bits.Sub32(a[i], b[i], borrow)
	}
	return out
}

// divmodWide is restoring shift-subtract division; d must be non-zero and
// below 2^511 so the running remainder never overflows.
func divmodWide(n, d wide) (q, r wide) {
	for i := n.bitLen() - 1; i >= 0; i-- {
		r.shl1(n.bit(i))
		if cmpWide(r, d) >= 0 {
			r = subWide(r, d)
			q[i/32] |= 1 << (i % 32)
		}
	}
	return q, r
}

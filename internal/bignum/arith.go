package bignum

import "math/bits"

func Add(a, b Word) Word {
	out, _ := AddCarry(a, b)
	return out
}

// AddCarry returns a+b mod 2^256 and whether the sum wrapped.
func AddCarry(a, b Word) (Word, bool) {
	var out Word
	var carry uint32
	for i := range out {
		out[i], carry = bits.Add32(a[i], b[i], carry)
	}
	return out, carry != 0
}

func Sub(a, b Word) Word {
	var out Word
	var borrow uint32
	for i := range out {
		out[i], borrow = bits.Sub32(a[i], b[i], borrow)
	}
	return out
}

// Mul returns the low 256 bits of a*b.
func Mul(a, b Word) Word {
	full := mulFull(a, b)
	return full.low()
}

// MulOverflow returns a*b mod 2^256 and whether the product wrapped.
func MulOverflow(a, b Word) (Word, bool) {
	full := mulFull(a, b)
	return full.low(), !full.high().IsZero()
}

func mulFull(a, b Word) wide {
	var out wide
	for i := range Limbs {
		if a[i] == 0 {
			continue
		}
		var carry uint32
		for j := range Limbs {
			hi, lo := bits.Mul32(a[i], b[j])
			var c uint32
			lo, c = bits.Add32(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add32(lo, carry, 0)
			hi += c
			out[i+j] = lo
			carry = hi
		}
		out[i+Limbs] = carry
	}
	return out
}

// Div is unsigned division; x/0 = 0.
func Div(a, b Word) Word {
	if b.IsZero() {
		return Word{}
	}
	q, _ := divmodWide(widen(a), widen(b))
	return q.low()
}

// Mod is unsigned modulo; x%0 = 0.
func Mod(a, b Word) Word {
	if b.IsZero() {
		return Word{}
	}
	_, r := divmodWide(widen(a), widen(b))
	return r.low()
}

// SDiv is signed division truncating toward zero; x/0 = 0.
func SDiv(a, b Word) Word {
	if b.IsZero() {
		return Word{}
	}
	q := Div(a.abs(), b.abs())
	if a.IsNeg() != b.IsNeg() {
		return q.Neg()
	}
	return q
}

// SMod is signed modulo; the result takes the sign of a.
func SMod(a, b Word) Word {
	if b.IsZero() {
		return Word{}
	}
	r := Mod(a.abs(), b.abs())
	if a.IsNeg() {
		return r.Neg()
	}
	return r
}

// Exp computes base^exp mod 2^256.
func Exp(base, exp Word) Word {
	result := One()
	for i := exp.BitLen() - 1; i >= 0; i-- {
		result = Mul(result, result)
		if exp.Bit(i) == 1 {
			result = Mul(result, base)
		}
	}
	return result
}

// AddMod computes (a+b) % n without intermediate wraparound; n = 0 yields 0.
func AddMod(a, b, n Word) Word {
	if n.IsZero() {
		return Word{}
	}
	sum := addWide(widen(a), widen(b))
	_, r := divmodWide(sum, widen(n))
	return r.low()
}

// MulMod computes (a*b) % n without intermediate wraparound; n = 0 yields 0.
func MulMod(a, b, n Word) Word {
	if n.IsZero() {
		return Word{}
	}
	_, r := divmodWide(mulFull(a, b), widen(n))
	return r.low()
}

func Lt(a, b Word) bool { return a.Cmp(b) < 0 }

func Gt(a, b Word) bool { return a.Cmp(b) > 0 }

// Slt compares as two's complement signed integers.
func Slt(a, b Word) bool {
	if a.IsNeg() != b.IsNeg() {
		return a.IsNeg()
	}
	return a.Cmp(b) < 0
}

func Sgt(a, b Word) bool { return Slt(b, a) }

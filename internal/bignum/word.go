package bignum

import (
	"errors"
	"math/bits"
)

// Limbs is the number of 32-bit limbs in a Word.
const Limbs = 8

// Bits is the width of a Word.
const Bits = Limbs * 32

var (
	// ErrOverflow indicates a literal that does not fit in 256 bits.
	ErrOverflow = errors.New("value does not fit in 256 bits")
	// ErrParse indicates malformed literal text.
	ErrParse = errors.New("invalid numeric format")
)

// Word is an unsigned 256-bit integer. The zero value is 0.
type Word [Limbs]uint32

func Zero() Word { return Word{} }

func One() Word { return Word{1} }

// Max returns 2^256-1.
func Max() Word {
	var w Word
	for i := range w {
		w[i] = ^uint32(0)
	}
	return w
}

func FromUint64(v uint64) Word {
	return Word{uint32(v), uint32(v >> 32)} //nolint:gosec // G115: limb split
}

// Bool returns 1 for true and 0 for false.
func Bool(b bool) Word {
	if b {
		return One()
	}
	return Word{}
}

func (w Word) IsZero() bool {
	return w == Word{}
}

// Uint64 returns the low 64 bits and whether the word fits in them.
func (w Word) Uint64() (uint64, bool) {
	v := uint64(w[1])<<32 | uint64(w[0])
	for _, limb := range w[2:] {
		if limb != 0 {
			return v, false
		}
	}
	return v, true
}

func (w Word) BitLen() int {
	for i := Limbs - 1; i >= 0; i-- {
		if w[i] != 0 {
			return i*32 + bits.Len32(w[i])
		}
	}
	return 0
}

// Bit returns bit i (0 = least significant).
func (w Word) Bit(i int) uint32 {
	if i < 0 || i >= Bits {
		return 0
	}
	return (w[i/32] >> (i % 32)) & 1
}

// Cmp compares as unsigned integers.
func (w Word) Cmp(v Word) int {
	for i := Limbs - 1; i >= 0; i-- {
		switch {
		case w[i] < v[i]:
			return -1
		case w[i] > v[i]:
			return 1
		}
	}
	return 0
}

// IsNeg reports whether the sign bit is set.
func (w Word) IsNeg() bool {
	return w[Limbs-1]>>31 == 1
}

// Neg returns the two's complement negation.
func (w Word) Neg() Word {
	return Sub(Word{}, w)
}

func (w Word) abs() Word {
	if w.IsNeg() {
		return w.Neg()
	}
	return w
}

// FitsBits reports whether w < 2^n.
func (w Word) FitsBits(n int) bool {
	return w.BitLen() <= n
}

// Mask returns the low n bits of w.
func (w Word) Mask(n int) Word {
	if n >= Bits {
		return w
	}
	if n <= 0 {
		return Word{}
	}
	return And(w, Sub(Shl(One(), uint(n)), One())) //nolint:gosec // n > 0
}

// MaxBits returns 2^n-1.
func MaxBits(n int) Word {
	return Max().Mask(n)
}

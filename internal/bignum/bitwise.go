package bignum

func And(a, b Word) Word {
	for i := range a {
		a[i] &= b[i]
	}
	return a
}

func Or(a, b Word) Word {
	for i := range a {
		a[i] |= b[i]
	}
	return a
}

func Xor(a, b Word) Word {
	for i := range a {
		a[i] ^= b[i]
	}
	return a
}

func Not(a Word) Word {
	for i := range a {
		a[i] = ^a[i]
	}
	return a
}

// Shl shifts left by n bits; n >= 256 yields 0.
func Shl(w Word, n uint) Word {
	if n >= Bits {
		return Word{}
	}
	limbShift, bitShift := int(n/32), n%32 //nolint:gosec // n < 256
	var out Word
	for i := Limbs - 1; i >= limbShift; i-- {
		v := w[i-limbShift] << bitShift
		if bitShift > 0 && i-limbShift-1 >= 0 {
			v |= w[i-limbShift-1] >> (32 - bitShift)
		}
		out[i] = v
	}
	return out
}

// Shr is a logical right shift; n >= 256 yields 0.
func Shr(w Word, n uint) Word {
	if n >= Bits {
		return Word{}
	}
	limbShift, bitShift := int(n/32), n%32 //nolint:gosec // n < 256
	var out Word
	for i := 0; i+limbShift < Limbs; i++ {
		v := w[i+limbShift] >> bitShift
		if bitShift > 0 && i+limbShift+1 < Limbs {
			v |= w[i+limbShift+1] << (32 - bitShift)
		}
		out[i] = v
	}
	return out
}

// Sar is an arithmetic right shift; n >= 256 yields 0 or all ones.
func Sar(w Word, n uint) Word {
	if !w.IsNeg() {
		return Shr(w, n)
	}
	if n >= Bits {
		return Max()
	}
	return Not(Shr(Not(w), n))
}

// ShiftAmount converts a word shift operand, saturating at 256.
func ShiftAmount(w Word) uint {
	v, ok := w.Uint64()
	if !ok || v >= Bits {
		return Bits
	}
	return uint(v)
}

// Byte returns the i-th byte of w counting from the most significant one.
func Byte(i, w Word) Word {
	idx, ok := i.Uint64()
	if !ok || idx >= 32 {
		return Word{}
	}
	return And(Shr(w, uint(8*(31-idx))), FromUint64(0xff))
}

// SignExtend extends the sign of the (b+1)-byte value in w.
func SignExtend(b, w Word) Word {
	idx, ok := b.Uint64()
	if !ok || idx >= 31 {
		return w
	}
	bit := int(8*idx + 7) //nolint:gosec // idx < 31
	mask := MaxBits(bit + 1)
	if w.Bit(bit) == 1 {
		return Or(w, Not(mask))
	}
	return And(w, mask)
}

package bignum

import "fmt"

// Bytes32 returns the big-endian encoding of w.
func (w Word) Bytes32() [32]byte {
	var out [32]byte
	for i := range Limbs {
		limb := w[Limbs-1-i]
		out[4*i] = byte(limb >> 24)
		out[4*i+1] = byte(limb >> 16)
		out[4*i+2] = byte(limb >> 8)
		out[4*i+3] = byte(limb)
	}
	return out
}

// FromBytes reads up to 32 big-endian bytes, right-aligned.
func FromBytes(b []byte) Word {
	if len(b) > 32 {
		b = b[len(b)-32:]
	}
	var buf [32]byte
	copy(buf[32-len(b):], b)
	var w Word
	for i := range Limbs {
		w[Limbs-1-i] = uint32(buf[4*i])<<24 | uint32(buf[4*i+1])<<16 | uint32(buf[4*i+2])<<8 | uint32(buf[4*i+3])
	}
	return w
}

// FromBytesLeft packs b left-aligned into a word, the layout of string
// literals. More than 32 bytes is an error.
func FromBytesLeft(b []byte) (Word, error) {
	if len(b) > 32 {
		return Word{}, fmt.Errorf("%w: %d bytes", ErrOverflow, len(b))
	}
	var buf [32]byte
	copy(buf[:], b)
	return FromBytes(buf[:]), nil
}

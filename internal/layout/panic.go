package layout

import (
	"fmt"

	"yulc/internal/bignum"
)

// PanicSelector is the 4-byte selector of Panic(uint256).
const PanicSelector = 0x4e487b71

// PanicDataSize is selector plus one word of cause code.
const PanicDataSize = 0x24

// PanicCode is the cause code carried by a runtime panic.
type PanicCode uint8

const (
	PanicOverflow      PanicCode = 0x11
	PanicDivByZero     PanicCode = 0x12
	PanicIndexOOB      PanicCode = 0x32
	PanicAllocOverflow PanicCode = 0x41
)

func (c PanicCode) String() string {
	switch c {
	case PanicOverflow:
		return "arithmetic overflow"
	case PanicDivByZero:
		return "division by zero"
	case PanicIndexOOB:
		return "index out of range"
	case PanicAllocOverflow:
		return "memory allocation overflow"
	default:
		return fmt.Sprintf("panic 0x%02x", uint8(c))
	}
}

// Word returns the code as a word.
func (c PanicCode) Word() bignum.Word { return bignum.FromUint64(uint64(c)) }

// SelectorWord is PanicSelector shifted into the top four bytes.
func SelectorWord() bignum.Word {
	return bignum.Shl(bignum.FromUint64(PanicSelector), 224)
}

// DecodePanic recognises revert data of the form selector ++ uint256 code.
func DecodePanic(data []byte) (PanicCode, bool) {
	if len(data) != PanicDataSize {
		return 0, false
	}
	sel := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if sel != PanicSelector {
		return 0, false
	}
	code := bignum.FromBytes(data[4:])
	v, ok := code.Uint64()
	if !ok || v > 0xff {
		return 0, false
	}
	return PanicCode(v), true
}

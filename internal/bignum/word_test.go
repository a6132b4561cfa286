package bignum

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, s string) Word {
	t.Helper()
	w, err := ParseLiteral(s)
	if err != nil {
		t.Fatalf("ParseLiteral(%q): %v", s, err)
	}
	return w
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		in, dec, hex string
	}{
		{"0", "0", "0x0"},
		{"42", "42", "0x2a"},
		{"0x2A", "42", "0x2a"},
		{"4294967296", "4294967296", "0x100000000"},
		{"1000000000000000000000", "1000000000000000000000", "0x3635c9adc5dea00000"},
		{
			"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			"115792089237316195423570985008687907853269984665640564039457584007913129639935",
			"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		},
	}
	for _, tt := range tests {
		w := mustParse(t, tt.in)
		if got := w.String(); got != tt.dec {
			t.Errorf("%s: String() = %s, want %s", tt.in, got, tt.dec)
		}
		if got := w.Hex(); got != tt.hex {
			t.Errorf("%s: Hex() = %s, want %s", tt.in, got, tt.hex)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseLiteral("0x10000000000000000000000000000000000000000000000000000000000000000"); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
	if _, err := ParseLiteral("115792089237316195423570985008687907853269984665640564039457584007913129639936"); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow for 2^256, got %v", err)
	}
	if _, err := ParseLiteral("12a"); !errors.Is(err, ErrParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestArithmeticWraps(t *testing.T) {
	top := Max()
	if got := Add(top, One()); !got.IsZero() {
		t.Errorf("top+1 = %s, want 0", got)
	}
	if _, carry := AddCarry(top, One()); !carry {
		t.Error("expected carry from top+1")
	}
	if got := Sub(Zero(), One()); got != top {
		t.Errorf("0-1 = %s, want top", got.Hex())
	}
	if got := Mul(top, top); got != One() {
		t.Errorf("top*top = %s, want 1", got)
	}
	if _, over := MulOverflow(FromUint64(1<<40), Shl(One(), 220)); !over {
		t.Error("expected mul overflow")
	}
	if got := Mul(FromUint64(123456789), FromUint64(987654321)); got.String() != "121932631112635269" {
		t.Errorf("mul = %s", got)
	}
}

func TestDivision(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b Word) Word
		a, b Word
		want string
	}{
		{"div", Div, FromUint64(100), FromUint64(7), "14"},
		{"mod", Mod, FromUint64(100), FromUint64(7), "2"},
		{"div by zero", Div, FromUint64(1), Zero(), "0"},
		{"mod by zero", Mod, FromUint64(1), Zero(), "0"},
		{"sdiv neg", SDiv, FromUint64(7).Neg(), FromUint64(2), FromUint64(3).Neg().String()},
		{"smod neg", SMod, FromUint64(7).Neg(), FromUint64(2), FromUint64(1).Neg().String()},
		{"big div", Div, Max(), FromUint64(0xffffffff), "26959946673427741531515197488526605382048662297355296634326893985793"},
	}
	for _, tt := range tests {
		if got := tt.op(tt.a, tt.b).String(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestModularOps(t *testing.T) {
	top := Max()
	if got := AddMod(top, FromUint64(2), FromUint64(10)); got.String() != "7" {
		// 2^256+1 mod 10 = 6+1
		t.Errorf("addmod = %s, want 7", got)
	}
	if got := MulMod(top, top, FromUint64(12)); got.String() != "9" {
		// (2^256-1)^2 mod 12; 2^256-1 = 3 mod 12
		t.Errorf("mulmod = %s, want 9", got)
	}
	if got := Exp(FromUint64(2), FromUint64(10)); got.String() != "1024" {
		t.Errorf("exp = %s", got)
	}
	if got := Exp(FromUint64(2), FromUint64(256)); !got.IsZero() {
		t.Errorf("2^256 = %s, want 0", got)
	}
}

func TestShiftsAndBytes(t *testing.T) {
	one := One()
	if got := Shl(one, 255); got.Bit(255) != 1 || got.BitLen() != 256 {
		t.Errorf("shl 255 = %s", got.Hex())
	}
	if got := Shl(one, 256); !got.IsZero() {
		t.Errorf("shl 256 = %s", got.Hex())
	}
	if got := Shr(Shl(FromUint64(0xabc), 100), 100); got.String() != FromUint64(0xabc).String() {
		t.Errorf("shr(shl) = %s", got.Hex())
	}
	if got := Sar(FromUint64(8).Neg(), 1); got != FromUint64(4).Neg() {
		t.Errorf("sar -8 >> 1 = %s", got.Hex())
	}
	if got := Sar(one.Neg(), 300); got != Max() {
		t.Errorf("sar -1 >> 300 = %s", got.Hex())
	}
	if got := Byte(FromUint64(31), FromUint64(0x1234)); got.String() != "52" {
		t.Errorf("byte 31 = %s, want 52", got)
	}
	if got := Byte(FromUint64(32), Max()); !got.IsZero() {
		t.Errorf("byte 32 = %s", got)
	}
	if got := SignExtend(Zero(), FromUint64(0xff)); got != Max() {
		t.Errorf("signextend(0, 0xff) = %s", got.Hex())
	}
	if got := SignExtend(Zero(), FromUint64(0x17f)); got.String() != "127" {
		t.Errorf("signextend(0, 0x17f) = %s", got)
	}
}

func TestSignedCompare(t *testing.T) {
	neg := One().Neg()
	if !Slt(neg, One()) || Slt(One(), neg) {
		t.Error("slt mismatch")
	}
	if !Sgt(One(), neg) {
		t.Error("sgt mismatch")
	}
	if !Gt(neg, One()) {
		t.Error("unsigned gt mismatch")
	}
}

func TestBytesLayout(t *testing.T) {
	w, err := FromBytesLeft([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	b := w.Bytes32()
	if b[0] != 'a' || b[2] != 'c' || b[3] != 0 || b[31] != 0 {
		t.Errorf("left alignment broken: %x", b)
	}
	if _, err := FromBytesLeft(make([]byte, 33)); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected overflow for 33 bytes, got %v", err)
	}
	if got := FromBytes([]byte{0x01, 0x00}); got.String() != "256" {
		t.Errorf("FromBytes = %s", got)
	}
	if got := FromUint64(255).Mask(4); got.String() != "15" {
		t.Errorf("mask = %s", got)
	}
	if !FromUint64(255).FitsBits(8) || FromUint64(256).FitsBits(8) {
		t.Error("FitsBits mismatch")
	}
}

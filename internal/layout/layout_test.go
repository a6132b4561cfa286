package layout

import "testing"

func TestAlignUp(t *testing.T) {
	tgt := EVM()
	tests := []struct {
		in, want uint64
		ok       bool
	}{
		{0, 0, true},
		{1, 32, true},
		{32, 32, true},
		{33, 64, true},
		{^uint64(0), 0, false},
	}
	for _, tt := range tests {
		got, ok := tgt.AlignUp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AlignUp(%d) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDecodePanic(t *testing.T) {
	sel := SelectorWord().Bytes32()
	data := make([]byte, PanicDataSize)
	copy(data, sel[:4])
	data[PanicDataSize-1] = byte(PanicIndexOOB)
	code, ok := DecodePanic(data)
	if !ok || code != PanicIndexOOB {
		t.Fatalf("DecodePanic = %v, %v", code, ok)
	}
	data[0] = 0
	if _, ok := DecodePanic(data); ok {
		t.Fatal("wrong selector must not decode")
	}
	if _, ok := DecodePanic(data[:4]); ok {
		t.Fatal("short data must not decode")
	}
}

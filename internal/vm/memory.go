package vm

import (
	"fmt"

	"yulc/internal/bignum"
)

// Memory is byte-addressed, zero-initialised and grows in whole words.
type Memory struct {
	data  []byte
	limit uint64
}

func newMemory(limit uint64) *Memory {
	return &Memory{limit: limit}
}

// Size returns the current size in bytes (always a multiple of 32).
func (m *Memory) Size() uint64 { return uint64(len(m.data)) }

// Bytes exposes the backing slice; callers must not retain it across steps.
func (m *Memory) Bytes() []byte { return m.data }

// span converts a word range to offsets and grows memory to cover it.
func (m *Memory) span(off, size bignum.Word) (start, end uint64, err error) {
	if size.IsZero() {
		return 0, 0, nil
	}
	o, ok1 := off.Uint64()
	s, ok2 := size.Uint64()
	if !ok1 || !ok2 || o > m.limit || s > m.limit-o {
		return 0, 0, fmt.Errorf("memory range [%s, +%s) beyond limit %d", off.Hex(), size.Hex(), m.limit)
	}
	end = o + s
	if need := (end + 31) / 32 * 32; need > uint64(len(m.data)) {
		grown := make([]byte, need)
		copy(grown, m.data)
		m.data = grown
	}
	return o, end, nil
}

func (m *Memory) Load(off bignum.Word) (bignum.Word, error) {
	start, end, err := m.span(off, bignum.FromUint64(32))
	if err != nil {
		return bignum.Word{}, err
	}
	return bignum.FromBytes(m.data[start:end]), nil
}

func (m *Memory) Store(off, v bignum.Word) error {
	start, _, err := m.span(off, bignum.FromUint64(32))
	if err != nil {
		return err
	}
	b := v.Bytes32()
	copy(m.data[start:], b[:])
	return nil
}

func (m *Memory) Store8(off, v bignum.Word) error {
	start, _, err := m.span(off, bignum.One())
	if err != nil {
		return err
	}
	b := v.Bytes32()
	m.data[start] = b[31]
	return nil
}

// Read copies size bytes starting at off.
func (m *Memory) Read(off, size bignum.Word) ([]byte, error) {
	start, end, err := m.span(off, size)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), m.data[start:end]...), nil
}

// Write copies src to off, zero-filling up to size bytes.
func (m *Memory) Write(off, size bignum.Word, src []byte) error {
	start, end, err := m.span(off, size)
	if err != nil {
		return err
	}
	dst := m.data[start:end]
	n := copy(dst, src)
	clear(dst[n:])
	return nil
}

// Package layout fixes the memory conventions shared by the runtime library,
// the backends and the VM.
package layout

import "yulc/internal/bignum"

// Target describes the memory model of generated programs.
type Target struct {
	Name               string
	WordSize           uint64 // bytes per word
	ScratchEnd         uint64 // [0, ScratchEnd) is scratch space
	FreePointerSlot    uint64 // memory cell holding the free pointer
	InitialFreePointer uint64 // first byte handed out by the allocator
	MaxPointer         uint64 // allocations beyond this panic
}

// EVM is the only memory model so far.
func EVM() Target {
	return Target{
		Name:               "evm",
		WordSize:           32,
		ScratchEnd:         0x40,
		FreePointerSlot:    0x40,
		InitialFreePointer: 0x80,
		MaxPointer:         0xffffffffffffffff,
	}
}

// AlignUp rounds n up to a whole number of words.
func (t Target) AlignUp(n uint64) (uint64, bool) {
	rem := n % t.WordSize
	if rem == 0 {
		return n, true
	}
	pad := t.WordSize - rem
	if n > ^uint64(0)-pad {
		return 0, false
	}
	return n + pad, true
}

// Word helpers for emitters.
func (t Target) FreePointerWord() bignum.Word { return bignum.FromUint64(t.FreePointerSlot) }
func (t Target) MaxPointerWord() bignum.Word  { return bignum.FromUint64(t.MaxPointer) }

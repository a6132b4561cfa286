package mir

import (
	"yulc/internal/bignum"
	"yulc/internal/target"
)

type InstrKind uint8

const (
	InstrInvalid InstrKind = iota
	InstrConst
	InstrParam
	InstrBinary
	InstrUnary
	InstrLoad
	InstrStore
	InstrMemLoad
	InstrMemStore
	InstrIntrinsic
	InstrCall
)

// Instr is one instruction. Dst lists the values it defines (empty for
// stores, several for multi-result calls).
type Instr struct {
	Kind InstrKind
	Dst  []target.ValueID
	Args []target.ValueID

	Const  bignum.Word
	Param  int
	Bin    target.BinOp
	Un     target.UnOp
	Slot   target.SlotID
	Width  target.Width
	Name   string // intrinsic
	Callee target.FuncID
}

package target

// BinOp is a two-operand word instruction. Operand order follows the source:
// Binary(Sub, a, b) computes a-b, Binary(Shl, shift, value) shifts value.
type BinOp uint8

const (
	OpInvalid BinOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpSDiv
	OpMod
	OpSMod
	OpExp
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpSar
	OpLt
	OpGt
	OpSlt
	OpSgt
	OpEq
	OpByte
	OpSignExtend
)

var binOpNames = [...]string{
	OpInvalid:    "invalid",
	OpAdd:        "add",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpSDiv:       "sdiv",
	OpMod:        "mod",
	OpSMod:       "smod",
	OpExp:        "exp",
	OpAnd:        "and",
	OpOr:         "or",
	OpXor:        "xor",
	OpShl:        "shl",
	OpShr:        "shr",
	OpSar:        "sar",
	OpLt:         "lt",
	OpGt:         "gt",
	OpSlt:        "slt",
	OpSgt:        "sgt",
	OpEq:         "eq",
	OpByte:       "byte",
	OpSignExtend: "signextend",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "invalid"
}

// IsCompare reports whether the result is 0 or 1.
func (op BinOp) IsCompare() bool {
	switch op {
	case OpLt, OpGt, OpSlt, OpSgt, OpEq:
		return true
	}
	return false
}

// UnOp is a one-operand word instruction.
type UnOp uint8

const (
	OpNot UnOp = iota + 1
	OpIsZero
)

func (op UnOp) String() string {
	switch op {
	case OpNot:
		return "not"
	case OpIsZero:
		return "iszero"
	default:
		return "invalid"
	}
}

// Width of a memory store in bits.
type Width uint16

const (
	Width8   Width = 8
	Width256 Width = 256
)

// AbortKind selects the abnormal (or final) termination primitive.
type AbortKind uint8

const (
	AbortRevert AbortKind = iota + 1
	AbortReturn
	AbortStop
	AbortInvalid
)

func (k AbortKind) String() string {
	switch k {
	case AbortRevert:
		return "revert"
	case AbortReturn:
		return "return"
	case AbortStop:
		return "stop"
	case AbortInvalid:
		return "invalid"
	default:
		return "abort?"
	}
}

// HasData reports whether the primitive carries an (offset, size) memory range.
func (k AbortKind) HasData() bool {
	return k == AbortRevert || k == AbortReturn
}

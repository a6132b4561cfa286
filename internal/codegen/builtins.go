package codegen

import (
	"yulc/internal/rtlib"
	"yulc/internal/target"
)

type builtinKind uint8

const (
	builtinBinary builtinKind = iota + 1
	builtinUnary
	builtinMLoad
	builtinMStore
	builtinIntrinsic
	builtinAbort
	builtinPop
	builtinDataSize
	builtinDataOffset
)

// Builtin is an instruction of the catalog with a fixed arity.
type Builtin struct {
	Name    string
	Args    int
	Results int

	kind  builtinKind
	bin   target.BinOp
	un    target.UnOp
	width target.Width
	abort target.AbortKind
}

var builtins = func() map[string]Builtin {
	m := make(map[string]Builtin, 64)
	add := func(b Builtin) { m[b.Name] = b }

	for _, op := range []target.BinOp{
		target.OpAdd, target.OpSub, target.OpMul, target.OpDiv, target.OpSDiv,
		target.OpMod, target.OpSMod, target.OpExp, target.OpAnd, target.OpOr,
		target.OpXor, target.OpShl, target.OpShr, target.OpSar, target.OpLt,
		target.OpGt, target.OpSlt, target.OpSgt, target.OpEq, target.OpByte,
		target.OpSignExtend,
	} {
		add(Builtin{Name: op.String(), Args: 2, Results: 1, kind: builtinBinary, bin: op})
	}
	add(Builtin{Name: "not", Args: 1, Results: 1, kind: builtinUnary, un: target.OpNot})
	add(Builtin{Name: "iszero", Args: 1, Results: 1, kind: builtinUnary, un: target.OpIsZero})

	add(Builtin{Name: "mload", Args: 1, Results: 1, kind: builtinMLoad})
	add(Builtin{Name: "mstore", Args: 2, kind: builtinMStore, width: target.Width256})
	add(Builtin{Name: "mstore8", Args: 2, kind: builtinMStore, width: target.Width8})

	for _, name := range target.IntrinsicNames() {
		sig, _ := target.Intrinsic(name)
		add(Builtin{Name: name, Args: sig.Args, Results: sig.Results, kind: builtinIntrinsic})
	}

	add(Builtin{Name: "revert", Args: 2, kind: builtinAbort, abort: target.AbortRevert})
	add(Builtin{Name: "return", Args: 2, kind: builtinAbort, abort: target.AbortReturn})
	add(Builtin{Name: "stop", kind: builtinAbort, abort: target.AbortStop})
	add(Builtin{Name: "invalid", kind: builtinAbort, abort: target.AbortInvalid})

	add(Builtin{Name: "pop", Args: 1, kind: builtinPop})
	add(Builtin{Name: "datasize", Args: 1, Results: 1, kind: builtinDataSize})
	add(Builtin{Name: "dataoffset", Args: 1, Results: 1, kind: builtinDataOffset})
	return m
}()

// LookupBuiltin finds an instruction builtin. Runtime helpers are separate,
// see rtlib.Lookup.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Catalog is the builtin set handed to symbols.Build.
type Catalog struct{}

func (Catalog) IsBuiltin(name string) bool {
	if _, ok := builtins[name]; ok {
		return true
	}
	return rtlib.IsHelper(name)
}

// BuiltinNames lists the instruction builtins; order is unspecified.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	return out
}

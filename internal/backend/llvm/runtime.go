package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"yulc/internal/target"
)

type runtimeDecl struct {
	name   string
	ret    types.Type
	params int
}

// runtimeDecls lists the word-level runtime the generated module links against.
func runtimeDecls() []runtimeDecl {
	decls := []runtimeDecl{
		{name: "rt_mload", ret: word, params: 1},
		{name: "rt_mstore", ret: types.Void, params: 2},
		{name: "rt_mstore8", ret: types.Void, params: 2},
		{name: "rt_exp", ret: word, params: 2},
		{name: "rt_sdiv", ret: word, params: 2},
		{name: "rt_smod", ret: word, params: 2},
		{name: "rt_byte", ret: word, params: 2},
		{name: "rt_signextend", ret: word, params: 2},
		{name: "rt_revert", ret: types.Void, params: 2},
		{name: "rt_return", ret: types.Void, params: 2},
		{name: "rt_stop", ret: types.Void},
		{name: "rt_invalid", ret: types.Void},
	}
	for _, name := range target.IntrinsicNames() {
		sig, _ := target.Intrinsic(name)
		ret := types.Type(types.Void)
		if sig.Results == 1 {
			ret = word
		}
		decls = append(decls, runtimeDecl{name: "rt_" + name, ret: ret, params: sig.Args})
	}
	return decls
}

func runtimeSigMap() map[string]runtimeDecl {
	decls := runtimeDecls()
	m := make(map[string]runtimeDecl, len(decls))
	for _, d := range decls {
		m[d.name] = d
	}
	return m
}

// runtime returns the declaration of a runtime function, adding it to the
// module the first time it is referenced.
func (b *Builder) runtime(name string) *ir.Func {
	if fn, ok := b.externs[name]; ok {
		return fn
	}
	d, ok := b.runtimeSigs[name]
	if !ok {
		panic("llvm: unknown runtime function " + name)
	}
	params := make([]*ir.Param, d.params)
	for i := range params {
		params[i] = ir.NewParam("", word)
	}
	fn := b.mod.NewFunc(d.name, d.ret, params...)
	b.externs[name] = fn
	return fn
}

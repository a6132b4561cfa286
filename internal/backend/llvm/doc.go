// Package llvm implements target.Builder on top of github.com/llir/llvm.
//
// Words are i256. Variables are allocas in the entry block. Memory, storage,
// environment queries and program termination are calls to rt_* runtime
// functions declared on first use; a function with several results returns
// an anonymous struct.
package llvm

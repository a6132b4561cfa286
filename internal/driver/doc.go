// Package driver runs the compiler pipeline for one source unit (lex, parse,
// resolve, codegen, emit), compiles batches of units in parallel and keeps
// emitted target IR in an on-disk cache.
package driver

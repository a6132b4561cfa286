// Package codegen lowers a resolved unit to target IR through target.Builder.
//
// Every variable lives in a function-local slot; control flow becomes basic
// blocks. Builtins (instruction catalog and runtime helpers) resolve before
// user functions. The first error aborts the whole unit: nothing is returned
// on failure.
package codegen

// Package target declares the backend-neutral builder the code generator
// emits through. Backends (internal/mir, internal/backend/llvm) implement
// Builder; codegen never sees their concrete types.
//
// Every value is a 256-bit word. Handles are small integers scoped to one
// Builder.
package target

// Package rtlib is the builtin runtime library: a fixed catalog of helpers
// (allocator, checked arithmetic, bounds-checked indexing, ABI value
// encode/decode, panic emitters) expanded inline at the call site through
// target.Builder.
//
// Checked helpers exist for every width N in 8..256 step 8, spelled
// checked_<op>_t_uint<N>. Failures revert with Panic(uint256) data; see
// internal/layout for the codes.
package rtlib

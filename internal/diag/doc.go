// Package diag defines the diagnostic model shared by every compiler stage.
//
// # Data model
//
// Diagnostic is the central record: Severity, a numeric Code grouped by stage
// (LEX 1xxx, SYN 2xxx, BLD 3xxx, GEN 4xxx, PRJ 5xxx), a short Message, the
// Primary span and optional Notes.
//
// # First error wins
//
// The lexer, parser, context builder and code generator stop at the first error
// they find. They return it as *Error, which also carries the Stage, so callers
// can use errors.As to recover the Diagnostic. A Reporter may be attached to a
// stage to observe the same diagnostic (the driver collects them into a Bag for
// rendering by internal/diagfmt).
//
// Package diag does not format or print anything.
package diag

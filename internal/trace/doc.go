// Package trace provides structured tracing for the yulc compiler.
//
// Tracing is yulc's logging: every driver stage opens a span, the VM can
// emit node-level points, and failures can dump the ring buffer.
//
// # Usage
//
//	yulc build --trace=- --trace-level=phase src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Levels off < error < phase < detail < debug select which scopes are
// emitted: phase shows driver and pass spans, detail adds per-unit spans,
// debug adds node-level events (VM steps).
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace

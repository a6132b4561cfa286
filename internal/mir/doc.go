// Package mir is the in-memory target IR: functions of basic blocks holding
// word instructions over function-local values and slots.
//
// Builder implements target.Builder; DumpModule prints a module; Validate
// checks structural invariants. internal/vm executes modules directly.
package mir

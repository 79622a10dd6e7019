// Package synth is the record synthesizer: it compiles record
// specifications into in-memory record types with construction,
// representation, equality, and opt-in ordering behavior, without
// hand-written per-record code.
//
// Key capabilities:
//   - Construction with defaults and per-instance default factories
//   - Declaration-order representation and short-circuit equality
//   - Lexicographic ordering with strict cross-type rejection
//   - Immutable mode freezing fields at construction
//   - Nested records resolved through a Registry, cycle-checked
package synth

// Package schema defines record specifications: ordered field declaration
// lists with kinds, defaults, default factories, and behavior flags.
//
// Key capabilities:
//   - YAML schema file loading with normalization
//   - Structural validation with full diagnostics (not first-error-wins)
//   - Kind system with orderability rules
//   - Nested record references between declared specs
package schema

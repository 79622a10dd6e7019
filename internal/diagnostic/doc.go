// Package diagnostic provides structured warnings, errors, and
// explanations for schema validation and record compilation.
//
// Key capabilities:
//   - Duplicate/invalid field declaration errors
//   - Default value coercion warnings
//   - Ordering-over-unorderable-kind errors
//   - Nested record resolution reports
package diagnostic

// Package common provides small shared helpers:
//   - Generic slice helpers (IsEmpty, First)
//   - Shared string constants
package common

// Package gen emits Go source for record specifications: a struct per
// record plus a constructor enforcing required fields, functional options
// for defaulted fields, String, Equal, and opt-in Compare methods.
//
// Output is gofmt-formatted and deterministic; records are emitted in
// dependency order so nested record structs exist before use.
package gen

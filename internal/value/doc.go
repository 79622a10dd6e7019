// Package value implements the runtime representation of field values:
// coercion into canonical Go types, pairwise equality, lexicographic
// ordering, and the textual rendering used by instance representations.
package value

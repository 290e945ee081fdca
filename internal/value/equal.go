package value

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// compareOptions treat nil and empty maps/arrays as equal.
// Dates compare through Date.Equal, which cmp picks up automatically.
var compareOptions = []cmp.Option{
	cmpopts.EquateEmpty(),
}

// Equal reports whether two values are structurally equal.
// Variants must match exactly: Int(1) is not equal to Float(1).
// Map key order is irrelevant; Array order is significant.
func Equal(a, b Value) bool {
	return cmp.Equal(a, b, compareOptions...)
}

// Diff returns a human-readable report of the differences between two values,
// or an empty string when they are equal.
func Diff(want, got Value) string {
	return cmp.Diff(want, got, compareOptions...)
}

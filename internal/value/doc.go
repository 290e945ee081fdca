// Package value provides the value model for search query documents.
//
// This package contains the value types and their wire encoding only. All
// other internal packages import value; value imports nothing internal. This
// keeps the value model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Value is sealed: only String, Int, Float, Bool, Date, Map and Array implement it
//   - No null variant; absence is modelled by omitting keys, never by a nil value
//   - Map keys are unique and unordered; encoding sorts them for determinism
//   - Every Date carries its own wire format, there is no global date strategy
package value

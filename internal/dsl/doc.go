// Package dsl provides the named fragments of the search query language.
//
// Every component here is a thin wrapper over the compose engine: it
// produces a single-key map (or, for clause containers, compacts an array
// first) and decides when it is omitted. Omission is uniform:
//
//   - Key, Term and TermsOR are omitted when their value is absent or an
//     empty map or array. Scalars such as 0 and "" are never omitted.
//   - Dict, Query, Bool and Aggs are omitted when their body is empty.
//   - Should, Must, MustNot, Filter, Sort and FunctionsList drop empty
//     elements and are omitted when nothing remains.
//   - Value, MinimumShouldMatch, Boost, BoostMode, ScoreMode, FunctionScore
//     and Agg are never omitted.
package dsl

// Package template compiles declarative query templates into component trees.
//
// A template is a YAML, TOML or CUE document with three top-level fields:
//
//	name: products
//	description: product search
//	fragments:
//	  - query:
//	      - bool:
//	          - filter:
//	              - terms_and: {field: tag, values: $tags}
//	          - when:
//	              param: owner
//	              then:
//	                - must:
//	                    - term: {field: owner, value: $owner}
//	  - pagination: {from: $from, size: 20}
//
// Each fragment is a single-key map naming its kind. Map kinds mirror the
// dsl package (key, dict, query, bool, should, must, must_not, filter,
// minimum_should_match, function_score, functions, boost, boost_mode,
// score_mode, pagination, term, terms_or, knn, sort, aggs, agg) plus literal,
// when and each. Inside should, must, must_not, filter, functions, sort and
// knn filters the array kinds terms_and, function and sort_field are also
// accepted, and any map kind becomes a single element.
//
// PARAMETERS:
//
// A string of the form $name is replaced by the parameter name. A missing
// parameter is absent: the enclosing key or element is dropped, and a term
// with an absent value is omitted. $$ escapes a literal dollar sign.
//
// when selects between then and else by whether its param is set, meaning
// present and not false, "" or an empty list or map. each repeats do once per
// element of a list parameter, binding the element to $<as>.
//
// Both branches of a when are compiled, so a malformed template is rejected
// whatever the parameters are.
package template

// Package compose provides the composition engine for query documents.
//
// A query document is assembled from small immutable components. Each
// component has one of two capabilities:
//
//	MapComponent    MakeMap() value.Map      (dict-shaped fragments)
//	ArrayComponent  MakeArray() []value.Map  (array-shaped fragments)
//
// Composition nodes combine children into larger components. They own their
// children by value and never mutate the maps their children produce, so a
// component can be evaluated any number of times, from any goroutine, with the
// same result.
//
// MAP COMPOSITION:
//
//	Merge(a, b)        union of both maps, b wins on key collision
//	Dict(parts...)     left fold of Merge over parts, starting from Empty
//	Some/None/When     optional fragment, absent produces an empty map
//	First/Second/IfElse either-or fragment selected at construction time
//	MergeEach          one fragment per item, merged in item order
//
// Empty is the identity of Merge: Merge(a, Empty{}) and Merge(Empty{}, a)
// both produce a's map. Because every merge resolves collisions in favour of
// the later fragment, any grouping of a chain of merges produces the same map.
//
// ARRAY COMPOSITION:
//
//	Item(m)            one element holding m's map
//	List(parts...)     concatenation in order; nested arrays are spliced
//	Items(maps...)     List of Item
//	SomeList/NoneList/WhenList   optional array, absent contributes nothing
//	FirstList/SecondList/IfElseList  either-or array
//	Each/EachItem      one fragment per item, concatenated in item order
//	Compact(a)         a's elements with empty maps removed
//
// ROOT:
//
// Build collects the top-level fragments into a Root. The root never wraps
// its document implicitly: an empty root produces {}. Use Wrapped to place the
// document under a top-level key unconditionally.
//
// Example:
//
//	root := compose.Build(
//	    dsl.Query(
//	        dsl.Bool(
//	            dsl.Filter(dsl.TermsAND("tag", value.Strings(tags...))),
//	            compose.When(minimum > 0, func() dsl.KeyValue {
//	                return dsl.MinimumShouldMatch(minimum)
//	            }),
//	        ),
//	    ),
//	    dsl.Pagination(dsl.From(10), dsl.Size(20)),
//	)
//	data, err := root.Encode()
package compose

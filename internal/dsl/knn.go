package dsl

import (
	"github.com/roach88/esquery/internal/compose"
	"github.com/roach88/esquery/internal/value"
)

// KNearestNeighbor produces a {"knn": {...}} search.
type KNearestNeighbor struct {
	field   string
	vector  value.Array
	options value.Map
	filter  compose.ArrayComponent
}

// KNN searches field for the neighbours of vector. Integer vectors are
// converted to floating point. Options such as "k" or "num_candidates" are
// merged into the knn body but cannot replace "field", "query_vector" or
// "filter". The filter key is present only when the compacted filter is
// non-empty.
func KNN[N value.Number](field string, vector []N, options value.Map, filter ...compose.ArrayComponent) KNearestNeighbor {
	return KNearestNeighbor{
		field:   field,
		vector:  value.Floats(vector...),
		options: options,
		filter:  compose.List(filter...),
	}
}

// MakeMap implements compose.MapComponent.
func (k KNearestNeighbor) MakeMap() value.Map {
	body := k.options.Clone()
	body["field"] = value.String(k.field)
	body["query_vector"] = k.vector
	delete(body, "filter")
	if filter := compose.Compact(k.filter); len(filter) > 0 {
		body["filter"] = compose.ToArray(filter)
	}
	return value.Map{"knn": body}
}

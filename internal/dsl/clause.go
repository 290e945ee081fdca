package dsl

import (
	"github.com/roach88/esquery/internal/compose"
	"github.com/roach88/esquery/internal/value"
)

// Clause wraps an array of maps under a single key. Empty elements are
// dropped, and the clause is omitted when none remain.
type Clause struct {
	name string
	body compose.ArrayComponent
}

// NewClause builds a clause container named name.
func NewClause(name string, body ...compose.ArrayComponent) Clause {
	return Clause{name: name, body: compose.List(body...)}
}

// Should produces {"should": [...]}.
func Should(body ...compose.ArrayComponent) Clause {
	return NewClause("should", body...)
}

// Must produces {"must": [...]}.
func Must(body ...compose.ArrayComponent) Clause {
	return NewClause("must", body...)
}

// MustNot produces {"must_not": [...]}.
func MustNot(body ...compose.ArrayComponent) Clause {
	return NewClause("must_not", body...)
}

// Filter produces {"filter": [...]}.
func Filter(body ...compose.ArrayComponent) Clause {
	return NewClause("filter", body...)
}

// Sort produces {"sort": [...]}.
func Sort(body ...compose.ArrayComponent) Clause {
	return NewClause("sort", body...)
}

// FunctionsList produces {"functions": [...]}.
func FunctionsList(body ...compose.ArrayComponent) Clause {
	return NewClause("functions", body...)
}

// MakeMap implements compose.MapComponent.
func (c Clause) MakeMap() value.Map {
	elems := compose.Compact(c.body)
	if len(elems) == 0 {
		return value.Map{}
	}
	return value.Map{c.name: compose.ToArray(elems)}
}

// Function is one entry of a FunctionsList.
func Function(fn value.Map) compose.Element {
	return compose.Item(compose.Literal(fn))
}

// SortField is one entry of a Sort: {field: {"order": order}}.
func SortField(field string, order SortOrder) compose.Element {
	return compose.Item(Value(field, value.Map{"order": value.String(order)}))
}

package dsl

import (
	"github.com/roach88/esquery/internal/compose"
	"github.com/roach88/esquery/internal/value"
)

// Term produces {"term": {field: v}}. It is omitted when v is nil.
func Term(field string, v value.Value) KeyValue {
	if v == nil {
		return KeyValue{}
	}
	return Key("term", value.Map{field: v})
}

// TermsOR produces {"terms": {field: values}}, matching any of values.
// It is omitted when values is empty.
func TermsOR(field string, values value.Array) KeyValue {
	if len(values) == 0 {
		return KeyValue{}
	}
	return Key("terms", value.Map{field: values})
}

// TermsAll produces one term element per value.
type TermsAll struct {
	field  string
	values value.Array
}

// TermsAND matches all of values: one {"term": {field: v}} element each.
// Use it inside an array clause such as Filter.
func TermsAND(field string, values value.Array) TermsAll {
	return TermsAll{field: field, values: values}
}

// MakeArray implements compose.ArrayComponent.
func (t TermsAll) MakeArray() []value.Map {
	out := make([]value.Map, 0, len(t.values))
	for _, v := range t.values {
		out = append(out, Term(t.field, v).MakeMap())
	}
	return out
}

var _ compose.ArrayComponent = TermsAll{}

package dsl

import (
	"github.com/roach88/esquery/internal/compose"
	"github.com/roach88/esquery/internal/value"
)

// KeyValue produces {name: value}.
type KeyValue struct {
	name      string
	value     value.Value
	keepEmpty bool
}

// Key produces {name: v}. It is omitted when v is nil or an empty map or array.
func Key(name string, v value.Value) KeyValue {
	return KeyValue{name: name, value: v}
}

// Value produces {name: v} even when v is an empty map or array.
// A nil v is still omitted.
func Value(name string, v value.Value) KeyValue {
	return KeyValue{name: name, value: v, keepEmpty: true}
}

// MakeMap implements compose.MapComponent.
func (k KeyValue) MakeMap() value.Map {
	if k.value == nil {
		return value.Map{}
	}
	if !k.keepEmpty && isEmptyContainer(k.value) {
		return value.Map{}
	}
	return value.Map{k.name: k.value}
}

func isEmptyContainer(v value.Value) bool {
	switch val := v.(type) {
	case value.Map:
		return len(val) == 0
	case value.Array:
		return len(val) == 0
	default:
		return false
	}
}

// Nothing adds nothing to the document.
func Nothing() compose.Empty {
	return compose.Empty{}
}

// Block produces {name: body}.
type Block struct {
	name      string
	body      compose.MapComponent
	keepEmpty bool
}

// Dict produces {name: body}, omitted when body is empty.
// Multiple parts are merged in order.
func Dict(name string, body ...compose.MapComponent) Block {
	return Block{name: name, body: compose.Dict(body...)}
}

// Query produces {"query": body}, omitted when body is empty.
func Query(body ...compose.MapComponent) Block {
	return Dict("query", body...)
}

// Bool produces {"bool": body}, omitted when body is empty.
func Bool(body ...compose.MapComponent) Block {
	return Dict("bool", body...)
}

// FunctionScore produces {"function_score": body}. It is never omitted.
func FunctionScore(body ...compose.MapComponent) Block {
	return Block{name: "function_score", body: compose.Dict(body...), keepEmpty: true}
}

// Aggs produces {"aggs": body}, omitted when body is empty.
func Aggs(body ...compose.MapComponent) Block {
	return Dict("aggs", body...)
}

// Agg produces {name: {"terms": terms}}.
func Agg(name string, terms value.Map) KeyValue {
	return Value(name, value.Map{"terms": terms})
}

// MakeMap implements compose.MapComponent.
func (b Block) MakeMap() value.Map {
	body := value.Map{}
	if b.body != nil {
		body = b.body.MakeMap()
	}
	if body.IsEmpty() && !b.keepEmpty {
		return value.Map{}
	}
	return value.Map{b.name: body}
}

// MinimumShouldMatch produces {"minimum_should_match": n}.
func MinimumShouldMatch(n int) KeyValue {
	return Value("minimum_should_match", value.Int(n))
}

// Boost produces {"boost": f}.
func Boost(f float64) KeyValue {
	return Value("boost", value.Float(f))
}

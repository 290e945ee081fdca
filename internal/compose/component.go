package compose

import (
	"github.com/roach88/esquery/internal/value"
)

// MapComponent is a fragment that produces a map.
type MapComponent interface {
	MakeMap() value.Map
}

// ArrayComponent is a fragment that produces an ordered list of maps.
type ArrayComponent interface {
	MakeArray() []value.Map
}

// Empty produces an empty map. It is the identity element of Merge.
type Empty struct{}

// MakeMap implements MapComponent.
func (Empty) MakeMap() value.Map {
	return value.Map{}
}

// Literal passes a fixed map through unchanged.
type Literal value.Map

// MakeMap implements MapComponent. The result is a copy.
func (l Literal) MakeMap() value.Map {
	return value.Map(l).Clone()
}

// Root is the top of a component tree.
type Root struct {
	body MapComponent
}

// Build collects top-level fragments into a Root, merging them in order.
func Build(parts ...MapComponent) Root {
	return Root{body: Dict(parts...)}
}

// MakeMap implements MapComponent, so a Root can be embedded in another tree.
func (r Root) MakeMap() value.Map {
	if r.body == nil {
		return value.Map{}
	}
	return r.body.MakeMap()
}

// MakeQuery produces the final document.
func (r Root) MakeQuery() value.Map {
	return r.MakeMap()
}

// Encode serializes the document as JSON.
func (r Root) Encode() ([]byte, error) {
	return value.Marshal(r.MakeQuery())
}

// EncodeIndent serializes the document as indented JSON.
func (r Root) EncodeIndent() ([]byte, error) {
	return value.MarshalIndent(r.MakeQuery())
}

// Wrapped returns a root that places this document under key.
// The key is always present, even when the document is empty.
func (r Root) Wrapped(key string) Root {
	return Root{body: wrapped{key: key, body: r}}
}

type wrapped struct {
	key  string
	body MapComponent
}

func (w wrapped) MakeMap() value.Map {
	return value.Map{w.key: w.body.MakeMap()}
}

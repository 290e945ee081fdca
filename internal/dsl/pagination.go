package dsl

import (
	"github.com/roach88/esquery/internal/value"
)

// Page produces {"from": from, "size": size}. Each key is present only
// when it was set.
type Page struct {
	from *int
	size *int
}

// PageOption sets one pagination key.
type PageOption func(*Page)

// From sets the offset of the first hit.
func From(n int) PageOption {
	return func(p *Page) { p.from = &n }
}

// Size sets the number of hits.
func Size(n int) PageOption {
	return func(p *Page) { p.size = &n }
}

// Pagination builds a Page. Pagination() produces an empty map.
func Pagination(opts ...PageOption) Page {
	var p Page
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// MakeMap implements compose.MapComponent.
func (p Page) MakeMap() value.Map {
	m := value.Map{}
	if p.from != nil {
		m["from"] = value.Int(*p.from)
	}
	if p.size != nil {
		m["size"] = value.Int(*p.size)
	}
	return m
}

package compose

import (
	"github.com/roach88/esquery/internal/value"
)

// Merged combines two map fragments. On key collision Second wins.
type Merged[A, B MapComponent] struct {
	First  A
	Second B
}

// Merge returns the union of a and b, with b taking precedence.
func Merge[A, B MapComponent](a A, b B) Merged[A, B] {
	return Merged[A, B]{First: a, Second: b}
}

// MakeMap implements MapComponent.
func (m Merged[A, B]) MakeMap() value.Map {
	out := m.First.MakeMap().Clone()
	for k, v := range m.Second.MakeMap() {
		out[k] = v
	}
	return out
}

// Dict left-folds parts through Merge, starting from Empty.
// Nil parts contribute nothing.
func Dict(parts ...MapComponent) MapComponent {
	var acc MapComponent = Empty{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		acc = Merged[MapComponent, MapComponent]{First: acc, Second: p}
	}
	return acc
}

// MergeEach builds one fragment per item and merges them in item order.
func MergeEach[T any, C MapComponent](items []T, fn func(T) C) MapComponent {
	parts := make([]MapComponent, len(items))
	for i, item := range items {
		parts[i] = fn(item)
	}
	return Dict(parts...)
}

// Optional holds a fragment that may be absent.
type Optional[C MapComponent] struct {
	component C
	present   bool
}

// Some returns a present optional.
func Some[C MapComponent](c C) Optional[C] {
	return Optional[C]{component: c, present: true}
}

// None returns an absent optional.
func None[C MapComponent]() Optional[C] {
	return Optional[C]{}
}

// When calls fn only if cond holds.
func When[C MapComponent](cond bool, fn func() C) Optional[C] {
	if !cond {
		return None[C]()
	}
	return Some(fn())
}

// Present reports whether the fragment is present.
func (o Optional[C]) Present() bool {
	return o.present
}

// MakeMap implements MapComponent.
func (o Optional[C]) MakeMap() value.Map {
	if !o.present {
		return value.Map{}
	}
	return o.component.MakeMap()
}

// Either holds exactly one of two fragments of different types.
type Either[A, B MapComponent] struct {
	first    A
	second   B
	isSecond bool
}

// First selects a.
func First[A, B MapComponent](a A) Either[A, B] {
	return Either[A, B]{first: a}
}

// Second selects b.
func Second[A, B MapComponent](b B) Either[A, B] {
	return Either[A, B]{second: b, isSecond: true}
}

// IfElse calls ifTrue when cond holds and ifFalse otherwise.
func IfElse[A, B MapComponent](cond bool, ifTrue func() A, ifFalse func() B) Either[A, B] {
	if cond {
		return First[A, B](ifTrue())
	}
	return Second[A](ifFalse())
}

// MakeMap implements MapComponent.
func (e Either[A, B]) MakeMap() value.Map {
	if e.isSecond {
		return e.second.MakeMap()
	}
	return e.first.MakeMap()
}

package compose

import (
	"github.com/roach88/esquery/internal/value"
)

// Element is a single array entry produced by a map fragment.
type Element struct {
	component MapComponent
}

// Item wraps a map fragment as a one-element array.
func Item(c MapComponent) Element {
	return Element{component: c}
}

// MakeArray implements ArrayComponent.
func (e Element) MakeArray() []value.Map {
	if e.component == nil {
		return nil
	}
	return []value.Map{e.component.MakeMap()}
}

// Sequence concatenates array fragments in order.
type Sequence []ArrayComponent

// List accumulates parts into a single array. Nil parts contribute nothing.
func List(parts ...ArrayComponent) Sequence {
	return Sequence(parts)
}

// Items is List with each map fragment wrapped by Item.
func Items(parts ...MapComponent) Sequence {
	seq := make(Sequence, len(parts))
	for i, p := range parts {
		seq[i] = Item(p)
	}
	return seq
}

// MakeArray implements ArrayComponent.
func (s Sequence) MakeArray() []value.Map {
	var out []value.Map
	for _, part := range s {
		if part == nil {
			continue
		}
		out = append(out, part.MakeArray()...)
	}
	return out
}

// Each builds one array fragment per item and concatenates them in item order.
func Each[T any, C ArrayComponent](items []T, fn func(T) C) Sequence {
	seq := make(Sequence, len(items))
	for i, item := range items {
		seq[i] = fn(item)
	}
	return seq
}

// EachItem builds one element per item.
func EachItem[T any, C MapComponent](items []T, fn func(T) C) Sequence {
	seq := make(Sequence, len(items))
	for i, item := range items {
		seq[i] = Item(fn(item))
	}
	return seq
}

// OptionalList holds an array fragment that may be absent.
type OptionalList[C ArrayComponent] struct {
	component C
	present   bool
}

// SomeList returns a present optional array.
func SomeList[C ArrayComponent](c C) OptionalList[C] {
	return OptionalList[C]{component: c, present: true}
}

// NoneList returns an absent optional array.
func NoneList[C ArrayComponent]() OptionalList[C] {
	return OptionalList[C]{}
}

// WhenList calls fn only if cond holds.
func WhenList[C ArrayComponent](cond bool, fn func() C) OptionalList[C] {
	if !cond {
		return NoneList[C]()
	}
	return SomeList(fn())
}

// Present reports whether the fragment is present.
func (o OptionalList[C]) Present() bool {
	return o.present
}

// MakeArray implements ArrayComponent.
func (o OptionalList[C]) MakeArray() []value.Map {
	if !o.present {
		return nil
	}
	return o.component.MakeArray()
}

// EitherList holds exactly one of two array fragments of different types.
type EitherList[A, B ArrayComponent] struct {
	first    A
	second   B
	isSecond bool
}

// FirstList selects a.
func FirstList[A, B ArrayComponent](a A) EitherList[A, B] {
	return EitherList[A, B]{first: a}
}

// SecondList selects b.
func SecondList[A, B ArrayComponent](b B) EitherList[A, B] {
	return EitherList[A, B]{second: b, isSecond: true}
}

// IfElseList calls ifTrue when cond holds and ifFalse otherwise.
func IfElseList[A, B ArrayComponent](cond bool, ifTrue func() A, ifFalse func() B) EitherList[A, B] {
	if cond {
		return FirstList[A, B](ifTrue())
	}
	return SecondList[A](ifFalse())
}

// MakeArray implements ArrayComponent.
func (e EitherList[A, B]) MakeArray() []value.Map {
	if e.isSecond {
		return e.second.MakeArray()
	}
	return e.first.MakeArray()
}

// Compact produces a's array with empty maps removed.
func Compact(a ArrayComponent) []value.Map {
	if a == nil {
		return nil
	}
	elems := a.MakeArray()
	out := make([]value.Map, 0, len(elems))
	for _, m := range elems {
		if !m.IsEmpty() {
			out = append(out, m)
		}
	}
	return out
}

// ToArray converts produced maps into an Array value.
func ToArray(maps []value.Map) value.Array {
	arr := make(value.Array, len(maps))
	for i, m := range maps {
		arr[i] = m
	}
	return arr
}

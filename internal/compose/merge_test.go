package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/esquery/internal/value"
)

func lit(pairs ...value.Pair) Literal {
	return Literal(value.NewMap(pairs...))
}

func TestMergeLastWriteWins(t *testing.T) {
	a := lit(value.P("size", value.Int(10)), value.P("from", value.Int(0)))
	b := lit(value.P("size", value.Int(20)))

	assert.Equal(t, value.Map{"size": value.Int(20), "from": value.Int(0)}, Merge(a, b).MakeMap())
	assert.Equal(t, value.Map{"size": value.Int(10), "from": value.Int(0)}, Merge(b, a).MakeMap())
}

func TestMergeAssociative(t *testing.T) {
	a := lit(value.P("x", value.Int(1)), value.P("y", value.Int(1)))
	b := lit(value.P("y", value.Int(2)), value.P("z", value.Int(2)))
	c := lit(value.P("z", value.Int(3)), value.P("x", value.Int(3)))

	left := Merge(Merge(a, b), c).MakeMap()
	right := Merge(a, Merge(b, c)).MakeMap()

	assert.Equal(t, left, right)
	assert.Equal(t, value.Map{"x": value.Int(3), "y": value.Int(2), "z": value.Int(3)}, left)
}

func TestMergeIdentity(t *testing.T) {
	a := lit(value.P("boost", value.Float(1.5)))

	tests := []struct {
		name      string
		component MapComponent
	}{
		{"empty right", Merge(a, Empty{})},
		{"empty left", Merge(Empty{}, a)},
		{"absent optional right", Merge(a, None[Literal]())},
		{"absent optional left", Merge(None[Literal](), a)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, a.MakeMap(), tt.component.MakeMap())
		})
	}
}

func TestMergeDoesNotMutateChildren(t *testing.T) {
	a := lit(value.P("a", value.Int(1)))
	b := lit(value.P("b", value.Int(2)))

	merged := Merge(a, b).MakeMap()
	merged["c"] = value.Int(3)

	assert.Equal(t, value.Map{"a": value.Int(1)}, a.MakeMap())
	assert.Equal(t, value.Map{"a": value.Int(1), "b": value.Int(2)}, Merge(a, b).MakeMap())
}

func TestDictEqualsLeftFold(t *testing.T) {
	parts := []MapComponent{
		lit(value.P("a", value.Int(1))),
		lit(value.P("b", value.Int(2))),
		lit(value.P("a", value.Int(3))),
		Empty{},
	}

	folded := MapComponent(Empty{})
	for _, p := range parts {
		folded = Merge(folded, p)
	}

	assert.Equal(t, folded.MakeMap(), Dict(parts...).MakeMap())
	assert.Equal(t, value.Map{"a": value.Int(3), "b": value.Int(2)}, Dict(parts...).MakeMap())
}

func TestDictEmpty(t *testing.T) {
	assert.Equal(t, value.Map{}, Dict().MakeMap())
	assert.Equal(t, value.Map{}, Dict(nil, Empty{}).MakeMap())
}

func TestMergeEach(t *testing.T) {
	fields := []string{"title", "body", "title"}
	i := 0
	got := MergeEach(fields, func(f string) Literal {
		i++
		return lit(value.P(f, value.Int(int64(i))))
	}).MakeMap()

	assert.Equal(t, value.Map{"title": value.Int(3), "body": value.Int(2)}, got)
}

func TestOptional(t *testing.T) {
	a := lit(value.P("a", value.Int(1)))

	assert.True(t, Some(a).Present())
	assert.Equal(t, a.MakeMap(), Some(a).MakeMap())

	assert.False(t, None[Literal]().Present())
	assert.Equal(t, value.Map{}, None[Literal]().MakeMap())
}

func TestWhenSkipsConstruction(t *testing.T) {
	called := false
	build := func() Literal {
		called = true
		return lit(value.P("a", value.Int(1)))
	}

	opt := When(false, build)
	assert.False(t, called)
	assert.Equal(t, value.Map{}, opt.MakeMap())

	opt = When(true, build)
	assert.True(t, called)
	assert.Equal(t, value.Map{"a": value.Int(1)}, opt.MakeMap())
}

type counter int

func (c counter) MakeMap() value.Map {
	return value.Map{"count": value.Int(int64(c))}
}

func TestEither(t *testing.T) {
	a := lit(value.P("kind", value.String("literal")))

	first := First[Literal, counter](a)
	second := Second[Literal](counter(4))

	assert.Equal(t, value.Map{"kind": value.String("literal")}, first.MakeMap())
	assert.Equal(t, value.Map{"count": value.Int(4)}, second.MakeMap())
}

func TestIfElse(t *testing.T) {
	tests := []struct {
		cond bool
		want value.Map
	}{
		{true, value.Map{"kind": value.String("literal")}},
		{false, value.Map{"count": value.Int(7)}},
	}

	for _, tt := range tests {
		got := IfElse(tt.cond,
			func() Literal { return lit(value.P("kind", value.String("literal"))) },
			func() counter { return counter(7) },
		)
		assert.Equal(t, tt.want, got.MakeMap())
	}
}

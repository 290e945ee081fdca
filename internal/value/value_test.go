package value

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Value = String("test")
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = Bool(true)
	var _ Value = Date{Time: time.Unix(0, 0), Format: DateSeconds}
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Map{"key": String("value")}
}

func TestMapSortedKeys(t *testing.T) {
	m := Map{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, m.SortedKeys())
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+E000 is a single UTF-16 unit (0xE000); U+10000 is a surrogate pair
	// starting at 0xD800. UTF-8 bytes order them the other way round.
	m := Map{
		"\ue000":     Int(1),
		"\U00010000": Int(2),
	}

	assert.Equal(t, []string{"\U00010000", "\ue000"}, m.SortedKeys())

	utf8Order := []string{"\U00010000", "\ue000"}
	sort.Strings(utf8Order)
	assert.Equal(t, []string{"\ue000", "\U00010000"}, utf8Order, "UTF-8 and UTF-16 orders must differ for this test")
}

func TestMapIsEmpty(t *testing.T) {
	var nilMap Map
	assert.True(t, nilMap.IsEmpty())
	assert.True(t, Map{}.IsEmpty())
	assert.False(t, Map{"a": Int(0)}.IsEmpty())
}

func TestMapClone(t *testing.T) {
	original := Map{"a": Int(1)}
	clone := original.Clone()
	clone["b"] = Int(2)

	assert.Len(t, original, 1)
	assert.Len(t, clone, 2)

	var nilMap Map
	assert.NotNil(t, nilMap.Clone())
}

func TestNewMapLastPairWins(t *testing.T) {
	m := NewMap(P("size", Int(10)), P("from", Int(0)), P("size", Int(20)))

	assert.Equal(t, Map{"size": Int(20), "from": Int(0)}, m)
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestSliceConstructors(t *testing.T) {
	assert.Equal(t, Array{String("a"), String("b")}, Strings("a", "b"))
	assert.Equal(t, Array{Int(1), Int(2)}, Ints(1, 2))
	assert.Equal(t, Array{Int(7)}, Ints(uint8(7)))
	assert.Equal(t, Array{Float(1), Float(2), Float(3)}, Floats(1, 2, 3))
	assert.Equal(t, Array{Float(0.5), Float(0.25)}, Floats(0.5, 0.25))
	assert.Equal(t, Array{String("label:a"), String("label:b")}, Stringers(label("a"), label("b")))
	assert.Equal(t, String("label:x"), Describe(label("x")))
	assert.Empty(t, Strings())
}

func TestDateFormatString(t *testing.T) {
	assert.Equal(t, "iso8601", DateISO8601.String())
	assert.Equal(t, "seconds", DateSeconds.String())
	assert.Equal(t, "milliseconds", DateMilliseconds.String())
	assert.Equal(t, "DateFormat(9)", DateFormat(9).String())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		value Value
		kind  string
	}{
		{String(""), "string"},
		{Int(0), "int"},
		{Float(0), "float"},
		{Bool(false), "bool"},
		{NewDate(time.Unix(0, 0), DateISO8601), "date"},
		{Array{}, "array"},
		{Map{}, "map"},
		{nil, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.value))
		})
	}
}

package value

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf16"
)

// Value is a sealed interface representing the legal values of a query document.
// Only String, Int, Float, Bool, Date, Map and Array implement it.
type Value interface {
	queryValue() // Sealed - only these types implement it
}

// String represents a string value.
type String string

func (String) queryValue() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) queryValue() {}

// Float represents a floating point value.
// Encoded with a fractional part so that it survives a JSON round trip as a Float.
type Float float64

func (Float) queryValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) queryValue() {}

// DateFormat selects how a Date is written to the wire.
type DateFormat int

const (
	// DateISO8601 encodes the date as an RFC 3339 string in UTC with second precision.
	DateISO8601 DateFormat = iota
	// DateSeconds encodes the date as a UNIX timestamp inside a JSON string.
	DateSeconds
	// DateMilliseconds encodes the date as a UNIX millisecond timestamp inside a JSON string.
	DateMilliseconds
)

// String returns the name of the format.
func (f DateFormat) String() string {
	switch f {
	case DateISO8601:
		return "iso8601"
	case DateSeconds:
		return "seconds"
	case DateMilliseconds:
		return "milliseconds"
	default:
		return fmt.Sprintf("DateFormat(%d)", int(f))
	}
}

// Date represents a point in time together with its wire format.
type Date struct {
	Time   time.Time
	Format DateFormat
}

func (Date) queryValue() {}

// Equal reports whether two dates denote the same instant with the same format.
func (d Date) Equal(other Date) bool {
	return d.Format == other.Format && d.Time.Equal(other.Time)
}

// Array represents an ordered list of values.
type Array []Value

func (Array) queryValue() {}

// Map represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type Map map[string]Value

func (Map) queryValue() {}

// IsEmpty reports whether the map has no keys. A nil map is empty.
func (m Map) IsEmpty() bool {
	return len(m) == 0
}

// Clone returns a shallow copy of the map. The copy is never nil.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// compareKeysUTF16 compares strings by UTF-16 code units.
// Go's string comparison uses UTF-8 bytes, which orders supplementary
// plane characters differently.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

// Pair is a key-value pair for Map construction.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand for Pair.
// Example: NewMap(P("title", String("hello")), P("boost", Float(2)))
func P(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// NewMap creates a Map from pairs. On duplicate keys the last pair wins.
func NewMap(pairs ...Pair) Map {
	m := make(Map, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// NewDate creates a Date with an explicit wire format.
func NewDate(t time.Time, format DateFormat) Date {
	return Date{Time: t, Format: format}
}

// Integer is the set of integer types accepted by the slice constructors.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32
}

// Number is the set of numeric types accepted by Floats.
type Number interface {
	Integer | ~float32 | ~float64
}

// Strings creates an Array of String values.
func Strings(vals ...string) Array {
	arr := make(Array, len(vals))
	for i, s := range vals {
		arr[i] = String(s)
	}
	return arr
}

// Ints creates an Array of Int values.
func Ints[T Integer](vals ...T) Array {
	arr := make(Array, len(vals))
	for i, n := range vals {
		arr[i] = Int(n)
	}
	return arr
}

// Floats creates an Array of Float values, coercing integers to floating point.
func Floats[T Number](vals ...T) Array {
	arr := make(Array, len(vals))
	for i, n := range vals {
		arr[i] = Float(n)
	}
	return arr
}

// Describe creates a String from the value's String method.
func Describe(s fmt.Stringer) String {
	return String(s.String())
}

// Stringers creates an Array of String values from each element's String method.
func Stringers[T fmt.Stringer](vals ...T) Array {
	arr := make(Array, len(vals))
	for i, s := range vals {
		arr[i] = String(s.String())
	}
	return arr
}

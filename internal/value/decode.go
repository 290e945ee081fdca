package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Unmarshal decodes JSON into a Value.
// Numbers with a fraction or exponent become Float, all others Int.
// null is rejected. Dates cannot be recognised on the wire and decode as String.
func Unmarshal(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode: unexpected data after top-level value")
	}

	return FromGo(raw)
}

// UnmarshalMap decodes a JSON object into a Map.
func UnmarshalMap(data []byte) (Map, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(Map)
	if !ok {
		return nil, fmt.Errorf("decode: expected object, got %s", KindOf(v))
	}
	return m, nil
}

// FromGo converts decoded Go data (from encoding/json, YAML or TOML decoders)
// into a Value. Values that are already a Value are returned unchanged.
// nil is rejected, as are unsigned integers beyond the int64 range.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a valid query value")
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val))
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint64:
		return fromUint(val)
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return fromNumber(val)
	case time.Time:
		return Date{Time: val, Format: DateISO8601}, nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]any:
		m := make(Map, len(val))
		for k, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			m[k] = converted
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

func fromUint(n uint64) (Value, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("integer %d out of int64 range", n)
	}
	return Int(int64(n)), nil
}

func fromNumber(n json.Number) (Value, error) {
	s := string(n)
	if strings.ContainsAny(s, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("float %s out of range", s)
		}
		return Float(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		return nil, fmt.Errorf("integer %s out of int64 range", s)
	}
	return Int(i), nil
}

// KindOf returns the variant name of a value, for error messages.
func KindOf(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case Array:
		return "array"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}

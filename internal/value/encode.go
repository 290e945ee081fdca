package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// EncodingError reports a value that cannot be represented on the wire.
// Path locates the offending value inside the document, e.g. "/query/bool/boost".
type EncodingError struct {
	Path   string
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Path == "" {
		return "encode: " + e.Reason
	}
	return fmt.Sprintf("encode %s: %s", e.Path, e.Reason)
}

// Marshal encodes a value as JSON. Map keys are written in sorted order
// and strings are not HTML escaped.
func Marshal(v Value) ([]byte, error) {
	enc := &encoder{}
	if err := enc.encode(v, ""); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output with two spaces.
func MarshalIndent(v Value) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Map.
func (m Map) MarshalJSON() ([]byte, error) {
	return Marshal(m)
}

// MarshalJSON implements json.Marshaler for Array.
func (a Array) MarshalJSON() ([]byte, error) {
	return Marshal(a)
}

// MarshalJSON implements json.Marshaler for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return Marshal(d)
}

// MarshalJSON implements json.Marshaler for Float.
func (f Float) MarshalJSON() ([]byte, error) {
	return Marshal(f)
}

// encoder writes values into a buffer. In canonical mode strings are NFC
// normalised and not HTML escaped.
type encoder struct {
	buf       bytes.Buffer
	canonical bool
}

func (e *encoder) encode(v Value, path string) error {
	switch val := v.(type) {
	case nil:
		return &EncodingError{Path: path, Reason: "nil value"}
	case String:
		return e.writeString(string(val))
	case Int:
		e.buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case Float:
		b, err := formatFloat(float64(val))
		if err != nil {
			return &EncodingError{Path: path, Reason: err.Error()}
		}
		e.buf.Write(b)
		return nil
	case Bool:
		e.buf.WriteString(strconv.FormatBool(bool(val)))
		return nil
	case Date:
		s, err := formatDate(val)
		if err != nil {
			return &EncodingError{Path: path, Reason: err.Error()}
		}
		return e.writeString(s)
	case Array:
		e.buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encode(elem, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil
	case Map:
		e.buf.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.writeString(k); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.encode(val[k], path+"/"+escapePointer(k)); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
		return nil
	default:
		return &EncodingError{Path: path, Reason: fmt.Sprintf("unknown value type %T", v)}
	}
}

func (e *encoder) writeString(s string) error {
	if e.canonical {
		b, err := marshalCanonicalString(s)
		if err != nil {
			return err
		}
		e.buf.Write(b)
		return nil
	}
	b, err := marshalString(s)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}

// marshalString quotes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode string: %w", err)
	}
	// json.Encoder adds a trailing newline
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// formatFloat writes f the way encoding/json does, but always keeps a
// fractional part or exponent so the number decodes back as a Float.
// NaN and infinities have no JSON representation.
func formatFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("float value %v out of range", f)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)

	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b, nil
	}
	if !bytes.ContainsRune(b, '.') {
		b = append(b, '.', '0')
	}
	return b, nil
}

// formatDate renders a date according to its own format.
func formatDate(d Date) (string, error) {
	switch d.Format {
	case DateISO8601:
		return d.Time.UTC().Truncate(time.Second).Format(time.RFC3339), nil
	case DateSeconds:
		return strconv.FormatInt(epochSeconds(d.Time), 10), nil
	case DateMilliseconds:
		return strconv.FormatInt(epochMillis(d.Time), 10), nil
	default:
		return "", fmt.Errorf("unknown date format %s", d.Format)
	}
}

// epochSeconds is the whole seconds since the epoch, truncated toward zero.
// Time.Unix floors, which differs for instants before 1970.
func epochSeconds(t time.Time) int64 {
	sec := t.Unix()
	if sec < 0 && t.Nanosecond() > 0 {
		sec++
	}
	return sec
}

// epochMillis is the whole milliseconds since the epoch, truncated toward zero.
func epochMillis(t time.Time) int64 {
	ms := t.UnixMilli()
	if ms < 0 && t.Nanosecond()%int(time.Millisecond) != 0 {
		ms++
	}
	return ms
}

// escapePointer escapes a key for use in an error path (RFC 6901).
func escapePointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

package value

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 style canonical JSON.
// This is the serialization used for fingerprints and for the store.
//
// Differences from Marshal:
//  1. Strings (keys and values) are NFC normalised
//  2. U+2028 and U+2029 are written literally
//
// Key ordering (UTF-16 code units) and the absence of HTML escaping are
// shared with Marshal.
func MarshalCanonical(v Value) ([]byte, error) {
	enc := &encoder{canonical: true}
	if err := enc.encode(v, ""); err != nil {
		return nil, err
	}
	return enc.buf.Bytes(), nil
}

// marshalCanonicalString produces a canonical JSON string.
// Only control characters, backslash and quote are escaped.
func marshalCanonicalString(s string) ([]byte, error) {
	b, err := marshalString(norm.NFC.String(s))
	if err != nil {
		return nil, err
	}
	return unescapeLineSeparators(b), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters. An escape is only
// real when preceded by an even number of backslashes; \\u2028 is the
// literal text "\u2028" and stays as is.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) &&
			data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') && precedingBackslashes(out)%2 == 0 {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return out
}

func precedingBackslashes(b []byte) int {
	n := 0
	for j := len(b) - 1; j >= 0 && b[j] == '\\'; j-- {
		n++
	}
	return n
}

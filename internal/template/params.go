package template

import (
	"fmt"
	"strings"

	"github.com/roach88/esquery/internal/value"
)

// Params binds parameter names to values.
type Params map[string]value.Value

// ParseParams parses "name=value" pairs. A value that is valid JSON is
// decoded (so size=20 is an Int and tags=["a","b"] an Array); anything else
// is taken as a plain string.
func ParseParams(pairs []string) (Params, error) {
	params := make(Params, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, &TemplateError{
				Code:    ErrCodeParameter,
				Message: fmt.Sprintf("parameter %q must have the form name=value", pair),
			}
		}
		if v, err := value.Unmarshal([]byte(raw)); err == nil {
			params[name] = v
		} else {
			params[name] = value.String(raw)
		}
	}
	return params, nil
}

// with returns a copy of p with name bound to v.
func (p Params) with(name string, v value.Value) Params {
	out := make(Params, len(p)+1)
	for k, existing := range p {
		out[k] = existing
	}
	out[name] = v
	return out
}

// isSet reports whether a parameter counts as set for a when node.
func isSet(v value.Value, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case value.Bool:
		return bool(val)
	case value.String:
		return val != ""
	case value.Array:
		return len(val) > 0
	case value.Map:
		return len(val) > 0
	default:
		return true
	}
}

package template

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/esquery/internal/value"
)

// resolve converts raw template data into a Value, substituting parameters.
// The boolean is false when raw is (or resolves to) an absent parameter.
func (c *compiler) resolve(raw any, path string) (value.Value, bool, error) {
	switch val := raw.(type) {
	case nil:
		return nil, false, nil
	case string:
		return c.resolveParam(val, path)
	case []any:
		arr := make(value.Array, 0, len(val))
		for i, elem := range val {
			v, ok, err := c.resolve(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, false, err
			}
			if ok {
				arr = append(arr, v)
			}
		}
		return arr, true, nil
	case map[string]any:
		m := make(value.Map, len(val))
		for k, elem := range val {
			v, ok, err := c.resolve(elem, path+"."+k)
			if err != nil {
				return nil, false, err
			}
			if ok {
				m[k] = v
			}
		}
		return m, true, nil
	default:
		v, err := value.FromGo(val)
		if err != nil {
			return nil, false, c.errorf(ErrCodeValue, path, "%v", err)
		}
		return v, true, nil
	}
}

func (c *compiler) resolveParam(s, path string) (value.Value, bool, error) {
	switch {
	case strings.HasPrefix(s, "$$"):
		return value.String(s[1:]), true, nil
	case strings.HasPrefix(s, "$") && len(s) > 1:
		name := s[1:]
		v, ok := c.params[name]
		if !ok {
			slog.Debug("template parameter missing", "file", c.file, "path", path, "param", name)
			return nil, false, nil
		}
		if v == nil {
			return nil, false, nil
		}
		return v, true, nil
	default:
		return value.String(s), true, nil
	}
}

package template

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/esquery/internal/compose"
	"github.com/roach88/esquery/internal/dsl"
	"github.com/roach88/esquery/internal/value"
)

// Compile builds the component tree described by t.
// All validation happens here, so a returned Root always evaluates.
func Compile(t *Template, params Params) (compose.Root, error) {
	c := &compiler{file: t.File, params: params}

	parts, err := c.mapNodes(t.Fragments, "fragments")
	if err != nil {
		return compose.Root{}, err
	}

	slog.Debug("template compiled",
		"name", t.Name,
		"fragments", len(parts),
		"params", len(params))

	return compose.Build(parts...), nil
}

// Render loads, compiles and evaluates the template at path.
func Render(path string, params Params) (value.Map, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	root, err := Compile(t, params)
	if err != nil {
		return nil, err
	}
	return root.MakeQuery(), nil
}

type compiler struct {
	file   string
	params Params
}

func (c *compiler) errorf(code, path, format string, args ...any) error {
	return &TemplateError{Code: code, File: c.file, Path: path, Message: fmt.Sprintf(format, args...)}
}

// node splits a single-key map into its kind and body.
func (c *compiler) node(raw any, path string) (string, any, error) {
	m, ok := raw.(map[string]any)
	if !ok || len(m) != 1 {
		return "", nil, c.errorf(ErrCodeShape, path, "fragment must be a map with exactly one kind")
	}
	for kind, body := range m {
		return kind, body, nil
	}
	panic("unreachable")
}

func (c *compiler) mapNodes(raw any, path string) ([]compose.MapComponent, error) {
	list, err := c.list(raw, path)
	if err != nil {
		return nil, err
	}
	parts := make([]compose.MapComponent, 0, len(list))
	for i, item := range list {
		part, err := c.mapNode(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (c *compiler) arrayNodes(raw any, path string) ([]compose.ArrayComponent, error) {
	list, err := c.list(raw, path)
	if err != nil {
		return nil, err
	}
	parts := make([]compose.ArrayComponent, 0, len(list))
	for i, item := range list {
		part, err := c.arrayNode(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func (c *compiler) mapNode(raw any, path string) (compose.MapComponent, error) {
	kind, body, err := c.node(raw, path)
	if err != nil {
		return nil, err
	}
	path = path + "." + kind

	switch kind {
	case "query", "bool", "function_score", "aggs":
		parts, err := c.mapNodes(body, path)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "query":
			return dsl.Query(parts...), nil
		case "bool":
			return dsl.Bool(parts...), nil
		case "function_score":
			return dsl.FunctionScore(parts...), nil
		default:
			return dsl.Aggs(parts...), nil
		}

	case "should", "must", "must_not", "filter", "functions", "sort":
		parts, err := c.arrayNodes(body, path)
		if err != nil {
			return nil, err
		}
		if kind == "functions" {
			return dsl.FunctionsList(parts...), nil
		}
		return dsl.NewClause(kind, parts...), nil

	case "key":
		fields, err := c.fields(body, path, []string{"name"}, []string{"value"})
		if err != nil {
			return nil, err
		}
		name, err := c.str(fields["name"], path+".name")
		if err != nil {
			return nil, err
		}
		v, _, err := c.resolve(fields["value"], path+".value")
		if err != nil {
			return nil, err
		}
		return dsl.Key(name, v), nil

	case "dict":
		fields, err := c.fields(body, path, []string{"name", "fragments"}, nil)
		if err != nil {
			return nil, err
		}
		name, err := c.str(fields["name"], path+".name")
		if err != nil {
			return nil, err
		}
		parts, err := c.mapNodes(fields["fragments"], path+".fragments")
		if err != nil {
			return nil, err
		}
		return dsl.Dict(name, parts...), nil

	case "literal":
		v, ok, err := c.resolve(body, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		m, isMap := v.(value.Map)
		if !isMap {
			return nil, c.errorf(ErrCodeShape, path, "literal must be a map, got %s", value.KindOf(v))
		}
		return compose.Literal(m), nil

	case "minimum_should_match":
		v, ok, err := c.resolve(body, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		n, isInt := v.(value.Int)
		if !isInt {
			return nil, c.errorf(ErrCodeValue, path, "must be an integer, got %s", value.KindOf(v))
		}
		return dsl.MinimumShouldMatch(int(n)), nil

	case "boost":
		v, ok, err := c.resolve(body, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		f, err := c.number(v, path)
		if err != nil {
			return nil, err
		}
		return dsl.Boost(f), nil

	case "boost_mode":
		s, ok, err := c.resolveString(body, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		mode, err := dsl.ParseBoostMode(s)
		if err != nil {
			return nil, c.errorf(ErrCodeEnum, path, "%v", err)
		}
		return dsl.BoostMode(mode), nil

	case "score_mode":
		s, ok, err := c.resolveString(body, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		mode, err := dsl.ParseScoreMode(s)
		if err != nil {
			return nil, c.errorf(ErrCodeEnum, path, "%v", err)
		}
		return dsl.ScoreMode(mode), nil

	case "pagination":
		return c.pagination(body, path)

	case "term":
		fields, err := c.fields(body, path, []string{"field"}, []string{"value"})
		if err != nil {
			return nil, err
		}
		field, err := c.str(fields["field"], path+".field")
		if err != nil {
			return nil, err
		}
		v, _, err := c.resolve(fields["value"], path+".value")
		if err != nil {
			return nil, err
		}
		return dsl.Term(field, v), nil

	case "terms_or":
		field, values, err := c.fieldValues(body, path)
		if err != nil {
			return nil, err
		}
		return dsl.TermsOR(field, values), nil

	case "knn":
		return c.knn(body, path)

	case "agg":
		fields, err := c.fields(body, path, []string{"name", "terms"}, nil)
		if err != nil {
			return nil, err
		}
		name, err := c.str(fields["name"], path+".name")
		if err != nil {
			return nil, err
		}
		v, ok, err := c.resolve(fields["terms"], path+".terms")
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.Empty{}, nil
		}
		terms, ok := v.(value.Map)
		if !ok {
			return nil, c.errorf(ErrCodeShape, path+".terms", "must be a map, got %s", value.KindOf(v))
		}
		return dsl.Agg(name, terms), nil

	case "when":
		return c.whenMap(body, path)

	case "each":
		return c.eachMap(body, path)

	default:
		return nil, c.errorf(ErrCodeKind, path, "unknown fragment kind %q", kind)
	}
}

func (c *compiler) arrayNode(raw any, path string) (compose.ArrayComponent, error) {
	kind, body, err := c.node(raw, path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "terms_and":
		field, values, err := c.fieldValues(body, path+"."+kind)
		if err != nil {
			return nil, err
		}
		return dsl.TermsAND(field, values), nil

	case "function":
		v, ok, err := c.resolve(body, path+"."+kind)
		if err != nil {
			return nil, err
		}
		if !ok {
			return compose.List(), nil
		}
		fn, ok := v.(value.Map)
		if !ok {
			return nil, c.errorf(ErrCodeShape, path+"."+kind, "function must be a map, got %s", value.KindOf(v))
		}
		return dsl.Function(fn), nil

	case "sort_field":
		fields, err := c.fields(body, path+"."+kind, []string{"field"}, []string{"order"})
		if err != nil {
			return nil, err
		}
		field, err := c.str(fields["field"], path+"."+kind+".field")
		if err != nil {
			return nil, err
		}
		order := dsl.SortAsc
		if raw, ok := fields["order"]; ok {
			s, err := c.str(raw, path+"."+kind+".order")
			if err != nil {
				return nil, err
			}
			if order, err = dsl.ParseSortOrder(s); err != nil {
				return nil, c.errorf(ErrCodeEnum, path+"."+kind+".order", "%v", err)
			}
		}
		return dsl.SortField(field, order), nil

	case "when":
		return c.whenArray(body, path+"."+kind)

	case "each":
		return c.eachArray(body, path+"."+kind)

	default:
		part, err := c.mapNode(raw, path)
		if err != nil {
			return nil, err
		}
		return compose.Item(part), nil
	}
}

func (c *compiler) pagination(body any, path string) (compose.MapComponent, error) {
	fields, err := c.fields(body, path, nil, []string{"from", "size"})
	if err != nil {
		return nil, err
	}

	var opts []dsl.PageOption
	for _, key := range []string{"from", "size"} {
		raw, present := fields[key]
		if !present {
			continue
		}
		v, ok, err := c.resolve(raw, path+"."+key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		n, isInt := v.(value.Int)
		if !isInt {
			return nil, c.errorf(ErrCodeValue, path+"."+key, "must be an integer, got %s", value.KindOf(v))
		}
		if key == "from" {
			opts = append(opts, dsl.From(int(n)))
		} else {
			opts = append(opts, dsl.Size(int(n)))
		}
	}
	return dsl.Pagination(opts...), nil
}

func (c *compiler) knn(body any, path string) (compose.MapComponent, error) {
	fields, err := c.fields(body, path, []string{"field", "vector"}, []string{"options", "filter"})
	if err != nil {
		return nil, err
	}
	field, err := c.str(fields["field"], path+".field")
	if err != nil {
		return nil, err
	}

	v, ok, err := c.resolve(fields["vector"], path+".vector")
	if err != nil {
		return nil, err
	}
	if !ok {
		return compose.Empty{}, nil
	}
	arr, isArray := v.(value.Array)
	if !isArray {
		return nil, c.errorf(ErrCodeValue, path+".vector", "must be a list of numbers, got %s", value.KindOf(v))
	}
	vector := make([]float64, len(arr))
	for i, elem := range arr {
		if vector[i], err = c.number(elem, fmt.Sprintf("%s.vector[%d]", path, i)); err != nil {
			return nil, err
		}
	}

	var options value.Map
	if raw, present := fields["options"]; present {
		v, ok, err := c.resolve(raw, path+".options")
		if err != nil {
			return nil, err
		}
		if ok {
			m, isMap := v.(value.Map)
			if !isMap {
				return nil, c.errorf(ErrCodeShape, path+".options", "must be a map, got %s", value.KindOf(v))
			}
			options = m
		}
	}

	var filter []compose.ArrayComponent
	if raw, present := fields["filter"]; present {
		if filter, err = c.arrayNodes(raw, path+".filter"); err != nil {
			return nil, err
		}
	}

	return dsl.KNN(field, vector, options, filter...), nil
}

type whenNode struct {
	set      bool
	thenBody any
	elseBody any
	hasElse  bool
}

func (c *compiler) when(body any, path string) (whenNode, error) {
	fields, err := c.fields(body, path, []string{"param", "then"}, []string{"else"})
	if err != nil {
		return whenNode{}, err
	}
	name, err := c.str(fields["param"], path+".param")
	if err != nil {
		return whenNode{}, err
	}
	name = strings.TrimPrefix(name, "$")
	v, ok := c.params[name]

	elseBody, hasElse := fields["else"]
	return whenNode{
		set:      isSet(v, ok),
		thenBody: fields["then"],
		elseBody: elseBody,
		hasElse:  hasElse,
	}, nil
}

func (c *compiler) whenMap(body any, path string) (compose.MapComponent, error) {
	w, err := c.when(body, path)
	if err != nil {
		return nil, err
	}
	thenParts, err := c.mapNodes(w.thenBody, path+".then")
	if err != nil {
		return nil, err
	}
	then := compose.Dict(thenParts...)

	if !w.hasElse {
		return compose.When(w.set, func() compose.MapComponent { return then }), nil
	}
	elseParts, err := c.mapNodes(w.elseBody, path+".else")
	if err != nil {
		return nil, err
	}
	otherwise := compose.Dict(elseParts...)

	return compose.IfElse(w.set,
		func() compose.MapComponent { return then },
		func() compose.MapComponent { return otherwise },
	), nil
}

func (c *compiler) whenArray(body any, path string) (compose.ArrayComponent, error) {
	w, err := c.when(body, path)
	if err != nil {
		return nil, err
	}
	thenParts, err := c.arrayNodes(w.thenBody, path+".then")
	if err != nil {
		return nil, err
	}
	then := compose.List(thenParts...)

	if !w.hasElse {
		return compose.WhenList(w.set, func() compose.Sequence { return then }), nil
	}
	elseParts, err := c.arrayNodes(w.elseBody, path+".else")
	if err != nil {
		return nil, err
	}
	otherwise := compose.List(elseParts...)

	return compose.IfElseList(w.set,
		func() compose.Sequence { return then },
		func() compose.Sequence { return otherwise },
	), nil
}

type eachNode struct {
	items []value.Value
	as    string
	do    any
}

func (c *compiler) each(body any, path string) (eachNode, error) {
	fields, err := c.fields(body, path, []string{"param", "as", "do"}, nil)
	if err != nil {
		return eachNode{}, err
	}
	name, err := c.str(fields["param"], path+".param")
	if err != nil {
		return eachNode{}, err
	}
	as, err := c.str(fields["as"], path+".as")
	if err != nil {
		return eachNode{}, err
	}
	name = strings.TrimPrefix(name, "$")
	as = strings.TrimPrefix(as, "$")

	n := eachNode{as: as, do: fields["do"]}
	v, ok := c.params[name]
	if !ok {
		slog.Debug("each parameter missing", "file", c.file, "path", path, "param", name)
		return n, nil
	}
	arr, isArray := v.(value.Array)
	if !isArray {
		return eachNode{}, c.errorf(ErrCodeValue, path+".param", "parameter %q must be a list, got %s", name, value.KindOf(v))
	}
	n.items = arr
	return n, nil
}

// scoped returns a compiler with name bound to v.
func (c *compiler) scoped(name string, v value.Value) *compiler {
	return &compiler{file: c.file, params: c.params.with(name, v)}
}

func (c *compiler) eachMap(body any, path string) (compose.MapComponent, error) {
	n, err := c.each(body, path)
	if err != nil {
		return nil, err
	}
	// Compile once unbound so the body is validated even for an empty list.
	if _, err := c.mapNodes(n.do, path+".do"); err != nil {
		return nil, err
	}

	iterations := make([]compose.MapComponent, len(n.items))
	for i, item := range n.items {
		parts, err := c.scoped(n.as, item).mapNodes(n.do, fmt.Sprintf("%s.do<%d>", path, i))
		if err != nil {
			return nil, err
		}
		iterations[i] = compose.Dict(parts...)
	}
	return compose.MergeEach(iterations, identity[compose.MapComponent]), nil
}

func (c *compiler) eachArray(body any, path string) (compose.ArrayComponent, error) {
	n, err := c.each(body, path)
	if err != nil {
		return nil, err
	}
	if _, err := c.arrayNodes(n.do, path+".do"); err != nil {
		return nil, err
	}

	iterations := make([]compose.Sequence, len(n.items))
	for i, item := range n.items {
		parts, err := c.scoped(n.as, item).arrayNodes(n.do, fmt.Sprintf("%s.do<%d>", path, i))
		if err != nil {
			return nil, err
		}
		iterations[i] = compose.List(parts...)
	}
	return compose.Each(iterations, identity[compose.Sequence]), nil
}

func identity[T any](v T) T { return v }

// fields checks that body is a map with every required key and no keys
// outside required and optional.
func (c *compiler) fields(body any, path string, required, optional []string) (map[string]any, error) {
	m, ok := body.(map[string]any)
	if !ok {
		return nil, c.errorf(ErrCodeShape, path, "must be a map")
	}
	for _, key := range required {
		if _, present := m[key]; !present {
			return nil, c.errorf(ErrCodeShape, path, "missing required field %q", key)
		}
	}

	var unknown []string
	for key := range m {
		if !contains(required, key) && !contains(optional, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, c.errorf(ErrCodeShape, path, "unknown fields %s", strings.Join(unknown, ", "))
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (c *compiler) list(raw any, path string) ([]any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, c.errorf(ErrCodeShape, path, "must be a list of fragments")
	}
	return list, nil
}

// str returns a literal string. Parameters are not allowed in names.
func (c *compiler) str(raw any, path string) (string, error) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", c.errorf(ErrCodeShape, path, "must be a non-empty string")
	}
	return s, nil
}

func (c *compiler) resolveString(raw any, path string) (string, bool, error) {
	v, ok, err := c.resolve(raw, path)
	if err != nil || !ok {
		return "", ok, err
	}
	s, isString := v.(value.String)
	if !isString {
		return "", false, c.errorf(ErrCodeValue, path, "must be a string, got %s", value.KindOf(v))
	}
	return string(s), true, nil
}

func (c *compiler) number(v value.Value, path string) (float64, error) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), nil
	case value.Float:
		return float64(n), nil
	default:
		return 0, c.errorf(ErrCodeValue, path, "must be a number, got %s", value.KindOf(v))
	}
}

func (c *compiler) fieldValues(body any, path string) (string, value.Array, error) {
	fields, err := c.fields(body, path, []string{"field", "values"}, nil)
	if err != nil {
		return "", nil, err
	}
	field, err := c.str(fields["field"], path+".field")
	if err != nil {
		return "", nil, err
	}
	v, ok, err := c.resolve(fields["values"], path+".values")
	if err != nil || !ok {
		return field, nil, err
	}
	values, isArray := v.(value.Array)
	if !isArray {
		values = value.Array{v}
	}
	return field, values, nil
}

package template

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquery/internal/value"
)

func mustParams(t *testing.T, pairs ...string) Params {
	t.Helper()
	params, err := ParseParams(pairs)
	require.NoError(t, err)
	return params
}

func productParams(t *testing.T) Params {
	return mustParams(t,
		`words=["red","shoe"]`,
		`tags=["sale"]`,
		"owner=ada",
		"from=10",
	)
}

func assertGolden(t *testing.T, name string, doc value.Map) {
	t.Helper()

	data, err := value.MarshalCanonical(doc)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestRenderFormatsAgree(t *testing.T) {
	params := productParams(t)

	yamlDoc, err := Render("testdata/products.yaml", params)
	require.NoError(t, err)

	for _, path := range []string{"testdata/products.toml", "testdata/products.cue"} {
		t.Run(path, func(t *testing.T) {
			doc, err := Render(path, params)
			require.NoError(t, err)
			assert.True(t, value.Equal(yamlDoc, doc), value.Diff(yamlDoc, doc))
		})
	}
}

func TestRenderProductsGolden(t *testing.T) {
	doc, err := Render("testdata/products.yaml", productParams(t))
	require.NoError(t, err)

	assertGolden(t, "products", doc)
}

func TestRenderScoringGolden(t *testing.T) {
	params := mustParams(t,
		"boost=1.5",
		"score_mode=max",
		`weights=["new","hot"]`,
		"vector=[1,0.5]",
	)

	doc, err := Render("testdata/scoring.yaml", params)
	require.NoError(t, err)

	assertGolden(t, "scoring", doc)
}

func TestRenderWithoutParams(t *testing.T) {
	doc, err := Render("testdata/products.yaml", nil)
	require.NoError(t, err)

	want := value.Map{
		"query": value.Map{"bool": value.Map{"minimum_should_match": value.Int(1)}},
		"sort":  value.Array{value.Map{"created": value.Map{"order": value.String("desc")}}},
		"size":  value.Int(20),
	}
	assert.True(t, value.Equal(want, doc), value.Diff(want, doc))
}

func TestLoadMetadata(t *testing.T) {
	tmpl, err := Load("testdata/products.yaml")
	require.NoError(t, err)

	assert.Equal(t, "products", tmpl.Name)
	assert.Equal(t, "Product search with an optional owner filter", tmpl.Description)
	assert.Len(t, tmpl.Fragments, 3)
}

func TestLoadNameDefaultsToFileName(t *testing.T) {
	tmpl, err := Parse([]byte("fragments: []\n"), FormatYAML, "dir/latest.yaml")
	require.NoError(t, err)
	assert.Equal(t, "latest", tmpl.Name)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"a.toml", FormatTOML, false},
		{"a.cue", FormatCUE, false},
		{"a.json", "", true},
		{"a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				var tErr *TemplateError
				require.True(t, errors.As(err, &tErr))
				assert.Equal(t, ErrCodeFormat, tErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")

	var tErr *TemplateError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, ErrCodeRead, tErr.Code)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		source string
	}{
		{"yaml", FormatYAML, "fragments: [\n"},
		{"toml", FormatTOML, "fragments = [\n"},
		{"cue", FormatCUE, "fragments: [\n"},
		{"cue not concrete", FormatCUE, "name: string\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.source), tt.format, "bad."+string(tt.format))

			var tErr *TemplateError
			require.True(t, errors.As(err, &tErr), "got %v", err)
			assert.Equal(t, ErrCodeSyntax, tErr.Code)
		})
	}
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		path   string
	}{
		{"empty", "", ""},
		{"unknown top-level", "version: 2\n", "version"},
		{"name not string", "name: [a]\n", "name"},
		{"fragments not list", "fragments: {a: 1}\n", "fragments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.source), FormatYAML, "bad.yaml")

			var tErr *TemplateError
			require.True(t, errors.As(err, &tErr), "got %v", err)
			assert.Equal(t, ErrCodeShape, tErr.Code)
			assert.Equal(t, tt.path, tErr.Path)
		})
	}
}

func TestTemplateErrorMessage(t *testing.T) {
	err := &TemplateError{Code: ErrCodeKind, File: "q.yaml", Path: "fragments[0].match", Message: "unknown fragment kind"}
	assert.Equal(t, "q.yaml: fragments[0].match: E205: unknown fragment kind", err.Error())

	err = &TemplateError{Code: ErrCodeParameter, Message: "bad"}
	assert.Equal(t, "E208: bad", err.Error())
}

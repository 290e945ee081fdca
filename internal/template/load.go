package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a template file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &TemplateError{
			Code:    ErrCodeFormat,
			File:    path,
			Message: fmt.Sprintf("unsupported template extension %q (want .yaml, .yml, .toml or .cue)", filepath.Ext(path)),
		}
	}
}

// Template is a parsed, not yet compiled, query template.
type Template struct {
	Name        string
	Description string
	File        string
	Fragments   []any
}

// Load reads and parses the template at path.
func Load(path string) (*Template, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Code: ErrCodeRead, File: path, Message: err.Error()}
	}

	return Parse(data, format, path)
}

// Parse decodes template source. file is used only in error messages.
func Parse(data []byte, format Format, file string) (*Template, error) {
	var doc map[string]any
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatCUE:
		doc, err = decodeCUE(data, file)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &TemplateError{Code: ErrCodeFormat, File: file, Message: fmt.Sprintf("unsupported format %q", format)}
	}
	if err != nil {
		return nil, &TemplateError{Code: ErrCodeSyntax, File: file, Message: err.Error()}
	}
	if doc == nil {
		return nil, &TemplateError{Code: ErrCodeShape, File: file, Message: "template is empty"}
	}

	t := &Template{File: file}

	for key := range doc {
		switch key {
		case "name", "description", "fragments":
		default:
			return nil, &TemplateError{Code: ErrCodeShape, File: file, Path: key, Message: "unknown top-level field"}
		}
	}

	if raw, ok := doc["name"]; ok {
		name, isString := raw.(string)
		if !isString {
			return nil, &TemplateError{Code: ErrCodeShape, File: file, Path: "name", Message: "must be a string"}
		}
		t.Name = name
	}
	if raw, ok := doc["description"]; ok {
		desc, isString := raw.(string)
		if !isString {
			return nil, &TemplateError{Code: ErrCodeShape, File: file, Path: "description", Message: "must be a string"}
		}
		t.Description = desc
	}
	if raw, ok := doc["fragments"]; ok {
		fragments, isList := raw.([]any)
		if !isList {
			return nil, &TemplateError{Code: ErrCodeShape, File: file, Path: "fragments", Message: "must be a list"}
		}
		t.Fragments = fragments
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	slog.Debug("template parsed",
		"file", file,
		"format", format,
		"name", t.Name,
		"fragments", len(t.Fragments))

	return t, nil
}

// decodeCUE evaluates CUE source and exports it through JSON.
func decodeCUE(data []byte, file string) (map[string]any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(file))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(file, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(file, err)
	}

	exported, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(file, err)
	}

	dec := json.NewDecoder(bytes.NewReader(exported))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, &TemplateError{Code: ErrCodeSyntax, File: file, Message: err.Error()}
	}
	return doc, nil
}

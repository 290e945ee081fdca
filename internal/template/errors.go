package template

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes reported by TemplateError.
const (
	ErrCodeRead      = "E201" // Template file could not be read
	ErrCodeFormat    = "E202" // Unknown file extension
	ErrCodeSyntax    = "E203" // YAML, TOML or CUE syntax error
	ErrCodeShape     = "E204" // Wrong node shape
	ErrCodeKind      = "E205" // Unknown fragment kind
	ErrCodeValue     = "E206" // Invalid literal or parameter value
	ErrCodeEnum      = "E207" // Invalid mode or sort order
	ErrCodeParameter = "E208" // Malformed --param
)

// TemplateError reports a template that cannot be loaded or compiled.
// Path locates the node inside the template, e.g. "fragments[0].query[1]".
type TemplateError struct {
	Code    string
	File    string
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *TemplateError) Error() string {
	loc := e.File
	if e.Pos.IsValid() {
		loc = fmt.Sprintf("%s:%d:%d", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	if e.Path != "" {
		if loc != "" {
			loc += ": "
		}
		loc += e.Path
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Code, e.Message)
}

// formatCUEError converts a CUE error into a TemplateError carrying the
// position of its first underlying error.
func formatCUEError(file string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &TemplateError{Code: ErrCodeSyntax, File: file, Message: err.Error()}
	}

	first := errs[0]
	tErr := &TemplateError{Code: ErrCodeSyntax, File: file, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		tErr.Pos = positions[0]
	}
	return tErr
}

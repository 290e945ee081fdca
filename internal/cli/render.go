package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/esquery/internal/store"
	"github.com/roach88/esquery/internal/template"
	"github.com/roach88/esquery/internal/value"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Params    []string // name=value pairs
	Wrap      string   // top-level wrapper key, e.g. "query"
	Canonical bool     // emit canonical JSON instead of indented JSON
	Save      string   // database path to save the document into
}

// RenderResult is the JSON payload of a successful render.
type RenderResult struct {
	Name        string          `json:"name"`
	Fingerprint string          `json:"fingerprint"`
	Saved       bool            `json:"saved"`
	Document    json.RawMessage `json:"document"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a query template to JSON",
		Long: `Compile a YAML, TOML or CUE query template and print the resulting
query document.

Parameters are bound with --param name=value. Values that parse as JSON
keep their type (numbers, booleans, lists); anything else is a string.
Parameters the template references but that are not given resolve to
absent, and the fragments that use them are omitted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "p", nil, "template parameter name=value (repeatable)")
	cmd.Flags().StringVar(&opts.Wrap, "wrap", "", "place the document under this top-level key")
	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "emit canonical (RFC 8785) JSON")
	cmd.Flags().StringVar(&opts.Save, "save", "", "save the document into this database")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	params, err := template.ParseParams(opts.Params)
	if err != nil {
		return formatter.failTemplate(err)
	}

	tmpl, err := template.Load(path)
	if err != nil {
		return formatter.failTemplate(err)
	}
	formatter.VerboseLog("Loaded template %s from %s (%d fragment(s))", tmpl.Name, path, len(tmpl.Fragments))

	root, err := template.Compile(tmpl, params)
	if err != nil {
		return formatter.failTemplate(err)
	}
	if opts.Wrap != "" {
		root = root.Wrapped(opts.Wrap)
	}
	doc := root.MakeQuery()

	body, err := encodeDocument(doc, opts.Canonical)
	if err != nil {
		return formatter.fail(ErrCodeEncode, ExitFailure, err, nil)
	}

	fingerprint, err := value.Fingerprint(doc)
	if err != nil {
		return formatter.fail(ErrCodeEncode, ExitFailure, err, nil)
	}

	if opts.Save != "" {
		if err := saveDocument(cmd, opts.Save, tmpl.Name, doc); err != nil {
			return formatter.fail(ErrCodeDatabase, ExitCommandError, err, nil)
		}
		formatter.VerboseLog("Saved %s as %s in %s", tmpl.Name, fingerprint, opts.Save)
	}

	if formatter.Format == "json" {
		return formatter.Success(RenderResult{
			Name:        tmpl.Name,
			Fingerprint: fingerprint,
			Saved:       opts.Save != "",
			Document:    body,
		})
	}

	fmt.Fprintln(formatter.Writer, string(body))
	if opts.Save != "" {
		fmt.Fprintf(formatter.GetErrWriter(), "Saved %s as %s\n", tmpl.Name, fingerprint)
	}
	return nil
}

// encodeDocument serializes doc as canonical or indented JSON.
func encodeDocument(doc value.Map, canonical bool) ([]byte, error) {
	if canonical {
		return value.MarshalCanonical(doc)
	}
	return value.MarshalIndent(doc)
}

// rawDocument encodes a stored body for embedding in a JSON payload.
func rawDocument(doc value.Map) (json.RawMessage, error) {
	return value.Marshal(doc)
}

func saveDocument(cmd *cobra.Command, dbPath, name string, doc value.Map) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = st.Save(cmd.Context(), name, doc)
	return err
}

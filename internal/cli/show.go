package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/esquery/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Canonical bool
}

// DocumentResult is the JSON payload describing one stored document.
type DocumentResult struct {
	Fingerprint string          `json:"fingerprint"`
	Name        string          `json:"name"`
	Seq         int64           `json:"seq"`
	Document    json.RawMessage `json:"document"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <db> <fingerprint>",
		Short:         "Print a saved query document",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "emit canonical (RFC 8785) JSON")

	return cmd
}

func runShow(opts *ShowOptions, dbPath, fingerprint string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openExisting(dbPath)
	if err != nil {
		return formatter.fail(ErrCodeDatabase, ExitCommandError, err, nil)
	}
	defer st.Close()

	doc, err := st.Get(cmd.Context(), fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return formatter.fail(ErrCodeNotFound, ExitCommandError,
			fmt.Errorf("no document with fingerprint %s", fingerprint), nil)
	}
	if err != nil {
		return formatter.fail(ErrCodeDatabase, ExitCommandError, err, nil)
	}

	body, err := encodeDocument(doc.Body, opts.Canonical)
	if err != nil {
		return formatter.fail(ErrCodeEncode, ExitFailure, err, nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(DocumentResult{
			Fingerprint: doc.Fingerprint,
			Name:        doc.Name,
			Seq:         doc.Seq,
			Document:    body,
		})
	}

	formatter.VerboseLog("Document %s (%s, #%d)", doc.Fingerprint, doc.Name, doc.Seq)
	fmt.Fprintln(formatter.Writer, string(body))
	return nil
}

// openExisting opens a database that must already exist.
// store.Open would silently create a new empty one.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found: %s", path)
		}
		return nil, fmt.Errorf("accessing database: %w", err)
	}
	return store.Open(path)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Count     int              `json:"count"`
	Documents []DocumentResult `json:"documents"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <db>",
		Short:         "List saved query documents",
		Long:          "List saved query documents ordered by name, then fingerprint.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	st, err := openExisting(dbPath)
	if err != nil {
		return formatter.fail(ErrCodeDatabase, ExitCommandError, err, nil)
	}
	defer st.Close()

	docs, err := st.List(cmd.Context())
	if err != nil {
		return formatter.fail(ErrCodeDatabase, ExitCommandError, err, nil)
	}

	if formatter.Format == "json" {
		result := ListResult{Count: len(docs), Documents: make([]DocumentResult, 0, len(docs))}
		for _, doc := range docs {
			body, err := rawDocument(doc.Body)
			if err != nil {
				return formatter.fail(ErrCodeEncode, ExitFailure, err, nil)
			}
			result.Documents = append(result.Documents, DocumentResult{
				Fingerprint: doc.Fingerprint,
				Name:        doc.Name,
				Seq:         doc.Seq,
				Document:    body,
			})
		}
		return formatter.Success(result)
	}

	if len(docs) == 0 {
		fmt.Fprintln(formatter.Writer, "No documents saved.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tNAME\tFINGERPRINT")
	for _, doc := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", doc.Seq, doc.Name, doc.Fingerprint)
	}
	return tw.Flush()
}

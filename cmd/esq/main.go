// Command esq renders Elasticsearch query documents from templates.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/esquery/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// ExitErrors were already reported by the formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}

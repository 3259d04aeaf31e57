// Package compile implements the compile command, which prints the CQL
// query for a set of filters without contacting the SRU endpoint.
package compile

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/overheid-search/cmd/common"
	"github.com/jonesrussell/overheid-search/internal/service"
)

// Command returns the compile command.
func Command() *cobra.Command {
	var (
		filters common.FilterFlags
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the CQL query for the given filters",
		Long: `Compile the filters into the CQL query sent to the SRU endpoint.

Examples:
  # Phrase search in the official publications
  overheid compile -q '"digitale vergadering"' -c officielepublicaties

  # Facet filters, newest first
  overheid compile -f dt.type=Wet -f dt.type=Besluit --sort date
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(cmd, "stderr")
			if err != nil {
				return err
			}

			svc := service.NewSearchService(nil, deps.Config, nil, deps.Logger)
			spec, err := filters.Spec(svc.Normalize)
			if err != nil {
				return err
			}
			compiled := svc.Compile(spec)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(compiled)
			}

			fmt.Fprintln(out, compiled.Query)
			if compiled.SortKeys != "" {
				fmt.Fprintf(out, "sortKeys:   %s\n", compiled.SortKeys)
			}
			fmt.Fprintf(out, "complexity: %d\n", compiled.Complexity)
			return nil
		},
	}

	filters.Register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the compiled query as JSON")
	return cmd
}

// Package search implements the search command, which runs the full
// pipeline against the SRU endpoint and prints the results.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/overheid-search/cmd/common"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/service"
	"github.com/jonesrussell/overheid-search/internal/sru"
)

// Table layout.
const (
	titleColumnWidth = 60
	urlColumnWidth   = 80
	facetTermsShown  = 5
)

// Command returns the search command.
func Command() *cobra.Command {
	var (
		filters    common.FilterFlags
		tree       bool
		asJSON     bool
		showFacets bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search overheid.nl and print the results",
		Long: `Search runs the query against the SRU endpoint and prints a results table.

Examples:
  # Laws about the municipality act, newest first
  overheid search -q gemeentewet -t Wet --sort date

  # Second page of parliamentary papers, with facets
  overheid search -c sgd --page 2 --facets

  # Inspect the raw SRU response
  overheid search -q grondwet --tree
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(cmd, "stderr")
			if err != nil {
				return err
			}

			client := sru.NewClient(deps.Config.ClientConfig(), deps.Logger)
			svc := service.NewSearchService(client, deps.Config, nil, deps.Logger)

			spec, err := filters.Spec(svc.Normalize)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if tree {
				root, rawErr := svc.Raw(cmd.Context(), spec)
				if rawErr != nil {
					return fmt.Errorf("search failed: %w", rawErr)
				}
				return writeJSON(out, root)
			}

			resp, err := svc.Search(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if asJSON {
				return writeJSON(out, resp)
			}

			RenderResults(out, resp)
			if showFacets {
				RenderFacets(out, resp.Facets)
			}
			return nil
		},
	}

	filters.Register(cmd)
	cmd.Flags().BoolVar(&tree, "tree", false, "print the parsed SRU response tree as JSON")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the search response as JSON")
	cmd.Flags().BoolVar(&showFacets, "facets", false, "also print the facets")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.DrawBorder = true
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// RenderResults writes the records of resp as a table.
func RenderResults(w io.Writer, resp *domain.SearchResponse) {
	t := newTable(w)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: titleColumnWidth},
		{Number: 5, WidthMax: urlColumnWidth},
	})
	t.AppendHeader(table.Row{"#", "Title", "Type", "Date", "URL"})

	for _, doc := range resp.Records {
		title := doc.Title
		if doc.Error {
			title = doc.DocumentIcon + " " + doc.Title
		}
		t.AppendRow(table.Row{doc.Position, title, doc.Type, doc.DisplayDate, documentURL(doc)})
	}

	info := resp.SearchInfo
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d results", resp.TotalRecords),
		"",
		fmt.Sprintf("page %d/%d", info.CurrentPage, info.TotalPages),
		fmt.Sprintf("%d ms", resp.Performance.ProcessingTime),
	})

	fmt.Fprintf(w, "\nQuery: %s\n", resp.Query)
	t.Render()
}

// RenderFacets writes the top terms of each facet.
func RenderFacets(w io.Writer, facets []domain.Facet) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Facet", "Term", "Count", "%"})
	for _, facet := range facets {
		for i, term := range facet.Terms[:min(facetTermsShown, len(facet.Terms))] {
			name := ""
			if i == 0 {
				name = facet.DisplayName
			}
			t.AppendRow(table.Row{name, term.DisplayName, term.Count, term.Percentage})
		}
		t.AppendSeparator()
	}

	fmt.Fprintln(w, "\nFacets:")
	t.Render()
}

func documentURL(doc domain.Document) string {
	for _, u := range []string{doc.PreferredURL, doc.PDFURL, doc.AlternativeURL} {
		if u = strings.TrimSpace(u); u != "" {
			return u
		}
	}
	return "N/A"
}

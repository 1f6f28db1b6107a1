// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/topology-engine/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed entities by name, id, or type",
	Long: `Search matches the query as a case-insensitive substring of each indexed
entity's name, id, or type. Every hit lists its containment ancestors,
outermost first.

Use --export with --out to write the whole index as YAML or JSON.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("type", "", "only entities of this type")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("export", "", "export the index instead of searching: yaml or json")
	searchCmd.Flags().String("out", "", "export destination file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if _, err := s.Snapshot(ctx); err != nil {
		return err
	}

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--export requires --out")
		}
		switch format {
		case "yaml":
			err = s.ExportYAML(ctx, out)
		case "json":
			err = s.ExportJSON(ctx, out)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
		return nil
	}

	itemType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	results, err := s.Search(ctx, store.SearchOptions{
		Query:      strings.Join(args, " "),
		Type:       itemType,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []store.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []store.SearchResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-24s  %-12s  %-30s  %s\n", "ID", "Type", "Name", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		name := r.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		path := strings.Join(append(append([]string{}, r.Ancestors...), r.ID), " / ")
		fmt.Fprintf(w, "%-24s  %-12s  %-30s  %s\n", r.ID, r.Type, name, path)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

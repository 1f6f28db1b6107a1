// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/topology-engine/internal/forest"
	"github.com/pdiddy/topology-engine/internal/graph"
	"github.com/pdiddy/topology-engine/internal/logging"
	"github.com/pdiddy/topology-engine/internal/render"
	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Render the containment hierarchy as an interactive tree",
	Long: `Tree builds the containment forest of a textproto model from its
containment relationships (RK_CONTAINS by default) and writes it as an
interactive HTML page, or as JSON or YAML for other viewers.

Roots are containers that are never contained, plus entities with no
containment edges at all. Ids referenced by an edge but never declared
appear as placeholder nodes. A containment cycle reachable from a root is
an error; a cycle with no root is left out of the forest and reported.`,
	Example: `  topology-engine tree -i filtered.txtpb -o tree.html
  topology-engine tree -i model.txtpb -o tree.json --format json`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringP("input", "i", "", "input textproto file")
	treeCmd.Flags().StringP("output", "o", "", "output file")
	treeCmd.Flags().String("title", render.DefaultTitle, "HTML page title")
	treeCmd.Flags().String("format", string(types.FormatHTML), "output format: html, json, or yaml")
	treeCmd.Flags().Bool("strict", false, "fail when declared entities are missing from the forest")
	treeCmd.MarkFlagRequired("input")
	treeCmd.MarkFlagRequired("output")

	viper.BindPFlag("tree.title", treeCmd.Flags().Lookup("title"))
	viper.BindPFlag("tree.format", treeCmd.Flags().Lookup("format"))
	viper.BindPFlag("tree.strict", treeCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(treeCmd)
}

func treeConfig(cmd *cobra.Command) (types.TreeConfig, error) {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	format, err := render.ParseFormat(viper.GetString("tree.format"))
	if err != nil {
		return types.TreeConfig{}, err
	}
	return types.TreeConfig{
		Input:           input,
		Output:          output,
		ContainmentKind: viper.GetString("tree.containment_kind"),
		Title:           viper.GetString("tree.title"),
		Format:          format,
		Strict:          viper.GetBool("tree.strict"),
	}, nil
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := treeConfig(cmd)
	if err != nil {
		return err
	}

	text, err := readInput(cfg.Input)
	if err != nil {
		return err
	}

	g := graph.Parse(textproto.FlatParser{}, text)
	logging.Discards(logger, g.Discarded)
	logging.Kinds(logger, g.Kinds())
	for _, id := range g.Redeclared {
		logger.Warn("entity declared more than once, keeping the last declaration", "id", id)
	}

	f, err := forest.Build(g.Entities, g.Edges(cfg.ContainmentKind))
	if err != nil {
		return err
	}
	if len(f.Omitted) > 0 {
		if cfg.Strict {
			return fmt.Errorf("%d entities have no root (containment cycle): %s",
				len(f.Omitted), strings.Join(f.Omitted, ", "))
		}
		logger.Warn("entities left out of the forest, no root reaches them", "ids", strings.Join(f.Omitted, ","))
	}

	opts := render.Options{
		Format:          cfg.Format,
		Title:           cfg.Title,
		ContainmentKind: cfg.ContainmentKind,
	}
	err = writeOutput(cfg.Output, func(w io.Writer) error {
		return render.Render(w, f.Roots, opts)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tree: %d roots, %d nodes written to %s\n", len(f.Roots), f.Count(), cfg.Output)
	return nil
}

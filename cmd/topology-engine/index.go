// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/topology-engine/internal/graph"
	"github.com/pdiddy/topology-engine/internal/logging"
	"github.com/pdiddy/topology-engine/internal/store"
	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load a textproto model into the SQLite index",
	Long: `Index parses a textproto model and replaces the contents of the SQLite
index (--db) with its entities and relationships. Search and export read
from the index without re-parsing the model.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP("input", "i", "", "input textproto file")
	indexCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(indexCmd)
}

// storeConfig collects the index settings shared by index and search.
func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		DBPath:          viper.GetString("store.db_path"),
		ContainmentKind: viper.GetString("tree.containment_kind"),
		MaxResults:      viper.GetInt("store.max_results"),
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")

	text, err := readInput(input)
	if err != nil {
		return err
	}
	g := graph.Parse(textproto.FlatParser{}, text)
	logging.Discards(logger, g.Discarded)
	logging.Kinds(logger, g.Kinds())
	for _, id := range g.Redeclared {
		logger.Warn("entity declared more than once, keeping the last declaration", "id", id)
	}

	s, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.Index(cmd.Context(), g, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed: %d entities, %d relationships\n", snap.Entities, snap.Relationships)
	return nil
}

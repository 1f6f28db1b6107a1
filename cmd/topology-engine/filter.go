// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/topology-engine/internal/filter"
	"github.com/pdiddy/topology-engine/internal/logging"
	"github.com/pdiddy/topology-engine/internal/textproto"
	"github.com/pdiddy/topology-engine/pkg/types"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Keep relationships of chosen kinds and the entities they reference",
	Long: `Filter reads a textproto model and writes a reduced model containing
only the relationships whose kind is listed in --relationships, plus the
entity blocks those relationships reference. Entities come first, then
relationships, each in their original order.`,
	Example: `  topology-engine filter -i model.txtpb -r RK_CONTAINS,RK_CONTROLS -o filtered.txtpb`,
	RunE:    runFilter,
}

func init() {
	filterCmd.Flags().StringP("input", "i", "", "input textproto file")
	filterCmd.Flags().StringP("output", "o", "", "output filtered textproto file")
	filterCmd.Flags().StringP("relationships", "r", "", "comma-separated relationship kinds to keep, e.g. RK_CONTAINS,RK_CONTROLS")
	filterCmd.MarkFlagRequired("input")
	filterCmd.MarkFlagRequired("output")

	viper.BindPFlag("filter.relationships", filterCmd.Flags().Lookup("relationships"))

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")

	// GetStringSlice covers both a comma string (flag, env) and a YAML list.
	kinds := filter.ParseKinds(strings.Join(viper.GetStringSlice("filter.relationships"), ","))
	if len(kinds) == 0 {
		return fmt.Errorf("provide one or more relationship kinds with --relationships")
	}

	cfg := types.FilterConfig{
		Input:         input,
		Output:        output,
		Relationships: kinds,
	}

	text, err := readInput(cfg.Input)
	if err != nil {
		return err
	}
	result := filter.Document(textproto.FlatParser{}, text, cfg.Relationships)
	logging.Discards(logger, result.Discarded)

	err = writeOutput(cfg.Output, func(w io.Writer) error {
		_, err := result.WriteTo(w)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "filtered: %d entities, %d relationships (kinds: %s)\n",
		len(result.Entities), len(result.Relationships), strings.Join(kinds, ","))
	return nil
}

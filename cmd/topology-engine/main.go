// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the topology-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/topology-engine/internal/logging"
	"github.com/pdiddy/topology-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostics logger, built from log.level before any
// subcommand runs.
var logger = log.Default()

// rootCmd is the base command for the topology-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "topology-engine",
	Short: "Filter and browse NMTS textproto topology models",
	Long: `topology-engine reads network models written as textproto entity and
relationship blocks. It can reduce a model to chosen relationship kinds,
render the containment hierarchy as an interactive tree, and keep a
searchable SQLite index of the model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(os.Stderr, viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./topology-engine.yaml or ~/.config/topology-engine/topology-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("containment-kind", types.DefaultContainmentKind, "relationship kind that forms the containment hierarchy")
	rootCmd.PersistentFlags().String("db", "topology.db", "SQLite index database")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("tree.containment_kind", rootCmd.PersistentFlags().Lookup("containment-kind"))
	viper.BindPFlag("store.db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("topology-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "topology-engine"))
		}
	}

	viper.SetEnvPrefix("TOPOLOGY_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Crestline Operations Inc., 2026. All rights reserved.

// Package main is the entry point for the opsbrain CLI: the central
// intelligence index behind the Crestline operations assistant. Producers
// (chat, issue tracker, knowledge base, team management, SOP builder,
// voice) feed events in through add; consumers pull ranked context back
// out through query before composing an LLM prompt.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crestline/opsbrain/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the opsbrain CLI.
var rootCmd = &cobra.Command{
	Use:   "opsbrain",
	Short: "Central intelligence index for the operations assistant",
	Long: `opsbrain maintains a bounded, ranked index of operational knowledge:
chat answers, resolved issues, uploaded documents, team changes, and SOPs.

Producers record noteworthy events with add. Consumers run query to pull
the most relevant items back out, ranked by lexical relevance, recency,
and producer-assigned boost, ready to inject into an LLM system prompt.
Knowledge documents and issues live in a SQLite records store managed by
the records subcommands.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./opsbrain.yaml or ~/.config/opsbrain/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "base directory for durable state (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("opsbrain")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "opsbrain"))
		}
	}

	viper.SetEnvPrefix("OPSBRAIN")
	viper.AutomaticEnv()

	// No default for intelligence.capacity: when the config leaves it
	// unset, the capacity persisted in the snapshot wins.
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("intelligence.max_results", 5)
	viper.SetDefault("intelligence.min_score", 1)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from flags, environment,
// and the config file.
func loadConfig(cmd *cobra.Command) types.Config {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("data_dir")
	}

	return types.Config{
		Intelligence: types.IntelligenceConfig{
			DataDir:    dataDir,
			Capacity:   viper.GetInt("intelligence.capacity"),
			MaxResults: viper.GetInt("intelligence.max_results"),
			MinScore:   viper.GetInt("intelligence.min_score"),
		},
		Records: types.RecordsConfig{
			DataDir: dataDir,
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the draftwise CLI.
//
// draftwise keeps two content memory banks — the user's own past scripts
// and clips from favorite creators — and uses them to ground AI rewrites
// of rough drafts. Each operation is a subcommand: add-style, add-creator,
// list, delete, improve and serve.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "draftwise",
	Short: "AI assistant for content-creator scripts",
	Long: `draftwise improves rough script drafts with a chat model (Claude or GPT),
grounded in two personal memory banks: your own past content and transcripts
from creators you admire. Entries are embedded into a local vector index so
the most relevant examples feed each rewrite.

API keys come from the environment (or a .env file): ANTHROPIC_API_KEY for
Claude models, OPENAI_API_KEY for GPT models and embeddings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; the environment may carry the keys.
		_ = godotenv.Load()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./draftwise.yaml or ~/.config/draftwise/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "library data directory (default: ./content_memory)")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("draftwise")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/draftwise")
		}
	}

	viper.SetEnvPrefix("DRAFTWISE")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", "./content_memory")
	viper.SetDefault("model", "Claude Sonnet 4")
	viper.SetDefault("addr", ":8080")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: reading config: %v\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

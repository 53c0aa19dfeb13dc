package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/draftwise/draftwise/enhance"
	"github.com/draftwise/draftwise/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over WebSocket",
	Long: `serve starts an HTTP server with two endpoints: GET /health reports
library counts, and GET /ws accepts WebSocket connections that stream
script improvements chunk by chunk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = viper.GetString("addr")
		}

		providers := buildProviders()
		if len(providers) == 0 {
			return fmt.Errorf("no API keys found; set ANTHROPIC_API_KEY and/or OPENAI_API_KEY")
		}
		// Fail now if the default model's key is missing.
		if _, err := resolveModel("", providers); err != nil {
			return err
		}

		embedder, cleanup, err := newEmbedder()
		if err != nil {
			return err
		}
		defer cleanup()

		lib, err := openLibrary(embedder)
		if err != nil {
			return err
		}
		defer lib.Close()

		counts, err := lib.Counts(cmd.Context())
		if err != nil {
			return err
		}

		for name := range providers {
			log.Printf("[SERVE] provider configured: %s", name)
		}
		log.Printf("[SERVE] library: %d style entries, %d creator clips", counts.Style, counts.Creators)
		log.Printf("[SERVE] WebSocket: ws://localhost%s/ws", addr)
		log.Printf("[SERVE] Health:    http://localhost%s/health", addr)

		srv := server.New(server.Config{
			Improver: enhance.New(lib, providers),
			Library:  lib,
		})
		return srv.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: :8080)")

	rootCmd.AddCommand(serveCmd)
}

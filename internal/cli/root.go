// Package cli wires the quietharbor commands: interactive chat, one-shot
// classification, history inspection, safety log tooling, and the HTTP
// and MCP servers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "quietharbor",
	Short: "Supportive conversation service with crisis detection",
	Long:  "Provides empathetic, LLM-backed support conversations with keyword-based\ncrisis screening, a tamper-evident safety log, and crisis resource listings.\nNot a replacement for professional mental health services.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config YAML (default ~/.quietharbor/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Package main provides the star_coach CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/config"
	"github.com/jonathan/star-coach/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "star_coach",
	Short: "STAR interview story coach",
	Long: `star_coach scores behavioral interview stories written in STAR form, tracks
leadership principle coverage across a story bank and asks an LLM for coaching.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (json or yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

// setup loads configuration and builds the logger. Flags override the config.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := config.Config{LogLevel: logLevel, LogFormat: logFormat}
	cfg := flags.MergeWithDefaults(*loaded)
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appConfig = &cfg
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

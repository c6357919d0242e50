// Package cmd provides CLI commands for bunken.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bunken-app/bunken/config"
	"github.com/bunken-app/bunken/store"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "bunken",
	Short: "Manage an academic bibliography with Japanese citation formatting",
	Long: `Bunken manages a personal bibliography of Japanese and foreign
literature and renders it in the citation style used by Japanese academic
writing: full bibliography entries, inline citations with author-year
disambiguation, and full-width punctuation handled correctly.

Examples:
  bunken list
  bunken cite 4f3a0c1e --page 45-58
  bunken lookup isbn 9784276110168
  bunken import -i references.json
  bunken serve`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads the configuration and opens the database every
// subcommand works against.
func openStore() (*config.Config, *store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func init() {
	setupLogger()
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(citeCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(serveCmd)
}

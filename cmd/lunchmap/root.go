package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pkordes/lunchmap/internal/client"
	"github.com/pkordes/lunchmap/internal/config"
)

// app holds what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE, after flags are parsed.
type app struct {
	// Flags
	apiURL   string
	logLevel string
	envFile  string

	cfg    config.Config
	logger *slog.Logger
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lunchmap",
		Short: "Browse, register and review lunch shops",
		Long: `lunchmap is the command-line client for the Lunchmap shop API.

Settings are read from the environment (API_URL, HTTP_TIMEOUT, LOG_LEVEL),
optionally from a .env file, and can be overridden with flags.

Run "lunchmap session" for the interactive map session.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Base URL of the shop API (default $API_URL or http://localhost:8080)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional .env file loaded before reading the environment")

	root.AddCommand(
		newShopsCmd(a),
		newShopCmd(a),
		newReviewsCmd(a),
		newAddShopCmd(a),
		newAddReviewCmd(a),
		newSessionCmd(a),
	)
	return root
}

// setup loads configuration with the flags taking precedence over the
// environment, then builds the logger and API client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		config.LoadDotEnv(a.envFile)
	}
	cfg, err := config.LoadWithOverrides(config.Overrides{
		"API_URL":   a.apiURL,
		"LOG_LEVEL": a.logLevel,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.client = client.New(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, a.logger)
	a.logger.Debug("client configured", "api_url", cfg.APIURL, "timeout", cfg.HTTPTimeout.String())
	return nil
}

// Command server runs the CollabSpace HTTP API.
//
// Configuration comes from collabspace.yaml, a .env file and COLLAB_*
// environment variables (see internal/config). At minimum set
//
//	COLLAB_JWT_SECRET=$(openssl rand -hex 32)
//
// and optionally COLLAB_GITHUB_TOKEN to lift GitHub's anonymous rate limit.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/config"
	"github.com/sakif/collabspace/internal/server"
)

func main() {
	var configFile string
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Run the CollabSpace API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "path to a YAML config file")

	if err := cmd.Execute(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.GitHubToken == "" {
		logger.Warn("COLLAB_GITHUB_TOKEN not set, GitHub sync is limited to 60 requests per hour")
	}

	// The SQLite file's directory must exist before the driver opens it.
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			return fmt.Errorf("creating database directory %s: %w", dbDir, err)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until SIGINT or SIGTERM.
	return srv.Start()
}

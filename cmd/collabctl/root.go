package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/config"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/repository/localfile"
	sqliteRepo "github.com/sakif/collabspace/internal/repository/sqlite"
)

// cfg is loaded once in PersistentPreRunE, before any subcommand runs.
var cfg = &config.Config{}

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "collabctl",
	Short:         "Operate a CollabSpace installation from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(scoreCmd, transcriptCmd, syncCmd, migrateCmd, seedCmd)
}

// newLogger writes to stderr so it never interleaves with table output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openDB opens (and migrates) the configured SQLite database, creating its
// directory if needed.
func openDB() (*sqliteRepo.DB, error) {
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return sqliteRepo.New(cfg.DBPath)
}

type boardRepo interface {
	repository.ProjectRepository
	repository.TaskRepository
}

// boardStore picks where projects and tasks live, matching the server's
// store setting.
func boardStore(db *sqliteRepo.DB) boardRepo {
	if cfg.Store == config.StoreLocal {
		return localfile.New(cfg.LocalPath)
	}
	return db
}

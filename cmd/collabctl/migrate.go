package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Opening the database migrates it.
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("%s is at schema version %d\n", cfg.DBPath, version)
		return nil
	},
}

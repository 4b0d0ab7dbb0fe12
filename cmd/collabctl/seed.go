package main

import (
	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty project board with demo projects and tasks.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		board := boardStore(db)
		res, err := service.NewSeeder(board, board, newLogger()).Seed(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("%s (%d projects)\n", res.Message, res.Projects)
		return nil
	},
}

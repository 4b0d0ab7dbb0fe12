package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/github"
	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/service"
)

var (
	syncTeam string
	syncRepo string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and score a team's latest GitHub commits.",
	Long: `Pull the latest commits of the team's connected repository, score them
and store the results, exactly as POST /api/github/commits does.

Pass --repo to connect (or reconnect) a repository first.`,
	Example: `  collabctl sync --team t1 --repo https://github.com/octo/app`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		gh, err := github.New(github.Config{
			Token:       cfg.GitHubToken,
			BaseURL:     cfg.GitHubAPIURL,
			DetailLimit: cfg.DetailLimit,
		}, logger)
		if err != nil {
			return err
		}
		svc := service.NewGitHubService(db, db, gh, cfg.SyncLimit, logger)

		ctx := cmd.Context()
		if syncRepo != "" {
			if _, err := svc.Connect(ctx, syncTeam, syncRepo); err != nil {
				return err
			}
		}
		res, err := svc.Sync(ctx, syncTeam)
		if err != nil {
			return err
		}
		return writeSync(cmd.OutOrStdout(), res)
	},
}

func init() {
	syncCmd.Flags().StringVar(&syncTeam, "team", service.DefaultTeamID, "team ID")
	syncCmd.Flags().StringVar(&syncRepo, "repo", "", "repository URL to connect before syncing")
}

func shortSHA(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

func writeSync(w io.Writer, res *service.SyncResult) error {
	if _, err := fmt.Fprintf(w, "Synced %d commits\n", res.Synced); err != nil {
		return err
	}
	if len(res.Commits) == 0 {
		return nil
	}
	return writeCommits(w, res.Commits)
}

func writeCommits(w io.Writer, commits []model.Commit) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"SHA", "Author", "Score", "Level", "+/-", "Message"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})
	var data [][]string
	for _, c := range commits {
		data = append(data, []string{
			shortSHA(c.CommitID),
			c.Author,
			strconv.Itoa(c.Score),
			colorLevel(c.Level),
			fmt.Sprintf("+%d/-%d", c.Additions, c.Deletions),
			c.Message,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

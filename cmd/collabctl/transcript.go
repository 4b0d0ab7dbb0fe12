package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/service"
	"github.com/sakif/collabspace/internal/transcript"
)

var transcriptTeam string

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Print a team's contribution transcript.",
	Long: `Build the transcript for a team from the commits stored in the database
and print its scores, skill split and leaderboard.

A team with no synced commits prints the demo transcript, as the web
app does.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		svc := service.NewTranscriptService(db, boardStore(db), nil, newLogger())
		return writeTranscript(cmd.OutOrStdout(), svc.Build(cmd.Context(), transcriptTeam, ""))
	},
}

func init() {
	transcriptCmd.Flags().StringVar(&transcriptTeam, "team", service.DefaultTeamID, "team ID")
}

func writeTranscript(w io.Writer, d transcript.Data) error {
	if _, err := fmt.Fprintf(w, "Team %s: %s (%s)\n%s\n\n", d.TeamID, d.StudentName, d.Role, d.Summary); err != nil {
		return err
	}

	scores := tablewriter.NewWriter(w)
	scores.Header([]string{"Metric", "Value"})
	scores.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})
	rows := [][]string{
		{"Contribution", strconv.Itoa(d.ContributionScore)},
		{"Impact", strconv.Itoa(d.ImpactScore)},
		{"Consistency", strconv.Itoa(d.ConsistencyScore)},
		{"Tasks", strconv.Itoa(d.TaskScore)},
		{"Commits", strconv.Itoa(d.TotalCommits)},
		{"High-impact commits", strconv.Itoa(d.HighImpactCommits)},
		{"Tasks done", fmt.Sprintf("%d/%d", d.DoneTasks, d.TotalTasks)},
		{"Skills (B/F/DB/AI %)", fmt.Sprintf("%d/%d/%d/%d",
			d.Skills.Backend, d.Skills.Frontend, d.Skills.Database, d.Skills.AI)},
	}
	if err := scores.Bulk(rows); err != nil {
		return err
	}
	if err := scores.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nLeaderboard"); err != nil {
		return err
	}
	board := tablewriter.NewWriter(w)
	board.Header([]string{"Rank", "Name", "Role", "Score", "Commits"})
	board.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, e := range d.Leaderboard {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			e.Name,
			string(e.Role),
			strconv.Itoa(e.ContributionScore),
			strconv.Itoa(e.Commits),
		})
	}
	if err := board.Bulk(data); err != nil {
		return err
	}
	return board.Render()
}

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sakif/collabspace/internal/impact"
)

var scoreInput impact.RawCommit

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one commit from its message and diff size.",
	Long: `Run the impact analyzer on a commit described by flags.

Nothing is read from GitHub or the database. Useful for checking how a
message and a diff size translate into a score before pushing.`,
	Example: `  collabctl score -m "feat: add payment API" --additions 240 --deletions 30 --files 6`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if scoreInput.Additions < 0 || scoreInput.Deletions < 0 || scoreInput.FilesChanged < 0 {
			return errors.New("additions, deletions and files must not be negative")
		}
		return writeScore(cmd.OutOrStdout(), impact.Analyze(scoreInput))
	},
}

func init() {
	f := scoreCmd.Flags()
	f.StringVarP(&scoreInput.Message, "message", "m", "", "commit message")
	f.IntVar(&scoreInput.Additions, "additions", 0, "lines added")
	f.IntVar(&scoreInput.Deletions, "deletions", 0, "lines deleted")
	f.IntVar(&scoreInput.FilesChanged, "files", 0, "files changed")
	f.StringVar(&scoreInput.CommitID, "id", "", "commit SHA; selects the insight sentence")
}

var (
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgCyan)
)

func levelColor(level impact.Level) *color.Color {
	switch level {
	case impact.LevelHigh:
		return highColor
	case impact.LevelMedium:
		return mediumColor
	default:
		return lowColor
	}
}

// colorLevel renders a level label in its colour.
func colorLevel(level impact.Level) string {
	return levelColor(level).Sprint(string(level))
}

func writeScore(w io.Writer, res impact.Result) error {
	_, err := fmt.Fprintf(w, "Score:   %d/100 (%s)\nInsight: %s\n", res.Score, colorLevel(res.Level), res.Insight)
	return err
}

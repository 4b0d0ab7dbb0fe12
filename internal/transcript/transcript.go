// Package transcript turns a team's analyzed commits and tasks into a
// contribution transcript: headline scores, a skill split, a role, a short
// narrative summary, a 14-day activity timeline and a team leaderboard.
//
// Everything here is computed from the arguments. Loading commits and tasks,
// and falling back to Demo when the store is unavailable, is the caller's job.
package transcript

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sakif/collabspace/internal/impact"
	"github.com/sakif/collabspace/internal/model"
)

const (
	// consistencyWindowDays is the evaluation window for the consistency score.
	consistencyWindowDays = 30
	consistencyBonus      = 20
	timelineDays          = 14
	leaderboardSize       = 5

	defaultStudentName  = "Arjun Sharma"
	defaultStudentEmail = "arjun@college.edu"
	// Aggregated transcripts are not tied to an account, so the summary
	// addresses a neutral name until Personalize is applied.
	summaryName = "Student"

	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 02"
)

var leaderColors = [leaderboardSize]string{"#6366f1", "#14b8a6", "#f59e0b", "#ec4899", "#8b5cf6"}

// Data is a computed transcript. It is never stored.
type Data struct {
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	TeamID       string `json:"teamId"`

	ContributionScore int `json:"contributionScore"`
	ImpactScore       int `json:"impactScore"`
	ConsistencyScore  int `json:"consistencyScore"`
	TaskScore         int `json:"taskScore"`

	Skills          SkillScores `json:"skills"`
	Role            Role        `json:"role"`
	RoleDescription string      `json:"roleDescription"`
	Summary         string      `json:"aiSummary"`

	Leaderboard         []LeaderboardEntry `json:"leaderboard"`
	ConsistencyTimeline []TimelinePoint    `json:"consistencyTimeline"`

	TotalCommits      int `json:"totalCommits"`
	TotalTasks        int `json:"totalTasks"`
	DoneTasks         int `json:"doneTasks"`
	HighImpactCommits int `json:"highImpactCommits"`
}

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	Name              string `json:"name"`
	Initials          string `json:"initials"`
	Role              Role   `json:"role"`
	ContributionScore int    `json:"contributionScore"`
	Commits           int    `json:"commits"`
	Color             string `json:"color"`
}

type TimelinePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Build computes the transcript for teamID. now anchors the timeline; its UTC
// date is the last day shown. With no commits Build returns Demo().
func Build(teamID string, commits []model.Commit, tasks []model.Task, now time.Time) Data {
	if len(commits) == 0 {
		return Demo()
	}

	sum, high := 0, 0
	messages := make([]string, 0, len(commits))
	days := make(map[string]int)
	for _, c := range commits {
		sum += c.Score
		if c.Level == impact.LevelHigh {
			high++
		}
		messages = append(messages, c.Message)
		days[c.Timestamp.UTC().Format(dayKeyLayout)]++
	}
	avgImpact := RoundDiv(sum, len(commits))
	consistency := consistencyScore(len(days))

	done := 0
	for _, t := range tasks {
		if t.Status == model.TaskDone {
			done++
		}
	}
	taskScore := 0
	if len(tasks) > 0 {
		taskScore = RoundDiv(done*100, len(tasks))
	}

	contribution := CalcContributionScore(avgImpact, done, len(tasks), consistency)
	skills := DetectSkills(messages)
	role := DetectRole(len(commits), avgImpact, done)

	board := leaderboard(commits, done)
	if len(board) == 0 {
		board = demoLeaderboard()
	}

	return Data{
		StudentName:         defaultStudentName,
		StudentEmail:        defaultStudentEmail,
		TeamID:              teamID,
		ContributionScore:   contribution,
		ImpactScore:         avgImpact,
		ConsistencyScore:    consistency,
		TaskScore:           taskScore,
		Skills:              skills,
		Role:                role.Role,
		RoleDescription:     role.Description,
		Summary:             GenerateSummary(summaryName, role.Role, skills, contribution),
		Leaderboard:         board,
		ConsistencyTimeline: timeline(days, now),
		TotalCommits:        len(commits),
		TotalTasks:          len(tasks),
		DoneTasks:           done,
		HighImpactCommits:   high,
	}
}

// CalcContributionScore weights impact 50%, task completion 30% and
// consistency 20%, capped at 100.
func CalcContributionScore(avgImpact, doneTasks, totalTasks, consistencyScore int) int {
	ratio := 0.0
	if totalTasks > 0 {
		ratio = float64(doneTasks) / float64(totalTasks)
	}
	score := float64(avgImpact)*0.5 + ratio*100*0.3 + float64(consistencyScore)*0.2
	return min(100, int(math.Round(score)))
}

// consistencyScore rewards the number of distinct active days in a 30 day
// window. Any activity at all earns the flat bonus.
func consistencyScore(uniqueDays int) int {
	s := int(math.Round(float64(uniqueDays)/consistencyWindowDays*100)) + consistencyBonus
	return min(100, s)
}

func dayScore(count int) int {
	if count <= 0 {
		return 0
	}
	return min(100, count*30+40)
}

func timeline(days map[string]int, now time.Time) []TimelinePoint {
	today := now.UTC()
	points := make([]TimelinePoint, 0, timelineDays)
	for i := timelineDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		points = append(points, TimelinePoint{
			Date:  d.Format(dayLabelLayout),
			Score: dayScore(days[d.Format(dayKeyLayout)]),
		})
	}
	return points
}

type authorStats struct {
	name   string
	impact int
	count  int
}

// leaderboard ranks commit authors by average impact. Team-wide done tasks
// are split evenly across authors when picking each author's role, since
// tasks are not attributed to commit authors.
func leaderboard(commits []model.Commit, doneTasks int) []LeaderboardEntry {
	var order []*authorStats
	byName := make(map[string]*authorStats)
	for _, c := range commits {
		name := c.Author
		if name == "" {
			name = "Unknown"
		}
		s, ok := byName[name]
		if !ok {
			s = &authorStats{name: name}
			byName[name] = s
			order = append(order, s)
		}
		s.impact += c.Score
		s.count++
	}
	if len(order) == 0 {
		return nil
	}

	tasksEach := doneTasks / len(order)
	entries := make([]LeaderboardEntry, 0, len(order))
	for _, s := range order {
		avg := RoundDiv(s.impact, s.count)
		entries = append(entries, LeaderboardEntry{
			Name:              s.name,
			Initials:          Initials(s.name),
			Role:              DetectRole(s.count, avg, tasksEach).Role,
			ContributionScore: avg,
			Commits:           s.count,
		})
	}

	// Stable so equal averages keep first-seen author order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ContributionScore > entries[j].ContributionScore
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Color = leaderColors[i]
	}
	return entries
}

// Initials returns up to two uppercase initials, one per word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// RoundDiv divides a by b, rounding half away from zero. b must not be zero.
func RoundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}

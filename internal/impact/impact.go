// Package impact scores a single commit on a 1–100 scale.
//
// HOW THE SCORE IS BUILT:
// Four independent components are added together and clamped:
//
//	base (5) + churn (0–40) + files (0–20) + keywords (0–30)
//
// The scorer is a pure function: same commit in, same result out. Nothing is
// read from the network or the database, so it is safe to call from any
// goroutine and trivial to test.
//
// The insight sentence is picked from a fixed pool using the commit SHA as a
// stable hash. Re-analysing a commit (e.g. on every sync) therefore never
// changes the text shown to the user.
package impact

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Level is the coarse three-bucket classification of an impact score.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Score thresholds and component caps.
const (
	HighThreshold   = 65
	MediumThreshold = 35

	baseScore        = 5
	maxChurnScore    = 40
	churnSaturation  = 500 // lines of churn that earn the full churn score
	maxFilesScore    = 20
	pointsPerFile    = 4
	maxKeywordScore  = 30
	highKeywordPts   = 10
	mediumKeywordPts = 5
)

// highKeywords mark commits that usually touch sensitive or central code.
var highKeywords = []string{
	"auth", "authentication", "security", "payment", "database", "db",
	"migration", "core", "critical", "api", "refactor", "feat", "feature",
	"breaking", "performance", "perf", "release", "deploy",
}

var mediumKeywords = []string{
	"fix", "bug", "patch", "update", "improve", "optimize", "add", "implement",
	"integrate", "connect", "sync", "fetch", "load",
}

var insightsHigh = []string{
	"High-impact commit touching core system functionality. Significant code changes detected.",
	"Critical commit — major feature addition with substantial lines changed.",
	"High-impact: Auth or API-level change detected. System-wide effects possible.",
	"Large-scope commit. Several files modified with notable additions — high engineering effort.",
	"High-impact release-quality commit with broad codebase coverage.",
}

var insightsMedium = []string{
	"Medium-impact commit. Addresses a bug or feature enhancement with moderate code changes.",
	"Solid improvement commit. Moderate scope changes across multiple files.",
	"Feature update or fix with measurable code impact. Good iterative progress.",
	"Medium-scope refactor or integration. Steady contribution toward project goals.",
}

var insightsLow = []string{
	"Low-impact commit. Minor edits, documentation, or config changes.",
	"Small fix or cleanup. Low code churn — routine maintenance commit.",
	"Configuration or style update. Minimal functional impact.",
	"Minor patch with limited lines changed. Routine commit.",
}

// RawCommit is a commit as reported by the source-control host, before scoring.
type RawCommit struct {
	CommitID     string    `json:"commitId"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"authorAvatar"`
	Message      string    `json:"message"`
	FilesChanged int       `json:"filesChanged"`
	Additions    int       `json:"additions"`
	Deletions    int       `json:"deletions"`
	Timestamp    time.Time `json:"timestamp"`
	URL          string    `json:"url"`
}

// Result is the output of Analyze. It is persisted next to the commit.
type Result struct {
	Score   int    `json:"impactScore"`
	Level   Level  `json:"impactLevel"`
	Insight string `json:"impactInsight"`
}

// Analyze computes the impact score, level and insight for one commit.
func Analyze(c RawCommit) Result {
	score := baseScore +
		churnScore(c.Additions+c.Deletions) +
		filesScore(c.FilesChanged) +
		keywordScore(c.Message)
	score = clamp(score, 1, 100)

	level := LevelFor(score)
	return Result{
		Score:   score,
		Level:   level,
		Insight: pickInsight(insightPool(level), c.CommitID),
	}
}

// LevelFor classifies a score. High >= 65, Medium >= 35, otherwise Low.
func LevelFor(score int) Level {
	switch {
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// churnScore is linear up to churnSaturation lines and capped at maxChurnScore.
func churnScore(churn int) int {
	if churn <= 0 {
		return 0
	}
	s := int(math.Round(float64(churn) / churnSaturation * maxChurnScore))
	return min(maxChurnScore, s)
}

func filesScore(files int) int {
	if files <= 0 {
		return 0
	}
	return min(maxFilesScore, files*pointsPerFile)
}

// keywordScore adds points for every keyword that appears anywhere in the
// lowercased message. Matching is by substring, so "fixes" counts as "fix".
func keywordScore(message string) int {
	msg := strings.ToLower(message)
	total := 0
	for _, kw := range highKeywords {
		if strings.Contains(msg, kw) {
			total = min(total+highKeywordPts, maxKeywordScore)
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(msg, kw) {
			total = min(total+mediumKeywordPts, maxKeywordScore)
		}
	}
	return total
}

func insightPool(level Level) []string {
	switch level {
	case LevelHigh:
		return insightsHigh
	case LevelMedium:
		return insightsMedium
	default:
		return insightsLow
	}
}

// pickInsight indexes the pool with the leading hex digits found in the first
// four characters of the commit ID. IDs that do not start with a hex digit
// (fixtures, manual entries) use index 0.
func pickInsight(pool []string, commitID string) string {
	prefix := commitID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	end := 0
	for end < len(prefix) && isHex(prefix[end]) {
		end++
	}
	if end == 0 {
		return pool[0]
	}
	n, err := strconv.ParseUint(prefix[:end], 16, 32)
	if err != nil {
		return pool[0]
	}
	return pool[int(n)%len(pool)]
}

func isHex(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

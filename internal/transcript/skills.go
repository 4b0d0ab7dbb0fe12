package transcript

import (
	"math"
	"strings"
)

// SkillScores is a percentage split across four technical areas. Rounding
// each axis independently means the sum can be 99, 100 or 101.
type SkillScores struct {
	Backend  int `json:"backend"`
	Frontend int `json:"frontend"`
	Database int `json:"database"`
	AI       int `json:"ai"`
}

// fallbackSkills is returned when there are no commit messages to inspect.
var fallbackSkills = SkillScores{Backend: 35, Frontend: 30, Database: 20, AI: 15}

var (
	backendKeywords = []string{
		"api", "server", "route", "auth", "endpoint", "middleware", "controller",
		"service", "backend", "express", "next", "node", "handler", "request",
		"response", "jwt", "token", "session",
	}
	frontendKeywords = []string{
		"ui", "component", "page", "style", "layout", "button", "form", "design",
		"view", "modal", "card", "header", "footer", "sidebar", "navbar", "css",
		"tailwind", "react", "frontend", "animation", "responsive",
	}
	databaseKeywords = []string{
		"schema", "migration", "query", "db", "database", "mongo", "model",
		"index", "collection", "aggregate", "find", "insert", "update", "delete",
		"sql", "prisma", "mongoose", "redis", "seed",
	}
	aiKeywords = []string{
		"ai", "ml", "model", "train", "predict", "neural", "embed", "gemini",
		"openai", "llm", "gpt", "nlp", "vector", "semantic", "inference",
		"prompt", "analysis", "score", "impact", "detection",
	}
)

// DetectSkills estimates where a contributor's work went from their commit
// messages. Each keyword counts once if it appears anywhere in the combined
// text, and every axis counts at least once so none of them reads as zero.
func DetectSkills(messages []string) SkillScores {
	if len(messages) == 0 {
		return fallbackSkills
	}

	text := strings.ToLower(strings.Join(messages, " "))
	b := max(countKeywords(text, backendKeywords), 1)
	f := max(countKeywords(text, frontendKeywords), 1)
	d := max(countKeywords(text, databaseKeywords), 1)
	a := max(countKeywords(text, aiKeywords), 1)
	total := float64(b + f + d + a)

	pct := func(n int) int { return int(math.Round(float64(n) / total * 100)) }
	return SkillScores{
		Backend:  pct(b),
		Frontend: pct(f),
		Database: pct(d),
		AI:       pct(a),
	}
}

func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// top returns the phrase for the strongest axis. Ties go to the axis listed
// first: backend, frontend, database, ai.
func (s SkillScores) top() string {
	axes := []struct {
		value  int
		phrase string
	}{
		{s.Backend, "backend systems"},
		{s.Frontend, "frontend development"},
		{s.Database, "database architecture"},
		{s.AI, "AI and machine learning"},
	}
	best := axes[0]
	for _, a := range axes[1:] {
		if a.value > best.value {
			best = a
		}
	}
	return best.phrase
}

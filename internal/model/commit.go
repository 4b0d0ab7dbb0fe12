package model

import (
	"time"

	"github.com/sakif/collabspace/internal/impact"
)

// Commit is an analyzed commit stored for one team.
//
// The raw fields from the source host and the impact result are embedded so
// their JSON keys appear flat on the wire ({"commitId":..,"impactScore":..}).
// (CommitID, TeamID) is unique: syncing the same commit twice updates the
// existing row instead of inserting a second one.
type Commit struct {
	ID     string `json:"id"`
	TeamID string `json:"teamId"`
	impact.RawCommit
	impact.Result
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RepoLink records which GitHub repository a team has connected.
// There is at most one link per team.
type RepoLink struct {
	TeamID       string     `json:"teamId"`
	RepoURL      string     `json:"repoUrl"`
	Owner        string     `json:"repoOwner"`
	Name         string     `json:"repoName"`
	ConnectedAt  time.Time  `json:"connectedAt"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
}

// CommitStats is the dashboard summary of a team's analyzed commits.
type CommitStats struct {
	TotalCommits        int     `json:"totalCommits"`
	TotalImpactScore    int     `json:"totalImpactScore"`
	AverageImpactScore  int     `json:"averageImpactScore"`
	HighImpactCount     int     `json:"highImpactCount"`
	HighestImpactCommit *Commit `json:"highestImpactCommit"`
	RecentHighImpact    *Commit `json:"recentHighImpact"`
}

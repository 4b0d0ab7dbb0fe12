// Package github reads recent commits from the GitHub REST API and turns
// them into impact.RawCommit values ready for scoring.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/sakif/collabspace/internal/impact"
)

const (
	DefaultListLimit   = 20
	DefaultDetailLimit = 10

	// detailConcurrency caps in-flight per-commit requests.
	detailConcurrency = 5
	requestTimeout    = 30 * time.Second
)

type Config struct {
	// Token is a personal access token. Empty means unauthenticated
	// requests, which GitHub rate-limits to 60 per hour.
	Token string
	// BaseURL overrides https://api.github.com/, e.g. for tests.
	BaseURL string
	// DetailLimit is how many of the listed commits get a detail request
	// for their stats. Only those commits are returned.
	DetailLimit int
}

type Client struct {
	gh          *gh.Client
	detailLimit int
	logger      *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: requestTimeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github: invalid base URL %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}

	limit := cfg.DetailLimit
	if limit <= 0 {
		limit = DefaultDetailLimit
	}
	return &Client{gh: client, detailLimit: limit, logger: logger}, nil
}

// FetchCommits lists the latest limit commits on the default branch and
// fetches stats for the first DetailLimit of them concurrently. A failed
// detail request leaves that commit's stats at zero instead of failing the
// whole fetch. Results keep the API's newest-first order.
func (c *Client) FetchCommits(ctx context.Context, owner, repo string, limit int) ([]impact.RawCommit, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	list, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("github: listing commits for %s/%s: %w", owner, repo, err)
	}
	if len(list) > c.detailLimit {
		list = list[:c.detailLimit]
	}

	out := make([]impact.RawCommit, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, rc := range list {
		out[i] = toRawCommit(rc)
		g.Go(func() error {
			detail, _, err := c.gh.Repositories.GetCommit(gctx, owner, repo, rc.GetSHA(), nil)
			if err != nil {
				c.logger.Warn("commit stats unavailable",
					slog.String("repo", owner+"/"+repo),
					slog.String("sha", rc.GetSHA()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			out[i].Additions = detail.GetStats().GetAdditions()
			out[i].Deletions = detail.GetStats().GetDeletions()
			out[i].FilesChanged = len(detail.Files)
			return nil
		})
	}
	// Detail goroutines never return an error.
	_ = g.Wait()

	return out, nil
}

func toRawCommit(rc *gh.RepositoryCommit) impact.RawCommit {
	author := rc.GetCommit().GetAuthor().GetName()
	if author == "" {
		author = rc.GetAuthor().GetLogin()
	}
	if author == "" {
		author = "Unknown"
	}

	message, _, _ := strings.Cut(rc.GetCommit().GetMessage(), "\n")
	if message == "" {
		message = "No message"
	}

	ts := rc.GetCommit().GetAuthor().GetDate().Time
	if ts.IsZero() {
		ts = time.Now()
	}

	return impact.RawCommit{
		CommitID:     rc.GetSHA(),
		Author:       author,
		AuthorAvatar: rc.GetAuthor().GetAvatarURL(),
		Message:      message,
		Timestamp:    ts.UTC(),
		URL:          rc.GetHTMLURL(),
	}
}

// ParseRepoURL accepts "https://github.com/owner/repo" (optionally ending in
// ".git" or "/") and the short form "owner/repo".
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimSuffix(clean, "/")
	clean = strings.TrimSuffix(clean, ".git")

	var parts []string
	if strings.HasPrefix(clean, "http") {
		u, err := url.Parse(clean)
		if err != nil {
			return "", "", false
		}
		parts = strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
		if len(parts) < 2 {
			return "", "", false
		}
	} else {
		parts = strings.Split(clean, "/")
		if len(parts) != 2 {
			return "", "", false
		}
	}

	owner, repo = parts[0], parts[1]
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}

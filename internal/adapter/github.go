package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/shanewilkins/roadmap/internal/logger"
	"github.com/shanewilkins/roadmap/models"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 15 * time.Second

	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "2022-11-28"
)

// GitHubConfig carries the settings needed to construct a GitHub tracker
// client. BaseURL is overridable for tests and GitHub Enterprise hosts.
type GitHubConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type gitHubTracker struct {
	client *resty.Client
	logger *logger.Logger
}

// NewGitHubTracker constructs an [IssueTracker] backed by the GitHub REST v3
// issues API. The token is attached as a bearer credential on every request;
// an empty token produces unauthenticated requests, which GitHub rejects for
// private repositories.
func NewGitHubTracker(cfg GitHubConfig, log *logger.Logger) IssueTracker {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", acceptHeader).
		SetHeader("X-GitHub-Api-Version", apiVersionHeader)

	if cfg.Token != "" {
		cli.SetAuthToken(cfg.Token)
	}

	return &gitHubTracker{client: cli, logger: log}
}

// Fetch implements IssueTracker.Fetch. A 404 response is reported as a nil
// snapshot without error: the engine treats a vanished remote issue as a
// deletion change, not a failure.
func (g *gitHubTracker) Fetch(ctx context.Context, owner, repo string, number int) (*models.RemoteIssue, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get(issuePath(owner, repo, number))
	if err != nil {
		return nil, fmt.Errorf("fetch issue request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		g.logger.Debug().
			Str("owner", owner).
			Str("repo", repo).
			Int("number", number).
			Msg("remote issue not found")
		return nil, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var issue models.RemoteIssue
	if err = json.Unmarshal(resp.Body(), &issue); err != nil {
		return nil, fmt.Errorf("decode issue response: %w", err)
	}

	return &issue, nil
}

// Update implements IssueTracker.Update.
func (g *gitHubTracker) Update(ctx context.Context, owner, repo string, number int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Patch(issuePath(owner, repo, number))
	if err != nil {
		return fmt.Errorf("update issue request: %w", err)
	}

	return mapHTTPError(resp)
}

func issuePath(owner, repo string, number int) string {
	return fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}

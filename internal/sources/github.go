package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/models"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

type GitHubFetcherInterface interface {
	FetchRepository(ctx context.Context, repo string) (*models.RepoStats, error)
}

type repositoryResponse struct {
	StargazersCount int `json:"stargazers_count"`
	ForksCount      int `json:"forks_count"`
	OpenIssuesCount int `json:"open_issues_count"`
}

type GitHubFetcher struct {
	client  *http.Client
	baseURL string
	logger  providers.Logger
}

func NewGitHubFetcher(conf *structures.Config, client *http.Client, logger providers.Logger) GitHubFetcherInterface {
	return &GitHubFetcher{
		client:  client,
		baseURL: strings.TrimRight(conf.GitHub.BaseURL, "/"),
		logger:  logger,
	}
}

// SplitRepo splits an "owner/name" identifier.
func SplitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", NewValidationError("repository", repo)
	}
	return owner, name, nil
}

func (g *GitHubFetcher) FetchRepository(ctx context.Context, repo string) (*models.RepoStats, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, owner, name)
	resp, err := get(ctx, g.client, url, map[string]string{"Accept": "application/vnd.github.v3+json"})
	if err != nil {
		g.logger.Errorf(providers.TypeGitHub, "GitHub %s: %s", repo, err)
		return nil, NewUnavailableError(repo, 0, "request failed", err)
	}
	if !resp.ok() {
		g.logger.Warnf(providers.TypeGitHub, "GitHub %s: HTTP %d", repo, resp.status)
		return nil, NewUnavailableError(repo, resp.status, "non-success status", nil)
	}

	var data repositoryResponse
	if err := decode(resp, &data); err != nil {
		g.logger.Errorf(providers.TypeGitHub, "GitHub %s: malformed response: %s", repo, err)
		return nil, NewUnavailableError(repo, resp.status, "malformed response", err)
	}

	return &models.RepoStats{
		Stars:      data.StargazersCount,
		Forks:      data.ForksCount,
		OpenIssues: data.OpenIssuesCount,
	}, nil
}

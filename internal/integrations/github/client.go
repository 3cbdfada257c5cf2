// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/time/rate"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

const listPageSize = 100

// Client wraps the GitHub API client.
type Client struct {
	client  *github.Client
	limiter *rate.Limiter // paces writes only
}

// SplitRepo splits an "owner/repo" reference.
func SplitRepo(ref string) (owner, repo string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format: expected 'owner/repo', got '%s'", ref)
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository: owner and repo cannot be empty")
	}
	return parts[0], parts[1], nil
}

// ListIssues returns every issue of the repository, open and closed, sorted
// by number. Pull requests are included since they consume issue numbers.
func (c *Client) ListIssues(ctx context.Context, owner, repo string) ([]migrate.TargetIssue, error) {
	byNumber := make(map[int]migrate.TargetIssue)
	for _, state := range []string{"open", "closed"} {
		issues, err := c.listByState(ctx, owner, repo, state)
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			byNumber[issue.GetNumber()] = toTargetIssue(issue)
		}
	}

	result := make([]migrate.TargetIssue, 0, len(byNumber))
	for _, issue := range byNumber {
		result = append(result, issue)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

func (c *Client) listByState(ctx context.Context, owner, repo, state string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var all []*github.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s issues of %s/%s: %w", state, owner, repo, err)
		}
		all = append(all, issues...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CreateIssue opens a new issue. The status code is reported even on error.
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string) (migrate.WriteResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return migrate.WriteResult{}, err
	}

	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	issue, resp, err := c.client.Issues.Create(ctx, owner, repo, req)
	res := migrate.WriteResult{StatusCode: statusCode(resp)}
	if err != nil {
		return res, fmt.Errorf("failed to create issue: %w", err)
	}
	res.Issue = toTargetIssue(issue)
	return res, nil
}

// CloseIssue sets the issue state to closed.
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int) (migrate.WriteResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return migrate.WriteResult{}, err
	}

	req := &github.IssueRequest{
		State: github.String("closed"),
	}
	issue, resp, err := c.client.Issues.Edit(ctx, owner, repo, number, req)
	res := migrate.WriteResult{StatusCode: statusCode(resp)}
	if err != nil {
		return res, fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	res.Issue = toTargetIssue(issue)
	return res, nil
}

// GetFileContent fetches the raw content of a file at ref (default branch if empty).
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s: %w", path, owner, repo, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, owner, repo)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

func toTargetIssue(issue *github.Issue) migrate.TargetIssue {
	return migrate.TargetIssue{
		Number: issue.GetNumber(),
		State:  migrate.State(issue.GetState()),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// RepoWriter writes to a single repository through a Client.
type RepoWriter struct {
	Client *Client
	Owner  string
	Repo   string
}

// Create implements migrate.Writer.
func (w *RepoWriter) Create(ctx context.Context, title, body string) (migrate.WriteResult, error) {
	return w.Client.CreateIssue(ctx, w.Owner, w.Repo, title, body)
}

// Close implements migrate.Writer.
func (w *RepoWriter) Close(ctx context.Context, number int) (migrate.WriteResult, error) {
	return w.Client.CloseIssue(ctx, w.Owner, w.Repo, number)
}

// IssueURL renders the web link of an issue under webURL (https://github.com by default).
func IssueURL(webURL, owner, repo string, number int) string {
	if webURL == "" {
		webURL = "https://github.com"
	}
	return fmt.Sprintf("%s/%s/%s/issues/%d", strings.TrimRight(webURL, "/"), owner, repo, number)
}

var _ migrate.Writer = (*RepoWriter)(nil)

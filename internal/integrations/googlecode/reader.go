// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package googlecode reads a project's issues from the Google Code issue
// tracker Atom feed.
package googlecode

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/similigh/shadowissues/internal/core/migrate"
	"github.com/similigh/shadowissues/internal/utils/text"
)

const (
	// DefaultBaseURL is the feed host.
	DefaultBaseURL = "https://code.google.com"

	// DefaultMaxResults is the single page size requested from the feed.
	DefaultMaxResults = 1000
)

// ErrPossiblyTruncated is returned when the feed returned exactly as many
// entries as requested, so more issues may exist.
var ErrPossiblyTruncated = errors.New("project might have more issues than the feed returned")

// HTTPError reports a feed request that did not succeed.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("error GET'ing %s: %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Reader fetches issue feeds.
type Reader struct {
	httpClient *http.Client
	baseURL    string
	maxResults int
}

// NewReader creates a reader. Zero values select the defaults.
func NewReader(httpClient *http.Client, baseURL string, maxResults int) *Reader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Reader{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxResults: maxResults,
	}
}

// FeedURL returns the feed address for project.
func (r *Reader) FeedURL(project string) string {
	return fmt.Sprintf("%s/feeds/issues/p/%s/issues/full?max-results=%d", r.baseURL, project, r.maxResults)
}

// Fetch returns all issues of project sorted by id.
func (r *Reader) Fetch(ctx context.Context, project string) ([]migrate.SourceIssue, error) {
	url := r.FeedURL(project)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotModified {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: text.Truncate(string(body), 200)}
	}
	if resp.StatusCode == http.StatusNotModified && len(body) == 0 {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: "not modified and no cached copy"}
	}

	issues, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	if len(issues) == r.maxResults {
		return nil, fmt.Errorf("%w (%d entries, the page limit)", ErrPossiblyTruncated, r.maxResults)
	}
	return issues, nil
}

// Parse decodes a feed document into issues sorted by id.
func Parse(data []byte) ([]migrate.SourceIssue, error) {
	var f feed
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	issues := make([]migrate.SourceIssue, 0, len(f.Entries))
	for i := range f.Entries {
		issue, err := toSourceIssue(&f.Entries[i])
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].ID < issues[j].ID
	})
	return issues, nil
}

func toSourceIssue(e *entry) (migrate.SourceIssue, error) {
	id, err := strconv.Atoi(strings.TrimSpace(e.ID))
	if err != nil {
		return migrate.SourceIssue{}, fmt.Errorf("invalid issue id %q: %w", e.ID, err)
	}

	issue := migrate.SourceIssue{
		ID:      id,
		Title:   html.UnescapeString(e.Title),
		Content: html.UnescapeString(e.Content),
		State:   migrate.State(strings.TrimSpace(e.State)),
		Status:  strings.TrimSpace(e.Status),
		Labels:  e.Labels,
		Author:  migrate.Person{Name: e.Author.Name, URI: e.Author.URI},
		URL:     e.alternate(),
	}
	if issue.URL == "" {
		return migrate.SourceIssue{}, fmt.Errorf("issue %d has no alternate link", id)
	}

	if s := strings.TrimSpace(e.Stars); s != "" {
		stars, err := strconv.Atoi(s)
		if err != nil {
			return migrate.SourceIssue{}, fmt.Errorf("issue %d: invalid star count %q: %w", id, s, err)
		}
		issue.Stars = stars
	}

	if issue.Published, err = parseTime(e.Published); err != nil {
		return migrate.SourceIssue{}, fmt.Errorf("issue %d: invalid published time: %w", id, err)
	}
	if issue.Updated, err = parseTime(e.Updated); err != nil {
		return migrate.SourceIssue{}, fmt.Errorf("issue %d: invalid updated time: %w", id, err)
	}
	if e.ClosedDate != "" {
		closed, err := parseTime(e.ClosedDate)
		if err != nil {
			return migrate.SourceIssue{}, fmt.Errorf("issue %d: invalid closed date: %w", id, err)
		}
		issue.ClosedDate = &closed
	}

	if e.Owner != nil {
		issue.Owner = &migrate.Person{Name: e.Owner.Username, URI: e.Owner.URI}
	}

	return issue, nil
}

// parseTime accepts the feed's "2007-11-09T05:15:25.000Z" timestamps.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(s))
}

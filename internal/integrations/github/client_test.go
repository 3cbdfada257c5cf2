// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

// fakeAPI is a minimal issues API for one repository.
type fakeAPI struct {
	mu         sync.Mutex
	open       []int
	closed     []int
	next       int
	auth       []string
	writes     []time.Time
	editStatus int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/issues", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.auth = append(f.auth, r.Header.Get("Authorization"))

		switch r.Method {
		case http.MethodGet:
			numbers := f.open
			if r.URL.Query().Get("state") == "closed" {
				numbers = f.closed
			}
			// Serve one issue per page to exercise pagination.
			page := 1
			if p := r.URL.Query().Get("page"); p != "" {
				_, _ = fmt.Sscanf(p, "%d", &page)
			}
			var out []map[string]any
			if page <= len(numbers) {
				state := r.URL.Query().Get("state")
				out = append(out, map[string]any{"number": numbers[page-1], "state": state, "title": "t"})
			}
			if page < len(numbers) {
				w.Header().Set("Link", fmt.Sprintf(`<%s?state=%s&page=%d>; rel="next"`,
					"http://"+r.Host+r.URL.Path, r.URL.Query().Get("state"), page+1))
			}
			_ = json.NewEncoder(w).Encode(out)

		case http.MethodPost:
			f.writes = append(f.writes, time.Now())
			var req struct {
				Title string `json:"title"`
				Body  string `json:"body"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode create request: %v", err)
			}
			f.next++
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"number":   f.next,
				"state":    "open",
				"title":    req.Title,
				"html_url": fmt.Sprintf("https://github.com/o/r/issues/%d", f.next),
			})
		}
	})
	mux.HandleFunc("/repos/o/r/issues/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.writes = append(f.writes, time.Now())
		var req struct {
			State string `json:"state"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.State != "closed" {
			t.Errorf("edit state = %q, want closed", req.State)
		}
		var number int
		_, _ = fmt.Sscanf(r.URL.Path, "/repos/o/r/issues/%d", &number)
		if f.editStatus != 0 {
			w.WriteHeader(f.editStatus)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"number": number, "state": "closed"})
	})
	return mux
}

func newTestClient(t *testing.T, api *fakeAPI, interval time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), Options{
		Token:         "secret",
		BaseURL:       srv.URL,
		WriteInterval: interval,
	})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return c
}

func TestListIssuesMergesStatesAndPages(t *testing.T) {
	api := &fakeAPI{open: []int{5, 2}, closed: []int{1, 3, 2}}
	c := newTestClient(t, api, 0)

	issues, err := c.ListIssues(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("ListIssues() error: %v", err)
	}

	var numbers []int
	for _, i := range issues {
		numbers = append(numbers, i.Number)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 5}, numbers); diff != "" {
		t.Errorf("ListIssues() numbers mismatch (-want +got):\n%s", diff)
	}
	// #2 appears in both lists; the closed listing is read last and wins.
	if issues[1].State != migrate.StateClosed {
		t.Errorf("issue #2 state = %q, want closed", issues[1].State)
	}
	for _, a := range api.auth {
		if a != "Bearer secret" {
			t.Fatalf("Authorization = %q, want bearer token", a)
		}
	}
}

func TestRepoWriterCreateAndClose(t *testing.T) {
	api := &fakeAPI{next: 2}
	c := newTestClient(t, api, 0)
	w := &RepoWriter{Client: c, Owner: "o", Repo: "r"}

	res, err := w.Create(context.Background(), "[shadow] t", "body")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if res.StatusCode != http.StatusCreated || res.Issue.Number != 3 {
		t.Errorf("Create() = %d #%d, want 201 #3", res.StatusCode, res.Issue.Number)
	}
	if res.Issue.URL != "https://github.com/o/r/issues/3" {
		t.Errorf("Create() URL = %q", res.Issue.URL)
	}

	res, err = w.Close(context.Background(), 3)
	if err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if res.StatusCode != http.StatusOK || res.Issue.Number != 3 || res.Issue.State != migrate.StateClosed {
		t.Errorf("Close() = %+v, want 200 #3 closed", res)
	}
}

func TestCloseIssueReportsStatusOnError(t *testing.T) {
	api := &fakeAPI{editStatus: http.StatusForbidden}
	c := newTestClient(t, api, 0)

	res, err := c.CloseIssue(context.Background(), "o", "r", 7)
	if err == nil {
		t.Fatal("CloseIssue() expected error for 403")
	}
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", res.StatusCode)
	}
}

func TestWritesArePaced(t *testing.T) {
	const interval = 50 * time.Millisecond
	api := &fakeAPI{}
	c := newTestClient(t, api, interval)

	for i := 0; i < 3; i++ {
		if _, err := c.CreateIssue(context.Background(), "o", "r", "t", "b"); err != nil {
			t.Fatalf("CreateIssue() error: %v", err)
		}
	}

	if len(api.writes) != 3 {
		t.Fatalf("recorded %d writes, want 3", len(api.writes))
	}
	for i := 1; i < len(api.writes); i++ {
		// Allow a little slack for timer granularity.
		if gap := api.writes[i].Sub(api.writes[i-1]); gap < interval-10*time.Millisecond {
			t.Errorf("gap between write %d and %d = %v, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestSplitRepo(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		shouldFail bool
	}{
		{"valid format", "owner/repo", false},
		{"missing slash", "ownerrepo", true},
		{"empty owner", "/repo", true},
		{"empty repo", "owner/", true},
		{"empty string", "", true},
		{"too many slashes", "owner/repo/extra", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := SplitRepo(tt.ref)
			if tt.shouldFail {
				if err == nil {
					t.Errorf("Expected error for ref=%q", tt.ref)
				}
				return
			}
			if err != nil || owner != "owner" || repo != "repo" {
				t.Errorf("SplitRepo(%q) = %q, %q, %v", tt.ref, owner, repo, err)
			}
		})
	}
}

func TestIssueURL(t *testing.T) {
	if got := IssueURL("", "o", "r", 4); got != "https://github.com/o/r/issues/4" {
		t.Errorf("IssueURL() = %q", got)
	}
	if got := IssueURL("https://ghe.example.com/", "o", "r", 4); got != "https://ghe.example.com/o/r/issues/4" {
		t.Errorf("IssueURL() with custom host = %q", got)
	}
}

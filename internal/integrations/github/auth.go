// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	// Token authenticates every request. Empty means unauthenticated.
	Token string

	// BaseURL overrides the REST API root (https://api.github.com/).
	BaseURL string

	// Transport sits under the token transport, e.g. from httpcache.NewTransport.
	Transport http.RoundTripper

	// WriteInterval is the minimum spacing between two write calls.
	WriteInterval time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string
}

// NewClient creates a new GitHub client using the provided options.
// If the token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	base := &http.Client{Transport: opts.Transport}
	tc := base

	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		tc = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	}

	client := github.NewClient(tc)

	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}
	if opts.UserAgent != "" {
		client.UserAgent = opts.UserAgent
	}

	limit := rate.Inf
	if opts.WriteInterval > 0 {
		limit = rate.Every(opts.WriteInterval)
	}

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

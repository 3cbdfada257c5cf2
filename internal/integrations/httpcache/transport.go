// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package httpcache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	hc "github.com/gregjones/httpcache"
)

// FromCacheHeader is set on responses served from the cache.
const FromCacheHeader = hc.XFromCache

// NewTransport returns the transport for tracker calls. GETs are revalidated
// against cache with If-None-Match / If-Modified-Since and a 304 is answered
// from the stored copy; underneath, transient read failures are retried.
// A nil cache keeps the retries only.
func NewTransport(base http.RoundTripper, cache Cache) http.RoundTripper {
	rt := &Transport{Base: base, Retry: DefaultRetryConfig()}
	if cache == nil {
		return rt
	}
	return newCachingTransport(rt, cache)
}

func newCachingTransport(next http.RoundTripper, cache Cache) *hc.Transport {
	return &hc.Transport{
		Transport:           revalidate{next: next},
		Cache:               cache,
		MarkCachedResponses: true,
	}
}

// revalidate marks every GET response as needing revalidation, so a stored
// copy is never served without asking the server first. The target issue
// list must always be current.
type revalidate struct {
	next http.RoundTripper
}

func (r revalidate) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err != nil || req.Method != http.MethodGet {
		return resp, err
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "" {
		resp.Header.Set("Cache-Control", cc+", no-cache")
	} else {
		resp.Header.Set("Cache-Control", "no-cache")
	}
	return resp, nil
}

// Transport retries transient GET failures against Base. Other methods go
// straight to Base and are never retried.
type Transport struct {
	// Base performs the actual requests. Nil means http.DefaultTransport.
	Base http.RoundTripper

	// Retry controls GET retries.
	Retry RetryConfig
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != "" {
		return t.base().RoundTrip(req)
	}
	return t.fetch(req)
}

// fetch performs req with retries. When retries run out on a transient
// status, the last response is returned so the caller sees the real answer.
func (t *Transport) fetch(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	var (
		resp *http.Response
		last *http.Response
	)

	op := func() error {
		r, err := t.base().RoundTrip(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		if isRetryableStatus(r.StatusCode) {
			last = buffer(r)
			return &transientStatusError{code: r.StatusCode}
		}
		resp = r
		return nil
	}

	err := backoff.Retry(op, backoff.WithContext(t.Retry.newBackOff(), ctx))
	if err != nil {
		var tse *transientStatusError
		if errors.As(err, &tse) && last != nil {
			return last, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", req.URL.Redacted(), err)
	}
	return resp, nil
}

// buffer reads and closes r's body, replacing it with an in-memory copy.
func buffer(r *http.Response) *http.Response {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return r
}

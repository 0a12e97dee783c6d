/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregjones/httpcache"
	"github.com/mikeb26/ozarkvalley-pairbot/s3cache"
)

// NewCachedHttpClient returns an http.Client that caches roster pages in the
// given S3 bucket. An empty bucket selects an in-memory cache. If the S3 cache
// cannot be initialized it falls back to an in-memory cache instead of no
// cache. It also enforces a client-side TTL by rewriting origin cache headers.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration, logger *log.Logger) *http.Client {

	var cache httpcache.Cache
	if bucket == "" {
		cache = httpcache.NewMemoryCache()
	} else {
		s3c := s3cache.New(ctx, bucket, true, logger)
		if err := s3c.Init(); err != nil {
			logger.Warn("httpcache: failed to init S3 cache; falling back to memory",
				"bucket", bucket, "err", err)
			cache = httpcache.NewMemoryCache()
		} else {
			cache = s3c
		}
	}

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			// Strip any cache-busting headers from origin
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			// Enforce the provided TTL
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

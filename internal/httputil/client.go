// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages. Requests are
// one-shot: failures are captured and surfaced to the caller, never retried.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// NewClient returns an http.Client with the given timeout, falling back to
// 30 s when the timeout is zero.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get issues a GET request with the given User-Agent and returns the
// response when the status is 200 OK. Any other status closes the body and
// returns an error carrying the status code.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOK(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, "body")
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "litpipe/0.1")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "body", string(body))
	assert.Equal(t, "litpipe/0.1", gotUA)
}

func TestGetNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGetNoRetryOn429(t *testing.T) {
	// Rate limiting is a one-shot failure, not a retry trigger.
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, NewClient(0).Timeout)
	assert.Equal(t, 5*time.Second, NewClient(5*time.Second).Timeout)
}

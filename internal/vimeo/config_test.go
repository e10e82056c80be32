package vimeo

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveConfigURL_EntityDecoding verifies that the extracted config
// URL has its HTML entities decoded.
func TestResolveConfigURL_EntityDecoding(t *testing.T) {
	var gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		fmt.Fprint(w, `<div data-config-url="https://x/cfg?a=1&amp;b=2"></div>`)
	}))
	defer server.Close()

	client := NewClient(&mockLogger{}, "test-agent")
	configURL, err := client.ResolveConfigURL(server.URL, "https://ref")

	require.NoError(t, err)
	assert.Equal(t, "https://x/cfg?a=1&b=2", configURL)
	assert.Equal(t, "https://ref", gotReferer)
}

// TestResolveConfigURL_FirstMatchWins verifies that only the first marker
// in the page is used when several are present.
func TestResolveConfigURL_FirstMatchWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div data-config-url="https://first/cfg"></div>`)
		fmt.Fprint(w, `<div data-config-url="https://second/cfg"></div>`)
	}))
	defer server.Close()

	client := NewClient(&mockLogger{}, "test-agent")
	configURL, err := client.ResolveConfigURL(server.URL, "https://ref")

	require.NoError(t, err)
	assert.Equal(t, "https://first/cfg", configURL)
}

// TestResolveConfigURL_NotFound verifies that a page without the marker
// fails with ErrConfigURLNotFound.
func TestResolveConfigURL_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>nothing to see here</body></html>`)
	}))
	defer server.Close()

	client := NewClient(&mockLogger{}, "test-agent")
	_, err := client.ResolveConfigURL(server.URL, "https://ref")

	assert.ErrorIs(t, err, ErrConfigURLNotFound)
}

// TestResolveConfigURL_StatusError verifies that a non-success status is
// surfaced as a StatusError rather than being parsed.
func TestResolveConfigURL_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(&mockLogger{}, "test-agent")
	_, err := client.ResolveConfigURL(server.URL, "https://ref")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

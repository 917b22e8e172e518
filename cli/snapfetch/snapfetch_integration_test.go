//go:build integration

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	// Redirect stdout to capture output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs([]string{"version"})
	err := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout

	require.NoError(t, err, "version command should not return an error")

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	assert.Contains(t, buf.String(), "snapfetch version")
}

func TestFetchCommand(t *testing.T) {
	content := []byte("snapshot payload")
	modTime := time.Now()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "snap.bin", modTime, bytes.NewReader(content))
	}))
	defer server.Close()

	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{"fetch", server.URL + "/snap.bin", "--dir", dir})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, "snap.bin"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchCommandMultipart(t *testing.T) {
	modTime := time.Now()
	parts := map[string][]byte{
		"/p1.bin": []byte("first-"),
		"/p2.bin": []byte("second"),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := parts[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.ServeContent(w, r, filepath.Base(r.URL.Path), modTime, bytes.NewReader(content))
	}))
	defer server.Close()

	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"fetch", server.URL + "/p1.bin", server.URL + "/p2.bin",
		"--dir", dir, "--output", "joined.bin",
	})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(filepath.Join(dir, "joined.bin"))
	require.NoError(t, err)
	assert.Equal(t, "first-second", string(got))
}

func TestFetchCommandMultipartRequiresOutput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"fetch", "https://example.com/a", "https://example.com/b"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}

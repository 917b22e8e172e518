package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/progress"
)

// fastPolicy keeps retry sleeps negligible in tests.
func fastPolicy(maxRetries uint32) Policy {
	return Policy{
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

// newRangeServer serves content with full byte-range support and counts
// incoming requests.
func newRangeServer(content []byte) (*httptest.Server, *atomic.Int64) {
	var requests atomic.Int64
	modTime := time.Now()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.ServeContent(w, r, "artifact.bin", modTime, bytes.NewReader(content))
	}))
	return server, &requests
}

func TestFetchFreshDownload(t *testing.T) {
	content := bytes.Repeat([]byte("snapfetch"), 100)
	server, _ := newRangeServer(content)
	defer server.Close()

	var final progress.Update
	acq := New(Options{Progress: func(u progress.Update) { final = u }})

	path, err := acq.Fetch(context.Background(), Request{
		URL:  server.URL + "/artifact.bin",
		Dir:  t.TempDir(),
		Name: "binary",
	}, fastPolicy(0))
	require.NoError(t, err)

	assert.Equal(t, "artifact.bin", filepath.Base(path))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	assert.Equal(t, int64(len(content)), final.Position)
	assert.Equal(t, int64(len(content)), final.Total)
	assert.Equal(t, "binary", final.Name)
}

func TestFetchIdempotentWhenComplete(t *testing.T) {
	content := []byte("already here")
	server, requests := newRangeServer(content)
	defer server.Close()

	dir := t.TempDir()
	acq := New(Options{})
	req := Request{URL: server.URL + "/artifact.bin", Dir: dir, Name: "snapshot"}

	first, err := acq.Fetch(context.Background(), req, fastPolicy(0))
	require.NoError(t, err)
	afterFirst := requests.Load()

	second, err := acq.Fetch(context.Background(), req, fastPolicy(0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// The second call costs exactly one probe and performs no data reads.
	assert.Equal(t, afterFirst+1, requests.Load())
}

func TestFetchResumesPartialFile(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789"), 50)
	var sawRange atomic.Value
	modTime := time.Now()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rng := r.Header.Get("Range"); rng != "" && rng != "bytes=0-0" {
			sawRange.Store(rng)
		}
		http.ServeContent(w, r, "artifact.bin", modTime, bytes.NewReader(content))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.bin")
	require.NoError(t, os.WriteFile(dest, content[:123], 0o644))

	acq := New(Options{})
	path, err := acq.Fetch(context.Background(), Request{
		URL:  server.URL + "/artifact.bin",
		Dir:  dir,
		Name: "snapshot",
	}, fastPolicy(0))
	require.NoError(t, err)

	// The transfer picked up at byte 123 and produced the full content.
	assert.Equal(t, "bytes=123-", sawRange.Load())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchNotFoundIsNotRetried(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	acq := New(Options{})
	_, err := acq.Fetch(context.Background(), Request{
		URL:  server.URL + "/missing.bin",
		Dir:  t.TempDir(),
		Name: "addrbook",
	}, fastPolicy(5))

	require.ErrorIs(t, err, pkgerrors.ErrNotFound)
	// 404 is permanent, so only one attempt is made.
	assert.Equal(t, int64(1), requests.Load())
}

func TestFetchRetriesUntilExhaustion(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	acq := New(Options{})
	_, err := acq.Fetch(context.Background(), Request{
		URL:  server.URL + "/flaky.bin",
		Dir:  t.TempDir(),
		Name: "snapshot",
	}, fastPolicy(2))

	require.ErrorIs(t, err, pkgerrors.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "after 3 attempts")
	// Initial attempt plus two retries, one probe each.
	assert.Equal(t, int64(3), requests.Load())
}

func TestFetchRecoversAfterTransientFailure(t *testing.T) {
	content := []byte("eventually consistent")
	var requests atomic.Int64
	modTime := time.Now()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		http.ServeContent(w, r, "artifact.bin", modTime, bytes.NewReader(content))
	}))
	defer server.Close()

	acq := New(Options{})
	path, err := acq.Fetch(context.Background(), Request{
		URL:  server.URL + "/artifact.bin",
		Dir:  t.TempDir(),
		Name: "snapshot",
	}, fastPolicy(3))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchMalformedS3URLFailsFast(t *testing.T) {
	acq := New(Options{})
	_, err := acq.Fetch(context.Background(), Request{
		URL:  "s3://bucket-without-key",
		Dir:  t.TempDir(),
		Name: "snapshot",
	}, fastPolicy(5))

	require.ErrorIs(t, err, pkgerrors.ErrInvalidS3URL)
}

func TestFetchCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acq := New(Options{})
	_, err := acq.Fetch(ctx, Request{
		URL:  server.URL + "/never.bin",
		Dir:  t.TempDir(),
		Name: "snapshot",
	}, Policy{MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 2.0})

	require.ErrorIs(t, err, context.Canceled)
}

// fakeSource lets tests drive the acquirer through arbitrary transport
// behavior without a server.
type fakeSource struct {
	probe func(ctx context.Context) (ObjectInfo, error)
	open  func(ctx context.Context, offset int64) (io.ReadCloser, error)
}

func (s *fakeSource) Probe(ctx context.Context) (ObjectInfo, error) { return s.probe(ctx) }
func (s *fakeSource) Open(ctx context.Context, offset int64) (io.ReadCloser, error) {
	return s.open(ctx, offset)
}

func withFakeSource(acq *Acquirer, src Source) {
	acq.newSource = func(string) (Source, error) { return src, nil }
}

func TestFetchRangeNotSatisfiableMeansComplete(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.bin")
	require.NoError(t, os.WriteFile(dest, []byte("local copy"), 0o644))

	var opened atomic.Int64
	src := &fakeSource{
		// Unknown remote size prevents the equality short-circuit.
		probe: func(context.Context) (ObjectInfo, error) {
			return ObjectInfo{Size: 0, SupportsResume: true}, nil
		},
		open: func(_ context.Context, offset int64) (io.ReadCloser, error) {
			opened.Add(1)
			assert.Equal(t, int64(10), offset)
			return nil, ErrAlreadyComplete
		},
	}

	acq := New(Options{})
	withFakeSource(acq, src)

	path, err := acq.Fetch(context.Background(), Request{
		URL:  "https://example.com/artifact.bin",
		Dir:  dir,
		Name: "snapshot",
	}, fastPolicy(5))
	require.NoError(t, err)

	// The existing file path comes back unchanged, with no retry loop.
	assert.Equal(t, dest, path)
	assert.Equal(t, int64(1), opened.Load())
	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "local copy", string(got))
}

func TestFetchAlreadyCompleteSkipsStreaming(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact.bin")
	require.NoError(t, os.WriteFile(dest, []byte("full content"), 0o644))

	src := &fakeSource{
		probe: func(context.Context) (ObjectInfo, error) {
			return ObjectInfo{Size: 12, SupportsResume: true}, nil
		},
		open: func(context.Context, int64) (io.ReadCloser, error) {
			t.Fatal("open must not be called when the local file is complete")
			return nil, nil
		},
	}

	acq := New(Options{})
	withFakeSource(acq, src)

	path, err := acq.Fetch(context.Background(), Request{
		URL:  "https://example.com/artifact.bin",
		Dir:  dir,
		Name: "snapshot",
	}, fastPolicy(0))
	require.NoError(t, err)
	assert.Equal(t, dest, path)
}

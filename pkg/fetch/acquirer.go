package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/snapfetch/snapfetch/internal/logger"
	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
	"github.com/snapfetch/snapfetch/pkg/progress"
)

// Request describes one logical transfer. It is immutable per attempt.
type Request struct {
	// URL is the remote object, HTTP(S) or s3://bucket/key.
	URL string
	// Dir is the destination directory; it is created when missing.
	Dir string
	// Name is the human-readable label used in logs and progress
	// ("binary", "snapshot", "part 3"). It does not affect path
	// derivation; the filename always comes from the URL's final
	// path segment.
	Name string
}

// Options configures an Acquirer.
type Options struct {
	// Source configures transport construction (HTTP client, user agent,
	// S3 region hint).
	Source SourceOptions
	// Progress receives byte-level updates. Defaults to progress.Discard.
	Progress progress.Sink
}

// Acquirer drives resumable transfers: per attempt it stats the local
// partial file, probes the remote size, short-circuits already-complete
// files, streams the remaining byte range to disk, and wraps the whole
// attempt in the retry policy loop. Each logical name owns a distinct
// destination path, so Acquirer instances share no mutable state.
type Acquirer struct {
	sink progress.Sink

	// newSource is swapped in tests to inject a fake transport.
	newSource func(rawURL string) (Source, error)
}

// New creates an Acquirer.
func New(opts Options) *Acquirer {
	sink := opts.Progress
	if sink == nil {
		sink = progress.Discard
	}
	srcOpts := opts.Source
	return &Acquirer{
		sink: sink,
		newSource: func(rawURL string) (Source, error) {
			return NewSource(rawURL, srcOpts)
		},
	}
}

// Fetch downloads req.URL into req.Dir, resuming any partial file and
// retrying transient failures per pol. It returns the local path of the
// completed file.
//
// A not-found condition from the remote is permanent and propagates without
// retry. Every other failure is retried up to pol.MaxRetries times with an
// exponential backoff sleep between attempts, never before the first or
// after the last.
func (a *Acquirer) Fetch(ctx context.Context, req Request, pol Policy) (string, error) {
	// Configuration problems (malformed s3:// URL, unusable destination)
	// fail fast, before any network activity.
	src, err := a.newSource(req.URL)
	if err != nil {
		return "", err
	}
	filename, err := Filename(req.URL)
	if err != nil {
		return "", err
	}
	if err := fsutil.EnsureDir(req.Dir); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}
	dest := filepath.Join(req.Dir, filename)

	var lastErr error
	for attempt := uint32(0); ; attempt++ {
		path, err := a.attempt(ctx, src, dest, req.Name, attempt)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, pkgerrors.ErrNotFound) {
			logger.Errorf("%s not found at %s", req.Name, req.URL)
			return "", err
		}
		lastErr = err
		if !pol.ShouldRetry(attempt) {
			logger.Errorf("final attempt failed for %s download: %v", req.Name, err)
			break
		}
		delay := pol.DelayFor(attempt)
		logger.Warnf("attempt %d failed for %s download: %v, retrying in %s", attempt+1, req.Name, err, delay)
		if err := sleepContext(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", pkgerrors.Wrapf(lastErr, "%s download failed after %d attempts", req.Name, pol.MaxRetries+1)
}

// attempt performs one full probe-and-stream cycle. Local state is
// recomputed from scratch: the partial file may have grown during a prior
// attempt, and the probe itself may have failed transiently.
func (a *Acquirer) attempt(ctx context.Context, src Source, dest, name string, attempt uint32) (string, error) {
	existing := localSize(dest)
	if attempt == 0 && existing > 0 {
		logger.Debugf("existing file found with size: %d bytes", existing)
	}

	info, err := src.Probe(ctx)
	if err != nil {
		return "", err
	}

	if existing == info.Size && info.Size > 0 {
		logger.Infof("%s is already downloaded completely", name)
		return dest, nil
	}

	if existing > 0 {
		logger.Infof("resuming %s download from %d bytes", name, existing)
	} else if attempt == 0 {
		logger.Infof("starting %s download", name)
	}

	stream, err := src.Open(ctx, existing)
	if err != nil {
		if errors.Is(err, ErrAlreadyComplete) {
			logger.Infof("%s is already downloaded completely", name)
			return dest, nil
		}
		return "", err
	}
	defer func() { _ = stream.Close() }()

	if err := streamToFile(stream, dest, name, existing, info.Size, a.sink); err != nil {
		return "", err
	}

	logger.Infof("%s download completed successfully: %s", name, dest)
	return dest, nil
}

// localSize returns the byte count of an existing partial file, 0 when the
// file does not exist.
func localSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// sleepContext is a cooperative sleep that returns early when ctx is
// cancelled, leaving the partial file intact for a future resume.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

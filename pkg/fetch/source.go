package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
)

// ErrAlreadyComplete is returned by Source.Open when the requested offset is
// at or past the end of the remote object. It signals a successfully finished
// transfer, not a failure.
var ErrAlreadyComplete = errors.New("requested range is beyond the end of the object")

// ObjectInfo describes a remote object ahead of a transfer. It is derived
// once per attempt via a cheap probe.
type ObjectInfo struct {
	// Size is the total object size in bytes, 0 when unknown.
	Size int64
	// SupportsResume reports whether the remote honors byte-range reads.
	SupportsResume bool
}

// Source is a remote object with a byte length and a byte-range readable
// stream. The retry and resume logic is agnostic of the transport behind it.
type Source interface {
	// Probe issues the cheapest possible metadata query. A missing object
	// surfaces as errors.ErrNotFound, which callers treat as permanent.
	Probe(ctx context.Context) (ObjectInfo, error)
	// Open returns a stream starting at offset. Offsets at or past the end
	// of the object surface as ErrAlreadyComplete.
	Open(ctx context.Context, offset int64) (io.ReadCloser, error)
}

// SourceOptions configures source construction.
type SourceOptions struct {
	// HTTPClient is used by HTTP(S) sources. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// UserAgent is sent on HTTP requests when non-empty.
	UserAgent string
	// S3Region is an optional region hint for s3:// sources.
	S3Region string
}

// NewSource selects a source implementation by URL scheme: s3:// URLs get the
// object-storage source, everything else the HTTP source. A malformed s3://
// URL is a configuration error surfaced before any network activity.
func NewSource(rawURL string, opts SourceOptions) (Source, error) {
	if IsS3URL(rawURL) {
		return newBlobSource(rawURL, opts)
	}
	return newHTTPSource(rawURL, opts), nil
}

// IsS3URL reports whether rawURL addresses object storage.
func IsS3URL(rawURL string) bool {
	return strings.HasPrefix(rawURL, "s3://")
}

// Filename derives the local filename for a URL from its final path segment.
func Filename(rawURL string) (string, error) {
	name := rawURL
	// Drop any query string a presigned URL may carry.
	if q := strings.Index(name, "?"); q >= 0 {
		name = name[:q]
	}
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return "", pkgerrors.Wrapf(pkgerrors.ErrInvalidPath, "cannot determine filename from URL %s", rawURL)
	}
	return name, nil
}

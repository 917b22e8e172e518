package fetch

import (
	"context"
	"io"
	"net/url"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Registers the s3:// scheme with blob.OpenBucket.
	_ "gocloud.dev/blob/s3blob"

	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
)

// blobSource reads an object from object storage through the gocloud blob
// API. Credentials come from the ambient AWS credential chain.
type blobSource struct {
	bucketURL string
	key       string
}

func newBlobSource(rawURL string, opts SourceOptions) (*blobSource, error) {
	bucket, key, err := ParseS3URL(rawURL)
	if err != nil {
		return nil, err
	}

	bucketURL := "s3://" + bucket
	if opts.S3Region != "" {
		bucketURL += "?region=" + url.QueryEscape(opts.S3Region)
	}

	return &blobSource{bucketURL: bucketURL, key: key}, nil
}

// Probe issues a metadata-only request and reads the declared object length.
func (s *blobSource) Probe(ctx context.Context) (ObjectInfo, error) {
	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return ObjectInfo{}, pkgerrors.Wrapf(err, "failed to open bucket %s", s.bucketURL)
	}
	defer func() { _ = bucket.Close() }()

	attrs, err := bucket.Attributes(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return ObjectInfo{}, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "%s/%s", s.bucketURL, s.key)
		}
		return ObjectInfo{}, pkgerrors.Wrap(err, "failed to get object metadata")
	}

	return ObjectInfo{Size: attrs.Size, SupportsResume: true}, nil
}

// Open issues a ranged get when offset > 0, else a plain get.
func (s *blobSource) Open(ctx context.Context, offset int64) (io.ReadCloser, error) {
	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open bucket %s", s.bucketURL)
	}

	reader, err := bucket.NewRangeReader(ctx, s.key, offset, -1, nil)
	if err != nil {
		_ = bucket.Close()
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, pkgerrors.Wrapf(pkgerrors.ErrNotFound, "%s/%s", s.bucketURL, s.key)
		}
		return nil, pkgerrors.Wrap(err, "failed to start object download")
	}

	return &blobStream{reader: reader, bucket: bucket}, nil
}

// blobStream ties the reader's lifetime to its bucket handle.
type blobStream struct {
	reader *blob.Reader
	bucket *blob.Bucket
}

func (s *blobStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *blobStream) Close() error {
	err := s.reader.Close()
	if cerr := s.bucket.Close(); err == nil {
		err = cerr
	}
	return err
}

// ParseS3URL splits an s3://bucket/key URL into bucket and key.
func ParseS3URL(rawURL string) (bucket, key string, err error) {
	if !IsS3URL(rawURL) {
		return "", "", pkgerrors.Wrap(pkgerrors.ErrInvalidS3URL, rawURL)
	}

	rest := strings.TrimPrefix(rawURL, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", pkgerrors.Wrap(pkgerrors.ErrInvalidS3URL, rawURL)
	}

	return parts[0], parts[1], nil
}

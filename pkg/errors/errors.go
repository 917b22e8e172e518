package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath         = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse             = fmt.Errorf("failed to parse config")
	ErrConfigValidation        = fmt.Errorf("invalid configuration")
	ErrMissingSnapshotFilename = fmt.Errorf("snapshot_filename is required when using snapshot_urls")

	// Transfer errors.
	ErrNotFound       = fmt.Errorf("remote object not found")
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrInvalidS3URL   = fmt.Errorf("invalid S3 URL, expected s3://bucket/key")
	ErrInvalidPath    = fmt.Errorf("invalid path")

	// Extract errors.
	ErrUnsupportedArchive = fmt.Errorf("unsupported archive format")

	// Runner errors.
	ErrInitFailed    = fmt.Errorf("binary init failed")
	ErrCommandFailed = fmt.Errorf("command failed")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

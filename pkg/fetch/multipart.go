package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/snapfetch/snapfetch/internal/logger"
	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
)

// FetchParts downloads every URL in order and concatenates the parts
// byte-exact into dir/finalName. Parts are fetched strictly in sequence: the
// final file is an ordered concatenation, and resuming a partial part must
// never be confused with out-of-order assembly.
//
// When dir/finalName already exists the whole operation is a no-op. Part
// files are removed after a successful concatenation; removal failures are
// logged, not propagated, since the final file is already valid.
func (a *Acquirer) FetchParts(ctx context.Context, urls []string, dir, finalName string, pol Policy) (string, error) {
	finalPath := filepath.Join(dir, finalName)

	if _, err := os.Stat(finalPath); err == nil {
		logger.Infof("multi-part snapshot already exists: %s", finalPath)
		return finalPath, nil
	}

	logger.Infof("downloading %d snapshot parts", len(urls))

	partPaths := make([]string, 0, len(urls))
	for i, url := range urls {
		path, err := a.Fetch(ctx, Request{
			URL:  url,
			Dir:  dir,
			Name: fmt.Sprintf("part %d", i+1),
		}, pol)
		if err != nil {
			return "", err
		}
		partPaths = append(partPaths, path)
	}

	logger.Infof("concatenating parts into final snapshot")
	if err := concatenateFiles(partPaths, finalPath); err != nil {
		return "", err
	}

	for _, path := range partPaths {
		if err := os.Remove(path); err != nil {
			logger.Warnf("failed to remove part file %s: %v", path, err)
		}
	}

	logger.Infof("multi-part snapshot ready: %s", finalPath)
	return finalPath, nil
}

// concatenateFiles streams every input in order into a newly created
// (truncate-if-exists) output file.
func concatenateFiles(inputs []string, output string) (err error) {
	out, err := fsutil.CreateFilePerm(output, fsutil.FileModeDefault)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create output file %s", output)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = pkgerrors.Wrapf(cerr, "failed to close %s", output)
		}
	}()

	for i, input := range inputs {
		logger.Debugf("concatenating part %d: %s", i+1, input)
		in, oerr := os.Open(input)
		if oerr != nil {
			return pkgerrors.Wrapf(oerr, "failed to open part file %s", input)
		}
		if _, cerr := io.Copy(out, in); cerr != nil {
			_ = in.Close()
			return pkgerrors.Wrapf(cerr, "failed to copy part %d to output", i+1)
		}
		_ = in.Close()
	}

	if serr := out.Sync(); serr != nil {
		return pkgerrors.Wrapf(serr, "failed to sync %s", output)
	}
	return nil
}

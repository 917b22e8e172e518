package fetch

import (
	"io"
	"os"

	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
	"github.com/snapfetch/snapfetch/pkg/progress"
)

// chunkSize is the copy buffer used when streaming a source to disk.
const chunkSize = 256 * 1024

// streamToFile drains src into path, appending when existing > 0 and
// creating/truncating otherwise. After each chunk it reports the running byte
// position through sink. The file is flushed and closed on every exit path;
// on error the partial file is deliberately left on disk so a later attempt
// can resume from it.
func streamToFile(src io.Reader, path, name string, existing, total int64, sink progress.Sink) (err error) {
	flags := os.O_WRONLY | os.O_CREATE
	if existing > 0 {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, fsutil.FileModeDefault)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open %s for writing", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = pkgerrors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	downloaded := existing
	buf := make([]byte, chunkSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return pkgerrors.Wrap(werr, "failed to write bytes to file")
			}
			downloaded += int64(n)
			sink(progress.Update{Name: name, Position: downloaded, Total: total})
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return pkgerrors.Wrap(rerr, "failed to read from stream")
		}
	}

	if serr := file.Sync(); serr != nil {
		return pkgerrors.Wrapf(serr, "failed to flush %s", path)
	}
	return nil
}

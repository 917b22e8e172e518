// Package extract unpacks downloaded artifact archives. Supported formats
// are tar.gz/tgz and tar.lz4, the formats snapshot providers publish.
package extract

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"github.com/snapfetch/snapfetch/internal/logger"
	"github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
)

// Archive extracts an archive into targetDir, creating it as needed. The
// format is sniffed from the file contents, the extension check just rejects
// formats snapshot providers never publish before any I/O happens.
func Archive(ctx context.Context, archivePath, targetDir string) error {
	if !SupportedFormat(archivePath) {
		return errors.Wrapf(errors.ErrUnsupportedArchive,
			"cannot extract %s, only tar.gz and tar.lz4 archives are supported", filepath.Base(archivePath))
	}

	logger.Info("Extracting archive", logger.Fields{
		"archive": archivePath,
		"target":  targetDir,
	})

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(targetDir); err != nil {
		return errors.Wrapf(err, "failed to create target directory %s", targetDir)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return extractEntry(fsys, path, targetDir, d)
	})
}

// Binary unpacks the node binary archive into the workspace directory.
func Binary(ctx context.Context, archivePath, workspaceDir string) error {
	return Archive(ctx, archivePath, workspaceDir)
}

// Snapshot unpacks the chain snapshot into the node home directory.
func Snapshot(ctx context.Context, archivePath, homeDir string) error {
	return Archive(ctx, archivePath, homeDir)
}

// SupportedFormat reports whether the filename carries a recognized archive
// extension.
func SupportedFormat(archivePath string) bool {
	name := strings.ToLower(filepath.Base(archivePath))
	for _, suffix := range []string{".tar.gz", ".tgz", ".tar.lz4"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func extractEntry(fsys fs.FS, path, targetDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}

	targetPath := filepath.Join(targetDir, path)

	if d.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, "failed to get file info for %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return writeSymlink(fsys, path, targetPath)
	}

	return writeRegularFile(fsys, path, targetPath, info)
}

func writeSymlink(fsys fs.FS, path, targetPath string) error {
	link, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read symlink %s", path)
	}
	defer func() { _ = link.Close() }()

	target, err := io.ReadAll(link)
	if err != nil {
		return errors.Wrapf(err, "failed to read symlink target %s", path)
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return errors.Wrapf(err, "failed to create parent directory for symlink %s", path)
	}

	_ = os.Remove(targetPath)

	return os.Symlink(string(target), targetPath)
}

func writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	src, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive entry %s", path)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return errors.Wrapf(err, "failed to create parent directory for %s", path)
	}

	// Preserve the archived mode so extracted binaries stay executable.
	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	dst, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", targetPath)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, "failed to extract %s", path)
	}
	return dst.Close()
}

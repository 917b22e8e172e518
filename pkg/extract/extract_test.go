package extract

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapfetch/snapfetch/pkg/errors"
)

type tarEntry struct {
	name    string
	content string
	mode    int64
}

// writeTarGz builds a small tar.gz fixture on disk.
func writeTarGz(t *testing.T, path string, entries []tarEntry) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, file.Close()) }()

	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: e.name,
			Mode: mode,
			Size: int64(len(e.content)),
		}))
		_, err := tw.Write([]byte(e.content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestArchiveTarGz(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "node.tar.gz")
	writeTarGz(t, archivePath, []tarEntry{
		{name: "build/noded", content: "#!/bin/sh\necho node", mode: 0o755},
		{name: "build/README.md", content: "docs"},
		{name: "data/state.db", content: "snapshot-bytes"},
	})

	target := filepath.Join(dir, "workspace")
	require.NoError(t, Archive(context.Background(), archivePath, target))

	got, err := os.ReadFile(filepath.Join(target, "build", "noded"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho node", string(got))

	got, err = os.ReadFile(filepath.Join(target, "data", "state.db"))
	require.NoError(t, err)
	assert.Equal(t, "snapshot-bytes", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(target, "build", "noded"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestArchiveCreatesTargetDir(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "snap.tgz")
	writeTarGz(t, archivePath, []tarEntry{{name: "genesis.json", content: "{}"}})

	target := filepath.Join(dir, "deeply", "nested", "home")
	require.NoError(t, Archive(context.Background(), archivePath, target))

	_, err := os.Stat(filepath.Join(target, "genesis.json"))
	require.NoError(t, err)
}

func TestArchiveRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "snapshot.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("PK"), 0o644))

	err := Archive(context.Background(), archivePath, filepath.Join(dir, "out"))
	require.ErrorIs(t, err, errors.ErrUnsupportedArchive)

	// Nothing was created for the rejected archive.
	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := Archive(context.Background(), filepath.Join(dir, "missing.tar.gz"), filepath.Join(dir, "out"))
	require.Error(t, err)
}

func TestBinaryAndSnapshotHelpers(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "artifact.tar.gz")
	writeTarGz(t, archivePath, []tarEntry{{name: "payload", content: "x"}})

	require.NoError(t, Binary(context.Background(), archivePath, filepath.Join(dir, "ws")))
	require.NoError(t, Snapshot(context.Background(), archivePath, filepath.Join(dir, "home")))

	_, err := os.Stat(filepath.Join(dir, "ws", "payload"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "home", "payload"))
	require.NoError(t, err)
}

func TestSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "snapshot.tar.gz", want: true},
		{path: "snapshot.TGZ", want: true},
		{path: "/downloads/snapshot.tar.lz4", want: true},
		{path: "snapshot.zip", want: false},
		{path: "snapshot.tar", want: false},
		{path: "snapshot", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SupportedFormat(tt.path), tt.path)
	}
}

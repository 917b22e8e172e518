//go:generate mockgen -destination=./mocks/bootstrap.go . Fetcher,Extractor,TomlPatcher,CommandRunner,Node,NodeProcess

// Package bootstrap ties the acquisition engine, extraction, TOML patching
// and the node runner together into the bootstrap pipeline.
package bootstrap

import (
	"context"
	"path/filepath"

	"github.com/snapfetch/snapfetch/internal/logger"
	"github.com/snapfetch/snapfetch/pkg/config"
	"github.com/snapfetch/snapfetch/pkg/errors"
	"github.com/snapfetch/snapfetch/pkg/fetch"
	"github.com/snapfetch/snapfetch/pkg/fsutil"
	"github.com/snapfetch/snapfetch/pkg/runner"
	"github.com/snapfetch/snapfetch/pkg/tomlpatch"
)

// Fetcher is the subset of the acquisition engine used by the pipeline.
type Fetcher interface {
	Fetch(ctx context.Context, req fetch.Request, pol fetch.Policy) (string, error)
	FetchParts(ctx context.Context, urls []string, dir, finalName string, pol fetch.Policy) (string, error)
}

// Extractor unpacks downloaded archives.
type Extractor interface {
	Archive(ctx context.Context, archivePath, targetDir string) error
}

// TomlPatcher applies configuration overrides to the node home.
type TomlPatcher interface {
	Apply(appOverrides, configOverrides map[string]interface{}) error
}

// CommandRunner executes configured shell hooks.
type CommandRunner interface {
	Run(ctx context.Context, command string) error
}

// Node manages the node binary lifecycle.
type Node interface {
	Init(ctx context.Context, moniker, chainID string) error
	Start(ctx context.Context, opts runner.StartOptions) (NodeProcess, error)
}

// NodeProcess is a running node under supervision.
type NodeProcess interface {
	Wait() error
	Stop() error
	PID() int
	PostStartDone() <-chan struct{}
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // binary|init|snapshot|extract|overrides|addrbook|start|done
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// SkipOptions disables individual pipeline stages.
type SkipOptions struct {
	DownloadSnapshot bool
	ExtractSnapshot  bool
	BinaryDownload   bool
	DownloadAddrbook bool
	ExecuteBinary    bool
}

// Bootstrapper runs the full node bootstrap pipeline.
type Bootstrapper struct {
	Config    *config.Config
	Fetcher   Fetcher
	Extractor Extractor
	Patcher   TomlPatcher
	Commands  CommandRunner
	Node      Node
	Hooks     Hooks
	Skip      SkipOptions
}

// New wires a Bootstrapper with the production collaborators.
func New(cfg *config.Config, acquirer *fetch.Acquirer, skip SkipOptions, hooks Hooks) *Bootstrapper {
	return &Bootstrapper{
		Config:    cfg,
		Fetcher:   acquirer,
		Extractor: archiveExtractor{},
		Patcher:   tomlpatch.New(cfg.HomeDir),
		Commands:  shellRunner{},
		Node:      nodeAdapter{runner.New(cfg.BinaryPath(), cfg.HomeDir)},
		Hooks:     hooks,
		Skip:      skip,
	}
}

// Run executes the pipeline: binary, init, snapshot, overrides, addrbook,
// then starts and supervises the node until it exits, the context is
// cancelled, or the post-start hook completes.
func (b *Bootstrapper) Run(ctx context.Context) error {
	pol := b.Config.DownloadRetry.Policy()

	if err := fsutil.EnsureDir(b.Config.DownloadsDir); err != nil {
		return errors.Wrap(err, "failed to create downloads directory")
	}
	if err := fsutil.EnsureDir(b.Config.HomeDir); err != nil {
		return errors.Wrap(err, "failed to create node home directory")
	}

	if err := b.setupBinary(ctx, pol); err != nil {
		return err
	}

	b.emit(Event{Phase: "init", Msg: b.Config.ChainID})
	if err := b.Node.Init(ctx, b.Config.Moniker, b.Config.ChainID); err != nil {
		return err
	}

	snapshotPath, err := b.acquireSnapshot(ctx, pol)
	if err != nil {
		return err
	}

	if b.Skip.ExtractSnapshot {
		logger.Info("Skipping snapshot extraction")
	} else if snapshotPath != "" {
		b.emit(Event{Phase: "extract", Msg: snapshotPath})
		if err := b.Extractor.Archive(ctx, snapshotPath, b.Config.HomeDir); err != nil {
			return errors.Wrap(err, "failed to extract snapshot")
		}
		b.runOptionalHook(ctx, "post-snapshot-extract", b.Config.PostSnapshotExtractCommand)
	}

	if len(b.Config.AppOverrides) > 0 || len(b.Config.ConfigOverrides) > 0 {
		b.emit(Event{Phase: "overrides"})
		if err := b.Patcher.Apply(b.Config.AppOverrides, b.Config.ConfigOverrides); err != nil {
			return errors.Wrap(err, "failed to apply configuration overrides")
		}
	}

	if err := b.installAddrbook(ctx, pol); err != nil {
		return err
	}

	if b.Skip.ExecuteBinary {
		logger.Info("Skipping node execution")
		b.emit(Event{Phase: "done"})
		return nil
	}

	return b.superviseNode(ctx)
}

// setupBinary downloads and unpacks the node binary archive into the
// workspace.
func (b *Bootstrapper) setupBinary(ctx context.Context, pol fetch.Policy) error {
	if b.Skip.BinaryDownload {
		logger.Info("Skipping binary download and extraction")
		return nil
	}

	b.emit(Event{Phase: "binary", Msg: b.Config.BinaryURL})
	archivePath, err := b.Fetcher.Fetch(ctx, fetch.Request{
		URL:  b.Config.BinaryURL,
		Dir:  b.Config.DownloadsDir,
		Name: "binary",
	}, pol)
	if err != nil {
		return errors.Wrap(err, "failed to download binary")
	}

	if err := b.Extractor.Archive(ctx, archivePath, b.Config.WorkspaceDir); err != nil {
		return errors.Wrap(err, "failed to extract binary")
	}
	logger.Info("Binary download and extraction complete")
	return nil
}

// acquireSnapshot downloads the snapshot, single file or multi-part, and
// returns the local path of the (assembled) archive. When the download stage
// is skipped the previously downloaded file is used.
func (b *Bootstrapper) acquireSnapshot(ctx context.Context, pol fetch.Policy) (string, error) {
	urls := b.Config.SnapshotURLList()
	if len(urls) == 0 {
		logger.Info("No snapshot configured, skipping snapshot stage")
		return "", nil
	}

	filename, err := b.Config.SnapshotFileName()
	if err != nil {
		return "", err
	}

	if b.Skip.DownloadSnapshot {
		logger.Info("Skipping snapshot download, using existing file")
		return filepath.Join(b.Config.DownloadsDir, filename), nil
	}

	b.emit(Event{Phase: "snapshot", Msg: filename})

	var path string
	if len(urls) == 1 {
		path, err = b.Fetcher.Fetch(ctx, fetch.Request{
			URL:  urls[0],
			Dir:  b.Config.DownloadsDir,
			Name: "snapshot",
		}, pol)
	} else {
		path, err = b.Fetcher.FetchParts(ctx, urls, b.Config.DownloadsDir, filename, pol)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to download snapshot")
	}

	b.runOptionalHook(ctx, "post-snapshot-download", b.Config.PostSnapshotDownloadCommand)
	return path, nil
}

// installAddrbook downloads the address book and moves it into the node's
// config directory under the canonical name.
func (b *Bootstrapper) installAddrbook(ctx context.Context, pol fetch.Policy) error {
	if b.Config.AddrbookURL == "" {
		return nil
	}
	if b.Skip.DownloadAddrbook {
		logger.Info("Skipping address book download")
		return nil
	}

	b.emit(Event{Phase: "addrbook", Msg: b.Config.AddrbookURL})
	downloaded, err := b.Fetcher.Fetch(ctx, fetch.Request{
		URL:  b.Config.AddrbookURL,
		Dir:  b.Config.DownloadsDir,
		Name: "addrbook",
	}, pol)
	if err != nil {
		return errors.Wrap(err, "failed to download addrbook")
	}

	target := filepath.Join(b.Config.HomeDir, "config", "addrbook.json")
	if err := fsutil.Move(downloaded, target); err != nil {
		return errors.Wrap(err, "failed to install addrbook")
	}
	logger.Info("Addrbook installed", logger.Fields{"path": target})
	return nil
}

// superviseNode starts the node and blocks until it exits on its own, the
// context is cancelled, or the post-start hook has completed.
func (b *Bootstrapper) superviseNode(ctx context.Context) error {
	b.runOptionalHook(ctx, "pre-start", b.Config.PreStartCommand)

	b.emit(Event{Phase: "start"})
	proc, err := b.Node.Start(ctx, runner.StartOptions{
		PostStartCommand: b.Config.PostStartCommand,
		PostStartPattern: b.Config.PostStartPattern,
	})
	if err != nil {
		return errors.Wrap(err, "failed to start node")
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- proc.Wait() }()

	select {
	case <-ctx.Done():
		logger.Infof("Shutdown signal received, terminating node process %d", proc.PID())
		_ = proc.Stop()
		return ctx.Err()
	case <-proc.PostStartDone():
		logger.Infof("Post-start command completed, terminating node process %d", proc.PID())
		_ = proc.Stop()
		b.emit(Event{Phase: "done"})
		return nil
	case err := <-waitErr:
		if err != nil {
			return errors.Wrap(err, "node process failed")
		}
		b.emit(Event{Phase: "done"})
		return nil
	}
}

// runOptionalHook executes a configured shell hook, logging failures without
// aborting the pipeline.
func (b *Bootstrapper) runOptionalHook(ctx context.Context, name, command string) {
	if command == "" {
		return
	}
	if err := b.Commands.Run(ctx, command); err != nil {
		logger.Warnf("%s command failed: %v", name, err)
	}
}

func (b *Bootstrapper) emit(e Event) {
	if b.Hooks.OnEvent != nil {
		b.Hooks.OnEvent(e)
	}
}

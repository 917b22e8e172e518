package bootstrap

import (
	"context"

	"github.com/snapfetch/snapfetch/pkg/extract"
	"github.com/snapfetch/snapfetch/pkg/runner"
)

// archiveExtractor adapts the extract package to the Extractor interface.
type archiveExtractor struct{}

func (archiveExtractor) Archive(ctx context.Context, archivePath, targetDir string) error {
	return extract.Archive(ctx, archivePath, targetDir)
}

// shellRunner adapts runner.RunHook to the CommandRunner interface.
type shellRunner struct{}

func (shellRunner) Run(ctx context.Context, command string) error {
	return runner.RunHook(ctx, command)
}

// nodeAdapter lifts *runner.Runner to the Node interface so that Start
// returns the NodeProcess abstraction.
type nodeAdapter struct {
	runner *runner.Runner
}

func (n nodeAdapter) Init(ctx context.Context, moniker, chainID string) error {
	return n.runner.Init(ctx, moniker, chainID)
}

func (n nodeAdapter) Start(ctx context.Context, opts runner.StartOptions) (NodeProcess, error) {
	return n.runner.Start(ctx, opts)
}

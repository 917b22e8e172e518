// Package runner manages the node binary lifecycle: one-time initialization,
// the long-running start process with log streaming, and the shell hooks the
// pipeline fires around it.
package runner

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/snapfetch/snapfetch/internal/logger"
	pkgerrors "github.com/snapfetch/snapfetch/pkg/errors"
)

// Runner drives a node binary against a home directory.
type Runner struct {
	binaryPath string
	homeDir    string
}

// New creates a Runner for the given binary and node home directory.
func New(binaryPath, homeDir string) *Runner {
	return &Runner{binaryPath: binaryPath, homeDir: homeDir}
}

// GenesisExists reports whether the home directory already holds a genesis
// file, meaning initialization has happened.
func (r *Runner) GenesisExists() bool {
	genesisPath := filepath.Join(r.homeDir, "config", "genesis.json")
	logger.Debug("Checking for genesis file", logger.Fields{"path": genesisPath})
	_, err := os.Stat(genesisPath)
	return err == nil
}

// Init runs `<binary> init <moniker> --chain-id <id> --home <home>` unless a
// genesis file already exists.
func (r *Runner) Init(ctx context.Context, moniker, chainID string) error {
	if r.GenesisExists() {
		logger.Info("Genesis file already exists, skipping initialization")
		return nil
	}

	logger.Info("Initializing node", logger.Fields{
		"chain_id": chainID,
		"moniker":  moniker,
	})

	cmd := exec.CommandContext(ctx, r.binaryPath,
		"init", moniker, "--chain-id", chainID, "--home", r.homeDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrInitFailed, "%s: %s", err, strings.TrimSpace(string(output)))
	}

	logger.Debugf("Init output: %s", strings.TrimSpace(string(output)))
	logger.Info("Node initialized successfully")
	return nil
}

// StartOptions configures the long-running start process.
type StartOptions struct {
	// PostStartCommand, when non-empty, is run through the shell the first
	// time PostStartPattern appears in the node's output.
	PostStartCommand string
	PostStartPattern string
}

// Process is a running node binary.
type Process struct {
	cmd      *exec.Cmd
	scanners sync.WaitGroup
	waitOnce sync.Once
	waitErr  error
	hookDone chan struct{}
}

// Start launches `<binary> start --home <home>` and streams its output
// through the logger. The returned Process must be waited on or stopped.
func (r *Runner) Start(ctx context.Context, opts StartOptions) (*Process, error) {
	logger.Infof("To start the node manually later, run: %s start --home %s", r.binaryPath, r.homeDir)

	cmd := exec.CommandContext(ctx, r.binaryPath, "start", "--home", r.homeDir)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to attach to node stdout")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to attach to node stderr")
	}

	if err := cmd.Start(); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to spawn node process")
	}

	logger.Info("Node process started, streaming logs", logger.Fields{"pid": cmd.Process.Pid})

	proc := &Process{cmd: cmd, hookDone: make(chan struct{})}

	var hookOnce sync.Once
	fireHook := func(line string) {
		if opts.PostStartCommand == "" || !strings.Contains(line, opts.PostStartPattern) {
			return
		}
		hookOnce.Do(func() {
			logger.Infof("Detected pattern %q in node output, running post-start command", opts.PostStartPattern)
			if err := RunHook(ctx, opts.PostStartCommand); err != nil {
				logger.Warnf("Post-start command failed: %v", err)
			}
			close(proc.hookDone)
		})
	}

	proc.scanners.Add(2)
	go streamLines(&proc.scanners, stdout, "node stdout", fireHook)
	go streamLines(&proc.scanners, stderr, "node stderr", fireHook)

	return proc, nil
}

func streamLines(wg *sync.WaitGroup, pipe interface{ Read([]byte) (int, error) }, label string, onLine func(string)) {
	defer wg.Done()
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Infof("[%s] %s", label, line)
		onLine(line)
	}
}

// Wait blocks until the node process exits, draining its output first. It is
// safe to call from multiple goroutines.
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		p.scanners.Wait()
		if err := p.cmd.Wait(); err != nil {
			p.waitErr = pkgerrors.Wrap(pkgerrors.ErrCommandFailed, err.Error())
		}
	})
	return p.waitErr
}

// Stop terminates the node process and waits for it to exit.
func (p *Process) Stop() error {
	logger.Info("Shutting down node process", logger.Fields{"pid": p.PID()})
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return pkgerrors.Wrap(err, "failed to terminate node process")
	}
	// The exit status after a kill is expected to be non-zero.
	_ = p.Wait()
	return nil
}

// PID returns the node process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// PostStartDone is closed once the post-start hook has run. It never closes
// when no post-start command is configured.
func (p *Process) PostStartDone() <-chan struct{} {
	return p.hookDone
}

// RunHook executes a configured shell command and streams its output through
// the logger. A non-zero exit surfaces as ErrCommandFailed.
func RunHook(ctx context.Context, command string) error {
	logger.Infof("Executing command: %s", command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to attach to command stdout")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to attach to command stderr")
	}

	if err := cmd.Start(); err != nil {
		return pkgerrors.Wrap(err, "failed to execute command")
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go streamLines(&wg, stdout, "command stdout", func(string) {})
	go streamLines(&wg, stderr, "command stderr", func(string) {})
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		return pkgerrors.Wrapf(pkgerrors.ErrCommandFailed, "%s: %s", command, err)
	}
	logger.Debugf("Command finished: %s", command)
	return nil
}

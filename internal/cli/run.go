package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/snapfetch/snapfetch/internal/logger"
	"github.com/snapfetch/snapfetch/pkg/bootstrap"
	"github.com/snapfetch/snapfetch/pkg/fetch"
	"github.com/snapfetch/snapfetch/pkg/progress"
)

// NewRunCmd creates the run command, the full bootstrap pipeline.
func NewRunCmd() *cobra.Command {
	var skip bootstrap.SkipOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bootstrap and start the node",
		Long: `Download the node binary, chain snapshot and address book, extract
them, apply configuration overrides, and start the node.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, skip)
		},
	}

	cmd.Flags().BoolVar(&skip.DownloadSnapshot, "skip-download-snapshot", false,
		"skip downloading the snapshot (use existing snapshot file)")
	cmd.Flags().BoolVar(&skip.ExtractSnapshot, "skip-extract-snapshot", false,
		"skip extracting the snapshot")
	cmd.Flags().BoolVar(&skip.BinaryDownload, "skip-binary-download", false,
		"skip downloading and extracting the binary")
	cmd.Flags().BoolVar(&skip.DownloadAddrbook, "skip-download-addrbook", false,
		"skip downloading the address book")
	cmd.Flags().BoolVar(&skip.ExecuteBinary, "skip-execute-binary", false,
		"skip executing the node binary")

	return cmd
}

func runRun(cmd *cobra.Command, skip bootstrap.SkipOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.InitLogger(logLevelFor(cfg))

	reporter := progress.NewReporter(os.Stdout, 0)
	acquirer := fetch.New(fetch.Options{
		Source: fetch.SourceOptions{
			UserAgent: "snapfetch/" + Version,
			S3Region:  cfg.S3.Region,
		},
		Progress: reporter.Sink(),
	})

	hooks := bootstrap.Hooks{OnEvent: func(e bootstrap.Event) {
		fields := logger.Fields{"phase": e.Phase}
		if e.Msg != "" {
			fields["detail"] = e.Msg
		}
		logger.Info("Pipeline stage", fields)
	}}

	b := bootstrap.New(cfg, acquirer, skip, hooks)
	return b.Run(cmd.Context())
}

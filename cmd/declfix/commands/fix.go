package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/declfix/cmd/declfix/opts"
	"github.com/walteh/declfix/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite duplicate declarations into assignments",
		Long: `Fix reads each configured target file line by line, rewrites the lines
where a replacement rule applies, and writes the result back in place.
It will:
1. Load the configuration (or fall back to the built-in rules)
2. Read each target file fully before anything is written
3. Rewrite matching lines, leaving everything else byte-for-byte intact
4. Replace each file atomically via a temp file and rename`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "fix").Logger().WithContext(ctx)

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			p := patch.New(patch.Options{
				Config: cfg,
				Logger: o.UserLogger,
				DryRun: o.DryRun,
				Async:  o.Async,
			})

			summary, err := p.Run(ctx)
			if err != nil {
				return errors.Errorf("running patcher: %w", err)
			}

			o.UserLogger.LogSummary(fmt.Sprintf("%d files scanned, %d patched, %d lines changed",
				summary.FilesScanned, summary.FilesModified, summary.LinesChanged))

			if !o.DryRun {
				o.UserLogger.Success("Fixed duplicate const declarations")
			}
			return nil
		},
	}

	return cmd
}

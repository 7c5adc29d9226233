package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/declfix/cmd/declfix/opts"
	"github.com/walteh/declfix/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether any target file still needs fixing",
		Long: `Check runs the same rewrite pass as fix but never writes anything.
It exits non-zero when at least one target file would be modified, so it
can gate CI or a pre-commit hook.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			p := patch.New(patch.Options{
				Config: cfg,
				Logger: o.UserLogger,
				DryRun: true,
			})

			summary, err := p.Run(ctx)
			if err != nil {
				return errors.Errorf("running patcher: %w", err)
			}

			if summary.FilesModified > 0 {
				return errors.Errorf("%d of %d files still carry duplicate declarations",
					summary.FilesModified, summary.FilesScanned)
			}

			o.UserLogger.Success("All targets are clean")
			return nil
		},
	}

	return cmd
}

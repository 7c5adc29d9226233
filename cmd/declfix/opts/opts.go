package opts

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/declfix/pkg/config"
	"github.com/walteh/declfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	DryRun     bool
	Async      bool
	UserLogger *log.UserLogger
}

// LoadConfig loads the config file, falling back to the built-in rule set
// when the file does not exist.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	if _, err := os.Stat(o.ConfigFile); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().
			Str("path", o.ConfigFile).
			Msg("config file not found, using built-in rules")
		return config.Default(), nil
	}

	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/vendorfetch/pkg/cli/config"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sourceCfg config.Source
		githubCfg config.GitHub
		retryCfg  config.Retry
		runCfg    config.Run
		logger    *slog.Logger
	)

	flags := loggerCfg.Flags()
	flags = append(flags, sourceCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, retryCfg.Flags()...)
	flags = append(flags, runCfg.Flags()...)

	app := &cli.Command{
		Name:    "vendorfetch",
		Usage:   "Mirror a fixed manifest of files from a source repository host",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: fetchAction(&sourceCfg, &githubCfg, &retryCfg, &runCfg),
		Commands: []*cli.Command{
			cmdStatus(&sourceCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/cli/config"
	"github.com/m-mizutani/vendorfetch/pkg/infra/fs"
	"github.com/m-mizutani/vendorfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// fetchAction mirrors the manifest once. It is the default action, so running
// the binary without arguments performs a full run.
func fetchAction(
	sourceCfg *config.Source,
	githubCfg *config.GitHub,
	retryCfg *config.Retry,
	runCfg *config.Run,
) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		logger := ctxlog.From(ctx)

		if c.Args().Present() {
			return goerr.New("unexpected arguments", goerr.V("args", c.Args().Slice()))
		}

		manifest, err := sourceCfg.LoadManifest()
		if err != nil {
			return goerr.Wrap(err, "failed to load manifest")
		}

		fetcher, err := sourceCfg.Fetcher(manifest, githubCfg)
		if err != nil {
			return goerr.Wrap(err, "failed to create fetcher")
		}

		logger.Debug("Configuration",
			"source", *sourceCfg,
			"github", *githubCfg,
			"retry", *retryCfg,
		)

		if err := os.MkdirAll(sourceCfg.Root, fs.DefaultDirPermissions); err != nil {
			return goerr.Wrap(err, "failed to create root directory", goerr.V("root", sourceCfg.Root))
		}

		lockPath := runCfg.LockPath(sourceCfg.Root)
		lock := flock.New(lockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return goerr.Wrap(err, "failed to acquire lock", goerr.V("lock", lockPath))
		}
		if !locked {
			return goerr.New("another vendorfetch run is using this root", goerr.V("lock", lockPath))
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("Failed to release lock", "lock", lockPath, "error", err)
			}
		}()

		// Interrupts end the run after the current entry instead of killing it mid-write
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		storage := sourceCfg.Storage()
		logger.Info("Mirroring manifest",
			"root", storage.Root(),
			"source", sourceCfg.Kind,
			"entries", manifest.Len(),
		)

		uc := usecase.NewFetch(fetcher, storage, retryCfg.Options()...)
		summary, err := uc.Run(ctx, manifest)
		if summary != nil && runCfg.Report {
			renderReport(c.Root().Writer, summary)
		}
		if err != nil {
			return err
		}

		if runCfg.FailOnError && summary.HasFailures() {
			return goerr.New("some files failed to download",
				goerr.V("failed", summary.Failed), goerr.V("processed", summary.Processed))
		}

		return nil
	}
}

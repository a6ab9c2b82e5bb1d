package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

// FetchOption configures the fetch use case
type FetchOption func(*fetchUseCase)

// WithRetrier replaces the default Retrier
func WithRetrier(r *Retrier) FetchOption {
	return func(uc *fetchUseCase) {
		uc.retrier = r
	}
}

// WithPersistInRetry moves directory creation and the file write inside the
// retried operation, so a failed write triggers a new fetch attempt.
func WithPersistInRetry(enabled bool) FetchOption {
	return func(uc *fetchUseCase) {
		uc.persistInRetry = enabled
	}
}

type fetchUseCase struct {
	fetcher        interfaces.Fetcher
	storage        interfaces.Storage
	retrier        *Retrier
	persistInRetry bool
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(fetcher interfaces.Fetcher, storage interfaces.Storage, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		fetcher: fetcher,
		storage: storage,
		retrier: NewRetrier(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run processes the manifest strictly in order. A failing entry never stops
// the batch; only ctx cancellation ends the run early, in which case the
// partial summary is returned together with the error.
func (uc *fetchUseCase) Run(ctx context.Context, manifest *model.Manifest) (*model.RunSummary, error) {
	start := time.Now()
	summary := &model.RunSummary{
		RunID:   uuid.NewString(),
		Results: make([]model.DownloadResult, 0, manifest.Len()),
	}

	logger := ctxlog.From(ctx).With("run_id", summary.RunID)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Starting download",
		"entries", manifest.Len(),
		"base_url", manifest.BaseURL(),
		"max_attempts", uc.retrier.MaxAttempts(),
	)

	for _, entry := range manifest.Entries() {
		if err := ctx.Err(); err != nil {
			return summary, interrupted(ctx, summary, manifest, start, err)
		}

		summary.Add(uc.processEntry(ctx, entry))
	}

	// A signal during the last entry must not be reported as a completed run
	if err := ctx.Err(); err != nil {
		return summary, interrupted(ctx, summary, manifest, start, err)
	}

	summary.Elapsed = time.Since(start)

	logger.Info("Download completed",
		"processed", summary.Processed,
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed.String(),
	)

	return summary, nil
}

func interrupted(ctx context.Context, summary *model.RunSummary, manifest *model.Manifest, start time.Time, err error) error {
	summary.Elapsed = time.Since(start)
	ctxlog.From(ctx).Warn("Download interrupted",
		"processed", summary.Processed,
		"remaining", manifest.Len()-summary.Processed,
	)
	return goerr.Wrap(err, "download interrupted",
		goerr.T(types.ErrTagCanceled),
		goerr.V("processed", summary.Processed), goerr.V("entries", manifest.Len()))
}

// processEntry drives one entry from Pending to a terminal outcome
func (uc *fetchUseCase) processEntry(ctx context.Context, entry model.ManifestEntry) model.DownloadResult {
	logger := ctxlog.From(ctx)
	path := entry.String()
	result := model.DownloadResult{Entry: entry, Outcome: model.OutcomePending}

	exists, err := uc.storage.Exists(path)
	if err != nil {
		return uc.fail(ctx, result, err)
	}
	if exists {
		logger.Info("Skipped (already exists)", "path", path)
		result.Outcome = model.OutcomeSkipped
		return result
	}

	fetcher := uc.fetcher
	if uc.persistInRetry {
		fetcher = interfaces.FetcherFunc(func(ctx context.Context, path string) ([]byte, error) {
			content, err := uc.fetcher.FetchOnce(ctx, path)
			if err != nil {
				return nil, err
			}
			if err := uc.persist(path, content); err != nil {
				return nil, err
			}
			return content, nil
		})
	}

	content, attempts, err := uc.retrier.FetchWithRetry(ctx, fetcher, path)
	result.Attempts = attempts
	if err != nil {
		return uc.fail(ctx, result, err)
	}

	if !uc.persistInRetry {
		if err := uc.persist(path, content); err != nil {
			return uc.fail(ctx, result, err)
		}
	}

	logger.Info("Downloaded",
		"path", path,
		"size_bytes", len(content),
		"attempts", len(attempts),
	)

	result.Outcome = model.OutcomeDownloaded
	result.Content = content
	return result
}

// persist must only be called with content from a successful decoded attempt
func (uc *fetchUseCase) persist(path string, content []byte) error {
	if err := uc.storage.EnsureDirectories(path); err != nil {
		return err
	}
	return uc.storage.Write(path, content)
}

func (uc *fetchUseCase) fail(ctx context.Context, result model.DownloadResult, err error) model.DownloadResult {
	ctxlog.From(ctx).Error("Failed to download",
		"path", result.Entry.String(),
		"attempts", len(result.Attempts),
		"kind", types.Kind(err),
		"error", err,
	)

	result.Outcome = model.OutcomeFailed
	result.Err = err
	return result
}

// Status reports which entries are already present locally
func (uc *fetchUseCase) Status(manifest *model.Manifest) ([]model.EntryStatus, error) {
	statuses := make([]model.EntryStatus, 0, manifest.Len())
	for _, entry := range manifest.Entries() {
		exists, err := uc.storage.Exists(entry.String())
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check local entry", goerr.V("path", entry.String()))
		}
		statuses = append(statuses, model.EntryStatus{Entry: entry, Exists: exists})
	}
	return statuses, nil
}

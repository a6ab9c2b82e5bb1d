package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vendorfetch/pkg/usecase"
)

// Retry holds retry policy configuration
type Retry struct {
	MaxRetries     int
	BaseDelay      time.Duration
	NoRetryDecode  bool
	PersistInRetry bool
}

// Flags returns CLI flags for retry configuration
func (c *Retry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-retries",
			Usage:       "Maximum fetch attempts per file",
			Value:       usecase.DefaultMaxAttempts,
			Destination: &c.MaxRetries,
			Sources:     cli.EnvVars("VENDORFETCH_MAX_RETRIES"),
		},
		&cli.DurationFlag{
			Name:        "base-delay",
			Usage:       "Backoff unit; the wait after failed attempt k is k times this value",
			Value:       usecase.DefaultBaseDelay,
			Destination: &c.BaseDelay,
			Sources:     cli.EnvVars("VENDORFETCH_BASE_DELAY"),
		},
		&cli.BoolFlag{
			Name:        "no-retry-decode",
			Usage:       "Do not retry responses whose body cannot be decoded",
			Destination: &c.NoRetryDecode,
			Sources:     cli.EnvVars("VENDORFETCH_NO_RETRY_DECODE"),
		},
		&cli.BoolFlag{
			Name:        "retry-persist",
			Usage:       "Retry the fetch when writing the file fails",
			Destination: &c.PersistInRetry,
			Sources:     cli.EnvVars("VENDORFETCH_RETRY_PERSIST"),
		},
	}
}

// Options converts the configuration into use case options
func (c *Retry) Options() []usecase.FetchOption {
	retryOpts := []usecase.RetryOption{
		usecase.WithMaxAttempts(c.MaxRetries),
		usecase.WithBaseDelay(c.BaseDelay),
	}
	if c.NoRetryDecode {
		retryOpts = append(retryOpts, usecase.WithRetryable(usecase.RetryTransient))
	}

	return []usecase.FetchOption{
		usecase.WithRetrier(usecase.NewRetrier(retryOpts...)),
		usecase.WithPersistInRetry(c.PersistInRetry),
	}
}

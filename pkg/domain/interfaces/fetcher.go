package interfaces

import (
	"context"
)

// Fetcher performs exactly one network attempt for a manifest path and
// returns the decoded content. Implementations never retry.
type Fetcher interface {
	FetchOnce(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// FetchOnce calls f(ctx, path)
func (f FetcherFunc) FetchOnce(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

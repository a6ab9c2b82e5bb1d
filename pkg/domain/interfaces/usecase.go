package interfaces

import (
	"context"

	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
)

// FetchUseCase drives one pass over a manifest
type FetchUseCase interface {
	// Run processes every entry sequentially and returns the run summary
	Run(ctx context.Context, manifest *model.Manifest) (*model.RunSummary, error)

	// Status reports local presence of every entry without touching the network
	Status(manifest *model.Manifest) ([]model.EntryStatus, error)
}

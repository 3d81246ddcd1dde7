// Package aggregate builds the flattened asset listing used for bulk
// export and manifest generation.
package aggregate

import (
	"context"
	"errors"
	"sort"

	"github.com/podvault-labs/podcatalog/internal/domain"
)

// Catalog is the read-only slice of the catalog store the aggregation
// composes over.
type Catalog interface {
	ListDataSpaces(ctx context.Context) ([]domain.DataSpace, error)
	ListAssets(ctx context.Context, dataSpaceID string) ([]domain.Asset, error)
}

// SourceError records a data space whose listing failed during fan-out.
type SourceError struct {
	DataSpaceID string
	Err         error
}

func (e SourceError) Error() string {
	return "list assets of " + e.DataSpaceID + ": " + e.Err.Error()
}

func (e SourceError) Unwrap() error { return e.Err }

// Result is a partial-success aggregation: assets from the data spaces
// that listed cleanly, plus one error per data space that did not.
type Result struct {
	Assets []domain.Asset
	Errors []SourceError
}

// Service fans read-only catalog calls out across every data space
// visible to the caller.
type Service struct {
	catalog Catalog
}

func New(cat Catalog) (*Service, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	return &Service{catalog: cat}, nil
}

// RetrieveAll lists assets across all of the caller's data spaces.
// Per-data-space failures land in Result.Errors instead of aborting the
// aggregation. Results are sorted newest first and truncated to limit
// when limit > 0.
func (s *Service) RetrieveAll(ctx context.Context, limit int) (Result, error) {
	spaces, err := s.catalog.ListDataSpaces(ctx)
	if err != nil {
		return Result{}, err
	}
	var result Result
	for _, ds := range spaces {
		assets, err := s.catalog.ListAssets(ctx, ds.ID)
		if err != nil {
			result.Errors = append(result.Errors, SourceError{DataSpaceID: ds.ID, Err: err})
			continue
		}
		result.Assets = append(result.Assets, assets...)
	}
	sort.SliceStable(result.Assets, func(i, j int) bool {
		return result.Assets[i].CreatedAt.After(result.Assets[j].CreatedAt)
	})
	if limit > 0 && len(result.Assets) > limit {
		result.Assets = result.Assets[:limit]
	}
	return result, nil
}

package mock

import (
	"context"

	"github.com/lawcorpus/lexscan"
)

var _ lexscan.CatalogSource = (*CatalogSource)(nil)

// CatalogSource is a mock implementation of lexscan.CatalogSource.
type CatalogSource struct {
	FetchCatalogFn func(ctx context.Context, catalog lexscan.Catalog) ([]byte, error)
}

func (s *CatalogSource) FetchCatalog(ctx context.Context, catalog lexscan.Catalog) ([]byte, error) {
	return s.FetchCatalogFn(ctx, catalog)
}

package mock

import (
	"context"

	"github.com/lawcorpus/lexscan"
)

var _ lexscan.InventorySource = (*InventorySource)(nil)

// InventorySource is a mock implementation of lexscan.InventorySource.
type InventorySource struct {
	DiscoverInventoryFn func(ctx context.Context, origins []string) (lexscan.SyncInventory, error)
}

func (s *InventorySource) DiscoverInventory(ctx context.Context, origins []string) (lexscan.SyncInventory, error) {
	return s.DiscoverInventoryFn(ctx, origins)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lawcorpus/lexscan"
)

// Ensure LoggingInventorySource implements lexscan.InventorySource.
var _ lexscan.InventorySource = (*LoggingInventorySource)(nil)

// LoggingInventorySource wraps an InventorySource with discovery logging.
type LoggingInventorySource struct {
	next   lexscan.InventorySource
	logger *slog.Logger
}

// NewLoggingInventorySource creates a new LoggingInventorySource.
func NewLoggingInventorySource(next lexscan.InventorySource, logger *slog.Logger) *LoggingInventorySource {
	return &LoggingInventorySource{next: next, logger: logger}
}

// DiscoverInventory delegates to the wrapped source and logs the operation.
func (s *LoggingInventorySource) DiscoverInventory(ctx context.Context, origins []string) (inv lexscan.SyncInventory, err error) {
	defer func(begin time.Time) {
		s.logger.Info("inventory discovery",
			"origins", len(origins),
			"filenames", len(inv),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverInventory(ctx, origins)
}

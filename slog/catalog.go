package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lawcorpus/lexscan"
)

// Ensure LoggingCatalogSource implements lexscan.CatalogSource.
var _ lexscan.CatalogSource = (*LoggingCatalogSource)(nil)

// LoggingCatalogSource wraps a CatalogSource with per-catalog logging.
type LoggingCatalogSource struct {
	next   lexscan.CatalogSource
	logger *slog.Logger
}

// NewLoggingCatalogSource creates a new LoggingCatalogSource.
func NewLoggingCatalogSource(next lexscan.CatalogSource, logger *slog.Logger) *LoggingCatalogSource {
	return &LoggingCatalogSource{next: next, logger: logger}
}

// FetchCatalog delegates to the wrapped source and logs the operation.
func (s *LoggingCatalogSource) FetchCatalog(ctx context.Context, catalog lexscan.Catalog) (payload []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog fetch",
			"catalog", catalog.Name,
			"url", catalog.URL,
			"bytes", len(payload),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchCatalog(ctx, catalog)
}

// Package slog provides logging decorators for lexscan services using the
// standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lawcorpus/lexscan"
)

// Ensure LoggingFetcher implements lexscan.Fetcher.
var _ lexscan.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-document logging.
type LoggingFetcher struct {
	next   lexscan.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lexscan.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchText delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) FetchText(ctx context.Context, doc lexscan.ResolvedDocument) (fetched *lexscan.FetchedText, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if fetched != nil {
			bytes = fetched.ByteLength
		}
		f.logger.Info("fetch",
			"url", doc.CanonicalURL,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchText(ctx, doc)
}

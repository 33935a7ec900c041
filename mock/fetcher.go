package mock

import (
	"context"

	"github.com/lawcorpus/lexscan"
)

var _ lexscan.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lexscan.Fetcher.
type Fetcher struct {
	FetchTextFn func(ctx context.Context, doc lexscan.ResolvedDocument) (*lexscan.FetchedText, error)
}

func (f *Fetcher) FetchText(ctx context.Context, doc lexscan.ResolvedDocument) (*lexscan.FetchedText, error) {
	return f.FetchTextFn(ctx, doc)
}

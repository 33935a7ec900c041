package http

import (
	"context"
	"io"
	"net/http"

	"github.com/lawcorpus/lexscan"
)

// Ensure CatalogClient implements lexscan.CatalogSource.
var _ lexscan.CatalogSource = (*CatalogClient)(nil)

// CatalogClient retrieves catalog payloads over HTTP. Every failure maps
// to ECATALOG; callers skip unreadable catalogs rather than abort a run.
type CatalogClient struct {
	client *http.Client
}

// NewCatalogClient creates a new CatalogClient with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewCatalogClient(client *http.Client) *CatalogClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &CatalogClient{client: client}
}

// FetchCatalog retrieves the raw payload of one catalog feed.
func (c *CatalogClient) FetchCatalog(ctx context.Context, cat lexscan.Catalog) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cat.URL, nil)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog %s: %v", cat.Name, err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog %s: %v", cat.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog %s: HTTP %d for %s", cat.Name, resp.StatusCode, cat.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog %s: %v", cat.Name, err)
	}

	return body, nil
}

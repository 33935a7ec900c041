// Package http provides HTTP-based implementations of the network ports:
// document text retrieval, catalog feeds, and origin file inventories.
package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lawcorpus/lexscan"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the tool to corpus hosts.
const DefaultUserAgent = "lexscan/1.0"

// Ensure Fetcher implements lexscan.Fetcher at compile time.
var _ lexscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves document text from URLs using plain HTTP requests.
// Each failure is classified by error code so callers can report it per
// document: EUNREACHABLE for network errors and timeouts, ESTATUS for
// non-success statuses, EDECODE for payloads that are not decodable text.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchText retrieves the plain text of a resolved document. The returned
// digest is computed over the payload exactly as fetched, never from a
// cache; every fetch re-reads and re-hashes the document.
func (f *Fetcher) FetchText(ctx context.Context, doc lexscan.ResolvedDocument) (*lexscan.FetchedText, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.CanonicalURL, nil)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.EUNREACHABLE, "request for %s: %v", doc.CanonicalURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.EUNREACHABLE, "fetch %s: %v", doc.CanonicalURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, lexscan.Errorf(lexscan.ESTATUS, "HTTP %d for %s", resp.StatusCode, doc.CanonicalURL)
	}

	if ct := resp.Header.Get("Content-Type"); !textContentType(ct) {
		return nil, lexscan.Errorf(lexscan.EDECODE, "unexpected content type %q for %s", ct, doc.CanonicalURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.EUNREACHABLE, "read %s: %v", doc.CanonicalURL, err)
	}

	if !utf8.Valid(body) {
		return nil, lexscan.Errorf(lexscan.EDECODE, "payload for %s is not valid UTF-8", doc.CanonicalURL)
	}

	sum := sha256.Sum256(body)
	return &lexscan.FetchedText{
		Document:   doc,
		Text:       string(body),
		ByteLength: len(body),
		Digest:     hex.EncodeToString(sum[:]),
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// textContentType reports whether a Content-Type header is acceptable for
// a plain-text document. Static corpus hosts often omit the header or
// serve txt as octet-stream; both are accepted and the UTF-8 check still
// guards the payload.
func textContentType(ct string) bool {
	if ct == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return true
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/octet-stream"
}

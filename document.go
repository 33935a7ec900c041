package lexscan

import (
	"context"
	"time"
)

// DocumentKind classifies a corpus document by catalog of origin.
type DocumentKind string

// DocumentKind constants, in presentation order. Result groups are always
// rendered in this order regardless of per-document completion order.
const (
	KindTextbook DocumentKind = "textbook"
	KindLaw      DocumentKind = "law"
	KindRule     DocumentKind = "rule"
)

// Kinds returns all document kinds in presentation order.
func Kinds() []DocumentKind {
	return []DocumentKind{KindTextbook, KindLaw, KindRule}
}

// ParseKind converts a configuration string into a DocumentKind.
// Returns EINVALID if the string does not name a known kind.
func ParseKind(s string) (DocumentKind, error) {
	switch DocumentKind(s) {
	case KindTextbook, KindLaw, KindRule:
		return DocumentKind(s), nil
	}
	return "", Errorf(EINVALID, "unknown document kind %q", s)
}

// Rank returns the position of the kind in presentation order.
// Unknown kinds sort after all known ones.
func (k DocumentKind) Rank() int {
	for i, known := range Kinds() {
		if k == known {
			return i
		}
	}
	return len(Kinds())
}

// DocumentDescriptor is a catalog entry reduced to the fields the pipeline
// needs: where the text lives and how to label it in results.
type DocumentDescriptor struct {
	SourceLocation string       `json:"sourceLocation"`
	Title          string       `json:"title"`
	Kind           DocumentKind `json:"kind"`
	Jurisdiction   string       `json:"jurisdiction,omitempty"`
}

// Validate returns an error if the descriptor contains invalid fields.
func (d *DocumentDescriptor) Validate() error {
	if d.SourceLocation == "" {
		return Errorf(EINVALID, "descriptor source location required")
	}
	if _, err := ParseKind(string(d.Kind)); err != nil {
		return err
	}
	return nil
}

// ResolvedDocument is a descriptor whose location has been rewritten to a
// canonical, fully qualified URL. The canonical URL is the document's
// identity for deduplication and chunk addressing.
type ResolvedDocument struct {
	CanonicalURL string       `json:"canonicalUrl"`
	Title        string       `json:"title"`
	Kind         DocumentKind `json:"kind"`
	Jurisdiction string       `json:"jurisdiction,omitempty"`
}

// FetchedText is the outcome of retrieving a resolved document. Text holds
// the decoded payload exactly as fetched; normalization is a separate,
// explicit step downstream.
type FetchedText struct {
	Document   ResolvedDocument `json:"document"`
	Text       string           `json:"text"`
	ByteLength int              `json:"byteLength"`
	Digest     string           `json:"digest"` // hex SHA-256 of the fetched payload
	FetchedAt  time.Time        `json:"fetchedAt"`
}

// Fetcher retrieves document text over the network.
// Failures are classified by error code: EUNREACHABLE for network errors
// and timeouts, ESTATUS for non-success HTTP statuses, EDECODE for payloads
// that cannot be decoded as text.
type Fetcher interface {
	FetchText(ctx context.Context, doc ResolvedDocument) (*FetchedText, error)
}

// TextNormalizer cleans up fetched text before chunking or matching.
// Normalization never grows the text, so offsets into the normalized form
// stay within the bounds of the fetched form.
type TextNormalizer interface {
	Normalize(text string) string
}

// OriginLimiter provides per-origin rate limiting for polite fetching.
type OriginLimiter interface {
	// Wait blocks until the rate limit allows a request to the origin.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, origin string) error
}

package lexscan

// SearchResultItem is one matched document in a scan result.
type SearchResultItem struct {
	Document   ResolvedDocument `json:"document"`
	Spans      []MatchSpan      `json:"spans"`
	Snippets   []Snippet        `json:"snippets"`
	ByteLength int              `json:"byteLength"`
	Digest     string           `json:"digest"`
}

// ResultGroup collects the matched documents of one kind. Groups are
// ordered by kind presentation order; items keep catalog order within the
// group no matter which document finished scanning first.
type ResultGroup struct {
	Kind  DocumentKind       `json:"kind"`
	Items []SearchResultItem `json:"items"`
}

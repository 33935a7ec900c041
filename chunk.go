package lexscan

// Chunk is a contiguous slice of a normalized document prepared for
// indexing. Offsets are rune offsets into the normalized text; ID is
// deterministic in (CanonicalURL, StartOffset) so a rebuild over identical
// inputs reproduces identical IDs.
type Chunk struct {
	ID           string       `json:"id"`
	CanonicalURL string       `json:"url"`
	Title        string       `json:"title"`
	Kind         DocumentKind `json:"kind"`
	Jurisdiction string       `json:"jurisdiction,omitempty"`
	StartOffset  int          `json:"start"`
	EndOffset    int          `json:"end"`
	Text         string       `json:"text"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.CanonicalURL == "" {
		return Errorf(EINVALID, "chunk canonical URL required")
	}
	if c.StartOffset < 0 || c.EndOffset <= c.StartOffset {
		return Errorf(EINVALID, "chunk offsets [%d, %d) out of order", c.StartOffset, c.EndOffset)
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

// Chunker splits a normalized document into chunks. Implementations must
// be deterministic: the same document and text always yield the same
// chunks in the same order.
type Chunker interface {
	Chunk(doc ResolvedDocument, text string) []Chunk
}

// ChunkStore persists chunk records with atomic semantics.
// Append writes to a temporary location; Commit makes the store permanent;
// Abort discards pending writes. Readers never observe a partial store.
type ChunkStore interface {
	Append(chunk Chunk) error
	Commit() error
	Abort() error
}

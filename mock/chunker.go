package mock

import "github.com/lawcorpus/lexscan"

var _ lexscan.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of lexscan.Chunker.
type Chunker struct {
	ChunkFn func(doc lexscan.ResolvedDocument, text string) []lexscan.Chunk
}

func (c *Chunker) Chunk(doc lexscan.ResolvedDocument, text string) []lexscan.Chunk {
	return c.ChunkFn(doc, text)
}

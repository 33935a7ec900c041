// Package chunk splits normalized documents into indexable chunks. Both
// strategies are deterministic: identical input text always produces
// identical chunk IDs, offsets, and order, which is what makes index
// rebuilds reproducible.
package chunk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/lawcorpus/lexscan"
)

// Default chunking parameters, in runes and lines respectively.
const (
	DefaultWindow  = 2000
	DefaultOverlap = 200
	DefaultLines   = 40
	DefaultStep    = 30
)

// ID derives the deterministic chunk ID from the document's canonical URL
// and the chunk's starting rune offset.
func ID(canonicalURL string, startOffset int) string {
	h := xxhash.Sum64String(canonicalURL + "#" + strconv.Itoa(startOffset))
	return fmt.Sprintf("%016x", h)
}

// Ensure both chunkers implement lexscan.Chunker at compile time.
var (
	_ lexscan.Chunker = (*WindowChunker)(nil)
	_ lexscan.Chunker = (*LineChunker)(nil)
)

// WindowChunker produces fixed-width rune windows with a fixed overlap
// between consecutive chunks.
type WindowChunker struct {
	window  int
	overlap int
}

// NewWindowChunker creates a WindowChunker. Window is the chunk width in
// runes; overlap is how many runes consecutive chunks share and must be
// smaller than the window.
func NewWindowChunker(window, overlap int) (*WindowChunker, error) {
	if window <= 0 {
		return nil, lexscan.Errorf(lexscan.EINVALID, "chunk window must be positive, got %d", window)
	}
	if overlap < 0 || overlap >= window {
		return nil, lexscan.Errorf(lexscan.EINVALID, "chunk overlap must be in [0, window), got %d", overlap)
	}
	return &WindowChunker{window: window, overlap: overlap}, nil
}

// Chunk implements lexscan.Chunker. An empty or whitespace-only document
// yields zero chunks; a document shorter than one window yields exactly
// one chunk covering the whole text.
func (c *WindowChunker) Chunk(doc lexscan.ResolvedDocument, text string) []lexscan.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	step := c.window - c.overlap

	var chunks []lexscan.Chunk
	for start := 0; ; start += step {
		end := start + c.window
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, newChunk(doc, runes, start, end))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// LineChunker produces windows of whole lines, advancing a fixed number of
// lines between chunks.
type LineChunker struct {
	lines int
	step  int
}

// NewLineChunker creates a LineChunker. Lines is the window height; step
// is how many lines the window advances and must be in (0, lines].
func NewLineChunker(lines, step int) (*LineChunker, error) {
	if lines <= 0 {
		return nil, lexscan.Errorf(lexscan.EINVALID, "chunk lines must be positive, got %d", lines)
	}
	if step <= 0 || step > lines {
		return nil, lexscan.Errorf(lexscan.EINVALID, "chunk step must be in (0, lines], got %d", step)
	}
	return &LineChunker{lines: lines, step: step}, nil
}

// Chunk implements lexscan.Chunker. Windows whose lines are all blank are
// skipped; the window always terminates at end-of-file even when the tail
// is shorter than a full window.
func (c *LineChunker) Chunk(doc lexscan.ResolvedDocument, text string) []lexscan.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Rune offsets of each line, excluding the line's trailing newline.
	// A trailing newline terminates the last line rather than opening an
	// empty one.
	type lineSpan struct{ start, end int }
	var spans []lineSpan
	lineStart, pos := 0, 0
	for _, r := range text {
		if r == '\n' {
			spans = append(spans, lineSpan{lineStart, pos})
			lineStart = pos + 1
		}
		pos++
	}
	if lineStart < pos {
		spans = append(spans, lineSpan{lineStart, pos})
	}

	runes := []rune(text)
	var chunks []lexscan.Chunk
	for i := 0; i < len(spans); i += c.step {
		j := i + c.lines - 1
		if j >= len(spans) {
			j = len(spans) - 1
		}
		start, end := spans[i].start, spans[j].end
		if strings.TrimSpace(string(runes[start:end])) == "" {
			continue
		}
		chunks = append(chunks, newChunk(doc, runes, start, end))
	}
	return chunks
}

func newChunk(doc lexscan.ResolvedDocument, runes []rune, start, end int) lexscan.Chunk {
	return lexscan.Chunk{
		ID:           ID(doc.CanonicalURL, start),
		CanonicalURL: doc.CanonicalURL,
		Title:        doc.Title,
		Kind:         doc.Kind,
		Jurisdiction: doc.Jurisdiction,
		StartOffset:  start,
		EndOffset:    end,
		Text:         string(runes[start:end]),
	}
}

package mock

import "github.com/lawcorpus/lexscan"

var _ lexscan.TextNormalizer = (*TextNormalizer)(nil)

// TextNormalizer is a mock implementation of lexscan.TextNormalizer.
type TextNormalizer struct {
	NormalizeFn func(text string) string
}

func (n *TextNormalizer) Normalize(text string) string {
	return n.NormalizeFn(text)
}

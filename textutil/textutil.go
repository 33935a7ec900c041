// Package textutil provides cleanup of fetched corpus text. The corpus
// files are OCR output of uneven quality; normalization gives the chunker
// and matcher a consistent view without altering the words themselves.
package textutil

import (
	"strings"
	"unicode"

	"github.com/lawcorpus/lexscan"
)

// Ensure Normalizer implements lexscan.TextNormalizer.
var _ lexscan.TextNormalizer = (*Normalizer)(nil)

// Normalizer is the standard corpus text normalizer.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize implements lexscan.TextNormalizer.
func (n *Normalizer) Normalize(text string) string {
	return Normalize(text)
}

// Normalize converts line endings to LF, drops invalid UTF-8 sequences,
// and strips soft hyphens, zero-width marks, and control characters other
// than newline and tab. Every step removes or shrinks; normalized text is
// never longer than its input, so offsets into it stay within the input's
// bounds.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\u00ad' || r == '\ufeff' || r == '\u200b':
			// OCR artifacts: soft hyphen, BOM, zero-width space.
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

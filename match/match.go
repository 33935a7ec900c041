// Package match implements literal substring matching and snippet
// selection over normalized document text. Matching works in rune space so
// spans and snippet windows are character coordinates, stable across the
// multibyte sequences common in OCR output.
package match

import (
	"sort"
	"unicode"

	"github.com/lawcorpus/lexscan"
)

// Find returns the spans where the query occurs in text, ascending by
// start offset. Both sides are folded rune-by-rune with unicode.ToLower,
// which preserves length, so spans index the original text. A phrase query
// yields the occurrences of the whole phrase; a token query yields the
// union of each token's occurrences. In MatchAll mode a token that never
// occurs voids the whole document.
func Find(q lexscan.Query, text string) []lexscan.MatchSpan {
	if q.IsEmpty() || text == "" {
		return nil
	}
	hay := foldRunes(text)

	if q.Phrase != "" {
		return occurrences(hay, foldRunes(q.Phrase))
	}

	var spans []lexscan.MatchSpan
	for _, tok := range q.Tokens {
		occ := occurrences(hay, foldRunes(tok))
		if len(occ) == 0 && q.Mode == lexscan.MatchAll {
			return nil
		}
		spans = append(spans, occ...)
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// SelectSnippets reduces spans to at most max snippets. Spans are visited
// in ascending start order and kept greedily while they do not overlap an
// already kept span; each kept span yields a window of width runes
// centered on its midpoint, clamped to the text bounds.
func SelectSnippets(spans []lexscan.MatchSpan, text string, terms []string, width, max int) []lexscan.Snippet {
	if len(spans) == 0 || width <= 0 || max <= 0 {
		return nil
	}

	ordered := make([]lexscan.MatchSpan, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].End < ordered[j].End
	})

	runes := []rune(text)
	var snippets []lexscan.Snippet
	lastEnd := 0
	for _, span := range ordered {
		if len(snippets) == max {
			break
		}
		if span.Start < lastEnd {
			continue
		}
		lastEnd = span.End
		snippets = append(snippets, cut(runes, span, terms, width))
	}
	return snippets
}

// cut extracts the snippet window for one span. The window is not shifted
// at document boundaries, only clamped, so edge matches yield shorter
// snippets.
func cut(runes []rune, span lexscan.MatchSpan, terms []string, width int) lexscan.Snippet {
	mid := (span.Start + span.End) / 2
	lo := mid - width/2
	hi := lo + width
	if lo < 0 {
		lo = 0
	}
	if hi > len(runes) {
		hi = len(runes)
	}
	if lo > hi {
		lo = hi
	}
	return lexscan.Snippet{Text: string(runes[lo:hi]), Terms: terms}
}

// occurrences finds the non-overlapping left-to-right occurrences of
// needle in hay.
func occurrences(hay, needle []rune) []lexscan.MatchSpan {
	if len(needle) == 0 || len(needle) > len(hay) {
		return nil
	}
	var spans []lexscan.MatchSpan
	for i := 0; i+len(needle) <= len(hay); {
		if matchAt(hay, needle, i) {
			spans = append(spans, lexscan.MatchSpan{Start: i, End: i + len(needle)})
			i += len(needle)
		} else {
			i++
		}
	}
	return spans
}

func matchAt(hay, needle []rune, at int) bool {
	for i, r := range needle {
		if hay[at+i] != r {
			return false
		}
	}
	return true
}

// foldRunes lowercases rune-by-rune. The mapping is one-to-one, so folded
// offsets equal original offsets.
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

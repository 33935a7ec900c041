package lexscan

import "strings"

// MatchMode selects how a multi-token query combines its tokens.
type MatchMode string

// MatchMode constants.
const (
	MatchAll MatchMode = "all" // every token must occur in the document
	MatchAny MatchMode = "any" // any token occurring is enough
)

// ParseMatchMode converts a configuration string into a MatchMode.
// Returns EINVALID if the string does not name a known mode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case MatchAll, MatchAny:
		return MatchMode(s), nil
	}
	return "", Errorf(EINVALID, "unknown match mode %q", s)
}

// Query is a parsed free-text query. A query is either a phrase query
// (Phrase non-empty, matched as one contiguous string) or a token query
// (Tokens matched individually and combined per Mode). Matching is
// case-insensitive on both sides.
type Query struct {
	Raw    string    `json:"raw"`
	Phrase string    `json:"phrase,omitempty"`
	Tokens []string  `json:"tokens,omitempty"`
	Mode   MatchMode `json:"mode"`
}

// ParseQuery splits a raw query string into a Query. A double-quoted
// substring makes the query a phrase query; otherwise the string is split
// on whitespace into tokens. An empty quoted pair is ignored.
func ParseQuery(raw string, mode MatchMode) Query {
	q := Query{Raw: raw, Mode: mode}
	rest := raw
	if lo := strings.Index(raw, `"`); lo >= 0 {
		if n := strings.Index(raw[lo+1:], `"`); n >= 0 {
			phrase := raw[lo+1 : lo+1+n]
			if strings.TrimSpace(phrase) != "" {
				q.Phrase = phrase
				return q
			}
		}
		// Unbalanced or empty quotes carry no phrase; strip them so they
		// cannot leak into tokens.
		rest = strings.ReplaceAll(raw, `"`, " ")
	}
	q.Tokens = strings.Fields(rest)
	return q
}

// IsEmpty returns true if the query carries no phrase and no tokens.
// An empty query matches nothing.
func (q Query) IsEmpty() bool {
	return q.Phrase == "" && len(q.Tokens) == 0
}

// Terms returns the strings a renderer should highlight: the phrase for a
// phrase query, the tokens otherwise.
func (q Query) Terms() []string {
	if q.Phrase != "" {
		return []string{q.Phrase}
	}
	return q.Tokens
}

// Validate returns an error if the query contains invalid fields.
func (q Query) Validate() error {
	if q.IsEmpty() {
		return Errorf(EINVALID, "query text required")
	}
	if _, err := ParseMatchMode(string(q.Mode)); err != nil {
		return err
	}
	return nil
}

// MatchSpan is one occurrence of a query term in a document, as half-open
// rune offsets [Start, End) into the normalized text.
type MatchSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Snippet is a fixed-width excerpt centered on a match, together with the
// terms a renderer should re-highlight inside it.
type Snippet struct {
	Text  string   `json:"text"`
	Terms []string `json:"terms"`
}

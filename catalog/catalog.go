// Package catalog parses remote catalog feeds into document descriptors.
// The corpus catalogs come in several historical JSON shapes; this package
// normalizes all of them into the one descriptor form the rest of the
// pipeline consumes.
package catalog

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/lawcorpus/lexscan"
)

// Field priority lists. The first non-empty string value wins; lookups
// never fall back across lists.
var (
	locationFields     = []string{"url_txt", "txt", "url", "href", "path", "file"}
	titleFields        = []string{"title", "name", "label"}
	jurisdictionFields = []string{"jurisdiction", "juris", "state"}
)

// Container keys whose array value holds the record list in the wrapped
// catalog shape.
var containerKeys = map[string]bool{
	"items":   true,
	"records": true,
}

// Result is the outcome of parsing one catalog payload. Descriptors keep
// the payload's source order; Skipped counts records that carried no
// recognizable location.
type Result struct {
	Descriptors []lexscan.DocumentDescriptor
	Skipped     int
}

// Parse extracts document descriptors from a raw catalog payload. All
// descriptors inherit the given kind. Accepted shapes are a bare array of
// records, an object wrapping the record array under an items or records
// property, and an arbitrary object whose property values are the records.
// Returns ECATALOG if the payload is not well-formed JSON of one of these
// shapes; individual records without a location are counted, not fatal.
func Parse(payload []byte, kind lexscan.DocumentKind) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	tok, err := dec.Token()
	if err != nil {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload is not valid JSON: %v", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload must be a JSON array or object")
	}
	if delim == '[' {
		return parseRecords(dec, kind)
	}
	return parseObject(dec, kind)
}

// parseRecords consumes array elements from dec until the closing bracket.
func parseRecords(dec *json.Decoder, kind lexscan.DocumentKind) (*Result, error) {
	res := &Result{}
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload is not valid JSON: %v", err)
		}
		res.add(raw, kind)
	}
	return res, nil
}

// parseObject walks the top-level properties in source order. If a
// container property holds an array, that array is the record list and
// sibling properties are metadata. Otherwise every property value is
// treated as a candidate record.
func parseObject(dec *json.Decoder, kind lexscan.DocumentKind) (*Result, error) {
	var values []json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload is not valid JSON: %v", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload is not valid JSON: %v", err)
		}

		if containerKeys[key] && firstByte(raw) == '[' {
			sub := json.NewDecoder(bytes.NewReader(raw))
			if _, err := sub.Token(); err != nil {
				return nil, lexscan.Errorf(lexscan.ECATALOG, "catalog payload is not valid JSON: %v", err)
			}
			return parseRecords(sub, kind)
		}
		values = append(values, raw)
	}

	res := &Result{}
	for _, raw := range values {
		res.add(raw, kind)
	}
	return res, nil
}

// add converts one raw record into a descriptor, or counts it as skipped
// when no location can be recognized.
func (res *Result) add(raw json.RawMessage, kind lexscan.DocumentKind) {
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil || record == nil {
		res.Skipped++
		return
	}
	location := firstString(record, locationFields)
	if location == "" {
		res.Skipped++
		return
	}
	title := firstString(record, titleFields)
	if title == "" {
		title = deriveTitle(location)
	}
	res.Descriptors = append(res.Descriptors, lexscan.DocumentDescriptor{
		SourceLocation: location,
		Title:          title,
		Kind:           kind,
		Jurisdiction:   firstString(record, jurisdictionFields),
	})
}

// firstString returns the first non-empty string value among keys, in
// priority order. Non-string values never match.
func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := record[key].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// deriveTitle builds a display title from a location's filename: the final
// path segment, percent-decoded, extension stripped, separators spaced.
func deriveTitle(location string) string {
	s := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		s = u.Path
	}
	base := path.Base(s)
	if dec, err := url.PathUnescape(base); err == nil {
		base = dec
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

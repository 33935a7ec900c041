// Package resolve rewrites catalog locations into canonical document URLs.
// Resolution is pure and deterministic: the same location always yields
// the same canonical URL for a given configuration.
package resolve

import (
	"net/url"
	"sort"
	"strings"

	"github.com/lawcorpus/lexscan"
)

// Resolver turns source locations into canonical fetchable URLs. Relative
// locations resolve against a base origin; absolute locations on retired
// origins are rewritten through a legacy origin map with their paths
// preserved.
type Resolver struct {
	base   *url.URL
	legacy map[string]*url.URL // normalized old origin -> replacement
}

// New returns a Resolver for the given base origin and legacy origin map.
// Returns EINVALID if the base or any mapping side is not an absolute
// http(s) URL.
func New(baseOrigin string, legacy map[string]string) (*Resolver, error) {
	base, err := parseOrigin(baseOrigin)
	if err != nil {
		return nil, lexscan.Errorf(lexscan.EINVALID, "base origin %q must be an absolute http(s) URL", baseOrigin)
	}
	if base.Path == "" {
		base.Path = "/"
	} else if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	normalized := make(map[string]*url.URL, len(legacy))
	for from, to := range legacy {
		f, err := parseOrigin(from)
		if err != nil {
			return nil, lexscan.Errorf(lexscan.EINVALID, "legacy origin %q must be an absolute http(s) URL", from)
		}
		t, err := parseOrigin(to)
		if err != nil {
			return nil, lexscan.Errorf(lexscan.EINVALID, "legacy replacement %q must be an absolute http(s) URL", to)
		}
		normalized[originKey(f)] = t
	}

	return &Resolver{base: base, legacy: normalized}, nil
}

// Resolve rewrites one location into a canonical URL.
// Returns EUNRESOLVABLE for empty, malformed, or non-http(s) locations.
func (r *Resolver) Resolve(location string) (string, error) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return "", lexscan.Errorf(lexscan.EUNRESOLVABLE, "empty location")
	}

	u, err := url.Parse(loc)
	if err != nil {
		return "", lexscan.Errorf(lexscan.EUNRESOLVABLE, "location %q: %v", location, err)
	}

	switch {
	case u.Scheme != "":
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", lexscan.Errorf(lexscan.EUNRESOLVABLE, "location %q has unsupported scheme %q", location, u.Scheme)
		}
		if u.Host == "" {
			return "", lexscan.Errorf(lexscan.EUNRESOLVABLE, "location %q has no host", location)
		}
	case u.Host != "":
		// Scheme-relative location; adopt the base scheme.
		u.Scheme = r.base.Scheme
	default:
		u = r.base.ResolveReference(u)
	}

	u.Host = strings.ToLower(u.Host)
	if to, ok := r.legacy[originKey(u)]; ok {
		u.Scheme = to.Scheme
		u.Host = to.Host
	}
	return u.String(), nil
}

// PickCandidate reconciles a catalog location against a file inventory.
// It returns the inventory entry matching the location's normalized
// filename, choosing the earliest origin in preference order; ties within
// an origin and origins absent from the preference list break
// lexicographically. Returns false when the inventory has no entry for the
// filename.
func PickCandidate(inv lexscan.SyncInventory, location string, preference []string) (lexscan.InventoryEntry, bool) {
	entries := inv[lexscan.NormalizeFilename(location)]
	if len(entries) == 0 {
		return lexscan.InventoryEntry{}, false
	}

	sorted := make([]lexscan.InventoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := prefRank(preference, sorted[i].Origin), prefRank(preference, sorted[j].Origin)
		if ri != rj {
			return ri < rj
		}
		if sorted[i].Origin != sorted[j].Origin {
			return sorted[i].Origin < sorted[j].Origin
		}
		return sorted[i].URL < sorted[j].URL
	})
	return sorted[0], true
}

func prefRank(preference []string, origin string) int {
	for i, p := range preference {
		if strings.EqualFold(strings.TrimSuffix(p, "/"), strings.TrimSuffix(origin, "/")) {
			return i
		}
	}
	return len(preference)
}

// parseOrigin parses an absolute http(s) URL for use as an origin.
func parseOrigin(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, lexscan.Errorf(lexscan.EINVALID, "not an absolute http(s) URL: %q", s)
	}
	u.Host = strings.ToLower(u.Host)
	return u, nil
}

// originKey reduces a URL to its scheme://host identity.
func originKey(u *url.URL) string {
	return u.Scheme + "://" + strings.ToLower(u.Host)
}

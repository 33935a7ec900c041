package lexscan

import (
	"context"
	"net/url"
	"path"
	"sort"
	"strings"
)

// InventoryEntry is one known location of a corpus file on some origin.
type InventoryEntry struct {
	Origin string `json:"origin"`
	URL    string `json:"url"`
}

// SyncInventory maps normalized filenames to the locations that serve
// them. It is built by walking the file listings of the corpus origins and
// consulted when a catalog entry and the inventory disagree about where a
// file lives.
type SyncInventory map[string][]InventoryEntry

// Add records a location under its normalized filename.
func (inv SyncInventory) Add(origin, rawurl string) {
	key := NormalizeFilename(rawurl)
	if key == "" {
		return
	}
	inv[key] = append(inv[key], InventoryEntry{Origin: origin, URL: rawurl})
}

// Filenames returns the normalized filenames in the inventory, sorted.
func (inv SyncInventory) Filenames() []string {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeFilename reduces a location to its final path segment,
// percent-decoded and lowercased. Filename comparison across catalogs and
// inventories always goes through this normalization.
func NormalizeFilename(location string) string {
	s := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		s = u.Path
	}
	base := path.Base(s)
	if base == "." || base == "/" {
		return ""
	}
	if dec, err := url.PathUnescape(base); err == nil {
		base = dec
	}
	return strings.ToLower(base)
}

// InventorySource discovers the files served by the given origins.
type InventorySource interface {
	DiscoverInventory(ctx context.Context, origins []string) (SyncInventory, error)
}

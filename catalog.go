package lexscan

import "context"

// Catalog identifies one remote catalog feed. Each catalog contributes
// documents of a single kind.
type Catalog struct {
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Kind DocumentKind `json:"kind"`
}

// Validate returns an error if the catalog contains invalid fields.
func (c *Catalog) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "catalog name required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "catalog URL required")
	}
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return err
	}
	return nil
}

// CatalogSource retrieves the raw payload of a catalog feed.
// Returns ECATALOG if the catalog cannot be fetched; an unreadable catalog
// is skipped by callers, never fatal for a run.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, catalog Catalog) ([]byte, error)
}

// Package lexscan provides free-text search over a distributed corpus of
// legal documents. It ingests machine-readable catalogs, resolves their
// entries to canonical plain-text URLs, fetches and normalizes the texts,
// and either scans them live for a query or chunks them into an external
// ranked index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, bleve/, scan/).
package lexscan

package lexscan

import "time"

// IndexEngine is the contract with the external ranked index. The adapter
// drives it with exactly this sequence: one Begin, any number of Add calls
// with unique refs, then one Finish (or Abort on failure). The engine's
// ranking behavior is opaque to this module.
type IndexEngine interface {
	// Begin opens a new index accepting records with the given fields.
	Begin(fields []string) error

	// Add indexes one record under a caller-chosen unique ref.
	Add(ref string, record map[string]string) error

	// Finish seals the index and makes it visible to readers.
	Finish() error

	// Abort discards a partially built index. Safe to call after a failed
	// Begin or Add; never called after a successful Finish.
	Abort() error

	// Name identifies the engine implementation.
	Name() string

	// Version reports the engine version for the build manifest.
	Version() string
}

// BuildManifest summarizes one index build. It is written next to the
// index artifacts after a successful build.
type BuildManifest struct {
	Engine             string    `json:"engine"`
	EngineVersion      string    `json:"engineVersion"`
	BuiltAt            time.Time `json:"builtAt"`
	CatalogItems       int       `json:"catalogItems"`
	DocumentsAttempted int       `json:"documentsAttempted"`
	DocumentsIndexed   int       `json:"documentsIndexed"`
	ChunksProduced     int       `json:"chunksProduced"`
	IndexPath          string    `json:"indexPath"`
	ChunkStorePath     string    `json:"chunkStorePath"`
}

// ManifestWriter persists a build manifest.
type ManifestWriter interface {
	// WriteManifest writes the manifest atomically and returns its path.
	WriteManifest(m *BuildManifest) (string, error)
}

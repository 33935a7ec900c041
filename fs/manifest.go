package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lawcorpus/lexscan"
)

// ManifestFilename is the name of the build manifest within the output
// directory.
const ManifestFilename = "manifest.json"

// Ensure ManifestWriter implements lexscan.ManifestWriter at compile time.
var _ lexscan.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter writes build manifests as JSON next to the index
// artifacts. The manifest is written last, after both artifacts commit, so
// its presence marks a complete build.
type ManifestWriter struct {
	dir string
}

// NewManifestWriter creates a ManifestWriter targeting dir.
func NewManifestWriter(dir string) *ManifestWriter {
	return &ManifestWriter{dir: dir}
}

// WriteManifest writes the manifest atomically and returns its path.
func (w *ManifestWriter) WriteManifest(m *lexscan.BuildManifest) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')

	path := filepath.Join(w.dir, ManifestFilename)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

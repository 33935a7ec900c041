package mock

import "github.com/lawcorpus/lexscan"

var _ lexscan.ManifestWriter = (*ManifestWriter)(nil)

// ManifestWriter is a mock implementation of lexscan.ManifestWriter.
type ManifestWriter struct {
	WriteManifestFn func(m *lexscan.BuildManifest) (string, error)
}

func (w *ManifestWriter) WriteManifest(m *lexscan.BuildManifest) (string, error) {
	return w.WriteManifestFn(m)
}

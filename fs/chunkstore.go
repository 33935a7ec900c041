// Package fs provides file-based storage for index build artifacts.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lawcorpus/lexscan"
)

// Ensure ChunkStore implements lexscan.ChunkStore at compile time.
var _ lexscan.ChunkStore = (*ChunkStore)(nil)

// ChunkStore persists chunk records as JSON Lines with atomic update
// semantics. Records accumulate in a temporary file, then move into place
// on Commit, so readers never observe a partial store.
type ChunkStore struct {
	path string
	f    *os.File
	enc  *json.Encoder
}

// NewChunkStore creates a ChunkStore targeting path.
// Records are written to path.tmp and moved to path on Commit.
func NewChunkStore(path string) *ChunkStore {
	return &ChunkStore{path: path}
}

func (s *ChunkStore) tempPath() string {
	return s.path + ".tmp"
}

// Append writes one chunk record as a JSON line. The temporary file is
// created on the first append.
func (s *ChunkStore) Append(chunk lexscan.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}

	if s.f == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	return s.enc.Encode(chunk)
}

// Commit closes the temporary file and atomically renames it into place,
// replacing any previous store. A store with no appended chunks commits as
// an empty file.
func (s *ChunkStore) Commit() error {
	if s.f == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.f.Close(); err != nil {
		return err
	}
	s.f = nil
	s.enc = nil

	// Remove existing store if present
	if err := os.RemoveAll(s.path); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempPath(), s.path)
}

// Abort discards pending records and removes the temporary file.
func (s *ChunkStore) Abort() error {
	if s.f != nil {
		_ = s.f.Close()
		s.f = nil
		s.enc = nil
	}
	return os.RemoveAll(s.tempPath())
}

func (s *ChunkStore) open() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	f, err := os.Create(s.tempPath())
	if err != nil {
		return err
	}
	s.f = f
	s.enc = json.NewEncoder(f)
	return nil
}

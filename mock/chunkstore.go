package mock

import "github.com/lawcorpus/lexscan"

var _ lexscan.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of lexscan.ChunkStore.
type ChunkStore struct {
	AppendFn func(chunk lexscan.Chunk) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ChunkStore) Append(chunk lexscan.Chunk) error {
	return s.AppendFn(chunk)
}

func (s *ChunkStore) Commit() error {
	return s.CommitFn()
}

func (s *ChunkStore) Abort() error {
	return s.AbortFn()
}

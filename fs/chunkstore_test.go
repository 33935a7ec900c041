package fs_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lawcorpus/lexscan"
	"github.com/lawcorpus/lexscan/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Chunk Storage
// The store accumulates records in a temp file and publishes on Commit

func testChunk(id string, start int) lexscan.Chunk {
	return lexscan.Chunk{
		ID:           id,
		CanonicalURL: "https://corpus.example.com/texts/trusts-law.txt",
		Title:        "Trusts Law",
		Kind:         lexscan.KindLaw,
		Jurisdiction: "queensland",
		StartOffset:  start,
		EndOffset:    start + 10,
		Text:         "chunk text",
	}
}

func TestChunkStore_AppendWritesToTempFile(t *testing.T) {
	t.Parallel()

	// Given a store targeting a path
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)

	// When I append a chunk
	err := store.Append(testChunk("c1", 0))

	// Then no error occurs
	require.NoError(t, err)

	// And the record exists in the temp file (not final)
	_, err = os.Stat(path + ".tmp")
	require.NoError(t, err, "record should exist in temp file")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until commit")
}

func TestChunkStore_CommitMovesTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with appended chunks
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)
	require.NoError(t, store.Append(testChunk("c1", 0)))
	require.NoError(t, store.Append(testChunk("c2", 10)))

	// When I commit
	err := store.Commit()

	// Then no error occurs
	require.NoError(t, err)

	// And the final file holds one JSON record per line
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []lexscan.Chunk
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var c lexscan.Chunk
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &c))
		got = append(got, c)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c2", got[1].ID)
	assert.Equal(t, lexscan.KindLaw, got[0].Kind)
	assert.Equal(t, 10, got[1].StartOffset)

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after commit")
}

func TestChunkStore_AbortCleansUpTempFile(t *testing.T) {
	t.Parallel()

	// Given a store with appended chunks
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)
	require.NoError(t, store.Append(testChunk("c1", 0)))

	// When I abort
	err := store.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And the temp file is cleaned up
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be removed after abort")

	// And the final file doesn't exist
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist after abort")
}

func TestChunkStore_CommitWithoutAppendsPublishesEmptyStore(t *testing.T) {
	t.Parallel()

	// Given a store with no appended chunks
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)

	// When I commit
	err := store.Commit()

	// Then no error occurs and the final file exists, empty
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestChunkStore_CommitReplacesPreviousStore(t *testing.T) {
	t.Parallel()

	// Given a previously committed store
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)
	require.NoError(t, store.Append(testChunk("old", 0)))
	require.NoError(t, store.Commit())

	// When I build and commit again
	store = fs.NewChunkStore(path)
	require.NoError(t, store.Append(testChunk("new", 0)))
	require.NoError(t, store.Commit())

	// Then the final file holds only the new record
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"new"`)
	assert.NotContains(t, string(data), `"old"`)
}

func TestChunkStore_RejectsInvalidChunk(t *testing.T) {
	t.Parallel()

	// Given a store
	path := filepath.Join(t.TempDir(), "chunks.jsonl")
	store := fs.NewChunkStore(path)

	// When I append a chunk without an ID
	err := store.Append(lexscan.Chunk{
		CanonicalURL: "https://corpus.example.com/texts/a.txt",
		StartOffset:  0,
		EndOffset:    5,
		Text:         "hello",
	})

	// Then the append is rejected
	require.Error(t, err)
	assert.Equal(t, lexscan.EINVALID, lexscan.ErrorCode(err))
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/core"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceListReadyDocuments(t *testing.T) {
	path := writeCorpus(t, `[
		{
			"id": "d1",
			"name": "Employee Agreement 2025",
			"type": "contract",
			"state": "ready",
			"chunks": [
				{"id": "d1-0", "content": "base salary terms", "index": 0, "tokenCount": 3},
				{"id": "d1-1", "content": "termination clauses", "index": 1}
			]
		},
		{
			"id": "d2",
			"name": "Draft Proposal",
			"type": "note",
			"state": "processing",
			"chunks": [{"id": "d2-0", "content": "tbd", "index": 0}]
		}
	]`)

	docs, err := NewFileSource(path).ListReadyDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "d1", docs[0].Id)
	assert.Equal(t, core.DocumentStateReady, docs[0].State)
	require.Len(t, docs[0].Chunks, 2)
	assert.Equal(t, "d1", docs[0].Chunks[0].DocumentId)
	assert.Equal(t, 3, docs[0].Chunks[0].TokenCount)

	assert.Equal(t, core.DocumentStateProcessing, docs[1].State)
}

func TestFileSourceUnknownStateMapsToPending(t *testing.T) {
	path := writeCorpus(t, `[{"id": "d1", "name": "X", "type": "note", "state": "weird", "chunks": []}]`)

	docs, err := NewFileSource(path).ListReadyDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, core.DocumentStatePending, docs[0].State)
}

func TestFileSourceMalformedJSON(t *testing.T) {
	path := writeCorpus(t, `{"not": "an array"`)

	_, err := NewFileSource(path).ListReadyDocuments(context.Background())
	assert.ErrorIs(t, err, ErrInvalidCorpusFile)
}

func TestFileSourceMissingDocumentId(t *testing.T) {
	path := writeCorpus(t, `[{"id": "", "name": "X", "state": "ready", "chunks": []}]`)

	_, err := NewFileSource(path).ListReadyDocuments(context.Background())
	assert.ErrorIs(t, err, ErrInvalidCorpusFile)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).ListReadyDocuments(context.Background())
	assert.Error(t, err)
}

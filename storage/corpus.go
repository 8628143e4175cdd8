package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sievelabs/sieve/core"
)

// FileSource is a DocumentSource backed by a single JSON corpus file.
// It exists so the CLI and tests can run end to end without a live document
// store; production deployments implement DocumentSource against their own
// store.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed document source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type jsonChunk struct {
	Id         string    `json:"id"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
	Index      int       `json:"index"`
	TokenCount int       `json:"tokenCount,omitempty"`
}

type jsonDocument struct {
	Id     string      `json:"id"`
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	State  string      `json:"state"`
	Chunks []jsonChunk `json:"chunks"`
}

// ListReadyDocuments parses the corpus file on every call so that external
// edits to the file are picked up without restarting.
func (s *FileSource) ListReadyDocuments(ctx context.Context) ([]*core.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var raw []jsonDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCorpusFile, err)
	}

	docs := make([]*core.Document, 0, len(raw))
	for _, jd := range raw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := &core.Document{
			Id:    jd.Id,
			Name:  jd.Name,
			Type:  jd.Type,
			State: parseDocumentState(jd.State),
		}
		doc.Chunks = make([]core.DocumentChunk, 0, len(jd.Chunks))
		for _, jc := range jd.Chunks {
			doc.Chunks = append(doc.Chunks, core.DocumentChunk{
				Id:         jc.Id,
				DocumentId: jd.Id,
				Content:    jc.Content,
				Embedding:  jc.Embedding,
				Index:      jc.Index,
				TokenCount: jc.TokenCount,
			})
		}
		if err := core.ValidateDocument(doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCorpusFile, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseDocumentState maps wire state names onto DocumentState. Unknown names
// map to pending so malformed documents stay out of search rather than
// failing the whole corpus.
func parseDocumentState(state string) core.DocumentState {
	switch state {
	case "ready":
		return core.DocumentStateReady
	case "processing":
		return core.DocumentStateProcessing
	case "failed":
		return core.DocumentStateFailed
	default:
		return core.DocumentStatePending
	}
}

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sievelabs/sieve/core"
	"github.com/sievelabs/sieve/storage"
)

// feedbackPrefix namespaces feedback records in the durable store.
const feedbackPrefix = "fbk"

// FeedbackRecorder persists advisory relevance judgments. Feedback never
// alters scoring; it accumulates for future ranking work.
type FeedbackRecorder struct {
	store storage.CacheStore
}

// NewFeedbackRecorder creates a recorder over the given store.
func NewFeedbackRecorder(store storage.CacheStore) (*FeedbackRecorder, error) {
	if store == nil {
		return nil, ErrFeedbackStoreRequired
	}
	return &FeedbackRecorder{store: store}, nil
}

// Record validates and stores one feedback record. One record is kept per
// query/document pair; a newer rating overwrites the older one.
func (r *FeedbackRecorder) Record(ctx context.Context, feedbackQuery, documentId string, rating int) error {
	record := &core.FeedbackRecord{
		Query:      strings.TrimSpace(feedbackQuery),
		DocumentId: documentId,
		Rating:     rating,
		CreatedAt:  time.Now().UTC(),
	}
	if err := core.ValidateFeedbackRecord(record); err != nil {
		return err
	}
	return r.store.Set(ctx, feedbackKey(record), storage.MarshalFeedbackRecord(record), 0)
}

// List returns all persisted feedback records.
func (r *FeedbackRecorder) List(ctx context.Context) ([]*core.FeedbackRecord, error) {
	var records []*core.FeedbackRecord
	err := r.store.Scan(ctx, []byte(feedbackPrefix+":"), func(_, value []byte) error {
		record, err := storage.UnmarshalFeedbackRecord(value)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func feedbackKey(record *core.FeedbackRecord) []byte {
	id := core.IDFromContent(record.Query + "|" + record.DocumentId)
	return []byte(fmt.Sprintf("%s:%d", feedbackPrefix, id))
}

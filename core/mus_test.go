package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntryMUSRoundTrip(t *testing.T) {
	entry := CacheEntry{
		Query:     "what is the refund policy",
		Embedding: []float32{0.1, -0.5, 0.9},
		Results: []SearchResult{
			{
				Content:      "Refunds are processed within 14 days.",
				Score:        0.87,
				RelevantText: "Refunds are processed within 14 days",
				MatchedTerms: []string{"refund", "policy"},
				Explanation:  "matched 2 of 4 query terms",
				Confidence:   ConfidenceHigh,
				DocumentId:   "doc-1",
				DocumentName: "Refund Policy",
				DocumentType: "policy",
				ChunkId:      "doc-1-3",
				ChunkIndex:   3,
			},
		},
		DocumentIds: []string{"doc-1", "doc-2"},
		CreatedAt:   time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		TTL:         30 * time.Minute,
	}

	buf := make([]byte, CacheEntryMUS.Size(entry))
	n := CacheEntryMUS.Marshal(entry, buf)
	assert.Equal(t, len(buf), n)

	decoded, m, err := CacheEntryMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, entry, decoded)
}

func TestCacheEntryMUSSkip(t *testing.T) {
	entry := CacheEntry{
		Query:     "q",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TTL:       time.Minute,
	}
	trailer := FeedbackRecord{
		Query: "q", DocumentId: "d", Rating: 4,
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, CacheEntryMUS.Size(entry)+FeedbackRecordMUS.Size(trailer))
	n := CacheEntryMUS.Marshal(entry, buf)
	FeedbackRecordMUS.Marshal(trailer, buf[n:])

	skipped, err := CacheEntryMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	decoded, _, err := FeedbackRecordMUS.Unmarshal(buf[skipped:])
	require.NoError(t, err)
	assert.Equal(t, trailer, decoded)
}

func TestFeedbackRecordMUSRoundTrip(t *testing.T) {
	record := FeedbackRecord{
		Query:      "quarterly revenue",
		DocumentId: "doc-7",
		Rating:     5,
		CreatedAt:  time.Date(2025, 3, 15, 18, 45, 12, 0, time.UTC),
	}

	buf := make([]byte, FeedbackRecordMUS.Size(record))
	n := FeedbackRecordMUS.Marshal(record, buf)
	assert.Equal(t, len(buf), n)

	decoded, m, err := FeedbackRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, record, decoded)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	entry := CacheEntry{
		Query:     "truncated",
		Embedding: []float32{1, 2, 3},
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TTL:       time.Minute,
	}
	buf := make([]byte, CacheEntryMUS.Size(entry))
	CacheEntryMUS.Marshal(entry, buf)

	_, _, err := CacheEntryMUS.Unmarshal(buf[:len(buf)/2])
	assert.Error(t, err)
}

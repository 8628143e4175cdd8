package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types that cross the durable-tier
// boundary. Timestamps are encoded as Unix microseconds, durations as
// nanoseconds, both varint.

var (
	// IDMUS serializes content-based IDs.
	IDMUS = idMUS{}
	// SearchResultMUS serializes a single search result.
	SearchResultMUS = searchResultMUS{}
	// CacheEntryMUS serializes a full cache entry.
	CacheEntryMUS = cacheEntryMUS{}
	// FeedbackRecordMUS serializes an advisory feedback record.
	FeedbackRecordMUS = feedbackRecordMUS{}

	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	resultSliceMUS  = ord.NewSliceSer[SearchResult](SearchResultMUS)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type searchResultMUS struct{}

func (s searchResultMUS) Marshal(v SearchResult, bs []byte) (n int) {
	n = ord.String.Marshal(v.Content, bs)
	n += varint.Float64.Marshal(v.Score, bs[n:])
	n += ord.String.Marshal(v.RelevantText, bs[n:])
	n += stringSliceMUS.Marshal(v.MatchedTerms, bs[n:])
	n += ord.String.Marshal(v.Explanation, bs[n:])
	n += varint.Int.Marshal(int(v.Confidence), bs[n:])
	n += ord.String.Marshal(v.DocumentId, bs[n:])
	n += ord.String.Marshal(v.DocumentName, bs[n:])
	n += ord.String.Marshal(v.DocumentType, bs[n:])
	n += ord.String.Marshal(v.ChunkId, bs[n:])
	n += varint.Int.Marshal(v.ChunkIndex, bs[n:])
	return n
}

func (s searchResultMUS) Unmarshal(bs []byte) (v SearchResult, n int, err error) {
	var n1 int
	if v.Content, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Score, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.RelevantText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.MatchedTerms, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Explanation, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var confidence int
	if confidence, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Confidence = Confidence(confidence)
	n += n1
	if v.DocumentId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DocumentName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DocumentType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ChunkId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return v, n, err
}

func (s searchResultMUS) Size(v SearchResult) (size int) {
	size = ord.String.Size(v.Content)
	size += varint.Float64.Size(v.Score)
	size += ord.String.Size(v.RelevantText)
	size += stringSliceMUS.Size(v.MatchedTerms)
	size += ord.String.Size(v.Explanation)
	size += varint.Int.Size(int(v.Confidence))
	size += ord.String.Size(v.DocumentId)
	size += ord.String.Size(v.DocumentName)
	size += ord.String.Size(v.DocumentType)
	size += ord.String.Size(v.ChunkId)
	size += varint.Int.Size(v.ChunkIndex)
	return size
}

func (s searchResultMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Float64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < 4; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	n1, err = varint.Int.Skip(bs[n:])
	return n + n1, err
}

type cacheEntryMUS struct{}

func (s cacheEntryMUS) Marshal(v CacheEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += float32SliceMUS.Marshal(v.Embedding, bs[n:])
	n += resultSliceMUS.Marshal(v.Results, bs[n:])
	n += stringSliceMUS.Marshal(v.DocumentIds, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(int64(v.TTL), bs[n:])
	return n
}

func (s cacheEntryMUS) Unmarshal(bs []byte) (v CacheEntry, n int, err error) {
	var n1 int
	if v.Query, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Embedding, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Results, n1, err = resultSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DocumentIds, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.CreatedAt = time.UnixMicro(micros).UTC()
	n += n1
	var ttl int64
	ttl, n1, err = varint.Int64.Unmarshal(bs[n:])
	v.TTL = time.Duration(ttl)
	n += n1
	return v, n, err
}

func (s cacheEntryMUS) Size(v CacheEntry) (size int) {
	size = ord.String.Size(v.Query)
	size += float32SliceMUS.Size(v.Embedding)
	size += resultSliceMUS.Size(v.Results)
	size += stringSliceMUS.Size(v.DocumentIds)
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	size += varint.Int64.Size(int64(v.TTL))
	return size
}

func (s cacheEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = float32SliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = resultSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = varint.Int64.Skip(bs[n:])
	return n + n1, err
}

type feedbackRecordMUS struct{}

func (s feedbackRecordMUS) Marshal(v FeedbackRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += ord.String.Marshal(v.DocumentId, bs[n:])
	n += varint.Int.Marshal(v.Rating, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (s feedbackRecordMUS) Unmarshal(bs []byte) (v FeedbackRecord, n int, err error) {
	var n1 int
	if v.Query, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.DocumentId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Rating, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	v.CreatedAt = time.UnixMicro(micros).UTC()
	n += n1
	return v, n, err
}

func (s feedbackRecordMUS) Size(v FeedbackRecord) (size int) {
	size = ord.String.Size(v.Query)
	size += ord.String.Size(v.DocumentId)
	size += varint.Int.Size(v.Rating)
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	return size
}

func (s feedbackRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = varint.Int64.Skip(bs[n:])
	return n + n1, err
}

package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content.
// Cache entries and feedback records are keyed by content-based IDs so that
// identical input always maps to the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentState describes where a document is in its processing lifecycle.
// Only documents in the ready state participate in search.
type DocumentState int

const (
	// DocumentStatePending means the document has been registered but not processed.
	DocumentStatePending DocumentState = iota + 1
	// DocumentStateProcessing means chunking/embedding is in flight.
	DocumentStateProcessing
	// DocumentStateReady means the document is fully processed and searchable.
	DocumentStateReady
	// DocumentStateFailed means processing failed; the document is not searchable.
	DocumentStateFailed
)

// Document is a read-only view of a document supplied by the document store.
// The search core never mutates documents or their chunks.
type Document struct {
	Id     string
	Name   string
	Type   string
	State  DocumentState
	Chunks []DocumentChunk
}

// Searchable reports whether the document can participate in search:
// it must be in the ready state and have at least one chunk.
func (d *Document) Searchable() bool {
	return d != nil && d.State == DocumentStateReady && len(d.Chunks) > 0
}

// DocumentChunk is the atomic unit of retrieval: a contiguous slice of a
// document's text, optionally carrying a dense embedding vector.
// Chunks are immutable once produced.
type DocumentChunk struct {
	Id         string
	DocumentId string
	Content    string
	Embedding  []float32
	Index      int
	TokenCount int
}

// Intent classifies what a query is trying to accomplish.
type Intent int

const (
	IntentFactual Intent = iota + 1
	IntentAnalytical
	IntentProcedural
	IntentCreative
	IntentNavigational
)

// Complexity grades a query by structural difficulty.
type Complexity int

const (
	ComplexitySimple Complexity = iota + 1
	ComplexityModerate
	ComplexityComplex
)

// Domain is a business vocabulary family a query may belong to.
type Domain int

const (
	DomainFinance Domain = iota + 1
	DomainHR
	DomainMarketing
	DomainTechnical
)

// Priority is the business-priority class of a query. It is computed during
// analysis, before scoring, because it drives threshold and weight behavior.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// ContextClue tags an independent signal detected in the query text.
// Multiple clues may co-occur on one query.
type ContextClue int

const (
	ClueTemporal ContextClue = iota + 1
	CluePeriodic
	ClueComparative
	ClueQuantitative
	ClueSpecificEntity
)

// QueryAnalysis is the structured, ephemeral result of analyzing raw query
// text. It is a pure value recomputed per query; it has no identity.
type QueryAnalysis struct {
	Original   string
	Intent     Intent
	Complexity Complexity
	Terms      []string
	Expanded   []string
	KeyPhrases []string
	Domains    []Domain
	Entities   []string
	Clues      []ContextClue
	Priority   Priority
}

// HasClue reports whether the given context clue was detected.
func (a *QueryAnalysis) HasClue(c ContextClue) bool {
	for _, clue := range a.Clues {
		if clue == c {
			return true
		}
	}
	return false
}

// InDomain reports whether the query was detected to belong to the given domain.
func (a *QueryAnalysis) InDomain(d Domain) bool {
	for _, domain := range a.Domains {
		if domain == d {
			return true
		}
	}
	return false
}

// SubScores holds the independent relevance signals computed for one chunk.
// The three primary scores and ContextRelevance are each in [0,1].
// PriorityBoost is a multiplier in [1, cap], not a score.
type SubScores struct {
	Semantic         float64
	Lexical          float64
	ExactMatch       float64
	ContextRelevance float64
	PriorityBoost    float64
}

// ScoredChunk pairs a chunk with its sub-scores and combined score.
// It is transient: produced and consumed within one search call.
// Combined is in [0, +inf) after priority-boost multiplication; callers must
// not assume [0,1].
type ScoredChunk struct {
	Chunk    *DocumentChunk
	Document *Document
	Scores   SubScores
	Combined float64
}

// Confidence is the score-thresholded confidence tier of a search result.
type Confidence int

const (
	ConfidenceLow Confidence = iota + 1
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the wire name of the confidence tier.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// SearchResult is the public output unit of a search: a chunk's content with
// its score, best excerpt, matched terms, and source document reference.
type SearchResult struct {
	Content      string
	Score        float64
	RelevantText string
	MatchedTerms []string
	Explanation  string
	Confidence   Confidence
	DocumentId   string
	DocumentName string
	DocumentType string
	ChunkId      string
	ChunkIndex   int
}

// CacheEntry is one cached search outcome. Tier placement (fast vs durable)
// is a storage decision, not a property of the entry.
type CacheEntry struct {
	Query       string
	Embedding   []float32
	Results     []SearchResult
	DocumentIds []string
	CreatedAt   time.Time
	TTL         time.Duration
}

// Expired reports whether the entry's TTL has strictly elapsed at the given time.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.CreatedAt.Add(e.TTL))
}

// DependsOnAny reports whether the entry's dependency set intersects ids.
func (e *CacheEntry) DependsOnAny(ids map[string]struct{}) bool {
	for _, id := range e.DocumentIds {
		if _, ok := ids[id]; ok {
			return true
		}
	}
	return false
}

// FeedbackRecord is an advisory relevance judgment recorded by a caller.
// It never alters scoring; it is a hook point for future ranking work.
type FeedbackRecord struct {
	Query      string
	DocumentId string
	Rating     int
	CreatedAt  time.Time
}

package storage

import (
	"context"
	"time"

	"github.com/sievelabs/sieve/core"
)

// CacheStore is the durable key/value contract backing the semantic cache's
// second tier. Implementations must be thread-safe and support concurrent
// access from multiple in-flight searches.
type CacheStore interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key does not exist or its TTL has elapsed.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores value under key. A positive ttl expires the entry after
	// that duration; zero means no expiry. Writes are atomic: readers never
	// observe a torn entry.
	Set(ctx context.Context, key, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...[]byte) error

	// Scan visits every live entry whose key starts with prefix.
	// fn receives copies of key and value; returning an error stops the scan.
	Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error

	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix []byte) error

	// Close closes the store and releases resources.
	Close() error
}

// DocumentSource supplies the corpus. It is owned by the external document
// store; the search core only reads from it and never mutates a document.
type DocumentSource interface {
	// ListReadyDocuments returns the documents eligible for search.
	// Implementations may return documents in any state; the orchestrator
	// filters to Searchable() ones.
	ListReadyDocuments(ctx context.Context) ([]*core.Document, error)
}

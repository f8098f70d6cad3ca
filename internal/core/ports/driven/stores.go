package driven

import (
	"context"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// SecurityStore persists the securities reference set.
// The full set is replaced atomically on refresh, never merged.
type SecurityStore interface {
	// ReplaceAll deletes the stored set and bulk-inserts the new one
	// in a single transaction. Every record gets the same CachedAt.
	ReplaceAll(ctx context.Context, securities []domain.Security) (int, error)

	// All returns every stored security.
	All(ctx context.Context) ([]domain.Security, error)

	// Age returns the age of the oldest stored record. ok is false
	// when the store is empty.
	Age(ctx context.Context) (age time.Duration, ok bool, err error)

	// Count returns the number of stored securities.
	Count(ctx context.Context) (int, error)
}

// DocumentStore persists cached filings and their chunks.
// Unlike the security index there is no in-memory copy; every call
// consults the store directly.
type DocumentStore interface {
	// SaveDocument upserts a document and replaces its chunk set in a
	// single transaction, so readers never observe a document with its
	// old chunks deleted but new ones not yet inserted.
	SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetByURL returns the cached document for a URL, or
	// domain.ErrNotFound.
	GetByURL(ctx context.Context, url string) (*domain.Document, error)

	// IsCached reports whether a URL is already cached.
	IsCached(ctx context.Context, url string) (bool, error)

	// ListByCompany returns a company's documents, most recent filing
	// date first. docTypes narrows the result when non-empty.
	ListByCompany(ctx context.Context, companyCode string, docTypes []domain.DocType) ([]domain.Document, error)

	// ChunksByType returns a company's chunks of one type joined with
	// document metadata, most recent filing date first.
	ChunksByType(ctx context.Context, companyCode string, chunkType domain.ChunkType) ([]domain.RetrievedChunk, error)

	// Stats returns cache-wide aggregates.
	Stats(ctx context.Context) (*domain.CacheStats, error)

	// DeleteCompany removes a company's documents and chunks.
	// Returns the number of documents deleted.
	DeleteCompany(ctx context.Context, companyCode string) (int, error)

	// DeleteAll empties the document cache. Returns the number of
	// documents deleted.
	DeleteAll(ctx context.Context) (int, error)
}

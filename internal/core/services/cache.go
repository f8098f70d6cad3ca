package services

import (
	"context"
	"fmt"
	"time"

	"github.com/scripdex/scripdex/internal/chunking"
	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
	"github.com/scripdex/scripdex/internal/logger"
)

// Ensure CacheService implements the interface.
var _ driving.CacheService = (*CacheService)(nil)

// CacheService persists fetched filings and decomposes them into typed
// chunks. There is no in-memory layer; documents are large and read
// infrequently, so every call consults the store.
type CacheService struct {
	store   driven.DocumentStore
	chunker *chunking.Chunker
}

// NewCacheService creates a document cache over the given store.
func NewCacheService(store driven.DocumentStore, chunker *chunking.Chunker) *CacheService {
	if chunker == nil {
		chunker = chunking.New()
	}
	return &CacheService{store: store, chunker: chunker}
}

// CacheDocument stores a document and its freshly computed chunk
// sequence, returning the content-addressed id. Re-caching the same URL
// fully supersedes the prior document and chunks.
func (s *CacheService) CacheDocument(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil || doc.URL == "" {
		return "", domain.ErrInvalidInput
	}

	doc.ID = domain.DocumentID(doc.URL)
	doc.ByteSize = len(doc.FullText)
	if doc.CachedAt.IsZero() {
		doc.CachedAt = time.Now().UTC()
	}

	chunks := s.chunker.Chunks(doc.ID, doc.FullText)

	if err := s.store.SaveDocument(ctx, doc, chunks); err != nil {
		return "", fmt.Errorf("caching document: %w", err)
	}

	logger.Debug("Cached %s (%s): %d chunks, %d bytes",
		doc.Headline, doc.DocType, len(chunks), doc.ByteSize)
	return doc.ID, nil
}

// IsCached reports whether a URL is already cached.
func (s *CacheService) IsCached(ctx context.Context, url string) (bool, error) {
	return s.store.IsCached(ctx, url)
}

// CachedDocument returns the cached document for a URL.
func (s *CacheService) CachedDocument(ctx context.Context, url string) (*domain.Document, error) {
	return s.store.GetByURL(ctx, url)
}

// CompanyDocuments lists a company's cached documents, most recent
// filing first.
func (s *CacheService) CompanyDocuments(
	ctx context.Context, companyCode string, docTypes []domain.DocType,
) ([]domain.Document, error) {
	return s.store.ListByCompany(ctx, companyCode, docTypes)
}

// Stats returns cache statistics.
func (s *CacheService) Stats(ctx context.Context) (*domain.CacheStats, error) {
	return s.store.Stats(ctx)
}

// ClearCompany evicts one company's documents and chunks.
func (s *CacheService) ClearCompany(ctx context.Context, companyCode string) (int, error) {
	return s.store.DeleteCompany(ctx, companyCode)
}

// ClearAll evicts the entire document cache.
func (s *CacheService) ClearAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx)
}

package driving

import (
	"context"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// ResolveOptions configures a resolution query.
type ResolveOptions struct {
	// TopN is the maximum number of candidates (default 5).
	TopN int

	// Cutoff is the minimum fuzzy score in [0,100] (default 60).
	Cutoff int
}

// ResolverService answers "which security does this query refer to?".
type ResolverService interface {
	// Resolve returns ranked candidates for a free-form identifier.
	// An empty result means "no match", never an error.
	Resolve(ctx context.Context, query string, opts ResolveOptions) ([]domain.SecurityMatch, error)

	// ResolveOne returns the best candidate, consulting the provider
	// as a last resort for unknown numeric codes. Returns
	// domain.ErrCompanyNotFound when nothing matches.
	ResolveOne(ctx context.Context, query string) (*domain.SecurityMatch, error)

	// Refresh forces a full reload of the securities universe from the
	// provider, replacing the stored set atomically.
	Refresh(ctx context.Context) error
}

// CacheService persists fetched filings and their typed chunks.
type CacheService interface {
	// CacheDocument stores a document's text, recomputes its chunk
	// sequence and returns the content-addressed document id.
	// Idempotent per URL: re-caching fully supersedes prior state.
	CacheDocument(ctx context.Context, doc *domain.Document) (string, error)

	// IsCached reports whether a URL is already cached.
	IsCached(ctx context.Context, url string) (bool, error)

	// CachedDocument returns the cached document for a URL, or
	// domain.ErrNotFound.
	CachedDocument(ctx context.Context, url string) (*domain.Document, error)

	// CompanyDocuments lists a company's cached documents, most recent
	// first, optionally narrowed by doc type.
	CompanyDocuments(ctx context.Context, companyCode string, docTypes []domain.DocType) ([]domain.Document, error)

	// Stats returns cache statistics.
	Stats(ctx context.Context) (*domain.CacheStats, error)

	// ClearCompany evicts one company's documents and chunks.
	ClearCompany(ctx context.Context, companyCode string) (int, error)

	// ClearAll evicts the entire document cache.
	ClearAll(ctx context.Context) (int, error)
}

// RetrievalOptions bounds a chunk retrieval request.
type RetrievalOptions struct {
	// ChunkTypes is the explicit type list. Nil means "infer from the
	// query".
	ChunkTypes []domain.ChunkType

	// MaxChunks is the maximum number of chunks (default 15).
	MaxChunks int

	// MaxChars is the maximum total content length (default 60000).
	MaxChars int
}

// RetrievalService selects relevant cached chunks for a company.
type RetrievalService interface {
	// RelevantChunks returns a relevance-ordered, budget-bounded chunk
	// set for a company and query.
	RelevantChunks(ctx context.Context, companyCode, query string, opts RetrievalOptions) ([]domain.RetrievedChunk, error)
}

// ResearchService orchestrates resolve → fetch → cache → retrieve.
type ResearchService interface {
	// Research fetches and caches recent filings for a company and
	// returns the chunks relevant to the request.
	Research(ctx context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error)
}

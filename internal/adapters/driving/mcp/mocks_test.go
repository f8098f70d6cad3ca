package mcp

import (
	"context"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

// mockResolver is a ResolverService test double.
type mockResolver struct {
	matches []domain.SecurityMatch
	err     error
}

func (m *mockResolver) Resolve(_ context.Context, _ string, _ driving.ResolveOptions) ([]domain.SecurityMatch, error) {
	return m.matches, m.err
}

func (m *mockResolver) ResolveOne(_ context.Context, _ string) (*domain.SecurityMatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.matches) == 0 {
		return nil, domain.ErrCompanyNotFound
	}
	return &m.matches[0], nil
}

func (m *mockResolver) Refresh(_ context.Context) error {
	return m.err
}

// mockCache is a CacheService test double.
type mockCache struct {
	stats *domain.CacheStats
	err   error
}

func (m *mockCache) CacheDocument(_ context.Context, doc *domain.Document) (string, error) {
	return domain.DocumentID(doc.URL), m.err
}

func (m *mockCache) IsCached(_ context.Context, _ string) (bool, error) { return false, m.err }

func (m *mockCache) CachedDocument(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCache) CompanyDocuments(_ context.Context, _ string, _ []domain.DocType) ([]domain.Document, error) {
	return nil, m.err
}

func (m *mockCache) Stats(_ context.Context) (*domain.CacheStats, error) {
	return m.stats, m.err
}

func (m *mockCache) ClearCompany(_ context.Context, _ string) (int, error) { return 0, m.err }
func (m *mockCache) ClearAll(_ context.Context) (int, error)               { return 0, m.err }

// mockRetrieval is a RetrievalService test double.
type mockRetrieval struct {
	chunks []domain.RetrievedChunk
	err    error
}

func (m *mockRetrieval) RelevantChunks(_ context.Context, _, _ string, _ driving.RetrievalOptions) ([]domain.RetrievedChunk, error) {
	return m.chunks, m.err
}

// mockResearch is a ResearchService test double.
type mockResearch struct {
	result *domain.ResearchResult
	err    error

	lastRequest domain.ResearchRequest
}

func (m *mockResearch) Research(_ context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

// validPorts returns a fully populated Ports for tests.
func validPorts() *Ports {
	return &Ports{
		Resolver:  &mockResolver{},
		Cache:     &mockCache{},
		Retrieval: &mockRetrieval{},
		Research:  &mockResearch{},
	}
}

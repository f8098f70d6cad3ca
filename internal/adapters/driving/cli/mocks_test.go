package cli

import (
	"context"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

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

func (m *mockResolver) Refresh(_ context.Context) error { return m.err }

type mockCache struct {
	stats   *domain.CacheStats
	cleared int
	err     error
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

func (m *mockCache) Stats(_ context.Context) (*domain.CacheStats, error) { return m.stats, m.err }

func (m *mockCache) ClearCompany(_ context.Context, _ string) (int, error) {
	return m.cleared, m.err
}

func (m *mockCache) ClearAll(_ context.Context) (int, error) { return m.cleared, m.err }

type mockRetrieval struct {
	chunks []domain.RetrievedChunk
	err    error
}

func (m *mockRetrieval) RelevantChunks(_ context.Context, _, _ string, _ driving.RetrievalOptions) ([]domain.RetrievedChunk, error) {
	return m.chunks, m.err
}

type mockResearch struct {
	result *domain.ResearchResult
	err    error

	lastRequest domain.ResearchRequest
}

func (m *mockResearch) Research(_ context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	m.lastRequest = req
	return m.result, m.err
}

type mockProvider struct {
	securities    []domain.Security
	announcements []domain.Announcement
	actions       []domain.CorporateAction
	events        []domain.ResultEvent
	quote         *domain.Quote
	err           error
}

func (m *mockProvider) ListSecurities(_ context.Context, _ string) ([]domain.Security, error) {
	return m.securities, m.err
}

func (m *mockProvider) ScripName(_ context.Context, _ string) (string, error) { return "", m.err }

func (m *mockProvider) Announcements(_ context.Context, _ domain.AnnouncementFilter) ([]domain.Announcement, error) {
	return m.announcements, m.err
}

func (m *mockProvider) CorporateActions(_ context.Context, _ string, _ domain.Purpose) ([]domain.CorporateAction, error) {
	return m.actions, m.err
}

func (m *mockProvider) ResultCalendar(_ context.Context, _ string) ([]domain.ResultEvent, error) {
	return m.events, m.err
}

func (m *mockProvider) Quote(_ context.Context, _ string) (*domain.Quote, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.quote, nil
}

func relianceMatch() domain.SecurityMatch {
	return domain.SecurityMatch{
		Code:   "500325",
		Symbol: "RELIANCE",
		Name:   "Reliance Industries Ltd",
		Group:  "A",
		ISIN:   "INE002A01018",
		Score:  100,
	}
}

// setupTestServices swaps the package-level services for doubles and
// returns a cleanup that restores the originals.
func setupTestServices() func() {
	oldResolver := resolverService
	oldCache := cacheService
	oldRetrieval := retrievalService
	oldResearch := researchService
	oldProvider := provider

	resolverService = &mockResolver{matches: []domain.SecurityMatch{relianceMatch()}}
	cacheService = &mockCache{stats: &domain.CacheStats{}}
	retrievalService = &mockRetrieval{}
	researchService = &mockResearch{result: &domain.ResearchResult{Company: relianceMatch()}}
	provider = &mockProvider{quote: &domain.Quote{CompanyName: "Reliance Industries Ltd", Price: 2950.35}}

	return func() {
		resolverService = oldResolver
		cacheService = oldCache
		retrievalService = oldRetrieval
		researchService = oldResearch
		provider = oldProvider
	}
}

var _ driven.MarketDataProvider = (*mockProvider)(nil)

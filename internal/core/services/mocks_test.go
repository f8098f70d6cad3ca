package services

import (
	"context"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// mockSecurityStore is an in-memory SecurityStore test double.
type mockSecurityStore struct {
	securities []domain.Security
	age        time.Duration
	hasData    bool

	replaceCalls int
	replaceErr   error
}

func (m *mockSecurityStore) ReplaceAll(_ context.Context, securities []domain.Security) (int, error) {
	m.replaceCalls++
	if m.replaceErr != nil {
		return 0, m.replaceErr
	}
	m.securities = securities
	m.hasData = len(securities) > 0
	m.age = 0
	return len(securities), nil
}

func (m *mockSecurityStore) All(_ context.Context) ([]domain.Security, error) {
	return m.securities, nil
}

func (m *mockSecurityStore) Age(_ context.Context) (time.Duration, bool, error) {
	return m.age, m.hasData, nil
}

func (m *mockSecurityStore) Count(_ context.Context) (int, error) {
	return len(m.securities), nil
}

// mockProvider is a MarketDataProvider test double.
type mockProvider struct {
	securities map[string][]domain.Security // by group
	listErr    error

	scripNames map[string]string

	announcements map[string][]domain.Announcement // by keyword
	annErr        error
}

func (m *mockProvider) ListSecurities(_ context.Context, group string) ([]domain.Security, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.securities[group], nil
}

func (m *mockProvider) ScripName(_ context.Context, code string) (string, error) {
	name, ok := m.scripNames[code]
	if !ok {
		return "", domain.ErrCompanyNotFound
	}
	return name, nil
}

func (m *mockProvider) Announcements(_ context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error) {
	if m.annErr != nil {
		return nil, m.annErr
	}
	return m.announcements[filter.Keyword], nil
}

func (m *mockProvider) CorporateActions(_ context.Context, _ string, _ domain.Purpose) ([]domain.CorporateAction, error) {
	return nil, nil
}

func (m *mockProvider) ResultCalendar(_ context.Context, _ string) ([]domain.ResultEvent, error) {
	return nil, nil
}

func (m *mockProvider) Quote(_ context.Context, code string) (*domain.Quote, error) {
	name, ok := m.scripNames[code]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return &domain.Quote{CompanyCode: code, CompanyName: name}, nil
}

// mockDocumentStore is an in-memory DocumentStore test double.
type mockDocumentStore struct {
	docs   map[string]*domain.Document // by URL
	chunks map[string][]domain.Chunk   // by document id

	chunksByType map[domain.ChunkType][]domain.RetrievedChunk
	chunksErr    error

	saveErr error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		docs:         make(map[string]*domain.Document),
		chunks:       make(map[string][]domain.Chunk),
		chunksByType: make(map[domain.ChunkType][]domain.RetrievedChunk),
	}
}

func (m *mockDocumentStore) SaveDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *doc
	m.docs[doc.URL] = &copied
	m.chunks[doc.ID] = chunks
	return nil
}

func (m *mockDocumentStore) GetByURL(_ context.Context, url string) (*domain.Document, error) {
	doc, ok := m.docs[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockDocumentStore) IsCached(_ context.Context, url string) (bool, error) {
	_, ok := m.docs[url]
	return ok, nil
}

func (m *mockDocumentStore) ListByCompany(_ context.Context, companyCode string, docTypes []domain.DocType) ([]domain.Document, error) {
	var out []domain.Document
	for _, doc := range m.docs {
		if doc.CompanyCode != companyCode {
			continue
		}
		if len(docTypes) > 0 && !containsDocType(docTypes, doc.DocType) {
			continue
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (m *mockDocumentStore) ChunksByType(_ context.Context, _ string, chunkType domain.ChunkType) ([]domain.RetrievedChunk, error) {
	if m.chunksErr != nil {
		return nil, m.chunksErr
	}
	return m.chunksByType[chunkType], nil
}

func (m *mockDocumentStore) Stats(_ context.Context) (*domain.CacheStats, error) {
	return &domain.CacheStats{TotalDocuments: len(m.docs)}, nil
}

func (m *mockDocumentStore) DeleteCompany(_ context.Context, companyCode string) (int, error) {
	count := 0
	for url, doc := range m.docs {
		if doc.CompanyCode == companyCode {
			delete(m.docs, url)
			count++
		}
	}
	return count, nil
}

func (m *mockDocumentStore) DeleteAll(_ context.Context) (int, error) {
	count := len(m.docs)
	m.docs = make(map[string]*domain.Document)
	m.chunks = make(map[string][]domain.Chunk)
	return count, nil
}

func containsDocType(types []domain.DocType, t domain.DocType) bool {
	for _, dt := range types {
		if dt == t {
			return true
		}
	}
	return false
}

// mockFetcher is a DocumentFetcher test double.
type mockFetcher struct {
	texts map[string]*domain.ExtractedText // by URL
	err   error

	calls []string
}

func (m *mockFetcher) FetchText(_ context.Context, url string, _ int) (*domain.ExtractedText, error) {
	m.calls = append(m.calls, url)
	if m.err != nil {
		return nil, m.err
	}
	if ext, ok := m.texts[url]; ok {
		return ext, nil
	}
	return &domain.ExtractedText{Text: "--- Page 1 ---\nGeneric content.", Pages: 1, URL: url}, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
	"github.com/scripdex/scripdex/internal/logger"
)

// Ensure ResearchService implements the interface.
var _ driving.ResearchService = (*ResearchService)(nil)

// Research limits.
const (
	maxPeriods       = 5
	defaultPeriods   = 3
	maxFetchPerCall  = 5
	maxExtractPages  = 50
	discoveryWindow  = 18 // months of announcements to scan
	maxListedResults = 10 // documents echoed back in the result
)

// boilerplateHeadlines mark announcements that carry no research value;
// filings whose headline contains one are skipped during discovery.
var boilerplateHeadlines = []string{
	"update on institutional",
	"update on investor",
	"intimation of",
	"notice of",
	"schedule of",
}

// ResearchService orchestrates the research flow: resolve the company,
// discover recent filings through the provider, extract and cache their
// text, then return the chunks relevant to the query.
type ResearchService struct {
	resolver  driving.ResolverService
	cache     driving.CacheService
	retrieval driving.RetrievalService
	provider  driven.MarketDataProvider // optional
	fetcher   driven.DocumentFetcher    // optional
}

// NewResearchService creates a research orchestrator. Provider and
// fetcher are optional: without them research serves cached documents
// only.
func NewResearchService(
	resolver driving.ResolverService,
	cache driving.CacheService,
	retrieval driving.RetrievalService,
	provider driven.MarketDataProvider,
	fetcher driven.DocumentFetcher,
) *ResearchService {
	return &ResearchService{
		resolver:  resolver,
		cache:     cache,
		retrieval: retrieval,
		provider:  provider,
		fetcher:   fetcher,
	}
}

// pendingDoc is a discovered filing not yet cached.
type pendingDoc struct {
	docType  domain.DocType
	url      string
	headline string
	date     string
}

// Research fetches, caches and retrieves filings for one company.
func (s *ResearchService) Research(
	ctx context.Context, req domain.ResearchRequest,
) (*domain.ResearchResult, error) {
	company, err := s.resolver.ResolveOne(ctx, req.Company)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", req.Company, err)
	}

	focus := req.Focus
	if focus == "" {
		focus = domain.FocusAll
	}
	periods := req.Periods
	if periods <= 0 {
		periods = defaultPeriods
	}
	if periods > maxPeriods {
		periods = maxPeriods
	}

	logger.Section("Company Research")
	logger.Debug("Company %s (%s), focus=%s, periods=%d",
		company.Name, company.Code, focus, periods)

	fetchedNow := s.fetchNewFilings(ctx, company, focus, periods)

	query := req.Query
	if query == "" {
		query = string(focus)
	}

	chunks, err := s.retrieval.RelevantChunks(ctx, company.Code, query, driving.RetrievalOptions{
		ChunkTypes: focus.ChunkTypes(),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving chunks: %w", err)
	}

	cached, err := s.cache.CompanyDocuments(ctx, company.Code, nil)
	if err != nil {
		return nil, fmt.Errorf("listing cached documents: %w", err)
	}

	listed := cached
	if len(listed) > maxListedResults {
		listed = listed[:maxListedResults]
	}
	documents := make([]domain.ResearchDocument, len(listed))
	for i, doc := range listed {
		documents[i] = domain.ResearchDocument{
			Headline: doc.Headline,
			Type:     doc.DocType,
			Date:     doc.Date,
			Cached:   true,
		}
	}

	return &domain.ResearchResult{
		Company:         *company,
		Focus:           focus,
		Query:           req.Query,
		DocumentsCached: len(cached),
		FetchedNow:      fetchedNow,
		ChunksReturned:  len(chunks),
		Documents:       documents,
		RelevantContent: chunks,
	}, nil
}

// fetchNewFilings discovers recent filings via announcements, extracts
// their text and caches them. Failures are logged and skipped; research
// still answers from whatever is cached.
func (s *ResearchService) fetchNewFilings(
	ctx context.Context, company *domain.SecurityMatch, focus domain.Focus, periods int,
) int {
	if s.provider == nil || s.fetcher == nil {
		logger.Debug("No provider/fetcher; serving cached documents only")
		return 0
	}

	cachedDocs, err := s.cache.CompanyDocuments(ctx, company.Code, nil)
	if err != nil {
		logger.Warn("Listing cached documents failed: %v", err)
		cachedDocs = nil
	}
	cachedURLs := make(map[string]struct{}, len(cachedDocs))
	for _, doc := range cachedDocs {
		cachedURLs[doc.URL] = struct{}{}
	}

	now := time.Now()
	filter := domain.AnnouncementFilter{
		CompanyCode: company.Code,
		FromDate:    now.AddDate(0, -discoveryWindow, 0).Format("2006-01-02"),
		ToDate:      now.Format("2006-01-02"),
	}

	var toFetch []pendingDoc
	for _, docType := range focus.DocTypes() {
		filter.Keyword = string(docType)
		anns, err := s.provider.Announcements(ctx, filter)
		if err != nil {
			logger.Warn("Announcements for %q failed: %v", docType, err)
			continue
		}

		countForType := 0
		for _, ann := range anns {
			if countForType >= periods {
				break
			}
			if ann.AttachmentURL == "" || isBoilerplate(ann.Headline) {
				continue
			}
			if _, done := cachedURLs[ann.AttachmentURL]; done {
				countForType++
				continue
			}

			date := ann.Date
			if len(date) > 10 {
				date = date[:10]
			}
			toFetch = append(toFetch, pendingDoc{
				docType:  docType,
				url:      ann.AttachmentURL,
				headline: ann.Headline,
				date:     date,
			})
			countForType++
		}
	}

	if len(toFetch) > maxFetchPerCall {
		toFetch = toFetch[:maxFetchPerCall]
	}

	fetched := 0
	for _, pending := range toFetch {
		ext, err := s.fetcher.FetchText(ctx, pending.url, maxExtractPages)
		if err != nil {
			logger.Warn("Extracting %s failed: %v", pending.url, err)
			continue
		}
		if strings.TrimSpace(ext.Text) == "" {
			logger.Debug("Empty extraction for %s, skipping", pending.url)
			continue
		}

		_, err = s.cache.CacheDocument(ctx, &domain.Document{
			CompanyCode: company.Code,
			CompanyName: company.Name,
			DocType:     pending.docType,
			Headline:    pending.headline,
			URL:         pending.url,
			Date:        pending.date,
			FullText:    ext.Text,
			PageCount:   ext.Pages,
			UsedOCR:     ext.UsedOCR,
		})
		if err != nil {
			logger.Warn("Caching %s failed: %v", pending.url, err)
			continue
		}
		fetched++
	}

	logger.Info("Fetched %d new filings for %s", fetched, company.Code)
	return fetched
}

func isBoilerplate(headline string) bool {
	lower := strings.ToLower(headline)
	for _, skip := range boilerplateHeadlines {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

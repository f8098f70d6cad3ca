package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

// ErrProviderDisabled is returned by tools that need live exchange
// access when the server runs without a provider.
var ErrProviderDisabled = errors.New("live exchange access is not configured")

// SearchCompanyInput is the input schema for the search_company tool.
type SearchCompanyInput struct {
	Query string `json:"query" jsonschema:"company name, ticker symbol, scrip code or ISIN to resolve"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of candidates to return (default 5)"`
}

// SearchCompanyOutput is the output schema for the search_company tool.
type SearchCompanyOutput struct {
	Matches []domain.SecurityMatch `json:"matches"`
	Count   int                    `json:"count"`
}

// CompanyInfoInput is the input schema for the get_company_info tool.
type CompanyInfoInput struct {
	Company string `json:"company" jsonschema:"company name, symbol, scrip code or ISIN"`
}

// CompanyInfoOutput is the output schema for the get_company_info tool.
type CompanyInfoOutput struct {
	Company domain.SecurityMatch `json:"company"`
	Quote   *domain.Quote        `json:"quote,omitempty"`
}

// AnnouncementsInput is the input schema for the get_announcements tool.
type AnnouncementsInput struct {
	Company     string `json:"company,omitempty" jsonschema:"company name, symbol or scrip code; empty for market-wide"`
	Category    string `json:"category,omitempty" jsonschema:"announcement category, loose names accepted (result, board, agm, ...)"`
	Subcategory string `json:"subcategory,omitempty" jsonschema:"subcategory substring filter"`
	Keyword     string `json:"keyword,omitempty" jsonschema:"headline keyword; transcript, presentation, results, annual report and press release get curated filtering"`
	FromDate    string `json:"from_date,omitempty" jsonschema:"start date YYYY-MM-DD"`
	ToDate      string `json:"to_date,omitempty" jsonschema:"end date YYYY-MM-DD"`
	Page        int    `json:"page,omitempty" jsonschema:"result page number (default 1)"`
}

// AnnouncementsOutput is the output schema for the get_announcements tool.
type AnnouncementsOutput struct {
	Announcements []domain.Announcement `json:"announcements"`
	Count         int                   `json:"count"`
	Company       *domain.SecurityMatch `json:"company,omitempty"`
}

// CorporateActionsInput is the input schema for get_corporate_actions.
type CorporateActionsInput struct {
	Company    string `json:"company,omitempty" jsonschema:"company name, symbol or scrip code; empty for market-wide"`
	ActionType string `json:"action_type,omitempty" jsonschema:"dividend, bonus, split, rights, buyback or delisting; empty for all"`
}

// CorporateActionsOutput is the output schema for get_corporate_actions.
type CorporateActionsOutput struct {
	Actions []domain.CorporateAction `json:"actions"`
	Count   int                      `json:"count"`
	Company *domain.SecurityMatch    `json:"company,omitempty"`
}

// ResultCalendarInput is the input schema for get_result_calendar.
type ResultCalendarInput struct {
	Company string `json:"company,omitempty" jsonschema:"company name, symbol or scrip code; empty for market-wide"`
}

// ResultCalendarOutput is the output schema for get_result_calendar.
type ResultCalendarOutput struct {
	Results []domain.ResultEvent  `json:"results"`
	Count   int                   `json:"count"`
	Company *domain.SecurityMatch `json:"company,omitempty"`
}

// FetchDocumentInput is the input schema for the fetch_document tool.
type FetchDocumentInput struct {
	URL      string `json:"url" jsonschema:"the attachment_url from an announcement result"`
	MaxPages int    `json:"max_pages,omitempty" jsonschema:"maximum pages to extract (default 50)"`
}

// FetchDocumentOutput is the output schema for the fetch_document tool.
type FetchDocumentOutput struct {
	Text    string `json:"text"`
	Pages   int    `json:"pages"`
	UsedOCR bool   `json:"ocr_used"`
	URL     string `json:"url"`
}

// ResearchInput is the input schema for the research_company tool.
type ResearchInput struct {
	Company string `json:"company" jsonschema:"company name, symbol, scrip code or ISIN"`
	Query   string `json:"query,omitempty" jsonschema:"what to look for in the filings (e.g. capex plans, margin outlook)"`
	Focus   string `json:"focus,omitempty" jsonschema:"all, guidance, financials, transcripts or annual (default all)"`
	Periods int    `json:"periods,omitempty" jsonschema:"how many filings per type to fetch (default 3, max 5)"`
}

// CategoriesOutput is the output schema for the get_categories tool.
type CategoriesOutput struct {
	AnnouncementCategories map[string]string `json:"announcement_categories"`
	CorporateActionTypes   map[string]string `json:"corporate_action_types"`
}

// CacheStatsInput is the (empty) input schema for get_cache_stats.
type CacheStatsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_company",
		Description: "Resolve a company name, ticker, scrip code or ISIN to listed securities",
	}, s.handleSearchCompany)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_company_info",
		Description: "Get the resolved identity and current price quote for a company",
	}, s.handleCompanyInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_announcements",
		Description: "Fetch corporate filing announcements, filterable by company, category and keyword",
	}, s.handleAnnouncements)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_corporate_actions",
		Description: "Fetch corporate actions: dividends, bonuses, stock splits, rights issues, buybacks",
	}, s.handleCorporateActions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_result_calendar",
		Description: "Fetch the earnings announcement calendar with upcoming and recent result dates",
	}, s.handleResultCalendar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_document",
		Description: "Extract text from a PDF filing; use the attachment_url from get_announcements results",
	}, s.handleFetchDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "research_company",
		Description: "Deep company research: auto-downloads transcripts, presentations and results, caches them locally and returns the chunks relevant to your query",
	}, s.handleResearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_categories",
		Description: "List the announcement categories and corporate action types accepted by the other tools",
	}, s.handleCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_cache_stats",
		Description: "Show document cache statistics: cached documents, chunks and per-company counts",
	}, s.handleCacheStats)
}

// handleSearchCompany handles the search_company tool invocation.
func (s *Server) handleSearchCompany(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCompanyInput,
) (*mcp.CallToolResult, SearchCompanyOutput, error) {
	matches, err := s.ports.Resolver.Resolve(ctx, input.Query, driving.ResolveOptions{
		TopN: input.Limit,
	})
	if err != nil {
		return nil, SearchCompanyOutput{}, err
	}

	return nil, SearchCompanyOutput{
		Matches: matches,
		Count:   len(matches),
	}, nil
}

// handleCompanyInfo handles the get_company_info tool invocation.
// The quote is best effort: resolution succeeding with the quote
// endpoint failing still returns the identity.
func (s *Server) handleCompanyInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompanyInfoInput,
) (*mcp.CallToolResult, CompanyInfoOutput, error) {
	match, err := s.ports.Resolver.ResolveOne(ctx, input.Company)
	if err != nil {
		return nil, CompanyInfoOutput{}, err
	}

	output := CompanyInfoOutput{Company: *match}
	if s.ports.Provider != nil {
		if quote, err := s.ports.Provider.Quote(ctx, match.Code); err == nil {
			output.Quote = quote
		}
	}
	return nil, output, nil
}

// handleAnnouncements handles the get_announcements tool invocation.
func (s *Server) handleAnnouncements(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnouncementsInput,
) (*mcp.CallToolResult, AnnouncementsOutput, error) {
	if s.ports.Provider == nil {
		return nil, AnnouncementsOutput{}, ErrProviderDisabled
	}

	filter := domain.AnnouncementFilter{
		Category:    domain.CategoryByName(input.Category),
		Subcategory: input.Subcategory,
		Keyword:     input.Keyword,
		FromDate:    input.FromDate,
		ToDate:      input.ToDate,
		Page:        input.Page,
	}

	var company *domain.SecurityMatch
	if input.Company != "" {
		match, err := s.ports.Resolver.ResolveOne(ctx, input.Company)
		if err != nil {
			return nil, AnnouncementsOutput{}, err
		}
		company = match
		filter.CompanyCode = match.Code
	}

	announcements, err := s.ports.Provider.Announcements(ctx, filter)
	if err != nil {
		return nil, AnnouncementsOutput{}, err
	}

	return nil, AnnouncementsOutput{
		Announcements: announcements,
		Count:         len(announcements),
		Company:       company,
	}, nil
}

// handleCorporateActions handles the get_corporate_actions invocation.
func (s *Server) handleCorporateActions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CorporateActionsInput,
) (*mcp.CallToolResult, CorporateActionsOutput, error) {
	if s.ports.Provider == nil {
		return nil, CorporateActionsOutput{}, ErrProviderDisabled
	}

	var company *domain.SecurityMatch
	var code string
	if input.Company != "" {
		match, err := s.ports.Resolver.ResolveOne(ctx, input.Company)
		if err != nil {
			return nil, CorporateActionsOutput{}, err
		}
		company = match
		code = match.Code
	}

	actions, err := s.ports.Provider.CorporateActions(ctx, code, domain.PurposeByName(input.ActionType))
	if err != nil {
		return nil, CorporateActionsOutput{}, err
	}

	return nil, CorporateActionsOutput{
		Actions: actions,
		Count:   len(actions),
		Company: company,
	}, nil
}

// handleResultCalendar handles the get_result_calendar invocation.
func (s *Server) handleResultCalendar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResultCalendarInput,
) (*mcp.CallToolResult, ResultCalendarOutput, error) {
	if s.ports.Provider == nil {
		return nil, ResultCalendarOutput{}, ErrProviderDisabled
	}

	var company *domain.SecurityMatch
	var code string
	if input.Company != "" {
		match, err := s.ports.Resolver.ResolveOne(ctx, input.Company)
		if err != nil {
			return nil, ResultCalendarOutput{}, err
		}
		company = match
		code = match.Code
	}

	events, err := s.ports.Provider.ResultCalendar(ctx, code)
	if err != nil {
		return nil, ResultCalendarOutput{}, err
	}

	return nil, ResultCalendarOutput{
		Results: events,
		Count:   len(events),
		Company: company,
	}, nil
}

// handleFetchDocument handles the fetch_document tool invocation.
func (s *Server) handleFetchDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchDocumentInput,
) (*mcp.CallToolResult, FetchDocumentOutput, error) {
	if s.ports.Fetcher == nil {
		return nil, FetchDocumentOutput{}, fmt.Errorf("document extraction is not configured: %w", domain.ErrExtractorUnavailable)
	}

	extracted, err := s.ports.Fetcher.FetchText(ctx, input.URL, input.MaxPages)
	if err != nil {
		return nil, FetchDocumentOutput{}, err
	}

	return nil, FetchDocumentOutput{
		Text:    extracted.Text,
		Pages:   extracted.Pages,
		UsedOCR: extracted.UsedOCR,
		URL:     extracted.URL,
	}, nil
}

// handleResearch handles the research_company tool invocation.
func (s *Server) handleResearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResearchInput,
) (*mcp.CallToolResult, *domain.ResearchResult, error) {
	focus := domain.Focus(input.Focus)
	if input.Focus == "" {
		focus = domain.FocusAll
	}

	result, err := s.ports.Research.Research(ctx, domain.ResearchRequest{
		Company: input.Company,
		Query:   input.Query,
		Focus:   focus,
		Periods: input.Periods,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, result, nil
}

// handleCategories handles the get_categories tool invocation.
func (s *Server) handleCategories(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CategoriesOutput, error) {
	categories := make(map[string]string, len(domain.CategoryDescriptions))
	for cat, desc := range domain.CategoryDescriptions {
		categories[string(cat)] = desc
	}

	actionTypes := make(map[string]string, len(domain.PurposeDescriptions))
	for purpose, desc := range domain.PurposeDescriptions {
		actionTypes[string(purpose)] = desc
	}

	return nil, CategoriesOutput{
		AnnouncementCategories: categories,
		CorporateActionTypes:   actionTypes,
	}, nil
}

// handleCacheStats handles the get_cache_stats tool invocation.
func (s *Server) handleCacheStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CacheStatsInput,
) (*mcp.CallToolResult, *domain.CacheStats, error) {
	stats, err := s.ports.Cache.Stats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, stats, nil
}

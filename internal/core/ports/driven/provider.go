package driven

import (
	"context"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// MarketDataProvider is the exchange-facing collaborator. It supplies
// the securities universe for index refreshes and the thin read-only
// lookups the research flow needs.
//
// Implementations are thin I/O wrappers; their correctness is bounded
// by the provider's behaviour, not by local logic.
type MarketDataProvider interface {
	// ListSecurities returns the active securities in one market
	// segment group.
	ListSecurities(ctx context.Context, group string) ([]domain.Security, error)

	// ScripName looks up the listed name for a scrip code. Last-resort
	// fallback when a numeric query misses the index.
	ScripName(ctx context.Context, code string) (string, error)

	// Announcements returns corporate filings matching the filter.
	Announcements(ctx context.Context, filter domain.AnnouncementFilter) ([]domain.Announcement, error)

	// CorporateActions returns dividends, bonuses, splits and similar
	// events, optionally narrowed by company and purpose.
	CorporateActions(ctx context.Context, companyCode string, purpose domain.Purpose) ([]domain.CorporateAction, error)

	// ResultCalendar returns scheduled earnings announcement dates.
	ResultCalendar(ctx context.Context, companyCode string) ([]domain.ResultEvent, error)

	// Quote returns the current price snapshot for a scrip code.
	Quote(ctx context.Context, code string) (*domain.Quote, error)
}

// DocumentFetcher extracts plain text from a filing attachment URL.
// PDF parsing and OCR quality are outside the core's contract.
type DocumentFetcher interface {
	// FetchText downloads the document and returns its extracted text
	// with page-boundary markers, up to maxPages pages.
	FetchText(ctx context.Context, url string, maxPages int) (*domain.ExtractedText, error)
}

// CommandRunner executes an external command and returns its combined
// output. Kept as a port so extraction is testable without binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

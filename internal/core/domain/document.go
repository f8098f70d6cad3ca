package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocType classifies a filing by how it was discovered, not by content.
type DocType string

// Filing document types.
const (
	DocTypeTranscript   DocType = "transcript"
	DocTypePresentation DocType = "presentation"
	DocTypeResults      DocType = "results"
	DocTypeAnnualReport DocType = "annual report"
	DocTypePressRelease DocType = "press release"
)

// DocTypes lists the fixed doc-type vocabulary.
func DocTypes() []DocType {
	return []DocType{
		DocTypeTranscript,
		DocTypePresentation,
		DocTypeResults,
		DocTypeAnnualReport,
		DocTypePressRelease,
	}
}

// Document is one cached filing with its extracted full text.
type Document struct {
	// ID is content-addressed from URL; the same URL always yields the
	// same ID, which makes re-caching idempotent.
	ID string

	// CompanyCode links to Security.Code.
	CompanyCode string

	// CompanyName is the resolved display name at cache time.
	CompanyName string

	// DocType is the caller-supplied classification.
	DocType DocType

	// Headline is the announcement headline the document came from.
	Headline string

	// URL is the source attachment URL. Unique per document.
	URL string

	// Date is the filing date as reported by the exchange (YYYY-MM-DD).
	Date string

	// FullText is the extracted document text.
	FullText string

	// PageCount is the number of pages extracted.
	PageCount int

	// UsedOCR records whether OCR was needed during extraction.
	UsedOCR bool

	// CachedAt is when the document was cached.
	CachedAt time.Time

	// ByteSize is len(FullText) at cache time.
	ByteSize int
}

// DocumentID derives the content-addressed document id for a source URL.
// UUIDv5 over the URL namespace: deterministic, so a URL re-cache lands
// on the same row.
func DocumentID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

// CacheStats summarises the document cache.
type CacheStats struct {
	TotalDocuments   int            `json:"total_documents"`
	TotalChunks      int            `json:"total_chunks"`
	ByCompany        []CompanyCount `json:"by_company"`
	TotalSizeBytes   int64          `json:"total_size_bytes"`
	SecuritiesCached int            `json:"securities_cached"`
	CacheLocation    string         `json:"cache_location"`
}

// CompanyCount is a per-company cached document count.
type CompanyCount struct {
	CompanyName string `json:"company_name"`
	Count       int    `json:"count"`
}

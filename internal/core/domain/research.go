package domain

// Focus narrows a research request to a class of filings.
type Focus string

// Research focus areas.
const (
	FocusAll         Focus = "all"
	FocusGuidance    Focus = "guidance"
	FocusFinancials  Focus = "financials"
	FocusTranscripts Focus = "transcripts"
	FocusAnnual      Focus = "annual"
)

// DocTypesFor maps a focus area to the filing types worth fetching.
func (f Focus) DocTypes() []DocType {
	switch f {
	case FocusGuidance:
		return []DocType{DocTypeTranscript, DocTypePresentation}
	case FocusFinancials:
		return []DocType{DocTypeResults}
	case FocusTranscripts:
		return []DocType{DocTypeTranscript}
	case FocusAnnual:
		return []DocType{DocTypeAnnualReport}
	default:
		return []DocType{DocTypeTranscript, DocTypePresentation, DocTypeResults}
	}
}

// ChunkTypes maps a focus area to an explicit chunk-type list for
// retrieval, or nil to let the query drive inference.
func (f Focus) ChunkTypes() []ChunkType {
	switch f {
	case FocusGuidance:
		return []ChunkType{ChunkGuidance, ChunkSummary, ChunkQA}
	case FocusFinancials:
		return []ChunkType{ChunkFinancials, ChunkSummary}
	case FocusTranscripts:
		return []ChunkType{ChunkQA, ChunkGuidance}
	default:
		return nil
	}
}

// ResearchRequest asks for cached-and-chunked research on one company.
type ResearchRequest struct {
	// Company is a free-form identifier: name, symbol, code or ISIN.
	Company string

	// Query selects relevant chunks. Empty means "use the focus".
	Query string

	// Focus narrows which filing types are fetched.
	Focus Focus

	// Periods is how many filings per doc type to fetch (capped at 5).
	Periods int
}

// ResearchDocument summarises one cached filing in a research result.
type ResearchDocument struct {
	Headline string  `json:"headline"`
	Type     DocType `json:"type"`
	Date     string  `json:"date"`
	Cached   bool    `json:"cached"`
}

// ResearchResult is the outcome of a research request.
type ResearchResult struct {
	Company         SecurityMatch      `json:"company"`
	Focus           Focus              `json:"focus"`
	Query           string             `json:"query"`
	DocumentsCached int                `json:"documents_cached"`
	FetchedNow      int                `json:"documents_fetched_now"`
	ChunksReturned  int                `json:"chunks_returned"`
	Documents       []ResearchDocument `json:"documents"`
	RelevantContent []RetrievedChunk   `json:"relevant_content"`
}

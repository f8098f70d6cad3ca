package domain

// ChunkType is the topical classification of a document segment.
type ChunkType string

// Chunk classifications, in cue-match precedence order.
const (
	ChunkGuidance   ChunkType = "guidance"
	ChunkFinancials ChunkType = "financials"
	ChunkQA         ChunkType = "qa"
	ChunkSegment    ChunkType = "segment"
	ChunkSummary    ChunkType = "summary"
	ChunkGeneral    ChunkType = "general"
)

// ChunkTypes lists the closed chunk-type vocabulary.
func ChunkTypes() []ChunkType {
	return []ChunkType{
		ChunkGuidance,
		ChunkFinancials,
		ChunkQA,
		ChunkSegment,
		ChunkSummary,
		ChunkGeneral,
	}
}

// Chunk is one classified, size-bounded segment of a document's text.
// Chunks for a document are always recomputed wholesale on re-cache.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Type is the classified chunk type.
	Type ChunkType

	// Index is the ordinal position within the document, contiguous
	// from 0 in source order.
	Index int

	// Content is the segment text.
	Content string
}

// RetrievedChunk is a chunk joined with its document's metadata,
// as returned by chunk retrieval.
type RetrievedChunk struct {
	ChunkType    ChunkType `json:"chunk_type"`
	DocumentType DocType   `json:"document_type"`
	DocumentDate string    `json:"document_date"`
	Headline     string    `json:"headline"`
	Company      string    `json:"company"`
	Content      string    `json:"content"`
}

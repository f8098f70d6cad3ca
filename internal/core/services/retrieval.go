package services

import (
	"context"
	"strings"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
	"github.com/scripdex/scripdex/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// Retrieval budget defaults.
const (
	DefaultMaxChunks = 15
	DefaultMaxChars  = 60000
)

// inferenceRule maps query keywords to the chunk types worth reading.
type inferenceRule struct {
	keywords []string
	types    []domain.ChunkType
}

// inferenceTable drives chunk-type inference from free-text queries.
// Rules are cumulative: every matching rule contributes its types.
var inferenceTable = []inferenceRule{
	{
		keywords: []string{"future", "plan", "outlook", "guidance", "expect", "target", "growth"},
		types:    []domain.ChunkType{domain.ChunkGuidance, domain.ChunkSummary},
	},
	{
		keywords: []string{"revenue", "profit", "margin", "financial", "result", "earning"},
		types:    []domain.ChunkType{domain.ChunkFinancials, domain.ChunkSummary},
	},
	{
		keywords: []string{"management", "said", "comment", "question", "answer"},
		types:    []domain.ChunkType{domain.ChunkQA, domain.ChunkGuidance},
	},
	{
		keywords: []string{"segment", "business", "retail", "jio", "digital"},
		types:    []domain.ChunkType{domain.ChunkSegment},
	},
}

// defaultChunkTypes is used when no inference rule matches.
var defaultChunkTypes = []domain.ChunkType{
	domain.ChunkGuidance, domain.ChunkSummary, domain.ChunkFinancials,
}

// RetrievalService selects relevant cached chunks under a hard budget.
type RetrievalService struct {
	store driven.DocumentStore
}

// NewRetrievalService creates a retrieval service over the given store.
func NewRetrievalService(store driven.DocumentStore) *RetrievalService {
	return &RetrievalService{store: store}
}

// InferChunkTypes maps a free-text query to chunk types by keyword
// scan. Matching rules concatenate; duplicates keep first-occurrence
// order. An unmatched query gets the default type list.
func InferChunkTypes(query string) []domain.ChunkType {
	lower := strings.ToLower(query)

	var inferred []domain.ChunkType
	for _, rule := range inferenceTable {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				inferred = append(inferred, rule.types...)
				break
			}
		}
	}

	if len(inferred) == 0 {
		return defaultChunkTypes
	}
	return dedupeTypes(inferred)
}

// RelevantChunks returns a budget-bounded chunk set for a company.
//
// Selection walks the type list in order, most recent documents first
// within each type, and stops entirely once appending the next chunk
// would breach either bound. The result is deliberately biased toward
// the first type and the newest filings; later types may be starved
// under a tight budget.
func (s *RetrievalService) RelevantChunks(
	ctx context.Context, companyCode, query string, opts driving.RetrievalOptions,
) ([]domain.RetrievedChunk, error) {
	chunkTypes := opts.ChunkTypes
	if len(chunkTypes) == 0 {
		chunkTypes = InferChunkTypes(query)
	} else {
		chunkTypes = dedupeTypes(chunkTypes)
	}

	maxChunks := opts.MaxChunks
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	logger.Section("Chunk Retrieval")
	logger.Debug("Company %s, types %v, max_chunks=%d, max_chars=%d",
		companyCode, chunkTypes, maxChunks, maxChars)

	results := []domain.RetrievedChunk{}
	totalChars := 0

	for _, chunkType := range chunkTypes {
		chunks, err := s.store.ChunksByType(ctx, companyCode, chunkType)
		if err != nil {
			return nil, err
		}

		for _, chunk := range chunks {
			if len(results) >= maxChunks || totalChars+len(chunk.Content) > maxChars {
				logger.Debug("Budget reached at %d chunks / %d chars", len(results), totalChars)
				return results, nil
			}
			results = append(results, chunk)
			totalChars += len(chunk.Content)
		}
	}

	logger.Debug("Returning %d chunks (%d chars)", len(results), totalChars)
	return results, nil
}

func dedupeTypes(types []domain.ChunkType) []domain.ChunkType {
	seen := make(map[domain.ChunkType]struct{}, len(types))
	out := types[:0:0]
	for _, t := range types {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

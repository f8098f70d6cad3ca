// Package chunking splits extracted filing text into typed, size-bounded
// segments. Pages are classified against a fixed cue-pattern table and
// consecutive pages of the same type are merged up to a maximum size, so
// retrieval gets a small number of large, homogeneously-typed chunks.
package chunking

import (
	"regexp"
	"strings"

	"github.com/scripdex/scripdex/internal/core/domain"
)

// DefaultMaxChunkSize is the maximum merged chunk size in characters.
const DefaultMaxChunkSize = 4000

// pageMarker matches the page-boundary markers the extractor inserts.
var pageMarker = regexp.MustCompile(`--- Page \d+[^-]*---`)

// cueGroup binds a chunk type to the patterns that signal it.
type cueGroup struct {
	chunkType domain.ChunkType
	patterns  []*regexp.Regexp
}

// cueTable is the ordered classification table. A page gets the first
// type with at least one matching cue; order matters because the groups
// overlap (a guidance page usually mentions revenue too).
var cueTable = []cueGroup{
	{domain.ChunkGuidance, compileAll(
		`(?i)(outlook|guidance|future|forward.looking|growth.plan|expansion|target|goal|expect|anticipate)`,
		`(?i)(fy\d{2,4}|next.year|coming.quarter|pipeline)`,
	)},
	{domain.ChunkFinancials, compileAll(
		`(?i)(revenue|ebitda|profit|margin|eps|earning|crore|billion|million|\d+%)`,
		`(?i)(yoy|qoq|growth|decline|increase|decrease)`,
	)},
	{domain.ChunkQA, compileAll(
		`(?i)(question|answer|q:|a:|analyst|participant)`,
		`(?i)(could you|can you|what is|how do|why did)`,
	)},
	{domain.ChunkSegment, compileAll(
		`(?i)(segment|business.unit|division|vertical)`,
		`(?i)(retail|digital|jio|o2c|energy|telecom)`,
	)},
	{domain.ChunkSummary, compileAll(
		`(?i)(highlight|key.point|summary|overview|at.a.glance)`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

// Segment is one typed slice of document text, before it is bound to a
// document id and sequence index.
type Segment struct {
	Type    domain.ChunkType
	Content string
}

// Chunker produces typed segments from extracted filing text.
type Chunker struct {
	maxChunkSize int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxChunkSize overrides the maximum merged chunk size.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// New creates a Chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChunkSize: DefaultMaxChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the chunk type for a single page of text: the first
// cue group with at least one matching pattern, or general.
func Classify(page string) domain.ChunkType {
	lower := strings.ToLower(page)
	for _, group := range cueTable {
		for _, pattern := range group.patterns {
			if pattern.MatchString(lower) {
				return group.chunkType
			}
		}
	}
	return domain.ChunkGeneral
}

// Split decomposes full document text into typed segments.
//
// The text is split on page markers, empty pages are discarded, each
// page is classified, and consecutive pages of the same type merge into
// one segment until the size limit. A type change or a size breach
// starts a new segment.
func (c *Chunker) Split(text string) []Segment {
	pages := pageMarker.Split(text, -1)

	var segments []Segment
	var current []string
	currentType := domain.ChunkGeneral
	currentSize := 0

	flush := func() {
		if len(current) > 0 {
			segments = append(segments, Segment{
				Type:    currentType,
				Content: strings.Join(current, "\n"),
			})
		}
	}

	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}

		detected := Classify(page)

		if detected != currentType || currentSize+len(page) > c.maxChunkSize {
			flush()
			current = []string{page}
			currentType = detected
			currentSize = len(page)
			continue
		}

		current = append(current, page)
		currentSize += len(page)
	}
	flush()

	return segments
}

// Chunks binds segments to a document, assigning contiguous sequence
// indexes in source order.
func (c *Chunker) Chunks(documentID, text string) []domain.Chunk {
	segments := c.Split(text)
	chunks := make([]domain.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = domain.Chunk{
			DocumentID: documentID,
			Type:       seg.Type,
			Index:      i,
			Content:    seg.Content,
		}
	}
	return chunks
}

package mcp

import (
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
)

// Ports aggregates the service interfaces the MCP server depends on.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver answers company identifier queries.
	Resolver driving.ResolverService

	// Cache persists fetched filings and their chunks.
	Cache driving.CacheService

	// Retrieval selects relevant cached chunks.
	Retrieval driving.RetrievalService

	// Research orchestrates fetch-cache-retrieve for one company.
	Research driving.ResearchService

	// Provider serves announcement, action and quote lookups directly.
	// Optional; the corresponding tools report unavailability when nil.
	Provider driven.MarketDataProvider

	// Fetcher extracts text from filing attachments. Optional.
	Fetcher driven.DocumentFetcher
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolverService
	}
	if p.Cache == nil {
		return ErrMissingCacheService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Research == nil {
		return ErrMissingResearchService
	}
	// Provider and Fetcher are optional; tools degrade to cached data.
	return nil
}

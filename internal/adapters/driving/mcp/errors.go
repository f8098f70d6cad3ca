// Package mcp provides an MCP (Model Context Protocol) server adapter
// for scripdex. It lets AI assistants resolve listed companies, pull
// exchange filings and run cached document research.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingResolverService  = errors.New("mcp: resolver service is required")
	ErrMissingCacheService     = errors.New("mcp: cache service is required")
	ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
	ErrMissingResearchService  = errors.New("mcp: research service is required")
)

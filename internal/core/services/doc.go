// Package services implements the core application services: tiered
// security resolution, the filings document cache, budgeted chunk
// retrieval, and the research orchestration that ties them together.
package services

package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSecurities indicates there are no cached securities and no
	// provider to fetch them — the one failure resolution cannot mask.
	ErrNoSecurities = errors.New("no cached securities and no provider to fetch them")

	// ErrProviderUnavailable indicates an operation needs the market
	// data provider but none is configured.
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrCompanyNotFound indicates a company query resolved to nothing.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrExtractorUnavailable indicates no document text extractor is
	// configured, so filings cannot be fetched.
	ErrExtractorUnavailable = errors.New("document extractor unavailable")
)

// Package domain contains the core business entities for scripdex:
// exchange-listed securities, cached filing documents, classified text
// chunks, and the closed vocabularies that describe them.
//
// The domain layer has no dependencies on adapters or external services.
package domain

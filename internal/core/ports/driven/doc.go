// Package driven defines the outbound ports: interfaces the core
// services depend on, implemented by adapters (SQLite storage, the
// exchange HTTP provider, the PDF text extractor, config files).
package driven

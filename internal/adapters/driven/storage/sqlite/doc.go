// Package sqlite provides the persistent store for securities, cached
// filing documents and their chunks, backed by modernc.org/sqlite.
//
// The store is the sole system of record. Securities refreshes and
// document re-caches are transactional, so concurrent readers never
// observe a half-replaced record set.
package sqlite

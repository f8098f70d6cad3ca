package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scripdex/scripdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
)

// timeLayout is how timestamps are stored; RFC 3339 sorts
// lexicographically, so MIN(cached_at) is the oldest record.
const timeLayout = time.RFC3339

// Store is a unified SQLite-based storage providing the security and
// document store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scripdex/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scripdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SecurityStore returns a SecurityStore interface backed by this store.
func (s *Store) SecurityStore() driven.SecurityStore {
	return &securityStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Security Store ====================

// securityStore implements driven.SecurityStore.
type securityStore struct {
	store *Store
}

var _ driven.SecurityStore = (*securityStore)(nil)

// ReplaceAll atomically swaps the stored securities set. Every record
// gets the same cached_at, so the set's age is uniform after a refresh.
func (s *securityStore) ReplaceAll(ctx context.Context, securities []domain.Security) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM securities"); err != nil {
		return 0, fmt.Errorf("clearing securities: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO securities (code, symbol, name, issuer_name, sec_group, isin, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			symbol = excluded.symbol,
			name = excluded.name,
			issuer_name = excluded.issuer_name,
			sec_group = excluded.sec_group,
			isin = excluded.isin,
			cached_at = excluded.cached_at
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(timeLayout)
	count := 0
	for _, sec := range securities {
		if sec.Code == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, sec.Code, sec.Symbol, sec.Name,
			sec.IssuerName, sec.Group, sec.ISIN, now); err != nil {
			return 0, fmt.Errorf("inserting security %s: %w", sec.Code, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// All returns every stored security.
func (s *securityStore) All(ctx context.Context) ([]domain.Security, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT code, symbol, name, issuer_name, sec_group, isin, cached_at
		FROM securities
	`)
	if err != nil {
		return nil, fmt.Errorf("querying securities: %w", err)
	}
	defer rows.Close()

	var securities []domain.Security //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sec domain.Security
		var cachedAt string
		if err := rows.Scan(&sec.Code, &sec.Symbol, &sec.Name,
			&sec.IssuerName, &sec.Group, &sec.ISIN, &cachedAt); err != nil {
			return nil, fmt.Errorf("scanning security: %w", err)
		}
		if t, err := time.Parse(timeLayout, cachedAt); err == nil {
			sec.CachedAt = t
		}
		securities = append(securities, sec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating securities: %w", err)
	}

	return securities, nil
}

// Age returns the age of the oldest stored record.
func (s *securityStore) Age(ctx context.Context) (time.Duration, bool, error) {
	var oldest sql.NullString
	err := s.store.db.QueryRowContext(ctx,
		"SELECT MIN(cached_at) FROM securities").Scan(&oldest)
	if err != nil {
		return 0, false, fmt.Errorf("querying securities age: %w", err)
	}
	if !oldest.Valid || oldest.String == "" {
		return 0, false, nil
	}

	t, err := time.Parse(timeLayout, oldest.String)
	if err != nil {
		return 0, false, fmt.Errorf("parsing cached_at %q: %w", oldest.String, err)
	}
	return time.Since(t), true, nil
}

// Count returns the number of stored securities.
func (s *securityStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM securities").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting securities: %w", err)
	}
	return count, nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument upserts a document and replaces its chunk set in one
// transaction. Stale chunks never survive a re-cache, and readers never
// observe the document without its chunks.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if doc == nil || doc.ID == "" || doc.URL == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	cachedAt := doc.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents
			(id, company_code, company_name, doc_type, headline, url, date,
			 full_text, page_count, used_ocr, cached_at, byte_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_code = excluded.company_code,
			company_name = excluded.company_name,
			doc_type = excluded.doc_type,
			headline = excluded.headline,
			url = excluded.url,
			date = excluded.date,
			full_text = excluded.full_text,
			page_count = excluded.page_count,
			used_ocr = excluded.used_ocr,
			cached_at = excluded.cached_at,
			byte_size = excluded.byte_size
	`, doc.ID, doc.CompanyCode, doc.CompanyName, string(doc.DocType), doc.Headline,
		doc.URL, doc.Date, doc.FullText, doc.PageCount, boolToInt(doc.UsedOCR),
		cachedAt.Format(timeLayout), doc.ByteSize)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (document_id, chunk_type, sequence_index, content)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, doc.ID, string(chunk.Type),
			chunk.Index, chunk.Content); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetByURL retrieves the cached document for a URL.
func (s *documentStore) GetByURL(ctx context.Context, url string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, company_code, company_name, doc_type, headline, url, date,
		       full_text, page_count, used_ocr, cached_at, byte_size
		FROM documents WHERE url = ?
	`, url)

	return scanDocument(row)
}

// IsCached reports whether a URL is already cached.
func (s *documentStore) IsCached(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM documents WHERE url = ?", url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking cache: %w", err)
	}
	return true, nil
}

// ListByCompany returns a company's documents, most recent first.
func (s *documentStore) ListByCompany(
	ctx context.Context, companyCode string, docTypes []domain.DocType,
) ([]domain.Document, error) {
	query := `
		SELECT id, company_code, company_name, doc_type, headline, url, date,
		       full_text, page_count, used_ocr, cached_at, byte_size
		FROM documents WHERE company_code = ?`
	args := []any{companyCode}

	if len(docTypes) > 0 {
		placeholders := strings.Repeat("?,", len(docTypes))
		query += " AND doc_type IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, dt := range docTypes {
			args = append(args, string(dt))
		}
	}
	query += " ORDER BY date DESC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// ChunksByType returns a company's chunks of one type joined with their
// document metadata, most recent filing first.
func (s *documentStore) ChunksByType(
	ctx context.Context, companyCode string, chunkType domain.ChunkType,
) ([]domain.RetrievedChunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.chunk_type, d.doc_type, d.date, d.headline, d.company_name, c.content
		FROM chunks c
		JOIN documents d ON c.document_id = d.id
		WHERE d.company_code = ? AND c.chunk_type = ?
		ORDER BY d.date DESC, c.sequence_index
	`, companyCode, string(chunkType))
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.RetrievedChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.RetrievedChunk
		var cType, dType string
		if err := rows.Scan(&cType, &dType, &chunk.DocumentDate,
			&chunk.Headline, &chunk.Company, &chunk.Content); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.ChunkType = domain.ChunkType(cType)
		chunk.DocumentType = domain.DocType(dType)
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// Stats returns cache-wide aggregates.
func (s *documentStore) Stats(ctx context.Context) (*domain.CacheStats, error) {
	stats := &domain.CacheStats{CacheLocation: s.store.path}

	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents").Scan(&stats.TotalDocuments); err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}

	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks").Scan(&stats.TotalChunks); err != nil {
		return nil, fmt.Errorf("counting chunks: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT company_name, COUNT(*) AS count
		FROM documents
		GROUP BY company_code
		ORDER BY count DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("querying per-company counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc domain.CompanyCount
		if err := rows.Scan(&cc.CompanyName, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning company count: %w", err)
		}
		stats.ByCompany = append(stats.ByCompany, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company counts: %w", err)
	}

	var totalSize sql.NullInt64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT SUM(byte_size) FROM documents").Scan(&totalSize); err != nil {
		return nil, fmt.Errorf("summing document sizes: %w", err)
	}
	stats.TotalSizeBytes = totalSize.Int64

	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM securities").Scan(&stats.SecuritiesCached); err != nil {
		return nil, fmt.Errorf("counting securities: %w", err)
	}

	return stats, nil
}

// DeleteCompany removes a company's documents and their chunks.
func (s *documentStore) DeleteCompany(ctx context.Context, companyCode string) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE company_code = ?", companyCode).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM chunks WHERE document_id IN
			(SELECT id FROM documents WHERE company_code = ?)
	`, companyCode); err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE company_code = ?", companyCode); err != nil {
		return 0, fmt.Errorf("deleting documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// DeleteAll empties the document cache.
func (s *documentStore) DeleteAll(ctx context.Context) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return 0, fmt.Errorf("deleting documents: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// ==================== Helper Functions ====================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var docType, cachedAt string
	var usedOCR int

	if err := row.Scan(&doc.ID, &doc.CompanyCode, &doc.CompanyName, &docType,
		&doc.Headline, &doc.URL, &doc.Date, &doc.FullText, &doc.PageCount,
		&usedOCR, &cachedAt, &doc.ByteSize); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.DocType = domain.DocType(docType)
	doc.UsedOCR = usedOCR != 0
	if t, err := time.Parse(timeLayout, cachedAt); err == nil {
		doc.CachedAt = t
	}

	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var docType, cachedAt string
	var usedOCR int

	if err := rows.Scan(&doc.ID, &doc.CompanyCode, &doc.CompanyName, &docType,
		&doc.Headline, &doc.URL, &doc.Date, &doc.FullText, &doc.PageCount,
		&usedOCR, &cachedAt, &doc.ByteSize); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.DocType = domain.DocType(docType)
	doc.UsedOCR = usedOCR != 0
	if t, err := time.Parse(timeLayout, cachedAt); err == nil {
		doc.CachedAt = t
	}

	return &doc, nil
}

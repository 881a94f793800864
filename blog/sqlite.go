package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one raw document per row. It backs deployments that ship
// content as a single database file instead of a directory.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path, ensures the data
// directory exists, and creates the documents table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// pragmas apply to every pooled connection. WAL lets the importer write while
// the server reads; synchronous=NORMAL is safe with WAL.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"cache_size(-8000)",
}

func dsn(path string) string {
	q := make([]string, len(pragmas))
	for i, p := range pragmas {
		q[i] = "_pragma=" + p
	}
	return "file:" + path + "?" + strings.Join(q, "&")
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    raw BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// ListSlugs returns slugs ordered by name, matching the directory store.
func (s *SQLiteStore) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug FROM documents ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (s *SQLiteStore) ReadRaw(ctx context.Context, slug string) ([]byte, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT raw FROM documents WHERE slug = ?`, slug).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("blog: read %s: %w", slug, err)
	}
	return raw, nil
}

// PutDocument upserts the raw document stored under slug.
func (s *SQLiteStore) PutDocument(ctx context.Context, slug string, raw []byte) error {
	if !ValidSlug(slug) {
		return fmt.Errorf("blog: invalid slug %q", slug)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (slug, raw, updated_at) VALUES (?, ?, ?)`,
		slug, raw, time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteDocument removes a document by slug.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE slug = ?`, slug)
	return err
}

// Import copies every document of src into the database in one transaction
// and returns the number of documents written.
func (s *SQLiteStore) Import(ctx context.Context, src Store) (int, error) {
	slugs, err := src.ListSlugs(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, slug := range slugs {
		raw, err := src.ReadRaw(ctx, slug)
		if err != nil {
			return 0, fmt.Errorf("blog: import %s: %w", slug, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO documents (slug, raw, updated_at) VALUES (?, ?, ?)`,
			slug, raw, now); err != nil {
			return 0, fmt.Errorf("blog: import %s: %w", slug, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(slugs), nil
}

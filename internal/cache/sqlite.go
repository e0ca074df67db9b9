package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore keeps entries in the metadata_cache table.
type SQLiteStore struct {
	db   *sql.DB
	ttls TTLs
	now  func() time.Time
}

// NewSQLiteStore creates a store on db. The schema comes from
// migrations.InitialSQL.
func NewSQLiteStore(db *sql.DB, ttls TTLs) *SQLiteStore {
	return &SQLiteStore{db: db, ttls: ttls, now: time.Now}
}

// Get retrieves a cached value by key.
// Returns nil, false if not found or expired.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool) {
	var value string
	var expiresAt time.Time

	err := s.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM metadata_cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil || s.now().After(expiresAt) {
		return nil, false
	}

	return []byte(value), true
}

// Put stores a value with the TTL for its key prefix.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	expiresAt := s.now().Add(s.ttls.For(key))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metadata_cache (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, string(value), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Delete removes a cached value.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM metadata_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
func (s *SQLiteStore) Prune(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM metadata_cache WHERE expires_at < ?", s.now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// GetCacheEntry returns the cache index row for key, or ErrNotFound.
func (s *Store) GetCacheEntry(key string) (CacheEntry, error) {
	var e CacheEntry
	var fetchedAt string
	err := s.db.QueryRow(`
		SELECT key, provider, local_path, content_hash, size_bytes, fetched_at
		FROM cache_entries WHERE key = ?`, key,
	).Scan(&e.Key, &e.Provider, &e.LocalPath, &e.ContentHash, &e.SizeBytes, &fetchedAt)
	if err == sql.ErrNoRows {
		return CacheEntry{}, ErrNotFound
	}
	if err != nil {
		return CacheEntry{}, err
	}
	if e.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
		return CacheEntry{}, fmt.Errorf("parsing fetched_at: %w", err)
	}
	return e, nil
}

// PutCacheEntry inserts or overwrites the index row for entry.Key.
func (s *Store) PutCacheEntry(entry CacheEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO cache_entries (key, provider, local_path, content_hash, size_bytes, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			provider = excluded.provider,
			local_path = excluded.local_path,
			content_hash = excluded.content_hash,
			size_bytes = excluded.size_bytes,
			fetched_at = excluded.fetched_at`,
		entry.Key, entry.Provider, entry.LocalPath, entry.ContentHash,
		entry.SizeBytes, entry.FetchedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteCacheEntry removes the index row for key. Deleting a missing key is
// not an error; eviction must be idempotent.
func (s *Store) DeleteCacheEntry(key string) error {
	_, err := s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key)
	return err
}

// CountCacheEntries returns the number of indexed cache files.
func (s *Store) CountCacheEntries() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&n)
	return n, err
}

// Package cache stores downloaded media files on disk with a SQLite-backed
// index. Every read re-verifies the file against its recorded size and
// sha256 so a crash mid-download can never surface a corrupt entry as valid.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ekizoglu/dailyreel/internal/storage"
)

// Index abstracts the persistent cache index.
type Index interface {
	GetCacheEntry(key string) (storage.CacheEntry, error)
	PutCacheEntry(entry storage.CacheEntry) error
	DeleteCacheEntry(key string) error
}

// Store is the on-disk media cache.
type Store struct {
	dir    string
	idx    Index
	logger *slog.Logger
}

// New creates a Store rooted at dir. Files are partitioned into per-kind
// subdirectories ("videos", "music") by Put.
func New(dir string, idx Index) *Store {
	return &Store{dir: dir, idx: idx, logger: slog.Default()}
}

// Get returns the cached file for key if the index row exists and the file
// still passes the integrity check. Stale entries (missing file, size or
// hash mismatch) are evicted and reported as a miss, never reused.
func (s *Store) Get(key string) (storage.CacheEntry, bool, error) {
	entry, err := s.idx.GetCacheEntry(key)
	if err == storage.ErrNotFound {
		return storage.CacheEntry{}, false, nil
	}
	if err != nil {
		return storage.CacheEntry{}, false, fmt.Errorf("reading cache index: %w", err)
	}

	if err := s.verify(entry); err != nil {
		s.logger.Warn("evicting stale cache entry", "key", key, "path", entry.LocalPath, "reason", err)
		if err := s.evict(entry); err != nil {
			return storage.CacheEntry{}, false, err
		}
		return storage.CacheEntry{}, false, nil
	}

	return entry, true, nil
}

// Put moves the file at tmpPath into the cache under subdir and indexes it
// for key. The final name is derived from the content hash, so re-fetching
// identical content is a no-op on disk. tmpPath must be on the same
// filesystem as the cache directory (the fetcher downloads into it).
func (s *Store) Put(key, provider, subdir, tmpPath string) (storage.CacheEntry, error) {
	hash, size, err := hashFile(tmpPath)
	if err != nil {
		return storage.CacheEntry{}, fmt.Errorf("hashing downloaded file: %w", err)
	}

	destDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return storage.CacheEntry{}, fmt.Errorf("creating cache directory: %w", err)
	}
	dest := filepath.Join(destDir, hash[:16]+filepath.Ext(tmpPath))

	// Rename is atomic on the same filesystem; a crash here leaves either
	// the temp file or the complete destination, never a half file under
	// the final name.
	if err := os.Rename(tmpPath, dest); err != nil {
		return storage.CacheEntry{}, fmt.Errorf("moving file into cache: %w", err)
	}

	entry := storage.CacheEntry{
		Key:         key,
		Provider:    provider,
		LocalPath:   dest,
		ContentHash: hash,
		SizeBytes:   size,
		FetchedAt:   time.Now().UTC(),
	}
	if err := s.idx.PutCacheEntry(entry); err != nil {
		return storage.CacheEntry{}, fmt.Errorf("indexing cache entry: %w", err)
	}
	return entry, nil
}

// TempDir returns a directory on the cache filesystem for in-progress
// downloads, creating it if needed.
func (s *Store) TempDir() (string, error) {
	dir := filepath.Join(s.dir, "tmp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache temp directory: %w", err)
	}
	return dir, nil
}

func (s *Store) verify(entry storage.CacheEntry) error {
	info, err := os.Stat(entry.LocalPath)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty")
	}
	if info.Size() != entry.SizeBytes {
		return fmt.Errorf("size changed: have %d, indexed %d", info.Size(), entry.SizeBytes)
	}
	hash, _, err := hashFile(entry.LocalPath)
	if err != nil {
		return fmt.Errorf("rehashing: %w", err)
	}
	if hash != entry.ContentHash {
		return fmt.Errorf("content hash mismatch")
	}
	return nil
}

func (s *Store) evict(entry storage.CacheEntry) error {
	if err := os.Remove(entry.LocalPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale cache file: %w", err)
	}
	if err := s.idx.DeleteCacheEntry(entry.Key); err != nil {
		return fmt.Errorf("deleting stale cache index row: %w", err)
	}
	return nil
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

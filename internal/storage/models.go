package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Run statuses. One row per calendar day; a retried day overwrites its row.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// RunRecord is the durable outcome of one daily run, keyed by local date.
type RunRecord struct {
	Date         string // YYYY-MM-DD in the configured timezone
	RunID        string
	Status       string // "success", "failed", "skipped"
	OutputPath   string
	CaptionPath  string
	ErrorSummary string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// CacheEntry indexes one downloaded media file. The key is
// "<category>|<provider>" so the same category cached from different
// providers never collides.
type CacheEntry struct {
	Key         string
	Provider    string
	LocalPath   string
	ContentHash string // hex sha256 of the file
	SizeBytes   int64
	FetchedAt   time.Time
}

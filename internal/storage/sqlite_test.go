package storage

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsApply(t *testing.T) {
	s := openTestStore(t)

	var n int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&n); err != nil {
		t.Fatalf("querying schema_version: %v", err)
	}
	if n == 0 {
		t.Error("no migrations recorded")
	}
}

func TestHasSucceeded(t *testing.T) {
	s := openTestStore(t)

	ok, err := s.HasSucceeded("2025-11-01")
	if err != nil {
		t.Fatalf("HasSucceeded on empty ledger: %v", err)
	}
	if ok {
		t.Error("HasSucceeded = true for unknown date")
	}

	now := time.Now().UTC()
	rec := RunRecord{
		Date:       "2025-11-01",
		RunID:      "r-1",
		Status:     StatusFailed,
		StartedAt:  now,
		FinishedAt: now,
	}
	if err := s.RecordRun(rec); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	ok, err = s.HasSucceeded("2025-11-01")
	if err != nil {
		t.Fatalf("HasSucceeded after failed run: %v", err)
	}
	if ok {
		t.Error("HasSucceeded = true for failed run")
	}

	rec.Status = StatusSuccess
	rec.OutputPath = "/out/reel_2025-11-01.mp4"
	if err := s.RecordRun(rec); err != nil {
		t.Fatalf("RecordRun overwrite failed: %v", err)
	}

	ok, err = s.HasSucceeded("2025-11-01")
	if err != nil {
		t.Fatalf("HasSucceeded after success: %v", err)
	}
	if !ok {
		t.Error("HasSucceeded = false after successful run recorded")
	}
}

func TestRecordRunOverwritesSameDate(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	first := RunRecord{
		Date:         "2025-11-02",
		RunID:        "r-first",
		Status:       StatusFailed,
		ErrorSummary: "no video asset",
		StartedAt:    now,
		FinishedAt:   now,
	}
	if err := s.RecordRun(first); err != nil {
		t.Fatalf("RecordRun first: %v", err)
	}

	second := first
	second.RunID = "r-second"
	second.Status = StatusSuccess
	second.ErrorSummary = ""
	second.OutputPath = "/out/reel_2025-11-02.mp4"
	if err := s.RecordRun(second); err != nil {
		t.Fatalf("RecordRun second: %v", err)
	}

	got, err := s.GetRun("2025-11-02")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.RunID != "r-second" {
		t.Errorf("RunID = %q, want %q", got.RunID, "r-second")
	}
	if got.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", got.Status, StatusSuccess)
	}
	if got.OutputPath != "/out/reel_2025-11-02.mp4" {
		t.Errorf("OutputPath = %q", got.OutputPath)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM runs WHERE date = '2025-11-02'`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for date = %d, want 1", count)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun("1999-01-01")
	if err != ErrNotFound {
		t.Errorf("GetRun error = %v, want ErrNotFound", err)
	}
}

func TestRecentRuns(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC()

	for _, d := range []string{"2025-11-01", "2025-11-03", "2025-11-02"} {
		rec := RunRecord{Date: d, RunID: "r-" + d, Status: StatusSuccess, StartedAt: now, FinishedAt: now}
		if err := s.RecordRun(rec); err != nil {
			t.Fatalf("RecordRun %s: %v", d, err)
		}
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Date != "2025-11-03" || runs[1].Date != "2025-11-02" {
		t.Errorf("order = [%s, %s], want newest first", runs[0].Date, runs[1].Date)
	}
}

func TestCacheEntryRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetCacheEntry("video:night-city|pexels")
	if err != ErrNotFound {
		t.Fatalf("GetCacheEntry on empty index: %v, want ErrNotFound", err)
	}

	entry := CacheEntry{
		Key:         "video:night-city|pexels",
		Provider:    "pexels",
		LocalPath:   "/data/cache/videos/abc.mp4",
		ContentHash: "deadbeef",
		SizeBytes:   1024,
		FetchedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.PutCacheEntry(entry); err != nil {
		t.Fatalf("PutCacheEntry: %v", err)
	}

	got, err := s.GetCacheEntry(entry.Key)
	if err != nil {
		t.Fatalf("GetCacheEntry: %v", err)
	}
	if got.LocalPath != entry.LocalPath {
		t.Errorf("LocalPath = %q, want %q", got.LocalPath, entry.LocalPath)
	}
	if got.ContentHash != entry.ContentHash {
		t.Errorf("ContentHash = %q, want %q", got.ContentHash, entry.ContentHash)
	}
	if got.SizeBytes != entry.SizeBytes {
		t.Errorf("SizeBytes = %d, want %d", got.SizeBytes, entry.SizeBytes)
	}

	// Overwrite with a new path; key stays unique.
	entry.LocalPath = "/data/cache/videos/def.mp4"
	if err := s.PutCacheEntry(entry); err != nil {
		t.Fatalf("PutCacheEntry overwrite: %v", err)
	}
	got, err = s.GetCacheEntry(entry.Key)
	if err != nil {
		t.Fatalf("GetCacheEntry after overwrite: %v", err)
	}
	if got.LocalPath != "/data/cache/videos/def.mp4" {
		t.Errorf("LocalPath after overwrite = %q", got.LocalPath)
	}

	if err := s.DeleteCacheEntry(entry.Key); err != nil {
		t.Fatalf("DeleteCacheEntry: %v", err)
	}
	if _, err := s.GetCacheEntry(entry.Key); err != ErrNotFound {
		t.Errorf("GetCacheEntry after delete: %v, want ErrNotFound", err)
	}

	// Idempotent delete.
	if err := s.DeleteCacheEntry(entry.Key); err != nil {
		t.Errorf("DeleteCacheEntry twice: %v", err)
	}
}

func TestCountCacheEntries(t *testing.T) {
	s := openTestStore(t)

	n, err := s.CountCacheEntries()
	if err != nil {
		t.Fatalf("CountCacheEntries: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	for i, key := range []string{"a|p", "b|p"} {
		entry := CacheEntry{Key: key, Provider: "p", LocalPath: "/x", ContentHash: "h", SizeBytes: int64(i + 1), FetchedAt: time.Now().UTC()}
		if err := s.PutCacheEntry(entry); err != nil {
			t.Fatalf("PutCacheEntry %s: %v", key, err)
		}
	}

	n, err = s.CountCacheEntries()
	if err != nil {
		t.Fatalf("CountCacheEntries: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

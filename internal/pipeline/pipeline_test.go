package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ekizoglu/dailyreel/internal/compose"
	"github.com/ekizoglu/dailyreel/internal/content"
	"github.com/ekizoglu/dailyreel/internal/media"
	"github.com/ekizoglu/dailyreel/internal/storage"
)

var testNow = time.Date(2026, 8, 24, 21, 30, 0, 0, time.UTC)

const testDate = "2026-08-24"

type mockSelector struct {
	selection content.Selection
	err       error
	calls     int
}

func (m *mockSelector) Select() (content.Selection, error) {
	m.calls++
	return m.selection, m.err
}

type mockFetcher struct {
	fetchFn func(ctx context.Context, c media.Category, ps []media.Provider) (media.Asset, error)
	calls   int
}

func (m *mockFetcher) Fetch(ctx context.Context, c media.Category, ps []media.Provider) (media.Asset, error) {
	m.calls++
	return m.fetchFn(ctx, c, ps)
}

type mockComposer struct {
	composeFn func(ctx context.Context, job compose.Job) error
	calls     int
	lastJob   compose.Job
}

func (m *mockComposer) Compose(ctx context.Context, job compose.Job) error {
	m.calls++
	m.lastJob = job
	return m.composeFn(ctx, job)
}

// fixture wires an orchestrator whose collaborators all succeed; tests break
// individual pieces from there.
type fixture struct {
	store    *storage.Store
	selector *mockSelector
	fetcher  *mockFetcher
	composer *mockComposer
	orch     *Orchestrator
	outDir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	t.Cleanup(func() { store.Close() })

	outDir := t.TempDir()

	selector := &mockSelector{selection: content.Selection{
		Text:     "Bazen susmak en yüksek sesli cevaptır",
		Category: content.CategoryEmotional,
		Caption:  "Bu söz sana geldiyse tesadüf değil",
		Hashtags: []string{"#sözler", "#hayat"},
	}}

	fetcher := &mockFetcher{fetchFn: func(_ context.Context, c media.Category, _ []media.Provider) (media.Asset, error) {
		return media.Asset{Kind: c.Kind, LocalPath: "/cache/" + string(c.Kind) + ".bin", Source: "test"}, nil
	}}

	composer := &mockComposer{composeFn: func(_ context.Context, job compose.Job) error {
		if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
			return err
		}
		return os.WriteFile(job.OutputPath, []byte("rendered"), 0o644)
	}}

	orch := NewOrchestrator(store, selector, fetcher, composer, nil, nil, Options{
		OutputDir:     outDir,
		Location:      time.UTC,
		VideoKeywords: []string{"night city"},
		MusicKeywords: []string{"emotional"},
		Width:         1080,
		Height:        1920,
		Duration:      7,
	})

	return &fixture{
		store:    store,
		selector: selector,
		fetcher:  fetcher,
		composer: composer,
		orch:     orch,
		outDir:   outDir,
	}
}

func TestRunSuccess(t *testing.T) {
	f := newFixture(t)

	res, err := f.orch.Run(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Skipped {
		t.Error("first run reported skipped")
	}

	rec := res.Record
	if rec.Status != storage.StatusSuccess {
		t.Errorf("Status = %q, want success", rec.Status)
	}
	if rec.Date != testDate {
		t.Errorf("Date = %q, want %q", rec.Date, testDate)
	}
	if rec.RunID == "" {
		t.Error("RunID is empty")
	}

	wantOutput := filepath.Join(f.outDir, "reel_2026-08-24.mp4")
	if rec.OutputPath != wantOutput {
		t.Errorf("OutputPath = %q, want %q", rec.OutputPath, wantOutput)
	}
	if _, err := os.Stat(wantOutput); err != nil {
		t.Errorf("reel file missing: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(f.outDir, "caption_2026-08-24.txt"))
	if err != nil {
		t.Fatalf("caption file: %v", err)
	}
	if string(body) != f.selector.selection.CaptionFile() {
		t.Errorf("caption body = %q", body)
	}

	// the ledger row matches what Run returned
	stored, err := f.store.GetRun(testDate)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if stored.RunID != rec.RunID || stored.Status != storage.StatusSuccess {
		t.Errorf("stored record = %+v", stored)
	}
}

func TestRunSkipsCompletedDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orch.Run(ctx, testNow)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	fetches, composes, selects := f.fetcher.calls, f.composer.calls, f.selector.calls

	second, err := f.orch.Run(ctx, testNow.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !second.Skipped {
		t.Error("second run not skipped")
	}
	if second.Record.RunID != first.Record.RunID {
		t.Error("skip rewrote the ledger row")
	}
	if f.fetcher.calls != fetches || f.composer.calls != composes || f.selector.calls != selects {
		t.Errorf("skip did work: fetch %d->%d compose %d->%d select %d->%d",
			fetches, f.fetcher.calls, composes, f.composer.calls, selects, f.selector.calls)
	}
}

func TestRunReprocessesWhenOutputMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.orch.Run(ctx, testNow)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := os.Remove(first.Record.OutputPath); err != nil {
		t.Fatal(err)
	}

	second, err := f.orch.Run(ctx, testNow)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Skipped {
		t.Error("run with missing output file was skipped")
	}
	if second.Record.RunID == first.Record.RunID {
		t.Error("reprocess kept the old run id")
	}
	if _, err := os.Stat(second.Record.OutputPath); err != nil {
		t.Errorf("reel not reproduced: %v", err)
	}
}

func TestRunSelectionFailure(t *testing.T) {
	f := newFixture(t)
	f.selector.err = fmt.Errorf("pools unavailable")

	_, err := f.orch.Run(context.Background(), testNow)
	assertFailure(t, err, FailureSelection)
	assertLedgerFailed(t, f.store, string(FailureSelection))
}

func TestRunVideoFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.fetcher.fetchFn = func(_ context.Context, c media.Category, _ []media.Provider) (media.Asset, error) {
		return media.Asset{}, fmt.Errorf("category %s: %w", c.String(), media.ErrNoAsset)
	}

	_, err := f.orch.Run(context.Background(), testNow)
	assertFailure(t, err, FailureNoVideoAsset)
	assertLedgerFailed(t, f.store, string(FailureNoVideoAsset))
	if f.composer.calls != 0 {
		t.Error("composer ran without a video")
	}
}

func TestRunAudioIsOptional(t *testing.T) {
	f := newFixture(t)
	f.fetcher.fetchFn = func(_ context.Context, c media.Category, _ []media.Provider) (media.Asset, error) {
		if c.Kind == media.KindAudio {
			return media.Asset{}, fmt.Errorf("category %s: %w", c.String(), media.ErrNoAsset)
		}
		return media.Asset{Kind: c.Kind, LocalPath: "/cache/video.mp4", Source: "test"}, nil
	}

	res, err := f.orch.Run(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Record.Status != storage.StatusSuccess {
		t.Errorf("Status = %q, want success", res.Record.Status)
	}
	if f.composer.lastJob.AudioPath != "" {
		t.Errorf("composer got AudioPath %q, want silent job", f.composer.lastJob.AudioPath)
	}
}

func TestRunCompositionFailure(t *testing.T) {
	f := newFixture(t)
	f.composer.composeFn = func(context.Context, compose.Job) error {
		return fmt.Errorf("ffmpeg: exit status 1")
	}

	_, err := f.orch.Run(context.Background(), testNow)
	assertFailure(t, err, FailureComposition)
	assertLedgerFailed(t, f.store, string(FailureComposition))
}

func TestRunCaptionFailureKeepsReel(t *testing.T) {
	f := newFixture(t)
	// a directory squatting on the caption path makes the rename fail
	if err := os.MkdirAll(filepath.Join(f.outDir, "caption_2026-08-24.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := f.orch.Run(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	rec := res.Record
	if rec.Status != storage.StatusSuccess {
		t.Errorf("Status = %q, want success", rec.Status)
	}
	if rec.CaptionPath != "" {
		t.Errorf("CaptionPath = %q, want empty", rec.CaptionPath)
	}
	if !strings.Contains(rec.ErrorSummary, string(FailureCaptionWrite)) {
		t.Errorf("ErrorSummary = %q, want caption note", rec.ErrorSummary)
	}
	if _, err := os.Stat(rec.OutputPath); err != nil {
		t.Errorf("reel file missing: %v", err)
	}
}

func TestRunCancellationAbortsWithoutLedgerWrite(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// interrupt arrives while the audio chain is being walked
	f.fetcher.fetchFn = func(c context.Context, cat media.Category, _ []media.Provider) (media.Asset, error) {
		if cat.Kind == media.KindAudio {
			cancel()
			return media.Asset{}, c.Err()
		}
		return media.Asset{Kind: cat.Kind, LocalPath: "/cache/video.mp4", Source: "test"}, nil
	}

	_, err := f.orch.Run(ctx, testNow)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if f.composer.calls != 0 {
		t.Error("composer ran with a canceled context")
	}
	if _, err := f.store.GetRun(testDate); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("interrupted run left a ledger row (err = %v)", err)
	}
}

func TestRunRetriesAfterFailedDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.composer.composeFn = func(context.Context, compose.Job) error {
		return fmt.Errorf("ffmpeg: exit status 1")
	}
	if _, err := f.orch.Run(ctx, testNow); err == nil {
		t.Fatal("expected first run to fail")
	}

	f.composer.composeFn = func(_ context.Context, job compose.Job) error {
		return os.WriteFile(job.OutputPath, []byte("rendered"), 0o644)
	}
	res, err := f.orch.Run(ctx, testNow)
	if err != nil {
		t.Fatalf("retry Run: %v", err)
	}
	if res.Skipped {
		t.Error("retry was skipped")
	}
	if res.Record.Status != storage.StatusSuccess {
		t.Errorf("Status = %q, want success", res.Record.Status)
	}
}

func assertFailure(t *testing.T, err error, kind FailureKind) {
	t.Helper()
	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("err = %v, want *RunError", err)
	}
	if runErr.Kind != kind {
		t.Errorf("Kind = %q, want %q", runErr.Kind, kind)
	}
}

func assertLedgerFailed(t *testing.T, store *storage.Store, wantPrefix string) {
	t.Helper()
	rec, err := store.GetRun(testDate)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if rec.Status != storage.StatusFailed {
		t.Errorf("Status = %q, want failed", rec.Status)
	}
	if !strings.HasPrefix(rec.ErrorSummary, wantPrefix) {
		t.Errorf("ErrorSummary = %q, want %q prefix", rec.ErrorSummary, wantPrefix)
	}
}

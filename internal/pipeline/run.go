// Package pipeline runs the end-to-end daily job: select content, fetch
// media, compose the reel, write the caption, and record the outcome in the
// run ledger. One call of Run produces (or skips) exactly one dated output
// pair.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ekizoglu/dailyreel/internal/compose"
	"github.com/ekizoglu/dailyreel/internal/content"
	"github.com/ekizoglu/dailyreel/internal/media"
	"github.com/ekizoglu/dailyreel/internal/storage"
)

// Ledger is the run bookkeeping the orchestrator needs.
type Ledger interface {
	GetRun(date string) (storage.RunRecord, error)
	RecordRun(rec storage.RunRecord) error
}

// Selector produces the day's text, caption and hashtags.
type Selector interface {
	Select() (content.Selection, error)
}

// Fetcher resolves a media category through a provider chain.
type Fetcher interface {
	Fetch(ctx context.Context, category media.Category, providers []media.Provider) (media.Asset, error)
}

// Options are the run-shaping knobs lifted out of the config.
type Options struct {
	OutputDir string
	Location  *time.Location

	VideoKeywords []string
	MusicKeywords []string

	Width    int
	Height   int
	Duration float64
	FontFile string
}

// Result is the outcome of one Run call.
type Result struct {
	Record  storage.RunRecord
	Skipped bool // today's reel already existed; nothing was produced
}

// Orchestrator wires the stages together. All collaborators are injected so
// tests can run the full state walk without network or ffmpeg.
type Orchestrator struct {
	ledger   Ledger
	selector Selector
	fetcher  Fetcher
	composer compose.Composer

	videoProviders []media.Provider
	audioProviders []media.Provider

	opts   Options
	logger *slog.Logger
}

func NewOrchestrator(
	ledger Ledger,
	selector Selector,
	fetcher Fetcher,
	composer compose.Composer,
	videoProviders, audioProviders []media.Provider,
	opts Options,
) *Orchestrator {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Orchestrator{
		ledger:         ledger,
		selector:       selector,
		fetcher:        fetcher,
		composer:       composer,
		videoProviders: videoProviders,
		audioProviders: audioProviders,
		opts:           opts,
		logger:         slog.Default(),
	}
}

// Run executes one attempt for the local date of now. A date whose run
// already succeeded and whose output file is still on disk is skipped; a
// succeeded date with a missing file is reprocessed. Every non-skipped
// attempt ends with exactly one ledger upsert, success or failure, except a
// canceled context: that aborts without writing so the interrupted day stays
// retriable.
func (o *Orchestrator) Run(ctx context.Context, now time.Time) (Result, error) {
	date := now.In(o.opts.Location).Format("2006-01-02")
	started := time.Now()
	runID := uuid.NewString()
	log := o.logger.With("run_id", runID, "date", date)

	log.Info("run started", "state", "checking")
	prev, err := o.ledger.GetRun(date)
	switch {
	case err == nil:
		if prev.Status == storage.StatusSuccess && fileExists(prev.OutputPath) {
			log.Info("reel already produced today, skipping", "output", prev.OutputPath)
			return Result{Record: prev, Skipped: true}, nil
		}
		if prev.Status == storage.StatusSuccess {
			log.Warn("ledger says success but output file is gone, reprocessing", "output", prev.OutputPath)
		} else {
			log.Info("previous attempt did not succeed, retrying", "status", prev.Status)
		}
	case errors.Is(err, storage.ErrNotFound):
		// first attempt for this date
	default:
		return Result{}, fmt.Errorf("checking run ledger: %w", err)
	}

	log.Info("state", "state", "selecting", "elapsed", time.Since(started))
	selection, err := o.selector.Select()
	if err != nil {
		return o.fail(log, date, runID, started, failure(FailureSelection, err))
	}
	log.Info("content selected", "category", selection.Category, "hashtags", len(selection.Hashtags))

	log.Info("state", "state", "fetching_video", "elapsed", time.Since(started))
	video, err := o.fetcher.Fetch(ctx, media.Category{
		Kind:     media.KindVideo,
		Name:     "background",
		Keywords: o.opts.VideoKeywords,
	}, o.videoProviders)
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("run interrupted, ledger untouched", "state", "fetching_video")
			return Result{}, ctx.Err()
		}
		return o.fail(log, date, runID, started, failure(FailureNoVideoAsset, err))
	}
	log.Info("video ready", "source", video.Source, "path", video.LocalPath)

	// Music is best effort; a reel without audio still ships.
	log.Info("state", "state", "fetching_audio", "elapsed", time.Since(started))
	var audioPath string
	audio, err := o.fetcher.Fetch(ctx, media.Category{
		Kind:     media.KindAudio,
		Name:     string(selection.Category),
		Keywords: o.opts.MusicKeywords,
	}, o.audioProviders)
	if err != nil {
		// an operator interrupt is an abort, not a silent reel
		if ctx.Err() != nil {
			log.Warn("run interrupted, ledger untouched", "state", "fetching_audio")
			return Result{}, ctx.Err()
		}
		log.Warn("no audio asset, composing silent reel", "error", err)
	} else {
		audioPath = audio.LocalPath
		log.Info("audio ready", "source", audio.Source, "path", audio.LocalPath)
	}

	outputPath := filepath.Join(o.opts.OutputDir, "reel_"+date+".mp4")
	log.Info("state", "state", "composing", "elapsed", time.Since(started))
	err = o.composer.Compose(ctx, compose.Job{
		VideoPath:  video.LocalPath,
		AudioPath:  audioPath,
		Text:       selection.Text,
		OutputPath: outputPath,
		Width:      o.opts.Width,
		Height:     o.opts.Height,
		Duration:   o.opts.Duration,
		FontFile:   o.opts.FontFile,
	})
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("run interrupted, ledger untouched", "state", "composing")
			return Result{}, ctx.Err()
		}
		return o.fail(log, date, runID, started, failure(FailureComposition, err))
	}
	log.Info("reel composed", "output", outputPath)

	// A broken caption must not discard a finished reel; record the problem
	// and succeed without a caption path.
	log.Info("state", "state", "writing_caption", "elapsed", time.Since(started))
	captionPath := filepath.Join(o.opts.OutputDir, "caption_"+date+".txt")
	var captionNote string
	if err := writeCaption(captionPath, selection.CaptionFile()); err != nil {
		log.Warn("caption write failed, reel kept", "error", err)
		captionNote = failure(FailureCaptionWrite, err).Error()
		captionPath = ""
	}

	log.Info("state", "state", "finalizing", "elapsed", time.Since(started))
	rec := storage.RunRecord{
		Date:         date,
		RunID:        runID,
		Status:       storage.StatusSuccess,
		OutputPath:   outputPath,
		CaptionPath:  captionPath,
		ErrorSummary: captionNote,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if err := o.ledger.RecordRun(rec); err != nil {
		return Result{}, fmt.Errorf("recording run: %w", err)
	}

	log.Info("run finished", "status", rec.Status, "elapsed", time.Since(started))
	return Result{Record: rec}, nil
}

// fail records the failed attempt and returns the classified error. Ledger
// write problems take precedence since they leave the day unaccounted for.
func (o *Orchestrator) fail(log *slog.Logger, date, runID string, started time.Time, runErr *RunError) (Result, error) {
	log.Error("run failed", "kind", runErr.Kind, "error", runErr.Err, "elapsed", time.Since(started))

	rec := storage.RunRecord{
		Date:         date,
		RunID:        runID,
		Status:       storage.StatusFailed,
		ErrorSummary: runErr.Error(),
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if err := o.ledger.RecordRun(rec); err != nil {
		return Result{}, fmt.Errorf("recording failed run: %w", err)
	}
	return Result{Record: rec}, runErr
}

// writeCaption writes the caption atomically: temp file in the same
// directory, then rename.
func writeCaption(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp := path + ".part"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing caption: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("moving caption into place: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/ekizoglu/dailyreel/internal/cache"
	"github.com/ekizoglu/dailyreel/internal/compose"
	"github.com/ekizoglu/dailyreel/internal/config"
	"github.com/ekizoglu/dailyreel/internal/content"
	"github.com/ekizoglu/dailyreel/internal/logging"
	"github.com/ekizoglu/dailyreel/internal/media"
	"github.com/ekizoglu/dailyreel/internal/pipeline"
	"github.com/ekizoglu/dailyreel/internal/schedule"
	"github.com/ekizoglu/dailyreel/internal/storage"
)

// app is the fully wired program: config loaded, logging installed, storage
// open, pipeline and scheduler ready.
type app struct {
	cfg      config.Config
	store    *storage.Store
	window   schedule.Window
	runner   *schedule.Runner
	location *time.Location

	closeLog func()
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	closeLog, err := logging.Setup(cfg.Log.Level, cfg.Paths.LogDir)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Project.Timezone)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	store, err := storage.Open(cfg.Paths.DataDir)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	client := &http.Client{Timeout: time.Duration(cfg.Download.RequestTimeoutSecs) * time.Second}

	fetcher := media.NewFetcher(
		cache.New(filepath.Join(cfg.Paths.DataDir, "cache"), store),
		client,
		cfg.Download.RetriesPerProvider,
		filepath.Join(cfg.Paths.AssetsDir, "backgrounds"),
		filepath.Join(cfg.Paths.AssetsDir, "music"),
	)

	videoProviders := []media.Provider{
		media.NewPexels(cfg.Providers.PexelsAPIKey, client, cfg.Download.VideoMinSeconds, cfg.Download.VideoMaxSeconds),
		media.NewPixabay(cfg.Providers.PixabayAPIKey, client, cfg.Download.VideoMinSeconds, cfg.Download.VideoMaxSeconds),
	}
	audioProviders := []media.Provider{
		media.NewJamendo(cfg.Providers.JamendoClientID, client),
		media.NewStaticAudio(nil),
	}

	selector := content.NewSelector(content.Weights{
		Emotional: cfg.Content.EmotionalWeight,
		Sarcastic: cfg.Content.SarcasticWeight,
		Deep:      cfg.Content.DeepWeight,
		Romantic:  cfg.Content.RomanticWeight,
	}, nil)

	orch := pipeline.NewOrchestrator(
		store,
		selector,
		fetcher,
		compose.NewFFmpeg(cfg.Compose.FFmpegPath),
		videoProviders,
		audioProviders,
		pipeline.Options{
			OutputDir:     cfg.Paths.OutputDir,
			Location:      loc,
			VideoKeywords: cfg.Download.VideoKeywords,
			MusicKeywords: cfg.Download.MusicKeywords,
			Width:         cfg.Compose.Width,
			Height:        cfg.Compose.Height,
			Duration:      cfg.Compose.DurationSeconds,
			FontFile:      cfg.Compose.FontPath,
		},
	)

	window, err := schedule.ParseWindow(cfg.Window.Start, cfg.Window.End, loc)
	if err != nil {
		store.Close()
		closeLog()
		return nil, err
	}

	runner := schedule.NewRunner(window, func(ctx context.Context, now time.Time) error {
		_, err := orch.Run(ctx, now)
		return err
	})

	return &app{
		cfg:      cfg,
		store:    store,
		window:   window,
		runner:   runner,
		location: loc,
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	a.closeLog()
}

package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ekizoglu/dailyreel/internal/cache"
)

// manual fallback extensions per kind
var manualExts = map[Kind][]string{
	KindVideo: {".mp4", ".mov", ".webm"},
	KindAudio: {".mp3"},
}

// Fetcher resolves a category to a local media file: cache first, then each
// provider in chain order, then the manual asset directory.
type Fetcher struct {
	cache      *cache.Store
	client     *http.Client
	retries    int // download attempts per provider before falling through
	manualDirs map[Kind]string
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. manualVideoDir and manualAudioDir are the
// operator-maintained last-resort directories; either may be empty.
func NewFetcher(cacheStore *cache.Store, client *http.Client, retries int, manualVideoDir, manualAudioDir string) *Fetcher {
	if retries <= 0 {
		retries = 1
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		cache:   cacheStore,
		client:  client,
		retries: retries,
		manualDirs: map[Kind]string{
			KindVideo: manualVideoDir,
			KindAudio: manualAudioDir,
		},
		logger: slog.Default(),
	}
}

// Fetch walks providers in order. For each one it consults the cache under
// the (category, provider) key before any network call; a fresh download is
// validated and cached before being returned. Recoverable provider failures
// are logged here and never surface past this boundary — the only error the
// caller sees is ErrNoAsset once everything, including the manual fallback
// directory, is exhausted.
func (f *Fetcher) Fetch(ctx context.Context, category Category, providers []Provider) (Asset, error) {
	for _, p := range providers {
		if p.Kind() != category.Kind {
			return Asset{}, fmt.Errorf("provider %s serves %s, chain wants %s", p.Name(), p.Kind(), category.Kind)
		}
		if !p.Available() {
			f.logger.Debug("provider skipped: no credential", "provider", p.Name(), "category", category.String())
			continue
		}

		key := category.String() + "|" + p.Name()
		if entry, ok, err := f.cache.Get(key); err != nil {
			return Asset{}, err
		} else if ok {
			f.logger.Info("cache hit", "category", category.String(), "provider", p.Name(), "path", entry.LocalPath)
			return Asset{Kind: category.Kind, LocalPath: entry.LocalPath, Source: "cache"}, nil
		}

		path, err := f.fetchFromProvider(ctx, p, category, key)
		if err != nil {
			f.logger.Warn("provider failed, advancing chain",
				"provider", p.Name(), "category", category.String(), "error", err)
			continue
		}
		return Asset{Kind: category.Kind, LocalPath: path, Source: p.Name()}, nil
	}

	if path, ok := f.manualFallback(category.Kind); ok {
		f.logger.Info("using manual fallback asset", "category", category.String(), "path", path)
		return Asset{Kind: category.Kind, LocalPath: path, Source: "manual-fallback"}, nil
	}

	return Asset{}, fmt.Errorf("category %s: %w", category.String(), ErrNoAsset)
}

func (f *Fetcher) fetchFromProvider(ctx context.Context, p Provider, category Category, key string) (string, error) {
	candidates, err := p.Search(ctx, category.Keywords)
	if err != nil {
		return "", fmt.Errorf("searching: %w", err)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("search returned no results for %q", strings.Join(category.Keywords, " "))
	}

	tmpDir, err := f.cache.TempDir()
	if err != nil {
		return "", err
	}

	attempts := f.retries
	if attempts > len(candidates) {
		attempts = len(candidates)
	}

	var lastErr error
	for _, c := range candidates[:attempts] {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		tmpPath, err := download(ctx, f.client, c.URL, tmpDir, category.Kind)
		if err != nil {
			lastErr = fmt.Errorf("candidate %s: %w", c.ID, err)
			f.logger.Debug("download attempt failed", "provider", p.Name(), "candidate", c.ID, "error", err)
			continue
		}

		entry, err := f.cache.Put(key, p.Name(), category.Kind.CacheSubdir(), tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return "", err
		}
		return entry.LocalPath, nil
	}
	return "", fmt.Errorf("all %d download attempts failed, last: %w", attempts, lastErr)
}

// manualFallback returns a file from the kind's manual asset directory, if
// any exists. Files sort lexically so the choice is stable across retries of
// the same day.
func (f *Fetcher) manualFallback(kind Kind) (string, bool) {
	dir := f.manualDirs[kind]
	if dir == "" {
		return "", false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, allowed := range manualExts[kind] {
			if ext == allowed {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	if len(files) == 0 {
		return "", false
	}
	sort.Strings(files)
	return files[0], true
}

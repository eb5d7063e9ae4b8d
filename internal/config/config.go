package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Project   ProjectConfig   `toml:"project"`
	Window    WindowConfig    `toml:"window"`
	Paths     PathsConfig     `toml:"paths"`
	Content   ContentConfig   `toml:"content"`
	Download  DownloadConfig  `toml:"download"`
	Compose   ComposeConfig   `toml:"compose"`
	Log       LogConfig       `toml:"log"`
	Providers ProviderSecrets `toml:"-"`
}

type ProjectConfig struct {
	Timezone string `toml:"timezone"`
}

// WindowConfig is the local clock-time interval the daily run should land in.
type WindowConfig struct {
	Start string `toml:"start"` // "HH:MM"
	End   string `toml:"end"`   // "HH:MM"
}

type PathsConfig struct {
	DataDir   string `toml:"data_dir"`   // SQLite db + media cache
	OutputDir string `toml:"output_dir"` // reels and captions, one pair per date
	AssetsDir string `toml:"assets_dir"` // manual fallback backgrounds/music
	LogDir    string `toml:"log_dir"`
}

// ContentConfig holds the category weight distribution for the daily text.
type ContentConfig struct {
	EmotionalWeight float64 `toml:"emotional_weight"`
	SarcasticWeight float64 `toml:"sarcastic_weight"`
	DeepWeight      float64 `toml:"deep_weight"`
	RomanticWeight  float64 `toml:"romantic_weight"`
}

type DownloadConfig struct {
	VideoKeywords      []string `toml:"video_keywords"`
	MusicKeywords      []string `toml:"music_keywords"`
	VideoMinSeconds    int      `toml:"video_min_seconds"`
	VideoMaxSeconds    int      `toml:"video_max_seconds"`
	RequestTimeoutSecs int      `toml:"request_timeout_secs"`
	RetriesPerProvider int      `toml:"retries_per_provider"`
}

type ComposeConfig struct {
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
	DurationSeconds float64 `toml:"duration_seconds"`
	FontPath        string  `toml:"font_path"`
	FFmpegPath      string  `toml:"ffmpeg_path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// ProviderSecrets are supplied exclusively through environment variables;
// they are never written to the config file. A missing key means that
// provider is skipped in the fallback chain, not an error.
type ProviderSecrets struct {
	PexelsAPIKey    string
	PixabayAPIKey   string
	JamendoClientID string
}

func defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		Project: ProjectConfig{
			Timezone: "Europe/Istanbul",
		},
		Window: WindowConfig{
			Start: "21:00",
			End:   "23:00",
		},
		Paths: PathsConfig{
			DataDir:   dataDir,
			OutputDir: filepath.Join(dataDir, "output"),
			AssetsDir: filepath.Join(dataDir, "assets"),
			LogDir:    filepath.Join(dataDir, "logs"),
		},
		Content: ContentConfig{
			EmotionalWeight: 0.40,
			SarcasticWeight: 0.30,
			DeepWeight:      0.20,
			RomanticWeight:  0.10,
		},
		Download: DownloadConfig{
			VideoKeywords:      []string{"night city", "rain", "cinematic"},
			MusicKeywords:      []string{"emotional", "cinematic", "sad"},
			VideoMinSeconds:    5,
			VideoMaxSeconds:    30,
			RequestTimeoutSecs: 15,
			RetriesPerProvider: 2,
		},
		Compose: ComposeConfig{
			Width:           1080,
			Height:          1920,
			DurationSeconds: 7,
			FFmpegPath:      "ffmpeg",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "dailyreel-data"
		}
	}
	return filepath.Join(dir, "dailyreel")
}

// ConfigPath returns the config file location: $DAILYREEL_CONFIG if set,
// else $XDG_CONFIG_HOME/dailyreel/config.toml.
func ConfigPath() string {
	if p := os.Getenv("DAILYREEL_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "dailyreel", "config.toml")
}

// Load reads configuration from defaults, the TOML config file (if present),
// and DAILYREEL_* environment overrides, in that order. Provider credentials
// come from PEXELS_API_KEY, PIXABAY_API_KEY, and JAMENDO_CLIENT_ID.
func Load() (Config, error) {
	return loadFromPath(ConfigPath())
}

func loadFromPath(path string) (Config, error) {
	cfg := defaults()

	if _, err := decodeFileIfExists(path, &cfg); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// decodeFileIfExists merges the TOML file at path into cfg. A missing file
// is not an error; it reports whether the file was found.
func decodeFileIfExists(path string, cfg *Config) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return true, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return true, nil
}

func validate(cfg Config) error {
	if _, err := time.LoadLocation(cfg.Project.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Project.Timezone, err)
	}
	for _, w := range []string{cfg.Window.Start, cfg.Window.End} {
		if _, err := time.Parse("15:04", w); err != nil {
			return fmt.Errorf("invalid window time %q: %w", w, err)
		}
	}
	total := cfg.Content.EmotionalWeight + cfg.Content.SarcasticWeight +
		cfg.Content.DeepWeight + cfg.Content.RomanticWeight
	if total <= 0 {
		return fmt.Errorf("content weights must sum to a positive value, got %v", total)
	}
	if cfg.Compose.Width <= 0 || cfg.Compose.Height <= 0 {
		return fmt.Errorf("invalid compose dimensions %dx%d", cfg.Compose.Width, cfg.Compose.Height)
	}
	if cfg.Compose.DurationSeconds <= 0 {
		return fmt.Errorf("compose duration must be positive, got %v", cfg.Compose.DurationSeconds)
	}
	return nil
}

// Save writes cfg to the config file. Provider secrets are excluded by the
// struct tags.
func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

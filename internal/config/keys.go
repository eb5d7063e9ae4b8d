package config

import (
	"os"
	"strconv"
	"strings"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kFloat
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "project.timezone", typ: kString, env: "DAILYREEL_TIMEZONE",
		apply:   func(cfg *Config, v any) { cfg.Project.Timezone = v.(string) },
		extract: func(cfg Config) any { return cfg.Project.Timezone },
	},
	{
		key: "window.start", typ: kString, env: "DAILYREEL_WINDOW_START",
		apply:   func(cfg *Config, v any) { cfg.Window.Start = v.(string) },
		extract: func(cfg Config) any { return cfg.Window.Start },
	},
	{
		key: "window.end", typ: kString, env: "DAILYREEL_WINDOW_END",
		apply:   func(cfg *Config, v any) { cfg.Window.End = v.(string) },
		extract: func(cfg Config) any { return cfg.Window.End },
	},
	{
		key: "paths.data_dir", typ: kString, env: "DAILYREEL_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Paths.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Paths.DataDir },
	},
	{
		key: "paths.output_dir", typ: kString, env: "DAILYREEL_OUTPUT_DIR",
		apply:   func(cfg *Config, v any) { cfg.Paths.OutputDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Paths.OutputDir },
	},
	{
		key: "paths.assets_dir", typ: kString, env: "DAILYREEL_ASSETS_DIR",
		apply:   func(cfg *Config, v any) { cfg.Paths.AssetsDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Paths.AssetsDir },
	},
	{
		key: "paths.log_dir", typ: kString, env: "DAILYREEL_LOG_DIR",
		apply:   func(cfg *Config, v any) { cfg.Paths.LogDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Paths.LogDir },
	},
	{
		key: "content.emotional_weight", typ: kFloat, env: "DAILYREEL_EMOTIONAL_WEIGHT",
		apply:   func(cfg *Config, v any) { cfg.Content.EmotionalWeight = v.(float64) },
		extract: func(cfg Config) any { return cfg.Content.EmotionalWeight },
	},
	{
		key: "content.sarcastic_weight", typ: kFloat, env: "DAILYREEL_SARCASTIC_WEIGHT",
		apply:   func(cfg *Config, v any) { cfg.Content.SarcasticWeight = v.(float64) },
		extract: func(cfg Config) any { return cfg.Content.SarcasticWeight },
	},
	{
		key: "content.deep_weight", typ: kFloat, env: "DAILYREEL_DEEP_WEIGHT",
		apply:   func(cfg *Config, v any) { cfg.Content.DeepWeight = v.(float64) },
		extract: func(cfg Config) any { return cfg.Content.DeepWeight },
	},
	{
		key: "content.romantic_weight", typ: kFloat, env: "DAILYREEL_ROMANTIC_WEIGHT",
		apply:   func(cfg *Config, v any) { cfg.Content.RomanticWeight = v.(float64) },
		extract: func(cfg Config) any { return cfg.Content.RomanticWeight },
	},
	{
		key: "download.video_min_seconds", typ: kInt, env: "DAILYREEL_VIDEO_MIN_SECONDS",
		apply:   func(cfg *Config, v any) { cfg.Download.VideoMinSeconds = v.(int) },
		extract: func(cfg Config) any { return cfg.Download.VideoMinSeconds },
	},
	{
		key: "download.video_max_seconds", typ: kInt, env: "DAILYREEL_VIDEO_MAX_SECONDS",
		apply:   func(cfg *Config, v any) { cfg.Download.VideoMaxSeconds = v.(int) },
		extract: func(cfg Config) any { return cfg.Download.VideoMaxSeconds },
	},
	{
		key: "download.request_timeout_secs", typ: kInt, env: "DAILYREEL_REQUEST_TIMEOUT_SECS",
		apply:   func(cfg *Config, v any) { cfg.Download.RequestTimeoutSecs = v.(int) },
		extract: func(cfg Config) any { return cfg.Download.RequestTimeoutSecs },
	},
	{
		key: "download.retries_per_provider", typ: kInt, env: "DAILYREEL_RETRIES_PER_PROVIDER",
		apply:   func(cfg *Config, v any) { cfg.Download.RetriesPerProvider = v.(int) },
		extract: func(cfg Config) any { return cfg.Download.RetriesPerProvider },
	},
	{
		key: "compose.duration_seconds", typ: kFloat, env: "DAILYREEL_DURATION_SECONDS",
		apply:   func(cfg *Config, v any) { cfg.Compose.DurationSeconds = v.(float64) },
		extract: func(cfg Config) any { return cfg.Compose.DurationSeconds },
	},
	{
		key: "compose.font_path", typ: kString, env: "DAILYREEL_FONT_PATH",
		apply:   func(cfg *Config, v any) { cfg.Compose.FontPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Compose.FontPath },
	},
	{
		key: "compose.ffmpeg_path", typ: kString, env: "DAILYREEL_FFMPEG_PATH",
		apply:   func(cfg *Config, v any) { cfg.Compose.FFmpegPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Compose.FFmpegPath },
	},
	{
		key: "log.level", typ: kString, env: "DAILYREEL_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	// Provider credentials. The env names match what the media APIs document,
	// so a key provisioned for any other tool works here unchanged.
	{
		key: "providers.pexels_api_key", typ: kString, env: "PEXELS_API_KEY", secret: true,
		apply:   func(cfg *Config, v any) { cfg.Providers.PexelsAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.PexelsAPIKey },
	},
	{
		key: "providers.pixabay_api_key", typ: kString, env: "PIXABAY_API_KEY", secret: true,
		apply:   func(cfg *Config, v any) { cfg.Providers.PixabayAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.PixabayAPIKey },
	},
	{
		key: "providers.jamendo_client_id", typ: kString, env: "JAMENDO_CLIENT_ID", secret: true,
		apply:   func(cfg *Config, v any) { cfg.Providers.JamendoClientID = v.(string) },
		extract: func(cfg Config) any { return cfg.Providers.JamendoClientID },
	},
}

// applyEnvOverrides applies every set environment variable over cfg.
// Unparseable numeric values are ignored rather than failing the load.
func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		raw, ok := os.LookupEnv(s.env)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			}
		case kFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				s.apply(cfg, f)
			}
		}
	}
}

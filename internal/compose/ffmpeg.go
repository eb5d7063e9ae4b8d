// Package compose renders the final vertical reel by shelling out to ffmpeg.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Job describes one render: a background video, an optional music track and
// the text to burn into the frame.
type Job struct {
	VideoPath  string
	AudioPath  string // empty means silent output
	Text       string
	OutputPath string

	Width    int
	Height   int
	Duration float64 // seconds
	FontFile string  // empty lets ffmpeg pick a system font
}

// Composer renders a Job to its OutputPath.
type Composer interface {
	Compose(ctx context.Context, job Job) error
}

// FFmpeg is the production Composer. It builds a single-pass filter chain and
// runs the ffmpeg binary.
type FFmpeg struct {
	bin    string
	logger *slog.Logger
}

func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin, logger: slog.Default()}
}

// Compose renders into a sibling temp file and renames it over OutputPath
// once ffmpeg exits cleanly, so a crashed render never leaves a partial file
// under the final name.
func (f *FFmpeg) Compose(ctx context.Context, job Job) error {
	if err := validateJob(job); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpPath := job.OutputPath + ".part"
	args := buildArgs(job, tmpPath)

	f.logger.Debug("running ffmpeg", "bin", f.bin, "args", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.bin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg: %w: %s", err, tailLines(stderr.String(), 5))
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return fmt.Errorf("stat rendered file: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg produced an empty file")
	}

	if err := os.Rename(tmpPath, job.OutputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving rendered file into place: %w", err)
	}
	return nil
}

func validateJob(job Job) error {
	if job.VideoPath == "" {
		return fmt.Errorf("compose: no background video")
	}
	if job.OutputPath == "" {
		return fmt.Errorf("compose: no output path")
	}
	if job.Text == "" {
		return fmt.Errorf("compose: no overlay text")
	}
	if job.Width <= 0 || job.Height <= 0 {
		return fmt.Errorf("compose: invalid frame %dx%d", job.Width, job.Height)
	}
	if job.Duration <= 0 {
		return fmt.Errorf("compose: invalid duration %v", job.Duration)
	}
	return nil
}

// buildArgs assembles the full ffmpeg invocation. The background is looped so
// short clips still fill the duration, scaled to cover the frame, center
// cropped and overlaid with faded-in text. Music, when present, is looped,
// lowered to bed volume and cut at the video's end.
func buildArgs(job Job, outPath string) []string {
	args := []string{
		"-y",
		"-stream_loop", "-1",
		"-i", job.VideoPath,
	}
	if job.AudioPath != "" {
		args = append(args, "-stream_loop", "-1", "-i", job.AudioPath)
	}

	args = append(args,
		"-t", strconv.FormatFloat(job.Duration, 'f', 1, 64),
		"-vf", buildFilter(job),
		"-r", "30",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-pix_fmt", "yuv420p",
	)

	if job.AudioPath != "" {
		args = append(args,
			"-map", "0:v:0",
			"-map", "1:a:0",
			"-af", "volume=0.35",
			"-c:a", "aac",
			"-b:a", "128k",
		)
	} else {
		args = append(args, "-an")
	}

	args = append(args, "-f", "mp4", outPath)
	return args
}

func buildFilter(job Job) string {
	w, h := strconv.Itoa(job.Width), strconv.Itoa(job.Height)

	var sb strings.Builder
	sb.WriteString("scale=" + w + ":" + h + ":force_original_aspect_ratio=increase")
	sb.WriteString(",crop=" + w + ":" + h)

	sb.WriteString(",drawtext=text='" + escapeDrawtext(wrapText(job.Text, 18)) + "'")
	if job.FontFile != "" {
		sb.WriteString(":fontfile='" + escapeDrawtext(job.FontFile) + "'")
	}
	sb.WriteString(":fontsize=72")
	sb.WriteString(":fontcolor=white")
	sb.WriteString(":bordercolor=black:borderw=2")
	sb.WriteString(":x=(w-text_w)/2:y=(h-text_h)/2")
	sb.WriteString(":line_spacing=16")
	// text fades in over the first 0.8s
	sb.WriteString(":alpha='min(1\\,t/0.8)'")
	return sb.String()
}

// wrapText breaks text into lines of at most maxChars characters, never
// splitting a word. Single words longer than the limit stay on their own
// line.
func wrapText(text string, maxChars int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > maxChars {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	lines = append(lines, current)
	return strings.Join(lines, "\n")
}

// escapeDrawtext escapes the characters drawtext treats specially inside a
// single-quoted value. Order matters: backslashes first.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\\\'`,
	`:`, `\:`,
	`%`, `\%`,
)

func escapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

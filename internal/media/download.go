package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// download streams url into a uniquely named temp file under destDir and
// validates the result for the expected kind. On any failure the partial
// file is removed.
func download(ctx context.Context, client *http.Client, url, destDir string, kind Kind) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading: unexpected status %d", resp.StatusCode)
	}

	path := filepath.Join(destDir, "dl-"+uuid.NewString()+kind.Ext())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing download: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := validateMedia(path, kind); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// validateMedia rejects empty downloads and files that are clearly not the
// expected container. Providers occasionally return HTML error pages with a
// 200 status; the header sniff catches those.
func validateMedia(path string, kind Kind) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat downloaded file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("downloaded file is empty")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening downloaded file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("reading file header: %w", err)
	}
	header = header[:n]

	switch kind {
	case KindVideo:
		if !isMP4(header) {
			return fmt.Errorf("downloaded file is not an MP4 container")
		}
	case KindAudio:
		if !isMP3(header) {
			return fmt.Errorf("downloaded file is not an MP3 stream")
		}
	}
	return nil
}

// isMP4 checks for the ftyp box at offset 4.
func isMP4(header []byte) bool {
	return len(header) >= 8 && string(header[4:8]) == "ftyp"
}

// isMP3 accepts an ID3 tag or a bare MPEG frame sync.
func isMP3(header []byte) bool {
	if len(header) >= 3 && string(header[:3]) == "ID3" {
		return true
	}
	return len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0
}

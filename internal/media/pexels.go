package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultPexelsBaseURL = "https://api.pexels.com"

// Pexels searches the Pexels Videos API. Portrait files are preferred since
// the output is a 9:16 reel; within the duration band, higher resolution
// wins.
type Pexels struct {
	apiKey  string
	baseURL string
	client  *http.Client
	minDur  int
	maxDur  int
}

func NewPexels(apiKey string, client *http.Client, minDur, maxDur int) *Pexels {
	return &Pexels{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultPexelsBaseURL,
		client:  client,
		minDur:  minDur,
		maxDur:  maxDur,
	}
}

func (p *Pexels) Name() string    { return "pexels" }
func (p *Pexels) Kind() Kind      { return KindVideo }
func (p *Pexels) Available() bool { return p.apiKey != "" }

type pexelsVideoFile struct {
	Link     string `json:"link"`
	FileType string `json:"file_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type pexelsVideo struct {
	ID         int               `json:"id"`
	Duration   int               `json:"duration"`
	VideoFiles []pexelsVideoFile `json:"video_files"`
}

func (p *Pexels) Search(ctx context.Context, keywords []string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("query", strings.Join(keywords, " "))
	q.Set("per_page", "20")
	q.Set("orientation", "portrait")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/videos/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building pexels request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels search: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Videos []pexelsVideo `json:"videos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding pexels response: %w", err)
	}

	var candidates []Candidate
	// First pass honors the duration band; the second relaxes it so a chain
	// doesn't die on an overly strict band.
	for _, strict := range []bool{true, false} {
		for _, v := range body.Videos {
			if strict && !p.durationOK(v.Duration) {
				continue
			}
			if !strict && p.durationOK(v.Duration) {
				continue // already added in the strict pass
			}
			link := bestPexelsFile(v.VideoFiles)
			if link == "" {
				continue
			}
			candidates = append(candidates, Candidate{
				ID:  strconv.Itoa(v.ID),
				URL: link,
			})
		}
	}
	return candidates, nil
}

func (p *Pexels) durationOK(d int) bool {
	return d >= p.minDur && d <= p.maxDur
}

// bestPexelsFile picks the best MP4 link: portrait files ranked by the
// smaller dimension (closest to full-frame 1080x1920), else the largest file
// overall.
func bestPexelsFile(files []pexelsVideoFile) string {
	var bestPortrait, bestAny pexelsVideoFile
	for _, f := range files {
		if f.FileType != "video/mp4" || f.Link == "" {
			continue
		}
		if f.Height > f.Width && min(f.Height, f.Width) > min(bestPortrait.Height, bestPortrait.Width) {
			bestPortrait = f
		}
		if f.Width+f.Height > bestAny.Width+bestAny.Height {
			bestAny = f
		}
	}
	if bestPortrait.Link != "" {
		return bestPortrait.Link
	}
	return bestAny.Link
}

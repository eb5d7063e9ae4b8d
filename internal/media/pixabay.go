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

const defaultPixabayBaseURL = "https://pixabay.com"

// Pixabay searches the Pixabay Videos API. Rendition preference is medium,
// then large, then small: medium is almost always big enough for a 1080
// frame at a fraction of the download size.
type Pixabay struct {
	apiKey  string
	baseURL string
	client  *http.Client
	minDur  int
	maxDur  int
}

func NewPixabay(apiKey string, client *http.Client, minDur, maxDur int) *Pixabay {
	return &Pixabay{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultPixabayBaseURL,
		client:  client,
		minDur:  minDur,
		maxDur:  maxDur,
	}
}

func (p *Pixabay) Name() string    { return "pixabay" }
func (p *Pixabay) Kind() Kind      { return KindVideo }
func (p *Pixabay) Available() bool { return p.apiKey != "" }

type pixabayRendition struct {
	URL string `json:"url"`
}

type pixabayHit struct {
	ID       int                         `json:"id"`
	Duration int                         `json:"duration"`
	Videos   map[string]pixabayRendition `json:"videos"`
}

func (p *Pixabay) Search(ctx context.Context, keywords []string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("key", p.apiKey)
	q.Set("q", strings.Join(keywords, " "))
	q.Set("per_page", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/videos/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building pixabay request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixabay search: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Hits []pixabayHit `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding pixabay response: %w", err)
	}

	var candidates []Candidate
	for _, strict := range []bool{true, false} {
		for _, h := range body.Hits {
			// Pixabay sometimes omits duration; only filter when present.
			inBand := h.Duration == 0 || (h.Duration >= p.minDur && h.Duration <= p.maxDur)
			if strict != inBand {
				continue
			}
			u := bestPixabayRendition(h.Videos)
			if u == "" {
				continue
			}
			candidates = append(candidates, Candidate{
				ID:  strconv.Itoa(h.ID),
				URL: u,
			})
		}
	}
	return candidates, nil
}

func bestPixabayRendition(videos map[string]pixabayRendition) string {
	for _, key := range []string{"medium", "large", "small"} {
		if r, ok := videos[key]; ok && r.URL != "" {
			return r.URL
		}
	}
	return ""
}

package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultJamendoBaseURL = "https://api.jamendo.com"

// Jamendo searches the Jamendo tracks API for royalty-free music. The file
// endpoint redirects to the actual MP3, which the shared downloader follows.
type Jamendo struct {
	clientID string
	baseURL  string
	client   *http.Client
}

func NewJamendo(clientID string, client *http.Client) *Jamendo {
	return &Jamendo{
		clientID: strings.TrimSpace(clientID),
		baseURL:  defaultJamendoBaseURL,
		client:   client,
	}
}

func (j *Jamendo) Name() string    { return "jamendo" }
func (j *Jamendo) Kind() Kind      { return KindAudio }
func (j *Jamendo) Available() bool { return j.clientID != "" }

type jamendoTrack struct {
	ID                   json.Number `json:"id"`
	Name                 string      `json:"name"`
	AudioDownloadAllowed bool        `json:"audiodownload_allowed"`
}

func (j *Jamendo) Search(ctx context.Context, keywords []string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("client_id", j.clientID)
	q.Set("search", strings.Join(keywords, " "))
	q.Set("limit", "15")
	q.Set("format", "json")
	q.Set("audiodownload_allowed", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.baseURL+"/v3.0/tracks/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building jamendo request: %w", err)
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jamendo search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jamendo search: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Results []jamendoTrack `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding jamendo response: %w", err)
	}

	var candidates []Candidate
	for _, t := range body.Results {
		if !t.AudioDownloadAllowed || t.ID.String() == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:  t.ID.String(),
			URL: j.fileURL(t.ID.String()),
		})
	}
	return candidates, nil
}

func (j *Jamendo) fileURL(trackID string) string {
	q := url.Values{}
	q.Set("client_id", j.clientID)
	q.Set("id", trackID)
	q.Set("audioformat", "mp32")
	return j.baseURL + "/v3.0/tracks/file/?" + q.Encode()
}

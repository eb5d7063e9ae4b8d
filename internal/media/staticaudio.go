package media

import (
	"context"
	"strconv"
)

// defaultStaticAudioURLs are royalty-free tracks that need no API key.
// SoundHelix allows free use: https://www.soundhelix.com/
var defaultStaticAudioURLs = []string{
	"https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	"https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
	"https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
}

// StaticAudio is the keyless last provider in the audio chain: a fixed list
// of direct MP3 URLs. Search ignores keywords.
type StaticAudio struct {
	urls []string
}

func NewStaticAudio(urls []string) *StaticAudio {
	if len(urls) == 0 {
		urls = defaultStaticAudioURLs
	}
	return &StaticAudio{urls: urls}
}

func (s *StaticAudio) Name() string    { return "static-audio" }
func (s *StaticAudio) Kind() Kind      { return KindAudio }
func (s *StaticAudio) Available() bool { return len(s.urls) > 0 }

func (s *StaticAudio) Search(ctx context.Context, keywords []string) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(s.urls))
	for i, u := range s.urls {
		candidates = append(candidates, Candidate{
			ID:  s.Name() + "-" + strconv.Itoa(i+1),
			URL: u,
		})
	}
	return candidates, nil
}

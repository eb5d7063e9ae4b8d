// Package content picks the day's overlay text, caption, and hashtags from
// fixed weighted pools. No network, no persistence: pure over the pools and
// an injected random source.
package content

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Category of the day's text. The music search keywords are matched against
// it so the track mood follows the text mood.
type Category string

const (
	CategoryEmotional Category = "emotional"
	CategorySarcastic Category = "sarcastic"
	CategoryDeep      Category = "deep"
	CategoryRomantic  Category = "romantic"
)

const (
	minHashtags = 10
	maxHashtags = 15
)

// Selection is the ephemeral content of one run; it is never persisted
// beyond the run's output files.
type Selection struct {
	Text     string
	Category Category
	Caption  string
	Hashtags []string
}

// CaptionFile renders the caption file body: caption lines, blank line,
// space-separated hashtag line.
func (s Selection) CaptionFile() string {
	return s.Caption + "\n\n" + strings.Join(s.Hashtags, " ") + "\n"
}

// Weights is the category distribution. Values are relative; they do not
// need to sum to 1.
type Weights struct {
	Emotional float64
	Sarcastic float64
	Deep      float64
	Romantic  float64
}

type weightedCategory struct {
	category Category
	weight   float64
}

// Selector draws selections from the fixed pools.
type Selector struct {
	weights []weightedCategory
	rng     *rand.Rand
}

// NewSelector returns a Selector using the given weights and random source.
// A nil rng falls back to a time-seeded source.
func NewSelector(w Weights, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{
		// Fixed order so the cumulative walk is deterministic for a
		// deterministic source.
		weights: []weightedCategory{
			{CategoryEmotional, w.Emotional},
			{CategorySarcastic, w.Sarcastic},
			{CategoryDeep, w.Deep},
			{CategoryRomantic, w.Romantic},
		},
		rng: rng,
	}
}

// Select produces one day's content: a weighted-category text line, 1-2
// caption lines, and 10-15 unique hashtags.
func (s *Selector) Select() (Selection, error) {
	category, err := s.pickCategory()
	if err != nil {
		return Selection{}, err
	}

	pool := pools[category]
	if len(pool) == 0 {
		return Selection{}, fmt.Errorf("content pool for category %q is empty", category)
	}
	text := pool[s.rng.IntN(len(pool))]

	caption, err := s.pickCaption()
	if err != nil {
		return Selection{}, err
	}

	return Selection{
		Text:     text,
		Category: category,
		Caption:  caption,
		Hashtags: s.pickHashtags(),
	}, nil
}

func (s *Selector) pickCategory() (Category, error) {
	var total float64
	for _, wc := range s.weights {
		total += wc.weight
	}
	if total <= 0 {
		return "", fmt.Errorf("category weights sum to %v", total)
	}

	r := s.rng.Float64() * total
	var cumulative float64
	last := s.weights[0].category
	for _, wc := range s.weights {
		if wc.weight <= 0 {
			continue
		}
		cumulative += wc.weight
		last = wc.category
		if r <= cumulative {
			return wc.category, nil
		}
	}
	return last, nil
}

func (s *Selector) pickCaption() (string, error) {
	if len(captionLines) == 0 {
		return "", fmt.Errorf("caption pool is empty")
	}
	count := 1 + s.rng.IntN(2)
	idx := s.rng.Perm(len(captionLines))
	lines := make([]string, 0, count)
	for _, i := range idx[:count] {
		lines = append(lines, captionLines[i])
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Selector) pickHashtags() []string {
	count := minHashtags + s.rng.IntN(maxHashtags-minHashtags+1)
	if count > len(hashtagPool) {
		count = len(hashtagPool)
	}
	idx := s.rng.Perm(len(hashtagPool))
	tags := make([]string, 0, count)
	for _, i := range idx[:count] {
		tags = append(tags, "#"+hashtagPool[i])
	}
	return tags
}

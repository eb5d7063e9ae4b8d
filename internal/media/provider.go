// Package media acquires background video and music: an ordered provider
// fallback chain in front of the local cache, with a manual asset directory
// as last-resort supply.
package media

import (
	"context"
	"errors"
)

// ErrNoAsset is returned when every provider in a chain and the manual
// fallback directory have been exhausted.
var ErrNoAsset = errors.New("no asset available")

// Kind of media asset.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// CacheSubdir is the per-kind partition inside the cache directory.
func (k Kind) CacheSubdir() string {
	if k == KindAudio {
		return "music"
	}
	return "videos"
}

// Ext is the expected container extension for the kind.
func (k Kind) Ext() string {
	if k == KindAudio {
		return ".mp3"
	}
	return ".mp4"
}

// Category identifies what is being fetched, e.g. {video, "night-city"} or
// {audio, "emotional"}. Name feeds the cache key; Keywords feed provider
// search.
type Category struct {
	Kind     Kind
	Name     string
	Keywords []string
}

func (c Category) String() string {
	return string(c.Kind) + ":" + c.Name
}

// Candidate is one downloadable result from a provider search, in the
// provider's preference order.
type Candidate struct {
	ID  string
	URL string
}

// Provider is a remote media source. Implementations are tagged variants
// (search endpoint shape, credential, file selection policy) behind this one
// capability, so the fetcher never branches on provider identity.
type Provider interface {
	Name() string
	Kind() Kind
	// Available reports whether the provider can be used at all. A missing
	// credential makes a provider permanently unavailable for the process:
	// it is skipped in the chain, not an error.
	Available() bool
	Search(ctx context.Context, keywords []string) ([]Candidate, error)
}

// Asset is one fetched media file, alive for a single run. The cache copy it
// may point into persists independently.
type Asset struct {
	Kind      Kind
	LocalPath string
	Source    string // provider name, "cache", or "manual-fallback"
}

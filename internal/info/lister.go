package info

import (
	"context"
	"log"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Prober runs one metadata-only query and returns yt-dlp's extracted info
type Prober interface {
	Probe(ctx context.Context, url string) (*ytdlp.ExtractedInfo, error)
}

// PlaylistParser enumerates playlist entries
type PlaylistParser interface {
	ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

// Lister fetches video metadata and playlist listings
type Lister struct {
	prober   Prober
	playlist PlaylistParser
}

// NewLister creates a lister
func NewLister(prober Prober, playlist PlaylistParser) *Lister {
	return &Lister{prober: prober, playlist: playlist}
}

// Fetch returns the metadata of a single video. Failures are classified
// and never retried.
func (l *Lister) Fetch(ctx context.Context, url string) (*model.VideoMetadata, error) {
	url = model.CleanURL(url)
	if err := model.ValidateURL(url); err != nil {
		return nil, err
	}

	extracted, err := l.prober.Probe(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, model.NewError(model.KindCancelled, "info", "cancelled", ctx.Err())
		}
		log.Printf("metadata query for %s failed: %v", url, err)
		return nil, download.Classify("info", err)
	}

	meta, err := platform.VideoFromInfo(extracted)
	if err != nil {
		return nil, download.Classify("info", err)
	}
	if meta.WebpageURL == "" {
		meta.WebpageURL = url
	}
	return meta, nil
}

// Playlist lists the entries of a playlist URL without downloading
func (l *Lister) Playlist(ctx context.Context, url string) (*model.Playlist, error) {
	url = model.CleanURL(url)
	if err := model.ValidateURL(url); err != nil {
		return nil, err
	}
	if l.playlist == nil {
		return nil, model.Errorf(model.KindInvalidInput, "playlist", "playlist listing is not available")
	}
	return l.playlist.ParsePlaylist(ctx, url)
}
